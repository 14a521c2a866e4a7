package datasource

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	dir    string
	logger *logger.Logger
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.logger = logger.NewNopLogger()
}

func (suite *DuckDBDataSourceTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *DuckDBDataSourceTestSuite) newDataSource(columns ColumnMapping) DataSource {
	ds, err := NewDataSource(":memory:", columns, suite.logger)
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { ds.Close() })

	return ds
}

const sampleCSV = `date,Open,High,Low,Close,Volume
2020-01-03,101,103,100,102,2000
2020-01-01,99,101,98,100,1000
2020-01-02,100,102,99,101,1500
2020-01-06,102,104,101,,2500
`

func (suite *DuckDBDataSourceTestSuite) TestReadAllOrdersByTime() {
	ds := suite.newDataSource(DefaultColumnMapping())
	suite.Require().NoError(ds.Initialize(suite.writeFile("SAMPLE.csv", sampleCSV)))

	var bars []types.MarketData

	for data, err := range ds.ReadAll(optional.None[time.Time](), optional.None[time.Time]()) {
		suite.Require().NoError(err)

		bars = append(bars, data)
	}

	suite.Require().Len(bars, 4)
	suite.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Time.UTC())
	suite.Equal(100.0, bars[0].Close)
	suite.Equal(1000.0, bars[0].Volume)
	suite.Equal("SAMPLE", bars[0].Symbol)
	suite.Equal(102.0, bars[2].Close)
	suite.True(math.IsNaN(bars[3].Close))
}

func (suite *DuckDBDataSourceTestSuite) TestCountWithRange() {
	ds := suite.newDataSource(DefaultColumnMapping())
	suite.Require().NoError(ds.Initialize(suite.writeFile("SAMPLE.csv", sampleCSV)))

	count, err := ds.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(4, count)

	count, err = ds.Count(
		optional.Some(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)),
		optional.Some(time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC)),
	)
	suite.NoError(err)
	suite.Equal(2, count)
}

func (suite *DuckDBDataSourceTestSuite) TestColumnMapping() {
	content := `time,symbol,open,high,low,close,volume
2024-03-01 09:30:00,AAPL,10,11,9,10.5,100
2024-03-01 09:31:00,AAPL,10.5,11,10,10.8,120
`
	ds := suite.newDataSource(ColumnMapping{
		Time:   "time",
		Open:   "open",
		High:   "high",
		Low:    "low",
		Close:  "close",
		Volume: "volume",
	})
	suite.Require().NoError(ds.Initialize(suite.writeFile("minute.csv", content)))

	symbols, err := ds.GetAllSymbols()
	suite.NoError(err)
	suite.Equal([]string{"AAPL"}, symbols)

	series, err := LoadPriceSeries(ds, optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Equal("AAPL", series.Symbol())
	suite.Equal([]float64{10.5, 10.8}, series.Closes())
}

func (suite *DuckDBDataSourceTestSuite) TestMissingColumn() {
	content := `date,Open,High,Low,Volume
2020-01-01,1,2,0.5,10
`
	ds := suite.newDataSource(DefaultColumnMapping())
	err := ds.Initialize(suite.writeFile("broken.csv", content))

	suite.Error(err)
	suite.Equal(errors.ErrCodeMissingColumn, errors.GetCode(err))
	suite.True(errors.IsColumnError(err))
	suite.True(errors.IsConfigurationError(err))
	suite.Contains(err.Error(), "Close")
}

func (suite *DuckDBDataSourceTestSuite) TestUnsupportedFormat() {
	ds := suite.newDataSource(DefaultColumnMapping())
	err := ds.Initialize(suite.writeFile("prices.json", "{}"))

	suite.Equal(errors.ErrCodeUnsupportedFormat, errors.GetCode(err))
}

func (suite *DuckDBDataSourceTestSuite) TestLoadPriceSeriesRejectsDuplicates() {
	content := `date,Open,High,Low,Close,Volume
2020-01-01,1,1,1,1,1
2020-01-01,2,2,2,2,2
`
	ds := suite.newDataSource(DefaultColumnMapping())
	suite.Require().NoError(ds.Initialize(suite.writeFile("dup.csv", content)))

	_, err := LoadPriceSeries(ds, optional.None[time.Time](), optional.None[time.Time]())
	suite.Equal(errors.ErrCodeUnorderedData, errors.GetCode(err))
}

func (suite *DuckDBDataSourceTestSuite) TestLoadPriceSeriesEmptyRange() {
	ds := suite.newDataSource(DefaultColumnMapping())
	suite.Require().NoError(ds.Initialize(suite.writeFile("SAMPLE.csv", sampleCSV)))

	_, err := LoadPriceSeries(ds, optional.Some(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)), optional.None[time.Time]())
	suite.Equal(errors.ErrCodeDataNotFound, errors.GetCode(err))
}

func (suite *DuckDBDataSourceTestSuite) TestLoadPriceSeriesMixedSymbols() {
	content := `date,symbol,Open,High,Low,Close,Volume
2020-01-01,AAA,1,1,1,1,1
2020-01-02,BBB,2,2,2,2,2
`
	ds := suite.newDataSource(DefaultColumnMapping())
	suite.Require().NoError(ds.Initialize(suite.writeFile("mixed.csv", content)))

	_, err := LoadPriceSeries(ds, optional.None[time.Time](), optional.None[time.Time]())
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *DuckDBDataSourceTestSuite) TestHelpers() {
	format, err := DetectFormat("data/AAPL.PARQUET")
	suite.NoError(err)
	suite.Equal(FormatParquet, format)

	suite.Equal("AAPL_2020", SymbolFromPath("/tmp/data/AAPL_2020.parquet"))
	suite.Equal(`"a""b"`, quoteIdentifier(`a"b`))
	suite.Equal(`it''s`, quoteLiteral(`it's`))
}
