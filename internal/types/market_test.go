package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PriceSeriesTestSuite struct {
	suite.Suite
	start time.Time
}

func TestPriceSeriesSuite(t *testing.T) {
	suite.Run(t, new(PriceSeriesTestSuite))
}

func (suite *PriceSeriesTestSuite) SetupTest() {
	suite.start = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *PriceSeriesTestSuite) bars(closes ...float64) []MarketData {
	bars := make([]MarketData, len(closes))
	for i, c := range closes {
		bars[i] = MarketData{
			Time:   suite.start.AddDate(0, 0, i),
			Symbol: "TEST",
			Open:   c - 1,
			High:   c + 1,
			Low:    c - 2,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *PriceSeriesTestSuite) TestNewPriceSeries() {
	series, err := NewPriceSeries("TEST", suite.bars(100, 101, 102))
	suite.NoError(err)
	suite.Equal("TEST", series.Symbol())
	suite.Equal(3, series.Len())
	suite.Equal([]float64{100, 101, 102}, series.Closes())
	suite.Equal(suite.start.AddDate(0, 0, 2), series.Times()[2])
	suite.Equal(101.0, series.Bar(1).Close)
}

func (suite *PriceSeriesTestSuite) TestNewPriceSeriesEmpty() {
	series, err := NewPriceSeries("TEST", nil)
	suite.NoError(err)
	suite.Equal(0, series.Len())
	suite.Empty(series.Closes())
}

func (suite *PriceSeriesTestSuite) TestNewPriceSeriesRejectsUnorderedTimes() {
	tests := []struct {
		name string
		swap func([]MarketData)
	}{
		{"duplicate time", func(b []MarketData) { b[2].Time = b[1].Time }},
		{"decreasing time", func(b []MarketData) { b[1].Time, b[2].Time = b[2].Time, b[1].Time }},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			bars := suite.bars(1, 2, 3)
			tc.swap(bars)

			_, err := NewPriceSeries("TEST", bars)
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeUnorderedData))
			suite.True(errors.IsConfigurationError(err))
		})
	}
}

func (suite *PriceSeriesTestSuite) TestSeriesIsImmutable() {
	bars := suite.bars(100, 101)
	series, err := NewPriceSeries("TEST", bars)
	suite.NoError(err)

	bars[0].Close = 0
	suite.Equal(100.0, series.Closes()[0])

	closes := series.Closes()
	closes[1] = -1
	suite.Equal(101.0, series.Closes()[1])

	copied := series.Bars()
	copied[0].Close = 5
	suite.Equal(100.0, series.Bar(0).Close)
}

func (suite *PriceSeriesTestSuite) TestColumn() {
	series, err := NewPriceSeries("TEST", suite.bars(10, 20))
	suite.NoError(err)

	tests := []struct {
		name     string
		column   string
		expected []float64
	}{
		{"open", ColumnOpen, []float64{9, 19}},
		{"high", ColumnHigh, []float64{11, 21}},
		{"low", ColumnLow, []float64{8, 18}},
		{"close", ColumnClose, []float64{10, 20}},
		{"volume", ColumnVolume, []float64{1000, 1000}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			values, ok := series.Column(tc.column)
			suite.True(ok)
			suite.Equal(tc.expected, values)
		})
	}

	_, ok := series.Column("RSI")
	suite.False(ok)
}

func (suite *PriceSeriesTestSuite) TestWithColumn() {
	series, err := NewPriceSeries("TEST", suite.bars(10, 20, 30))
	suite.NoError(err)

	withRSI, err := series.WithColumn("RSI", []float64{math.NaN(), 40, 60})
	suite.NoError(err)

	suite.False(series.HasColumn("RSI"))
	suite.True(withRSI.HasColumn("RSI"))
	suite.Equal([]string{"RSI"}, withRSI.IndicatorColumns())

	values, ok := withRSI.Column("RSI")
	suite.True(ok)
	suite.True(math.IsNaN(values[0]))
	suite.Equal(60.0, values[2])

	withBoth, err := withRSI.WithColumn("SMA20", []float64{1, 2, 3})
	suite.NoError(err)
	suite.Equal([]string{"RSI", "SMA20"}, withBoth.IndicatorColumns())
	suite.Equal([]string{"RSI"}, withRSI.IndicatorColumns())
}

func (suite *PriceSeriesTestSuite) TestWithColumnErrors() {
	series, err := NewPriceSeries("TEST", suite.bars(10, 20))
	suite.NoError(err)

	_, err = series.WithColumn("RSI", []float64{1})
	suite.True(errors.HasCode(err, errors.ErrCodeLengthMismatch))

	_, err = series.WithColumn(ColumnClose, []float64{1, 2})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *PriceSeriesTestSuite) TestIsUndefined() {
	suite.True(IsUndefined(math.NaN()))
	suite.True(IsUndefined(math.Inf(1)))
	suite.True(IsUndefined(math.Inf(-1)))
	suite.False(IsUndefined(0))
	suite.False(IsUndefined(-3.5))
}
