package engine

import (
	"math"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite is a test suite for utils package
type UtilsTestSuite struct {
	suite.Suite
}

// TestUtilsSuite runs the test suite
func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestGetResultFolder() {
	tests := []struct {
		name         string
		dataPath     string
		strategyName string
		startTime    optional.Option[time.Time]
		endTime      optional.Option[time.Time]
		expectedPath string
	}{
		{
			name:         "Basic case without time range",
			dataPath:     "/path/to/data.csv",
			strategyName: "MA_Crossover_20_50",
			startTime:    optional.None[time.Time](),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/MA_Crossover_20_50/data",
		},
		{
			name:         "Case with time range",
			dataPath:     "/path/to/data.csv",
			strategyName: "MA_Crossover_20_50",
			startTime:    optional.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			endTime:      optional.Some(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
			expectedPath: "/results/MA_Crossover_20_50/20230101_20231231/data",
		},
		{
			name:         "Case with only start time",
			dataPath:     "/path/to/AAPL.parquet",
			strategyName: "RSI_14_30_70",
			startTime:    optional.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/RSI_14_30_70/20230101_all/AAPL",
		},
		{
			name:         "Case with only end time",
			dataPath:     "/path/to/AAPL.parquet",
			strategyName: "RSI_14_30_70",
			startTime:    optional.None[time.Time](),
			endTime:      optional.Some(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
			expectedPath: "/results/RSI_14_30_70/all_20231231/AAPL",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := DefaultConfig()
			config.StartTime = tc.startTime
			config.EndTime = tc.endTime

			suite.Equal(tc.expectedPath, getResultFolder("/results", config, tc.strategyName, tc.dataPath))
		})
	}
}

func (suite *UtilsTestSuite) TestDataFileName() {
	suite.Equal("BTC", dataFileName("/a/BTC.csv"))
	suite.Equal("BTC", dataFileName("/b/BTC.parquet"))
	suite.Equal("BTC.2024", dataFileName("BTC.2024.csv"))
}

func (suite *UtilsTestSuite) TestRoundStats() {
	stats := types.BacktestStats{
		InitialCapital:  10000,
		FinalCapital:    10123.456789,
		TotalCommission: 1.23456,
		Metrics: types.Metrics{
			TotalReturn: 0.0123456789,
			SharpeRatio: math.NaN(),
			MaxDrawdown: -0.0456789,
			NTrades:     3,
		},
	}

	rounded := roundStats(stats, 2)

	suite.Equal(10000.0, rounded.InitialCapital)
	suite.Equal(10123.46, rounded.FinalCapital)
	suite.Equal(1.23, rounded.TotalCommission)
	suite.Equal(0.01, rounded.Metrics.TotalReturn)
	suite.Equal(-0.05, rounded.Metrics.MaxDrawdown)
	suite.Equal(3.0, rounded.Metrics.NTrades)
	suite.True(math.IsNaN(rounded.Metrics.SharpeRatio))

	// the input is left untouched
	suite.Equal(10123.456789, stats.FinalCapital)
}
