package engine

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/shopspring/decimal"
)

// getResultFolder returns <results>/<strategy>/[<start>_<end>/]<data file name>.
func getResultFolder(resultsFolder string, config BacktestEngineV1Config, strategyName string, dataPath string) string {
	strategyFolder := filepath.Join(resultsFolder, strategyName)

	// Create data folder with time range if specified
	var dataFolder string

	if config.StartTime.IsSome() || config.EndTime.IsSome() {
		startTimeStr := "all"
		endTimeStr := "all"

		if config.StartTime.IsSome() {
			startTimeStr = config.StartTime.Unwrap().Format("20060102")
		}

		if config.EndTime.IsSome() {
			endTimeStr = config.EndTime.Unwrap().Format("20060102")
		}

		timeRange := fmt.Sprintf("%s_%s", startTimeStr, endTimeStr)
		dataFolder = filepath.Join(strategyFolder, timeRange)
	} else {
		dataFolder = strategyFolder
	}

	// Add data file name as the final folder
	return filepath.Join(dataFolder, dataFileName(dataPath))
}

// dataFileName is the base name of dataPath without its extension.
func dataFileName(dataPath string) string {
	return strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))
}

// roundStats rounds every money and metric value to precision decimals.
func roundStats(stats types.BacktestStats, precision int) types.BacktestStats {
	places := int32(precision)

	stats.InitialCapital = round(stats.InitialCapital, places)
	stats.FinalCapital = round(stats.FinalCapital, places)
	stats.TotalCommission = round(stats.TotalCommission, places)
	stats.Metrics = types.Metrics{
		TotalReturn:      round(stats.Metrics.TotalReturn, places),
		AnnualReturn:     round(stats.Metrics.AnnualReturn, places),
		AnnualVolatility: round(stats.Metrics.AnnualVolatility, places),
		SharpeRatio:      round(stats.Metrics.SharpeRatio, places),
		MaxDrawdown:      round(stats.Metrics.MaxDrawdown, places),
		NTrades:          round(stats.Metrics.NTrades, places),
		WinRate:          round(stats.Metrics.WinRate, places),
	}

	return stats
}

// round leaves NaN and infinite values untouched, decimal cannot represent them.
func round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}

	rounded, _ := decimal.NewFromFloat(value).Round(places).Float64()

	return rounded
}
