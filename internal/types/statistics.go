package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Metric keys reported for every backtest run.
const (
	MetricTotalReturn      = "total_return"
	MetricAnnualReturn     = "annual_return"
	MetricAnnualVolatility = "annual_volatility"
	MetricSharpeRatio      = "sharpe_ratio"
	MetricMaxDrawdown      = "max_drawdown"
	MetricNTrades          = "n_trades"
	MetricWinRate          = "win_rate"
)

// MetricKeys lists the metric keys in reporting order.
var MetricKeys = []string{
	MetricTotalReturn,
	MetricAnnualReturn,
	MetricAnnualVolatility,
	MetricSharpeRatio,
	MetricMaxDrawdown,
	MetricNTrades,
	MetricWinRate,
}

// Metrics holds the scalar performance statistics of a completed ledger.
type Metrics struct {
	// Capital(last)/Capital(first) - 1.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// (1 + TotalReturn)^(TradingDaysPerYear/n) - 1.
	AnnualReturn float64 `yaml:"annual_return" json:"annual_return"`
	// Sample stdev of strategy returns scaled by sqrt(TradingDaysPerYear).
	AnnualVolatility float64 `yaml:"annual_volatility" json:"annual_volatility"`
	// AnnualReturn / AnnualVolatility, 0 when volatility is 0. No risk free rate.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// Most negative drawdown, 0 for a non-decreasing curve.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// Sum of position changes. Reversals count 2.
	NTrades float64 `yaml:"n_trades" json:"n_trades"`
	// Winning rows / (winning + losing rows).
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
}

// AsMap returns the metrics keyed by MetricKeys.
func (m Metrics) AsMap() map[string]float64 {
	return map[string]float64{
		MetricTotalReturn:      m.TotalReturn,
		MetricAnnualReturn:     m.AnnualReturn,
		MetricAnnualVolatility: m.AnnualVolatility,
		MetricSharpeRatio:      m.SharpeRatio,
		MetricMaxDrawdown:      m.MaxDrawdown,
		MetricNTrades:          m.NTrades,
		MetricWinRate:          m.WinRate,
	}
}

// BacktestStats is the summary written next to each run's ledger.
type BacktestStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Strategy is the name of the signal generator.
	Strategy string `yaml:"strategy" json:"strategy"`
	// Symbol of the traded instrument.
	Symbol string `yaml:"symbol" json:"symbol"`
	// EngineVersion is the version of the engine that produced the run.
	EngineVersion string `yaml:"engine_version" json:"engine_version"`
	// DataPath is the path to the market data file used for this backtest.
	DataPath string `yaml:"data_path" json:"data_path"`
	// LedgerPath is the path to the ledger csv file.
	LedgerPath string `yaml:"ledger_path" json:"ledger_path"`
	// Rows is the number of ledger rows.
	Rows int `yaml:"rows" json:"rows"`
	// InitialCapital of the account.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	// FinalCapital on the last ledger row.
	FinalCapital float64 `yaml:"final_capital" json:"final_capital"`
	// PositionSize as configured. Informational only, returns use full exposure.
	PositionSize float64 `yaml:"position_size" json:"position_size"`
	// TotalCommission charged over the run.
	TotalCommission float64 `yaml:"total_commission" json:"total_commission"`
	// Metrics of the run.
	Metrics Metrics `yaml:"metrics" json:"metrics"`
}

// WriteBacktestStats writes the stats of one run as YAML.
func WriteBacktestStats(path string, stats BacktestStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest stats to file: %w", err)
	}

	return nil
}

// ReadBacktestStats reads stats previously written by WriteBacktestStats.
func ReadBacktestStats(path string) (BacktestStats, error) {
	var stats BacktestStats

	data, err := os.ReadFile(path)
	if err != nil {
		return stats, fmt.Errorf("failed to read backtest stats: %w", err)
	}

	if err := yaml.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("failed to unmarshal backtest stats: %w", err)
	}

	return stats, nil
}
