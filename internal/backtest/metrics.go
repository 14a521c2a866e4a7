package backtest

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// TradingDaysPerYear is the calendar used to annualize returns and volatility.
const TradingDaysPerYear = 252

// ComputeMetrics reduces a ledger to its performance statistics. It never modifies the
// ledger; an empty ledger yields zero metrics.
func ComputeMetrics(ledger *types.Ledger) types.Metrics {
	if ledger == nil || ledger.Len() == 0 {
		return types.Metrics{}
	}

	rows := ledger.Rows
	n := float64(len(rows))

	totalReturn := rows[len(rows)-1].Capital/rows[0].Capital - 1
	annualReturn := math.Pow(1+totalReturn, TradingDaysPerYear/n) - 1

	returns := make([]float64, 0, len(rows))
	wins, losses := 0, 0
	maxDrawdown := 0.0
	trades := 0

	for _, row := range rows {
		trades += row.Trade

		if !math.IsNaN(row.Drawdown) && row.Drawdown < maxDrawdown {
			maxDrawdown = row.Drawdown
		}

		if types.IsUndefined(row.StrategyReturn) {
			continue
		}

		returns = append(returns, row.StrategyReturn)

		switch {
		case row.StrategyReturn > 0:
			wins++
		case row.StrategyReturn < 0:
			losses++
		}
	}

	volatility := sampleStdDev(returns) * math.Sqrt(TradingDaysPerYear)

	sharpe := 0.0
	if volatility > 0 {
		sharpe = annualReturn / volatility
	}

	winRate := 0.0
	if wins+losses > 0 {
		winRate = float64(wins) / float64(wins+losses)
	}

	return types.Metrics{
		TotalReturn:      totalReturn,
		AnnualReturn:     annualReturn,
		AnnualVolatility: volatility,
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDrawdown,
		NTrades:          float64(trades),
		WinRate:          winRate,
	}
}

// sampleStdDev uses the n-1 denominator and returns 0 for fewer than two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	sq := 0.0
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}

	return math.Sqrt(sq / float64(len(values)-1))
}
