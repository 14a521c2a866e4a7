package types

import "time"

// LedgerRow is the simulator's account state at one timestep.
type LedgerRow struct {
	Time     time.Time `csv:"time"`
	Signal   Signal    `csv:"signal"`
	Price    float64   `csv:"price"`
	Position Position  `csv:"position"`
	// Return is the simple price return over [t-1, t]. NaN at t=0.
	Return float64 `csv:"returns"`
	// StrategyReturn is Position(t-1) * Return(t). NaN at t=0.
	StrategyReturn float64 `csv:"strategy_returns"`
	Capital        float64 `csv:"capital"`
	// Trade is |Position(t) - Position(t-1)|, so a reversal counts 2.
	Trade         int     `csv:"trade"`
	Commission    float64 `csv:"commission"`
	CumulativeMax float64 `csv:"cummax"`
	// Drawdown is (Capital - CumulativeMax) / CumulativeMax, never positive.
	Drawdown float64 `csv:"drawdown"`
}

// Ledger is the per-timestep output of one backtest run.
type Ledger struct {
	Strategy       string
	Symbol         string
	InitialCapital float64
	PositionSize   float64
	Rows           []LedgerRow
}

// Len returns the number of rows.
func (l *Ledger) Len() int {
	return len(l.Rows)
}

// FinalCapital returns the capital on the last row, or the initial capital for an empty ledger.
func (l *Ledger) FinalCapital() float64 {
	if len(l.Rows) == 0 {
		return l.InitialCapital
	}

	return l.Rows[len(l.Rows)-1].Capital
}

// Capitals returns the capital curve.
func (l *Ledger) Capitals() []float64 {
	out := make([]float64, len(l.Rows))
	for i, row := range l.Rows {
		out[i] = row.Capital
	}

	return out
}

// TotalCommission sums the commission charged over the whole run.
func (l *Ledger) TotalCommission() float64 {
	total := 0.0
	for _, row := range l.Rows {
		total += row.Commission
	}

	return total
}
