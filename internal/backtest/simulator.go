// Package backtest replays trading signals against a price series and reduces the
// resulting ledger to performance metrics. Both steps are pure functions over in-memory
// data, so independent runs can be evaluated in parallel by the caller.
package backtest

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SimulatorConfig configures a single backtest run.
type SimulatorConfig struct {
	// InitialCapital is the capital on the first row of the ledger.
	InitialCapital float64 `validate:"gt=0"`
	// PositionSize is the declared fraction of capital to commit. It is recorded in the
	// ledger but the simulator always trades one full unit of exposure: returns are
	// Position(t-1) * Return(t) regardless of this value.
	PositionSize float64 `validate:"gt=0,lte=1"`
	// Commission prices every position change. Nil means no commission.
	Commission commission_fee.CommissionFee `validate:"-"`
}

// DefaultSimulatorConfig returns 10000 of capital, full position size and no commission.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		InitialCapital: 10000,
		PositionSize:   1,
		Commission:     commission_fee.NewZeroCommissionFee(),
	}
}

var validate = validator.New()

// RunBacktest replays signals over series in one forward pass and returns the ledger.
//
// Per timestep t:
//
//	Position(t)       = clamp(Position(t-1) + Signal(t), -1, 1)
//	Return(t)         = Price(t)/Price(t-1) - 1                      (NaN at t=0)
//	StrategyReturn(t) = Position(t-1) * Return(t)                     (NaN at t=0)
//	Capital(t)        = InitialCapital * prod(1 + StrategyReturn) - sum(Commission)
//	Trade(t)          = |Position(t) - Position(t-1)|                 (0 at t=0)
//	Commission(t)     = Commission.Calculate(Trade(t), Price(t))
//	Drawdown(t)       = (Capital(t) - max(Capital(0..t))) / max(Capital(0..t))
//
// Undefined returns (zero or missing previous price) stay NaN in the ledger and leave the
// capital unchanged, so Capital(0) always equals InitialCapital.
func RunBacktest(series *types.PriceSeries, signals []types.Signal, config SimulatorConfig) (*types.Ledger, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid simulator configuration", err)
	}

	if len(signals) != series.Len() {
		return nil, errors.Newf(errors.ErrCodeLengthMismatch,
			"signal count %d does not match series length %d", len(signals), series.Len())
	}

	for i, signal := range signals {
		if !signal.IsValid() {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "invalid signal %d at index %d", int(signal), i)
		}
	}

	commission := config.Commission
	if commission == nil {
		commission = commission_fee.NewZeroCommissionFee()
	}

	bars := series.Bars()
	rows := make([]types.LedgerRow, len(bars))

	position := types.PositionNone
	growth := 1.0
	paid := 0.0
	peak := math.Inf(-1)

	for i, bar := range bars {
		previous := position
		position = position.Apply(signals[i])

		row := types.LedgerRow{
			Time:           bar.Time,
			Signal:         signals[i],
			Price:          bar.Close,
			Position:       position,
			Return:         math.NaN(),
			StrategyReturn: math.NaN(),
		}

		if i > 0 {
			row.Return = simpleReturn(bars[i-1].Close, bar.Close)
			row.StrategyReturn = previous.Exposure() * row.Return
			row.Trade = abs(int(position) - int(previous))
		}

		if !types.IsUndefined(row.StrategyReturn) {
			growth *= 1 + row.StrategyReturn
		}

		if row.Trade > 0 {
			row.Commission = commission.Calculate(float64(row.Trade), bar.Close)
			if !types.IsUndefined(row.Commission) {
				paid += row.Commission
			}
		}

		row.Capital = config.InitialCapital*growth - paid

		if row.Capital > peak {
			peak = row.Capital
		}

		row.CumulativeMax = peak
		row.Drawdown = drawdown(row.Capital, peak)

		rows[i] = row
	}

	return &types.Ledger{
		Symbol:         series.Symbol(),
		InitialCapital: config.InitialCapital,
		PositionSize:   config.PositionSize,
		Rows:           rows,
	}, nil
}

// Result bundles the ledger and metrics of one strategy run.
type Result struct {
	Ledger  *types.Ledger
	Metrics types.Metrics
}

// RunStrategy generates the signals of generator over series, simulates them and computes
// the metrics of the resulting ledger.
func RunStrategy(generator strategy.SignalGenerator, series *types.PriceSeries, config SimulatorConfig) (Result, error) {
	signals, err := generator.GenerateSignals(series)
	if err != nil {
		return Result{}, errors.Wrapf(errors.ErrCodeSignalGeneration, err, "failed to generate signals for %s", generator.Name())
	}

	ledger, err := RunBacktest(series, signals, config)
	if err != nil {
		return Result{}, err
	}

	ledger.Strategy = generator.Name()

	return Result{
		Ledger:  ledger,
		Metrics: ComputeMetrics(ledger),
	}, nil
}

// simpleReturn returns NaN instead of an infinite return when the previous price is zero.
func simpleReturn(previous, current float64) float64 {
	r := current/previous - 1
	if math.IsInf(r, 0) {
		return math.NaN()
	}

	return r
}

func drawdown(capital, peak float64) float64 {
	if peak == 0 || types.IsUndefined(peak) {
		return math.NaN()
	}

	return (capital - peak) / peak
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
