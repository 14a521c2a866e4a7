package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// BollingerBands indicator: an SMA middle band with bands numStdDev sample
// standard deviations above and below it.
type BollingerBands struct {
	period    int
	numStdDev float64
}

// NewBollingerBands creates a new BollingerBands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period:    20,
		numStdDev: 2.0,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands. Expected parameters: period (int), numStdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter,
			"Config expects 2 parameters: period (int), numStdDev (float64)")
	}

	period, err := intParam(params[0], "period")
	if err != nil {
		return err
	}

	if period <= 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be greater than 1, got %d", period)
	}

	numStdDev, err := floatParam(params[1], "numStdDev")
	if err != nil {
		return err
	}

	if numStdDev <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "numStdDev must be positive, got %f", numStdDev)
	}

	bb.period = period
	bb.numStdDev = numStdDev

	return nil
}

func (bb *BollingerBands) Columns() []string {
	return []string{ColumnBBMiddle, ColumnBBUpper, ColumnBBLower}
}

// Apply attaches the middle, upper and lower bands.
func (bb *BollingerBands) Apply(series *types.PriceSeries) (*types.PriceSeries, error) {
	closes := series.Closes()
	middle := SimpleMovingAverage(closes, bb.period)
	std := RollingStdDev(closes, bb.period)

	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))

	for i := range closes {
		upper[i] = middle[i] + std[i]*bb.numStdDev
		lower[i] = middle[i] - std[i]*bb.numStdDev
	}

	return attach(series, map[string][]float64{
		ColumnBBMiddle: middle,
		ColumnBBUpper:  upper,
		ColumnBBLower:  lower,
	}, bb.Columns())
}
