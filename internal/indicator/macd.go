package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with the usual 12/26/9 configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator.
// Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter,
			"Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	names := []string{"fastPeriod", "slowPeriod", "signalPeriod"}
	periods := make([]int, len(params))

	for i, p := range params {
		period, err := intParam(p, names[i])
		if err != nil {
			return err
		}

		if period <= 0 {
			return invalidPeriodError(names[i], period)
		}

		periods[i] = period
	}

	if periods[0] >= periods[1] {
		return errors.Newf(errors.ErrCodeInvalidPeriod,
			"fastPeriod (%d) must be less than slowPeriod (%d)", periods[0], periods[1])
	}

	m.fastPeriod, m.slowPeriod, m.signalPeriod = periods[0], periods[1], periods[2]

	return nil
}

func (m *MACD) Columns() []string {
	return []string{ColumnMACD, ColumnMACDSignal, ColumnMACDHistogram}
}

// Apply attaches the MACD line, its signal line and the histogram.
func (m *MACD) Apply(series *types.PriceSeries) (*types.PriceSeries, error) {
	closes := series.Closes()
	fast := ExponentialMovingAverage(closes, m.fastPeriod)
	slow := ExponentialMovingAverage(closes, m.slowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	signal := ExponentialMovingAverage(line, m.signalPeriod)

	histogram := make([]float64, len(closes))
	for i := range closes {
		histogram[i] = line[i] - signal[i]
	}

	return attach(series, map[string][]float64{
		ColumnMACD:          line,
		ColumnMACDSignal:    signal,
		ColumnMACDHistogram: histogram,
	}, m.Columns())
}
