package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// RSI represents the Relative Strength Index indicator.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) < 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects at least 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		return invalidTypeError("period", "int")
	}

	if period <= 0 {
		return invalidPeriodError("period", period)
	}

	r.period = period

	return nil
}

// Columns returns the column name, e.g. RSI14.
func (r *RSI) Columns() []string {
	return []string{RSIColumn(r.period)}
}

// Apply attaches the RSI column.
func (r *RSI) Apply(series *types.PriceSeries) (*types.PriceSeries, error) {
	return series.WithColumn(RSIColumn(r.period), RelativeStrengthIndex(series.Closes(), r.period))
}

// RSIColumn returns the column name used for an RSI of the given period.
func RSIColumn(period int) string {
	return fmt.Sprintf("RSI%d", period)
}
