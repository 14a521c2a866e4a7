package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// EMA represents the Exponential Moving Average indicator.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := intParam(params[0], "period")
	if err != nil {
		return err
	}

	if period <= 0 {
		return invalidPeriodError("period", period)
	}

	e.period = period

	return nil
}

func (e *EMA) Columns() []string {
	return []string{EMAColumn(e.period)}
}

// Apply attaches the EMA of the Close column.
func (e *EMA) Apply(series *types.PriceSeries) (*types.PriceSeries, error) {
	return series.WithColumn(EMAColumn(e.period), ExponentialMovingAverage(series.Closes(), e.period))
}

// EMAColumn returns the column name used for an EMA of the given period.
func EMAColumn(period int) string {
	return fmt.Sprintf("EMA%d", period)
}
