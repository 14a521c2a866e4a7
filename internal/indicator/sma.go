package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SMA indicator implements Simple Moving Average calculation.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator with default configuration.
func NewSMA() Indicator {
	return &SMA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (m *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA. Expected parameters: period (int).
func (m *SMA) Config(params ...any) error {
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

	m.period = period

	return nil
}

// Columns returns the column name, e.g. SMA20.
func (m *SMA) Columns() []string {
	return []string{SMAColumn(m.period)}
}

// Apply attaches the SMA of the Close column.
func (m *SMA) Apply(series *types.PriceSeries) (*types.PriceSeries, error) {
	return series.WithColumn(SMAColumn(m.period), SimpleMovingAverage(series.Closes(), m.period))
}

// SMAColumn returns the column name used for an SMA of the given period.
func SMAColumn(period int) string {
	return fmt.Sprintf("SMA%d", period)
}
