package indicator

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// ATR represents the Average True Range indicator, smoothed with an EMA of the true range.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
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

	a.period = period

	return nil
}

func (a *ATR) Columns() []string {
	return []string{fmt.Sprintf("ATR%d", a.period)}
}

// Apply attaches the ATR column. The first bar has no previous close and uses High-Low.
func (a *ATR) Apply(series *types.PriceSeries) (*types.PriceSeries, error) {
	tr := TrueRange(series.Bars())

	return series.WithColumn(a.Columns()[0], ExponentialMovingAverage(tr, a.period))
}

// TrueRange returns max(High-Low, |High-prevClose|, |Low-prevClose|) for every bar.
func TrueRange(bars []types.MarketData) []float64 {
	out := make([]float64, len(bars))

	for i, bar := range bars {
		tr := bar.High - bar.Low

		if i > 0 {
			prevClose := bars[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
		}

		out[i] = tr
	}

	return out
}
