package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// defaultSet is the indicator bundle attached by AddAllIndicators.
func defaultSet() []Indicator {
	set := make([]Indicator, 0, 8)

	for _, period := range []int{20, 50, 200} {
		set = append(set, &SMA{period: period})
	}

	for _, period := range []int{20, 50} {
		set = append(set, &EMA{period: period})
	}

	return append(set, NewRSI(), NewMACD(), NewBollingerBands())
}

// AddAllIndicators returns a copy of series carrying SMA20/50/200, EMA20/50, RSI(14),
// MACD(12,26,9) and Bollinger(20, 2) columns.
func AddAllIndicators(series *types.PriceSeries) (*types.PriceSeries, error) {
	return ApplyIndicators(series, defaultSet()...)
}

// ApplyIndicators applies each indicator in order and returns the enriched copy.
func ApplyIndicators(series *types.PriceSeries, indicators ...Indicator) (*types.PriceSeries, error) {
	out := series

	for _, ind := range indicators {
		next, err := ind.Apply(out)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to apply indicator %s", ind.Name())
		}

		out = next
	}

	return out, nil
}
