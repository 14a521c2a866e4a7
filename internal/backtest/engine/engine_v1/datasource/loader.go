package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// LoadPriceSeries reads every bar of an initialized data source within [start, end] and
// builds a validated PriceSeries. The file must hold exactly one symbol.
func LoadPriceSeries(ds DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) (*types.PriceSeries, error) {
	var bars []types.MarketData

	for data, err := range ds.ReadAll(start, end) {
		if err != nil {
			return nil, err
		}

		bars = append(bars, data)
	}

	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeDataNotFound, "no market data in the selected range")
	}

	symbol := bars[0].Symbol
	for _, bar := range bars[1:] {
		if bar.Symbol != symbol {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
				"data file mixes symbols %s and %s, one symbol per file is supported", symbol, bar.Symbol)
		}
	}

	return types.NewPriceSeries(symbol, bars)
}
