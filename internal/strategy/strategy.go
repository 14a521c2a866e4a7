// Package strategy turns a price series into discrete trading signals.
//
// Every SignalGenerator is a pure function of its input series: the output has the same
// length and time alignment as the series, leading warm-up values produce no signal and
// ties never trigger an entry. The simulator and the metrics calculator in
// internal/backtest accept the output of any generator.
package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SignalGenerator maps a price series to one signal per bar.
type SignalGenerator interface {
	// Name returns the unique identifier of the configured strategy, e.g. MA_Crossover_20_50.
	Name() string
	// GenerateSignals returns the signal sequence aligned 1:1 with the series bars.
	GenerateSignals(series *types.PriceSeries) ([]types.Signal, error)
}

var validate = validator.New()

func validateConfig(name string, config any) error {
	if err := validate.Struct(config); err != nil {
		return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "invalid %s configuration", name)
	}

	return nil
}

// state maps a comparison to the directional state used by the crossover and RSI rules.
// Undefined inputs and ties map to zero.
func state(a, b float64) int {
	switch {
	case types.IsUndefined(a) || types.IsUndefined(b):
		return 0
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
