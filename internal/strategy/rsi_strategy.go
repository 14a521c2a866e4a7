package strategy

import (
	"fmt"
	"strconv"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// RSIStrategyConfig holds the RSI window and the two thresholds.
type RSIStrategyConfig struct {
	Window     int     `yaml:"window" json:"window" validate:"gt=0" jsonschema:"title=Window,description=RSI lookback window,minimum=1,default=14"`
	Overbought float64 `yaml:"overbought" json:"overbought" validate:"gte=0,lte=100,gtfield=Oversold" jsonschema:"title=Overbought,description=RSI level above which a sell is emitted,minimum=0,maximum=100,default=70"`
	Oversold   float64 `yaml:"oversold" json:"oversold" validate:"gte=0,lte=100" jsonschema:"title=Oversold,description=RSI level below which a buy is emitted,minimum=0,maximum=100,default=30"`
}

// DefaultRSIStrategyConfig returns RSI(14) with 70/30 thresholds.
func DefaultRSIStrategyConfig() RSIStrategyConfig {
	return RSIStrategyConfig{
		Window:     14,
		Overbought: 70,
		Oversold:   30,
	}
}

// RSIStrategy buys when the RSI drops below the oversold level and sells when it rises
// above the overbought level.
//
// The raw per-bar signal is folded in time order carrying the last acted-on value: a raw
// value equal to it is suppressed to hold, any other value is emitted and becomes the new
// carried value. The fold starts from zero.
type RSIStrategy struct {
	config RSIStrategyConfig
}

// NewRSIStrategy creates an RSI strategy, validating 0 <= oversold < overbought <= 100.
func NewRSIStrategy(window int, overbought, oversold float64) (*RSIStrategy, error) {
	return NewRSIStrategyFromConfig(RSIStrategyConfig{
		Window:     window,
		Overbought: overbought,
		Oversold:   oversold,
	})
}

// NewRSIStrategyFromConfig creates an RSI strategy from a decoded configuration.
func NewRSIStrategyFromConfig(config RSIStrategyConfig) (*RSIStrategy, error) {
	if err := validateConfig("rsi", config); err != nil {
		return nil, err
	}

	return &RSIStrategy{config: config}, nil
}

// Name implements SignalGenerator.
func (s *RSIStrategy) Name() string {
	return fmt.Sprintf("RSI_%d_%s_%s", s.config.Window, formatLevel(s.config.Oversold), formatLevel(s.config.Overbought))
}

// Config returns the strategy configuration.
func (s *RSIStrategy) Config() RSIStrategyConfig {
	return s.config
}

// GenerateSignals implements SignalGenerator. An RSI column of the configured window already
// attached to the series is reused; otherwise the RSI is computed from Close.
func (s *RSIStrategy) GenerateSignals(series *types.PriceSeries) ([]types.Signal, error) {
	rsi, ok := series.Column(indicator.RSIColumn(s.config.Window))
	if !ok {
		rsi = indicator.RelativeStrengthIndex(series.Closes(), s.config.Window)
	}

	signals := make([]types.Signal, len(rsi))
	last := types.SignalHold

	for i, value := range rsi {
		raw := s.raw(value)
		if raw == last {
			continue
		}

		signals[i] = raw
		last = raw
	}

	return signals, nil
}

func (s *RSIStrategy) raw(value float64) types.Signal {
	switch {
	case types.IsUndefined(value):
		return types.SignalHold
	case value < s.config.Oversold:
		return types.SignalBuy
	case value > s.config.Overbought:
		return types.SignalSell
	default:
		return types.SignalHold
	}
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
