package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// MovingAverageCrossoverConfig holds the windows of the two simple moving averages.
type MovingAverageCrossoverConfig struct {
	FastWindow int `yaml:"fast_window" json:"fast_window" validate:"gt=0" jsonschema:"title=Fast Window,description=Period of the fast simple moving average,minimum=1,default=20"`
	SlowWindow int `yaml:"slow_window" json:"slow_window" validate:"gt=0,gtfield=FastWindow" jsonschema:"title=Slow Window,description=Period of the slow simple moving average; must be greater than the fast window,minimum=2,default=50"`
}

// DefaultMovingAverageCrossoverConfig returns the 20/50 crossover.
func DefaultMovingAverageCrossoverConfig() MovingAverageCrossoverConfig {
	return MovingAverageCrossoverConfig{
		FastWindow: 20,
		SlowWindow: 50,
	}
}

// MovingAverageCrossover emits an event whenever the fast SMA of Close crosses the slow one.
//
// The directional state is +1 while fast > slow, -1 while fast < slow and 0 on ties or during
// warm-up. The emitted signal is the first difference of that state, so a direct flip from
// below to above yields SignalReverseLong (+2) on a single bar. The first bar always holds.
type MovingAverageCrossover struct {
	config MovingAverageCrossoverConfig
}

// NewMovingAverageCrossover creates a crossover strategy, validating fast < slow.
func NewMovingAverageCrossover(fastWindow, slowWindow int) (*MovingAverageCrossover, error) {
	return NewMovingAverageCrossoverFromConfig(MovingAverageCrossoverConfig{
		FastWindow: fastWindow,
		SlowWindow: slowWindow,
	})
}

// NewMovingAverageCrossoverFromConfig creates a crossover strategy from a decoded configuration.
func NewMovingAverageCrossoverFromConfig(config MovingAverageCrossoverConfig) (*MovingAverageCrossover, error) {
	if err := validateConfig("moving average crossover", config); err != nil {
		return nil, err
	}

	return &MovingAverageCrossover{config: config}, nil
}

// Name implements SignalGenerator.
func (s *MovingAverageCrossover) Name() string {
	return fmt.Sprintf("MA_Crossover_%d_%d", s.config.FastWindow, s.config.SlowWindow)
}

// Config returns the strategy configuration.
func (s *MovingAverageCrossover) Config() MovingAverageCrossoverConfig {
	return s.config
}

// GenerateSignals implements SignalGenerator.
func (s *MovingAverageCrossover) GenerateSignals(series *types.PriceSeries) ([]types.Signal, error) {
	fast := s.average(series, s.config.FastWindow)
	slow := s.average(series, s.config.SlowWindow)

	signals := make([]types.Signal, series.Len())
	prev := 0

	for i := range signals {
		current := state(fast[i], slow[i])
		if i > 0 {
			signals[i] = types.Signal(current - prev)
		}

		prev = current
	}

	return signals, nil
}

// average reuses a precomputed SMA column when the series carries one.
func (s *MovingAverageCrossover) average(series *types.PriceSeries, window int) []float64 {
	if values, ok := series.Column(indicator.SMAColumn(window)); ok {
		return values
	}

	return indicator.SimpleMovingAverage(series.Closes(), window)
}
