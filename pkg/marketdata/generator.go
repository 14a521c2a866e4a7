package marketdata

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Model is the price process used to synthesise bars.
type Model string

const (
	// ModelTrendCycle is a linear trend plus two sine cycles plus gaussian noise.
	ModelTrendCycle Model = "trend_cycle"
	// ModelRandomWalk is a geometric Brownian motion.
	ModelRandomWalk Model = "random_walk"
)

// AllModels lists every supported Model.
var AllModels = []Model{ModelTrendCycle, ModelRandomWalk}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the trading symbol (e.g., "AAPL", "SPY")
	Symbol string `yaml:"symbol" validate:"required"`
	// Model selects the price process
	Model Model `yaml:"model" validate:"oneof=trend_cycle random_walk"`
	// StartTime is the beginning of the data series
	StartTime time.Time `yaml:"start_time"`
	// Interval is the duration between each bar
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
	// Count is the number of bars to generate
	Count int `yaml:"count" validate:"gt=0"`
	// InitialPrice is the starting price
	InitialPrice float64 `yaml:"initial_price" validate:"gt=0"`
	// Trend is the price added per bar (trend_cycle) or the total drift over the series (random_walk)
	Trend float64 `yaml:"trend"`
	// Volatility is the noise standard deviation in price units (trend_cycle) or
	// the per bar return volatility (random_walk)
	Volatility float64 `yaml:"volatility" validate:"gte=0"`
	// MinVolume and MaxVolume bound the uniformly drawn volume
	MinVolume int `yaml:"min_volume" validate:"gte=0"`
	MaxVolume int `yaml:"max_volume" validate:"gtfield=MinVolume"`
}

// DefaultConfig returns the daily trend and cycle series used by the sample data command:
// 1000 days from 2020-01-01 around 100 + 0.1t + 10 sin(t/100) + 5 sin(t/20).
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:       "SAMPLE",
		Model:        ModelTrendCycle,
		StartTime:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:     24 * time.Hour,
		Count:        1000,
		InitialPrice: 100,
		Trend:        0.1,
		Volatility:   5,
		MinVolume:    1000,
		MaxVolume:    10000,
	}
}

// RandomWalkConfig returns a minute bar geometric Brownian motion configuration.
func RandomWalkConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:       "TEST",
		Model:        ModelRandomWalk,
		StartTime:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:     time.Minute,
		Count:        10000,
		InitialPrice: 100.0,
		Trend:        0.0,
		Volatility:   0.002, // 0.2% per bar
		MinVolume:    7000,
		MaxVolume:    13000,
	}
}

// Generator generates synthetic market data for samples and tests.
type Generator struct {
	rng      *rand.Rand
	validate *validator.Validate
}

// NewGenerator creates a new Generator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		validate: validator.New(),
	}
}

// Generate creates config.Count bars with strictly increasing times.
func (g *Generator) Generate(config GeneratorConfig) ([]types.MarketData, error) {
	if err := g.validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid generator config", err)
	}

	switch config.Model {
	case ModelRandomWalk:
		return g.randomWalk(config), nil
	default:
		return g.trendCycle(config), nil
	}
}

// GenerateSeries is Generate wrapped into a PriceSeries.
func (g *Generator) GenerateSeries(config GeneratorConfig) (*types.PriceSeries, error) {
	bars, err := g.Generate(config)
	if err != nil {
		return nil, err
	}

	return types.NewPriceSeries(config.Symbol, bars)
}

func (g *Generator) trendCycle(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentTime := config.StartTime

	for i := range config.Count {
		t := float64(i)
		close := config.InitialPrice +
			config.Trend*t +
			10*math.Sin(t/100) +
			5*math.Sin(t/20) +
			g.rng.NormFloat64()*config.Volatility

		open := close - g.rng.Float64()*2
		high := math.Max(close+g.rng.Float64()*2, open)
		low := math.Min(close-g.rng.Float64()*2, open)

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: g.volume(config),
		}

		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

func (g *Generator) randomWalk(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime
	drift := config.Trend / float64(config.Count)

	for i := range config.Count {
		open := currentPrice

		close := open * (1 + config.Volatility*g.rng.NormFloat64() + drift)
		if close <= 0 {
			close = open * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension

		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: g.volume(config),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// volume draws an integer volume in [MinVolume, MaxVolume).
func (g *Generator) volume(config GeneratorConfig) float64 {
	return float64(config.MinVolume + g.rng.Intn(config.MaxVolume-config.MinVolume))
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
