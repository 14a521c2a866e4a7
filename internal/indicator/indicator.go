package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement.
// Indicators are pure: Apply returns a new series with the indicator columns attached
// and never mutates its input. Values inside the warm-up window are NaN.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config configures the indicator parameters
	Config(params ...any) error
	// Columns returns the names of the columns Apply attaches
	Columns() []string
	// Apply computes the indicator over the Close column
	Apply(series *types.PriceSeries) (*types.PriceSeries, error)
}

// Column names attached by the indicators.
const (
	ColumnMACD          = "MACD"
	ColumnMACDSignal    = "MACD_Signal"
	ColumnMACDHistogram = "MACD_Histogram"
	ColumnBBMiddle      = "BB_Middle"
	ColumnBBUpper       = "BB_Upper"
	ColumnBBLower       = "BB_Lower"
)

func intParam(param any, name string) (int, error) {
	switch p := param.(type) {
	case int:
		return p, nil
	case float64:
		return int(p), nil
	default:
		return 0, invalidTypeError(name, "int")
	}
}

func floatParam(param any, name string) (float64, error) {
	switch p := param.(type) {
	case float64:
		return p, nil
	case int:
		return float64(p), nil
	default:
		return 0, invalidTypeError(name, "float64")
	}
}

func attach(series *types.PriceSeries, columns map[string][]float64, order []string) (*types.PriceSeries, error) {
	out := series

	for _, name := range order {
		next, err := out.WithColumn(name, columns[name])
		if err != nil {
			return nil, err
		}

		out = next
	}

	return out, nil
}
