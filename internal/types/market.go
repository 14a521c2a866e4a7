package types

import (
	"math"
	"sort"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Standard price column names. Indicator columns use their own names (see the indicator package).
const (
	ColumnOpen   = "Open"
	ColumnHigh   = "High"
	ColumnLow    = "Low"
	ColumnClose  = "Close"
	ColumnVolume = "Volume"
)

// MarketData is a single OHLCV bar.
type MarketData struct {
	Time   time.Time `csv:"time"`
	Symbol string    `csv:"symbol"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// PriceSeries is an immutable, time ordered table of bars plus derived indicator columns.
// Indicator values are NaN during their warm-up window.
//
// A PriceSeries is safe for concurrent reads: nothing mutates it after construction and
// every accessor returns a copy.
type PriceSeries struct {
	symbol  string
	bars    []MarketData
	columns map[string][]float64
}

// NewPriceSeries builds a PriceSeries from bars. The time keys must be strictly increasing.
func NewPriceSeries(symbol string, bars []MarketData) (*PriceSeries, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return nil, errors.Newf(errors.ErrCodeUnorderedData,
				"time keys must be strictly increasing: row %d (%s) is not after row %d (%s)",
				i, bars[i].Time.Format(time.RFC3339), i-1, bars[i-1].Time.Format(time.RFC3339))
		}
	}

	owned := make([]MarketData, len(bars))
	copy(owned, bars)

	return &PriceSeries{
		symbol:  symbol,
		bars:    owned,
		columns: make(map[string][]float64),
	}, nil
}

// Symbol returns the instrument symbol of the series.
func (s *PriceSeries) Symbol() string {
	return s.symbol
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	return len(s.bars)
}

// Bar returns the bar at index i.
func (s *PriceSeries) Bar(i int) MarketData {
	return s.bars[i]
}

// Bars returns a copy of all bars.
func (s *PriceSeries) Bars() []MarketData {
	out := make([]MarketData, len(s.bars))
	copy(out, s.bars)

	return out
}

// Times returns the time index.
func (s *PriceSeries) Times() []time.Time {
	out := make([]time.Time, len(s.bars))
	for i, bar := range s.bars {
		out[i] = bar.Time
	}

	return out
}

// Closes returns the Close column.
func (s *PriceSeries) Closes() []float64 {
	values, _ := s.Column(ColumnClose)

	return values
}

// HasColumn reports whether name is a price column or an attached indicator column.
func (s *PriceSeries) HasColumn(name string) bool {
	_, ok := s.Column(name)

	return ok
}

// Column returns a copy of the named column. Price columns (Open, High, Low, Close, Volume)
// are always present; indicator columns only once attached with WithColumn.
func (s *PriceSeries) Column(name string) ([]float64, bool) {
	var pick func(MarketData) float64

	switch name {
	case ColumnOpen:
		pick = func(b MarketData) float64 { return b.Open }
	case ColumnHigh:
		pick = func(b MarketData) float64 { return b.High }
	case ColumnLow:
		pick = func(b MarketData) float64 { return b.Low }
	case ColumnClose:
		pick = func(b MarketData) float64 { return b.Close }
	case ColumnVolume:
		pick = func(b MarketData) float64 { return b.Volume }
	default:
		values, ok := s.columns[name]
		if !ok {
			return nil, false
		}

		out := make([]float64, len(values))
		copy(out, values)

		return out, true
	}

	out := make([]float64, len(s.bars))
	for i, bar := range s.bars {
		out[i] = pick(bar)
	}

	return out, true
}

// IndicatorColumns returns the sorted names of the attached indicator columns.
func (s *PriceSeries) IndicatorColumns() []string {
	names := make([]string, 0, len(s.columns))
	for name := range s.columns {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// WithColumn returns a new series carrying an extra (or replaced) indicator column.
// The receiver is left untouched. Price column names are reserved.
func (s *PriceSeries) WithColumn(name string, values []float64) (*PriceSeries, error) {
	switch name {
	case ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume, "":
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "column name %q is reserved", name)
	}

	if len(values) != len(s.bars) {
		return nil, errors.Newf(errors.ErrCodeLengthMismatch,
			"column %s has %d values, series has %d rows", name, len(values), len(s.bars))
	}

	columns := make(map[string][]float64, len(s.columns)+1)
	for k, v := range s.columns {
		columns[k] = v
	}

	owned := make([]float64, len(values))
	copy(owned, values)
	columns[name] = owned

	return &PriceSeries{
		symbol:  s.symbol,
		bars:    s.bars,
		columns: columns,
	}, nil
}

// IsUndefined reports whether v is a missing numeric value (NaN or infinite).
func IsUndefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
