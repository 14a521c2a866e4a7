package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Format is the on-disk format of a market data file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ColumnMapping names the source columns holding each price field. Matching is case
// insensitive. Symbol is optional: when the file has no such column the symbol is taken
// from the file name.
type ColumnMapping struct {
	Time   string `yaml:"time" json:"time" jsonschema:"title=Time Column,default=date"`
	Symbol string `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol Column,default=symbol"`
	Open   string `yaml:"open" json:"open" jsonschema:"title=Open Column,default=Open"`
	High   string `yaml:"high" json:"high" jsonschema:"title=High Column,default=High"`
	Low    string `yaml:"low" json:"low" jsonschema:"title=Low Column,default=Low"`
	Close  string `yaml:"close" json:"close" jsonschema:"title=Close Column,default=Close"`
	Volume string `yaml:"volume" json:"volume" jsonschema:"title=Volume Column,default=Volume"`
}

// DefaultColumnMapping matches files with a date column and capitalised OHLCV headers.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Time:   "date",
		Symbol: "symbol",
		Open:   "Open",
		High:   "High",
		Low:    "Low",
		Close:  "Close",
		Volume: "Volume",
	}
}

// withDefaults fills every empty entry from DefaultColumnMapping.
func (m ColumnMapping) withDefaults() ColumnMapping {
	d := DefaultColumnMapping()

	for _, pair := range []struct {
		value    *string
		fallback string
	}{
		{&m.Time, d.Time},
		{&m.Symbol, d.Symbol},
		{&m.Open, d.Open},
		{&m.High, d.High},
		{&m.Low, d.Low},
		{&m.Close, d.Close},
		{&m.Volume, d.Volume},
	} {
		if *pair.value == "" {
			*pair.value = pair.fallback
		}
	}

	return m
}

type DataSource interface {
	// Initialize loads the market data file at path (csv or parquet). Missing price
	// columns are reported here, before any data is read.
	Initialize(path string) error
	// ReadAll reads all the data ordered by time and yields it to the caller
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of rows in the data source
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// GetAllSymbols returns the distinct symbols found in the data
	GetAllSymbols() ([]string, error)
	// Close closes the data source and releases any resources
	Close() error
}
