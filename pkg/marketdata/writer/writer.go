package writer

import (
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MarketDataWriter defines the interface for writing market data to a destination.
// The written files use the date/symbol/Open/High/Low/Close/Volume header understood by
// the backtest data source without a column mapping.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single market data point.
	Write(data types.MarketData) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// NewWriter picks the writer from the output extension: .parquet or .csv.
func NewWriter(outputPath string) (MarketDataWriter, error) {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".parquet":
		return NewDuckDBWriter(outputPath), nil
	case ".csv":
		return NewCSVWriter(outputPath), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported output file: %s", outputPath)
	}
}

// WriteAll initializes w, writes every bar and finalizes it.
func WriteAll(w MarketDataWriter, data []types.MarketData) (string, error) {
	if err := w.Initialize(); err != nil {
		return "", err
	}
	defer w.Close()

	for _, bar := range data {
		if err := w.Write(bar); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}
