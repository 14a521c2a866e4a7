package writer

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const csvTimeLayout = "2006-01-02 15:04:05"

type csvRow struct {
	Date   string  `csv:"date"`
	Symbol string  `csv:"symbol"`
	Open   float64 `csv:"Open"`
	High   float64 `csv:"High"`
	Low    float64 `csv:"Low"`
	Close  float64 `csv:"Close"`
	Volume float64 `csv:"Volume"`
}

// CSVWriter buffers bars in memory and marshals them with gocsv on Finalize.
type CSVWriter struct {
	outputPath  string
	rows        []*csvRow
	initialized bool
}

// NewCSVWriter creates a new CSVWriter.
func NewCSVWriter(outputPath string) MarketDataWriter {
	return &CSVWriter{
		outputPath: outputPath,
	}
}

// Initialize implements MarketDataWriter.
func (w *CSVWriter) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create output directory", err)
	}

	w.rows = nil
	w.initialized = true

	return nil
}

// Write implements MarketDataWriter.
func (w *CSVWriter) Write(data types.MarketData) error {
	if !w.initialized {
		return errors.New(errors.ErrCodeWriterNotInitialized, "writer not initialized")
	}

	w.rows = append(w.rows, &csvRow{
		Date:   data.Time.UTC().Format(csvTimeLayout),
		Symbol: data.Symbol,
		Open:   data.Open,
		High:   data.High,
		Low:    data.Low,
		Close:  data.Close,
		Volume: data.Volume,
	})

	return nil
}

// Finalize implements MarketDataWriter.
func (w *CSVWriter) Finalize() (string, error) {
	if !w.initialized {
		return "", errors.New(errors.ErrCodeWriterNotInitialized, "writer not initialized")
	}

	file, err := os.Create(w.outputPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to create csv file", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&w.rows, file); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to write csv file", err)
	}

	return w.outputPath, nil
}

// Close implements MarketDataWriter.
func (w *CSVWriter) Close() error {
	w.rows = nil
	w.initialized = false

	return nil
}

// GetOutputPath implements MarketDataWriter.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
