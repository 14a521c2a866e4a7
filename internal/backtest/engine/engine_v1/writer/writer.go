package writer

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const (
	LedgerFileName = "ledger.csv"
	StatsFileName  = "stats.yaml"
)

// ResultWriter persists the output of one backtest run.
type ResultWriter interface {
	// WriteLedger writes the ledger rows and returns the file path.
	WriteLedger(ledger *types.Ledger) (string, error)
	// WriteStats writes the run summary and returns the file path.
	WriteStats(stats types.BacktestStats) (string, error)
	// Folder returns the run folder.
	Folder() string
}

// FileResultWriter writes ledger.csv and stats.yaml into a run folder.
type FileResultWriter struct {
	folder string
}

// NewFileResultWriter creates the run folder if needed.
func NewFileResultWriter(folder string) (ResultWriter, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeBacktestWriteFailed, err, "failed to create result folder %s", folder)
	}

	return &FileResultWriter{folder: folder}, nil
}

// Folder implements ResultWriter.
func (w *FileResultWriter) Folder() string {
	return w.folder
}

// WriteLedger implements ResultWriter. Undefined values are written as NaN.
func (w *FileResultWriter) WriteLedger(ledger *types.Ledger) (string, error) {
	path := filepath.Join(w.folder, LedgerFileName)

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create ledger file", err)
	}
	defer file.Close()

	rows := ledger.Rows
	if rows == nil {
		rows = []types.LedgerRow{}
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write ledger", err)
	}

	return path, nil
}

// WriteStats implements ResultWriter.
func (w *FileResultWriter) WriteStats(stats types.BacktestStats) (string, error) {
	path := filepath.Join(w.folder, StatsFileName)

	if err := types.WriteBacktestStats(path, stats); err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write stats", err)
	}

	return path, nil
}

// ReadLedger reads a ledger.csv written by WriteLedger.
func ReadLedger(path string) ([]types.LedgerRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataNotFound, "failed to open ledger file", err)
	}
	defer file.Close()

	var rows []types.LedgerRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read ledger", err)
	}

	return rows, nil
}
