package engine

import (
	"context"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error.
// Runs execute concurrently but the engine never invokes two callbacks at the same time.

// OnBacktestStartCallback is called when the entire backtest begins.
type OnBacktestStartCallback func(totalStrategies int, totalDataFiles int) error

// OnBacktestEndCallback is called when the entire backtest completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnDataLoadedCallback is called once a data file has been loaded into a price series,
// before any strategy runs on it.
type OnDataLoadedCallback func(dataFileIndex int, dataFilePath string, totalDataPoints int) error

// OnRunStartCallback is called when processing of a strategy+data file combination begins.
// runID is a unique identifier for this run, generated before processing starts.
type OnRunStartCallback func(runID string, strategyName string, dataFilePath string, totalDataPoints int) error

// OnRunEndCallback is called when processing of a strategy+data file combination ends.
type OnRunEndCallback func(runID string, strategyName string, dataFilePath string, resultFolderPath string, metrics types.Metrics)

// OnProcessDataCallback is called after each completed run with the number of finished runs.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnDataLoaded    *OnDataLoadedCallback
	OnRunStart      *OnRunStartCallback
	OnRunEnd        *OnRunEndCallback
	OnProcessData   *OnProcessDataCallback
}

//nolint:interfacebloat // Engine is a core interface that naturally requires multiple methods
type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// SetConfigPath sets the path (glob) of the strategy configuration files.
	// Every matching file becomes one strategy.
	SetConfigPath(path string) error
	// SetConfigContent sets strategy configurations directly from string content.
	// This is an alternative to SetConfigPath for programmatic API usage.
	SetConfigContent(configs []string) error
	// SetDataPath sets the path to the market data files, one symbol per file.
	// Accepts glob patterns for batch loading (e.g., "data/*.parquet")
	SetDataPath(path string) error
	// SetResultsFolder sets the output directory for saving backtest results.
	// Each run is written to <folder>/<strategy>/[<start>_<end>/]<data file>.
	SetResultsFolder(folder string) error
	// LoadStrategy adds an already configured strategy. Could be called multiple times to load multiple strategies.
	LoadStrategy(strategy strategy.SignalGenerator) error
	// Run evaluates every strategy on every data file and returns the stats of each run,
	// ordered by data file then strategy.
	// The context can be used to cancel the backtest operation.
	// Use LifecycleCallbacks to receive notifications at different phases of the backtest.
	Run(ctx context.Context, callbacks LifecycleCallbacks) ([]types.BacktestStats, error)
	// SetDataSource sets the data source for the engine.
	SetDataSource(dataSource datasource.DataSource) error
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
