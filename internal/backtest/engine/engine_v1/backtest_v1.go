package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-backtest/internal/backtest"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BacktestEngineV1 struct {
	config              BacktestEngineV1Config
	strategies          []strategy.SignalGenerator
	strategyConfigPaths []string
	strategyConfigs     []string
	dataPaths           []string
	resultsFolder       string
	log                 *logger.Logger
	indicatorRegistry   indicator.IndicatorRegistry
	indicators          []indicator.Indicator
	datasource          datasource.DataSource
	// callbackMu serialises lifecycle callbacks fired from concurrent runs
	callbackMu sync.Mutex
	completed  int
}

func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:              DefaultConfig(),
		strategies:          nil,
		strategyConfigPaths: nil,
		strategyConfigs:     nil,
		dataPaths:           nil,
		resultsFolder:       "",
		log:                 nil,
		indicatorRegistry:   indicator.NewDefaultIndicatorRegistry(),
		indicators:          nil,
		datasource:          nil,
	}
}

// NewBacktestEngineV1WithLogger creates an engine that logs to log instead of a
// production logger created on Initialize.
func NewBacktestEngineV1WithLogger(log *logger.Logger) engine.Engine {
	e := NewBacktestEngineV1().(*BacktestEngineV1)
	e.log = log

	return e
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	if b.log == nil {
		var err error

		b.log, err = logger.NewLogger()
		if err != nil {
			return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create logger", err)
		}
	}

	parsed, err := ParseConfig(config)
	if err != nil {
		b.log.Error("Invalid backtest config", zap.Error(err))

		return err
	}

	indicators := make([]indicator.Indicator, 0, len(parsed.Indicators))

	for _, ic := range parsed.Indicators {
		ind, err := b.indicatorRegistry.NewIndicator(ic.Type, ic.Params...)
		if err != nil {
			b.log.Error("Invalid indicator config",
				zap.String("indicator", string(ic.Type)),
				zap.Error(err),
			)

			return errors.Wrapf(errors.ErrCodeBacktestConfigError, err, "invalid indicator %s", ic.Type)
		}

		indicators = append(indicators, ind)
	}

	b.config = parsed
	b.indicators = indicators

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", b.config.InitialCapital),
		zap.String("broker", string(b.config.Broker)),
		zap.Int("max_workers", b.config.MaxWorkers),
		zap.Int("indicators", len(b.indicators)),
	)

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(strategy strategy.SignalGenerator) error {
	if strategy == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "strategy is nil")
	}

	b.strategies = append(b.strategies, strategy)
	b.logger().Debug("Strategy loaded",
		zap.String("strategy", strategy.Name()),
		zap.Int("total_strategies", len(b.strategies)),
	)

	return nil
}

// SetConfigPath implements engine.Engine.
func (b *BacktestEngineV1) SetConfigPath(path string) error {
	// use glob to get all the files that match the path
	files, err := filepath.Glob(path)
	if err != nil {
		b.logger().Error("Failed to set config path",
			zap.String("path", path),
			zap.Error(err),
		)

		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid config path %s", path)
	}

	b.strategyConfigPaths = files
	b.strategyConfigs = nil
	b.logger().Debug("Config paths set",
		zap.Strings("files", files),
	)

	return nil
}

// SetConfigContent implements engine.Engine.
func (b *BacktestEngineV1) SetConfigContent(configs []string) error {
	b.strategyConfigs = configs
	b.strategyConfigPaths = nil
	b.logger().Debug("Config content set",
		zap.Int("count", len(configs)),
	)

	return nil
}

// SetDataPath implements engine.Engine.
func (b *BacktestEngineV1) SetDataPath(path string) error {
	// use glob to get all the files that match the path
	files, err := filepath.Glob(path)
	if err != nil {
		b.logger().Error("Failed to set data path",
			zap.String("path", path),
			zap.Error(err),
		)

		return errors.Wrapf(errors.ErrCodeBacktestDataPathError, err, "invalid data path %s", path)
	}

	// Convert all paths to absolute paths
	absolutePaths := make([]string, len(files))

	for i, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			b.logger().Error("Failed to get absolute path",
				zap.String("path", file),
				zap.Error(err),
			)

			return errors.Wrapf(errors.ErrCodeBacktestDataPathError, err, "invalid data path %s", file)
		}

		absolutePaths[i] = absPath
	}

	b.dataPaths = absolutePaths
	b.logger().Debug("Data paths set",
		zap.Strings("files", absolutePaths),
	)

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder
	b.logger().Debug("Results folder set",
		zap.String("folder", folder),
	)

	return nil
}

// SetDataSource implements engine.Engine. Without one, Run opens an in-memory DuckDB
// data source using the configured column mapping.
func (b *BacktestEngineV1) SetDataSource(datasource datasource.DataSource) error {
	b.datasource = datasource

	return nil
}

// Run implements engine.Engine. Data files are loaded one after the other; the strategies
// of a data file run in parallel, at most MaxWorkers at a time.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (results []types.BacktestStats, err error) {
	if callbacks.OnBacktestEnd != nil {
		defer func() {
			(*callbacks.OnBacktestEnd)(err)
		}()
	}

	strategies, err := b.loadStrategies()
	if err != nil {
		return nil, err
	}

	if err := b.preRunCheck(strategies); err != nil {
		return nil, err
	}

	if b.datasource == nil {
		ds, err := datasource.NewDataSource(":memory:", b.config.Columns, b.logger())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBacktestNoDatasource, "failed to create data source", err)
		}

		b.datasource = ds

		defer func() {
			ds.Close()
			b.datasource = nil
		}()
	}

	if err := os.MkdirAll(b.resultsFolder, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeBacktestWriteFailed, err, "failed to create results folder %s", b.resultsFolder)
	}

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(len(strategies), len(b.dataPaths)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "backtest start callback failed", err)
		}
	}

	b.completed = 0
	totalRuns := len(strategies) * len(b.dataPaths)

	for dataIndex, dataPath := range b.dataPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		series, err := b.loadSeries(dataPath)
		if err != nil {
			return nil, err
		}

		if callbacks.OnDataLoaded != nil {
			if err := (*callbacks.OnDataLoaded)(dataIndex, dataPath, series.Len()); err != nil {
				return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "data loaded callback failed", err)
			}
		}

		stats, err := b.runStrategies(ctx, strategies, series, dataPath, totalRuns, callbacks)
		if err != nil {
			return nil, err
		}

		results = append(results, stats...)
	}

	b.logger().Info("Backtest completed",
		zap.Int("strategies", len(strategies)),
		zap.Int("data_files", len(b.dataPaths)),
		zap.Int("runs", len(results)),
		zap.String("results", b.resultsFolder),
	)

	return results, nil
}

// runStrategies evaluates every strategy on one series. Results keep the strategy order.
func (b *BacktestEngineV1) runStrategies(
	ctx context.Context,
	strategies []strategy.SignalGenerator,
	series *types.PriceSeries,
	dataPath string,
	totalRuns int,
	callbacks engine.LifecycleCallbacks,
) ([]types.BacktestStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.MaxWorkers)

	stats := make([]types.BacktestStats, len(strategies))

	for i, generator := range strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s, err := b.runOne(generator, series, dataPath, callbacks)
			if err != nil {
				return err
			}

			stats[i] = s

			return b.progress(totalRuns, callbacks)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (b *BacktestEngineV1) runOne(
	generator strategy.SignalGenerator,
	series *types.PriceSeries,
	dataPath string,
	callbacks engine.LifecycleCallbacks,
) (types.BacktestStats, error) {
	runID := uuid.New().String()
	name := generator.Name()
	resultFolderPath := getResultFolder(b.resultsFolder, b.config, name, dataPath)

	if callbacks.OnRunStart != nil {
		b.callbackMu.Lock()
		err := (*callbacks.OnRunStart)(runID, name, dataPath, series.Len())
		b.callbackMu.Unlock()

		if err != nil {
			return types.BacktestStats{}, errors.Wrap(errors.ErrCodeCallbackFailed, "run start callback failed", err)
		}
	}

	b.logger().Debug("Running strategy",
		zap.String("run_id", runID),
		zap.String("strategy", name),
		zap.String("data", dataPath),
		zap.String("result", resultFolderPath),
	)

	result, err := backtest.RunStrategy(generator, series, b.config.SimulatorConfig())
	if err != nil {
		b.logger().Error("Strategy run failed",
			zap.String("strategy", name),
			zap.String("data", dataPath),
			zap.Error(err),
		)

		return types.BacktestStats{}, err
	}

	w, err := writer.NewFileResultWriter(resultFolderPath)
	if err != nil {
		return types.BacktestStats{}, err
	}

	ledgerPath, err := w.WriteLedger(result.Ledger)
	if err != nil {
		return types.BacktestStats{}, err
	}

	stats := roundStats(types.BacktestStats{
		ID:              runID,
		Timestamp:       time.Now().UTC(),
		Strategy:        name,
		Symbol:          series.Symbol(),
		EngineVersion:   version.GetVersion(),
		DataPath:        dataPath,
		LedgerPath:      ledgerPath,
		Rows:            result.Ledger.Len(),
		InitialCapital:  result.Ledger.InitialCapital,
		FinalCapital:    result.Ledger.FinalCapital(),
		PositionSize:    result.Ledger.PositionSize,
		TotalCommission: result.Ledger.TotalCommission(),
		Metrics:         result.Metrics,
	}, b.config.DecimalPrecision)

	if _, err := w.WriteStats(stats); err != nil {
		return types.BacktestStats{}, err
	}

	b.logger().Info("Run completed",
		zap.String("run_id", runID),
		zap.String("strategy", name),
		zap.String("symbol", stats.Symbol),
		zap.Float64("total_return", stats.Metrics.TotalReturn),
		zap.Float64("sharpe_ratio", stats.Metrics.SharpeRatio),
		zap.Float64("max_drawdown", stats.Metrics.MaxDrawdown),
	)

	if callbacks.OnRunEnd != nil {
		b.callbackMu.Lock()
		(*callbacks.OnRunEnd)(runID, name, dataPath, resultFolderPath, stats.Metrics)
		b.callbackMu.Unlock()
	}

	return stats, nil
}

func (b *BacktestEngineV1) progress(totalRuns int, callbacks engine.LifecycleCallbacks) error {
	b.callbackMu.Lock()
	defer b.callbackMu.Unlock()

	b.completed++

	if callbacks.OnProcessData != nil {
		if err := (*callbacks.OnProcessData)(b.completed, totalRuns); err != nil {
			return errors.Wrap(errors.ErrCodeCallbackFailed, "process data callback failed", err)
		}
	}

	return nil
}

// loadSeries reads one data file and attaches the configured indicators.
func (b *BacktestEngineV1) loadSeries(dataPath string) (*types.PriceSeries, error) {
	if err := b.datasource.Initialize(dataPath); err != nil {
		b.logger().Error("Failed to initialize data source",
			zap.String("data", dataPath),
			zap.Error(err),
		)

		return nil, err
	}

	series, err := datasource.LoadPriceSeries(b.datasource, b.config.StartTime, b.config.EndTime)
	if err != nil {
		b.logger().Error("Failed to load price series",
			zap.String("data", dataPath),
			zap.Error(err),
		)

		return nil, err
	}

	if b.config.AddIndicators {
		series, err = indicator.AddAllIndicators(series)
		if err != nil {
			return nil, err
		}
	}

	if len(b.indicators) > 0 {
		series, err = indicator.ApplyIndicators(series, b.indicators...)
		if err != nil {
			return nil, err
		}
	}

	b.logger().Debug("Price series loaded",
		zap.String("data", dataPath),
		zap.String("symbol", series.Symbol()),
		zap.Int("rows", series.Len()),
		zap.Strings("indicators", series.IndicatorColumns()),
	)

	return series, nil
}

// loadStrategies returns the loaded strategies followed by the ones built from config files or content.
func (b *BacktestEngineV1) loadStrategies() ([]strategy.SignalGenerator, error) {
	strategies := append([]strategy.SignalGenerator{}, b.strategies...)

	type configItem struct {
		name    string
		content string
	}

	var configs []configItem

	for i, content := range b.strategyConfigs {
		configs = append(configs, configItem{
			name:    fmt.Sprintf("config_%d", i),
			content: content,
		})
	}

	for _, configPath := range b.strategyConfigPaths {
		content, err := os.ReadFile(configPath)
		if err != nil {
			b.logger().Error("Failed to read config",
				zap.String("config", configPath),
				zap.Error(err),
			)

			return nil, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to read strategy config %s", configPath)
		}

		configs = append(configs, configItem{
			name:    configPath,
			content: string(content),
		})
	}

	for _, cfg := range configs {
		generator, err := strategy.NewFromConfig(cfg.content)
		if err != nil {
			b.logger().Error("Invalid strategy config",
				zap.String("config", cfg.name),
				zap.Error(err),
			)

			return nil, err
		}

		strategies = append(strategies, generator)
	}

	return strategies, nil
}

func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to generate schema", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) preRunCheck(strategies []strategy.SignalGenerator) error {
	if len(strategies) == 0 {
		b.logger().Error("No strategies loaded")

		return errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies loaded")
	}

	// every strategy writes to <results>/<name>, so names must be unique
	names := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		if _, ok := names[s.Name()]; ok {
			b.logger().Error("Duplicate strategy", zap.String("strategy", s.Name()))

			return errors.Newf(errors.ErrCodeStrategyAlreadyExist, "strategy %s is loaded twice", s.Name())
		}

		names[s.Name()] = struct{}{}
	}

	if len(b.dataPaths) == 0 {
		b.logger().Error("No data paths loaded")

		return errors.New(errors.ErrCodeBacktestNoDataPaths, "no data paths loaded")
	}

	// results are stored under the data file name without extension
	files := make(map[string]string, len(b.dataPaths))
	for _, path := range b.dataPaths {
		name := dataFileName(path)
		if other, ok := files[name]; ok {
			b.logger().Error("Data files share a result folder",
				zap.String("file", path),
				zap.String("other", other),
			)

			return errors.Newf(errors.ErrCodeBacktestDataPathError,
				"data files %s and %s would write to the same result folder %s", other, path, name)
		}

		files[name] = path
	}

	if b.resultsFolder == "" {
		b.logger().Error("No results folder set")

		return errors.New(errors.ErrCodeBacktestNoResultsDir, "no results folder set")
	}

	return nil
}

// logger returns a no-op logger until Initialize has run.
func (b *BacktestEngineV1) logger() *logger.Logger {
	if b.log == nil {
		return logger.NewNopLogger()
	}

	return b.log
}
