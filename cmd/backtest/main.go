package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// defaultStrategies are run when no strategy config is given.
func defaultStrategies() ([]strategy.SignalGenerator, error) {
	ma, err := strategy.NewMovingAverageCrossoverFromConfig(strategy.DefaultMovingAverageCrossoverConfig())
	if err != nil {
		return nil, err
	}

	rsi, err := strategy.NewRSIStrategyFromConfig(strategy.DefaultRSIStrategyConfig())
	if err != nil {
		return nil, err
	}

	return []strategy.SignalGenerator{ma, rsi}, nil
}

// progressCallbacks drives a progress bar from the engine lifecycle.
func progressCallbacks(w io.Writer) engine.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onStart := engine.OnBacktestStartCallback(func(totalStrategies int, totalDataFiles int) error {
		bar = progressbar.NewOptions(totalStrategies*totalDataFiles,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Backtesting"),
			progressbar.OptionShowCount(),
		)

		return nil
	})

	onProgress := engine.OnProcessDataCallback(func(current int, total int) error {
		if bar == nil {
			return nil
		}

		return bar.Set(current)
	})

	onEnd := engine.OnBacktestEndCallback(func(err error) {
		if bar == nil {
			return
		}

		if err != nil {
			_ = bar.Exit()

			return
		}

		_ = bar.Finish()
		fmt.Fprintln(w)
	})

	return engine.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnProcessData:   &onProgress,
		OnBacktestEnd:   &onEnd,
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printSummary renders one row per run with its main metrics.
func printSummary(w io.Writer, results []types.BacktestStats) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STRATEGY", "SYMBOL", "TOTAL RETURN", "ANNUAL RETURN", "SHARPE", "MAX DRAWDOWN", "TRADES", "WIN RATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, s := range results {
		t.Row(
			s.Strategy,
			s.Symbol,
			fmt.Sprintf("%.2f%%", s.Metrics.TotalReturn*100),
			fmt.Sprintf("%.2f%%", s.Metrics.AnnualReturn*100),
			fmt.Sprintf("%.2f", s.Metrics.SharpeRatio),
			fmt.Sprintf("%.2f%%", s.Metrics.MaxDrawdown*100),
			fmt.Sprintf("%.0f", s.Metrics.NTrades),
			fmt.Sprintf("%.2f%%", s.Metrics.WinRate*100),
		)
	}

	fmt.Fprintln(w, t.Render())
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	var (
		zapLogger *logger.Logger
		err       error
	)

	if cmd.Bool("verbose") {
		zapLogger, err = logger.NewDebugLogger()
	} else {
		zapLogger, err = logger.NewLogger()
	}

	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() {
		_ = zapLogger.Sync()
	}()

	var config string

	if path := cmd.String("config"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		config = string(content)
	}

	backtester := engine_v1.NewBacktestEngineV1WithLogger(zapLogger)

	if err := backtester.Initialize(config); err != nil {
		return fmt.Errorf("failed to initialize backtest engine: %w", err)
	}

	if pattern := cmd.String("strategy"); pattern != "" {
		if err := backtester.SetConfigPath(pattern); err != nil {
			return fmt.Errorf("failed to set strategy config path: %w", err)
		}
	} else {
		strategies, err := defaultStrategies()
		if err != nil {
			return err
		}

		for _, s := range strategies {
			if err := backtester.LoadStrategy(s); err != nil {
				return fmt.Errorf("failed to load strategy: %w", err)
			}
		}
	}

	if err := backtester.SetDataPath(cmd.String("data")); err != nil {
		return fmt.Errorf("failed to set data path: %w", err)
	}

	if err := backtester.SetResultsFolder(cmd.String("results")); err != nil {
		return fmt.Errorf("failed to set results folder: %w", err)
	}

	callbacks := engine.LifecycleCallbacks{}
	if !cmd.Bool("quiet") {
		callbacks = progressCallbacks(cmd.Root().ErrWriter)
	}

	results, err := backtester.Run(ctx, callbacks)
	if err != nil {
		return fmt.Errorf("failed to run backtest: %w", err)
	}

	printSummary(cmd.Root().Writer, results)

	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Backtest trading strategies on historical market data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Glob of the `csv or parquet` market data files",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the backtest engine config",
			},
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "Glob of the strategy config files. Defaults to the 20/50 crossover and the 14 day RSI",
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Folder receiving the ledgers and stats",
				Value:   "results",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Hide the progress bar",
			},
		},
		Action: backtestAction,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
