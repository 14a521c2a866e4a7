package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-backtest/pkg/marketdata"
	"github.com/rxtech-lab/argo-backtest/pkg/marketdata/writer"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// loadConfig starts from the defaults of the selected model, applies the optional YAML
// file and then every flag set on the command line.
func loadConfig(cmd *cli.Command) (marketdata.GeneratorConfig, error) {
	config := marketdata.DefaultConfig()
	if marketdata.Model(cmd.String("model")) == marketdata.ModelRandomWalk {
		config = marketdata.RandomWalkConfig()
	}

	if path := cmd.String("config"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("failed to read generator config: %w", err)
		}

		if err := yaml.Unmarshal(content, &config); err != nil {
			return config, fmt.Errorf("failed to parse generator config: %w", err)
		}
	}

	if cmd.IsSet("model") {
		config.Model = marketdata.Model(cmd.String("model"))
	}

	if cmd.IsSet("symbol") {
		config.Symbol = cmd.String("symbol")
	}

	if cmd.IsSet("count") {
		config.Count = int(cmd.Int("count"))
	}

	if cmd.IsSet("start") {
		config.StartTime = cmd.Timestamp("start")
	}

	if cmd.IsSet("interval") {
		config.Interval = cmd.Duration("interval")
	}

	if cmd.IsSet("price") {
		config.InitialPrice = cmd.Float("price")
	}

	if cmd.IsSet("trend") {
		config.Trend = cmd.Float("trend")
	}

	if cmd.IsSet("volatility") {
		config.Volatility = cmd.Float("volatility")
	}

	return config, nil
}

func sampleAction(ctx context.Context, cmd *cli.Command) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := marketdata.NewGenerator(int64(cmd.Int("seed"))).Generate(config)
	if err != nil {
		return fmt.Errorf("failed to generate market data: %w", err)
	}

	w, err := writer.NewWriter(cmd.String("output"))
	if err != nil {
		return err
	}

	path, err := writer.WriteAll(w, data)
	if err != nil {
		return fmt.Errorf("failed to write market data: %w", err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Wrote %d %s bars of %s to %s\n", len(data), config.Model, config.Symbol, path)

	return nil
}

func modelNames() string {
	names := make([]string, len(marketdata.AllModels))
	for i, m := range marketdata.AllModels {
		names[i] = string(m)
	}

	return strings.Join(names, ", ")
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "Generate synthetic OHLCV market data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output file, `.csv or .parquet`",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML generator config",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   fmt.Sprintf("Price model (%s)", modelNames()),
				Value:   string(marketdata.ModelTrendCycle),
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Symbol written on every bar",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of bars",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed",
				Value: 42,
			},
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "Time of the first bar in `YYYY-MM-DD` format",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Duration between bars, e.g. 24h or 1m",
			},
			&cli.FloatFlag{
				Name:  "price",
				Usage: "Initial price",
			},
			&cli.FloatFlag{
				Name:  "trend",
				Usage: "Trend of the price model",
			},
			&cli.FloatFlag{
				Name:  "volatility",
				Usage: "Volatility of the price model",
			},
		},
		Action: sampleAction,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
