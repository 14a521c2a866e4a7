package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func resultsAction(ctx context.Context, cmd *cli.Command) error {
	model := NewModel(cmd.String("results"))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("results browser failed: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "results",
		Usage: "Browse the ledgers and stats written by a backtest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Results folder of the backtest",
				Value:   "results",
			},
		},
		Action: resultsAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
