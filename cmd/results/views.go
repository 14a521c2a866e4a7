package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// runItem implements list.Item for one backtest run.
type runItem struct {
	run types.BacktestStats
}

func (i runItem) Title() string { return fmt.Sprintf("%s / %s", i.run.Strategy, i.run.Symbol) }

func (i runItem) Description() string {
	return fmt.Sprintf("return %s | sharpe %.2f | max drawdown %s | %d rows",
		FormatPercent(i.run.Metrics.TotalReturn),
		i.run.Metrics.SharpeRatio,
		FormatPercent(i.run.Metrics.MaxDrawdown),
		i.run.Rows,
	)
}

func (i runItem) FilterValue() string { return i.run.Strategy + " " + i.run.Symbol }

// FindRuns reads every stats file below folder, ordered by strategy then symbol.
func FindRuns(folder string) ([]types.BacktestStats, error) {
	var runs []types.BacktestStats

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || d.Name() != writer.StatsFileName {
			return nil
		}

		stats, err := types.ReadBacktestStats(path)
		if err != nil {
			return err
		}

		runs = append(runs, stats)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Strategy != runs[j].Strategy {
			return runs[i].Strategy < runs[j].Strategy
		}

		return runs[i].Symbol < runs[j].Symbol
	})

	return runs, nil
}

// NewFolderInput creates a text input for the results folder.
func NewFolderInput(folder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "results"
	ti.SetValue(folder)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60
	ti.Prompt = "> "

	return ti
}

// NewRunList creates a list for run selection.
func NewRunList(runs []types.BacktestStats) list.Model {
	items := make([]list.Item, len(runs))
	for i, run := range runs {
		items[i] = runItem{run: run}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Run"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return l
}

// NewLedgerTable creates a table for the rows of one ledger.
func NewLedgerTable() table.Model {
	columns := []table.Column{
		{Title: "Time", Width: 20},
		{Title: "Signal", Width: 14},
		{Title: "Price", Width: 12},
		{Title: "Position", Width: 9},
		{Title: "Return", Width: 12},
		{Title: "Capital", Width: 14},
		{Title: "Drawdown", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// LedgerTableRows formats ledger rows for the table.
func LedgerTableRows(rows []types.LedgerRow) []table.Row {
	out := make([]table.Row, 0, len(rows))

	for _, row := range rows {
		out = append(out, table.Row{
			row.Time.Format("2006-01-02 15:04:05"),
			row.Signal.String(),
			fmt.Sprintf("%.4f", row.Price),
			row.Position.String(),
			FormatPercent(row.StrategyReturn),
			fmt.Sprintf("%.2f", row.Capital),
			FormatPercent(row.Drawdown),
		})
	}

	return out
}

// RunSummary is the one line header shown above a ledger.
func RunSummary(run types.BacktestStats) string {
	return fmt.Sprintf("capital %.2f -> %.2f | annual return %s | volatility %s | trades %.0f | win rate %s",
		run.InitialCapital,
		run.FinalCapital,
		FormatPercent(run.Metrics.AnnualReturn),
		FormatPercent(run.Metrics.AnnualVolatility),
		run.Metrics.NTrades,
		FormatPercent(run.Metrics.WinRate),
	)
}
