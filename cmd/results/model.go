package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/writer"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Application states.
const (
	StateFolderInput = iota
	StateRunSelect
	StateLedgerDisplay
)

// Model is the main Bubble Tea model for the results browser.
type Model struct {
	state       int
	folderInput textinput.Model
	runList     list.Model
	ledgerTable table.Model
	runs        []types.BacktestStats
	selected    types.BacktestStats
	folder      string
	err         error
	width       int
	height      int
}

// NewModel creates a new Model asking for the results folder, prefilled with folder.
func NewModel(folder string) Model {
	return Model{
		state:       StateFolderInput,
		folderInput: NewFolderInput(folder),
		runList:     NewRunList(nil),
		ledgerTable: NewLedgerTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// typing a folder name must not quit
			if m.state != StateFolderInput && !m.runList.SettingFilter() {
				return m, tea.Quit
			}
		case "esc":
			if !m.runList.SettingFilter() {
				return m.handleEsc()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runList.SetSize(msg.Width, msg.Height-4)
		m.ledgerTable.SetWidth(msg.Width)
		m.ledgerTable.SetHeight(msg.Height - 8)

		return m, nil

	case RunsLoadedMsg:
		m.err = nil
		m.runs = msg.Runs
		m.runList = NewRunList(msg.Runs)
		m.runList.SetSize(m.width, m.height-4)
		m.state = StateRunSelect

		return m, nil

	case LedgerLoadedMsg:
		m.err = nil
		m.selected = msg.Run
		m.ledgerTable.SetRows(LedgerTableRows(msg.Rows))
		m.ledgerTable.GotoTop()
		m.state = StateLedgerDisplay

		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err

		if m.state == StateFolderInput {
			m.folderInput.Focus()
		}

		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateFolderInput:
		return m.updateFolderInput(msg)
	case StateRunSelect:
		return m.updateRunSelect(msg)
	case StateLedgerDisplay:
		return m.updateLedgerDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateRunSelect:
		m.err = nil
		m.state = StateFolderInput
		m.folderInput.Focus()

		return m, textinput.Blink
	case StateLedgerDisplay:
		m.err = nil
		m.state = StateRunSelect
	}

	return m, nil
}

func (m Model) updateFolderInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		folder := strings.TrimSpace(m.folderInput.Value())
		if folder != "" {
			m.folder = folder
			m.folderInput.Blur()

			return m, loadRuns(folder)
		}
	}

	var cmd tea.Cmd
	m.folderInput, cmd = m.folderInput.Update(msg)

	return m, cmd
}

func (m Model) updateRunSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && !m.runList.SettingFilter() {
		if item, ok := m.runList.SelectedItem().(runItem); ok {
			return m, loadLedger(item.run)
		}
	}

	var cmd tea.Cmd
	m.runList, cmd = m.runList.Update(msg)

	return m, cmd
}

func (m Model) updateLedgerDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.ledgerTable, cmd = m.ledgerTable.Update(msg)

	return m, cmd
}

// loadRuns returns a command reading the runs of folder.
func loadRuns(folder string) tea.Cmd {
	return func() tea.Msg {
		runs, err := FindRuns(folder)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		if len(runs) == 0 {
			return LoadErrorMsg{Err: fmt.Errorf("no backtest results in %s", folder)}
		}

		return RunsLoadedMsg{Runs: runs}
	}
}

// loadLedger returns a command reading the ledger of run.
func loadLedger(run types.BacktestStats) tea.Cmd {
	return func() tea.Msg {
		rows, err := writer.ReadLedger(run.LedgerPath)
		if err != nil {
			return LoadErrorMsg{Err: err}
		}

		return LedgerLoadedMsg{Run: run, Rows: rows}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateFolderInput:
		s.WriteString(TitleStyle.Render("Argo Backtest - Results"))
		s.WriteString("\n\n")
		s.WriteString("Enter the results folder of a backtest:\n\n")
		s.WriteString(m.folderInput.View())
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(HelpStyle.Render("Press Enter to load, ctrl+c to quit"))

	case StateRunSelect:
		s.WriteString(m.runList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render(fmt.Sprintf("Enter: open ledger | /: filter | Esc: back | q: quit | %d runs in %s", len(m.runs), m.folder)))

	case StateLedgerDisplay:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s on %s (total return %s)",
			m.selected.Strategy, m.selected.Symbol, FormatPercent(m.selected.Metrics.TotalReturn))))
		s.WriteString("\n")
		s.WriteString(RunSummary(m.selected))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(m.ledgerTable.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: back to runs"))
	}

	return s.String()
}
