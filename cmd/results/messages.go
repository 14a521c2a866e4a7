package main

import "github.com/rxtech-lab/argo-backtest/internal/types"

// RunsLoadedMsg carries the runs found in the results folder.
type RunsLoadedMsg struct {
	Runs []types.BacktestStats
}

// LedgerLoadedMsg carries the ledger of the selected run.
type LedgerLoadedMsg struct {
	Run  types.BacktestStats
	Rows []types.LedgerRow
}

// LoadErrorMsg reports a failure to read runs or a ledger.
type LoadErrorMsg struct {
	Err error
}
