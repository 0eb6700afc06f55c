package model

import "calctui/calcapi"

// OperationsLoadedMsg and HistoryLoadedMsg carry the session they were
// fetched for; a mode switch in between makes them moot.
type OperationsLoadedMsg struct {
	Session    uint64
	Operations []string
	Err        error
}

type HistoryLoadedMsg struct {
	Session uint64
	Entries []calcapi.HistoryEntry
	Err     error
}

// CalculatedMsg carries one calculation's outcome back to the update loop.
// Seq, Epoch and Session identify the request so late answers can be told apart.
type CalculatedMsg struct {
	Seq         uint64
	Epoch       uint64
	Session     uint64
	Calculation Calculation
	Step        Step
	Result      string
	Err         error
}
