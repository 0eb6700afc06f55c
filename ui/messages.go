package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appmodel "calctui/model"
)

// Message type aliases - these are defined in the model package
type operationsLoadedMsg = appmodel.OperationsLoadedMsg
type historyLoadedMsg = appmodel.HistoryLoadedMsg
type calculatedMsg = appmodel.CalculatedMsg

// flashClearMsg removes the footer notice it was scheduled for.
type flashClearMsg struct {
	id int
}

const flashDuration = 2 * time.Second

func clearFlashAfter(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{id: id}
	})
}
