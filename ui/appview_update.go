package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"calctui/config"
	appmodel "calctui/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

		historyHeight := a.height - reservedLines
		if historyHeight < minHistoryHeight {
			historyHeight = minHistoryHeight
		}
		a.viewport.Width = a.width
		a.viewport.Height = historyHeight
		a.historyTable.SetColumns(historyColumns(a.width))
		a.historyTable.SetWidth(a.width)
		a.historyTable.SetHeight(historyHeight)

		a.ready = true
		a.updateHistoryContent()
		return a, nil

	case spinner.TickMsg:
		// Let the spinner die once nothing is outstanding
		if !a.dataModel.Busy() {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		return a, cmd

	case operationsLoadedMsg:
		a.dataModel.HandleOperationsLoaded(msg)
		a.applyFilter()
		return a, nil

	case historyLoadedMsg:
		a.dataModel.HandleHistoryLoaded(msg)
		a.updateHistoryContent()
		return a, nil

	case calculatedMsg:
		next := a.dataModel.HandleCalculated(msg)
		a.updateHistoryContent()
		return a, a.track(next)

	case flashClearMsg:
		if msg.id == a.flashID {
			a.flash = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.filterMode {
		var cmd tea.Cmd
		a.filterInput, cmd = a.filterInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Overlays swallow everything except their own toggles
	if a.showHelp {
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" {
			a.showHelp = false
		}
		return a, nil
	}
	if a.showAbout {
		if key.Matches(msg, a.keys.About) || msg.String() == "esc" {
			a.showAbout = false
		}
		return a, nil
	}

	if a.filterMode {
		return a.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.About):
		a.showAbout = true
		return a, nil

	case key.Matches(msg, a.keys.SwitchMode):
		a.dataModel.SwitchMode()
		a.selectedOp = 0
		a.filteredOps = nil
		a.filterInput.SetValue("")
		a.updateHistoryContent()
		return a, tea.Batch(a.dataModel.Mount(), a.dataModel.RememberMode())

	case key.Matches(msg, a.keys.Yank):
		if err := clipboard.WriteAll(a.dataModel.Result); err != nil {
			config.Log.Warn("clipboard write failed", zap.Error(err))
			return a, a.showFlash("Clipboard unavailable")
		}
		return a, a.showFlash("Copied " + a.dataModel.Result)

	case key.Matches(msg, a.keys.RefreshHistory):
		return a, a.dataModel.FetchHistory()
	}

	if a.dataModel.Mode == appmodel.ModeOperations {
		return a.handleOperationsKey(msg)
	}
	return a.handleExpressionKey(msg)
}

func (a AppView) handleOperationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ops := a.visibleOperations()

	switch {
	case key.Matches(msg, a.keys.Evaluate):
		return a, a.track(a.dataModel.SubmitOperations())

	case key.Matches(msg, a.keys.AllClear):
		a.dataModel.ResetOperations()
		return a, nil

	case key.Matches(msg, a.keys.SelectOperation):
		if a.selectedOp < len(ops) {
			a.dataModel.SelectOperation(ops[a.selectedOp])
		}
		return a, nil

	case key.Matches(msg, a.keys.Filter):
		a.filterMode = true
		a.filterInput.SetValue("")
		a.filterInput.Focus()
		a.applyFilter()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Next):
		a.moveSelection(1)
		return a, nil
	case key.Matches(msg, a.keys.Prev):
		a.moveSelection(-1)
		return a, nil
	case key.Matches(msg, a.keys.Down):
		a.moveSelection(a.operationColumns())
		return a, nil
	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-a.operationColumns())
		return a, nil
	}

	if r, ok := singleRune(msg); ok && (isDigit(r) || r == '.') {
		a.dataModel.PressOperand(string(r))
	}
	return a, nil
}

func (a AppView) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeFilter()
		a.selectedOp = 0
		return a, nil

	case "enter":
		ops := a.visibleOperations()
		if a.selectedOp < len(ops) {
			op := ops[a.selectedOp]
			a.dataModel.SelectOperation(op)
			a.closeFilter()
			a.selectedOp = indexOf(a.dataModel.Operations, op)
		}
		return a, nil

	case "down", "right":
		a.moveSelection(1)
		return a, nil

	case "up", "left":
		a.moveSelection(-1)
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	a.applyFilter()
	return a, cmd
}

func (a AppView) handleExpressionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Evaluate) || msg.String() == "enter":
		return a, a.track(a.dataModel.PressEquals())
	case key.Matches(msg, a.keys.AllClear):
		a.dataModel.AllClear()
		return a, nil
	case key.Matches(msg, a.keys.ClearEntry):
		a.dataModel.ClearEntry()
		return a, nil
	case key.Matches(msg, a.keys.Pow):
		return a, a.track(a.dataModel.PressBinary(appmodel.OpPow))
	case key.Matches(msg, a.keys.Sqrt):
		return a, a.track(a.dataModel.PressUnary(appmodel.OpSqrt))
	case key.Matches(msg, a.keys.Log):
		return a, a.track(a.dataModel.PressUnary(appmodel.OpLog))
	case key.Matches(msg, a.keys.Sin):
		return a, a.track(a.dataModel.PressUnary(appmodel.OpSin))
	case key.Matches(msg, a.keys.Cos):
		return a, a.track(a.dataModel.PressUnary(appmodel.OpCos))
	case key.Matches(msg, a.keys.Tan):
		return a, a.track(a.dataModel.PressUnary(appmodel.OpTan))
	}

	r, ok := singleRune(msg)
	if !ok {
		return a, nil
	}

	switch {
	case isDigit(r):
		a.dataModel.PressDigit(r)
	case r == '.':
		a.dataModel.PressDecimal()
	default:
		if op, found := appmodel.ExpressionOperator(string(r)); found && !op.Unary() {
			return a, a.track(a.dataModel.PressBinary(op))
		}
	}
	return a, nil
}

func (a *AppView) showFlash(text string) tea.Cmd {
	a.flash = text
	a.flashID++
	return clearFlashAfter(a.flashID)
}

// track starts the spinner alongside cmd unless it is already ticking.
func (a *AppView) track(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	if a.spinning {
		return cmd
	}
	a.spinning = true
	return tea.Batch(cmd, a.loadingSpinner.Tick)
}

func (a *AppView) closeFilter() {
	a.filterMode = false
	a.filterInput.Blur()
	a.filterInput.SetValue("")
	a.filteredOps = nil
}

// applyFilter narrows the operation list to fuzzy matches of the filter text.
func (a *AppView) applyFilter() {
	value := a.filterInput.Value()
	if !a.filterMode || value == "" {
		a.filteredOps = nil
	} else {
		matches := fuzzy.Find(value, a.dataModel.Operations)
		a.filteredOps = make([]string, len(matches))
		for i, match := range matches {
			a.filteredOps[i] = a.dataModel.Operations[match.Index]
		}
	}

	ops := a.visibleOperations()
	if a.selectedOp >= len(ops) {
		a.selectedOp = max(len(ops)-1, 0)
	}
}

func (a AppView) visibleOperations() []string {
	if a.filterMode && a.filterInput.Value() != "" {
		return a.filteredOps
	}
	return a.dataModel.Operations
}

func (a *AppView) moveSelection(delta int) {
	n := len(a.visibleOperations())
	if n == 0 {
		return
	}
	next := a.selectedOp + delta
	if next < 0 || next >= n {
		return
	}
	a.selectedOp = next
}

func singleRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || msg.Alt {
		return 0, false
	}
	return msg.Runes[0], true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}
