package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"calctui/config"
)

// Mount returns the requests a freshly mounted calculator makes: the
// history always, the operation list only for the operations calculator.
func (m *Model) Mount() tea.Cmd {
	if m.Mode == ModeOperations {
		return tea.Batch(m.FetchOperations(), m.FetchHistory())
	}
	return m.FetchHistory()
}

func (m *Model) FetchOperations() tea.Cmd {
	service, session := m.Service, m.session
	return func() tea.Msg {
		ops, err := service.Operations(context.Background())
		return OperationsLoadedMsg{Session: session, Operations: ops, Err: err}
	}
}

func (m *Model) FetchHistory() tea.Cmd {
	service, session := m.Service, m.session
	return func() tea.Msg {
		entries, err := service.History(context.Background())
		return HistoryLoadedMsg{Session: session, Entries: entries, Err: err}
	}
}

// RememberMode writes the current mode to config.toml so the next start
// opens the same calculator. Without a config directory it does nothing.
func (m *Model) RememberMode() tea.Cmd {
	if m.Config.ConfigDirectory == "" {
		return nil
	}
	dir, mode := m.Config.ConfigDir(), m.Mode.String()
	return func() tea.Msg {
		if err := config.SaveMode(dir, mode); err != nil {
			config.Log.Warn("failed to remember mode", zap.String("mode", mode), zap.Error(err))
		}
		return nil
	}
}

// SubmitOperations is the operations calculator's "=". Local validation
// failures land in the error slot and nothing is sent.
func (m *Model) SubmitOperations() tea.Cmd {
	calc, err := m.Collector.Prepare()
	if err != nil {
		m.Err = err.Error()
		return nil
	}
	return m.calculate(calc, Step{Kind: StepOperations})
}

// PressBinary handles + - * / and pow in the expression calculator.
func (m *Model) PressBinary(op Operation) tea.Cmd {
	return m.press(Key{Kind: KeyBinary, Op: op})
}

// PressUnary evaluates a unary operation against the current input.
func (m *Model) PressUnary(op Operation) tea.Cmd {
	return m.press(Key{Kind: KeyUnary, Op: op})
}

// PressEquals evaluates the pending binary operation, if any.
func (m *Model) PressEquals() tea.Cmd {
	return m.press(Key{Kind: KeyEquals})
}

// press feeds one key to the expression calculator. Keys pressed while an
// evaluation is outstanding wait for it, so nothing is sent for them yet.
func (m *Model) press(k Key) tea.Cmd {
	calc, step, ok := m.Expression.Press(k)
	if !ok {
		return nil
	}
	return m.calculate(calc, step)
}

// calculate issues one request. The returned command closes over the
// request's own arguments and identifiers; nothing here blocks the UI.
func (m *Model) calculate(calc Calculation, step Step) tea.Cmd {
	m.seq++
	m.inFlight++

	msg := CalculatedMsg{
		Seq:         m.seq,
		Epoch:       m.epoch,
		Session:     m.session,
		Calculation: calc,
		Step:        step,
	}
	service := m.Service

	config.Log.Debug("calculation issued",
		zap.Uint64("seq", msg.Seq),
		zap.String("operation", calc.Operation),
		zap.Float64s("args", calc.Args),
	)

	return func() tea.Msg {
		result, err := service.Calculate(context.Background(), calc.Operation, calc.Args)
		msg.Result = result
		msg.Err = err
		return msg
	}
}
