package model

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"calctui/calcapi"
	"calctui/config"
)

// Mode selects which calculator is mounted.
type Mode int

const (
	ModeOperations Mode = iota
	ModeExpression
)

func (m Mode) String() string {
	switch m {
	case ModeOperations:
		return config.ModeOperations
	case ModeExpression:
		return config.ModeExpression
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case config.ModeOperations:
		return ModeOperations, nil
	case config.ModeExpression:
		return ModeExpression, nil
	default:
		return ModeOperations, fmt.Errorf("unknown mode %q", s)
	}
}

// Model holds the calculator's data and business logic state
type Model struct {
	// Core dependencies
	Config  *config.Config
	Service CalculatorService

	// Calculator state; only the machine for Mode is live
	Mode       Mode
	Collector  *Collector
	Expression *Expression
	History    *History
	Operations []string

	// Result is the last result text shown; Err the single error slot
	Result string
	Err    string

	// Request bookkeeping
	inFlight int
	seq      uint64 // last evaluation issued
	epoch    uint64 // bumped by AC and mode switches; older results leave state alone
	session  uint64 // bumped by mode switches; older results are dropped entirely

	// Application metadata
	Version string
	License string
}

// NewModel creates a Model for cfg talking to service
func NewModel(cfg *config.Config, service CalculatorService, version, license string) *Model {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		config.Log.Warn("falling back to operations mode", zap.Error(err))
	}

	return &Model{
		Config:     cfg,
		Service:    service,
		Mode:       mode,
		Collector:  NewCollector(),
		Expression: NewExpression(),
		History:    NewHistory(),
		Result:     "0",
		Version:    version,
		License:    license,
	}
}

// Busy reports whether any request is still outstanding.
func (m *Model) Busy() bool {
	return m.inFlight > 0
}

// SelectOperation picks op in the operations calculator.
func (m *Model) SelectOperation(op string) {
	m.Collector.Select(op)
	m.Err = ""
}

func (m *Model) PressOperand(key string) bool {
	return m.Collector.Press(key)
}

// ResetOperations is the operations calculator's "C".
func (m *Model) ResetOperations() {
	m.Collector.Reset()
}

func (m *Model) PressDigit(d rune) {
	m.Expression.Press(Key{Kind: KeyDigit, Digit: d})
}

func (m *Model) PressDecimal() {
	m.Expression.Press(Key{Kind: KeyDecimal})
}

// AllClear is "AC". Results still in flight no longer touch the calculator.
func (m *Model) AllClear() {
	m.Expression.AllClear()
	m.Err = ""
	m.epoch++
}

// ClearEntry is "CE".
func (m *Model) ClearEntry() {
	m.Expression.Press(Key{Kind: KeyClearEntry})
}

// SwitchMode mounts the other calculator with fresh state.
func (m *Model) SwitchMode() {
	if m.Mode == ModeOperations {
		m.Mode = ModeExpression
	} else {
		m.Mode = ModeOperations
	}

	m.Collector = NewCollector()
	m.Expression = NewExpression()
	m.History = NewHistory()
	m.Result = "0"
	m.Err = ""
	m.epoch++
	m.session++
	m.Config.Mode = m.Mode.String()

	config.Log.Debug("switched mode", zap.Stringer("mode", m.Mode))
}

// HandleOperationsLoaded installs the fetched operation list.
// Failures are logged only; the list simply stays as it was.
func (m *Model) HandleOperationsLoaded(msg OperationsLoadedMsg) {
	if msg.Session != m.session {
		config.Log.Debug("dropping operations fetched before a mode switch")
		return
	}
	if msg.Err != nil {
		config.Log.Warn("failed to fetch operations", zap.Error(msg.Err))
		return
	}
	m.Operations = msg.Operations
}

// HandleHistoryLoaded replaces local history with the service's copy.
// Failures are logged only.
func (m *Model) HandleHistoryLoaded(msg HistoryLoadedMsg) {
	if msg.Session != m.session {
		config.Log.Debug("dropping history fetched before a mode switch")
		return
	}
	if msg.Err != nil {
		config.Log.Warn("failed to fetch history", zap.Error(msg.Err))
		return
	}
	m.History.Replace(msg.Entries)
}

// HandleCalculated applies a calculation's outcome and returns the next
// evaluation when keys queued behind it need one.
//
// Successes add a history entry built from the request's own arguments.
// Result, error slot and calculator state move only when msg is the newest
// evaluation and nothing reset the calculator since it was issued. Anything
// issued before a mode switch is dropped.
func (m *Model) HandleCalculated(msg CalculatedMsg) tea.Cmd {
	if m.inFlight > 0 {
		m.inFlight--
	}

	if msg.Session != m.session {
		config.Log.Debug("dropping result from previous mode", zap.Uint64("seq", msg.Seq))
		return nil
	}

	current := msg.Seq == m.seq && msg.Epoch == m.epoch

	if msg.Err != nil {
		config.Log.Info("calculation failed",
			zap.String("operation", msg.Calculation.Operation),
			zap.Float64s("args", msg.Calculation.Args),
			zap.Bool("current", current),
			zap.Error(msg.Err),
		)
		if current {
			m.Err = calcapi.UserMessage(msg.Err)
			m.abandon(msg.Step)
		}
		return nil
	}

	m.History.Append(calcapi.HistoryEntry{
		Expression: msg.Calculation.Expression(),
		Result:     msg.Result,
	})

	if !current {
		config.Log.Debug("stale result kept in history only",
			zap.Uint64("seq", msg.Seq),
			zap.Uint64("latest", m.seq),
		)
		return nil
	}

	if msg.Step.Kind == StepOperations {
		m.Collector.Reset()
		m.Result = msg.Result
		m.Err = ""
		return nil
	}

	if err := m.Expression.Apply(msg.Step, msg.Result); err != nil {
		m.Err = err.Error()
		m.abandon(msg.Step)
		return nil
	}
	m.Result = msg.Result
	m.Err = ""

	calc, step, ok := m.Expression.Resume()
	if !ok {
		return nil
	}
	return m.calculate(calc, step)
}

// abandon drops expression keys queued behind a failed evaluation.
func (m *Model) abandon(step Step) {
	if step.Kind == StepOperations {
		return
	}
	if n := m.Expression.Abandon(); n > 0 {
		config.Log.Debug("dropped queued keys", zap.Int("keys", n))
	}
}
