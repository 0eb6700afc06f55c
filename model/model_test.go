package model

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"calctui/calcapi"
	"calctui/calcapi/testutil"
	"calctui/config"
)

func newTestModel(mode string) (*Model, *testutil.MockService) {
	service := testutil.NewMockService()
	cfg := &config.Config{Mode: mode}
	return NewModel(cfg, service, "test", "MIT"), service
}

// run executes cmd, feeds its CalculatedMsg back into the model and
// returns whatever the model wants to send next.
func run(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(CalculatedMsg)
	if !ok {
		t.Fatal("command did not produce a CalculatedMsg")
	}
	return m.HandleCalculated(msg)
}

func pressDigits(m *Model, digits string) {
	for _, d := range digits {
		if d == '.' {
			m.PressDecimal()
			continue
		}
		m.PressDigit(d)
	}
}

func TestNewModelMode(t *testing.T) {
	tests := []struct {
		mode string
		want Mode
	}{
		{config.ModeOperations, ModeOperations},
		{config.ModeExpression, ModeExpression},
		{"bogus", ModeOperations},
	}

	for _, tt := range tests {
		m, _ := newTestModel(tt.mode)
		if m.Mode != tt.want {
			t.Errorf("mode %q: Mode = %v, want %v", tt.mode, m.Mode, tt.want)
		}
		if m.Result != "0" {
			t.Errorf("initial Result = %q", m.Result)
		}
	}
}

func TestMountCommands(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)
	batch, ok := m.Mount()().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("operations mount = %#v, want a batch of two", batch)
	}

	var sawOps, sawHistory bool
	for _, cmd := range batch {
		switch cmd().(type) {
		case OperationsLoadedMsg:
			sawOps = true
		case HistoryLoadedMsg:
			sawHistory = true
		}
	}
	if !sawOps || !sawHistory {
		t.Errorf("operations = %v history = %v", sawOps, sawHistory)
	}

	m, _ = newTestModel(config.ModeExpression)
	if _, ok := m.Mount()().(HistoryLoadedMsg); !ok {
		t.Error("expression mount should fetch history only")
	}
}

func TestOperationsCalculation(t *testing.T) {
	m, service := newTestModel(config.ModeOperations)

	m.SelectOperation("add")
	m.PressOperand("5")
	m.PressOperand("3")
	run(t, m, m.SubmitOperations())

	want := []calcapi.CalculateRequest{{Operation: "add", Args: []float64{5, 3}}}
	if got := service.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("requests = %+v, want %+v", got, want)
	}
	if m.Result != "8" {
		t.Errorf("Result = %q, want 8", m.Result)
	}
	if got := m.History.Lines(); !reflect.DeepEqual(got, []string{"add(5, 3) = 8"}) {
		t.Errorf("history = %v", got)
	}
	if _, ok := m.Collector.Operation(); ok {
		t.Error("collector not reset after success")
	}
	if m.Busy() {
		t.Error("still busy after the response")
	}
}

func TestOperationsLocalValidationSendsNothing(t *testing.T) {
	m, service := newTestModel(config.ModeOperations)

	if cmd := m.SubmitOperations(); cmd != nil {
		t.Fatal("submit without operation returned a command")
	}
	if m.Err == "" {
		t.Error("no error shown without an operation")
	}

	m.SelectOperation("divide")
	m.PressOperand("8")
	if cmd := m.SubmitOperations(); cmd != nil {
		t.Fatal("submit with missing operand returned a command")
	}
	if m.Err != "Operation divide needs 2 numbers" {
		t.Errorf("Err = %q", m.Err)
	}
	if len(service.Calls()) != 0 {
		t.Errorf("requests sent: %+v", service.Calls())
	}
}

func TestOperationsFailureKeepsInput(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)

	m.SelectOperation("divide")
	m.PressOperand("1")
	m.PressOperand("0")
	run(t, m, m.SubmitOperations())

	if m.Err != "division by zero" {
		t.Errorf("Err = %q", m.Err)
	}
	if got := m.Collector.Operands(); !reflect.DeepEqual(got, []string{"1", "0"}) {
		t.Errorf("operands = %v", got)
	}
	if m.History.Len() != 0 {
		t.Errorf("failed calculation reached history")
	}
}

func TestExpressionCalculation(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	if cmd := m.PressBinary(OpAdd); cmd != nil {
		t.Fatal("first operator sent a request")
	}
	pressDigits(m, "2")
	run(t, m, m.PressEquals())

	want := []calcapi.CalculateRequest{{Operation: "+", Args: []float64{7, 2}}}
	if got := service.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("requests = %+v, want %+v", got, want)
	}
	if m.Result != "9" || m.Expression.Input() != "9" {
		t.Errorf("Result = %q input = %q", m.Result, m.Expression.Input())
	}
	if got := m.History.Lines(); !reflect.DeepEqual(got, []string{"7 + 2 = 9"}) {
		t.Errorf("history = %v", got)
	}
}

func TestExpressionChaining(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	m.PressBinary(OpAdd)
	pressDigits(m, "2")
	run(t, m, m.PressBinary(OpMultiply))
	pressDigits(m, "3")
	run(t, m, m.PressEquals())

	want := []calcapi.CalculateRequest{
		{Operation: "+", Args: []float64{7, 2}},
		{Operation: "*", Args: []float64{9, 3}},
	}
	if got := service.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("requests = %+v, want %+v", got, want)
	}
	if m.Result != "27" {
		t.Errorf("Result = %q, want 27", m.Result)
	}
}

func TestExpressionErrorLeavesStateUntouched(t *testing.T) {
	m, _ := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	m.PressBinary(OpAdd)
	pressDigits(m, "2")
	run(t, m, m.PressEquals())

	m.PressBinary(OpDivide)
	pressDigits(m, "0")
	run(t, m, m.PressEquals())

	if m.Err != "division by zero" {
		t.Errorf("Err = %q", m.Err)
	}
	if m.Result != "9" {
		t.Errorf("Result = %q, want 9", m.Result)
	}
	if op, ok := m.Expression.Operator(); !ok || op != OpDivide {
		t.Errorf("operator = %+v, %v", op, ok)
	}
	if m.History.Len() != 1 {
		t.Errorf("history len = %d, want 1", m.History.Len())
	}
}

func TestGenericErrorMessage(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)
	service.CalculateFunc = func(ctx context.Context, operation string, args []float64) (string, error) {
		return "", &calcapi.APIError{Err: errors.New("connection refused")}
	}

	pressDigits(m, "4")
	run(t, m, m.PressUnary(OpSqrt))

	if m.Err != calcapi.GenericErrorMessage {
		t.Errorf("Err = %q", m.Err)
	}
}

func TestStaleResponseOnlyReachesHistory(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)

	m.SelectOperation("sqrt")
	m.PressOperand("9")
	first := m.SubmitOperations()
	m.SelectOperation("sqrt")
	m.PressOperand("4")
	second := m.SubmitOperations()

	// answers arrive out of order
	run(t, m, second)
	run(t, m, first)

	if m.Result != "2" {
		t.Errorf("Result = %q, want 2 from the newest request", m.Result)
	}
	if m.History.Len() != 2 {
		t.Errorf("history len = %d, want 2", m.History.Len())
	}
	if m.Busy() {
		t.Error("still busy after both responses")
	}
}

func TestStaleFailureLeavesErrorSlot(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)

	m.SelectOperation("divide")
	m.PressOperand("1")
	m.PressOperand("0")
	failing := m.SubmitOperations()
	m.SelectOperation("add")
	m.PressOperand("1")
	m.PressOperand("2")
	succeeding := m.SubmitOperations()

	run(t, m, succeeding)
	run(t, m, failing)

	if m.Err != "" {
		t.Errorf("Err = %q from an older request", m.Err)
	}
	if m.Result != "3" {
		t.Errorf("Result = %q, want 3", m.Result)
	}
}

func TestExpressionKeysWaitForChainedResult(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	m.PressBinary(OpAdd)
	pressDigits(m, "2")
	chain := m.PressBinary(OpMultiply)

	// typed before the + answer comes back
	pressDigits(m, "3")
	if cmd := m.PressEquals(); cmd != nil {
		t.Fatal("= sent a request while the chain was unresolved")
	}
	if m.Expression.Queued() != 2 {
		t.Errorf("queued = %d, want 2", m.Expression.Queued())
	}

	next := run(t, m, chain)
	if next == nil {
		t.Fatal("queued = did not evaluate once the chain resolved")
	}
	run(t, m, next)

	want := []calcapi.CalculateRequest{
		{Operation: "+", Args: []float64{7, 2}},
		{Operation: "*", Args: []float64{9, 3}},
	}
	if got := service.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("requests = %+v, want %+v", got, want)
	}
	if m.Result != "27" {
		t.Errorf("Result = %q, want 27", m.Result)
	}
	if m.Busy() || m.Expression.Waiting() {
		t.Error("still waiting after the last response")
	}
}

func TestExpressionDigitBeforeChainedResultSurvives(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	m.PressBinary(OpAdd)
	pressDigits(m, "2")
	chain := m.PressBinary(OpMultiply)
	pressDigits(m, "3")

	if next := run(t, m, chain); next != nil {
		t.Fatal("a queued digit produced a request")
	}
	if m.Expression.Input() != "3" {
		t.Fatalf("Input() = %q, want the digit typed during the call", m.Expression.Input())
	}

	run(t, m, m.PressEquals())

	if got := service.Calls()[1]; !reflect.DeepEqual(got, calcapi.CalculateRequest{Operation: "*", Args: []float64{9, 3}}) {
		t.Errorf("second request = %+v", got)
	}
	if m.Result != "27" {
		t.Errorf("Result = %q, want 27", m.Result)
	}
}

func TestExpressionUnaryThenOperatorEvaluatesPending(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	m.PressBinary(OpAdd)
	pressDigits(m, "9")
	run(t, m, m.PressUnary(OpSqrt))

	chain := m.PressBinary(OpMultiply)
	if chain == nil {
		t.Fatal("operator after a unary result dropped the pending +")
	}
	run(t, m, chain)
	pressDigits(m, "2")
	run(t, m, m.PressEquals())

	want := []calcapi.CalculateRequest{
		{Operation: "sqrt", Args: []float64{9}},
		{Operation: "+", Args: []float64{7, 3}},
		{Operation: "*", Args: []float64{10, 2}},
	}
	if got := service.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("requests = %+v, want %+v", got, want)
	}
	if m.Result != "20" {
		t.Errorf("Result = %q, want 20", m.Result)
	}
}

func TestExpressionFailureDropsQueuedKeys(t *testing.T) {
	m, service := newTestModel(config.ModeExpression)

	pressDigits(m, "8")
	m.PressBinary(OpDivide)
	pressDigits(m, "0")
	eq := m.PressEquals()
	m.PressBinary(OpAdd)
	pressDigits(m, "5")

	if next := run(t, m, eq); next != nil {
		t.Fatal("keys queued behind a failure were replayed")
	}
	if m.Err != "division by zero" {
		t.Errorf("Err = %q", m.Err)
	}
	if m.Expression.Queued() != 0 || m.Expression.Waiting() {
		t.Errorf("queued = %d waiting = %v", m.Expression.Queued(), m.Expression.Waiting())
	}
	if m.Expression.Input() != "0" {
		t.Errorf("Input() = %q, want the operand that failed", m.Expression.Input())
	}

	pressDigits(m, "4")
	run(t, m, m.PressEquals())
	if m.Result != "2" {
		t.Errorf("Result = %q, want 2 after correcting the operand", m.Result)
	}
	if len(service.Calls()) != 2 {
		t.Errorf("requests = %+v", service.Calls())
	}
}

func TestAllClearDuringFlight(t *testing.T) {
	m, _ := newTestModel(config.ModeExpression)

	pressDigits(m, "7")
	m.PressBinary(OpAdd)
	pressDigits(m, "2")
	cmd := m.PressEquals()
	m.AllClear()
	run(t, m, cmd)

	if !reflect.DeepEqual(m.Expression, NewExpression()) {
		t.Errorf("expression = %+v after AC", m.Expression)
	}
	if m.Result != "0" {
		t.Errorf("Result = %q, want 0", m.Result)
	}
	if m.History.Len() != 1 {
		t.Errorf("history len = %d, want 1", m.History.Len())
	}
}

func TestSwitchModeDropsInFlight(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)

	m.SelectOperation("add")
	m.PressOperand("1")
	m.PressOperand("2")
	cmd := m.SubmitOperations()
	m.SwitchMode()
	run(t, m, cmd)

	if m.Mode != ModeExpression {
		t.Errorf("Mode = %v", m.Mode)
	}
	if m.History.Len() != 0 || m.Result != "0" {
		t.Errorf("stale result leaked: history %v result %q", m.History.Lines(), m.Result)
	}
	if m.Busy() {
		t.Error("still busy after dropped response")
	}
}

func TestFetchesFromPreviousModeDropped(t *testing.T) {
	m, service := newTestModel(config.ModeOperations)
	service.HistoryFunc = func(ctx context.Context) ([]calcapi.HistoryEntry, error) {
		return []calcapi.HistoryEntry{{Expression: "add(1, 1)", Result: "2"}}, nil
	}

	ops := m.FetchOperations()
	history := m.FetchHistory()
	m.SwitchMode()

	m.HandleOperationsLoaded(ops().(OperationsLoadedMsg))
	m.HandleHistoryLoaded(history().(HistoryLoadedMsg))

	if len(m.Operations) != 0 {
		t.Errorf("operations = %v", m.Operations)
	}
	if m.History.Len() != 0 {
		t.Errorf("history = %v", m.History.Lines())
	}

	m.HandleHistoryLoaded(m.FetchHistory()().(HistoryLoadedMsg))
	if m.History.Len() != 1 {
		t.Errorf("history len = %d after a fetch for the current mode", m.History.Len())
	}
}

func TestSwitchModeRemembersMode(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)
	if cmd := m.RememberMode(); cmd != nil {
		t.Error("RememberMode without a config directory returned a command")
	}

	dir := t.TempDir()
	m.Config.ConfigDirectory = dir
	m.SwitchMode()

	cmd := m.RememberMode()
	if cmd == nil {
		t.Fatal("RememberMode returned nothing")
	}
	cmd()

	saved, err := config.LoadUserConfig(dir)
	if err != nil {
		t.Fatalf("LoadUserConfig() error = %v", err)
	}
	if saved.UI.Mode != config.ModeExpression {
		t.Errorf("saved mode = %q, want %q", saved.UI.Mode, config.ModeExpression)
	}
	if m.Config.Mode != config.ModeExpression {
		t.Errorf("Config.Mode = %q", m.Config.Mode)
	}
}

func TestHistoryLoaded(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)
	m.History.Append(calcapi.HistoryEntry{Expression: "local", Result: "1"})

	m.HandleHistoryLoaded(HistoryLoadedMsg{Err: errors.New("boom")})
	if m.History.Len() != 1 {
		t.Error("failed fetch changed history")
	}

	m.HandleHistoryLoaded(HistoryLoadedMsg{Entries: []calcapi.HistoryEntry{
		{Expression: "add(1, 1)", Result: "2"},
		{Expression: "sqrt(16)", Result: "4"},
	}})
	if got := m.History.Lines(); !reflect.DeepEqual(got, []string{"add(1, 1) = 2", "sqrt(16) = 4"}) {
		t.Errorf("history = %v", got)
	}
}

func TestOperationsLoaded(t *testing.T) {
	m, _ := newTestModel(config.ModeOperations)

	m.HandleOperationsLoaded(OperationsLoadedMsg{Err: errors.New("boom")})
	if len(m.Operations) != 0 {
		t.Errorf("operations = %v", m.Operations)
	}

	m.HandleOperationsLoaded(OperationsLoadedMsg{Operations: []string{"add", "sqrt"}})
	if !reflect.DeepEqual(m.Operations, []string{"add", "sqrt"}) {
		t.Errorf("operations = %v", m.Operations)
	}
}
