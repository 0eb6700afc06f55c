package model

import (
	"fmt"
	"strconv"
	"strings"

	"calctui/calcapi"
)

// ExpressionState is the running calculator's state.
type ExpressionState int

const (
	EnteringOperand ExpressionState = iota
	OperatorPending
)

func (s ExpressionState) String() string {
	switch s {
	case EnteringOperand:
		return "entering operand"
	case OperatorPending:
		return "operator pending"
	default:
		return "unknown"
	}
}

// StepKind says how an expression evaluation's result feeds back into
// the calculator once it arrives.
type StepKind int

const (
	// StepOperations: operations calculator submit; no expression state involved.
	StepOperations StepKind = iota
	// StepChain: a second binary operator was pressed; the result becomes
	// the stored operand and Next the pending operator.
	StepChain
	// StepEquals: "=" finished the pending binary operation.
	StepEquals
	// StepUnary: a unary operation was applied to the input.
	StepUnary
)

type Step struct {
	Kind StepKind
	Next Operation
}

// KeyKind is the kind of an expression keypress.
type KeyKind int

const (
	KeyDigit KeyKind = iota
	KeyDecimal
	KeyBinary
	KeyUnary
	KeyEquals
	KeyClearEntry
)

// Key is one expression keypress. Keys pressed while an evaluation is
// outstanding are held and replayed in order once it resolves.
type Key struct {
	Kind  KeyKind
	Digit rune
	Op    Operation
}

const initialInput = "0"

// Expression is the running calculator: left-to-right evaluation, no
// precedence, no parentheses.
type Expression struct {
	input    string
	stored   *float64
	operator *Operation
	awaiting bool // next digit starts a fresh operand
	operand  bool // input holds a right operand for operator

	waiting bool  // an evaluation has been issued and not resolved
	queued  []Key // keys pressed while waiting
}

func NewExpression() *Expression {
	return &Expression{input: initialInput}
}

func (e *Expression) Input() string {
	return e.input
}

func (e *Expression) Stored() (float64, bool) {
	if e.stored == nil {
		return 0, false
	}
	return *e.stored, true
}

func (e *Expression) Operator() (Operation, bool) {
	if e.operator == nil {
		return Operation{}, false
	}
	return *e.operator, true
}

// Awaiting reports whether the next digit starts a fresh operand.
func (e *Expression) Awaiting() bool {
	return e.awaiting
}

// Waiting reports whether an evaluation is outstanding.
func (e *Expression) Waiting() bool {
	return e.waiting
}

// Queued is the number of keys held until the outstanding evaluation resolves.
func (e *Expression) Queued() int {
	return len(e.queued)
}

func (e *Expression) State() ExpressionState {
	if e.operator != nil {
		return OperatorPending
	}
	return EnteringOperand
}

// Press handles one keypress. While an evaluation is outstanding the key
// is queued instead; otherwise it takes effect now and any evaluation it
// needs is returned.
func (e *Expression) Press(k Key) (Calculation, Step, bool) {
	if e.waiting {
		e.queued = append(e.queued, k)
		return Calculation{}, Step{}, false
	}
	calc, step, ok := e.press(k)
	e.waiting = ok
	return calc, step, ok
}

// Resume replays queued keys after a successful Apply, stopping at the
// first one that needs another evaluation.
func (e *Expression) Resume() (Calculation, Step, bool) {
	e.waiting = false
	for len(e.queued) > 0 {
		k := e.queued[0]
		e.queued = e.queued[1:]
		if calc, step, ok := e.press(k); ok {
			e.waiting = true
			return calc, step, true
		}
	}
	e.queued = nil
	return Calculation{}, Step{}, false
}

// Abandon drops the keys queued behind a failed evaluation and reports
// how many there were.
func (e *Expression) Abandon() int {
	n := len(e.queued)
	e.waiting = false
	e.queued = nil
	return n
}

func (e *Expression) press(k Key) (Calculation, Step, bool) {
	switch k.Kind {
	case KeyDigit:
		e.Digit(k.Digit)
	case KeyDecimal:
		e.Decimal()
	case KeyClearEntry:
		e.ClearEntry()
	case KeyBinary:
		return e.Binary(k.Op)
	case KeyUnary:
		calc, step := e.Unary(k.Op)
		return calc, step, true
	case KeyEquals:
		return e.Equals()
	}
	return Calculation{}, Step{}, false
}

// Digit appends d to the input, or starts a fresh operand with it.
func (e *Expression) Digit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	switch {
	case e.awaiting:
		e.input = string(d)
		e.awaiting = false
	case e.input == initialInput:
		e.input = string(d)
	default:
		e.input += string(d)
	}
	e.operand = true
}

// Decimal adds a decimal point; a second press on the same operand does nothing.
func (e *Expression) Decimal() {
	e.operand = true
	if e.awaiting {
		e.input = "0."
		e.awaiting = false
		return
	}
	if !strings.Contains(e.input, ".") {
		e.input += "."
	}
}

// Binary records op as the pending operator. When an operator is already
// pending and a right operand is present, the pending operation is
// returned for evaluation instead; the state only moves once Apply sees
// its result. Pressing operators back to back just swaps the operator.
func (e *Expression) Binary(op Operation) (Calculation, Step, bool) {
	if e.operator != nil {
		if !e.operand {
			e.operator = &op
			return Calculation{}, Step{}, false
		}
		calc := Calculation{
			Operation: e.operator.Name,
			Args:      []float64{*e.stored, e.value()},
		}
		return calc, Step{Kind: StepChain, Next: op}, true
	}

	v := e.value()
	e.stored = &v
	e.operator = &op
	e.awaiting = true
	e.operand = false
	return Calculation{}, Step{}, false
}

// Unary evaluates op against the current input right away.
func (e *Expression) Unary(op Operation) (Calculation, Step) {
	return Calculation{Operation: op.Name, Args: []float64{e.value()}}, Step{Kind: StepUnary}
}

// Equals returns the pending binary operation with the input as its
// right operand, or false when nothing is pending.
func (e *Expression) Equals() (Calculation, Step, bool) {
	if e.operator == nil {
		return Calculation{}, Step{}, false
	}
	calc := Calculation{
		Operation: e.operator.Name,
		Args:      []float64{*e.stored, e.value()},
	}
	return calc, Step{Kind: StepEquals}, true
}

// Apply moves the calculator forward with the service's result for step.
// A result that is not a number is refused and leaves the state alone.
func (e *Expression) Apply(step Step, result string) error {
	v, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return fmt.Errorf("service returned a non-numeric result %q", result)
	}

	switch step.Kind {
	case StepChain:
		next := step.Next
		e.stored = &v
		e.operator = &next
		e.operand = false
	case StepEquals:
		e.stored = nil
		e.operator = nil
		e.operand = false
	case StepUnary:
		// the result stands in for whatever was typed
		e.operand = true
	default:
		return fmt.Errorf("step %d does not apply to an expression", step.Kind)
	}

	e.input = result
	e.awaiting = true
	return nil
}

// AllClear restores the initial state.
func (e *Expression) AllClear() {
	*e = Expression{input: initialInput}
}

// ClearEntry clears the input only; the stored operand and operator stay.
// The cleared input still counts as an operand.
func (e *Expression) ClearEntry() {
	e.input = initialInput
	e.operand = true
}

// Display is the line above the input, e.g. "7 +" while an operator is pending.
func (e *Expression) Display() string {
	if e.operator == nil {
		return ""
	}
	return calcapi.FormatNumber(*e.stored) + " " + e.operator.Name
}

// value is the input as a number. The input only ever holds typed digits
// or a result Apply already parsed, so this cannot fail in practice.
func (e *Expression) value() float64 {
	v, err := strconv.ParseFloat(e.input, 64)
	if err != nil {
		return 0
	}
	return v
}
