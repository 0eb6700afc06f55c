package model

import (
	"reflect"
	"testing"
)

func typeDigits(e *Expression, digits string) {
	for _, d := range digits {
		if d == '.' {
			e.Decimal()
			continue
		}
		e.Digit(d)
	}
}

func TestExpressionInitialState(t *testing.T) {
	e := NewExpression()

	if e.Input() != "0" {
		t.Errorf("Input() = %q, want 0", e.Input())
	}
	if _, ok := e.Stored(); ok {
		t.Error("stored operand set initially")
	}
	if _, ok := e.Operator(); ok {
		t.Error("operator set initially")
	}
	if e.State() != EnteringOperand {
		t.Errorf("State() = %v", e.State())
	}
}

func TestExpressionDigits(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"7", "7"},
		{"123", "123"},
		{"007", "7"},
		{"1.5", "1.5"},
		{".5", "0.5"},
		{"1..5", "1.5"},
		{"1.2.3", "1.23"},
	}

	for _, tt := range tests {
		e := NewExpression()
		typeDigits(e, tt.keys)
		if e.Input() != tt.want {
			t.Errorf("keys %q: Input() = %q, want %q", tt.keys, e.Input(), tt.want)
		}
	}
}

func TestExpressionDecimalIdempotent(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "3")
	e.Decimal()
	after := e.Input()
	e.Decimal()

	if e.Input() != after {
		t.Errorf("second decimal changed input %q -> %q", after, e.Input())
	}
}

func TestExpressionBinaryStartsFreshOperand(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "7")

	if _, _, ok := e.Binary(OpAdd); ok {
		t.Fatal("first operator produced an evaluation")
	}
	if e.State() != OperatorPending {
		t.Errorf("State() = %v, want OperatorPending", e.State())
	}
	if stored, _ := e.Stored(); stored != 7 {
		t.Errorf("stored = %v, want 7", stored)
	}
	if got := e.Display(); got != "7 +" {
		t.Errorf("Display() = %q", got)
	}

	typeDigits(e, "2")
	if e.Input() != "2" {
		t.Errorf("Input() = %q, want fresh operand 2", e.Input())
	}
}

func TestExpressionSecondOperatorEvaluatesOnce(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "7")
	e.Binary(OpAdd)
	typeDigits(e, "2")

	calc, step, ok := e.Binary(OpMultiply)
	if !ok {
		t.Fatal("second operator did not evaluate")
	}
	if want := (Calculation{Operation: "+", Args: []float64{7, 2}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}
	if step.Kind != StepChain || step.Next != OpMultiply {
		t.Errorf("step = %+v", step)
	}

	if err := e.Apply(step, "9"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if stored, _ := e.Stored(); stored != 9 {
		t.Errorf("stored = %v, want 9", stored)
	}
	if op, _ := e.Operator(); op != OpMultiply {
		t.Errorf("operator = %+v, want *", op)
	}
	if e.Input() != "9" || !e.Awaiting() {
		t.Errorf("input = %q awaiting = %v", e.Input(), e.Awaiting())
	}
}

func TestExpressionOperatorSwapWithoutOperand(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "7")
	e.Binary(OpAdd)

	if _, _, ok := e.Binary(OpSubtract); ok {
		t.Fatal("operator swap produced an evaluation")
	}
	if op, _ := e.Operator(); op != OpSubtract {
		t.Errorf("operator = %+v, want -", op)
	}
	if stored, _ := e.Stored(); stored != 7 {
		t.Errorf("stored = %v, want 7", stored)
	}
}

func TestExpressionEquals(t *testing.T) {
	e := NewExpression()
	if _, _, ok := e.Equals(); ok {
		t.Error("Equals() with nothing pending produced an evaluation")
	}

	typeDigits(e, "7")
	e.Binary(OpAdd)
	typeDigits(e, "2")

	calc, step, ok := e.Equals()
	if !ok {
		t.Fatal("Equals() produced nothing")
	}
	if want := (Calculation{Operation: "+", Args: []float64{7, 2}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}

	if err := e.Apply(step, "9"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if e.Input() != "9" {
		t.Errorf("Input() = %q, want 9", e.Input())
	}
	if e.State() != EnteringOperand {
		t.Errorf("State() = %v", e.State())
	}

	typeDigits(e, "4")
	if e.Input() != "4" {
		t.Errorf("digit after result: Input() = %q, want 4", e.Input())
	}
}

func TestExpressionUnary(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "9")

	calc, step := e.Unary(OpSqrt)
	if want := (Calculation{Operation: "sqrt", Args: []float64{9}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}

	if err := e.Apply(step, "3"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if e.Input() != "3" {
		t.Errorf("Input() = %q, want 3", e.Input())
	}
}

func TestExpressionUnaryKeepsPendingOperator(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "2")
	e.Binary(OpAdd)
	typeDigits(e, "9")

	_, step := e.Unary(OpSqrt)
	if err := e.Apply(step, "3"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	calc, _, ok := e.Equals()
	if !ok {
		t.Fatal("pending operator lost after unary")
	}
	if want := (Calculation{Operation: "+", Args: []float64{2, 3}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}
}

func TestExpressionOperatorAfterUnaryChains(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "7")
	e.Binary(OpAdd)
	typeDigits(e, "9")

	_, step := e.Unary(OpSqrt)
	if err := e.Apply(step, "3"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	calc, step, ok := e.Binary(OpMultiply)
	if !ok {
		t.Fatal("operator after a unary result only swapped the operator")
	}
	if want := (Calculation{Operation: "+", Args: []float64{7, 3}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}
	if step.Next != OpMultiply {
		t.Errorf("step = %+v", step)
	}
}

func TestExpressionOperatorAfterClearEntryChains(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "7")
	e.Binary(OpAdd)
	e.ClearEntry()

	calc, _, ok := e.Binary(OpMultiply)
	if !ok {
		t.Fatal("cleared entry was not used as an operand")
	}
	if want := (Calculation{Operation: "+", Args: []float64{7, 0}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}
}

func TestExpressionPressQueuesWhileWaiting(t *testing.T) {
	e := NewExpression()
	for _, k := range []Key{
		{Kind: KeyDigit, Digit: '7'},
		{Kind: KeyBinary, Op: OpAdd},
		{Kind: KeyDigit, Digit: '2'},
	} {
		if _, _, ok := e.Press(k); ok {
			t.Fatalf("Press(%+v) produced an evaluation", k)
		}
	}

	_, step, ok := e.Press(Key{Kind: KeyBinary, Op: OpMultiply})
	if !ok || !e.Waiting() {
		t.Fatalf("chain ok = %v waiting = %v", ok, e.Waiting())
	}

	e.Press(Key{Kind: KeyDigit, Digit: '3'})
	e.Press(Key{Kind: KeyEquals})
	if e.Queued() != 2 || e.Input() != "2" {
		t.Fatalf("queued = %d input = %q", e.Queued(), e.Input())
	}

	if err := e.Apply(step, "9"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	calc, step, ok := e.Resume()
	if !ok {
		t.Fatal("Resume() did not reach the queued =")
	}
	if want := (Calculation{Operation: "*", Args: []float64{9, 3}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}
	if step.Kind != StepEquals || e.Queued() != 0 || !e.Waiting() {
		t.Errorf("step = %+v queued = %d waiting = %v", step, e.Queued(), e.Waiting())
	}
}

func TestExpressionAbandonDropsQueue(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "4")
	if _, _, ok := e.Press(Key{Kind: KeyUnary, Op: OpSqrt}); !ok {
		t.Fatal("unary produced nothing")
	}
	e.Press(Key{Kind: KeyDigit, Digit: '1'})
	e.Press(Key{Kind: KeyClearEntry})

	if n := e.Abandon(); n != 2 {
		t.Errorf("Abandon() = %d, want 2", n)
	}
	if e.Waiting() || e.Queued() != 0 || e.Input() != "4" {
		t.Errorf("waiting = %v queued = %d input = %q", e.Waiting(), e.Queued(), e.Input())
	}

	e.Press(Key{Kind: KeyDigit, Digit: '2'})
	if e.Input() != "42" {
		t.Errorf("Input() = %q, want keys to apply directly again", e.Input())
	}
}

func TestExpressionApplyRejectsNonNumeric(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "5")

	if err := e.Apply(Step{Kind: StepUnary}, "oops"); err == nil {
		t.Fatal("Apply() accepted a non-numeric result")
	}
	if e.Input() != "5" {
		t.Errorf("Input() = %q after rejected result", e.Input())
	}
}

func TestExpressionAllClearRestoresInitialState(t *testing.T) {
	setups := map[string]func(e *Expression){
		"fresh":            func(e *Expression) {},
		"typed":            func(e *Expression) { typeDigits(e, "12.5") },
		"operator pending": func(e *Expression) { typeDigits(e, "7"); e.Binary(OpDivide) },
		"after result": func(e *Expression) {
			typeDigits(e, "7")
			e.Binary(OpAdd)
			typeDigits(e, "2")
			_, step, _ := e.Equals()
			e.Apply(step, "9")
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			e := NewExpression()
			setup(e)
			e.AllClear()

			if !reflect.DeepEqual(e, NewExpression()) {
				t.Errorf("after AllClear = %+v, want initial state", e)
			}
		})
	}
}

func TestExpressionClearEntryKeepsPending(t *testing.T) {
	e := NewExpression()
	typeDigits(e, "7")
	e.Binary(OpAdd)
	typeDigits(e, "3")
	e.ClearEntry()

	if e.Input() != "0" {
		t.Errorf("Input() = %q, want 0", e.Input())
	}
	if stored, ok := e.Stored(); !ok || stored != 7 {
		t.Errorf("stored = %v, %v", stored, ok)
	}
	if op, ok := e.Operator(); !ok || op != OpAdd {
		t.Errorf("operator = %+v, %v", op, ok)
	}

	typeDigits(e, "5")
	calc, _, _ := e.Equals()
	if want := (Calculation{Operation: "+", Args: []float64{7, 5}}); !reflect.DeepEqual(calc, want) {
		t.Errorf("calculation = %+v, want %+v", calc, want)
	}
}

func TestCalculationExpression(t *testing.T) {
	tests := []struct {
		calc Calculation
		want string
	}{
		{Calculation{Operation: "add", Args: []float64{5, 3}}, "add(5, 3)"},
		{Calculation{Operation: "+", Args: []float64{7, 2}}, "7 + 2"},
		{Calculation{Operation: "/", Args: []float64{1, 0.5}}, "1 / 0.5"},
		{Calculation{Operation: "sqrt", Args: []float64{9}}, "sqrt(9)"},
		{Calculation{Operation: "pow", Args: []float64{2, 10}}, "pow(2, 10)"},
	}

	for _, tt := range tests {
		if got := tt.calc.Expression(); got != tt.want {
			t.Errorf("Expression() = %q, want %q", got, tt.want)
		}
	}
}

func TestExpressionOperatorLookup(t *testing.T) {
	for _, name := range []string{"+", "-", "*", "/", "pow", "sqrt", "log", "sin", "cos", "tan"} {
		if _, ok := ExpressionOperator(name); !ok {
			t.Errorf("ExpressionOperator(%q) not found", name)
		}
	}
	if op, _ := ExpressionOperator("sqrt"); !op.Unary() {
		t.Error("sqrt should be unary")
	}
	if _, ok := ExpressionOperator("%"); ok {
		t.Error("unexpected operator %")
	}
}
