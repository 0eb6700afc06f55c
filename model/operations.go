package model

import (
	"fmt"

	"calctui/calcapi"
)

// Operation names a function the calculator service evaluates.
type Operation struct {
	Name  string
	Arity int
}

func (o Operation) Unary() bool {
	return o.Arity == 1
}

// Operations not in the table are assumed binary.
const defaultArity = 2

// operationArity covers the names served by GET /operations.
var operationArity = map[string]int{
	"add":      2,
	"subtract": 2,
	"multiply": 2,
	"divide":   2,
	"pow":      2,
	"sqrt":     1,
	"log":      1,
}

// Arity returns how many operands the named operation needs.
func Arity(name string) int {
	if n, ok := operationArity[name]; ok {
		return n
	}
	return defaultArity
}

// Expression-mode operators. The symbols are sent to the service verbatim.
var (
	OpAdd      = Operation{Name: "+", Arity: 2}
	OpSubtract = Operation{Name: "-", Arity: 2}
	OpMultiply = Operation{Name: "*", Arity: 2}
	OpDivide   = Operation{Name: "/", Arity: 2}
	OpPow      = Operation{Name: "pow", Arity: 2}
	OpSqrt     = Operation{Name: "sqrt", Arity: 1}
	OpLog      = Operation{Name: "log", Arity: 1}
	OpSin      = Operation{Name: "sin", Arity: 1}
	OpCos      = Operation{Name: "cos", Arity: 1}
	OpTan      = Operation{Name: "tan", Arity: 1}
)

var expressionOperators = map[string]Operation{
	OpAdd.Name:      OpAdd,
	OpSubtract.Name: OpSubtract,
	OpMultiply.Name: OpMultiply,
	OpDivide.Name:   OpDivide,
	OpPow.Name:      OpPow,
	OpSqrt.Name:     OpSqrt,
	OpLog.Name:      OpLog,
	OpSin.Name:      OpSin,
	OpCos.Name:      OpCos,
	OpTan.Name:      OpTan,
}

// ExpressionOperator looks up an expression-mode operator by name or symbol.
func ExpressionOperator(name string) (Operation, bool) {
	op, ok := expressionOperators[name]
	return op, ok
}

func isSymbol(name string) bool {
	switch name {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// Calculation is one request to the service.
type Calculation struct {
	Operation string
	Args      []float64
}

// Expression renders the calculation for history: "7 + 2" for the
// arithmetic symbols, "add(5, 3)" or "sqrt(9)" for everything else.
func (c Calculation) Expression() string {
	if isSymbol(c.Operation) && len(c.Args) == 2 {
		return fmt.Sprintf("%s %s %s",
			calcapi.FormatNumber(c.Args[0]), c.Operation, calcapi.FormatNumber(c.Args[1]))
	}
	return fmt.Sprintf("%s(%s)", c.Operation, calcapi.FormatArgs(c.Args))
}
