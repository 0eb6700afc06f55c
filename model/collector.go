package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNoOperation          = errors.New("choose an operation first")
	ErrInsufficientOperands = errors.New("not enough numbers")
	ErrInvalidOperand       = errors.New("invalid number")
)

// OperandCountError is returned when a submission has fewer operands than
// the operation's arity.
type OperandCountError struct {
	Operation string
	Required  int
	Got       int
}

func (e *OperandCountError) Error() string {
	return fmt.Sprintf("Operation %s needs %d numbers", e.Operation, e.Required)
}

func (e *OperandCountError) Unwrap() error {
	return ErrInsufficientOperands
}

// InputMode says which grid the operations calculator is showing.
type InputMode int

const (
	InputOperation InputMode = iota
	InputNumbers
)

// Collector is the operations calculator: pick an operation, then press
// one key per operand until the operation's arity is reached.
type Collector struct {
	operation string
	operands  []string
	mode      InputMode
}

func NewCollector() *Collector {
	return &Collector{mode: InputOperation}
}

// Select starts a fresh calculation for op and switches to number entry.
func (c *Collector) Select(op string) {
	c.operation = op
	c.operands = nil
	c.mode = InputNumbers
}

// Press appends key ("0"-"9" or ".") as the next operand.
// Presses with no operation chosen, past the arity, or of other keys are
// ignored and report false.
func (c *Collector) Press(key string) bool {
	if c.operation == "" || !isOperandKey(key) {
		return false
	}
	if len(c.operands) >= c.Required() {
		return false
	}
	c.operands = append(c.operands, key)
	return true
}

func isOperandKey(key string) bool {
	if key == "." {
		return true
	}
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

func (c *Collector) Operation() (string, bool) {
	return c.operation, c.operation != ""
}

func (c *Collector) Operands() []string {
	return append([]string(nil), c.operands...)
}

func (c *Collector) Mode() InputMode {
	return c.mode
}

// Required is the chosen operation's arity, or the default when none is chosen.
func (c *Collector) Required() int {
	return Arity(c.operation)
}

// Ready reports whether submitting is allowed.
func (c *Collector) Ready() bool {
	return c.operation != "" && len(c.operands) == c.Required()
}

// Prepare validates the pending input and builds the request. Nothing here
// touches the network; every error is meant for the error slot as is.
func (c *Collector) Prepare() (Calculation, error) {
	if c.operation == "" {
		return Calculation{}, ErrNoOperation
	}

	required := c.Required()
	if len(c.operands) < required {
		return Calculation{}, &OperandCountError{Operation: c.operation, Required: required, Got: len(c.operands)}
	}

	args := make([]float64, 0, required)
	for _, operand := range c.operands[:required] {
		v, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return Calculation{}, fmt.Errorf("%w: %q", ErrInvalidOperand, operand)
		}
		args = append(args, v)
	}

	return Calculation{Operation: c.operation, Args: args}, nil
}

// Reset returns to operation selection with nothing chosen.
func (c *Collector) Reset() {
	c.operation = ""
	c.operands = nil
	c.mode = InputOperation
}

// Display is the input line: "add(5, 3)" while collecting, a prompt otherwise.
func (c *Collector) Display() string {
	if c.operation == "" {
		return "Choose an operation"
	}
	return fmt.Sprintf("%s(%s)", c.operation, strings.Join(c.operands, ", "))
}

// Hint tells the user how many numbers the chosen operation takes.
func (c *Collector) Hint() string {
	required := c.Required()
	if required == 1 {
		return "Enter 1 number"
	}
	return fmt.Sprintf("Enter %d numbers", required)
}
