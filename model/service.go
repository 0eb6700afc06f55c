package model

import (
	"context"

	"calctui/calcapi"
)

// CalculatorService is the remote calculator as the model sees it.
// *calcapi.Client implements it; tests substitute their own.
type CalculatorService interface {
	// Operations lists the operation names offered for selection.
	Operations(ctx context.Context) ([]string, error)

	// History returns the service's record of past calculations.
	History(ctx context.Context) ([]calcapi.HistoryEntry, error)

	// Calculate evaluates one operation and returns the result as text.
	Calculate(ctx context.Context, operation string, args []float64) (string, error)
}

var _ CalculatorService = (*calcapi.Client)(nil)
