package testutil

import (
	"context"
	"sync"

	"calctui/calcapi"
)

// MockService implements model.CalculatorService for testing
type MockService struct {
	// Configurable responses
	OperationsFunc func(ctx context.Context) ([]string, error)
	HistoryFunc    func(ctx context.Context) ([]calcapi.HistoryEntry, error)
	CalculateFunc  func(ctx context.Context, operation string, args []float64) (string, error)

	mu    sync.Mutex
	calls []calcapi.CalculateRequest
}

// NewMockService creates a mock with an empty history, the usual
// operation list and calculations answered by Arithmetic.
func NewMockService() *MockService {
	mock := &MockService{}
	mock.OperationsFunc = func(ctx context.Context) ([]string, error) {
		return []string{"add", "subtract", "multiply", "divide", "sqrt", "pow", "log"}, nil
	}
	mock.HistoryFunc = func(ctx context.Context) ([]calcapi.HistoryEntry, error) {
		return nil, nil
	}
	mock.CalculateFunc = mock.defaultCalculate
	return mock
}

func (m *MockService) defaultCalculate(ctx context.Context, operation string, args []float64) (string, error) {
	reply := Arithmetic(calcapi.CalculateRequest{Operation: operation, Args: args})
	if reply.Status != 200 {
		msg, _ := reply.Body.(map[string]string)
		return "", &calcapi.APIError{Status: reply.Status, Message: msg["message"]}
	}
	return calcapi.FormatNumber(reply.Body.(float64)), nil
}

func (m *MockService) Operations(ctx context.Context) ([]string, error) {
	return m.OperationsFunc(ctx)
}

func (m *MockService) History(ctx context.Context) ([]calcapi.HistoryEntry, error) {
	return m.HistoryFunc(ctx)
}

func (m *MockService) Calculate(ctx context.Context, operation string, args []float64) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, calcapi.CalculateRequest{Operation: operation, Args: append([]float64(nil), args...)})
	m.mu.Unlock()
	return m.CalculateFunc(ctx, operation, args)
}

// Calls returns every Calculate request seen so far, in order.
func (m *MockService) Calls() []calcapi.CalculateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]calcapi.CalculateRequest(nil), m.calls...)
}
