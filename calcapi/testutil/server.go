package testutil

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"calctui/calcapi"
)

// BasePath is where FakeService mounts the calculator routes.
const BasePath = "/api/calculator"

// Reply is what FakeService sends back for one calculation.
// Body is JSON-encoded as is, so a float64 gives a bare number and a
// string gives a numeric string.
type Reply struct {
	Status int
	Body   any
}

// FakeService is an in-process calculator service for client and UI tests.
type FakeService struct {
	mu sync.Mutex

	operations []string
	history    []any
	compute    func(req calcapi.CalculateRequest) Reply
	failAll    *Reply

	requests   []calcapi.CalculateRequest
	requestIDs []string

	server *httptest.Server
}

func NewFakeService(t testing.TB) *FakeService {
	t.Helper()

	f := &FakeService{
		operations: []string{"add", "subtract", "multiply", "divide", "sqrt", "pow", "log"},
		history:    []any{},
		compute:    Arithmetic,
	}

	r := chi.NewRouter()
	r.Use(f.recordRequestID)
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/operations", f.handleOperations)
		r.Get("/history", f.handleHistory)
		r.Post("/calculate", f.handleCalculate)
	})

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)

	return f
}

// URL is the base URL to hand to calcapi.NewClient.
func (f *FakeService) URL() string {
	return f.server.URL + BasePath
}

func (f *FakeService) SetOperations(ops []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations = ops
}

// SetHistory sets the raw JSON items served by GET /history.
func (f *FakeService) SetHistory(items ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = items
}

func (f *FakeService) SetCompute(compute func(req calcapi.CalculateRequest) Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compute = compute
}

// FailAll makes every route answer with reply.
func (f *FakeService) FailAll(reply Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAll = &reply
}

func (f *FakeService) Requests() []calcapi.CalculateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]calcapi.CalculateRequest(nil), f.requests...)
}

func (f *FakeService) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

func (f *FakeService) recordRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, r.Header.Get("X-Request-ID"))
		failAll := f.failAll
		f.mu.Unlock()

		if failAll != nil {
			writeJSON(w, failAll.Status, failAll.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeService) handleOperations(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	ops := f.operations
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, ops)
}

func (f *FakeService) handleHistory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	items := f.history
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (f *FakeService) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calcapi.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	compute := f.compute
	f.mu.Unlock()

	reply := compute(req)
	writeJSON(w, reply.Status, reply.Body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Arithmetic is the default FakeService behaviour: a small real calculator
// covering both the named and the symbolic operations.
func Arithmetic(req calcapi.CalculateRequest) Reply {
	fail := func(msg string) Reply {
		return Reply{Status: http.StatusBadRequest, Body: map[string]string{"message": msg}}
	}

	unary := map[string]func(float64) float64{
		"sqrt": math.Sqrt,
		"log":  math.Log10,
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
	}
	if fn, ok := unary[req.Operation]; ok {
		if len(req.Args) != 1 {
			return fail(fmt.Sprintf("%s takes 1 argument", req.Operation))
		}
		return Reply{Status: http.StatusOK, Body: fn(req.Args[0])}
	}

	if len(req.Args) != 2 {
		return fail(fmt.Sprintf("%s takes 2 arguments", req.Operation))
	}
	a, b := req.Args[0], req.Args[1]

	switch req.Operation {
	case "add", "+":
		return Reply{Status: http.StatusOK, Body: a + b}
	case "subtract", "-":
		return Reply{Status: http.StatusOK, Body: a - b}
	case "multiply", "*":
		return Reply{Status: http.StatusOK, Body: a * b}
	case "divide", "/":
		if b == 0 {
			return fail("division by zero")
		}
		return Reply{Status: http.StatusOK, Body: a / b}
	case "pow":
		return Reply{Status: http.StatusOK, Body: math.Pow(a, b)}
	default:
		return fail(fmt.Sprintf("unknown operation %q", req.Operation))
	}
}
