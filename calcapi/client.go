package calcapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"calctui/config"
)

// Responses larger than this are refused; the service only ever sends
// a scalar, a list of names or the history.
const maxBodySize = 4 << 20

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// CalculateRequest is the JSON body for POST <base>/calculate.
type CalculateRequest struct {
	Operation string    `json:"operation"`
	Args      []float64 `json:"args"`
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid calculator URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid calculator URL: %q is not absolute", baseURL)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Operations fetches the operation names the service offers, in service order.
func (c *Client) Operations(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/operations", nil)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("unexpected operations payload: %s", preview(body))
	}

	items := parsed.Array()
	ops := make([]string, 0, len(items))
	for _, item := range items {
		if name := item.String(); name != "" {
			ops = append(ops, name)
		}
	}

	return ops, nil
}

// History fetches the service's history. Entries may be flat
// "expr = result" strings or {expression, result} records; both are accepted.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	body, err := c.do(ctx, http.MethodGet, "/history", nil)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("unexpected history payload: %s", preview(body))
	}

	items := parsed.Array()
	entries := make([]HistoryEntry, 0, len(items))
	for _, item := range items {
		switch {
		case item.IsObject():
			entries = append(entries, HistoryEntry{
				Expression: item.Get("expression").String(),
				Result:     scalarText(item.Get("result")),
			})
		case item.Type == gjson.String:
			entries = append(entries, ParseHistoryLine(item.Str))
		default:
			config.Log.Debug("skipping history item", zap.String("raw", item.Raw))
		}
	}

	return entries, nil
}

// Calculate posts one calculation and returns the service's scalar result as text.
func (c *Client) Calculate(ctx context.Context, operation string, args []float64) (string, error) {
	if args == nil {
		args = []float64{}
	}

	payload, err := json.Marshal(CalculateRequest{Operation: operation, Args: args})
	if err != nil {
		return "", fmt.Errorf("failed to encode calculation: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/calculate", payload)
	if err != nil {
		return "", err
	}

	parsed := gjson.ParseBytes(bytes.TrimSpace(body))
	switch parsed.Type {
	case gjson.Number, gjson.String:
		return scalarText(parsed), nil
	default:
		return "", fmt.Errorf("unexpected calculation result: %s", preview(body))
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := config.Log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("request failed", zap.Error(err))
		return nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	// One byte past the limit tells a full body from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err == nil && len(body) > maxBodySize {
		err = ErrResponseTooLarge
	}
	if err != nil {
		logger.Debug("reading response failed", zap.Error(err))
		return nil, &APIError{Status: resp.StatusCode, Err: err}
	}

	logger.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// scalarText renders a JSON scalar the way the result display shows it:
// numbers via FormatNumber, strings verbatim.
func scalarText(r gjson.Result) string {
	if r.Type == gjson.Number {
		return FormatNumber(r.Num)
	}
	return r.String()
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
