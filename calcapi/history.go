package calcapi

import "strings"

// HistoryEntry is one completed calculation as the service reports it.
type HistoryEntry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

func (e HistoryEntry) String() string {
	return e.Expression + " = " + e.Result
}

// ParseHistoryLine splits a flat "expr = result" line on its last "=".
// A line without "=" is kept whole as the expression.
func ParseHistoryLine(line string) HistoryEntry {
	idx := strings.LastIndex(line, "=")
	if idx < 0 {
		return HistoryEntry{Expression: strings.TrimSpace(line)}
	}
	return HistoryEntry{
		Expression: strings.TrimSpace(line[:idx]),
		Result:     strings.TrimSpace(line[idx+1:]),
	}
}
