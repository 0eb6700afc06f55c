package model

import "calctui/calcapi"

// History is the session's list of completed calculations, oldest first.
// It only grows, except when Replace installs the service's copy.
type History struct {
	entries []calcapi.HistoryEntry
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(entry calcapi.HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h *History) Replace(entries []calcapi.HistoryEntry) {
	h.entries = append([]calcapi.HistoryEntry(nil), entries...)
}

func (h *History) Entries() []calcapi.HistoryEntry {
	return append([]calcapi.HistoryEntry(nil), h.entries...)
}

func (h *History) Len() int {
	return len(h.entries)
}

// Lines renders every entry as "<expr> = <result>".
func (h *History) Lines() []string {
	lines := make([]string, len(h.entries))
	for i, entry := range h.entries {
		lines[i] = entry.String()
	}
	return lines
}
