// Package history keeps the lines submitted during a quiz run.
package history

// History is an append-only list of submitted input lines.
type History struct {
	entries []string
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// Add appends a line. Empty lines are not recorded.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	h.entries = append(h.entries, line)
}

// Last returns the most recent entry.
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the entry at index i, oldest first.
func (h *History) At(i int) string {
	return h.entries[i]
}
