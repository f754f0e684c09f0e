package commands

// History keeps submitted lines for Up/Down recall. The zero position is "past the newest
// entry", where the draft typed before browsing is restored.
type History struct {
	lines []string
	max   int
	pos   int
	draft string
}

// NewHistory returns a history holding at most max lines.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add records line and resets browsing. Consecutive duplicates are stored once.
func (h *History) Add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if len(h.lines) > h.max {
			h.lines = h.lines[len(h.lines)-h.max:]
		}
	}
	h.pos = len(h.lines)
	h.draft = ""
}

// Prev moves one entry back. current is kept as the draft when browsing starts.
func (h *History) Prev(current string) string {
	if len(h.lines) == 0 {
		return current
	}
	if h.pos >= len(h.lines) {
		h.pos = len(h.lines)
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.lines[h.pos]
}

// Next moves one entry forward, returning the draft after the newest entry.
func (h *History) Next() string {
	if h.pos >= len(h.lines) {
		return h.draft
	}
	h.pos++
	if h.pos == len(h.lines) {
		return h.draft
	}
	return h.lines[h.pos]
}
