package commands

import "testing"

func TestHistory_Browse(t *testing.T) {
	h := NewHistory(10)
	h.Add("cmd play")
	h.Add("cmd pause")
	h.Add("cmd pause")

	if got := h.Prev("draft"); got != "cmd pause" {
		t.Fatalf("Prev() = %q, want cmd pause", got)
	}
	if got := h.Prev(""); got != "cmd play" {
		t.Fatalf("Prev() = %q, want cmd play", got)
	}
	if got := h.Prev(""); got != "cmd play" {
		t.Errorf("Prev() at oldest = %q, want cmd play", got)
	}
	if got := h.Next(); got != "cmd pause" {
		t.Errorf("Next() = %q, want cmd pause", got)
	}
	if got := h.Next(); got != "draft" {
		t.Errorf("Next() past newest = %q, want draft", got)
	}
	if got := h.Next(); got != "draft" {
		t.Errorf("Next() again = %q, want draft", got)
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(2)
	for _, l := range []string{"a", "b", "c"} {
		h.Add(l)
	}
	if got := h.Prev(""); got != "c" {
		t.Errorf("Prev() = %q", got)
	}
	if got := h.Prev(""); got != "b" {
		t.Errorf("Prev() = %q", got)
	}
	if got := h.Prev(""); got != "b" {
		t.Errorf("oldest kept = %q, want b", got)
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if got := h.Prev("typing"); got != "typing" {
		t.Errorf("Prev() on empty = %q", got)
	}
	if got := h.Next(); got != "" {
		t.Errorf("Next() on empty = %q", got)
	}
}
