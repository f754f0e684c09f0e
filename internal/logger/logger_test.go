package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogger_StampsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "orbits.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }

	l.Log("registered Earth")
	l.Logf("step %d failed: %v", 3, "bad dt")

	lines := l.Lines()
	want := []string{
		"[2024-03-01 12:30:00] registered Earth",
		"[2024-03-01 12:30:00] step 3 failed: bad dt",
	}
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(want, "\n") + "\n"; string(data) != got {
		t.Errorf("file = %q, want %q", data, got)
	}
}

func TestLogger_MemoryOnlyAndBounded(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+10; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	if len(lines) != maxLines {
		t.Fatalf("len(Lines()) = %d, want %d", len(lines), maxLines)
	}
	if !strings.HasSuffix(lines[0], "line 10") {
		t.Errorf("oldest kept line = %q, want line 10", lines[0])
	}

	lines[0] = "mutated"
	if l.Lines()[0] == "mutated" {
		t.Error("Lines() returned internal slice")
	}
}
