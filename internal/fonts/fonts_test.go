package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Fira", "FiraSans-Bold.ttf"))
	touch(t, filepath.Join(dir, "Mono.OTF"))
	touch(t, filepath.Join(dir, "readme.txt"))

	got, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("ScanDir() = %v, want 2 fonts", got)
	}

	if got, err := ScanDir(filepath.Join(dir, "missing")); err != nil || len(got) != 0 {
		t.Errorf("ScanDir(missing) = %v, %v", got, err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Fira", "FiraSans-Bold.ttf"))
	touch(t, filepath.Join(dir, "Fira", "FiraSans-Regular.ttf"))
	touch(t, filepath.Join(dir, "Mono.ttf"))

	got, err := Find("fira sans", dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "Fira", "FiraSans-Regular.ttf"); got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
	if got, err := Find("mono", dir); err != nil || filepath.Base(got) != "Mono.ttf" {
		t.Errorf("Find(mono) = %q, %v", got, err)
	}
	for _, search := range []string{"", "comic"} {
		if _, err := Find(search, dir); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Find(%q) error = %v, want ErrNotExist", search, err)
		}
	}
}
