package pipeline

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestSubstituteRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "asset.svg")
	orig := []byte(`<rect fill="#5b9bf8"/><rect fill="#5b9bf8"/>` + "\n")
	if err := os.WriteFile(p, orig, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Substitute(p, "#5b9bf8", "#8caaee"); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if got := readFile(t, p); got != `<rect fill="#8caaee"/><rect fill="#8caaee"/>`+"\n" {
		t.Fatalf("unexpected content: %q", got)
	}
	if err := Substitute(p, "#8caaee", "#5b9bf8"); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	b, _ := os.ReadFile(p)
	if !bytes.Equal(b, orig) {
		t.Fatalf("round trip changed content: %q", b)
	}
}

func TestSubstituteWithoutMatchKeepsBytes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "thumbnail.png")
	orig := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0xfe, '#', '2', 'c'}
	if err := os.WriteFile(p, orig, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Substitute(p, "#2c2c2c", "#303446"); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	b, _ := os.ReadFile(p)
	if !bytes.Equal(b, orig) {
		t.Fatalf("content changed: %v", b)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode not preserved: %v", info.Mode().Perm())
	}
}

func TestSubstituteBinarySafe(t *testing.T) {
	p := filepath.Join(t.TempDir(), "thumbnail.png")
	orig := append([]byte{0x00, 0xc3, 0x28, 0xff}, []byte("#5b9bf8")...)
	orig = append(orig, 0x00, 0x80)
	if err := os.WriteFile(p, orig, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Substitute(p, "#5b9bf8", "#8caaee"); err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	want := append([]byte{0x00, 0xc3, 0x28, 0xff}, []byte("#8caaee")...)
	want = append(want, 0x00, 0x80)
	b, _ := os.ReadFile(p)
	if !bytes.Equal(b, want) {
		t.Fatalf("expected %v, got %v", want, b)
	}
}

func TestSubstituteErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.svg")
	if err := Substitute(missing, "a", "b"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	p := filepath.Join(t.TempDir(), "a.svg")
	if err := os.WriteFile(p, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Substitute(p, "", "x"); !errors.Is(err, errEmptyToken) {
		t.Fatalf("expected empty token error, got %v", err)
	}
}

func TestSubstituteGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.svg", "b.svg", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#3c84f7 #5b9bf8"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	n, err := SubstituteGlob(filepath.Join(dir, "*.svg"), []Replacement{
		{Old: "#5b9bf8", New: "#ca9ee6"},
		{Old: "#3c84f7", New: "#ca9ee6"},
	})
	if err != nil {
		t.Fatalf("SubstituteGlob error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 files, got %d", n)
	}
	if got := readFile(t, filepath.Join(dir, "a.svg")); got != "#ca9ee6 #ca9ee6" {
		t.Fatalf("unexpected content %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "c.png")); got != "#3c84f7 #5b9bf8" {
		t.Fatalf("non-matching file changed: %q", got)
	}
}
