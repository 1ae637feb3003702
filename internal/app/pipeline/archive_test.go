package pipeline

import (
	"archive/zip"
	"io"
	"path/filepath"
	"sort"
	"testing"
)

func zipEntries(t *testing.T, p string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(p)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		if f.Method != zip.Deflate {
			t.Fatalf("entry %s not deflated", f.Name)
		}
		out[f.Name] = string(b)
	}
	return out
}

func TestArchiveUnionAndRemove(t *testing.T) {
	root := t.TempDir()
	d1 := filepath.Join(root, "theme")
	d2 := filepath.Join(root, "theme-hdpi")
	d3 := filepath.Join(root, "theme-xhdpi")
	writeFixture(t, d1, map[string]string{"index.theme": "idx", "gtk-3.0/gtk.css": "css"})
	writeFixture(t, d2, map[string]string{"xfwm4/themerc": "hdpi"})
	writeFixture(t, d3, map[string]string{"xfwm4/themerc": "xhdpi"})

	archive := filepath.Join(root, "out.zip")
	stats, err := Archive([]string{d1, d2, d3}, archive, true)
	if err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if stats.Files != 4 || stats.Bytes == 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	entries := zipEntries(t, archive)
	want := map[string]string{
		"theme/index.theme":         "idx",
		"theme/gtk-3.0/gtk.css":     "css",
		"theme-hdpi/xfwm4/themerc":  "hdpi",
		"theme-xhdpi/xfwm4/themerc": "xhdpi",
	}
	if len(entries) != len(want) {
		var names []string
		for n := range entries {
			names = append(names, n)
		}
		sort.Strings(names)
		t.Fatalf("expected %d entries, got %v", len(want), names)
	}
	for name, content := range want {
		if entries[name] != content {
			t.Fatalf("entry %s: expected %q, got %q", name, content, entries[name])
		}
	}
	for _, d := range []string{d1, d2, d3} {
		if exists(d) {
			t.Fatalf("%s should have been removed", d)
		}
	}
}

func TestArchiveKeepsDirs(t *testing.T) {
	root := t.TempDir()
	d := filepath.Join(root, "theme")
	writeFixture(t, d, map[string]string{"index.theme": "idx"})
	if _, err := Archive([]string{d}, filepath.Join(root, "out.zip"), false); err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if !exists(d) {
		t.Fatalf("directory should be kept when remove is false")
	}
}

func TestArchiveMissingDirLeavesInputs(t *testing.T) {
	root := t.TempDir()
	d := filepath.Join(root, "theme")
	writeFixture(t, d, map[string]string{"index.theme": "idx"})
	out := filepath.Join(root, "out.zip")
	_, err := Archive([]string{d, filepath.Join(root, "missing")}, out, true)
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if !exists(d) {
		t.Fatalf("inputs must survive a failed archive")
	}
	if exists(out) {
		t.Fatalf("failed archive should not leave %s behind", out)
	}
}
