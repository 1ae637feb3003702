package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

func TestRunFrappeBlue(t *testing.T) {
	src, patches := newSourceTree(t)
	c := newContext(t, src, patches, variant.Options{Flavor: "frappe", Accent: "blue", Size: "standard"})
	if c.Accent.Hex != "#8caaee" {
		t.Fatalf("unexpected accent %s", c.Accent.Hex)
	}

	var logs bytes.Buffer
	res, err := Run(context.Background(), c, Options{Compiler: &fakeCompiler{}, Logger: log.New(&logs)})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Archive != "" || len(res.Dirs) != 3 {
		t.Fatalf("unexpected result %+v", res)
	}

	out := c.OutputDir()
	index := readFile(t, filepath.Join(out, "index.theme"))
	var gtkTheme string
	for _, line := range strings.Split(index, "\n") {
		if strings.HasPrefix(line, "GtkTheme=") {
			gtkTheme = strings.TrimPrefix(line, "GtkTheme=")
		}
	}
	if want := "catppuccin-frappe-blue-standard+default"; gtkTheme != want {
		t.Fatalf("expected GtkTheme=%s, got %q", want, gtkTheme)
	}
	for _, f := range []string{"gtk.css", "gtk-dark.css"} {
		if !exists(filepath.Join(out, "gtk-3.0", f)) {
			t.Fatalf("gtk-3.0/%s missing", f)
		}
	}
	svgs, _ := filepath.Glob(filepath.Join(out, "gtk-3.0", "assets", "*.svg"))
	if len(svgs) == 0 {
		t.Fatalf("no gtk-3.0 assets")
	}
	for _, p := range svgs {
		got := readFile(t, p)
		if strings.Contains(got, "#5b9bf8") || strings.Contains(got, "#3c84f7") {
			t.Fatalf("%s still has legacy accent tokens", p)
		}
	}

	for _, msg := range []string{"Build info", "Main build complete", "Asset bundling done"} {
		if !strings.Contains(logs.String(), msg) {
			t.Fatalf("expected log %q in:\n%s", msg, logs.String())
		}
	}
}

func TestRunZipRemovesTrees(t *testing.T) {
	src, patches := newSourceTree(t)
	c := newContext(t, src, patches, variant.Options{Flavor: "mocha", Accent: "mauve", Format: "zip"})
	res, err := Run(context.Background(), c, Options{Compiler: &fakeCompiler{}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Archive != c.ArchivePath() || !exists(res.Archive) {
		t.Fatalf("archive missing: %+v", res)
	}
	for _, d := range c.OutputDirs() {
		if exists(d) {
			t.Fatalf("%s should be removed after packaging", d)
		}
	}
	entries := zipEntries(t, res.Archive)
	id := c.BuildID()
	for _, name := range []string{id + "/index.theme", id + "-hdpi/xfwm4/themerc", id + "-xhdpi/xfwm4/themerc"} {
		if _, ok := entries[name]; !ok {
			t.Fatalf("archive entry %s missing", name)
		}
	}
}

func TestRunRequiresCompiler(t *testing.T) {
	src, patches := newSourceTree(t)
	c := newContext(t, src, patches, variant.Options{})
	if _, err := Run(context.Background(), c, Options{}); err == nil {
		t.Fatalf("expected error without compiler")
	}
}
