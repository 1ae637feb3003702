package app

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vburojevic/ctpgtk/internal/app/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(loadConfig())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBuildDryRunJSON(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	dest := t.TempDir()

	out, err := execute(t, "build", "--flavor", "frappe", "--accent", "blue,peach", "--dest", dest, "--dry-run", "--json")
	if err != nil {
		t.Fatalf("build --dry-run error: %v", err)
	}
	var rows []planRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode plan: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 planned builds, got %d", len(rows))
	}
	if rows[0].BuildID != "catppuccin-frappe-blue-standard+default" {
		t.Fatalf("unexpected build id: %q", rows[0].BuildID)
	}
	if rows[0].Hex != "#8caaee" {
		t.Fatalf("unexpected frappe blue: %q", rows[0].Hex)
	}
	if rows[0].Output != filepath.Join(dest, rows[0].BuildID) {
		t.Fatalf("unexpected output: %q", rows[0].Output)
	}
	if rows[1].Accent != "peach" {
		t.Fatalf("unexpected second accent: %q", rows[1].Accent)
	}
}

func TestBuildDryRunZipAllAccents(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	dest := t.TempDir()

	out, err := execute(t, "build", "--flavor", "latte", "--accent", "all", "--tweaks", "rimless,black", "--zip", "--dest", dest, "--dry-run", "--json")
	if err != nil {
		t.Fatalf("build --dry-run error: %v", err)
	}
	var rows []planRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(rows) != 14 {
		t.Fatalf("expected 14 builds, got %d", len(rows))
	}
	want := "catppuccin-latte-rosewater-standard+black,rimless"
	if rows[0].BuildID != want || rows[0].Output != filepath.Join(dest, want+".zip") {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestBuildRejectsUnknownFlavor(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	if _, err := execute(t, "build", "--flavor", "espresso", "--dry-run"); err == nil {
		t.Fatalf("expected error for unknown flavor")
	}
}

func TestListTokensJSON(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	out, err := execute(t, "list", "--tokens", "mocha", "--accent", "blue", "--json")
	if err != nil {
		t.Fatalf("list --tokens error: %v", err)
	}
	var m pipeline.TokenMap
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if len(m.Accent) == 0 || m.Accent[0].New != "#89b4fa" {
		t.Fatalf("unexpected accent tokens: %+v", m.Accent)
	}
	if len(m.GTK) == 0 || m.GTK[0].New != "#1e1e2e" {
		t.Fatalf("unexpected gtk tokens: %+v", m.GTK)
	}
}

func TestListFlavorsTable(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, want := range []string{"latte", "frappe", "macchiato", "mocha", "#1e1e2e"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestHelpJSONListsCommands(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	out, err := execute(t, "help", "--json")
	if err != nil {
		t.Fatalf("help --json error: %v", err)
	}
	var doc helpDoc
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode help: %v", err)
	}
	names := map[string]bool{}
	for _, c := range doc.Commands {
		names[c.Name] = true
	}
	for _, want := range []string{"build", "list", "browse", "install", "clean", "doctor", "config"} {
		if !names[want] {
			t.Fatalf("help is missing command %q", want)
		}
	}
}

func TestConfigInitWritesFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CTPGTK_HOME", root)
	out, err := execute(t, "config", "--init")
	if err != nil {
		t.Fatalf("config --init error: %v", err)
	}
	if !strings.Contains(out, filepath.Join(root, "config.json")) {
		t.Fatalf("unexpected output: %q", out)
	}
	if cfg := loadConfig(); cfg.ThemeName != defaultThemeName {
		t.Fatalf("written config should load back, got %+v", cfg)
	}
}

func TestHelpMarkdownHasFlagTables(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	out, err := execute(t, "help", "--format", "markdown")
	if err != nil {
		t.Fatalf("help --format markdown error: %v", err)
	}
	for _, want := range []string{"## build", "| `--flavor` |", "- `CTPGTK_HOME`:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown help missing %q", want)
		}
	}
	if _, err := execute(t, "help", "--format", "yaml"); err == nil {
		t.Fatalf("expected error for unknown help format")
	}
}
