package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordLifecycle(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CTPGTK_HOME", root)

	older := BuildRecord{BuildID: "catppuccin-latte-blue-standard+default", Format: "dir", BuiltAt: time.Now().Add(-time.Hour).UTC()}
	newer := BuildRecord{BuildID: "catppuccin-mocha-mauve-compact+black,rimless", Format: "zip"}
	for _, r := range []BuildRecord{older, newer} {
		if err := putRecord(r); err != nil {
			t.Fatalf("putRecord error: %v", err)
		}
	}

	p, err := recordPath(newer.BuildID)
	if err != nil {
		t.Fatalf("recordPath error: %v", err)
	}
	if filepath.Dir(p) != filepath.Join(root, "builds") {
		t.Fatalf("unexpected record dir: %q", p)
	}
	if filepath.Base(p) != "catppuccin-mocha-mauve-compact+black_rimless.json" {
		t.Fatalf("unexpected record file name: %q", filepath.Base(p))
	}

	recs, err := loadAllRecords()
	if err != nil {
		t.Fatalf("loadAllRecords error: %v", err)
	}
	if len(recs) != 2 || recs[0].BuildID != newer.BuildID {
		t.Fatalf("expected newest first, got %+v", recs)
	}
	if recs[0].BuiltAt.IsZero() {
		t.Fatalf("expected BuiltAt to be stamped")
	}

	latest, err := findRecord("")
	if err != nil || latest.BuildID != newer.BuildID {
		t.Fatalf("findRecord latest = %+v, %v", latest, err)
	}
	if _, err := findRecord("nope"); err == nil {
		t.Fatalf("expected error for unknown build id")
	}

	if err := deleteRecord(newer.BuildID); err != nil {
		t.Fatalf("deleteRecord error: %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("record file should be gone: %v", err)
	}
	if err := deleteRecord(newer.BuildID); err != nil {
		t.Fatalf("deleting twice should be a no-op: %v", err)
	}
}

func TestPutRecordRequiresID(t *testing.T) {
	t.Setenv("CTPGTK_HOME", t.TempDir())
	if err := putRecord(BuildRecord{}); err == nil {
		t.Fatalf("expected error for a record without id")
	}
}

func TestConfigFilePathRespectsCTPGTKHome(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CTPGTK_HOME", root)

	p, err := configFilePath()
	if err != nil {
		t.Fatalf("configFilePath error: %v", err)
	}
	expected := filepath.Join(root, "config.json")
	if p != expected {
		t.Fatalf("expected %q, got %q", expected, p)
	}
}
