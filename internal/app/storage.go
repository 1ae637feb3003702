package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"
)

func ensureAppDirs() error {
	ad, err := appDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(ad, 0o700); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(ad, "builds"), 0o700); err != nil {
		return err
	}
	return nil
}

func appDir() (string, error) {
	if v := os.Getenv("CTPGTK_HOME"); strings.TrimSpace(v) != "" {
		return v, nil
	}
	cd, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, appName), nil
}

func buildsDir() (string, error) {
	ad, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(ad, "builds"), nil
}

func configFilePath() (string, error) {
	ad, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(ad, "config.json"), nil
}

func recordPath(buildID string) (string, error) {
	if err := ensureAppDirs(); err != nil {
		return "", err
	}
	bd, err := buildsDir()
	if err != nil {
		return "", err
	}
	safeID := fileSafeRe.ReplaceAllString(buildID, "_")
	return filepath.Join(bd, safeID+".json"), nil
}

func withLock(lockPath string, fn func() error) error {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Exclusive lock
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer func() { _ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN) }()

	return fn()
}

func loadRecord(p string) (BuildRecord, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return BuildRecord{}, err
	}
	var rec BuildRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return BuildRecord{}, err
	}
	return rec, nil
}

func saveRecord(p string, rec BuildRecord) error {
	tmp := p + ".tmp"
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// putRecord stores rec under its build id, replacing an earlier build of the
// same variant.
func putRecord(rec BuildRecord) error {
	if strings.TrimSpace(rec.BuildID) == "" {
		return errors.New("build record without id")
	}
	p, err := recordPath(rec.BuildID)
	if err != nil {
		return err
	}
	return withLock(p+".lock", func() error {
		if rec.BuiltAt.IsZero() {
			rec.BuiltAt = time.Now().UTC()
		}
		return saveRecord(p, rec)
	})
}

func deleteRecord(buildID string) error {
	p, err := recordPath(buildID)
	if err != nil {
		return err
	}
	return withLock(p+".lock", func() error {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

// loadAllRecords returns every readable record, newest first.
func loadAllRecords() ([]BuildRecord, error) {
	bd, err := buildsDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(bd)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []BuildRecord{}, nil
		}
		return nil, err
	}
	var out []BuildRecord
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		p := filepath.Join(bd, e.Name())
		rec, err := loadRecord(p)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BuiltAt.After(out[j].BuiltAt)
	})
	return out, nil
}

// findRecord returns the record for buildID, or the newest one when buildID is empty.
func findRecord(buildID string) (BuildRecord, error) {
	recs, err := loadAllRecords()
	if err != nil {
		return BuildRecord{}, err
	}
	buildID = strings.TrimSpace(buildID)
	for _, r := range recs {
		if buildID == "" || r.BuildID == buildID {
			return r, nil
		}
	}
	if buildID == "" {
		return BuildRecord{}, errors.New("no recorded builds (run `ctpgtk build` first)")
	}
	return BuildRecord{}, fmt.Errorf("no recorded build %q", buildID)
}
