package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var errEmptyToken = errors.New("substitution token is empty")

// Replacement is one literal old → new substitution.
type Replacement struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Substitute replaces every non-overlapping occurrence of old with new in the
// file at path and writes the result back. Replacement works on raw bytes so
// it is safe on raster files. The file is rewritten even when nothing matched.
func Substitute(path, old, new string) error {
	if old == "" {
		return fmt.Errorf("%s: %w", path, errEmptyToken)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out := bytes.ReplaceAll(b, []byte(old), []byte(new))
	return os.WriteFile(path, out, info.Mode().Perm())
}

// SubstituteAll applies reps in order to a single file.
func SubstituteAll(path string, reps []Replacement) error {
	for _, r := range reps {
		if err := Substitute(path, r.Old, r.New); err != nil {
			return err
		}
	}
	return nil
}

// SubstituteGlob applies reps to every file matching pattern.
func SubstituteGlob(pattern string, reps []Replacement) (int, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	for _, m := range matches {
		if err := SubstituteAll(m, reps); err != nil {
			return 0, err
		}
	}
	return len(matches), nil
}
