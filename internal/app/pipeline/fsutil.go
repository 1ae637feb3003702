package pipeline

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

func ensureDir(p string) error {
	return os.MkdirAll(p, 0o755)
}

// copyFile copies the contents of src to dst, overwriting dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// copyInto copies src into directory dir keeping its base name.
func copyInto(src, dir string) error {
	return copyFile(src, filepath.Join(dir, filepath.Base(src)))
}

// copyGlob copies every match of pattern into dir. The directory part of
// pattern must exist; an empty match set is fine.
func copyGlob(pattern, dir string) (int, error) {
	srcDir := filepath.Dir(pattern)
	st, err := os.Stat(srcDir)
	if err != nil {
		return 0, err
	}
	if !st.IsDir() {
		return 0, fmt.Errorf("%s: not a directory", srcDir)
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return n, err
		}
		if info.IsDir() {
			continue
		}
		if err := copyInto(m, dir); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// copyTree mirrors src under dst, merging with whatever dst already holds.
func copyTree(src, dst string) error {
	st, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s: not a directory", src)
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return ensureDir(target)
		}
		return copyFile(p, target)
	})
}
