package pipeline

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ArchiveStats describes a written archive.
type ArchiveStats struct {
	Files int
	Bytes int64
}

// Archive writes every file under dirs into a deflated zip at archivePath.
// Entry names are relative to each directory's parent, so sibling trees nest
// side by side. When remove is set the input directories are deleted once
// the write loop has returned without error.
func Archive(dirs []string, archivePath string, remove bool) (ArchiveStats, error) {
	var stats ArchiveStats
	f, err := os.Create(archivePath)
	if err != nil {
		return stats, err
	}
	zw := zip.NewWriter(f)

	for _, dir := range dirs {
		if err := zipDir(zw, dir, &stats); err != nil {
			_ = zw.Close()
			_ = f.Close()
			_ = os.Remove(archivePath)
			return stats, err
		}
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(archivePath)
		return stats, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(archivePath)
		return stats, err
	}
	if info, err := os.Stat(archivePath); err == nil {
		stats.Bytes = info.Size()
	}

	if remove {
		for _, dir := range dirs {
			if err := os.RemoveAll(dir); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

func zipDir(zw *zip.Writer, dir string, stats *ArchiveStats) error {
	parent := filepath.Dir(filepath.Clean(dir))
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(parent, p)
		if err != nil {
			return err
		}
		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		if _, err := io.Copy(w, src); err != nil {
			return err
		}
		stats.Files++
		return nil
	})
}
