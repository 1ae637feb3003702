// Package pipeline builds a theme package from a resolved variant.Context:
// stylesheet compilation, asset bundling and optional zip packaging, run
// strictly in sequence.
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// Options configures a Run.
type Options struct {
	Compiler Compiler
	Logger   *log.Logger
}

// Result summarizes a finished build.
type Result struct {
	BuildID      string   `json:"build_id"`
	Dirs         []string `json:"dirs,omitempty"`
	Archive      string   `json:"archive,omitempty"`
	ArchiveFiles int      `json:"archive_files,omitempty"`
	ArchiveBytes int64    `json:"archive_bytes,omitempty"`
}

// Run builds c end to end. Failures abort immediately and leave partial
// output on disk.
func Run(ctx context.Context, c variant.Context, opts Options) (Result, error) {
	if opts.Compiler == nil {
		return Result{}, errors.New("pipeline: no compiler configured")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	logger.Info("Build info",
		"build_root", c.OutputRoot,
		"theme_name", c.ThemeName,
		"flavor", c.Flavor.Identifier,
		"accent", c.Accent.Identifier,
		"size", c.Size,
		"tweaks", c.Tweaks.String(),
		"format", c.OutputFormat,
	)
	logger.Info("Building", "dir", c.OutputDir())
	if err := (StylesheetStep{Compiler: opts.Compiler}).Run(ctx, c); err != nil {
		return Result{}, err
	}
	logger.Info("Main build complete")

	logger.Info("Bundling assets...")
	if err := (AssetStep{}).Run(c); err != nil {
		return Result{}, err
	}
	logger.Info("Asset bundling done")

	res := Result{BuildID: c.BuildID()}
	if c.OutputFormat != variant.FormatZip {
		res.Dirs = c.OutputDirs()
		return res, nil
	}
	stats, err := Archive(c.OutputDirs(), c.ArchivePath(), true)
	if err != nil {
		return Result{}, err
	}
	res.Archive = c.ArchivePath()
	res.ArchiveFiles = stats.Files
	res.ArchiveBytes = stats.Bytes
	logger.Info("Packaged", "archive", res.Archive, "files", stats.Files)
	return res, nil
}
