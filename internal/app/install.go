package app

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// -------------------------
// Install
// -------------------------

// gtk4Links are the files libadwaita apps pick up from ~/.config/gtk-4.0.
var gtk4Links = []string{"assets", "gtk.css", "gtk-dark.css"}

type installOptions struct {
	themesDir string
	gtk4Dir   string
	force     bool
	dryRun    bool
	link      bool
	out       io.Writer
}

func newInstallCmd(base Config) *cobra.Command {
	var (
		opts installOptions
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "install [build-id]",
		Short: "Install a recorded build into the themes directory",
		Long: `This will:
- Copy the theme trees of the newest recorded build (or [build-id]) into the
  themes directory, extracting the archive for zip builds
- With --link, symlink the gtk-4.0 assets, gtk.css and gtk-dark.css into
  ~/.config/gtk-4.0 so libadwaita apps follow the theme

Replaced links are backed up with a timestamp suffix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			rec, err := findRecord(id)
			if err != nil {
				return err
			}
			opts.out = cmd.OutOrStdout()
			if opts.gtk4Dir == "" {
				cd, err := os.UserConfigDir()
				if err != nil {
					return err
				}
				opts.gtk4Dir = filepath.Join(cd, "gtk-4.0")
			}

			interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
			if interactive && !yes && !opts.dryRun {
				prompt := fmt.Sprintf("Install %s into %s? [y/N] ", rec.BuildID, opts.themesDir)
				if !confirm(os.Stdin, opts.out, prompt) {
					fmt.Fprintln(opts.out, "Aborted.")
					return nil
				}
			}

			if err := installRecord(rec, opts); err != nil {
				return err
			}
			if opts.dryRun {
				fmt.Fprintln(opts.out, "Dry run complete.")
			} else {
				fmt.Fprintf(opts.out, "Installed %s. Select it in your desktop's appearance settings.\n", rec.BuildID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.themesDir, "themes-dir", base.ThemesDir, "Themes directory to install into")
	cmd.Flags().StringVar(&opts.gtk4Dir, "gtk4-dir", "", "GTK 4 config directory used by --link (default: ~/.config/gtk-4.0)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Replace themes that are already installed")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show changes without writing files")
	cmd.Flags().BoolVar(&opts.link, "link", false, "Symlink the gtk-4.0 files into the GTK 4 config directory")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func installRecord(rec BuildRecord, o installOptions) error {
	if strings.TrimSpace(o.themesDir) == "" {
		return errors.New("no themes directory")
	}
	if !o.dryRun {
		if err := os.MkdirAll(o.themesDir, 0o755); err != nil {
			return err
		}
	}

	var installed []string
	if rec.Archive != "" {
		names, err := extractArchive(rec.Archive, o)
		if err != nil {
			return err
		}
		installed = names
	} else {
		for _, d := range rec.Dirs {
			name := filepath.Base(d)
			if err := installTree(d, filepath.Join(o.themesDir, name), o); err != nil {
				return err
			}
			installed = append(installed, name)
		}
	}
	if len(installed) == 0 {
		return fmt.Errorf("build %s has nothing to install", rec.BuildID)
	}

	if o.link {
		return linkGTK4(filepath.Join(o.themesDir, installed[0], "gtk-4.0"), o)
	}
	return nil
}

func installTree(src, dst string, o installOptions) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("build output %s: %w", src, err)
	}
	if err := prepareTarget(dst, o); err != nil {
		return err
	}
	if o.dryRun {
		fmt.Fprintf(o.out, "Would copy %s -> %s\n", src, dst)
		return nil
	}
	err := filepath.Walk(src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Installed %s\n", dst)
	return nil
}

// prepareTarget clears an existing install at dst when --force is set.
func prepareTarget(dst string, o installOptions) error {
	if _, err := os.Lstat(dst); err != nil {
		return nil
	}
	if !o.force {
		return fmt.Errorf("%s already exists (use --force to replace it)", dst)
	}
	if o.dryRun {
		fmt.Fprintf(o.out, "Would replace %s\n", dst)
		return nil
	}
	return os.RemoveAll(dst)
}

// extractArchive unpacks a build archive into the themes directory and returns
// the top-level theme directories it contained.
func extractArchive(archive string, o installOptions) ([]string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", archive, err)
	}
	defer zr.Close()

	var roots []string
	for _, f := range zr.File {
		top := strings.SplitN(f.Name, "/", 2)[0]
		if top != "" && !sliceContains(roots, top) {
			roots = append(roots, top)
		}
	}
	for _, r := range roots {
		if err := prepareTarget(filepath.Join(o.themesDir, r), o); err != nil {
			return nil, err
		}
	}
	if o.dryRun {
		fmt.Fprintf(o.out, "Would extract %s (%d entries) into %s\n", archive, len(zr.File), o.themesDir)
		return roots, nil
	}

	for _, f := range zr.File {
		target := filepath.Join(o.themesDir, filepath.FromSlash(f.Name))
		if !withinDir(o.themesDir, target) {
			return nil, fmt.Errorf("archive entry %q escapes %s", f.Name, o.themesDir)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, err
			}
			continue
		}
		if err := extractEntry(f, target); err != nil {
			return nil, err
		}
	}
	for _, r := range roots {
		fmt.Fprintf(o.out, "Installed %s\n", filepath.Join(o.themesDir, r))
	}
	return roots, nil
}

func extractEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	w, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func linkGTK4(themeGTK4 string, o installOptions) error {
	if o.dryRun {
		for _, name := range gtk4Links {
			fmt.Fprintf(o.out, "Would link %s -> %s\n", filepath.Join(o.gtk4Dir, name), filepath.Join(themeGTK4, name))
		}
		return nil
	}
	if err := os.MkdirAll(o.gtk4Dir, 0o755); err != nil {
		return err
	}
	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, name := range gtk4Links {
		src := filepath.Join(themeGTK4, name)
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("link %s: %w", name, err)
		}
		dst := filepath.Join(o.gtk4Dir, name)
		if _, err := os.Lstat(dst); err == nil {
			backup := dst + ".bak." + stamp
			if err := os.Rename(dst, backup); err != nil {
				return err
			}
			fmt.Fprintf(o.out, "Backed up %s -> %s\n", dst, backup)
		}
		if err := os.Symlink(src, dst); err != nil {
			return err
		}
		fmt.Fprintf(o.out, "Linked %s\n", dst)
	}
	return nil
}
