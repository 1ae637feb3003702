package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

const buttonLayout = "close,minimize,maximize:menu"

// xfwm4 button offsets per resolution bucket; the standard themerc ships 6.
const (
	buttonOffsetStandard = "button_offset=6"
	buttonOffsetHDPI     = "button_offset=9"
	buttonOffsetXHDPI    = "button_offset=12"
)

// IndexTheme renders the index.theme descriptor for c.
func IndexTheme(c variant.Context) string {
	id := c.BuildID()
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=X-GNOME-Metatheme\n")
	fmt.Fprintf(&b, "Name=%s\n", id)
	b.WriteString("Comment=An Flat Gtk+ theme based on Elegant Design\n")
	b.WriteString("Encoding=UTF-8\n")
	b.WriteString("\n")
	b.WriteString("[X-GNOME-Metatheme]\n")
	fmt.Fprintf(&b, "GtkTheme=%s\n", id)
	fmt.Fprintf(&b, "MetacityTheme=%s\n", id)
	fmt.Fprintf(&b, "IconTheme=Tela-circle%s\n", c.Suffix(variant.IsDark))
	fmt.Fprintf(&b, "CursorTheme=%s-cursors\n", c.Flavor.Name)
	fmt.Fprintf(&b, "ButtonLayout=%s\n", buttonLayout)
	return b.String()
}

// sheet is one compiled artifact: template under main/ → css under the output dir.
type sheet struct {
	surface string
	input   string
	output  string
}

// sheets lists every compile the build performs. gtk-3.0 and gtk-4.0 always
// get a forced-dark sibling regardless of flavor.
func sheets(c variant.Context) []sheet {
	dl := c.Suffix(variant.DarkLight)
	return []sheet{
		{surface: "gnome-shell", input: "gnome-shell/gnome-shell" + dl + ".scss", output: "gnome-shell/gnome-shell.css"},
		{surface: "gtk-3.0", input: "gtk-3.0/gtk" + dl + ".scss", output: "gtk-3.0/gtk.css"},
		{surface: "gtk-3.0", input: "gtk-3.0/gtk-Dark.scss", output: "gtk-3.0/gtk-dark.css"},
		{surface: "gtk-4.0", input: "gtk-4.0/gtk" + dl + ".scss", output: "gtk-4.0/gtk.css"},
		{surface: "gtk-4.0", input: "gtk-4.0/gtk-Dark.scss", output: "gtk-4.0/gtk-dark.css"},
		{surface: "cinnamon", input: "cinnamon/cinnamon" + dl + ".scss", output: "cinnamon/cinnamon.css"},
	}
}

// StylesheetStep produces the compiled, non-asset part of the theme.
type StylesheetStep struct {
	Compiler Compiler
}

// Run performs the step. Any failure aborts with the partially written tree
// left in place.
func (s StylesheetStep) Run(ctx context.Context, c variant.Context) error {
	src := c.SourceDir
	mainDir := filepath.Join(src, "main")
	out := c.OutputDir()

	if err := InitTemplates(src); err != nil {
		return fmt.Errorf("init templates: %w", err)
	}
	if _, err := ApplyTweaks(c); err != nil {
		return fmt.Errorf("apply tweaks: %w", err)
	}

	if err := ensureDir(out); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(out, "index.theme"), []byte(IndexTheme(c)), 0o644); err != nil {
		return err
	}

	if err := ensureDir(filepath.Join(out, "gnome-shell")); err != nil {
		return err
	}
	if err := copyFile(filepath.Join(mainDir, "gnome-shell", "pad-osd.css"), filepath.Join(out, "gnome-shell", "pad-osd.css")); err != nil {
		return err
	}

	for _, sh := range sheets(c) {
		if err := ensureDir(filepath.Join(out, sh.surface)); err != nil {
			return err
		}
		in := filepath.Join(mainDir, filepath.FromSlash(sh.input))
		if _, err := os.Stat(in); err != nil {
			return err
		}
		if err := s.Compiler.Compile(ctx, in, filepath.Join(out, filepath.FromSlash(sh.output))); err != nil {
			return err
		}
	}

	if err := ensureDir(filepath.Join(out, "metacity-1")); err != nil {
		return err
	}
	metacity := "metacity-theme-3" + c.Suffix(variant.IsWindowNormal) + ".xml"
	if err := copyFile(filepath.Join(mainDir, "metacity-1", metacity), filepath.Join(out, "metacity-1", "metacity-theme-3.xml")); err != nil {
		return err
	}

	if err := s.xfwm4(c, mainDir); err != nil {
		return err
	}

	plank := "theme-Dark-Catppuccin"
	if !c.Flavor.Dark {
		plank = "theme-Light-Catppuccin"
	}
	return copyTree(filepath.Join(mainDir, "plank", plank), filepath.Join(out, "plank"))
}

func (s StylesheetStep) xfwm4(c variant.Context, mainDir string) error {
	themerc := filepath.Join(mainDir, "xfwm4", "themerc"+c.Suffix(variant.IsLight))
	buckets := []struct {
		dir    string
		offset string
	}{
		{dir: c.OutputDir()},
		{dir: c.HDPIDir(), offset: buttonOffsetHDPI},
		{dir: c.XHDPIDir(), offset: buttonOffsetXHDPI},
	}
	for _, b := range buckets {
		dir := filepath.Join(b.dir, "xfwm4")
		if err := ensureDir(dir); err != nil {
			return err
		}
		dst := filepath.Join(dir, "themerc")
		if err := copyFile(themerc, dst); err != nil {
			return err
		}
		if b.offset == "" {
			continue
		}
		if err := Substitute(dst, buttonOffsetStandard, b.offset); err != nil {
			return err
		}
	}
	return nil
}
