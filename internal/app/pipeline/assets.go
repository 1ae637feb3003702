package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// Legacy Colloid colors baked into the source assets.
const (
	legacyAccent      = "#5b9bf8"
	legacyAccentAlt   = "#3c84f7"
	legacyWhite       = "#ffffff"
	legacyDarkBg      = "#2c2c2c"
	legacyDarkBgAlt   = "#3c3c3c"
	legacyLightHeader = "#f2f2f2"
)

// TokenMap is the set of literal recolorings applied to the copied assets.
type TokenMap struct {
	// Accent applies to every vector asset of cinnamon, gnome-shell and gtk.
	Accent []Replacement `json:"accent"`
	// GTK additionally applies to the gtk-3.0 / gtk-4.0 vector assets.
	GTK []Replacement `json:"gtk"`
	// CinnamonThumb and GTKThumb apply to the surface thumbnails.
	CinnamonThumb []Replacement `json:"cinnamon_thumbnail"`
	GTKThumb      []Replacement `json:"gtk_thumbnail"`
}

// Tokens builds the recoloring table for c.
func Tokens(c variant.Context) TokenMap {
	accent := c.Accent.Hex
	p := c.Flavor.Palette
	m := TokenMap{
		Accent: []Replacement{
			{Old: legacyAccent, New: accent},
			{Old: legacyAccentAlt, New: accent},
		},
		GTK: []Replacement{
			{Old: legacyWhite, New: p.Base},
			{Old: legacyDarkBg, New: p.Base},
			{Old: legacyDarkBgAlt, New: p.Mantle},
		},
	}
	if c.Flavor.Dark {
		m.CinnamonThumb = []Replacement{
			{Old: legacyDarkBg, New: p.Base},
			{Old: legacyAccent, New: accent},
		}
		m.GTKThumb = m.CinnamonThumb
		return m
	}
	m.CinnamonThumb = []Replacement{
		{Old: legacyWhite, New: p.Base},
		{Old: legacyLightHeader, New: p.Overlay0},
		{Old: legacyAccentAlt, New: accent},
	}
	m.GTKThumb = []Replacement{
		{Old: legacyLightHeader, New: p.Overlay0},
		{Old: legacyAccentAlt, New: accent},
	}
	return m
}

// AssetStep populates and recolors every surface's assets.
type AssetStep struct{}

// Run performs the step. Copies of assets that are recolored happen before
// the recolor pass; common, variant and symbolic assets are copied after it
// and stay untouched.
func (AssetStep) Run(c variant.Context) error {
	src := filepath.Join(c.SourceDir, "assets")
	out := c.OutputDir()
	tokens := Tokens(c)

	cinnamon := filepath.Join(out, "cinnamon", "assets")
	shell := filepath.Join(out, "gnome-shell", "assets")
	gtk3 := filepath.Join(out, "gtk-3.0", "assets")
	gtk4 := filepath.Join(out, "gtk-4.0", "assets")
	metacity := filepath.Join(out, "metacity-1", "assets")

	for _, d := range []string{cinnamon, shell, gtk3, gtk4, metacity} {
		if err := ensureDir(d); err != nil {
			return err
		}
	}

	if _, err := copyGlob(filepath.Join(src, "cinnamon", "theme", "*.svg"), cinnamon); err != nil {
		return err
	}
	cinnamonThumb := filepath.Join(out, "cinnamon", "thumbnail.png")
	if err := copyFile(filepath.Join(src, "cinnamon", "thumbnail"+c.Suffix(variant.DarkLight)+".svg"), cinnamonThumb); err != nil {
		return err
	}
	if _, err := copyGlob(filepath.Join(src, "gnome-shell", "theme", "*.svg"), shell); err != nil {
		return err
	}

	gtkThumbSrc := filepath.Join(src, "gtk", "thumbnail"+c.Suffix(variant.IsDark)+".svg")
	var gtkThumbs []string
	for _, d := range []string{gtk3, gtk4} {
		if err := copyTree(filepath.Join(src, "gtk", "assets"), d); err != nil {
			return err
		}
		thumb := filepath.Join(filepath.Dir(d), "thumbnail.png")
		if err := copyFile(gtkThumbSrc, thumb); err != nil {
			return err
		}
		gtkThumbs = append(gtkThumbs, thumb)
	}

	for _, d := range []string{cinnamon, shell} {
		if _, err := SubstituteGlob(filepath.Join(d, "*.svg"), tokens.Accent); err != nil {
			return err
		}
	}
	gtkReps := append(append([]Replacement(nil), tokens.Accent...), tokens.GTK...)
	for _, d := range []string{gtk3, gtk4} {
		if _, err := SubstituteGlob(filepath.Join(d, "*.svg"), gtkReps); err != nil {
			return err
		}
	}
	if err := SubstituteAll(cinnamonThumb, tokens.CinnamonThumb); err != nil {
		return err
	}
	for _, thumb := range gtkThumbs {
		if err := SubstituteAll(thumb, tokens.GTKThumb); err != nil {
			return err
		}
	}

	dark := c.Suffix(variant.IsDark)
	copies := []struct {
		pattern string
		dirs    []string
	}{
		{filepath.Join(src, "cinnamon", "common-assets", "*.svg"), []string{cinnamon}},
		{filepath.Join(src, "cinnamon", "assets"+dark, "*.svg"), []string{cinnamon}},
		{filepath.Join(src, "gnome-shell", "common-assets", "*.svg"), []string{shell}},
		{filepath.Join(src, "gnome-shell", "assets"+dark, "*.svg"), []string{shell}},
		{filepath.Join(src, "gtk", "symbolics", "*.svg"), []string{gtk3, gtk4}},
		{filepath.Join(src, "metacity-1", "assets"+c.Suffix(variant.IsWindowNormal), "*.svg"), []string{metacity}},
	}
	for _, cp := range copies {
		for _, d := range cp.dirs {
			if _, err := copyGlob(cp.pattern, d); err != nil {
				return err
			}
		}
	}
	if err := copyFile(
		filepath.Join(src, "metacity-1", "thumbnail"+dark+".png"),
		filepath.Join(out, "metacity-1", "thumbnail.png"),
	); err != nil {
		return err
	}

	return copyXfwm4Assets(c)
}

// copyXfwm4Assets copies the pre-rendered decorations for each resolution
// bucket out of the patch directory.
func copyXfwm4Assets(c variant.Context) error {
	base := filepath.Join(c.PatchDir, "assets-catppuccin-"+c.Flavor.Identifier)
	buckets := []struct {
		src string
		dst string
	}{
		{base, c.OutputDir()},
		{base + "-hdpi", c.HDPIDir()},
		{base + "-xhdpi", c.XHDPIDir()},
	}
	for _, b := range buckets {
		if _, err := copyGlob(filepath.Join(b.src, "*"), filepath.Join(b.dst, "xfwm4")); err != nil {
			return fmt.Errorf("xfwm4 assets: %w", err)
		}
	}
	return nil
}
