package pipeline

import (
	"path/filepath"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

const (
	tweaksTemplate     = "sass/_tweaks.scss"
	tweaksWorking      = "sass/_tweaks-temp.scss"
	shellCommon        = "sass/gnome-shell/_common.scss"
	shellCommonWorking = "sass/gnome-shell/_common-temp.scss"

	// Colloid probes the installed GNOME Shell at install time; a packaged
	// build cannot, so the widget set is pinned.
	gnomeShellVersion = "46-0"
)

// TweakName identifies one entry of the tweak table.
type TweakName string

const (
	TweakTheme        TweakName = "theme"
	TweakPalette      TweakName = "palette"
	TweakColorscheme  TweakName = "colorscheme"
	TweakCompact      TweakName = "compact"
	TweakBlackness    TweakName = "blackness"
	TweakRimless      TweakName = "rimless"
	TweakWindowButton TweakName = "window_button"
	TweakFloat        TweakName = "float"
)

// Tweak is one fixed substitution against the working tweaks template.
// When Key is set the literals are matched as "$Key: value"; otherwise Old is
// matched verbatim.
type Tweak struct {
	Name TweakName
	Key  string
	Old  string
	New  func(variant.Context) string
	When func(variant.Context) bool
}

func fixed(v string) func(variant.Context) string {
	return func(variant.Context) string { return v }
}

func always(variant.Context) bool { return true }

func hasTweak(name string) func(variant.Context) bool {
	return func(c variant.Context) bool { return c.Tweaks.Has(name) }
}

// tweakTable is applied in order. Identity entries come before the
// appearance ones.
var tweakTable = []Tweak{
	{
		Name: TweakTheme, Key: "theme", Old: "'default'",
		New:  func(c variant.Context) string { return "'" + c.Accent.Identifier + "'" },
		When: always,
	},
	{
		Name: TweakPalette, Old: "@import 'color-palette-default';",
		New: func(c variant.Context) string {
			return "@import 'color-palette-catppuccin-" + c.Flavor.Identifier + "';"
		},
		When: always,
	},
	{Name: TweakColorscheme, Key: "colorscheme", Old: "'default'", New: fixed("'catppuccin'"), When: always},
	{
		Name: TweakCompact, Key: "compact", Old: "'false'", New: fixed("'true'"),
		When: func(c variant.Context) bool { return c.Size == variant.SizeCompact },
	},
	{Name: TweakBlackness, Key: "blackness", Old: "'false'", New: fixed("'true'"), When: hasTweak("black")},
	{Name: TweakRimless, Key: "rimless", Old: "'false'", New: fixed("'true'"), When: hasTweak("rimless")},
	{Name: TweakWindowButton, Key: "window_button", Old: "'mac'", New: fixed("'normal'"), When: hasTweak("normal")},
	{Name: TweakFloat, Key: "float", Old: "'false'", New: fixed("'true'"), When: hasTweak("float")},
}

// Tweaks returns a copy of the tweak table.
func Tweaks() []Tweak {
	return append([]Tweak(nil), tweakTable...)
}

// WriteTweak sets a single scss variable in the working tweaks template.
func WriteTweak(srcDir, key, old, new string) error {
	return Substitute(filepath.Join(srcDir, tweaksWorking), "$"+key+": "+old, "$"+key+": "+new)
}

// InitTemplates regenerates the working templates from their canonical
// sources so tweaks from an earlier build never accumulate.
func InitTemplates(srcDir string) error {
	if err := copyFile(filepath.Join(srcDir, tweaksTemplate), filepath.Join(srcDir, tweaksWorking)); err != nil {
		return err
	}
	common := filepath.Join(srcDir, shellCommonWorking)
	if err := copyFile(filepath.Join(srcDir, shellCommon), common); err != nil {
		return err
	}
	return Substitute(common, "@import 'widgets-40-0';", "@import 'widgets-"+gnomeShellVersion+"';")
}

// ApplyTweaks writes every applicable table entry into the working template
// and returns the names applied.
func ApplyTweaks(c variant.Context) ([]TweakName, error) {
	working := filepath.Join(c.SourceDir, tweaksWorking)
	var applied []TweakName
	for _, t := range tweakTable {
		if !t.When(c) {
			continue
		}
		var err error
		if t.Key != "" {
			err = WriteTweak(c.SourceDir, t.Key, t.Old, t.New(c))
		} else {
			err = Substitute(working, t.Old, t.New(c))
		}
		if err != nil {
			return applied, err
		}
		applied = append(applied, t.Name)
	}
	return applied, nil
}
