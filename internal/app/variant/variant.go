// Package variant resolves user-selected theme options into an immutable
// build context and the naming and suffix rules derived from it.
package variant

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	catppuccin "github.com/catppuccin/go"
)

// Flavor is one catppuccin palette variant.
type Flavor struct {
	Identifier string  `json:"identifier"`
	Name       string  `json:"name"`
	Dark       bool    `json:"dark"`
	Palette    Palette `json:"palette"`
}

// Accent is the highlight color of a build, resolved against a flavor.
type Accent struct {
	Identifier string `json:"identifier"`
	Hex        string `json:"hex"`
}

type Size string

const (
	SizeStandard Size = "standard"
	SizeCompact  Size = "compact"
)

type OutputFormat string

const (
	FormatDir OutputFormat = "dir"
	FormatZip OutputFormat = "zip"
)

// All selects every flavor or accent when expanding a build matrix.
const All = "all"

var flavors = []Flavor{
	{Identifier: "latte", Name: "Latte", Dark: false, Palette: paletteOf(catppuccin.Latte)},
	{Identifier: "frappe", Name: "Frappe", Dark: true, Palette: paletteOf(catppuccin.Frappe)},
	{Identifier: "macchiato", Name: "Macchiato", Dark: true, Palette: paletteOf(catppuccin.Macchiato)},
	{Identifier: "mocha", Name: "Mocha", Dark: true, Palette: paletteOf(catppuccin.Mocha)},
}

// Flavors returns every known flavor, light first.
func Flavors() []Flavor {
	return append([]Flavor(nil), flavors...)
}

// FlavorIDs returns the flavor identifiers in canonical order.
func FlavorIDs() []string {
	out := make([]string, 0, len(flavors))
	for _, f := range flavors {
		out = append(out, f.Identifier)
	}
	return out
}

// LookupFlavor finds a flavor by identifier (case-insensitive).
func LookupFlavor(id string) (Flavor, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, f := range flavors {
		if f.Identifier == id {
			return f, nil
		}
	}
	return Flavor{}, fmt.Errorf("unknown flavor %q (want one of %s)", id, strings.Join(FlavorIDs(), "|"))
}

// LookupAccent resolves an accent identifier against flavor f.
func LookupAccent(f Flavor, id string) (Accent, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	hex, ok := f.Palette.AccentHex(id)
	if !ok {
		return Accent{}, fmt.Errorf("unknown accent %q (want one of %s)", id, strings.Join(accentOrder, "|"))
	}
	return Accent{Identifier: id, Hex: hex}, nil
}

// Tweaks is an unordered set of tweak names. Names the build does not know
// about are carried along and ignored.
type Tweaks struct {
	set map[string]struct{}
}

// NewTweaks builds a set from names, dropping blanks and duplicates.
func NewTweaks(names ...string) Tweaks {
	t := Tweaks{set: map[string]struct{}{}}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		t.set[n] = struct{}{}
	}
	return t
}

func (t Tweaks) Has(name string) bool {
	_, ok := t.set[name]
	return ok
}

// List returns the tweak names sorted.
func (t Tweaks) List() []string {
	out := make([]string, 0, len(t.set))
	for n := range t.set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ID is the tweak part of a build id: the sorted names joined by commas,
// or "default" when the set is empty.
func (t Tweaks) ID() string {
	if len(t.set) == 0 {
		return "default"
	}
	return strings.Join(t.List(), ",")
}

func (t Tweaks) String() string {
	return "[" + strings.Join(t.List(), ", ") + "]"
}

// Context is the resolved parameter set of a single build. Construct it with
// New; it is passed by value and never mutated afterwards.
type Context struct {
	Flavor       Flavor
	Accent       Accent
	Size         Size
	Tweaks       Tweaks
	OutputRoot   string
	ThemeName    string
	OutputFormat OutputFormat
	// SourceDir is the root of the Colloid template tree.
	SourceDir string
	// PatchDir holds the pre-generated xfwm4 assets, one directory per flavor.
	PatchDir string
}

// Options is the raw, unvalidated input to New.
type Options struct {
	Flavor     string
	Accent     string
	Size       string
	Tweaks     []string
	OutputRoot string
	ThemeName  string
	Format     string
	SourceDir  string
	PatchDir   string
}

// New validates o and returns the build context it describes.
func New(o Options) (Context, error) {
	f, err := LookupFlavor(o.Flavor)
	if err != nil {
		return Context{}, err
	}
	a, err := LookupAccent(f, o.Accent)
	if err != nil {
		return Context{}, err
	}
	size, err := parseSize(o.Size)
	if err != nil {
		return Context{}, err
	}
	format, err := parseFormat(o.Format)
	if err != nil {
		return Context{}, err
	}
	name := strings.TrimSpace(o.ThemeName)
	if name == "" {
		return Context{}, fmt.Errorf("theme name is required")
	}
	if strings.ContainsAny(name, `/\`) {
		return Context{}, fmt.Errorf("invalid theme name %q", name)
	}
	root := strings.TrimSpace(o.OutputRoot)
	if root == "" {
		root = "."
	}
	return Context{
		Flavor:       f,
		Accent:       a,
		Size:         size,
		Tweaks:       NewTweaks(o.Tweaks...),
		OutputRoot:   filepath.Clean(root),
		ThemeName:    name,
		OutputFormat: format,
		SourceDir:    filepath.Clean(o.SourceDir),
		PatchDir:     filepath.Clean(o.PatchDir),
	}, nil
}

func parseSize(s string) (Size, error) {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case "", SizeStandard:
		return SizeStandard, nil
	case SizeCompact:
		return SizeCompact, nil
	default:
		return "", fmt.Errorf("invalid size %q (want standard|compact)", s)
	}
}

func parseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatDir:
		return FormatDir, nil
	case FormatZip:
		return FormatZip, nil
	default:
		return "", fmt.Errorf("invalid output format %q (want dir|zip)", s)
	}
}

// BuildID names the build: {theme}-{flavor}-{accent}-{size}+{tweaks}.
func (c Context) BuildID() string {
	return fmt.Sprintf("%s-%s-%s-%s+%s", c.ThemeName, c.Flavor.Identifier, c.Accent.Identifier, c.Size, c.Tweaks.ID())
}

// OutputDir is the primary output tree of the build.
func (c Context) OutputDir() string {
	return filepath.Join(c.OutputRoot, c.BuildID())
}

func (c Context) HDPIDir() string  { return c.OutputDir() + "-hdpi" }
func (c Context) XHDPIDir() string { return c.OutputDir() + "-xhdpi" }

// OutputDirs lists the primary, HiDPI and XHiDPI trees in archive order.
func (c Context) OutputDirs() []string {
	return []string{c.OutputDir(), c.HDPIDir(), c.XHDPIDir()}
}

// ArchivePath is where the zip artifact is written for FormatZip builds.
func (c Context) ArchivePath() string {
	return filepath.Join(c.OutputRoot, c.BuildID()+".zip")
}

// Matrix expands flavor and accent selections (each possibly containing All)
// into one Context per combination, flavors outermost. Base supplies every
// other option.
func Matrix(base Options, flavorSel, accentSel []string) ([]Context, error) {
	fids := expand(flavorSel, FlavorIDs())
	aids := expand(accentSel, accentOrder)
	if len(fids) == 0 {
		return nil, fmt.Errorf("no flavor selected")
	}
	if len(aids) == 0 {
		return nil, fmt.Errorf("no accent selected")
	}
	out := make([]Context, 0, len(fids)*len(aids))
	for _, f := range fids {
		for _, a := range aids {
			o := base
			o.Flavor = f
			o.Accent = a
			c, err := New(o)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func expand(sel []string, all []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}
	for _, s := range sel {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if s == All {
			for _, v := range all {
				add(v)
			}
			continue
		}
		add(s)
	}
	return out
}
