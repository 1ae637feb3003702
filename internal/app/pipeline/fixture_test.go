package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

const tweaksFixture = `$theme: 'default';
$compact: 'false';
$colorscheme: 'default';
$blackness: 'false';
$rimless: 'false';
$window_button: 'mac';
$float: 'false';
@import 'color-palette-default';
`

const themercFixture = "button_offset=6\nbutton_spacing=6\ntitle_vertical_offset_active=1\n"

const legacySVG = `<svg><rect fill="#5b9bf8"/><rect fill="#3c84f7"/><rect fill="#ffffff"/><rect fill="#2c2c2c"/><rect fill="#3c3c3c"/></svg>`

func writeFixture(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// newSourceTree lays out a minimal Colloid tree plus xfwm4 patch output and
// returns (sourceDir, patchDir).
func newSourceTree(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "colloid")
	patches := filepath.Join(root, "patches")

	files := map[string]string{
		"sass/_tweaks.scss":             tweaksFixture,
		"sass/gnome-shell/_common.scss": "@import 'widgets-40-0';\n",

		"main/gnome-shell/pad-osd.css":                 "/* pad osd */\n",
		"main/metacity-1/metacity-theme-3.xml":         "<metacity/>\n",
		"main/metacity-1/metacity-theme-3-Normal.xml":  "<metacity normal/>\n",
		"main/xfwm4/themerc":                           themercFixture,
		"main/xfwm4/themerc-Light":                     themercFixture,
		"main/plank/theme-Dark-Catppuccin/dock.theme":  "dark\n",
		"main/plank/theme-Light-Catppuccin/dock.theme": "light\n",

		"assets/cinnamon/theme/menu.svg":           legacySVG,
		"assets/cinnamon/thumbnail-Dark.svg":       legacySVG + "#f2f2f2",
		"assets/cinnamon/thumbnail-Light.svg":      legacySVG + "#f2f2f2",
		"assets/cinnamon/common-assets/common.svg": "#5b9bf8",
		"assets/cinnamon/assets/light.svg":         "light",
		"assets/cinnamon/assets-Dark/dark.svg":     "dark",

		"assets/gnome-shell/theme/toggle.svg":         legacySVG,
		"assets/gnome-shell/common-assets/common.svg": "#5b9bf8",
		"assets/gnome-shell/assets/light.svg":         "light",
		"assets/gnome-shell/assets-Dark/dark.svg":     "dark",

		"assets/gtk/assets/check.svg":        legacySVG,
		"assets/gtk/assets/nested/radio.png": "png-bytes",
		"assets/gtk/thumbnail.svg":           legacySVG + "#f2f2f2",
		"assets/gtk/thumbnail-Dark.svg":      legacySVG + "#f2f2f2",
		"assets/gtk/symbolics/go-up.svg":     `<svg fill="#bebebe"/>`,

		"assets/metacity-1/assets/close.svg":        "close",
		"assets/metacity-1/assets-Normal/close.svg": "close normal",
		"assets/metacity-1/thumbnail.png":           "thumb",
		"assets/metacity-1/thumbnail-Dark.png":      "thumb dark",
	}
	for _, surface := range []string{"gnome-shell/gnome-shell", "gtk-3.0/gtk", "gtk-4.0/gtk", "cinnamon/cinnamon"} {
		files["main/"+surface+"-Dark.scss"] = "// dark\n"
		files["main/"+surface+"-Light.scss"] = "// light\n"
	}
	writeFixture(t, src, files)

	patchFiles := map[string]string{}
	for _, f := range variant.FlavorIDs() {
		for _, suffix := range []string{"", "-hdpi", "-xhdpi"} {
			patchFiles["assets-catppuccin-"+f+suffix+"/close-active.png"] = f + suffix
		}
	}
	writeFixture(t, patches, patchFiles)
	return src, patches
}

func newContext(t *testing.T, src, patches string, o variant.Options) variant.Context {
	t.Helper()
	if o.Flavor == "" {
		o.Flavor = "frappe"
	}
	if o.Accent == "" {
		o.Accent = "blue"
	}
	if o.ThemeName == "" {
		o.ThemeName = "catppuccin"
	}
	if o.OutputRoot == "" {
		o.OutputRoot = filepath.Join(filepath.Dir(src), "releases")
	}
	o.SourceDir = src
	o.PatchDir = patches
	c, err := variant.New(o)
	if err != nil {
		t.Fatalf("variant.New error: %v", err)
	}
	return c
}

// fakeCompiler records every compile and writes a placeholder stylesheet.
type fakeCompiler struct {
	calls  [][2]string
	failOn string
}

func (f *fakeCompiler) Compile(_ context.Context, input, output string) error {
	f.calls = append(f.calls, [2]string{input, output})
	if f.failOn != "" && strings.HasSuffix(input, f.failOn) {
		return errors.New("sassc exited with status 1")
	}
	return os.WriteFile(output, []byte("/* compiled from "+filepath.Base(input)+" */\n"), 0o644)
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	return string(b)
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
