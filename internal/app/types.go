package app

import (
	"regexp"
	"time"
)

const (
	appName = "ctpgtk"

	defaultThemeName  = "catppuccin"
	defaultOutputRoot = "releases"
	defaultSourceDir  = "colloid"
	defaultPatchesDir = "patches/xfwm4/generated"
	defaultSassC      = "sassc"
	defaultLogLevel   = "info"
	defaultFormat     = "dir"
	defaultSize       = "standard"
	defaultFlavor     = "mocha"
	defaultAccent     = "mauve"
)

// Tweaks the Colloid templates understand. Anything else is accepted and ignored.
var knownTweaks = []string{"black", "rimless", "normal", "float"}

type Config struct {
	ThemeName  string
	OutputRoot string
	SourceDir  string
	PatchesDir string
	SassC      string
	LogLevel   string
	Format     string
	Size       string
	Flavors    []string
	Accents    []string
	ThemesDir  string
}

// ConfigFile is the on-disk shape written by `config --init`.
type ConfigFile struct {
	ThemeName  string   `json:"theme_name,omitempty"`
	OutputRoot string   `json:"output_root,omitempty"`
	SourceDir  string   `json:"source_dir,omitempty"`
	PatchesDir string   `json:"patches_dir,omitempty"`
	SassC      string   `json:"sassc,omitempty"`
	LogLevel   string   `json:"log_level,omitempty"`
	Format     string   `json:"format,omitempty"`
	Size       string   `json:"size,omitempty"`
	Flavors    []string `json:"flavors,omitempty"`
	Accents    []string `json:"accents,omitempty"`
	ThemesDir  string   `json:"themes_dir,omitempty"`
}

// BuildRecord remembers what a build produced so install and clean can find it.
type BuildRecord struct {
	BuildID      string    `json:"build_id"`
	Flavor       string    `json:"flavor"`
	Accent       string    `json:"accent"`
	Size         string    `json:"size"`
	Tweaks       []string  `json:"tweaks,omitempty"`
	Format       string    `json:"format"`
	OutputRoot   string    `json:"output_root"`
	Dirs         []string  `json:"dirs,omitempty"`
	Archive      string    `json:"archive,omitempty"`
	ArchiveBytes int64     `json:"archive_bytes,omitempty"`
	BuiltAt      time.Time `json:"built_at"`
}

var (
	fileSafeRe = regexp.MustCompile(`[^A-Za-z0-9._+-]+`)
)
