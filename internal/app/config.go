package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyThemeName  = "theme_name"
	keyOutputRoot = "output_root"
	keySourceDir  = "source_dir"
	keyPatchesDir = "patches_dir"
	keySassC      = "sassc"
	keyLogLevel   = "log_level"
	keyFormat     = "format"
	keySize       = "size"
	keyFlavors    = "flavors"
	keyAccents    = "accents"
	keyThemesDir  = "themes_dir"

	envPrefix = "CTPGTK"
)

var configKeys = []string{
	keyThemeName, keyOutputRoot, keySourceDir, keyPatchesDir, keySassC, keyLogLevel,
	keyFormat, keySize, keyFlavors, keyAccents, keyThemesDir,
}

func defaultThemesDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); strings.TrimSpace(v) != "" {
		return filepath.Join(v, "themes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".local", "share", "themes")
	}
	return filepath.Join(home, ".local", "share", "themes")
}

func defaultConfig() Config {
	return Config{
		ThemeName:  defaultThemeName,
		OutputRoot: defaultOutputRoot,
		SourceDir:  defaultSourceDir,
		PatchesDir: defaultPatchesDir,
		SassC:      defaultSassC,
		LogLevel:   defaultLogLevel,
		Format:     defaultFormat,
		Size:       defaultSize,
		Flavors:    []string{defaultFlavor},
		Accents:    []string{defaultAccent},
		ThemesDir:  defaultThemesDir(),
	}
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault(keyThemeName, cfg.ThemeName)
	v.SetDefault(keyOutputRoot, cfg.OutputRoot)
	v.SetDefault(keySourceDir, cfg.SourceDir)
	v.SetDefault(keyPatchesDir, cfg.PatchesDir)
	v.SetDefault(keySassC, cfg.SassC)
	v.SetDefault(keyLogLevel, cfg.LogLevel)
	v.SetDefault(keyFormat, cfg.Format)
	v.SetDefault(keySize, cfg.Size)
	v.SetDefault(keyFlavors, cfg.Flavors)
	v.SetDefault(keyAccents, cfg.Accents)
	v.SetDefault(keyThemesDir, cfg.ThemesDir)
}

// loadConfig resolves defaults < config.json < CTPGTK_* environment. A missing
// or unreadable config file falls back to defaults.
func loadConfig() Config {
	def := defaultConfig()

	v := viper.New()
	setDefaults(v, def)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if p, err := configFilePath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			v.SetConfigFile(p)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return def
			}
		}
	}

	cfg := Config{
		ThemeName:  strings.TrimSpace(v.GetString(keyThemeName)),
		OutputRoot: strings.TrimSpace(v.GetString(keyOutputRoot)),
		SourceDir:  strings.TrimSpace(v.GetString(keySourceDir)),
		PatchesDir: strings.TrimSpace(v.GetString(keyPatchesDir)),
		SassC:      strings.TrimSpace(v.GetString(keySassC)),
		LogLevel:   strings.TrimSpace(strings.ToLower(v.GetString(keyLogLevel))),
		Format:     strings.TrimSpace(strings.ToLower(v.GetString(keyFormat))),
		Size:       strings.TrimSpace(strings.ToLower(v.GetString(keySize))),
		Flavors:    normalizeList(v.GetStringSlice(keyFlavors)),
		Accents:    normalizeList(v.GetStringSlice(keyAccents)),
		ThemesDir:  strings.TrimSpace(v.GetString(keyThemesDir)),
	}
	if cfg.ThemeName == "" {
		cfg.ThemeName = def.ThemeName
	}
	if cfg.SassC == "" {
		cfg.SassC = def.SassC
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if len(cfg.Flavors) == 0 {
		cfg.Flavors = def.Flavors
	}
	if len(cfg.Accents) == 0 {
		cfg.Accents = def.Accents
	}
	if cfg.ThemesDir == "" {
		cfg.ThemesDir = def.ThemesDir
	}
	return cfg
}

func newConfigCmd() *cobra.Command {
	var (
		show bool
		init bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize ctpgtk config",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configFilePath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if init {
				if err := ensureAppDirs(); err != nil {
					return err
				}
				if _, err := os.Stat(p); err == nil {
					fmt.Fprintf(out, "Config already exists: %s\n", p)
					return nil
				}
				def := defaultConfig()
				cf := ConfigFile{
					ThemeName:  def.ThemeName,
					OutputRoot: def.OutputRoot,
					SourceDir:  def.SourceDir,
					PatchesDir: def.PatchesDir,
					SassC:      def.SassC,
					LogLevel:   def.LogLevel,
					Format:     def.Format,
					Size:       def.Size,
					Flavors:    def.Flavors,
					Accents:    def.Accents,
					ThemesDir:  def.ThemesDir,
				}
				b, _ := json.MarshalIndent(cf, "", "  ")
				if err := os.WriteFile(p, b, 0o600); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", p)
				return nil
			}
			if show {
				cfg := loadConfig()
				fmt.Fprintf(out, "Config file: %s (%s)\n", p, existsStr(p))
				fmt.Fprintf(out, "  theme_name: %s\n", cfg.ThemeName)
				fmt.Fprintf(out, "  output_root: %s\n", cfg.OutputRoot)
				fmt.Fprintf(out, "  source_dir: %s\n", cfg.SourceDir)
				fmt.Fprintf(out, "  patches_dir: %s\n", cfg.PatchesDir)
				fmt.Fprintf(out, "  sassc: %s\n", cfg.SassC)
				fmt.Fprintf(out, "  log_level: %s\n", cfg.LogLevel)
				fmt.Fprintf(out, "  format: %s\n", cfg.Format)
				fmt.Fprintf(out, "  size: %s\n", cfg.Size)
				fmt.Fprintf(out, "  flavors: %s\n", strings.Join(cfg.Flavors, ","))
				fmt.Fprintf(out, "  accents: %s\n", strings.Join(cfg.Accents, ","))
				fmt.Fprintf(out, "  themes_dir: %s\n", cfg.ThemesDir)
				return nil
			}
			_ = cmd.Help()
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", true, "Show config (default)")
	cmd.Flags().BoolVar(&init, "init", false, "Write a default config file if missing")
	return cmd
}
