package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vburojevic/ctpgtk/internal/app/pipeline"
	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// -------------------------
// Build
// -------------------------

type buildFlags struct {
	flavors  []string
	accents  []string
	size     string
	tweaks   []string
	name     string
	dest     string
	src      string
	patches  string
	zip      bool
	sassc    string
	logLevel string
	jsonOut  bool
	dryRun   bool
	noWizard bool
}

func newBuildCmd(base Config) *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build theme packages for the selected flavors and accents",
		Long: `Build compiles the Colloid templates with sassc, recolors every asset for the
selected catppuccin flavor and accent, and writes one theme tree per
combination (plus -hdpi/-xhdpi xfwm4 trees). With --zip each build is packed
into {dest}/{build-id}.zip and the trees are removed.

"all" expands to every flavor or accent. On a TTY without flags an
interactive form collects the choices.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
			if interactive && !f.noWizard && cmd.Flags().NFlag() == 0 {
				choices, err := runBuildWizard(f)
				if err != nil {
					return err
				}
				if choices.Aborted {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
				f = choices.apply(f)
			}

			ctxs, err := variant.Matrix(f.options(), normalizeList(f.flavors), normalizeList(f.accents))
			if err != nil {
				return err
			}

			if f.dryRun {
				return renderPlan(cmd.OutOrStdout(), ctxs, f.jsonOut)
			}

			return executeBuilds(cmd, ctxs, f)
		},
	}

	cmd.Flags().StringSliceVar(&f.flavors, "flavor", base.Flavors, "Flavor(s): latte|frappe|macchiato|mocha|all (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&f.accents, "accent", base.Accents, "Accent(s): "+strings.Join(variant.AccentIDs(), "|")+"|all")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the planned builds without building")
	cmd.Flags().BoolVar(&f.noWizard, "no-wizard", false, "Disable the interactive build form")
	addBuildFlags(cmd, &f, base)
	return cmd
}

// addBuildFlags registers the flags shared by build and browse.
func addBuildFlags(cmd *cobra.Command, f *buildFlags, base Config) {
	cmd.Flags().StringVar(&f.size, "size", base.Size, "Size variant: standard|compact")
	cmd.Flags().StringSliceVar(&f.tweaks, "tweaks", nil, "Tweaks: "+strings.Join(knownTweaks, "|")+" (repeatable or comma-separated)")
	cmd.Flags().StringVar(&f.name, "name", base.ThemeName, "Theme name prefix of the build id")
	cmd.Flags().StringVar(&f.dest, "dest", base.OutputRoot, "Output root directory")
	cmd.Flags().StringVar(&f.src, "src", base.SourceDir, "Colloid source tree")
	cmd.Flags().StringVar(&f.patches, "patches", base.PatchesDir, "Directory with the generated xfwm4 assets")
	cmd.Flags().BoolVar(&f.zip, "zip", base.Format == string(variant.FormatZip), "Pack each build into a zip and remove the trees")
	cmd.Flags().StringVar(&f.sassc, "sassc", base.SassC, "sassc binary (looked up on PATH)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", base.LogLevel, "Log level: debug|info|warn|error")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Output JSON instead of a table")
}

// executeBuilds runs the pipeline for every context in order and records each
// finished build. The first failure stops the run.
func executeBuilds(cmd *cobra.Command, ctxs []variant.Context, f buildFlags) error {
	logger, err := newLogger(cmd.ErrOrStderr(), f.logLevel)
	if err != nil {
		return err
	}
	if len(ctxs) > 0 {
		for _, t := range ctxs[0].Tweaks.List() {
			if !sliceContains(knownTweaks, t) {
				logger.Warn("Ignoring unknown tweak", "tweak", t)
			}
		}
	}

	comp := pipeline.SassC{Binary: f.sassc}
	var results []pipeline.Result
	for _, c := range ctxs {
		res, err := pipeline.Run(cmd.Context(), c, pipeline.Options{Compiler: comp, Logger: logger})
		if err != nil {
			return fmt.Errorf("build %s: %w", c.BuildID(), err)
		}
		if err := putRecord(recordFor(c, res)); err != nil {
			logger.Warn("Could not record build", "build_id", res.BuildID, "err", err)
		}
		results = append(results, res)
	}
	return renderResults(cmd.OutOrStdout(), results, f.jsonOut)
}

func (f buildFlags) options() variant.Options {
	format := string(variant.FormatDir)
	if f.zip {
		format = string(variant.FormatZip)
	}
	return variant.Options{
		Size:       f.size,
		Tweaks:     normalizeList(f.tweaks),
		OutputRoot: f.dest,
		ThemeName:  f.name,
		Format:     format,
		SourceDir:  f.src,
		PatchDir:   f.patches,
	}
}

func recordFor(c variant.Context, res pipeline.Result) BuildRecord {
	return BuildRecord{
		BuildID:      res.BuildID,
		Flavor:       c.Flavor.Identifier,
		Accent:       c.Accent.Identifier,
		Size:         string(c.Size),
		Tweaks:       c.Tweaks.List(),
		Format:       string(c.OutputFormat),
		OutputRoot:   c.OutputRoot,
		Dirs:         res.Dirs,
		Archive:      res.Archive,
		ArchiveBytes: res.ArchiveBytes,
	}
}

type planRow struct {
	BuildID string `json:"build_id"`
	Flavor  string `json:"flavor"`
	Accent  string `json:"accent"`
	Hex     string `json:"hex"`
	Output  string `json:"output"`
}

func renderPlan(w io.Writer, ctxs []variant.Context, asJSON bool) error {
	rows := make([]planRow, 0, len(ctxs))
	for _, c := range ctxs {
		out := c.OutputDir()
		if c.OutputFormat == variant.FormatZip {
			out = c.ArchivePath()
		}
		rows = append(rows, planRow{BuildID: c.BuildID(), Flavor: c.Flavor.Identifier, Accent: c.Accent.Identifier, Hex: c.Accent.Hex, Output: out})
	}
	if asJSON {
		return encodeJSON(w, rows)
	}
	tw := newTable(w)
	tw.AppendHeader(prettytable.Row{"BUILD ID", "FLAVOR", "ACCENT", "HEX", "OUTPUT"})
	for _, r := range rows {
		tw.AppendRow(prettytable.Row{r.BuildID, r.Flavor, r.Accent, r.Hex, r.Output})
	}
	tw.AppendFooter(prettytable.Row{fmt.Sprintf("%d builds", len(rows))})
	tw.Render()
	return nil
}

func renderResults(w io.Writer, results []pipeline.Result, asJSON bool) error {
	if asJSON {
		return encodeJSON(w, results)
	}
	tw := newTable(w)
	tw.AppendHeader(prettytable.Row{"BUILD ID", "OUTPUT", "FILES", "SIZE"})
	tw.SetColumnConfigs([]prettytable.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, r := range results {
		out := shortenPath(r.Archive, 2)
		files, size := fmt.Sprint(r.ArchiveFiles), humanize.Bytes(uint64(r.ArchiveBytes))
		if r.Archive == "" {
			out = shortenPath(r.Dirs[0], 2)
			files, size = "", ""
		}
		tw.AppendRow(prettytable.Row{r.BuildID, out, files, size})
	}
	tw.Render()
	return nil
}

type buildWizardChoices struct {
	Flavors []string
	Accents []string
	Size    string
	Tweaks  []string
	Zip     bool
	Aborted bool
}

func (c buildWizardChoices) apply(f buildFlags) buildFlags {
	f.flavors = c.Flavors
	f.accents = c.Accents
	f.size = c.Size
	f.tweaks = c.Tweaks
	f.zip = c.Zip
	return f
}

func runBuildWizard(f buildFlags) (buildWizardChoices, error) {
	var (
		flavors = append([]string(nil), f.flavors...)
		accents = append([]string(nil), f.accents...)
		size    = f.size
		tweaks  []string
		zip     = f.zip
		apply   = true
	)

	flavorOpts := make([]huh.Option[string], 0, len(variant.Flavors()))
	for _, fl := range variant.Flavors() {
		label := fl.Name + " (light)"
		if fl.Dark {
			label = fl.Name + " (dark)"
		}
		flavorOpts = append(flavorOpts, huh.NewOption(label, fl.Identifier).Selected(sliceContains(flavors, fl.Identifier)))
	}
	accentOpts := make([]huh.Option[string], 0, len(variant.AccentIDs()))
	for _, a := range variant.AccentIDs() {
		accentOpts = append(accentOpts, huh.NewOption(a, a).Selected(sliceContains(accents, a)))
	}
	tweakOpts := make([]huh.Option[string], 0, len(knownTweaks))
	for _, t := range knownTweaks {
		tweakOpts = append(tweakOpts, huh.NewOption(t, t))
	}

	atLeastOne := func(what string) func([]string) error {
		return func(v []string) error {
			if len(v) == 0 {
				return fmt.Errorf("select at least one %s", what)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which flavors?").
				Description("Space to toggle. Enter to continue.").
				Options(flavorOpts...).
				Value(&flavors).
				Validate(atLeastOne("flavor")),

			huh.NewMultiSelect[string]().
				Title("Which accents?").
				Options(accentOpts...).
				Value(&accents).
				Validate(atLeastOne("accent")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Size").
				Options(
					huh.NewOption("Standard", string(variant.SizeStandard)),
					huh.NewOption("Compact", string(variant.SizeCompact)),
				).
				Value(&size),

			huh.NewMultiSelect[string]().
				Title("Tweaks").
				Description("black: darker surfaces, rimless: no borders, normal: normal window buttons, float: floating panel.").
				Options(tweakOpts...).
				Value(&tweaks),

			huh.NewConfirm().
				Title("Pack each build into a zip?").
				Value(&zip),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start the build now?").
				Affirmative("Build").
				Negative("Cancel").
				Value(&apply),
		),
	)

	form.WithTheme(huh.ThemeCatppuccin())

	// Enable accessible mode when requested.
	if os.Getenv("ACCESSIBLE") != "" {
		form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return buildWizardChoices{Aborted: true}, nil
		}
		return buildWizardChoices{}, err
	}
	if !apply {
		return buildWizardChoices{Aborted: true}, nil
	}
	return buildWizardChoices{
		Flavors: flavors,
		Accents: accents,
		Size:    size,
		Tweaks:  tweaks,
		Zip:     zip,
	}, nil
}
