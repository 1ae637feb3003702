package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vburojevic/ctpgtk/internal/app/pipeline"
	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// -------------------------
// Doctor
// -------------------------

// sourceLayout lists the template paths every build reads before anything else.
var sourceLayout = []string{
	"sass/_tweaks.scss",
	"sass/gnome-shell/_common.scss",
	"main/gnome-shell/pad-osd.css",
	"main/gtk-3.0/gtk-Dark.scss",
	"main/gtk-4.0/gtk-Dark.scss",
	"main/metacity-1",
	"main/xfwm4",
	"main/plank",
	"assets/cinnamon",
	"assets/gnome-shell",
	"assets/gtk",
	"assets/metacity-1",
}

type doctorCheck struct {
	Name string
	Path string
	OK   bool
}

func runDoctorChecks(src, patches, sassc string) []doctorCheck {
	var checks []doctorCheck
	bin, err := pipeline.SassC{Binary: sassc}.LookPath()
	checks = append(checks, doctorCheck{Name: "sassc", Path: bin, OK: err == nil})
	if err != nil {
		checks[0].Path = sassc
	}
	for _, rel := range sourceLayout {
		p := filepath.Join(src, filepath.FromSlash(rel))
		checks = append(checks, doctorCheck{Name: "source", Path: p, OK: existsStr(p) == "ok"})
	}
	for _, f := range variant.FlavorIDs() {
		for _, suffix := range []string{"", "-hdpi", "-xhdpi"} {
			p := filepath.Join(patches, "assets-catppuccin-"+f+suffix)
			checks = append(checks, doctorCheck{Name: "xfwm4 assets", Path: p, OK: existsStr(p) == "ok"})
		}
	}
	return checks
}

func newDoctorCmd(base Config) *cobra.Command {
	var (
		src     string
		patches string
		sassc   string
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain and source tree a build needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ad, _ := appDir()
			cp, _ := configFilePath()
			bd, _ := buildsDir()

			fmt.Fprintf(out, "ctpgtk\n")
			fmt.Fprintf(out, "  app dir: %s\n", ad)
			fmt.Fprintf(out, "  config: %s (%s)\n", cp, existsStr(cp))
			fmt.Fprintf(out, "  build records: %s (%s)\n", bd, existsStr(bd))
			fmt.Fprintf(out, "  output root: %s\n", base.OutputRoot)
			fmt.Fprintf(out, "  themes dir: %s\n", base.ThemesDir)
			fmt.Fprintln(out)

			failed := 0
			last := ""
			for _, c := range runDoctorChecks(src, patches, sassc) {
				if c.Name != last {
					fmt.Fprintf(out, "%s\n", c.Name)
					last = c.Name
				}
				state := "ok"
				if !c.OK {
					state = "missing"
					failed++
				}
				fmt.Fprintf(out, "  %s (%s)\n", c.Path, state)
			}
			fmt.Fprintln(out)

			if failed > 0 {
				fmt.Fprintln(out, "Tip: install sassc and point --src/--patches at a Colloid checkout and the generated xfwm4 assets.")
				return fmt.Errorf("%d checks failed", failed)
			}
			fmt.Fprintln(out, "All checks passed. Run `ctpgtk build`.")
			return nil
		},
	}
	cmd.Flags().StringVar(&src, "src", base.SourceDir, "Colloid source tree")
	cmd.Flags().StringVar(&patches, "patches", base.PatchesDir, "Directory with the generated xfwm4 assets")
	cmd.Flags().StringVar(&sassc, "sassc", base.SassC, "sassc binary")
	return cmd
}
