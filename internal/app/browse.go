package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vburojevic/ctpgtk/internal/app/tui"
	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// -------------------------
// Browse (interactive picker)
// -------------------------

func newBrowseCmd(base Config) *cobra.Command {
	var (
		f         buildFlags
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick flavors and accents in a live palette preview, then build them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("browse needs a terminal (use `ctpgtk build` instead)")
			}
			opts := f.options()
			res, err := tui.Run(tui.Config{
				Flavor: firstOr(base.Flavors, defaultFlavor),
				Accent: firstOr(base.Accents, defaultAccent),
				Describe: func(p tui.Pick) string {
					o := opts
					o.Flavor, o.Accent = p.Flavor, p.Accent
					c, err := variant.New(o)
					if err != nil {
						return err.Error()
					}
					return c.BuildID()
				},
			})
			if err != nil {
				return err
			}
			if res.Aborted || len(res.Picks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			ctxs, err := contextsForPicks(opts, res.Picks)
			if err != nil {
				return err
			}
			if printOnly {
				return renderPlan(cmd.OutOrStdout(), ctxs, f.jsonOut)
			}
			return executeBuilds(cmd, ctxs, f)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the picked builds instead of building them")
	addBuildFlags(cmd, &f, base)
	return cmd
}

func contextsForPicks(base variant.Options, picks []tui.Pick) ([]variant.Context, error) {
	out := make([]variant.Context, 0, len(picks))
	for _, p := range picks {
		o := base
		o.Flavor, o.Accent = p.Flavor, p.Accent
		c, err := variant.New(o)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func firstOr(vals []string, def string) string {
	if len(vals) > 0 && vals[0] != variant.All {
		return vals[0]
	}
	return def
}
