package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vburojevic/ctpgtk/internal/app/pipeline"
	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// -------------------------
// List (flavors, accents, tokens, builds)
// -------------------------

func newListCmd(base Config) *cobra.Command {
	var (
		jsonOut bool
		accents bool
		builds  bool
		tokens  string
		accent  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flavors, accents, recolor tokens or recorded builds",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case builds:
				recs, err := loadAllRecords()
				if err != nil {
					return err
				}
				return renderRecords(out, recs, jsonOut)
			case strings.TrimSpace(tokens) != "":
				c, err := variant.New(variant.Options{Flavor: tokens, Accent: accent, ThemeName: base.ThemeName})
				if err != nil {
					return err
				}
				return renderTokens(out, pipeline.Tokens(c), jsonOut)
			case accents:
				return renderAccents(out, jsonOut)
			default:
				return renderFlavors(out, jsonOut)
			}
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON instead of a table")
	cmd.Flags().BoolVar(&accents, "accents", false, "List accent colors per flavor")
	cmd.Flags().BoolVar(&builds, "builds", false, "List recorded builds")
	cmd.Flags().StringVar(&tokens, "tokens", "", "Show the asset recolor map for a flavor")
	cmd.Flags().StringVar(&accent, "accent", defaultAccent, "Accent used with --tokens")
	return cmd
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) prettytable.Writer {
	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(prettytable.StyleLight)
	tw.Style().Options.SeparateRows = false
	return tw
}

func renderFlavors(w io.Writer, asJSON bool) error {
	fl := variant.Flavors()
	if asJSON {
		return encodeJSON(w, fl)
	}
	tw := newTable(w)
	tw.AppendHeader(prettytable.Row{"FLAVOR", "NAME", "DARK", "BASE", "MANTLE", "OVERLAY0"})
	for _, f := range fl {
		tw.AppendRow(prettytable.Row{f.Identifier, f.Name, f.Dark, f.Palette.Base, f.Palette.Mantle, f.Palette.Overlay0})
	}
	tw.Render()
	return nil
}

func renderAccents(w io.Writer, asJSON bool) error {
	fl := variant.Flavors()
	if asJSON {
		out := map[string]map[string]string{}
		for _, f := range fl {
			out[f.Identifier] = map[string]string{}
			for _, a := range variant.AccentIDs() {
				hex, _ := f.Palette.AccentHex(a)
				out[f.Identifier][a] = hex
			}
		}
		return encodeJSON(w, out)
	}
	tw := newTable(w)
	header := prettytable.Row{"ACCENT"}
	for _, f := range fl {
		header = append(header, strings.ToUpper(f.Identifier))
	}
	tw.AppendHeader(header)
	for _, a := range variant.AccentIDs() {
		row := prettytable.Row{a}
		for _, f := range fl {
			hex, _ := f.Palette.AccentHex(a)
			row = append(row, hex)
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}

func renderTokens(w io.Writer, m pipeline.TokenMap, asJSON bool) error {
	if asJSON {
		return encodeJSON(w, m)
	}
	tw := newTable(w)
	tw.AppendHeader(prettytable.Row{"TARGET", "LEGACY", "REPLACEMENT"})
	groups := []struct {
		name string
		reps []pipeline.Replacement
	}{
		{"theme assets", m.Accent},
		{"gtk assets", m.GTK},
		{"cinnamon thumbnail", m.CinnamonThumb},
		{"gtk thumbnail", m.GTKThumb},
	}
	for _, g := range groups {
		for _, r := range g.reps {
			tw.AppendRow(prettytable.Row{g.name, r.Old, r.New})
		}
	}
	tw.Render()
	return nil
}

func renderRecords(w io.Writer, recs []BuildRecord, asJSON bool) error {
	if asJSON {
		return encodeJSON(w, recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recorded builds.")
		return nil
	}
	tw := newTable(w)
	tw.AppendHeader(prettytable.Row{"BUILD ID", "FORMAT", "OUTPUT", "BUILT"})
	for _, r := range recs {
		out := r.Archive
		if out == "" && len(r.Dirs) > 0 {
			out = r.Dirs[0]
		}
		tw.AppendRow(prettytable.Row{r.BuildID, r.Format, shortenPath(out, 2), r.BuiltAt.Local().Format("2006-01-02 15:04")})
	}
	tw.Render()
	return nil
}
