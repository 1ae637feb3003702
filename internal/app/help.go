package app

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// -------------------------
// Help (agent-friendly)
// -------------------------

type helpFlag struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

type helpCommand struct {
	Name        string     `json:"name"`
	Usage       string     `json:"usage"`
	Description string     `json:"description"`
	Flags       []helpFlag `json:"flags,omitempty"`
}

type helpDoc struct {
	Name       string            `json:"name"`
	OneLiner   string            `json:"one_liner"`
	Commands   []helpCommand     `json:"commands"`
	IOContract map[string]string `json:"io_contract"`
	ExitCodes  map[string]string `json:"exit_codes"`
	Env        map[string]string `json:"env"`
	Config     map[string]string `json:"config"`
	Notes      []string          `json:"notes"`
}

func newHelpCmd() *cobra.Command {
	var format string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "help",
		Short: "Show extended help (agent-friendly)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				format = "json"
			}
			format = strings.TrimSpace(strings.ToLower(format))

			doc := buildHelpDoc(cmd.Root())
			switch format {
			case "json":
				return encodeJSON(cmd.OutOrStdout(), doc)
			case "markdown", "md":
				fmt.Fprint(cmd.OutOrStdout(), renderHelpMarkdown(doc))
				return nil
			case "", "text":
				if cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
					if out, err := renderMarkdownTTY(renderHelpMarkdown(doc)); err == nil {
						fmt.Fprint(cmd.OutOrStdout(), out)
						return nil
					}
				}
				fmt.Fprint(cmd.OutOrStdout(), renderHelpText(doc))
				return nil
			default:
				return fmt.Errorf("invalid --format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|markdown|json")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func commandFlags(c *cobra.Command) []helpFlag {
	var out []helpFlag
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		out = append(out, helpFlag{
			Name:        "--" + f.Name,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
			Description: f.Usage,
		})
	})
	return out
}

func buildHelpDoc(root *cobra.Command) helpDoc {
	var commands []helpCommand
	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "completion" {
			continue
		}
		commands = append(commands, helpCommand{
			Name:        c.Name(),
			Usage:       c.UseLine(),
			Description: c.Short,
			Flags:       commandFlags(c),
		})
	}

	cfgPath, _ := configFilePath()
	return helpDoc{
		Name:     appName,
		OneLiner: root.Short,
		Commands: commands,
		IOContract: map[string]string{
			"stdout": "Tables or JSON (plans, results, lists, help).",
			"stderr": "Build logs, warnings and errors.",
		},
		ExitCodes: map[string]string{
			"0": "Success",
			"1": "Build, validation or I/O failure",
		},
		Env: map[string]string{
			"CTPGTK_HOME":   "Override the app directory (config.json and build records)",
			"CTPGTK_<KEY>":  "Override any config key, e.g. CTPGTK_OUTPUT_ROOT",
			"XDG_DATA_HOME": "Base of the default themes directory",
			"ACCESSIBLE":    "Run the build form in accessible mode",
		},
		Config: map[string]string{
			"path": cfgPath,
			"keys": strings.Join(configKeys, ", "),
		},
		Notes: []string{
			"`ctpgtk build --dry-run --json` prints the build ids and output paths without compiling.",
			"Build ids look like catppuccin-mocha-mauve-standard+default; tweaks replace `default`.",
			"A failed build leaves its partial output in place for inspection.",
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderHelpText(doc helpDoc) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s\n\n", doc.Name, doc.OneLiner))

	b.WriteString("COMMANDS\n")
	for _, c := range doc.Commands {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", c.Name, c.Description))
		b.WriteString(fmt.Sprintf("           %s\n", c.Usage))
		for _, f := range c.Flags {
			b.WriteString(fmt.Sprintf("    %-16s %-12s %s\n", f.Name, f.Type, f.Description))
		}
	}
	sections := []struct {
		title string
		m     map[string]string
	}{
		{"I/O CONTRACT", doc.IOContract},
		{"EXIT CODES", doc.ExitCodes},
		{"ENV", doc.Env},
		{"CONFIG", doc.Config},
	}
	for _, s := range sections {
		b.WriteString("\n" + s.title + "\n")
		for _, k := range sortedKeys(s.m) {
			b.WriteString(fmt.Sprintf("  %s: %s\n", k, s.m[k]))
		}
	}
	if len(doc.Notes) > 0 {
		b.WriteString("\nNOTES\n")
		for _, n := range doc.Notes {
			b.WriteString("  - " + n + "\n")
		}
	}
	return b.String()
}

func renderHelpMarkdown(doc helpDoc) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n%s\n", doc.Name, doc.OneLiner))
	for _, c := range doc.Commands {
		b.WriteString(fmt.Sprintf("\n## %s\n\n%s\n\n`%s`\n", c.Name, c.Description, c.Usage))
		if len(c.Flags) == 0 {
			continue
		}
		b.WriteString("\n| flag | type | default | description |\n| --- | --- | --- | --- |\n")
		for _, f := range c.Flags {
			b.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", f.Name, f.Type, f.Default, strings.ReplaceAll(f.Description, "|", "\\|")))
		}
	}
	for _, s := range []struct {
		title string
		m     map[string]string
	}{
		{"Exit codes", doc.ExitCodes},
		{"Environment", doc.Env},
		{"Config", doc.Config},
	} {
		b.WriteString("\n## " + s.title + "\n\n")
		for _, k := range sortedKeys(s.m) {
			b.WriteString(fmt.Sprintf("- `%s`: %s\n", k, s.m[k]))
		}
	}
	if len(doc.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, n := range doc.Notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

// renderMarkdownTTY styles markdown for the current terminal width.
func renderMarkdownTTY(md string) (string, error) {
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w - 2
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
