package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// Theme is the set of colors the browser paints with. It follows the flavor
// under the cursor so the picker previews the palette it is choosing.
type Theme struct {
	Name string

	Crust    lipgloss.Color
	Mantle   lipgloss.Color
	Base     lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Overlay0 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color

	Accent lipgloss.Color
}

// ThemeFor derives a theme from a flavor palette and an accent hex.
func ThemeFor(f variant.Flavor, accentHex string) Theme {
	p := f.Palette
	return Theme{
		Name:     f.Identifier,
		Crust:    lipgloss.Color(p.Crust),
		Mantle:   lipgloss.Color(p.Mantle),
		Base:     lipgloss.Color(p.Base),
		Surface0: lipgloss.Color(p.Surface0),
		Surface1: lipgloss.Color(p.Surface1),
		Overlay0: lipgloss.Color(p.Overlay0),
		Text:     lipgloss.Color(p.Text),
		Subtext0: lipgloss.Color(p.Subtext0),
		Accent:   lipgloss.Color(accentHex),
	}
}

// Border characters for rounded subtle borders
var BorderRounded = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
}

// Styles holds all the lipgloss styles for the browser
type Styles struct {
	// Text styles
	Text  lipgloss.Style
	Muted lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style

	// Layout styles
	Header lipgloss.Style
	Footer lipgloss.Style
	List   lipgloss.Style
	Detail lipgloss.Style

	// Flavor tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Rows
	Selected lipgloss.Style
	Picked   lipgloss.Style
	Row      lipgloss.Style

	// Filter
	FilterPrompt lipgloss.Style
	FilterText   lipgloss.Style

	// Help overlay
	HelpOverlay lipgloss.Style
	HelpTitle   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
}

// NewStyles creates styles from the theme
func NewStyles(t Theme) Styles {
	s := Styles{}

	s.Text = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.Overlay0)
	s.Title = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	s.Label = lipgloss.NewStyle().Foreground(t.Subtext0).Width(12)
	s.Value = lipgloss.NewStyle().Foreground(t.Text)

	s.Header = lipgloss.NewStyle().
		Foreground(t.Text).
		Padding(0, 1)

	s.Footer = lipgloss.NewStyle().
		Foreground(t.Overlay0).
		Padding(0, 1)

	s.List = lipgloss.NewStyle().
		Border(BorderRounded).
		BorderForeground(t.Surface1)

	s.Detail = lipgloss.NewStyle().
		Border(BorderRounded).
		BorderForeground(t.Accent).
		Padding(0, 1)

	s.Tab = lipgloss.NewStyle().
		Foreground(t.Subtext0).
		Padding(0, 1)

	s.TabActive = lipgloss.NewStyle().
		Foreground(t.Base).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)

	s.Selected = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	s.Picked = lipgloss.NewStyle().
		Foreground(t.Accent)

	s.Row = lipgloss.NewStyle().
		Foreground(t.Text).
		Padding(0, 1)

	s.FilterPrompt = lipgloss.NewStyle().
		Foreground(t.Overlay0)

	s.FilterText = lipgloss.NewStyle().
		Foreground(t.Text)

	s.HelpOverlay = lipgloss.NewStyle().
		Border(BorderRounded).
		BorderForeground(t.Surface1).
		Padding(1, 2).
		Background(t.Mantle)

	s.HelpTitle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		MarginBottom(1)

	s.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent).
		Width(12)

	s.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Subtext0)

	return s
}

// Swatch renders a two-cell block filled with hex.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
