// Package tui is the interactive flavor and accent browser behind `ctpgtk browse`.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/vburojevic/ctpgtk/internal/app/variant"
)

// Pick is one flavor and accent combination chosen in the browser.
type Pick struct {
	Flavor string `json:"flavor"`
	Accent string `json:"accent"`
}

// Config holds the browser configuration
type Config struct {
	// Initial cursor position.
	Flavor string
	Accent string
	// Describe returns the build id shown in the detail pane.
	Describe func(Pick) string
}

// Result is what the user chose when the browser exited.
type Result struct {
	Picks   []Pick
	Aborted bool
}

// Run starts the browser and blocks until the user confirms or quits.
func Run(cfg Config) (Result, error) {
	m := New(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if fm, ok := final.(*Model); ok {
		return fm.Result(), nil
	}
	return m.Result(), nil
}

// Model is the browser state: one flavor tab at a time, accents as rows.
type Model struct {
	cfg  Config
	keys KeyMap
	help help.Model

	// Layout
	width  int
	height int

	// State
	flavors   []variant.Flavor
	flavorIdx int
	accents   []string
	visible   []string
	cursor    int
	picked    map[Pick]bool

	// Filter
	filter       textinput.Model
	filterActive bool
	filterQuery  string

	// UI State
	status   string
	showHelp bool
	done     bool
	aborted  bool

	styles Styles
}

// New creates a new browser model
func New(cfg Config) *Model {
	f := textinput.New()
	f.Placeholder = "accent..."
	f.Prompt = ""
	f.CharLimit = 32
	f.Width = 20

	m := &Model{
		cfg:     cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		flavors: variant.Flavors(),
		accents: variant.AccentIDs(),
		picked:  map[Pick]bool{},
		filter:  f,
	}
	for i, fl := range m.flavors {
		if fl.Identifier == strings.ToLower(cfg.Flavor) {
			m.flavorIdx = i
		}
	}
	m.applyFilter()
	for i, a := range m.visible {
		if a == strings.ToLower(cfg.Accent) {
			m.cursor = i
		}
	}
	m.restyle()
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Help view - dismiss on any key
	if m.showHelp {
		m.showHelp = false
		return nil
	}
	if m.filterActive {
		return m.handleFilterKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filterActive = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.filterQuery = ""
		m.applyFilter()
		return nil
	case "enter":
		m.filterActive = false
		m.filter.Blur()
		return nil
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.filterQuery = m.filter.Value()
		m.applyFilter()
		return cmd
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "esc" && m.filterQuery != "" {
			m.filterQuery = ""
			m.filter.SetValue("")
			m.applyFilter()
			return nil
		}
		m.aborted = true
		return tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.NextFlavor):
		m.flavorIdx = (m.flavorIdx + 1) % len(m.flavors)

	case key.Matches(msg, m.keys.PrevFlavor):
		m.flavorIdx = (m.flavorIdx + len(m.flavors) - 1) % len(m.flavors)

	case key.Matches(msg, m.keys.Toggle):
		if p, ok := m.current(); ok {
			m.picked[p] = !m.picked[p]
		}

	case key.Matches(msg, m.keys.All):
		fl := m.flavors[m.flavorIdx].Identifier
		all := true
		for _, a := range m.visible {
			all = all && m.picked[Pick{Flavor: fl, Accent: a}]
		}
		for _, a := range m.visible {
			m.picked[Pick{Flavor: fl, Accent: a}] = !all
		}

	case key.Matches(msg, m.keys.Confirm):
		if len(m.Result().Picks) == 0 {
			if p, ok := m.current(); ok {
				m.picked[p] = true
			}
		}
		m.done = true
		return tea.Quit

	case key.Matches(msg, m.keys.Copy):
		m.copyBuildID()

	case key.Matches(msg, m.keys.Filter):
		m.filterActive = true
		return m.filter.Focus()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	m.restyle()
	return nil
}

// Result returns the picks in flavor then accent order.
func (m *Model) Result() Result {
	if m.aborted {
		return Result{Aborted: true}
	}
	var out []Pick
	for _, fl := range m.flavors {
		for _, a := range m.accents {
			p := Pick{Flavor: fl.Identifier, Accent: a}
			if m.picked[p] {
				out = append(out, p)
			}
		}
	}
	return Result{Picks: out}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")

	listWidth := 28
	detailWidth := m.width - listWidth - 3
	if detailWidth < 20 {
		detailWidth = 20
	}
	panelHeight := m.height - 6
	if panelHeight < len(m.accents) {
		panelHeight = len(m.accents)
	}
	listPanel := m.styles.List.Width(listWidth).Height(panelHeight).Render(m.renderAccentList())
	detailPanel := m.styles.Detail.Width(detailWidth).Height(panelHeight).Render(m.renderDetail())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", detailPanel))
	b.WriteString("\n")
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	b.WriteString(m.styles.Footer.Render(footer))

	if m.showHelp {
		return lipgloss.Place(
			lipgloss.Width(b.String()),
			lipgloss.Height(b.String()),
			lipgloss.Center,
			lipgloss.Center,
			m.renderHelpOverlay(),
		)
	}
	return b.String()
}

func (m *Model) renderHeader() string {
	tabs := []string{m.styles.Title.Render("◆ ctpgtk")}
	for i, fl := range m.flavors {
		style := m.styles.Tab
		if i == m.flavorIdx {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(fl.Name))
	}
	picked := m.styles.Muted.Render(fmt.Sprintf("%d picked", len(m.Result().Picks)))
	tabs = append(tabs, picked)
	return m.styles.Header.Render(strings.Join(tabs, " "))
}

func (m *Model) renderFilterBar() string {
	if m.filterActive {
		return m.styles.FilterPrompt.Render("/ ") + m.filter.View()
	}
	if m.filterQuery != "" {
		return m.styles.FilterPrompt.Render("/ ") + m.styles.FilterText.Render(m.filterQuery)
	}
	return m.styles.Muted.Render("/ to filter accents")
}

func (m *Model) renderAccentList() string {
	if len(m.visible) == 0 {
		return m.styles.Muted.Render(fmt.Sprintf("No accents match %q", m.filterQuery))
	}
	fl := m.flavors[m.flavorIdx]
	lines := make([]string, 0, len(m.visible))
	for i, a := range m.visible {
		indicator := "  "
		if i == m.cursor {
			indicator = m.styles.Selected.Render("▶ ")
		}
		mark := "○"
		if m.picked[Pick{Flavor: fl.Identifier, Accent: a}] {
			mark = m.styles.Picked.Render("●")
		}
		hex, _ := fl.Palette.AccentHex(a)
		lines = append(lines, indicator+mark+" "+Swatch(hex)+" "+m.styles.Text.Render(a))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetail() string {
	p, ok := m.current()
	if !ok {
		return ""
	}
	fl := m.flavors[m.flavorIdx]
	hex, _ := fl.Palette.AccentHex(p.Accent)
	mode := "light"
	if fl.Dark {
		mode = "dark"
	}
	row := func(label, value string) string {
		return m.styles.Label.Render(label) + m.styles.Value.Render(value)
	}
	lines := []string{
		m.styles.Title.Render(fl.Name + " " + p.Accent),
		"",
		row("accent", Swatch(hex)+" "+hex),
		row("mode", mode),
		row("base", Swatch(fl.Palette.Base)+" "+fl.Palette.Base),
		row("mantle", Swatch(fl.Palette.Mantle)+" "+fl.Palette.Mantle),
		row("overlay0", Swatch(fl.Palette.Overlay0)+" "+fl.Palette.Overlay0),
		row("text", Swatch(fl.Palette.Text)+" "+fl.Palette.Text),
	}
	if m.cfg.Describe != nil {
		id := m.cfg.Describe(p)
		if w := m.width - 28 - 20; w > 10 {
			id = truncate.StringWithTail(id, uint(w), "…")
		}
		lines = append(lines, "", row("build id", id))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHelpOverlay() string {
	lines := []string{m.styles.HelpTitle.Render("Keyboard Shortcuts"), ""}
	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			lines = append(lines, m.styles.HelpKey.Render(h.Key)+m.styles.HelpDesc.Render(h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.styles.Muted.Render("Press any key to close"))
	return m.styles.HelpOverlay.Render(strings.Join(lines, "\n"))
}

// Helper methods

// copyBuildID puts the build id of the cursor pick on the system clipboard.
func (m *Model) copyBuildID() {
	p, ok := m.current()
	if !ok || m.cfg.Describe == nil {
		return
	}
	id := m.cfg.Describe(p)
	if err := clipboard.WriteAll(id); err != nil {
		m.status = m.styles.Muted.Render("Clipboard unavailable: " + err.Error())
		return
	}
	m.status = m.styles.Selected.Render(fmt.Sprintf("Copied '%s' to clipboard.", id))
}

func (m *Model) current() (Pick, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return Pick{}, false
	}
	return Pick{Flavor: m.flavors[m.flavorIdx].Identifier, Accent: m.visible[m.cursor]}, true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterQuery))
	visible := make([]string, 0, len(m.accents))
	for _, a := range m.accents {
		if query == "" || strings.Contains(a, query) {
			visible = append(visible, a)
		}
	}
	m.visible = visible
	m.moveCursor(0)
	m.restyle()
}

// restyle repaints the browser with the flavor and accent under the cursor.
func (m *Model) restyle() {
	fl := m.flavors[m.flavorIdx]
	hex := fl.Palette.Text
	if p, ok := m.current(); ok {
		if h, ok := fl.Palette.AccentHex(p.Accent); ok {
			hex = h
		}
	}
	m.styles = NewStyles(ThemeFor(fl, hex))
}
