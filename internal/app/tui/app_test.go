package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestNewStartsAtConfiguredPick(t *testing.T) {
	m := New(Config{Flavor: "Frappe", Accent: "blue"})
	p, ok := m.current()
	if !ok {
		t.Fatalf("expected a current pick")
	}
	if p.Flavor != "frappe" || p.Accent != "blue" {
		t.Fatalf("unexpected start pick: %+v", p)
	}
}

func TestEnterPicksCursorWhenNothingPicked(t *testing.T) {
	m := New(Config{Flavor: "mocha", Accent: "mauve"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	res := m.Result()
	if res.Aborted || len(res.Picks) != 1 || res.Picks[0] != (Pick{Flavor: "mocha", Accent: "mauve"}) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestToggleAcrossFlavorsKeepsOrder(t *testing.T) {
	m := New(Config{Flavor: "mocha", Accent: "rosewater"})
	// mocha/rosewater, then latte/flamingo.
	send(m,
		tea.KeyMsg{Type: tea.KeySpace},
		tea.KeyMsg{Type: tea.KeyTab},
		runes("j"),
		tea.KeyMsg{Type: tea.KeySpace},
	)
	res := m.Result()
	want := []Pick{{Flavor: "latte", Accent: "flamingo"}, {Flavor: "mocha", Accent: "rosewater"}}
	if len(res.Picks) != len(want) {
		t.Fatalf("picks=%+v", res.Picks)
	}
	for i := range want {
		if res.Picks[i] != want[i] {
			t.Fatalf("pick %d = %+v, want %+v", i, res.Picks[i], want[i])
		}
	}
}

func TestPickAllTogglesVisibleAccents(t *testing.T) {
	m := New(Config{Flavor: "latte"})
	send(m, runes("a"))
	if got := len(m.Result().Picks); got != 14 {
		t.Fatalf("expected 14 picks, got %d", got)
	}
	send(m, runes("a"))
	if got := len(m.Result().Picks); got != 0 {
		t.Fatalf("expected picks cleared, got %d", got)
	}
}

func TestFilterNarrowsAccents(t *testing.T) {
	m := New(Config{Flavor: "mocha"})
	send(m, runes("/"), runes("s"), runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterActive {
		t.Fatalf("enter should close the filter")
	}
	for _, a := range m.visible {
		if !strings.Contains(a, "sa") {
			t.Fatalf("unexpected visible accent %q", a)
		}
	}
	if len(m.visible) != 1 || m.visible[0] != "sapphire" {
		t.Fatalf("visible=%v", m.visible)
	}
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.visible) != 14 {
		t.Fatalf("esc should clear the filter, visible=%d", len(m.visible))
	}
	if m.Result().Aborted {
		t.Fatalf("esc with a filter should not quit")
	}
}

func TestQuitAborts(t *testing.T) {
	m := New(Config{})
	send(m, tea.KeyMsg{Type: tea.KeySpace})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if !m.Result().Aborted {
		t.Fatalf("expected aborted result")
	}
}

func TestViewShowsFlavorAndBuildID(t *testing.T) {
	m := New(Config{
		Flavor:   "macchiato",
		Accent:   "teal",
		Describe: func(p Pick) string { return "catppuccin-" + p.Flavor + "-" + p.Accent },
	})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading view before size, got %q", got)
	}
	send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	v := m.View()
	for _, want := range []string{"Macchiato", "teal", "catppuccin-macchiato-teal"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
