package variant

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/lucasb-eyer/go-colorful"
)

// swatch is the subset of a catppuccin flavor we read colors from.
type swatch interface {
	Rosewater() catppuccin.Color
	Flamingo() catppuccin.Color
	Pink() catppuccin.Color
	Mauve() catppuccin.Color
	Red() catppuccin.Color
	Maroon() catppuccin.Color
	Peach() catppuccin.Color
	Yellow() catppuccin.Color
	Green() catppuccin.Color
	Teal() catppuccin.Color
	Sky() catppuccin.Color
	Sapphire() catppuccin.Color
	Blue() catppuccin.Color
	Lavender() catppuccin.Color

	Text() catppuccin.Color
	Subtext1() catppuccin.Color
	Subtext0() catppuccin.Color
	Overlay2() catppuccin.Color
	Overlay1() catppuccin.Color
	Overlay0() catppuccin.Color
	Surface2() catppuccin.Color
	Surface1() catppuccin.Color
	Surface0() catppuccin.Color
	Base() catppuccin.Color
	Mantle() catppuccin.Color
	Crust() catppuccin.Color
}

// Palette holds the named color slots of a flavor as lowercase "#rrggbb" strings.
type Palette struct {
	Text     string `json:"text"`
	Subtext1 string `json:"subtext1"`
	Subtext0 string `json:"subtext0"`
	Overlay2 string `json:"overlay2"`
	Overlay1 string `json:"overlay1"`
	Overlay0 string `json:"overlay0"`
	Surface2 string `json:"surface2"`
	Surface1 string `json:"surface1"`
	Surface0 string `json:"surface0"`
	Base     string `json:"base"`
	Mantle   string `json:"mantle"`
	Crust    string `json:"crust"`

	accents map[string]string
}

// AccentHex returns the accent color for id and whether it is known.
func (p Palette) AccentHex(id string) (string, bool) {
	h, ok := p.accents[id]
	return h, ok
}

// accentOrder is the canonical catppuccin accent order.
var accentOrder = []string{
	"rosewater", "flamingo", "pink", "mauve", "red", "maroon", "peach",
	"yellow", "green", "teal", "sky", "sapphire", "blue", "lavender",
}

// AccentIDs returns the accent identifiers in canonical order.
func AccentIDs() []string {
	return append([]string(nil), accentOrder...)
}

func paletteOf(s swatch) Palette {
	p := Palette{
		Text:     NormalizeHex(s.Text().Hex),
		Subtext1: NormalizeHex(s.Subtext1().Hex),
		Subtext0: NormalizeHex(s.Subtext0().Hex),
		Overlay2: NormalizeHex(s.Overlay2().Hex),
		Overlay1: NormalizeHex(s.Overlay1().Hex),
		Overlay0: NormalizeHex(s.Overlay0().Hex),
		Surface2: NormalizeHex(s.Surface2().Hex),
		Surface1: NormalizeHex(s.Surface1().Hex),
		Surface0: NormalizeHex(s.Surface0().Hex),
		Base:     NormalizeHex(s.Base().Hex),
		Mantle:   NormalizeHex(s.Mantle().Hex),
		Crust:    NormalizeHex(s.Crust().Hex),
	}
	accents := []catppuccin.Color{
		s.Rosewater(), s.Flamingo(), s.Pink(), s.Mauve(), s.Red(), s.Maroon(), s.Peach(),
		s.Yellow(), s.Green(), s.Teal(), s.Sky(), s.Sapphire(), s.Blue(), s.Lavender(),
	}
	p.accents = make(map[string]string, len(accents))
	for i, c := range accents {
		p.accents[accentOrder[i]] = NormalizeHex(c.Hex)
	}
	return p
}

// NormalizeHex returns s as a lowercase "#rrggbb" string. Values that do not
// parse as a hex color are only lowercased.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return strings.ToLower(s)
	}
	return c.Hex()
}
