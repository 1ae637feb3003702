package variant

// Suffix selects which pre-authored variant of a template file a build uses.
type Suffix int

const (
	// IsDark yields "-Dark" for dark flavors, "" otherwise.
	IsDark Suffix = iota
	// IsLight yields "-Light" for light flavors, "" otherwise.
	IsLight
	// IsWindowNormal yields "-Normal" when the normal tweak is set, "" otherwise.
	IsWindowNormal
	// DarkLight yields "-Dark" or "-Light".
	DarkLight
)

type suffixRule struct {
	name      string
	whenTrue  string
	whenFalse string
	test      func(Context) bool
}

var suffixRules = [...]suffixRule{
	IsDark:         {name: "IS_DARK", whenTrue: "-Dark", test: isDark},
	IsLight:        {name: "IS_LIGHT", whenTrue: "-Light", test: isLight},
	IsWindowNormal: {name: "IS_WINDOW_NORMAL", whenTrue: "-Normal", test: isWindowNormal},
	DarkLight:      {name: "DARK_LIGHT", whenTrue: "-Dark", whenFalse: "-Light", test: isDark},
}

func isDark(c Context) bool         { return c.Flavor.Dark }
func isLight(c Context) bool        { return !c.Flavor.Dark }
func isWindowNormal(c Context) bool { return c.Tweaks.Has("normal") }

// Suffixes returns every selector.
func Suffixes() []Suffix {
	return []Suffix{IsDark, IsLight, IsWindowNormal, DarkLight}
}

func (s Suffix) String() string {
	if int(s) < 0 || int(s) >= len(suffixRules) {
		return "UNKNOWN"
	}
	return suffixRules[s].name
}

// Outputs returns the value chosen when the rule holds and when it does not.
func (s Suffix) Outputs() (whenTrue, whenFalse string) {
	r := suffixRules[s]
	return r.whenTrue, r.whenFalse
}

// Suffix returns the filename suffix selector s picks for c.
func (c Context) Suffix(s Suffix) string {
	r := suffixRules[s]
	if r.test(c) {
		return r.whenTrue
	}
	return r.whenFalse
}
