package styles

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color is a parsed color spec: an optional foreground and background
// from the 16 basic ANSI colors plus text attributes. The zero Color
// leaves text untouched.
type Color struct {
	fg, bg    uint8 // ANSI index + 1, 0 when unset
	bold      bool
	faint     bool
	italic    bool
	underline bool
	reverse   bool
	// reset clears attributes inherited through Merge.
	reset bool
}

var baseColors = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

type colorToken struct {
	apply func(*Color)
}

var colorTokens = buildColorTokens()

func buildColorTokens() map[string]colorToken {
	tokens := make(map[string]colorToken)
	for i, name := range baseColors {
		idx := uint8(i)
		tokens[name] = colorToken{func(c *Color) { c.fg = idx + 1 }}
		tokens["light"+name] = colorToken{func(c *Color) { c.fg = idx + 9 }}
		tokens["light"+name+"_ex"] = tokens["light"+name]
		tokens["bg_"+name] = colorToken{func(c *Color) { c.bg = idx + 1 }}
		tokens["bg_light"+name] = colorToken{func(c *Color) { c.bg = idx + 9 }}
	}
	tokens["bold"] = colorToken{func(c *Color) { c.bold = true }}
	tokens["bright"] = tokens["bold"]
	tokens["dim"] = colorToken{func(c *Color) { c.faint = true }}
	tokens["italic"] = colorToken{func(c *Color) { c.italic = true }}
	tokens["underline"] = colorToken{func(c *Color) { c.underline = true }}
	tokens["reverse"] = colorToken{func(c *Color) { c.reverse = true }}
	tokens["normal"] = colorToken{func(c *Color) {
		*c = Color{fg: c.fg, bg: c.bg, reset: true}
	}}
	tokens["reset"] = colorToken{func(c *Color) { *c = Color{reset: true} }}
	return tokens
}

// foregroundTokens are the color names that set only a foreground.
var foregroundTokens = func() map[string]bool {
	m := make(map[string]bool, 3*len(baseColors))
	for _, name := range baseColors {
		m[name] = true
		m["light"+name] = true
		m["light"+name+"_ex"] = true
	}
	return m
}()

func isForeground(word string) bool {
	return foregroundTokens[strings.ToLower(word)]
}

func foregroundNames() []string {
	names := make([]string, 0, len(foregroundTokens))
	for name := range foregroundTokens {
		names = append(names, name)
	}
	return names
}

// ParseColor parses a whitespace-separated color spec such as
// "bold red" or "lightcyan bg_black". The empty spec yields the zero
// Color.
func ParseColor(spec string) (Color, error) {
	var c Color
	for _, word := range strings.Fields(spec) {
		tok, ok := colorTokens[strings.ToLower(word)]
		if !ok {
			return Color{}, newUnknownTokenError("color", word, colorTokenNames())
		}
		tok.apply(&c)
	}
	return c, nil
}

// MustColor is like ParseColor but panics on error. It is meant for
// package-level defaults.
func MustColor(spec string) Color {
	c, err := ParseColor(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// IsZero reports whether the color changes nothing.
func (c Color) IsZero() bool {
	return c == Color{}
}

// Merge layers over on top of c. Set fields of over win; attributes
// accumulate unless over resets them.
func (c Color) Merge(over Color) Color {
	if over.IsZero() {
		return c
	}
	out := c
	if over.reset {
		out = Color{fg: c.fg, bg: c.bg}
	}
	if over.fg != 0 {
		out.fg = over.fg
	}
	if over.bg != 0 {
		out.bg = over.bg
	}
	out.bold = out.bold || over.bold
	out.faint = out.faint || over.faint
	out.italic = out.italic || over.italic
	out.underline = out.underline || over.underline
	out.reverse = out.reverse || over.reverse
	out.reset = false
	return out
}

// Style returns the lipgloss style for c.
func (c Color) Style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.fg != 0 {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(int(c.fg - 1))))
	}
	if c.bg != 0 {
		st = st.Background(lipgloss.Color(strconv.Itoa(int(c.bg - 1))))
	}
	if c.bold {
		st = st.Bold(true)
	}
	if c.faint {
		st = st.Faint(true)
	}
	if c.italic {
		st = st.Italic(true)
	}
	if c.underline {
		st = st.Underline(true)
	}
	if c.reverse {
		st = st.Reverse(true)
	}
	return st
}

// Foreground returns the foreground color, or nil when unset.
func (c Color) Foreground() color.Color {
	if c.fg == 0 {
		return nil
	}
	return lipgloss.Color(strconv.Itoa(int(c.fg - 1)))
}

// Render wraps s in the escape sequences for c. The zero Color and
// empty strings are returned unchanged.
func (c Color) Render(s string) string {
	if s == "" || c.withoutReset().IsZero() {
		return s
	}
	return c.Style().Render(s)
}

func (c Color) withoutReset() Color {
	c.reset = false
	return c
}

// String returns a canonical spec that parses back to c.
func (c Color) String() string {
	var parts []string
	if c.fg != 0 {
		parts = append(parts, colorName(c.fg))
	}
	if c.bg != 0 {
		parts = append(parts, "bg_"+colorName(c.bg))
	}
	if c.bold {
		parts = append(parts, "bold")
	}
	if c.faint {
		parts = append(parts, "dim")
	}
	if c.italic {
		parts = append(parts, "italic")
	}
	if c.underline {
		parts = append(parts, "underline")
	}
	if c.reverse {
		parts = append(parts, "reverse")
	}
	return strings.Join(parts, " ")
}

func colorName(v uint8) string {
	idx := int(v - 1)
	if idx >= 8 {
		return "light" + baseColors[idx-8]
	}
	return baseColors[idx]
}

func colorTokenNames() []string {
	names := make([]string, 0, len(colorTokens))
	for n := range colorTokens {
		names = append(names, n)
	}
	return sortedUnique(names)
}
