package styles

import "strings"

// Border holds the glyphs used to draw table frames.
type Border struct {
	Name       string
	Overflow   string // marks a clipped cell
	Horizontal string
	Vertical   string
	All        string // ┼
	UpLeft     string // ┘
	UpRight    string // └
	DownLeft   string // ┐
	DownRight  string // ┌
	NoLeft     string // ├
	NoRight    string // ┤
	NoUp       string // ┬
	NoDown     string // ┴
}

// newBorder builds a Border from a 12-glyph string in field order,
// starting with Overflow.
func newBorder(name, glyphs string) Border {
	g := strings.Split(glyphs, "")
	return Border{
		Name:       name,
		Overflow:   g[0],
		Horizontal: g[1],
		Vertical:   g[2],
		All:        g[3],
		UpLeft:     g[4],
		UpRight:    g[5],
		DownLeft:   g[6],
		DownRight:  g[7],
		NoLeft:     g[8],
		NoRight:    g[9],
		NoUp:       g[10],
		NoDown:     g[11],
	}
}

var borders = []Border{
	newBorder("round", "…─│┼╯╰╮╭├┤┬┴"),
	newBorder("modern", "…─│┼┘└┐┌├┤┬┴"),
	newBorder("bare", "…─ ─────────"),
	newBorder("double", "…═║╬╝╚╗╔╠╣╦╩"),
	newBorder("bold", "…━┃╋┛┗┓┏┣┫┳┻"),
	newBorder("ascii", "_-|+++++++++"),
	newBorder("asciib", "_- ---------"),
	newBorder("hidden", "            "),
}

// Top returns the top frame line for the given column widths.
func (b Border) Top(widths []int) string {
	return b.line(widths, b.DownRight, b.NoUp, b.DownLeft)
}

// Mid returns a separator line between header and rows.
func (b Border) Mid(widths []int) string {
	return b.line(widths, b.NoLeft, b.All, b.NoRight)
}

// Bottom returns the closing frame line.
func (b Border) Bottom(widths []int) string {
	return b.line(widths, b.UpRight, b.NoDown, b.UpLeft)
}

func (b Border) line(widths []int, left, junction, right string) string {
	var sb strings.Builder
	sb.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(junction)
		}
		sb.WriteString(strings.Repeat(b.Horizontal, w+2))
	}
	sb.WriteString(right)
	return sb.String()
}

// BarShape is the glyph set of one progress bar shape.
type BarShape struct {
	Name   string
	Filled string
	Empty  string
	// Heads are drawn at the boundary cell, indexed by the fractional
	// part of the filled length.
	Heads []string
	// FilledColor and EmptyColor apply when the style string names no
	// colors.
	FilledColor Color
	EmptyColor  Color
	// Gradient bars are drawn by the bubbles progress model when they
	// are not embedded.
	Gradient bool
}

var barShapes = []BarShape{
	{Name: "square", Filled: "■", Empty: "□", Heads: []string{"◩"}},
	{Name: "full", Filled: "█", Empty: " ", Heads: strings.Split("▏▎▍▌▋▊▉", "")},
	{Name: "dots", Filled: "⣿", Empty: "⣀", Heads: strings.Split("⣄⣤⣦⣶⣷", "")},
	{Name: "short", Filled: "▬", Empty: "▭", Heads: []string{"▬"}},
	{Name: "circle", Filled: "●", Empty: "○", Heads: []string{"◉"}},
	{Name: "angled", Filled: "▰", Empty: "▱", Heads: []string{"▰"}},
	{Name: "rich", Filled: "━", Empty: "━", Heads: []string{"━"}, FilledColor: Color{fg: 2}, EmptyColor: Color{fg: 1}},
	{Name: "cdots", Filled: "ꞏ", Empty: " ", Heads: []string{">"}},
	{Name: "dash", Filled: "-", Empty: " ", Heads: []string{">"}},
	{Name: "under", Filled: "_", Empty: " ", Heads: []string{"_"}},
	{Name: "doubledash", Filled: "=", Empty: " ", Heads: []string{">"}},
	{Name: "gradient", Filled: "█", Empty: " ", Heads: strings.Split("▏▎▍▌▋▊▉", ""), Gradient: true},
	{Name: "hidden", Filled: " ", Empty: " ", Heads: []string{" "}},
}

// barShapeAliases maps alternative spellings to shape names.
var barShapeAliases = map[string]string{
	"none": "hidden",
}

func findShape(name string) (BarShape, bool) {
	if alias, ok := barShapeAliases[name]; ok {
		name = alias
	}
	for _, s := range barShapes {
		if s.Name == name {
			return s, true
		}
	}
	return BarShape{}, false
}

func borderNames() []string {
	names := make([]string, len(borders))
	for i, b := range borders {
		names[i] = b.Name
	}
	return names
}

func shapeNames() []string {
	names := make([]string, 0, len(barShapes)+len(barShapeAliases))
	for _, s := range barShapes {
		names = append(names, s.Name)
	}
	for alias := range barShapeAliases {
		names = append(names, alias)
	}
	return names
}

// ParseBorder returns the named table border style (case-insensitive).
// The empty name selects "round".
func ParseBorder(name string) (Border, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = "round"
	}
	for _, b := range borders {
		if b.Name == n {
			return b, nil
		}
	}
	return Border{}, newUnknownTokenError("table style", name, borderNames())
}
