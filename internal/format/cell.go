package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Alignment positions text inside a column.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

// ValidAlignments lists accepted alignment names.
var ValidAlignments = []string{"center", "left", "right"}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseAlignment parses an alignment name. Empty means center.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "", "center":
		return AlignCenter, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	}
	return AlignCenter, fmt.Errorf("invalid alignment %q: must be one of %s", s, strings.Join(ValidAlignments, ", "))
}

// Layout is the result of fitting text into a column.
type Layout struct {
	Left    int    // padding cells before Text
	Text    string // possibly truncated text
	Right   int    // padding cells after Text
	Clipped bool   // Text was cut to fit
}

// Fit places s into width cells with the given alignment, cutting it
// when it is wider than the column.
func Fit(s string, width int, a Alignment) Layout {
	if width < 0 {
		width = 0
	}
	w := ansi.StringWidth(s)
	if w > width {
		return Layout{Text: ansi.Truncate(s, width, ""), Clipped: true}
	}

	pad := width - w
	var left int
	switch a {
	case AlignLeft:
		left = 0
	case AlignRight:
		left = pad
	default:
		left = pad/2 + (pad & width & 1)
	}
	return Layout{Left: left, Text: s, Right: pad - left}
}

// Cell renders s as a complete cell of width+2 cells, ending with the
// overflow marker if the text was clipped.
func Cell(s string, width int, a Alignment, overflow string) string {
	l := Fit(s, width, a)
	var b strings.Builder
	b.WriteByte(' ')
	b.WriteString(strings.Repeat(" ", l.Left))
	b.WriteString(l.Text)
	b.WriteString(strings.Repeat(" ", l.Right))
	if l.Clipped {
		b.WriteString(overflow)
	} else {
		b.WriteByte(' ')
	}
	return b.String()
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most width cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
