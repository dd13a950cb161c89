package progress

import (
	"strings"

	"charm.land/bubbles/v2/progress"

	"github.com/raphi011/ptable/internal/ui/styles"
)

// Glyph is one cell of a drawn bar.
type Glyph struct {
	Text   string
	Filled bool
}

// Cells lays out a determinate bar of width cells at fraction frac.
func Cells(st styles.BarStyle, width int, frac float64) []Glyph {
	if width <= 0 {
		return nil
	}
	frac = max(0, min(1, frac))
	n := frac * float64(width)
	full := int(n)

	cells := make([]Glyph, width)
	for i := range cells {
		switch {
		case i < full:
			cells[i] = Glyph{Text: st.Filled, Filled: true}
		case i == full && n > float64(full):
			cells[i] = Glyph{Text: st.Head(n - float64(full)), Filled: true}
		default:
			cells[i] = Glyph{Text: st.Empty}
		}
	}
	return cells
}

// Cycle lays out an indeterminate bar: a short filled run that moves
// one cell per step and wraps around.
func Cycle(st styles.BarStyle, width, step int) []Glyph {
	if width <= 0 {
		return nil
	}
	run := max(1, width/5)
	start := step % width
	if start < 0 {
		start += width
	}
	cells := make([]Glyph, width)
	for i := range cells {
		cells[i] = Glyph{Text: st.Empty}
	}
	for k := range run {
		cells[(start+k)%width] = Glyph{Text: st.Filled, Filled: true}
	}
	return cells
}

// Paint joins glyphs into a string, coloring runs of filled and empty
// cells when color is true.
func Paint(st styles.BarStyle, cells []Glyph, color bool) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].Filled == cells[i].Filled {
			run.WriteString(cells[j].Text)
			j++
		}
		switch {
		case !color:
			b.WriteString(run.String())
		case cells[i].Filled:
			b.WriteString(st.FilledColor.Render(run.String()))
		default:
			b.WriteString(st.EmptyColor.Render(run.String()))
		}
		i = j
	}
	return b.String()
}

// Line draws a complete bar body of width cells. Gradient styles are
// rendered by the bubbles progress model when color is enabled; frac
// below zero selects the indeterminate animation at step.
func Line(st styles.BarStyle, width int, frac float64, step int, color bool) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 {
		return Paint(st, Cycle(st, width, step), color)
	}
	if st.Gradient && color {
		return gradient(st, width, frac)
	}
	return Paint(st, Cells(st, width, frac), color)
}

func gradient(st styles.BarStyle, width int, frac float64) string {
	from, to := st.FilledColor.Foreground(), st.EmptyColor.Foreground()
	theme := styles.Current()
	if from == nil {
		from = theme.Primary
	}
	if to == nil {
		to = theme.Accent
	}
	m := progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithColors(from, to),
	)
	return m.ViewAs(frac)
}
