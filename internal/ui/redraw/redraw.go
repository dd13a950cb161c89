// Package redraw turns successive frames into terminal updates.
//
// A frame is split into settled lines, which are final and printed
// exactly once, and live lines, which may still change. What the
// controller does with live lines depends on the interactivity level:
//
//   - Level 0 never moves the cursor and ignores live lines.
//   - Level 1 keeps a single live line on the last terminal row and
//     rewrites it in place with a carriage return.
//   - Level 2 keeps a block of live lines, moves the cursor up to the
//     first line that changed, erases below and rewrites from there.
//
// Every live line printed at level 2 ends with a newline, so the cursor
// always rests in column 0 below the block and the distance to move up
// is the number of physical rows from the first changed line to the end
// of the previous block.
package redraw

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Level is the interactivity level.
type Level int

const (
	Static  Level = 0
	Line    Level = 1
	Dynamic Level = 2
)

// ParseLevel validates an integer level.
func ParseLevel(n int) (Level, error) {
	if n < 0 || n > 2 {
		return 0, fmt.Errorf("interactivity level %d out of range [0, 2]", n)
	}
	return Level(n), nil
}

// Frame is one render of the table.
type Frame struct {
	// Settled lines are final. They directly precede Live.
	Settled []string
	// Live lines may change in later frames.
	Live []string
}

// SizeFunc reports the terminal size. Zero values mean unknown.
type SizeFunc func() (width, height int)

// Controller writes frames to an output stream.
type Controller struct {
	w     io.Writer
	level Level
	size  SizeFunc

	prev      []string // live lines currently on screen
	prevWidth int      // terminal width when prev was written
}

// New creates a controller. size may be nil.
func New(w io.Writer, level Level, size SizeFunc) *Controller {
	if size == nil {
		size = func() (int, int) { return 0, 0 }
	}
	return &Controller{w: w, level: level, size: size}
}

// Level returns the controller's interactivity level.
func (c *Controller) Level() Level { return c.level }

// Live returns the live lines currently on screen.
func (c *Controller) Live() []string { return c.prev }

// Render writes f.
func (c *Controller) Render(f Frame) error {
	var b strings.Builder
	switch c.level {
	case Static:
		for _, l := range f.Settled {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	case Line:
		c.renderLine(&b, f)
	default:
		c.renderDynamic(&b, f)
	}
	return c.write(b.String())
}

// Redraw rewrites the live lines on screen without changing them. The
// bytes written depend only on the current live lines.
func (c *Controller) Redraw() error {
	if len(c.prev) == 0 || c.level == Static {
		return nil
	}
	var b strings.Builder
	switch c.level {
	case Line:
		b.WriteString("\r" + ansi.EraseEntireLine)
		b.WriteString(c.prev[0])
	default:
		width, height := c.size()
		up := c.clampUp(Rows(c.prev, width), height)
		if up > 0 {
			b.WriteString(ansi.CursorUp(up))
		}
		b.WriteString("\r" + ansi.EraseScreenBelow)
		writeLines(&b, c.prev)
	}
	return c.write(b.String())
}

func (c *Controller) renderLine(b *strings.Builder, f Frame) {
	width, _ := c.size()
	hadLive := len(c.prev) > 0
	if hadLive {
		b.WriteString("\r" + ansi.EraseEntireLine)
	}
	for _, l := range f.Settled {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	c.prev = nil
	if len(f.Live) == 0 {
		return
	}
	live := f.Live[len(f.Live)-1]
	if width > 1 && ansi.StringWidth(live) >= width {
		live = ansi.Truncate(live, width-1, "")
	}
	b.WriteString(live)
	c.prev = []string{live}
}

func (c *Controller) renderDynamic(b *strings.Builder, f Frame) {
	width, height := c.size()
	next := make([]string, 0, len(f.Settled)+len(f.Live))
	next = append(next, f.Settled...)
	next = append(next, f.Live...)

	switch {
	case len(c.prev) == 0:
		writeLines(b, next)
	case width != c.prevWidth:
		// the terminal may have rewrapped the old block; estimate its rows
		// at the new width and repaint everything below that point.
		if up := c.clampUp(Rows(c.prev, width), height); up > 0 {
			b.WriteString(ansi.CursorUp(up))
		}
		b.WriteString("\r" + ansi.EraseScreenBelow)
		writeLines(b, next)
	default:
		i := firstDiff(c.prev, next)
		up := c.clampUp(Rows(c.prev[i:], width), height)
		if up > 0 {
			b.WriteString(ansi.CursorUp(up))
		}
		if i < len(c.prev) || i < len(next) {
			b.WriteString("\r" + ansi.EraseScreenBelow)
		}
		writeLines(b, next[i:])
	}

	c.prev = append([]string(nil), f.Live...)
	c.prevWidth = width
}

// clampUp limits cursor movement to the visible screen.
func (c *Controller) clampUp(up, height int) int {
	if height > 1 && up > height-1 {
		return height - 1
	}
	return up
}

func (c *Controller) write(s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(c.w, s)
	return err
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

func firstDiff(a, b []string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Rows counts terminal rows used by lines at the given width,
// accounting for soft wrapping. Width 0 means no wrapping.
func Rows(lines []string, width int) int {
	rows := 0
	for _, l := range lines {
		w := ansi.StringWidth(l)
		if width <= 0 || w <= width {
			rows++
			continue
		}
		rows += (w + width - 1) / width
	}
	return rows
}
