package table

import (
	"strings"

	"github.com/raphi011/ptable/internal/format"
	"github.com/raphi011/ptable/internal/ui/progress"
	"github.com/raphi011/ptable/internal/ui/redraw"
	"github.com/raphi011/ptable/internal/ui/styles"
)

// defaultBarWidth is the inner width of bar lines when the table has
// no columns and the terminal width is unknown.
const defaultBarWidth = 40

// segment is a run of a rendered line. Padding runs may be painted over
// by an embedded bar.
type segment struct {
	text  string
	width int
	pad   bool
}

type line []segment

func padding(n int) segment {
	return segment{text: strings.Repeat(" ", n), width: n, pad: true}
}

func glyphs(s string) segment {
	return segment{text: s, width: format.Width(s)}
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

// overlay draws cells over the padding of the line, leaving text and
// separators in place. The outer borders are not part of cells.
func (l line) overlay(st styles.BarStyle, cells []progress.Glyph, color bool) string {
	var b strings.Builder
	pos := 0
	for i, s := range l {
		if i == 0 || i == len(l)-1 {
			b.WriteString(s.text)
			continue
		}
		if s.pad && pos+s.width <= len(cells) {
			b.WriteString(progress.Paint(st, cells[pos:pos+s.width], color))
		} else {
			b.WriteString(s.text)
		}
		pos += s.width
	}
	return b.String()
}

// frame builds the next frame and marks its settled part as printed.
func (t *Table) frame(final bool) redraw.Frame {
	b := t.boundary(final)
	var live []string
	if !final {
		switch t.level {
		case redraw.Line:
			live = t.liveLine()
		case redraw.Dynamic:
			b, live = t.liveWindow(b)
		}
	}

	var settled []string
	for i := t.flushed; i < b; i++ {
		settled = append(settled, t.itemLines(i, nil)...)
	}
	if final && len(t.items) > 0 {
		settled = append(settled, t.border.Bottom(t.widths()))
	}
	t.flushed = b
	return redraw.Frame{Settled: settled, Live: live}
}

// boundary returns the index of the first item that is still live.
func (t *Table) boundary(final bool) int {
	if final {
		return len(t.items)
	}
	switch t.level {
	case redraw.Dynamic:
		return max(t.flushed, t.lastHeader)
	case redraw.Line:
		return t.firstOpenItem()
	default:
		// a header waits for its first row so it shows every column
		b := t.firstOpenItem()
		for b > t.flushed && t.items[b-1].kind == itemHeader {
			b--
		}
		return b
	}
}

// liveWindow renders items from b on, with bars, settling items from
// the top while the window is taller than the terminal.
func (t *Table) liveWindow(b int) (int, []string) {
	p := t.placeBars(b)
	blocks := make([][]string, 0, len(t.items)-b)
	for i := b; i < len(t.items); i++ {
		blocks = append(blocks, t.itemLines(i, &p))
	}
	tail := t.tailLines(&p)

	width, height := t.size()
	if height > 1 {
		rows := redraw.Rows(tail, width)
		for _, bl := range blocks {
			rows += redraw.Rows(bl, width)
		}
		for len(blocks) > 0 && rows > height-1 {
			rows -= redraw.Rows(blocks[0], width)
			blocks = blocks[1:]
			b++
			t.log.Debug("window taller than terminal, freezing line", "item", b-1)
		}
	}

	var live []string
	for _, bl := range blocks {
		live = append(live, bl...)
	}
	return b, append(live, tail...)
}

// liveLine picks the single live line shown at level 1: the most
// recently advanced bar, or else the active row.
func (t *Table) liveLine() []string {
	p := t.placeBars(t.flushed)
	if bar := t.lastTouched(); bar != nil {
		r := bar.row()
		if p.embedded[r] == bar {
			return []string{t.overlayRow(r, bar)}
		}
		return []string{t.barLine(bar)}
	}
	if t.pending || !t.cfg.Table.PrintRowOnUpdate {
		return nil
	}
	r := t.activeRow()
	if t.rows[r].closed {
		return nil
	}
	return []string{t.rowLine(r).String()}
}

func (t *Table) lastTouched() *Bar {
	var last *Bar
	for _, b := range t.active {
		if last == nil || b.touched > last.touched {
			last = b
		}
	}
	return last
}

// placement decides where each open bar is drawn.
type placement struct {
	embedded map[int]*Bar   // row -> bar drawn inside it
	below    map[int][]*Bar // row -> bars drawn as lines under it
	tail     []*Bar         // bars whose row is not on screen
}

// placeBars assigns every open bar to a row shown from item from on.
// The earliest bar of a row that allows embedding is drawn inside it.
func (t *Table) placeBars(from int) placement {
	p := placement{embedded: make(map[int]*Bar), below: make(map[int][]*Bar)}
	if t.level == redraw.Static {
		return p
	}
	shown := make(map[int]bool)
	for _, it := range t.items[from:] {
		if it.kind == itemRow {
			shown[it.row] = true
		}
	}
	if t.pending {
		shown[t.activeRow()] = true
	}
	for _, b := range t.active {
		r := b.row()
		switch {
		case !shown[r]:
			p.tail = append(p.tail, b)
		case p.embedded[r] == nil && t.cfg.Pbar.Embedded && b.embed && t.rowVisible(r):
			p.embedded[r] = b
		default:
			p.below[r] = append(p.below[r], b)
		}
	}
	return p
}

// rowVisible reports whether row r is drawn in the live window. Open
// rows are hidden unless rows are printed while they change.
func (t *Table) rowVisible(r int) bool {
	if r >= len(t.rows) {
		return t.cfg.Table.PrintRowOnUpdate
	}
	return t.rows[r].closed || t.cfg.Table.PrintRowOnUpdate
}

// itemLines renders item i. With a placement, rows carry their bars.
func (t *Table) itemLines(i int, p *placement) []string {
	it := t.items[i]
	widths := t.widths()
	switch it.kind {
	case itemHeader:
		first := t.border.Mid(widths)
		if i == 0 {
			first = t.border.Top(widths)
		}
		return []string{first, t.headerLine(), t.border.Mid(widths)}
	case itemSplit:
		return []string{t.border.Mid(widths)}
	case itemMessage:
		return []string{t.messageLine(it.text)}
	}

	if p == nil {
		return []string{t.rowLine(it.row).String()}
	}
	return t.rowWithBars(it.row, p)
}

func (t *Table) rowWithBars(r int, p *placement) []string {
	var lines []string
	if t.rowVisible(r) {
		if bar := p.embedded[r]; bar != nil {
			lines = append(lines, t.overlayRow(r, bar))
		} else {
			lines = append(lines, t.rowLine(r).String())
		}
	}
	for _, bar := range p.below[r] {
		lines = append(lines, t.barLine(bar))
	}
	return lines
}

// tailLines renders what follows the last item: the pending active row
// when bars are attached to it, and bars whose rows are off screen.
func (t *Table) tailLines(p *placement) []string {
	var lines []string
	if r := t.activeRow(); t.pending && (p.embedded[r] != nil || len(p.below[r]) > 0) {
		if t.needHeader && len(t.columns) > 0 {
			widths := t.widths()
			top := t.border.Mid(widths)
			if len(t.items) == 0 {
				top = t.border.Top(widths)
			}
			lines = append(lines, top, t.headerLine(), t.border.Mid(widths))
		}
		lines = append(lines, t.rowWithBars(r, p)...)
	}
	for _, bar := range p.tail {
		lines = append(lines, t.barLine(bar))
	}
	return lines
}

func (t *Table) widths() []int {
	w := make([]int, len(t.columns))
	for i, c := range t.columns {
		w[i] = c.Width
	}
	return w
}

// innerWidth is the width of a row line without its outer borders.
func (t *Table) innerWidth() int {
	if len(t.columns) == 0 {
		return 0
	}
	n := (len(t.columns) - 1) * format.Width(t.border.Vertical)
	for _, c := range t.columns {
		n += c.Width + 2
	}
	return n
}

func (t *Table) paint(c styles.Color, s string) string {
	if !t.color {
		return s
	}
	return c.Render(s)
}

// cellSegments appends one cell: a leading space, the aligned text and
// a trailing space or overflow marker.
func (t *Table) cellSegments(l line, text string, c *Column, color styles.Color) line {
	lay := format.Fit(text, c.Width, c.Align)
	l = append(l, padding(1+lay.Left))
	if lay.Text != "" {
		l = append(l, segment{text: t.paint(color, lay.Text), width: format.Width(lay.Text)})
	}
	if lay.Right > 0 {
		l = append(l, padding(lay.Right))
	}
	if lay.Clipped {
		return append(l, glyphs(t.border.Overflow))
	}
	return append(l, padding(1))
}

func (t *Table) rowLine(r int) line {
	rw := newRow()
	if r < len(t.rows) {
		rw = t.rows[r]
	}
	l := line{glyphs(t.border.Vertical)}
	for i, c := range t.columns {
		if i > 0 {
			l = append(l, glyphs(t.border.Vertical))
		}
		var text string
		if x, ok := rw.cells[c.Name]; ok {
			text = x.formatted(t.cfg.Table.DecimalPlaces)
		}
		l = t.cellSegments(l, text, c, rw.colorFor(c, t.rowColor))
	}
	return append(l, glyphs(t.border.Vertical))
}

func (t *Table) headerLine() string {
	l := line{glyphs(t.border.Vertical)}
	for i, c := range t.columns {
		if i > 0 {
			l = append(l, glyphs(t.border.Vertical))
		}
		hc := *c
		hc.Align = format.AlignCenter
		l = t.cellSegments(l, c.Name, &hc, c.Color)
	}
	return append(l, glyphs(t.border.Vertical)).String()
}

func (t *Table) messageLine(msg string) string {
	inner := t.innerWidth()
	if inner < 2 {
		return msg
	}
	return t.border.Vertical + format.Cell(msg, inner-2, format.AlignLeft, t.border.Overflow) + t.border.Vertical
}

func (t *Table) overlayRow(r int, bar *Bar) string {
	inner := t.innerWidth()
	var cells []progress.Glyph
	if frac := bar.fraction(); frac < 0 {
		cells = progress.Cycle(bar.styleEmbed, inner, bar.step())
	} else {
		cells = progress.Cells(bar.styleEmbed, inner, frac)
	}
	return t.rowLine(r).overlay(bar.styleEmbed, cells, t.color)
}

// barLine draws a bar on its own line: the info segment followed by
// the bar body, framed like a row.
func (t *Table) barLine(bar *Bar) string {
	inner := t.innerWidth()
	if inner == 0 {
		inner = defaultBarWidth
		if w, _ := t.size(); w > 2 {
			inner = w - 2
		}
	}
	var spin string
	if _, ok := bar.tracker.Total(); !ok {
		spin = progress.SpinnerFrame(bar.step())
	}
	info := bar.display.Info(bar.tracker, spin)
	if format.Width(info) > inner {
		info = format.Truncate(info, inner)
	}
	body := progress.Line(bar.style, inner-format.Width(info), bar.fraction(), bar.step(), t.color)
	return t.border.Vertical + info + body + t.border.Vertical
}
