package table

import (
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/raphi011/ptable/internal/config"
	"github.com/raphi011/ptable/internal/ui/progress"
	"github.com/raphi011/ptable/internal/ui/styles"
)

// barDefaults are resolved once from the configuration.
type barDefaults struct {
	style, styleEmbed styles.BarStyle
	display           progress.Display
	embed             bool
}

func newBarDefaults(cfg config.PbarConfig) (barDefaults, error) {
	style, err := styles.ParseBar(cfg.Style)
	if err != nil {
		return barDefaults{}, err
	}
	embed, err := styles.ParseBar(cfg.StyleEmbed)
	if err != nil {
		return barDefaults{}, err
	}
	filled, err := styles.ParseColor(cfg.Color)
	if err != nil {
		return barDefaults{}, err
	}
	empty, err := styles.ParseColor(cfg.ColorEmpty)
	if err != nil {
		return barDefaults{}, err
	}
	return barDefaults{
		style:      style.WithColors(filled, empty),
		styleEmbed: embed.WithColors(filled, empty),
		display: progress.Display{
			ShowProgress:   cfg.ShowProgress,
			ShowPercents:   cfg.ShowPercents,
			ShowThroughput: cfg.ShowThroughput,
			ShowETA:        cfg.ShowETA,
		},
		embed: cfg.Embedded,
	}, nil
}

// BarOption customizes a progress bar.
type BarOption func(*barSpec)

type barSpec struct {
	total      int64
	row        *int
	style      *string
	styleEmbed *string
	color      *string
	colorEmpty *string
	embed      *bool
	display    func(*progress.Display)
}

func (s *barSpec) displayOpt(fn func(*progress.Display)) {
	prev := s.display
	s.display = func(d *progress.Display) {
		if prev != nil {
			prev(d)
		}
		fn(d)
	}
}

// Total sets the number of steps. Without it the bar is indeterminate.
func Total(n int64) BarOption {
	return func(s *barSpec) { s.total = n }
}

// AtRow attaches the bar to row i for its whole life. Without it the
// bar follows the active row. Negative values count from the end.
func AtRow(i int) BarOption {
	return func(s *barSpec) { s.row = &i }
}

// Description labels the bar.
func Description(text string) BarOption {
	return func(s *barSpec) {
		s.displayOpt(func(d *progress.Display) { d.Description = text })
	}
}

// BarStyle sets the style of the bar drawn on its own line.
func BarStyle(spec string) BarOption {
	return func(s *barSpec) { s.style = &spec }
}

// BarStyleEmbed sets the style of the bar drawn inside a row.
func BarStyleEmbed(spec string) BarOption {
	return func(s *barSpec) { s.styleEmbed = &spec }
}

// BarColor overrides the filled color of both styles.
func BarColor(spec string) BarOption {
	return func(s *barSpec) { s.color = &spec }
}

// BarColorEmpty overrides the empty color of both styles.
func BarColorEmpty(spec string) BarOption {
	return func(s *barSpec) { s.colorEmpty = &spec }
}

// Embedded controls whether the bar may be drawn inside its row.
func Embedded(on bool) BarOption {
	return func(s *barSpec) { s.embed = &on }
}

// ShowThroughput toggles the "it/s" part of the info segment.
func ShowThroughput(on bool) BarOption {
	return func(s *barSpec) {
		s.displayOpt(func(d *progress.Display) { d.ShowThroughput = on })
	}
}

// ShowProgress toggles the "step/total" part of the info segment.
func ShowProgress(on bool) BarOption {
	return func(s *barSpec) {
		s.displayOpt(func(d *progress.Display) { d.ShowProgress = on })
	}
}

// ShowPercents toggles the percentage part of the info segment.
func ShowPercents(on bool) BarOption {
	return func(s *barSpec) {
		s.displayOpt(func(d *progress.Display) { d.ShowPercents = on })
	}
}

// ShowETA toggles the remaining-time part of the info segment.
func ShowETA(on bool) BarOption {
	return func(s *barSpec) {
		s.displayOpt(func(d *progress.Display) { d.ShowETA = on })
	}
}

// Bar is one progress timeline drawn by its table.
type Bar struct {
	t       *Table
	id      int
	owner   int // row index, or -1 to follow the active row
	tracker *progress.Tracker

	style, styleEmbed styles.BarStyle
	display           progress.Display
	embed             bool

	touched int
}

// barConfig is a validated bar spec, ready to start bars from.
type barConfig struct {
	total             int64
	row               *int
	style, styleEmbed styles.BarStyle
	display           progress.Display
	embed             bool
}

func (t *Table) barConfig(opts []BarOption) (barConfig, error) {
	s := barSpec{total: -1}
	for _, o := range opts {
		o(&s)
	}
	bc := barConfig{
		total:      s.total,
		style:      t.bars.style,
		styleEmbed: t.bars.styleEmbed,
		display:    t.bars.display,
		embed:      t.bars.embed,
	}
	var err error
	if s.style != nil {
		if bc.style, err = styles.ParseBar(*s.style); err != nil {
			return barConfig{}, err
		}
	}
	if s.styleEmbed != nil {
		if bc.styleEmbed, err = styles.ParseBar(*s.styleEmbed); err != nil {
			return barConfig{}, err
		}
	}
	var filled, empty styles.Color
	if s.color != nil {
		if filled, err = styles.ParseColor(*s.color); err != nil {
			return barConfig{}, err
		}
	}
	if s.colorEmpty != nil {
		if empty, err = styles.ParseColor(*s.colorEmpty); err != nil {
			return barConfig{}, err
		}
	}
	bc.style = bc.style.WithColors(filled, empty)
	bc.styleEmbed = bc.styleEmbed.WithColors(filled, empty)
	if s.display != nil {
		s.display(&bc.display)
	}
	if s.embed != nil {
		bc.embed = *s.embed
	}
	if s.row != nil {
		r, err := resolveIndex("row", *s.row, t.NumRows())
		if err != nil {
			return barConfig{}, err
		}
		bc.row = &r
	}
	return bc, nil
}

func (t *Table) startBar(bc barConfig) *Bar {
	b := &Bar{
		t:          t,
		id:         t.nextBarID,
		owner:      -1,
		tracker:    progress.NewTracker(bc.total, t.now),
		style:      bc.style,
		styleEmbed: bc.styleEmbed,
		display:    bc.display,
		embed:      bc.embed,
	}
	t.nextBarID++
	if bc.row != nil {
		b.owner = *bc.row
	}
	if t.closed || (b.owner >= 0 && b.owner < len(t.rows) && t.rows[b.owner].closed) {
		b.tracker.Close()
		return b
	}
	t.active = append(t.active, b)
	b.touch()
	t.update(false)
	return b
}

// NewBar creates and shows a progress bar. Style errors are reported
// here rather than at render time.
func (t *Table) NewBar(opts ...BarOption) (*Bar, error) {
	if t.closed {
		return nil, ErrClosed
	}
	bc, err := t.barConfig(opts)
	if err != nil {
		return nil, err
	}
	return t.startBar(bc), nil
}

func (b *Bar) touch() {
	b.t.touches++
	b.touched = b.t.touches
}

func (b *Bar) changed() {
	if b.tracker.Closed() {
		return
	}
	b.touch()
	b.t.update(false)
}

// Advance moves the bar forward by n steps.
func (b *Bar) Advance(n int64) {
	b.tracker.Advance(n)
	b.changed()
}

// Set moves the bar to count.
func (b *Bar) Set(count int64) {
	b.tracker.Set(count)
	b.changed()
}

// Reset restarts the bar at zero, keeping its total.
func (b *Bar) Reset() {
	total, _ := b.tracker.Total()
	b.tracker.Reset(total)
	b.changed()
}

// SetTotal changes the total. A negative total makes the bar
// indeterminate.
func (b *Bar) SetTotal(n int64) {
	b.tracker.SetTotal(n)
	b.changed()
}

// Close removes the bar from the table. It is safe to call more than
// once and never fails.
func (b *Bar) Close() {
	b.close(true)
}

func (b *Bar) close(render bool) {
	if !b.tracker.Close() {
		return
	}
	t := b.t
	t.active = slices.DeleteFunc(t.active, func(x *Bar) bool { return x == b })
	if render && !t.closed {
		t.update(true)
	}
}

// Closed reports whether the bar has been closed.
func (b *Bar) Closed() bool { return b.tracker.Closed() }

// Count returns the current step count.
func (b *Bar) Count() int64 { return b.tracker.Count() }

// Total returns the total and whether it is known.
func (b *Bar) Total() (int64, bool) { return b.tracker.Total() }

// Percent returns the completed fraction in [0, 1] when the total is
// known.
func (b *Bar) Percent() (float64, bool) { return b.tracker.Percent() }

// Progress returns the "step/total" text, or the bare count when the
// total is unknown.
func (b *Bar) Progress() string {
	total, ok := b.tracker.Total()
	if !ok {
		return strconv.FormatInt(b.tracker.Count(), 10)
	}
	return fmt.Sprintf("%d/%d", b.tracker.Count(), total)
}

// Row returns the owning row, or false for bars that follow the active
// row.
func (b *Bar) Row() (int, bool) { return b.owner, b.owner >= 0 }

func (b *Bar) row() int {
	if b.owner >= 0 {
		return b.owner
	}
	return b.t.activeRow()
}

// fraction returns the filled fraction, or -1 for indeterminate bars.
func (b *Bar) fraction() float64 {
	if p, ok := b.tracker.Percent(); ok {
		return p
	}
	return -1
}

func (b *Bar) step() int { return int(b.tracker.Count()) }

// Range counts from 0 to n-1 with a bar. The bar closes when the loop
// ends, however it ends.
func (t *Table) Range(n int, opts ...BarOption) (iter.Seq[int], error) {
	if t.closed {
		return nil, ErrClosed
	}
	bc, err := t.barConfig(append([]BarOption{Total(int64(n))}, opts...))
	if err != nil {
		return nil, err
	}
	return func(yield func(int) bool) {
		bar := t.startBar(bc)
		defer bar.Close()
		for i := range n {
			bar.Advance(1)
			if !yield(i) {
				return
			}
		}
	}, nil
}

// Iterate wraps seq with a bar. Its length is unknown unless a Total
// option is given, in which case the bar is determinate.
func Iterate[T any](t *Table, seq iter.Seq[T], opts ...BarOption) (iter.Seq[T], error) {
	if t.closed {
		return nil, ErrClosed
	}
	bc, err := t.barConfig(opts)
	if err != nil {
		return nil, err
	}
	if bc.total < 0 {
		t.log.Debug("iterator length unknown, bar is indeterminate")
	}
	return func(yield func(T) bool) {
		bar := t.startBar(bc)
		defer bar.Close()
		for v := range seq {
			bar.Advance(1)
			if !yield(v) {
				return
			}
		}
	}, nil
}

// IterateSlice wraps a slice with a bar whose total is its length.
func IterateSlice[T any](t *Table, s []T, opts ...BarOption) (iter.Seq2[int, T], error) {
	if t.closed {
		return nil, ErrClosed
	}
	bc, err := t.barConfig(append([]BarOption{Total(int64(len(s)))}, opts...))
	if err != nil {
		return nil, err
	}
	return func(yield func(int, T) bool) {
		bar := t.startBar(bc)
		defer bar.Close()
		for i, v := range s {
			bar.Advance(1)
			if !yield(i, v) {
				return
			}
		}
	}, nil
}
