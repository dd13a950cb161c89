package table

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/ptable/internal/aggregate"
	"github.com/raphi011/ptable/internal/config"
	"github.com/raphi011/ptable/internal/format"
	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/output"
	"github.com/raphi011/ptable/internal/ui/redraw"
	"github.com/raphi011/ptable/internal/ui/styles"
	"github.com/raphi011/ptable/internal/value"
)

type itemKind int

const (
	itemRow itemKind = iota
	itemHeader
	itemSplit
	itemMessage
)

// item is one entry of the display sequence.
type item struct {
	kind itemKind
	row  int
	text string
}

// Table is a live-updating terminal table. It is not safe for
// concurrent use.
type Table struct {
	cfg      config.Config
	level    redraw.Level
	border   styles.Border
	defaults columnDefaults
	rowColor styles.Color
	bars     barDefaults
	color    bool

	columns []*Column
	byName  map[string]*Column

	rows    []*row
	pending bool // the active row has not been written yet

	items       []item
	flushed     int // items before this index are printed for good
	lastHeader  int
	needHeader  bool
	sinceHeader int

	active    []*Bar
	nextBarID int
	touches   int

	writers  []io.Writer
	out      *output.Printer
	ctrl     *redraw.Controller
	size     redraw.SizeFunc
	now      func() time.Time
	log      *log.Logger
	environ  []string
	interval time.Duration

	rendered   bool
	lastRender time.Time
	dirty      bool
	closed     bool
	err        error
}

// Option configures a Table.
type Option func(*Table)

// WithOutput sends the table to every writer. The first one decides
// terminal size and color support. Defaults to os.Stdout.
func WithOutput(w ...io.Writer) Option {
	return func(t *Table) { t.writers = w }
}

// WithClock replaces time.Now for throttling and bar timing.
func WithClock(now func() time.Time) Option {
	return func(t *Table) { t.now = now }
}

// WithLogger sets the diagnostics logger. Defaults to discarding.
func WithLogger(l *log.Logger) Option {
	return func(t *Table) { t.log = l }
}

// WithEnv replaces os.Environ for interactivity and color detection.
func WithEnv(environ []string) Option {
	return func(t *Table) { t.environ = environ }
}

// WithSize replaces terminal size detection.
func WithSize(fn func() (width, height int)) Option {
	return func(t *Table) { t.size = fn }
}

// New creates a table from cfg. The interactivity level is resolved
// here, once, from the config and the environment.
func New(cfg config.Config, opts ...Option) (*Table, error) {
	t := &Table{
		byName:     make(map[string]*Column),
		pending:    true,
		lastHeader: -1,
		needHeader: true,
	}
	for _, o := range opts {
		o(t)
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.log == nil {
		t.log = log.Discard()
	}
	if t.environ == nil {
		t.environ = os.Environ()
	}
	if len(t.writers) == 0 {
		t.writers = []io.Writer{os.Stdout}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg, err := cfg.Resolve(lookupEnv(t.environ))
	if err != nil {
		return nil, err
	}
	t.cfg = cfg
	if t.level, err = redraw.ParseLevel(cfg.Interactive); err != nil {
		return nil, err
	}

	// Validate already checked every spec below.
	t.border, _ = styles.ParseBorder(cfg.Table.Style)
	t.rowColor, _ = styles.ParseColor(cfg.Table.RowColor)
	t.defaults.width = cfg.Column.Width
	t.defaults.align, _ = format.ParseAlignment(cfg.Column.Alignment)
	t.defaults.color, _ = styles.ParseColor(cfg.Column.Color)
	t.defaults.policy, _ = aggregate.ParsePolicy(cfg.Column.Aggregate)
	if t.bars, err = newBarDefaults(cfg.Pbar); err != nil {
		return nil, err
	}

	t.out = output.Tee(t.writers...)
	if t.size == nil {
		t.size = t.out.Size
	}
	t.color = t.out.ColorEnabled(cfg.Color, t.environ)
	t.ctrl = redraw.New(t.out.Writer(), t.level, t.size)
	t.interval = time.Duration(float64(time.Second) / cfg.RefreshRate)

	t.log.Debug("table created", "interactive", int(t.level), "style", t.border.Name, "color", t.color)
	return t, nil
}

func lookupEnv(environ []string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		for _, kv := range slices.Backward(environ) {
			if k, v, ok := strings.Cut(kv, "="); ok && k == key {
				return v, true
			}
		}
		return "", false
	}
}

// Level returns the resolved interactivity level.
func (t *Table) Level() int { return int(t.level) }

// Err returns the first error hit while writing output.
func (t *Table) Err() error { return t.err }

// Closed reports whether Close has been called.
func (t *Table) Closed() bool { return t.closed }

// AddColumn adds a column. Adding a name twice is an error.
func (t *Table) AddColumn(name string, opts ...ColumnOption) error {
	if t.closed {
		return ErrClosed
	}
	if _, ok := t.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	c, err := t.defaults.build(name, opts)
	if err != nil {
		return err
	}
	t.columns = append(t.columns, c)
	t.byName[name] = c
	t.columnsChanged()
	t.update(false)
	return nil
}

// AddColumns adds several columns with the same options.
func (t *Table) AddColumns(names []string, opts ...ColumnOption) error {
	for _, n := range names {
		if err := t.AddColumn(n, opts...); err != nil {
			return err
		}
	}
	return nil
}

// AddColumnsN adds n columns named by their position: "0", "1", ...
func (t *Table) AddColumnsN(n int, opts ...ColumnOption) error {
	if n < 0 {
		return fmt.Errorf("add columns: negative count %d", n)
	}
	start := len(t.columns)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprint(start + i)
	}
	return t.AddColumns(names, opts...)
}

// ReorderColumns moves the named columns to the front in the given
// order. The remaining columns keep their relative order.
func (t *Table) ReorderColumns(names ...string) error {
	if t.closed {
		return ErrClosed
	}
	front := make([]*Column, 0, len(t.columns))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		c, ok := t.byName[n]
		if !ok {
			return unknownColumn(n, t.columnNames())
		}
		if !seen[n] {
			front = append(front, c)
			seen[n] = true
		}
	}
	for _, c := range t.columns {
		if !seen[c.Name] {
			front = append(front, c)
		}
	}
	if slices.Equal(front, t.columns) {
		return nil
	}
	t.columns = front
	t.columnsChanged()
	t.update(false)
	return nil
}

// Columns returns a copy of the column definitions in display order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	for i, c := range t.columns {
		out[i] = *c
	}
	return out
}

func (t *Table) columnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.columns) }

// NumRows returns the number of rows, counting the pending active row.
func (t *Table) NumRows() int {
	if t.pending {
		return len(t.rows) + 1
	}
	return len(t.rows)
}

// activeRow is the index of the active row, which equals len(t.rows)
// while it is pending.
func (t *Table) activeRow() int {
	return t.NumRows() - 1
}

// AddRows creates n open rows, starting with the pending active row if
// there is one. The last one becomes active.
func (t *Table) AddRows(n int) error {
	if t.closed {
		return ErrClosed
	}
	for range n {
		t.materialize()
	}
	t.update(true)
	return nil
}

// AddRow creates one row holding values in column order, starting
// with the pending active row if there is one. Values beyond the last
// column create columns named by their position.
func (t *Table) AddRow(values ...any) error {
	if t.closed {
		return ErrClosed
	}
	r := t.materialize()
	for i, v := range values {
		var c *Column
		if i < len(t.columns) {
			c = t.columns[i]
		} else {
			var err error
			if c, err = t.column(fmt.Sprint(i), nil); err != nil {
				return err
			}
		}
		t.rows[r].cell(c).set(value.Of(v))
	}
	t.update(true)
	return nil
}

// materialize turns the pending active row into a real one.
func (t *Table) materialize() int {
	idx := len(t.rows)
	t.pending = false
	t.rows = append(t.rows, newRow())
	if t.needHeader || (t.cfg.Table.HeaderEvery > 0 && t.sinceHeader >= t.cfg.Table.HeaderEvery) {
		t.insertHeader(len(t.items))
	}
	t.items = append(t.items, item{kind: itemRow, row: idx})
	t.sinceHeader++
	return idx
}

func (t *Table) insertItem(pos int, it item) {
	t.items = slices.Insert(t.items, pos, it)
	if t.lastHeader >= pos {
		t.lastHeader++
	}
}

func (t *Table) insertHeader(pos int) {
	t.insertItem(pos, item{kind: itemHeader})
	t.lastHeader = pos
	t.needHeader = false
	t.sinceHeader = 0
}

// columnsChanged requests a new header when the current one is already
// printed for good.
func (t *Table) columnsChanged() {
	if t.lastHeader >= t.flushed {
		return
	}
	if t.lastHeader < 0 {
		t.needHeader = true
		return
	}
	pos := t.firstOpenItem()
	if pos == len(t.items) {
		t.needHeader = true
		return
	}
	t.insertHeader(max(pos, t.flushed))
}

// firstOpenItem returns the index of the first item showing an open
// row, or len(t.items).
func (t *Table) firstOpenItem() int {
	for i := t.flushed; i < len(t.items); i++ {
		if it := t.items[i]; it.kind == itemRow && !t.rows[it.row].closed {
			return i
		}
	}
	return len(t.items)
}

// insertBeforeOpen places a non-row item in front of the open rows.
func (t *Table) insertBeforeOpen(it item) {
	if t.needHeader {
		t.insertHeader(max(t.firstOpenItem(), t.flushed))
	}
	t.insertItem(max(t.firstOpenItem(), t.flushed), it)
}

// column returns the named column, creating it with the defaults and
// opts when it does not exist.
func (t *Table) column(name string, opts []ColumnOption) (*Column, error) {
	if c, ok := t.byName[name]; ok {
		return c, nil
	}
	if err := t.AddColumn(name, opts...); err != nil {
		return nil, err
	}
	return t.byName[name], nil
}

// columnIndex finds a column by name.
func (t *Table) columnIndex(name string) (int, error) {
	for i, c := range t.columns {
		if c.Name == name {
			return i, nil
		}
	}
	return 0, unknownColumn(name, t.columnNames())
}

// writable reports whether row r accepts writes at the current level.
func (t *Table) writable(r int) bool {
	if r >= len(t.rows) {
		return true
	}
	if !t.rows[r].closed || t.level == redraw.Dynamic {
		return true
	}
	t.log.Debug("dropped write to closed row", "row", r, "interactive", int(t.level))
	return false
}

// rowFor returns row r, creating the pending row when r points at it.
func (t *Table) rowFor(r int) *row {
	if r == len(t.rows) {
		t.materialize()
	}
	return t.rows[r]
}

// UpdateOption customizes Update.
type UpdateOption func(*updateSpec)

type updateSpec struct {
	row       int
	weight    float64
	aggregate *string
	color     *string
	column    []ColumnOption
}

// OnRow targets row i instead of the active row. Negative values count
// from the end.
func OnRow(i int) UpdateOption {
	return func(s *updateSpec) { s.row = i }
}

// Weight sets the weight of the value for sum and mean aggregates.
func Weight(w float64) UpdateOption {
	return func(s *updateSpec) { s.weight = w }
}

// Aggregate sets the policy used when the column is created. For an
// existing column it must match the column's policy.
func Aggregate(name string) UpdateOption {
	return func(s *updateSpec) { s.aggregate = &name }
}

// CellColor colors this cell only.
func CellColor(spec string) UpdateOption {
	return func(s *updateSpec) { s.color = &spec }
}

// WithColumn passes options used if the column has to be created.
func WithColumn(opts ...ColumnOption) UpdateOption {
	return func(s *updateSpec) { s.column = append(s.column, opts...) }
}

// Set folds v into the named column of the active row, like Update
// with default options.
func (t *Table) Set(name string, v any) error {
	return t.Update(name, v)
}

// Update folds v into a cell using the column's aggregate policy,
// creating the column if needed. Writes to closed rows are ignored
// below interactivity level 2.
func (t *Table) Update(name string, v any, opts ...UpdateOption) error {
	if t.closed {
		return ErrClosed
	}
	s := updateSpec{row: -1, weight: 1}
	for _, o := range opts {
		o(&s)
	}

	r, err := resolveIndex("row", s.row, t.NumRows())
	if err != nil {
		return err
	}
	var cellColor styles.Color
	if s.color != nil {
		if cellColor, err = styles.ParseColor(*s.color); err != nil {
			return err
		}
	}

	colOpts := s.column
	if s.aggregate != nil {
		p, err := aggregate.ParsePolicy(*s.aggregate)
		if err != nil {
			return err
		}
		if c, ok := t.byName[name]; ok && c.Policy != p {
			return fmt.Errorf("column %q is %s, not %s: %w", name, c.Policy, p, ErrPolicyFixed)
		}
		colOpts = append(slices.Clone(colOpts), ColumnAggregate(*s.aggregate))
	}
	c, err := t.column(name, colOpts)
	if err != nil {
		return err
	}

	if !t.writable(r) {
		return nil
	}
	x := t.rowFor(r).cell(c)
	err = x.add(value.Of(v), s.weight)
	if s.color != nil {
		x.color = cellColor
	}
	t.grow(c, x)
	t.update(false)
	if err != nil {
		return fmt.Errorf("column %q row %d: %w", name, r, err)
	}
	return nil
}

// UpdateFrom applies Update to every entry of values. Columns are
// created in sorted key order.
func (t *Table) UpdateFrom(values map[string]any, opts ...UpdateOption) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := t.Update(k, values[k], opts...); err != nil {
			return err
		}
	}
	return nil
}

// grow widens auto-width columns to fit a new value. A wider column
// needs a new header above the rows still to be printed.
func (t *Table) grow(c *Column, x *cell) {
	if !c.Auto {
		return
	}
	if w := format.Width(x.formatted(t.cfg.Table.DecimalPlaces)); w > c.Width {
		t.log.Debug("column widened", "column", c.Name, "from", c.Width, "to", w)
		c.Width = w
		t.columnsChanged()
	}
}

// Value returns the named column of the active row, or the column fill
// value when the cell was never written.
func (t *Table) Value(name string) value.Value {
	v, _ := t.Get(-1, name)
	return v
}

// Get returns the value at row r and the named column.
func (t *Table) Get(r int, name string) (value.Value, error) {
	i, err := resolveIndex("row", r, t.NumRows())
	if err != nil {
		return value.Absent(), err
	}
	c, ok := t.byName[name]
	if !ok {
		return value.Absent(), unknownColumn(name, t.columnNames())
	}
	return t.valueAt(i, c), nil
}

func (t *Table) valueAt(r int, c *Column) value.Value {
	if r < len(t.rows) {
		if x, ok := t.rows[r].cells[c.Name]; ok && !x.value.IsAbsent() {
			return x.value
		}
	}
	return c.Fill
}

// RowOption customizes NextRow.
type RowOption func(*rowSpec)

type rowSpec struct {
	split     bool
	header    bool
	color     *string
	colColors map[string]string
}

// Split draws a separator line below the finished rows.
func Split() RowOption {
	return func(s *rowSpec) { s.split = true }
}

// Header reprints the header below the finished rows.
func Header() RowOption {
	return func(s *rowSpec) { s.header = true }
}

// RowColor colors the finished active row.
func RowColor(spec string) RowOption {
	return func(s *rowSpec) { s.color = &spec }
}

// RowColumnColor colors one column of the finished active row.
func RowColumnColor(column, spec string) RowOption {
	return func(s *rowSpec) {
		if s.colColors == nil {
			s.colColors = make(map[string]string)
		}
		s.colColors[column] = spec
	}
}

// NextRow finishes the active row and every other open row, prints
// them and starts a new pending active row. Bars owned by the finished
// rows are closed.
func (t *Table) NextRow(opts ...RowOption) error {
	if t.closed {
		return ErrClosed
	}
	var s rowSpec
	for _, o := range opts {
		o(&s)
	}
	var rowColor styles.Color
	if s.color != nil {
		c, err := styles.ParseColor(*s.color)
		if err != nil {
			return err
		}
		rowColor = c
	}
	colColors := make(map[string]styles.Color, len(s.colColors))
	for name, spec := range s.colColors {
		c, err := styles.ParseColor(spec)
		if err != nil {
			return err
		}
		colColors[name] = c
	}

	active := t.rowFor(t.activeRow())
	active.color = active.color.Merge(rowColor)
	if len(colColors) > 0 {
		active.colColors = colColors
	}
	t.closeRows()

	if s.split {
		t.items = append(t.items, item{kind: itemSplit})
	}
	if s.header {
		t.insertHeader(len(t.items))
	}
	t.pending = true
	t.render(true)
	return nil
}

// closeRows closes every open row and the bars they own.
func (t *Table) closeRows() {
	for i, r := range t.rows {
		if r.closed {
			continue
		}
		r.closed = true
		for _, b := range slices.Clone(t.active) {
			if b.owner == i {
				t.log.Debug("closing bar of finished row", "row", i, "bar", b.id)
				b.close(false)
			}
		}
	}
}

// Write prints a message framed inside the table, above the open rows.
func (t *Table) Write(msg ...any) error {
	if t.closed {
		return ErrClosed
	}
	text := fmt.Sprint(msg...)
	for _, line := range strings.Split(text, "\n") {
		t.insertBeforeOpen(item{kind: itemMessage, text: line})
	}
	t.render(true)
	return nil
}

// Close finishes all rows, closes all bars and prints the bottom
// border. A second Close returns ErrClosed.
func (t *Table) Close() error {
	if t.closed {
		return ErrClosed
	}
	for _, b := range slices.Clone(t.active) {
		b.close(false)
	}
	t.closeRows()
	t.pending = false
	t.renderFinal()
	t.closed = true
	return t.err
}

// Redraw rewrites the live part of the screen. Repeated calls without
// changes in between write identical bytes.
func (t *Table) Redraw() error {
	if t.closed {
		return ErrClosed
	}
	if t.dirty || !t.rendered {
		t.render(true)
	}
	t.remember(t.ctrl.Redraw())
	return t.err
}

// update asks for a render after a mutation.
func (t *Table) update(force bool) {
	t.dirty = true
	t.render(force)
}

// render draws a frame unless the last one was less than one refresh
// interval ago. Forced renders always draw.
func (t *Table) render(force bool) {
	now := t.now()
	if !force && t.rendered && now.Sub(t.lastRender) < t.interval {
		t.dirty = true
		return
	}
	f := t.frame(false)
	t.remember(t.ctrl.Render(f))
	t.rendered = true
	t.lastRender = now
	t.dirty = false
}

func (t *Table) renderFinal() {
	f := t.frame(true)
	t.remember(t.ctrl.Render(f))
	t.rendered = true
	t.lastRender = t.now()
	t.dirty = false
}

func (t *Table) remember(err error) {
	if err == nil {
		return
	}
	if t.err == nil {
		t.log.Warnf("writing table output: %v", err)
		t.err = err
	}
}
