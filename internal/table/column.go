package table

import (
	"fmt"

	"github.com/raphi011/ptable/internal/aggregate"
	"github.com/raphi011/ptable/internal/format"
	"github.com/raphi011/ptable/internal/ui/styles"
	"github.com/raphi011/ptable/internal/value"
)

// Column describes one table column.
type Column struct {
	Name   string
	Width  int // content width, excluding the padding around each cell
	Auto   bool
	Align  format.Alignment
	Color  styles.Color
	Policy aggregate.Policy
	Fill   value.Value // shown by Get for cells that were never written
}

// ColumnOption customizes a column at creation.
type ColumnOption func(*columnSpec)

type columnSpec struct {
	width     *int
	align     *string
	color     *string
	aggregate *string
	fill      any
}

// ColumnWidth sets the content width. Zero makes the column as wide as
// its name and lets it grow with its values.
func ColumnWidth(n int) ColumnOption {
	return func(s *columnSpec) { s.width = &n }
}

// ColumnAlign sets the alignment: "left", "center" or "right".
func ColumnAlign(name string) ColumnOption {
	return func(s *columnSpec) { s.align = &name }
}

// ColumnColor sets the color spec of the header and every cell.
func ColumnColor(spec string) ColumnOption {
	return func(s *columnSpec) { s.color = &spec }
}

// ColumnAggregate sets the aggregate policy: "none", "sum", "mean",
// "min" or "max".
func ColumnAggregate(name string) ColumnOption {
	return func(s *columnSpec) { s.aggregate = &name }
}

// ColumnFill sets the value Get reports for unwritten cells.
func ColumnFill(v any) ColumnOption {
	return func(s *columnSpec) { s.fill = v }
}

// columnDefaults are resolved once from the configuration.
type columnDefaults struct {
	width  int
	align  format.Alignment
	color  styles.Color
	policy aggregate.Policy
}

func (d columnDefaults) build(name string, opts []ColumnOption) (*Column, error) {
	var s columnSpec
	for _, o := range opts {
		o(&s)
	}

	c := &Column{
		Name:   name,
		Width:  max(d.width, format.Width(name)),
		Align:  d.align,
		Color:  d.color,
		Policy: d.policy,
		Fill:   value.Of(s.fill),
	}
	if s.width != nil {
		switch {
		case *s.width < 0:
			return nil, fmt.Errorf("column %q: negative width %d", name, *s.width)
		case *s.width == 0:
			c.Width, c.Auto = format.Width(name), true
		default:
			c.Width = *s.width
		}
	}
	if s.align != nil {
		a, err := format.ParseAlignment(*s.align)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		c.Align = a
	}
	if s.color != nil {
		col, err := styles.ParseColor(*s.color)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		c.Color = col
	}
	if s.aggregate != nil {
		p, err := aggregate.ParsePolicy(*s.aggregate)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		c.Policy = p
	}
	return c, nil
}

// cell is one (row, column) slot.
type cell struct {
	acc   *aggregate.Accumulator
	value value.Value
	color styles.Color

	text   string // value formatted for display
	cached bool
}

func newCell(p aggregate.Policy) *cell {
	return &cell{acc: aggregate.New(p)}
}

// add folds v into the cell. On ErrNotNumeric the cell is unchanged; on
// ErrZeroWeight it is left absent.
func (c *cell) add(v value.Value, weight float64) error {
	if err := c.acc.Add(v, weight); err != nil {
		return err
	}
	res, err := c.acc.Resolve()
	c.store(res)
	return err
}

// set replaces the cell's value and discards accumulated state.
func (c *cell) set(v value.Value) {
	c.acc.Reset()
	if v.IsNumeric() || c.acc.Policy() == aggregate.None {
		_ = c.acc.Add(v, 1)
	}
	c.store(v)
}

func (c *cell) store(v value.Value) {
	c.value = v
	c.cached = false
}

func (c *cell) formatted(decimals int) string {
	if !c.cached {
		c.text = c.value.Format(decimals)
		c.cached = true
	}
	return c.text
}

// row holds the cells of one table row by column name.
type row struct {
	cells     map[string]*cell
	color     styles.Color
	colColors map[string]styles.Color
	closed    bool
}

func newRow() *row {
	return &row{cells: make(map[string]*cell)}
}

func (r *row) cell(c *Column) *cell {
	if x, ok := r.cells[c.Name]; ok {
		return x
	}
	x := newCell(c.Policy)
	r.cells[c.Name] = x
	return x
}

// colorFor layers column, row and cell colors, most specific last.
func (r *row) colorFor(c *Column, base styles.Color) styles.Color {
	out := c.Color.Merge(base).Merge(r.color).Merge(r.colColors[c.Name])
	if x, ok := r.cells[c.Name]; ok {
		out = out.Merge(x.color)
	}
	return out
}
