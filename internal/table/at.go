package table

import (
	"fmt"

	"github.com/raphi011/ptable/internal/ui/styles"
	"github.com/raphi011/ptable/internal/value"
)

// Selection is the cartesian product of a row and a column reference.
// References are resolved on every call, so a selection made before
// rows are added sees the new rows.
type Selection struct {
	t          *Table
	rows, cols Ref
}

// At selects cells by row and column. Columns may be addressed by name
// or by position.
func (t *Table) At(rows, cols Ref) *Selection {
	return &Selection{t: t, rows: rows, cols: cols}
}

type position struct {
	row int
	col *Column
}

func (s *Selection) resolve() ([]position, error) {
	t := s.t
	rs, err := s.rows.positions("row", t.NumRows(), nil)
	if err != nil {
		return nil, err
	}
	cs, err := s.cols.positions("column", len(t.columns), t.columnIndex)
	if err != nil {
		return nil, err
	}
	out := make([]position, 0, len(rs)*len(cs))
	for _, r := range rs {
		for _, c := range cs {
			out = append(out, position{row: r, col: t.columns[c]})
		}
	}
	return out, nil
}

// Set replaces every selected cell with v, bypassing aggregation.
// Closed rows are skipped below interactivity level 2.
func (s *Selection) Set(v any) error {
	return s.each(func(x *cell, c *Column) {
		x.set(value.Of(v))
		s.t.grow(c, x)
	})
}

// SetColor colors every selected cell. An empty spec clears the color.
func (s *Selection) SetColor(spec string) error {
	col, err := styles.ParseColor(spec)
	if err != nil {
		return err
	}
	return s.each(func(x *cell, _ *Column) { x.color = col })
}

func (s *Selection) each(fn func(*cell, *Column)) error {
	t := s.t
	if t.closed {
		return ErrClosed
	}
	ps, err := s.resolve()
	if err != nil {
		return fmt.Errorf("at [%s, %s]: %w", s.rows, s.cols, err)
	}
	for _, p := range ps {
		if !t.writable(p.row) {
			continue
		}
		fn(t.rowFor(p.row).cell(p.col), p.col)
	}
	if len(ps) > 0 {
		t.update(false)
	}
	return nil
}

// Values returns the selected values row by row. Unwritten cells hold
// the column fill value.
func (s *Selection) Values() ([][]value.Value, error) {
	return collect(s, func(r int, c *Column) value.Value { return s.t.valueAt(r, c) })
}

// Colors returns the color spec of each selected cell as written with
// CellColor or SetColor.
func (s *Selection) Colors() ([][]string, error) {
	return collect(s, func(r int, c *Column) string {
		if r >= len(s.t.rows) {
			return ""
		}
		if x, ok := s.t.rows[r].cells[c.Name]; ok {
			return x.color.String()
		}
		return ""
	})
}

func collect[T any](s *Selection, get func(int, *Column) T) ([][]T, error) {
	rs, err := s.rows.positions("row", s.t.NumRows(), nil)
	if err != nil {
		return nil, err
	}
	cs, err := s.cols.positions("column", len(s.t.columns), s.t.columnIndex)
	if err != nil {
		return nil, err
	}
	out := make([][]T, len(rs))
	for i, r := range rs {
		out[i] = make([]T, len(cs))
		for j, c := range cs {
			out[i][j] = get(r, s.t.columns[c])
		}
	}
	return out, nil
}
