package table

import (
	"fmt"

	"github.com/raphi011/ptable/internal/storage"
)

// ToList returns every written row as plain values in column order.
// The pending active row is not included.
func (t *Table) ToList() [][]any {
	out := make([][]any, len(t.rows))
	for r := range t.rows {
		out[r] = make([]any, len(t.columns))
		for i, c := range t.columns {
			out[r][i] = t.valueAt(r, c).Any()
		}
	}
	return out
}

// Records returns every written row keyed by column name.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.rows))
	for r := range t.rows {
		rec := make(map[string]any, len(t.columns))
		for _, c := range t.columns {
			rec[c.Name] = t.valueAt(r, c).Any()
		}
		out[r] = rec
	}
	return out
}

// Sheet returns the table as formatted text, the way cells are drawn.
func (t *Table) Sheet() storage.Sheet {
	s := storage.Sheet{Header: t.columnNames(), Rows: make([][]string, len(t.rows))}
	for r := range t.rows {
		s.Rows[r] = make([]string, len(t.columns))
		for i, c := range t.columns {
			s.Rows[r][i] = t.valueAt(r, c).Format(t.cfg.Table.DecimalPlaces)
		}
	}
	return s
}

// Export writes the table to path, as CSV when the extension is .csv
// and as a JSON list of records otherwise.
func (t *Table) Export(path string) error {
	var err error
	switch storage.FormatFromPath(path) {
	case storage.FormatCSV:
		err = storage.SaveCSV(path, t.Sheet())
	default:
		err = storage.SaveJSON(path, t.Records())
	}
	if err != nil {
		return fmt.Errorf("export table: %w", err)
	}
	t.log.Debug("table exported", "path", path, "rows", len(t.rows))
	return nil
}
