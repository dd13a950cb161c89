package table

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/ptable/internal/storage"
)

func newExportTable(t *testing.T) *Table {
	t.Helper()
	tb, _ := newTestTable(t, 0)
	mustNil(t, tb.AddColumns([]string{"epoch", "loss", "note"}))
	mustNil(t, tb.AddRow(1, 0.5, "warmup"))
	mustNil(t, tb.NextRow())
	mustNil(t, tb.AddRow(2, 0.25))
	return tb
}

func TestToListAndRecords(t *testing.T) {
	t.Parallel()

	tb := newExportTable(t)

	wantList := [][]any{
		{int64(1), 0.5, "warmup"},
		{int64(2), 0.25, nil},
	}
	if diff := cmp.Diff(wantList, tb.ToList()); diff != "" {
		t.Errorf("ToList() mismatch (-want +got):\n%s", diff)
	}

	wantRecords := []map[string]any{
		{"epoch": int64(1), "loss": 0.5, "note": "warmup"},
		{"epoch": int64(2), "loss": 0.25, "note": nil},
	}
	if diff := cmp.Diff(wantRecords, tb.Records()); diff != "" {
		t.Errorf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	tb := newExportTable(t)
	path := filepath.Join(t.TempDir(), "out", "metrics.csv")
	mustNil(t, tb.Export(path))

	got, err := storage.LoadCSV(path)
	mustNil(t, err)
	want := storage.Sheet{
		Header: []string{"epoch", "loss", "note"},
		Rows: [][]string{
			{"1", "0.5000", "warmup"},
			{"2", "0.2500", ""},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	tb := newExportTable(t)
	path := filepath.Join(t.TempDir(), "metrics.json")
	mustNil(t, tb.Export(path))

	var got []map[string]any
	mustNil(t, storage.LoadJSON(path, &got))
	want := []map[string]any{
		{"epoch": 1.0, "loss": 0.5, "note": "warmup"},
		{"epoch": 2.0, "loss": 0.25, "note": nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported JSON mismatch (-want +got):\n%s", diff)
	}
}
