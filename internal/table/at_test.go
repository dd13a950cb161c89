package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/ptable/internal/value"
)

func TestSelectionBroadcast(t *testing.T) {
	t.Parallel()

	tb, _ := newTestTable(t, 0)
	mustNil(t, tb.AddColumnsN(4))
	mustNil(t, tb.AddRows(4))
	mustNil(t, tb.At(All(), All()).Set(0.0))
	mustNil(t, tb.At(Index(0), All()).Set(2.0))
	mustNil(t, tb.At(Index(2), Index(0)).Set(3.0))

	got, err := tb.At(All(), All()).Values()
	mustNil(t, err)
	f := value.Float
	want := [][]value.Value{
		{f(2), f(2), f(2), f(2)},
		{f(0), f(0), f(0), f(0)},
		{f(3), f(0), f(0), f(0)},
		{f(0), f(0), f(0), f(0)},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(value.Value{})); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionRefs(t *testing.T) {
	t.Parallel()

	tb, _ := newTestTable(t, 0)
	mustNil(t, tb.AddColumns([]string{"a", "b", "c"}))
	mustNil(t, tb.AddRows(5))
	for r := range 5 {
		mustNil(t, tb.At(Index(r), All()).Set(r))
	}

	tests := []struct {
		name       string
		rows, cols Ref
		want       [][]int64
	}{
		{name: "negative index", rows: Index(-1), cols: Name("b"), want: [][]int64{{4}}},
		{name: "span", rows: Span(1, 3), cols: Index(0), want: [][]int64{{1}, {2}}},
		{name: "negative span", rows: Span(-2, 5), cols: Span(0, -1), want: [][]int64{{3, 3}, {4, 4}}},
		{name: "open span", rows: From(3), cols: From(2), want: [][]int64{{3}, {4}}},
		{name: "clamped span", rows: Span(-10, 1), cols: Span(2, 10), want: [][]int64{{0}}},
		{name: "empty span", rows: Span(3, 1), cols: All(), want: [][]int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vals, err := tb.At(tt.rows, tt.cols).Values()
			mustNil(t, err)
			got := make([][]int64, len(vals))
			for i, row := range vals {
				got[i] = make([]int64, len(row))
				for j, v := range row {
					got[i][j] = v.Int64()
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("At(%s, %s) mismatch (-want +got):\n%s", tt.rows, tt.cols, diff)
			}
		})
	}
}

func TestSelectionErrors(t *testing.T) {
	t.Parallel()

	tb, _ := newTestTable(t, 0)
	mustNil(t, tb.AddColumns([]string{"a", "b"}))
	mustNil(t, tb.AddRows(2))

	tests := []struct {
		name       string
		rows, cols Ref
		want       error
	}{
		{name: "row out of range", rows: Index(2), cols: All(), want: ErrOutOfRange},
		{name: "negative row out of range", rows: Index(-3), cols: All(), want: ErrOutOfRange},
		{name: "column out of range", rows: All(), cols: Index(5), want: ErrOutOfRange},
		{name: "unknown column", rows: All(), cols: Name("c"), want: ErrUnknownColumn},
		{name: "row by name", rows: Name("a"), cols: All(), want: ErrInvalidRef},
	}
	for _, tt := range tests {
		if err := tb.At(tt.rows, tt.cols).Set(1); !errors.Is(err, tt.want) {
			t.Errorf("%s: Set() error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestSelectionColors(t *testing.T) {
	t.Parallel()

	tb, _ := newTestTable(t, 0)
	mustNil(t, tb.AddColumns([]string{"a", "b"}))
	mustNil(t, tb.AddRows(2))
	mustNil(t, tb.At(All(), All()).Set(1))
	mustNil(t, tb.At(Index(0), Name("b")).SetColor("red bold"))
	mustNil(t, tb.At(Index(1), All()).SetColor("bg_blue"))

	got, err := tb.At(All(), All()).Colors()
	mustNil(t, err)
	want := [][]string{
		{"", "red bold"},
		{"bg_blue", "bg_blue"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	if err := tb.At(All(), All()).SetColor("mauve"); err == nil {
		t.Error("SetColor with an unknown color succeeded")
	}
}

func TestSelectionSetBypassesAggregate(t *testing.T) {
	t.Parallel()

	tb, _ := newTestTable(t, 0)
	mustNil(t, tb.Update("loss", 4, Aggregate("mean")))
	mustNil(t, tb.At(Index(-1), Name("loss")).Set(1))
	mustNil(t, tb.Update("loss", 3, Aggregate("mean")))

	if got := tb.Value("loss").Float64(); got != 2 {
		t.Errorf("loss = %v, want mean of 1 and 3", got)
	}
}

func TestSelectionSkipsClosedRowsBelowDynamic(t *testing.T) {
	t.Parallel()

	tb, _ := newTestTable(t, 1)
	mustNil(t, tb.Set("a", 1))
	mustNil(t, tb.NextRow())
	mustNil(t, tb.Set("a", 2))
	mustNil(t, tb.At(All(), All()).Set(9))

	vals, err := tb.At(All(), Name("a")).Values()
	mustNil(t, err)
	if got := []int64{vals[0][0].Int64(), vals[1][0].Int64()}; !cmp.Equal(got, []int64{1, 9}) {
		t.Errorf("values = %v, want [1 9]", got)
	}
}
