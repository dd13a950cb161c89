// Package table implements a live-updating metrics table for terminals.
//
// A [Table] owns columns, an append-only list of rows and any number of
// progress bars. Every mutation updates the store immediately and asks
// for a render; renders are throttled to the configured refresh rate
// except for forced flushes such as [Table.NextRow] and [Table.Close].
//
// # Rows
//
// A fresh table has one pending active row that is created by the first
// write. [Table.NextRow] closes every open row, prints it and leaves a
// new pending row. [Table.AddRows] creates rows up front; they all stay
// open until the next NextRow or Close. Row indices are dense and may be
// negative, counting from the end: -1 is always the active row.
//
// # Interactivity
//
// Level 0 prints each line exactly once and never moves the cursor or
// draws bars. Level 1 keeps one live line at the bottom: the most
// recently advanced bar or the active row. Level 2 redraws everything
// since the last header, so closed rows can still be updated.
//
// # Addressing
//
// [Table.At] selects the cartesian product of a row [Ref] and a column
// [Ref]:
//
//	t.At(table.All(), table.All()).Set(0.0)
//	t.At(table.Index(0), table.All()).Set(2.0)
//	t.At(table.Index(2), table.Index(0)).Set(3.0)
//
// # Progress
//
// Bars are created with [Table.NewBar] or by wrapping a loop:
//
//	seq, err := t.Range(100, table.Description("epoch"))
//	if err != nil {
//		return err
//	}
//	for i := range seq {
//		t.Update("loss", step(i), table.Aggregate("mean"))
//	}
//
// The wrapper closes its bar when the loop ends for any reason,
// including break and panic.
package table
