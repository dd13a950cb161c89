package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/output"
	"github.com/raphi011/ptable/internal/storage"
	"github.com/raphi011/ptable/internal/table"
)

func newRenderCmd() *cobra.Command {
	var (
		exportPath string
		copyOutput bool
		widths     []int
	)

	cmd := &cobra.Command{
		Use:     "render [file]",
		Short:   "Render a CSV file as a table",
		GroupID: GroupTable,
		Args:    cobra.MaximumNArgs(1),
		Long: `Render a CSV file as a table.

The first record is the header. Each following record becomes a row.
Numbers are parsed so the table formats them like live values. Reads
stdin when no file is given or the file is "-".

The table is printed append-only, regardless of --interactive.`,
		Example: `  ptable render metrics.csv
  ptable render metrics.csv --table-style double
  cat metrics.csv | ptable render --export metrics.json
  ptable render metrics.csv --copy       # Also copy the table to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			sheet, err := readSheet(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			l.Debug("read sheet", "columns", len(sheet.Header), "rows", len(sheet.Rows))

			c := *cfg
			c.Interactive = 0

			var copied bytes.Buffer
			var extra []table.Option
			if copyOutput {
				extra = append(extra, table.WithOutput(output.FromContext(ctx).Writer(), &copied))
			}
			t, err := newTable(ctx, c, extra...)
			if err != nil {
				return err
			}
			if err := fillTable(t, sheet, widths); err != nil {
				_ = t.Close()
				return err
			}
			if exportPath != "" {
				if err := t.Export(exportPath); err != nil {
					_ = t.Close()
					return err
				}
				l.Printf("Exported %d rows to %s\n", len(sheet.Rows), exportPath)
			}
			if err := t.Close(); err != nil {
				return err
			}

			if copyOutput {
				if err := clipboard.WriteAll(copied.String()); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				l.Printf("Copied table to clipboard\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&exportPath, "export", "o", "", "Also export the rows to a .csv or .json file")
	cmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the rendered table to the clipboard")
	cmd.Flags().IntSliceVarP(&widths, "width", "w", nil, "Fixed column widths, in header order")

	return cmd
}

// readSheet reads CSV from the named file, or from stdin.
func readSheet(stdin io.Reader, args []string) (storage.Sheet, error) {
	if len(args) == 0 || args[0] == "-" {
		sheet, err := storage.ReadCSV(stdin)
		if err != nil {
			return sheet, fmt.Errorf("read stdin: %w", err)
		}
		return sheet, nil
	}
	return storage.LoadCSV(args[0])
}

// fillTable adds the sheet's header as columns and each record as a
// finished row. Extra fields get columns named by position.
func fillTable(t *table.Table, sheet storage.Sheet, widths []int) error {
	for i, name := range sheet.Header {
		var opts []table.ColumnOption
		if i < len(widths) && widths[i] > 0 {
			opts = append(opts, table.ColumnWidth(widths[i]))
		}
		if err := t.AddColumn(name, opts...); err != nil {
			return err
		}
	}
	for _, record := range sheet.Rows {
		values := make([]any, len(record))
		for i, s := range record {
			values[i] = parseCell(s)
		}
		if err := t.AddRow(values...); err != nil {
			return err
		}
		if err := t.NextRow(); err != nil {
			return err
		}
	}
	return nil
}
