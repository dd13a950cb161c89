package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/aggregate"
	runner "github.com/raphi011/ptable/internal/cmd"
	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/table"
)

func newWatchCmd() *cobra.Command {
	var (
		rowKey string
		policy string
		dir    string
	)

	cmd := &cobra.Command{
		Use:     "watch -- command [args...]",
		Short:   "Tabulate metrics printed by a command",
		GroupID: GroupTable,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run a command and turn the metrics it prints into a live table.

A line made only of key=value fields updates the table. Other lines are
printed inside the table as messages. Numbers are parsed so aggregates
work on them.

Without --row-key every metrics line is one row. With --row-key, lines
update the active row and a new row starts when the key's value
changes.`,
		Example: `  ptable watch -- python train.py
  ptable watch --row-key epoch --aggregate mean -- ./train.sh
  ptable watch -i 0 -- make bench > bench.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := newTable(ctx, *cfg)
			if err != nil {
				return err
			}
			s, err := newMetricsSink(t, log.FromContext(ctx), rowKey, policy)
			if err != nil {
				_ = t.Close()
				return err
			}

			log.FromContext(ctx).Debug("watching command", "command", args[0], "args", args[1:], "rowKey", rowKey)
			runErr := runner.StreamContext(ctx, dir, args[0], args[1:], s.line)
			if err := t.Close(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&rowKey, "row-key", "k", "", "Start a new row when this key changes")
	cmd.Flags().StringVarP(&policy, "aggregate", "a", "", "Aggregate for new columns (sum, mean, max, min)")
	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Run the command in this directory")

	return cmd
}

// metricsSink feeds command output into a table.
type metricsSink struct {
	t      *table.Table
	log    *log.Logger
	rowKey string
	opts   []table.UpdateOption

	last string
	seen bool
}

func newMetricsSink(t *table.Table, l *log.Logger, rowKey, policy string) (*metricsSink, error) {
	s := &metricsSink{t: t, log: l, rowKey: rowKey}
	if policy != "" {
		s.opts = append(s.opts, table.WithColumn(table.ColumnAggregate(policy)))
	}
	if rowKey != "" {
		if err := t.AddColumn(rowKey); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// line handles one line of command output.
func (s *metricsSink) line(line string) error {
	raw, ok := parseMetrics(line)
	if !ok {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		return s.t.Write(line)
	}

	if s.rowKey == "" {
		if err := s.update(raw); err != nil {
			return err
		}
		return s.t.NextRow()
	}

	if key, ok := raw[s.rowKey]; ok {
		if s.seen && key != s.last {
			if err := s.t.NextRow(); err != nil {
				return err
			}
		}
		s.last, s.seen = key, true
		delete(raw, s.rowKey)
		if err := s.t.At(table.Index(-1), table.Name(s.rowKey)).Set(parseCell(key)); err != nil {
			return err
		}
	}
	return s.update(raw)
}

// update folds one line of metrics into the active row. The aggregate
// only applies to numbers; text that lands in a numeric column is
// skipped with a warning.
func (s *metricsSink) update(raw map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		v := parseCell(raw[k])
		opts := s.opts
		if _, text := v.(string); text {
			opts = nil
		}
		err := s.t.Update(k, v, opts...)
		if errors.Is(err, aggregate.ErrNotNumeric) {
			s.log.Warnf("skipping %s=%q: %v", k, raw[k], err)
			continue
		}
		if err != nil {
			return fmt.Errorf("update metrics: %w", err)
		}
	}
	return nil
}

// parseMetrics splits a line of whitespace separated key=value fields.
// It reports false unless every field is such a pair.
func parseMetrics(line string) (map[string]string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, false
		}
		m[k] = strings.Trim(v, `",`)
	}
	return m, true
}
