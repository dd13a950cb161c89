package main

import (
	"context"
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/table"
)

// demoOptions control the pace and size of a demo.
type demoOptions struct {
	seed  uint64
	rows  int
	steps int
	delay time.Duration
	rng   *rand.Rand
}

type demoFunc func(ctx context.Context, t *table.Table, o demoOptions) error

var demos = map[string]demoFunc{
	"training":  demoTraining,
	"selection": demoSelection,
	"bars":      demoBars,
	"messages":  demoMessages,
}

func demoNames() []string {
	return slices.Sorted(maps.Keys(demos))
}

func newDemoCmd() *cobra.Command {
	var o demoOptions

	cmd := &cobra.Command{
		Use:       "demo [name]",
		Short:     "Run a demo table",
		GroupID:   GroupTable,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: demoNames(),
		Long: `Run a demo table with simulated data.

Available demos: ` + strings.Join(demoNames(), ", ") + `. Without a name,
"training" runs.`,
		Example: `  ptable demo                      # Simulated training loop
  ptable demo bars --delay 20ms    # Several progress bars at once
  ptable demo selection -i 0       # Append-only output, e.g. for logs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "training"
			if len(args) == 1 {
				name = args[0]
			}
			run, ok := demos[name]
			if !ok {
				return fmt.Errorf("unknown demo %q: must be one of %s", name, strings.Join(demoNames(), ", "))
			}

			ctx := cmd.Context()
			t, err := newTable(ctx, *cfg)
			if err != nil {
				return err
			}
			o.rng = rand.New(rand.NewPCG(o.seed, o.seed))
			log.FromContext(ctx).Debug("running demo", "name", name, "seed", o.seed, "level", t.Level())

			runErr := run(ctx, t, o)
			if err := t.Close(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().Uint64Var(&o.seed, "seed", 42, "Random seed for simulated values")
	cmd.Flags().IntVarP(&o.rows, "rows", "n", 8, "Number of rows (epochs)")
	cmd.Flags().IntVar(&o.steps, "steps", 25, "Steps per row")
	cmd.Flags().DurationVar(&o.delay, "delay", 40*time.Millisecond, "Pause between steps")

	return cmd
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func demoTraining(ctx context.Context, t *table.Table, o demoOptions) error {
	if err := t.AddColumn("epoch", table.ColumnWidth(5)); err != nil {
		return err
	}
	if err := t.AddColumns([]string{"train loss", "valid loss"}, table.ColumnAggregate("mean")); err != nil {
		return err
	}
	if err := t.AddColumn("best", table.ColumnColor("green")); err != nil {
		return err
	}

	best := math.Inf(1)
	for epoch := range o.rows {
		if err := t.Set("epoch", epoch+1); err != nil {
			return err
		}
		seq, err := t.Range(o.steps, table.Description("train"), table.ShowProgress(true))
		if err != nil {
			return err
		}
		for step := range seq {
			loss := 1/math.Sqrt(float64(epoch*o.steps+step+1)) + o.rng.Float64()*0.1
			if err := t.Update("train loss", loss); err != nil {
				return err
			}
			if err := pause(ctx, o.delay); err != nil {
				return err
			}
		}
		valid := 1/math.Sqrt(float64((epoch+1)*o.steps)) + o.rng.Float64()*0.15
		if err := t.Update("valid loss", valid); err != nil {
			return err
		}
		best = min(best, valid)
		if err := t.Set("best", best); err != nil {
			return err
		}
		if err := t.NextRow(); err != nil {
			return err
		}
	}
	return nil
}

func demoSelection(ctx context.Context, t *table.Table, o demoOptions) error {
	n := max(2, min(o.rows, 6))
	if err := t.AddColumnsN(n); err != nil {
		return err
	}
	if err := t.AddRows(n); err != nil {
		return err
	}
	steps := []struct {
		rows, cols table.Ref
		value      float64
		color      string
	}{
		{table.All(), table.All(), 0, ""},
		{table.Index(0), table.All(), 2, "cyan"},
		{table.All(), table.Index(1), 2, "cyan"},
		{table.Index(-2), table.Index(0), 3, "red bold"},
		{table.From(n / 2), table.From(n / 2), o.rng.Float64(), "dim"},
	}
	for _, s := range steps {
		sel := t.At(s.rows, s.cols)
		if err := sel.Set(s.value); err != nil {
			return err
		}
		if s.color != "" {
			if err := sel.SetColor(s.color); err != nil {
				return err
			}
		}
		if err := pause(ctx, 10*o.delay); err != nil {
			return err
		}
	}
	return nil
}

func demoBars(ctx context.Context, t *table.Table, o demoOptions) error {
	if err := t.AddColumns([]string{"job", "done"}); err != nil {
		return err
	}
	for job := range o.rows {
		if err := t.Set("job", job); err != nil {
			return err
		}
		embedded, err := t.NewBar(table.Total(int64(o.steps)), table.AtRow(-1), table.BarStyleEmbed("cdots"))
		if err != nil {
			return err
		}
		below, err := t.NewBar(table.Total(int64(2*o.steps)), table.Embedded(false),
			table.BarStyle("full"), table.Description("io"), table.ShowPercents(true), table.ShowETA(true))
		if err != nil {
			return err
		}
		spinner, err := t.NewBar(table.Embedded(false), table.BarStyle("dots"), table.Description("wait"))
		if err != nil {
			return err
		}
		for step := range o.steps {
			embedded.Advance(1)
			below.Advance(2)
			if o.rng.IntN(3) == 0 {
				spinner.Advance(1)
			}
			if err := t.Set("done", step+1); err != nil {
				return err
			}
			if err := pause(ctx, o.delay); err != nil {
				return err
			}
		}
		below.Close()
		spinner.Close()
		if err := t.NextRow(); err != nil {
			return err
		}
	}
	return nil
}

func demoMessages(ctx context.Context, t *table.Table, o demoOptions) error {
	if err := t.AddColumn("step"); err != nil {
		return err
	}
	if err := t.AddColumn("score", table.ColumnAggregate("max"), table.ColumnAlign("right")); err != nil {
		return err
	}
	for i := range o.rows {
		score := o.rng.Float64()
		if err := t.Set("step", i); err != nil {
			return err
		}
		if err := t.Update("score", score); err != nil {
			return err
		}
		var opts []table.RowOption
		if score > 0.8 {
			if err := t.Write(fmt.Sprintf("new high score at step %d", i)); err != nil {
				return err
			}
			opts = append(opts, table.RowColor("green bold"))
		}
		if i%4 == 3 {
			opts = append(opts, table.Split())
		}
		if err := t.NextRow(opts...); err != nil {
			return err
		}
		if err := pause(ctx, 5*o.delay); err != nil {
			return err
		}
	}
	return nil
}
