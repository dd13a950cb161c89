package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/config"
	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/output"
	"github.com/raphi011/ptable/internal/table"
)

// tableFlags override config values for a single run.
type tableFlags struct {
	interactive int
	style       string
	refreshRate float64
	color       string
}

func (f *tableFlags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.IntVarP(&f.interactive, "interactive", "i", config.InteractiveAuto, "Interactivity level: 0, 1 or 2 (-1 reads PTABLE_INTERACTIVE)")
	fs.StringVar(&f.style, "table-style", "", "Border style (see 'ptable styles')")
	fs.Float64Var(&f.refreshRate, "refresh-rate", 0, "Maximum redraws per second")
	fs.StringVar(&f.color, "color", "", "Color output: auto, always or never")
}

// apply copies the flags the user set onto c and validates the result.
func (f *tableFlags) apply(cmd *cobra.Command, c config.Config) (config.Config, error) {
	fs := cmd.Flags()
	if fs.Changed("interactive") {
		c.Interactive = f.interactive
	}
	if fs.Changed("table-style") {
		c.Table.Style = f.style
	}
	if fs.Changed("refresh-rate") {
		c.RefreshRate = f.refreshRate
	}
	if fs.Changed("color") {
		c.Color = f.color
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid flags: %w", err)
	}
	return c, nil
}

// newTable creates a table on the context's printer using the loaded
// config. extra writers receive a copy of everything drawn.
func newTable(ctx context.Context, c config.Config, extra ...table.Option) (*table.Table, error) {
	opts := []table.Option{
		table.WithOutput(output.FromContext(ctx).Writer()),
		table.WithLogger(log.FromContext(ctx)),
	}
	return table.New(c, append(opts, extra...)...)
}

// parseCell turns text into an int, a float or the text itself. Empty
// text is an absent value.
func parseCell(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
