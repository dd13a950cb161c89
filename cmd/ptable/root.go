package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/config"
	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/output"
	"github.com/raphi011/ptable/internal/ui/styles"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string
	overrides  tableFlags

	// Shared state injected into commands
	cfg     *config.Config
	workDir string
)

// Command group IDs for organizing help output
const (
	GroupTable  = "table"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ptable",
	Short: "Live-updating progress tables for the terminal",
	Long: `ptable draws tables of metrics that update in place while a job runs,
with progress bars embedded in rows or drawn below them.

Output adapts to where it goes: full redraws on a terminal, a single
live line, or append-only lines for logs and pipes (see --interactive).`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		ctx := cmd.Context()
		logger := log.New(os.Stderr, verbose, quiet)
		cmd.SetContext(log.WithLogger(ctx, logger))

		loaded, err := config.Load(configPath, workDir)
		if err != nil {
			return err
		}
		loaded, err = overrides.apply(cmd, loaded)
		if err != nil {
			return err
		}
		cfg = &loaded
		if err := styles.Init(cfg.Theme); err != nil {
			return err
		}
		logger.Debug("config loaded", "path", configPath, "interactive", cfg.Interactive, "theme", cfg.Theme)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	var err error
	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ptable: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for the table)
	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Error: ")+err.Error())
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'ptable -h' for help")
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show diagnostics on stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/ptable/config.toml)")
	overrides.register(rootCmd)

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupTable, Title: "Table Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newStylesCmd())

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}
