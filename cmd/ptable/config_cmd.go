package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/ptable/internal/config"
	"github.com/raphi011/ptable/internal/log"
	"github.com/raphi011/ptable/internal/output"
	"github.com/raphi011/ptable/internal/storage"
	"github.com/raphi011/ptable/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage ptable configuration.

Global config: ~/.config/ptable/config.toml
Local config:  .ptable.toml (in the working directory)

PTABLE_INTERACTIVE overrides the interactivity level of both.`,
		Example: `  ptable config init          # Create default global config
  ptable config init --local  # Create local config
  ptable config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates global config at ~/.config/ptable/config.toml.
With --local, creates .ptable.toml in the current directory.

An existing file is kept unless -f is given or you confirm the
overwrite.`,
		Example: `  ptable config init           # Create global config
  ptable config init --local   # Create local config
  ptable config init -f        # Overwrite existing config
  ptable config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			if local {
				return initLocalConfig(out, workDir, force, stdout)
			}
			return initGlobalConfig(out, force, stdout)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create .ptable.toml instead of global config")

	return cmd
}

func initGlobalConfig(out *output.Printer, force, stdout bool) error {
	if stdout {
		out.Print(config.DefaultConfig())
		return nil
	}

	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	ok, err := mayOverwrite(path, force)
	if err != nil || !ok {
		return err
	}
	if path, err = config.Init(true); err != nil {
		return err
	}
	out.Printf("Created config file: %s\n", path)
	return nil
}

func initLocalConfig(out *output.Printer, dir string, force, stdout bool) error {
	content := config.DefaultLocalConfig()
	if stdout {
		out.Print(content)
		return nil
	}

	path := filepath.Join(dir, config.LocalConfigFileName)
	ok, err := mayOverwrite(path, force)
	if err != nil || !ok {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}

	out.Printf("Created local config: %s\n", path)
	return nil
}

// mayOverwrite reports whether path may be written. An existing file is
// only replaced with force or after the user agrees on a terminal.
func mayOverwrite(path string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
	}
	answer, err := prompt.Overwrite(path)
	if err != nil {
		return false, err
	}
	return answer.Yes, nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Prints the global config merged with the local .ptable.toml and the
command line flags, as TOML or JSON.`,
		Example: `  ptable config show
  ptable config show --json
  ptable config show -i 0 --table-style ascii`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if jsonOutput {
				return storage.WriteJSON(out.Writer(), cfg)
			}

			global := configPath
			if global == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				global = p
			}
			if _, err := os.Stat(global); errors.Is(err, os.ErrNotExist) {
				global += " (none)"
			}
			local := filepath.Join(workDir, config.LocalConfigFileName)
			if _, err := os.Stat(local); errors.Is(err, os.ErrNotExist) {
				local = "(none)"
			}
			log.FromContext(ctx).Debug("showing config", "global", global, "local", local)

			out.Printf("# Global config: %s\n", global)
			out.Printf("# Local config:  %s\n\n", local)
			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
