package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Interactive != InteractiveAuto {
		t.Errorf("Interactive = %d, want %d", cfg.Interactive, InteractiveAuto)
	}
	if cfg.Table.Style != "round" {
		t.Errorf("Table.Style = %q, want %q", cfg.Table.Style, "round")
	}
	if cfg.Table.DecimalPlaces != 4 {
		t.Errorf("Table.DecimalPlaces = %d, want 4", cfg.Table.DecimalPlaces)
	}
	if cfg.Column.Width != 8 {
		t.Errorf("Column.Width = %d, want 8", cfg.Column.Width)
	}
	if cfg.Pbar.StyleEmbed != "cdots" {
		t.Errorf("Pbar.StyleEmbed = %q, want %q", cfg.Pbar.StyleEmbed, "cdots")
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(DefaultConfig()))
	if err != nil {
		t.Fatalf("Parse(DefaultConfig()) = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("template differs from Default() (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, c Config)
		wantErr string
	}{
		{
			name:  "overrides keep other defaults",
			input: "interactive = 0\n[table]\nstyle = \"double\"\n",
			check: func(t *testing.T, c Config) {
				if c.Interactive != 0 {
					t.Errorf("Interactive = %d, want 0", c.Interactive)
				}
				if c.Table.Style != "double" {
					t.Errorf("Table.Style = %q, want %q", c.Table.Style, "double")
				}
				if c.Table.DecimalPlaces != 4 {
					t.Errorf("Table.DecimalPlaces = %d, want 4", c.Table.DecimalPlaces)
				}
			},
		},
		{
			name:  "bar style with colors",
			input: "[pbar]\nstyle = \"dots red lightblack\"\n",
			check: func(t *testing.T, c Config) {
				if c.Pbar.Style != "dots red lightblack" {
					t.Errorf("Pbar.Style = %q", c.Pbar.Style)
				}
			},
		},
		{name: "bad toml", input: "interactive = ", wantErr: "failed to parse config"},
		{name: "interactive out of range", input: "interactive = 3", wantErr: "invalid interactivity level"},
		{name: "zero refresh rate", input: "refresh_rate = 0", wantErr: "refresh_rate"},
		{name: "unknown color mode", input: `color = "sometimes"`, wantErr: `invalid color "sometimes"`},
		{name: "unknown theme", input: `theme = "solarized"`, wantErr: "invalid theme"},
		{name: "unknown table style", input: "[table]\nstyle = \"rnd\"\n", wantErr: "invalid table.style"},
		{name: "negative decimals", input: "[table]\ndecimal_places = -1\n", wantErr: "decimal_places"},
		{name: "unknown alignment", input: "[column]\nalignment = \"middle\"\n", wantErr: "column.alignment"},
		{name: "unknown aggregate", input: "[column]\naggregate = \"median\"\n", wantErr: "column.aggregate"},
		{name: "zero width", input: "[column]\nwidth = 0\n", wantErr: "column.width"},
		{name: "unknown bar word", input: "[pbar]\nstyle = \"sqare\"\n", wantErr: "invalid pbar.style"},
		{name: "unknown bar color", input: "[pbar]\ncolor = \"purple\"\n", wantErr: "pbar.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Parse() error = nil, want containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Parse() error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("Load() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("global then local", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		global := filepath.Join(dir, "config.toml")
		writeFile(t, global, "refresh_rate = 5\n[table]\nstyle = \"bold\"\n")
		writeFile(t, filepath.Join(dir, LocalConfigFileName), "[table]\nstyle = \"ascii\"\n[column]\nwidth = 12\n")

		cfg, err := Load(global, dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.RefreshRate != 5 {
			t.Errorf("RefreshRate = %v, want 5", cfg.RefreshRate)
		}
		if cfg.Table.Style != "ascii" {
			t.Errorf("Table.Style = %q, want %q", cfg.Table.Style, "ascii")
		}
		if cfg.Column.Width != 12 {
			t.Errorf("Column.Width = %d, want 12", cfg.Column.Width)
		}
	})

	t.Run("invalid global reports path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "interactive = 7\n")
		_, err := Load(path, "")
		if err == nil || !strings.Contains(err.Error(), path) {
			t.Errorf("Load() error = %v, want mention of %s", err, path)
		}
	})

	t.Run("invalid local is rejected after merge", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, LocalConfigFileName), "[column]\naggregate = \"avg\"\n")
		_, err := Load(filepath.Join(dir, "missing.toml"), dir)
		if err == nil || !strings.Contains(err.Error(), LocalConfigFileName) {
			t.Errorf("Load() error = %v, want mention of %s", err, LocalConfigFileName)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	env := func(kv map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := kv[k]
			return v, ok
		}
	}

	tests := []struct {
		name    string
		level   int
		lookup  func(string) (string, bool)
		want    int
		wantErr bool
	}{
		{name: "auto without env", level: InteractiveAuto, lookup: env(nil), want: DefaultInteractive},
		{name: "auto with nil lookup", level: InteractiveAuto, want: DefaultInteractive},
		{name: "auto reads env", level: InteractiveAuto, lookup: env(map[string]string{InteractiveEnv: "0"}), want: 0},
		{name: "env with spaces", level: InteractiveAuto, lookup: env(map[string]string{InteractiveEnv: " 1 "}), want: 1},
		{name: "empty env ignored", level: InteractiveAuto, lookup: env(map[string]string{InteractiveEnv: ""}), want: DefaultInteractive},
		{name: "explicit wins over env", level: 1, lookup: env(map[string]string{InteractiveEnv: "0"}), want: 1},
		{name: "env out of range", level: InteractiveAuto, lookup: env(map[string]string{InteractiveEnv: "5"}), wantErr: true},
		{name: "env not a number", level: InteractiveAuto, lookup: env(map[string]string{InteractiveEnv: "yes"}), wantErr: true},
		{name: "explicit out of range", level: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			cfg.Interactive = tt.level
			got, err := cfg.Resolve(tt.lookup)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInteractive) {
					t.Errorf("Resolve() error = %v, want ErrInvalidInteractive", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Interactive != tt.want {
				t.Errorf("Interactive = %d, want %d", got.Interactive, tt.want)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
