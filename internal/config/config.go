package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// InteractiveEnv names the environment variable consulted when the
// interactivity level is left on auto.
const InteractiveEnv = "PTABLE_INTERACTIVE"

// InteractiveAuto defers the interactivity level to the environment.
const InteractiveAuto = -1

// DefaultInteractive is used when neither config nor environment set a
// level.
const DefaultInteractive = 2

// ErrInvalidInteractive is returned for interactivity levels outside
// [0, 2], whether they come from a file, a flag or the environment.
var ErrInvalidInteractive = errors.New("invalid interactivity level")

// TableConfig holds table-wide rendering settings
type TableConfig struct {
	Style            string `toml:"style"`               // border style name
	DecimalPlaces    int    `toml:"decimal_places"`      // digits after the point for floats
	HeaderEvery      int    `toml:"header_every"`        // reprint header every N rows, 0 = never
	PrintRowOnUpdate bool   `toml:"print_row_on_update"` // show open rows while they change
	RowColor         string `toml:"row_color"`           // default color of every row
}

// ColumnConfig holds defaults for columns created without explicit options
type ColumnConfig struct {
	Width     int    `toml:"width"`
	Alignment string `toml:"alignment"` // "center", "left" or "right"
	Color     string `toml:"color"`
	Aggregate string `toml:"aggregate"` // "none", "sum", "mean", "min" or "max"
}

// PbarConfig holds progress bar defaults
type PbarConfig struct {
	Embedded       bool   `toml:"embedded"`    // draw bars inside their row when possible
	Style          string `toml:"style"`       // style of bars on their own line
	StyleEmbed     string `toml:"style_embed"` // style of bars drawn inside a row
	Color          string `toml:"color"`       // overrides the filled color of both styles
	ColorEmpty     string `toml:"color_empty"` // overrides the empty color of both styles
	ShowThroughput bool   `toml:"show_throughput"`
	ShowProgress   bool   `toml:"show_progress"`
	ShowPercents   bool   `toml:"show_percents"`
	ShowETA        bool   `toml:"show_eta"`
}

// Config holds the ptable configuration
type Config struct {
	Interactive int          `toml:"interactive"`  // -1 = auto
	RefreshRate float64      `toml:"refresh_rate"` // redraws per second
	Color       string       `toml:"color"`        // "auto", "always" or "never"
	Theme       string       `toml:"theme"`        // CLI palette and default gradient colors
	Table       TableConfig  `toml:"table"`
	Column      ColumnConfig `toml:"column"`
	Pbar        PbarConfig   `toml:"pbar"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Interactive: InteractiveAuto,
		RefreshRate: 10,
		Color:       "auto",
		Theme:       "default",
		Table: TableConfig{
			Style:            "round",
			DecimalPlaces:    4,
			HeaderEvery:      30,
			PrintRowOnUpdate: true,
		},
		Column: ColumnConfig{
			Width:     8,
			Alignment: "center",
			Aggregate: "none",
		},
		Pbar: PbarConfig{
			Embedded:       true,
			Style:          "square",
			StyleEmbed:     "cdots",
			ShowThroughput: true,
		},
	}
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Load reads the config file at path, or at ~/.config/ptable/config.toml
// when path is empty, and overlays .ptable.toml from dir when dir is not
// empty. Missing files are not an error.
func Load(path, dir string) (Config, error) {
	if path == "" {
		p, err := configPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = Parse(data); err != nil {
			return Default(), fmt.Errorf("%s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if dir == "" {
		return cfg, nil
	}
	local, err := LoadLocal(dir)
	if err != nil {
		return cfg, err
	}
	merged := MergeLocal(&cfg, local)
	if err := merged.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filepath.Join(dir, LocalConfigFileName), err)
	}
	return *merged, nil
}

// Resolve fills in the interactivity level when it is left on auto,
// reading InteractiveEnv through lookup. lookup may be nil.
func (c Config) Resolve(lookup func(string) (string, bool)) (Config, error) {
	if c.Interactive != InteractiveAuto {
		if c.Interactive < 0 || c.Interactive > 2 {
			return c, fmt.Errorf("%w: %d", ErrInvalidInteractive, c.Interactive)
		}
		return c, nil
	}
	c.Interactive = DefaultInteractive
	if lookup == nil {
		return c, nil
	}
	raw, ok := lookup(InteractiveEnv)
	if !ok || strings.TrimSpace(raw) == "" {
		return c, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 || n > 2 {
		return c, fmt.Errorf("%w: %s=%q", ErrInvalidInteractive, InteractiveEnv, raw)
	}
	c.Interactive = n
	return c, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ptable", "config.toml"), nil
}

// DefaultPath returns the location Load reads when no path is given.
func DefaultPath() (string, error) {
	return configPath()
}

const defaultConfig = `# ptable configuration

# Interactivity: 0 = append-only (logs, pipes), 1 = one live line,
# 2 = full redraw of the recent rows. -1 reads PTABLE_INTERACTIVE and
# falls back to 2.
interactive = -1

# Maximum redraws per second while values change
refresh_rate = 10

# Color output: "auto", "always" or "never"
color = "auto"

# Palette for CLI output and default gradient bar colors:
# "default", "dracula", "nord", "gruvbox" or "none"
theme = "default"

[table]
# Border style: round, modern, bare, double, bold, ascii, asciib, hidden
style = "round"
decimal_places = 4
# Reprint the header every N rows (0 disables)
header_every = 30
print_row_on_update = true
# row_color = "dim"

[column]
width = 8
alignment = "center"   # center, left or right
aggregate = "none"     # none, sum, mean, min or max
# color = "cyan"

[pbar]
embedded = true
# A shape (square, full, dots, short, circle, angled, rich, cdots, dash,
# under, doubledash, gradient, hidden), optional "alt" or "clean", and up
# to two colors: filled then empty.
style = "square"
style_embed = "cdots"
# color = "green"
# color_empty = "black"
show_throughput = true
show_progress = false
show_percents = false
show_eta = false
`

// DefaultConfig returns the default configuration file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/ptable/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
