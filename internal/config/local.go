package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-directory override file.
const LocalConfigFileName = ".ptable.toml"

// LocalConfig holds per-directory overrides from .ptable.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	Interactive *int        `toml:"interactive"`
	RefreshRate *float64    `toml:"refresh_rate"`
	Color       string      `toml:"color"`
	Table       LocalTable  `toml:"table"`
	Column      LocalColumn `toml:"column"`
	Pbar        LocalPbar   `toml:"pbar"`
}

// LocalTable holds local table overrides
type LocalTable struct {
	Style            string `toml:"style"`
	DecimalPlaces    *int   `toml:"decimal_places"`
	HeaderEvery      *int   `toml:"header_every"`
	PrintRowOnUpdate *bool  `toml:"print_row_on_update"`
	RowColor         string `toml:"row_color"`
}

// LocalColumn holds local column default overrides
type LocalColumn struct {
	Width     *int   `toml:"width"`
	Alignment string `toml:"alignment"`
	Color     string `toml:"color"`
	Aggregate string `toml:"aggregate"`
}

// LocalPbar holds local progress bar overrides
type LocalPbar struct {
	Embedded       *bool  `toml:"embedded"`
	Style          string `toml:"style"`
	StyleEmbed     string `toml:"style_embed"`
	Color          string `toml:"color"`
	ColorEmpty     string `toml:"color_empty"`
	ShowThroughput *bool  `toml:"show_throughput"`
	ShowProgress   *bool  `toml:"show_progress"`
	ShowPercents   *bool  `toml:"show_percents"`
	ShowETA        *bool  `toml:"show_eta"`
}

// LoadLocal reads a .ptable.toml from the given directory.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on read or parse failure; values are validated
// after merging.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}
	return &local, nil
}

// defaultLocalConfig is the template for ptable config init --local
const defaultLocalConfig = `# ptable local config (per-directory overrides)
# Settings here override ~/.config/ptable/config.toml when ptable runs
# from this directory.

# interactive = 0

# [table]
# style = "ascii"
# decimal_places = 2

# [column]
# width = 10
# aggregate = "mean"

# [pbar]
# style = "dots"
# show_eta = true
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
