package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/ptable/internal/aggregate"
	"github.com/raphi011/ptable/internal/format"
	"github.com/raphi011/ptable/internal/ui/styles"
)

// Valid enum values for configuration fields.
var ValidColorModes = []string{"auto", "always", "never"}

// Validate checks every field of the configuration and returns the first
// problem found.
func (c Config) Validate() error {
	if c.Interactive < InteractiveAuto || c.Interactive > 2 {
		return fmt.Errorf("%w: interactive = %d, must be -1, 0, 1 or 2", ErrInvalidInteractive, c.Interactive)
	}
	if c.RefreshRate <= 0 {
		return fmt.Errorf("invalid refresh_rate %v: must be positive", c.RefreshRate)
	}
	if err := validateEnum(c.Color, "color", ValidColorModes); err != nil {
		return err
	}
	if err := validateEnum(c.Theme, "theme", styles.PresetNames()); err != nil {
		return err
	}

	if _, err := styles.ParseBorder(c.Table.Style); err != nil {
		return fmt.Errorf("invalid table.style: %w", err)
	}
	if c.Table.DecimalPlaces < 0 {
		return fmt.Errorf("invalid table.decimal_places %d: must not be negative", c.Table.DecimalPlaces)
	}
	if c.Table.HeaderEvery < 0 {
		return fmt.Errorf("invalid table.header_every %d: must not be negative", c.Table.HeaderEvery)
	}
	if err := validateColor(c.Table.RowColor, "table.row_color"); err != nil {
		return err
	}

	if c.Column.Width < 1 {
		return fmt.Errorf("invalid column.width %d: must be at least 1", c.Column.Width)
	}
	if err := validateEnum(strings.ToLower(c.Column.Alignment), "column.alignment", format.ValidAlignments); err != nil {
		return err
	}
	if err := validateEnum(strings.ToLower(c.Column.Aggregate), "column.aggregate", aggregate.Names()); err != nil {
		return err
	}
	if err := validateColor(c.Column.Color, "column.color"); err != nil {
		return err
	}

	if _, err := styles.ParseBar(c.Pbar.Style); err != nil {
		return fmt.Errorf("invalid pbar.style: %w", err)
	}
	if _, err := styles.ParseBar(c.Pbar.StyleEmbed); err != nil {
		return fmt.Errorf("invalid pbar.style_embed: %w", err)
	}
	if err := validateColor(c.Pbar.Color, "pbar.color"); err != nil {
		return err
	}
	return validateColor(c.Pbar.ColorEmpty, "pbar.color_empty")
}

func validateColor(spec, field string) error {
	if _, err := styles.ParseColor(spec); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
