package config

// MergeLocal merges a local per-directory config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Theme is global-only and inherited by the shallow copy.
	merged := *global

	if local.Interactive != nil {
		merged.Interactive = *local.Interactive
	}
	if local.RefreshRate != nil {
		merged.RefreshRate = *local.RefreshRate
	}
	setString(&merged.Color, local.Color)

	setString(&merged.Table.Style, local.Table.Style)
	setPtr(&merged.Table.DecimalPlaces, local.Table.DecimalPlaces)
	setPtr(&merged.Table.HeaderEvery, local.Table.HeaderEvery)
	setPtr(&merged.Table.PrintRowOnUpdate, local.Table.PrintRowOnUpdate)
	setString(&merged.Table.RowColor, local.Table.RowColor)

	setPtr(&merged.Column.Width, local.Column.Width)
	setString(&merged.Column.Alignment, local.Column.Alignment)
	setString(&merged.Column.Color, local.Column.Color)
	setString(&merged.Column.Aggregate, local.Column.Aggregate)

	setPtr(&merged.Pbar.Embedded, local.Pbar.Embedded)
	setString(&merged.Pbar.Style, local.Pbar.Style)
	setString(&merged.Pbar.StyleEmbed, local.Pbar.StyleEmbed)
	setString(&merged.Pbar.Color, local.Pbar.Color)
	setString(&merged.Pbar.ColorEmpty, local.Pbar.ColorEmpty)
	setPtr(&merged.Pbar.ShowThroughput, local.Pbar.ShowThroughput)
	setPtr(&merged.Pbar.ShowProgress, local.Pbar.ShowProgress)
	setPtr(&merged.Pbar.ShowPercents, local.Pbar.ShowPercents)
	setPtr(&merged.Pbar.ShowETA, local.Pbar.ShowETA)

	return &merged
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
