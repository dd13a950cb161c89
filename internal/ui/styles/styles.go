// Package styles resolves everything visual about a progress table.
//
// It owns three vocabularies:
//
//   - table border styles ("round", "modern", "ascii", ...), see [ParseBorder]
//   - the progress bar style language, see [ParseBar]
//   - color specs for cells, rows and bars, see [ParseColor]
//
// Parsing happens once, when a table or bar is configured. Unknown words
// produce an [UnknownTokenError] listing the valid alternatives.
//
// The package also carries the lipgloss styles used by the ptable CLI,
// derived from the active [Theme].
package styles

import "charm.land/lipgloss/v2"

// CLI styles, refreshed by Init.
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// HeadingStyle is used for section titles
	HeadingStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Primary).Bold(true)

	// AccentStyle highlights a value
	AccentStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Accent)

	// MutedStyle is used for secondary text
	MutedStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Muted)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Error)

	// SuccessStyle is used for positive outcomes
	SuccessStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Success)
)

func applyTheme(t Theme) {
	HeadingStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
}
