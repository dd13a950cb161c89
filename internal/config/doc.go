// Package config handles loading and validation of ptable configuration.
//
// Configuration is read from ~/.config/ptable/config.toml, then overlaid
// with a .ptable.toml in the working directory, then with environment
// variables and command-line flags.
//
// # Configuration Sources (highest priority first)
//
//   - explicit values set by the caller (CLI flags, table options)
//   - PTABLE_INTERACTIVE env var: interactivity level when left on auto
//   - .ptable.toml in the working directory
//   - ~/.config/ptable/config.toml
//   - Default values
//
// # Key Settings
//
//   - interactive: 0 (append-only), 1 (one live line), 2 (full redraw), or -1 for auto
//   - refresh_rate: maximum redraws per second
//   - color: "auto", "always" or "never"
//   - [table] style, decimal_places, header_every, print_row_on_update
//   - [column] default width, alignment, color and aggregate
//   - [pbar] embedded, style, style_embed, colors and info toggles
//
// Example:
//
//	interactive = 2
//	refresh_rate = 20
//
//	[table]
//	style = "double"
//
//	[pbar]
//	style = "dots red"
//	show_eta = true
//
// Style and color values are validated with the same parser the table
// uses, so a bad word fails at load time instead of at first render.
package config
