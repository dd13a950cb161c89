// Package static provides non-interactive terminal output for the ptable
// CLI, such as the style catalog listing.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/ptable/internal/ui/progress"
	"github.com/raphi011/ptable/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// CatalogRows lists every vocabulary of c as KIND / WORDS rows.
func CatalogRows(c styles.Catalog) [][]string {
	return [][]string{
		{"table style", strings.Join(c.TableStyles, " ")},
		{"bar shape", strings.Join(c.BarShapes, " ")},
		{"bar modifier", strings.Join(c.BarMods, " ")},
		{"color", strings.Join(c.Colors, " ")},
		{"attribute", strings.Join(c.Attributes, " ")},
		{"background", strings.Join(c.Backgrounds, " ")},
		{"theme", strings.Join(c.Themes, " ")},
	}
}

// ShapePreviews draws every bar shape at frac, width cells wide, as
// NAME / BAR rows. Shapes that fail to parse are skipped.
func ShapePreviews(shapes []string, width int, frac float64, color bool) [][]string {
	rows := make([][]string, 0, len(shapes))
	for _, name := range shapes {
		st, err := styles.ParseBar(name)
		if err != nil {
			continue
		}
		rows = append(rows, []string{name, progress.Line(st, width, frac, 0, color)})
	}
	return rows
}

// BorderPreview draws a one-column, one-row frame in border style b.
func BorderPreview(b styles.Border, label string) string {
	w := []int{max(8, lipgloss.Width(label))}
	var sb strings.Builder
	sb.WriteString(b.Top(w) + "\n")
	sb.WriteString(b.Vertical + " " + label + strings.Repeat(" ", w[0]-lipgloss.Width(label)) + " " + b.Vertical + "\n")
	sb.WriteString(b.Bottom(w) + "\n")
	return sb.String()
}
