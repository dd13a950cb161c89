package styles

import "slices"

// Catalog lists every accepted word per vocabulary.
type Catalog struct {
	TableStyles []string
	BarShapes   []string
	BarMods     []string
	Colors      []string
	Attributes  []string
	Backgrounds []string
	Themes      []string
}

var attributeTokens = []string{"bold", "bright", "dim", "italic", "underline", "reverse", "normal", "reset"}

// Available returns the catalog of valid style words.
func Available() Catalog {
	var fg, bg []string
	for n := range colorTokens {
		switch {
		case slices.Contains(attributeTokens, n):
		case len(n) > 3 && n[:3] == "bg_":
			bg = append(bg, n)
		default:
			fg = append(fg, n)
		}
	}
	return Catalog{
		TableStyles: borderNames(),
		BarShapes:   sortedUnique(shapeNames()),
		BarMods:     []string{modAlt, modClean},
		Colors:      sortedUnique(fg),
		Attributes:  slices.Clone(attributeTokens),
		Backgrounds: sortedUnique(bg),
		Themes:      PresetNames(),
	}
}
