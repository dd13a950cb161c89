package styles

import (
	"fmt"
	"strings"
)

// Bar style modifiers.
const (
	modAlt   = "alt"   // empty cells use the filled glyph
	modClean = "clean" // empty cells are blank
)

// BarStyle is a fully resolved progress bar style.
type BarStyle struct {
	Shape       string
	Filled      string
	Empty       string
	Heads       []string
	FilledColor Color
	EmptyColor  Color
	Gradient    bool
}

// ParseBar parses a progress bar style string.
//
// The string is a case-insensitive list of words: exactly one shape
// ("square", "full", "dots", ...), the modifiers "alt" and "clean", and
// up to two foreground color names. The first color paints filled
// cells, the second paints empty cells.
func ParseBar(spec string) (BarStyle, error) {
	var (
		shape     BarShape
		haveShape bool
		mods      []string
		colors    []Color
	)

	for _, word := range strings.Fields(strings.ToLower(spec)) {
		if s, ok := findShape(word); ok {
			if haveShape {
				return BarStyle{}, fmt.Errorf("bar style %q: more than one shape (%s, %s)", spec, shape.Name, s.Name)
			}
			shape, haveShape = s, true
			continue
		}
		if word == modAlt || word == modClean {
			mods = append(mods, word)
			continue
		}
		if isForeground(word) {
			c, _ := ParseColor(word)
			colors = append(colors, c)
			if len(colors) > 2 {
				return BarStyle{}, fmt.Errorf("bar style %q: at most two colors allowed", spec)
			}
			continue
		}
		valid := append(shapeNames(), modAlt, modClean)
		err := newUnknownTokenError("bar style", word, valid)
		err.Suggestion = Suggest(word, append(valid, foregroundNames()...))
		return BarStyle{}, err
	}

	if !haveShape {
		return BarStyle{}, newUnknownTokenError("bar style", spec, shapeNames())
	}

	st := BarStyle{
		Shape:       shape.Name,
		Filled:      shape.Filled,
		Empty:       shape.Empty,
		Heads:       shape.Heads,
		FilledColor: shape.FilledColor,
		EmptyColor:  shape.EmptyColor,
		Gradient:    shape.Gradient,
	}
	for _, m := range mods {
		switch m {
		case modAlt:
			st.Empty = st.Filled
		case modClean:
			st.Empty = " "
		}
	}
	if len(colors) > 0 {
		st.FilledColor = colors[0]
	}
	if len(colors) > 1 {
		st.EmptyColor = colors[1]
	}
	return st, nil
}

// WithColors returns a copy of st with non-zero explicit colors
// replacing the parsed ones.
func (st BarStyle) WithColors(filled, empty Color) BarStyle {
	if !filled.IsZero() {
		st.FilledColor = filled
	}
	if !empty.IsZero() {
		st.EmptyColor = empty
	}
	return st
}

// Head returns the boundary glyph for a partially filled cell, where
// frac is the fractional part of the filled length in [0, 1).
func (st BarStyle) Head(frac float64) string {
	if len(st.Heads) == 0 {
		return st.Filled
	}
	i := int(frac * float64(len(st.Heads)))
	return st.Heads[max(0, min(i, len(st.Heads)-1))]
}
