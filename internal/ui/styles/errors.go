package styles

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// UnknownTokenError reports a word that is not part of a style
// vocabulary.
type UnknownTokenError struct {
	Kind       string   // "bar style", "color", "table style", "theme"
	Token      string   // the offending word as written
	Valid      []string // accepted words, sorted
	Suggestion string   // closest valid word, may be empty
}

func newUnknownTokenError(kind, token string, valid []string) *UnknownTokenError {
	valid = sortedUnique(valid)
	return &UnknownTokenError{
		Kind:       kind,
		Token:      token,
		Valid:      valid,
		Suggestion: Suggest(token, valid),
	}
}

func (e *UnknownTokenError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown %s %q", e.Kind, e.Token)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	fmt.Fprintf(&b, "; available: %s", strings.Join(e.Valid, ", "))
	return b.String()
}

// Suggest returns the best fuzzy match for word among candidates, or ""
// when nothing matches.
func Suggest(word string, candidates []string) string {
	word = strings.ToLower(word)
	if word == "" {
		return ""
	}
	matches := fuzzy.Find(word, candidates)
	if len(matches) > 0 {
		return matches[0].Str
	}
	// prefix fallback
	for n := min(len(word), 3); n > 0; n-- {
		for _, c := range candidates {
			if strings.HasPrefix(c, word[:n]) {
				return c
			}
		}
	}
	return ""
}

func sortedUnique(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}
