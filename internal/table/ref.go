package table

import "fmt"

type refKind int

const (
	refIndex refKind = iota
	refName
	refAll
	refSpan
)

// Ref addresses rows or columns: a single index, a column name, every
// position, or a half-open span. Negative indices count from the end
// and are resolved when the reference is used, never stored.
type Ref struct {
	kind   refKind
	i      int
	name   string
	lo, hi int
	openHi bool
}

// Index addresses one position. -1 is the last one.
func Index(i int) Ref { return Ref{kind: refIndex, i: i} }

// Name addresses a column by name.
func Name(s string) Ref { return Ref{kind: refName, name: s} }

// All addresses every position.
func All() Ref { return Ref{kind: refAll} }

// Span addresses positions lo up to but excluding hi. Both ends may be
// negative and are clamped to the valid range, so a span never fails.
func Span(lo, hi int) Ref { return Ref{kind: refSpan, lo: lo, hi: hi} }

// From addresses positions lo up to the end.
func From(lo int) Ref { return Ref{kind: refSpan, lo: lo, openHi: true} }

func (r Ref) String() string {
	switch r.kind {
	case refName:
		return fmt.Sprintf("%q", r.name)
	case refAll:
		return ":"
	case refSpan:
		if r.openHi {
			return fmt.Sprintf("%d:", r.lo)
		}
		return fmt.Sprintf("%d:%d", r.lo, r.hi)
	default:
		return fmt.Sprint(r.i)
	}
}

// resolveIndex turns a possibly negative index into a position in
// [0, n).
func resolveIndex(axis string, i, n int) (int, error) {
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, outOfRange(axis, i, n)
	}
	return j, nil
}

// positions resolves r against n positions. Names are looked up with
// byName, which may be nil for axes without names.
func (r Ref) positions(axis string, n int, byName func(string) (int, error)) ([]int, error) {
	switch r.kind {
	case refIndex:
		j, err := resolveIndex(axis, r.i, n)
		if err != nil {
			return nil, err
		}
		return []int{j}, nil
	case refName:
		if byName == nil {
			return nil, fmt.Errorf("%s %s: %w", axis, r, ErrInvalidRef)
		}
		j, err := byName(r.name)
		if err != nil {
			return nil, err
		}
		return []int{j}, nil
	case refAll:
		return span(0, n), nil
	default:
		hi := r.hi
		if r.openHi {
			hi = n
		}
		return span(clampSpan(r.lo, n), clampSpan(hi, n)), nil
	}
}

func clampSpan(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}

func span(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
