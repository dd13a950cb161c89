// Package aggregate folds repeated cell updates into a single value.
//
// Every column carries a [Policy]. Each update contributes a value and a
// weight to an [Accumulator]; resolving the accumulator yields the value
// shown in the cell.
//
// # Policies
//
//   - none: the last value wins, weights are ignored
//   - sum: Σ(value·weight)
//   - mean: Σ(value·weight) / Σ(weight)
//   - min, max: the extreme value seen, weights are ignored
//
// Sums stay integral as long as every value and weight is integral.
// A mean whose total weight is zero resolves to [ErrZeroWeight] and
// leaves the cell absent.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/raphi011/ptable/internal/value"
)

var (
	// ErrZeroWeight is returned when a mean is resolved with Σ(weight) = 0.
	ErrZeroWeight = errors.New("mean with zero total weight")

	// ErrNotNumeric is returned when a non-numeric value is fed to a
	// numeric policy.
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("unknown aggregate")
)

// Policy selects how updates to a cell are combined.
type Policy int

const (
	None Policy = iota
	Sum
	Mean
	Min
	Max
)

var policyNames = [...]string{
	None: "none",
	Sum:  "sum",
	Mean: "mean",
	Min:  "min",
	Max:  "max",
}

// Names returns the accepted policy names in declaration order.
func Names() []string {
	return policyNames[:]
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy parses a policy name. The empty string means None.
func ParsePolicy(s string) (Policy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return None, nil
	}
	for i, n := range policyNames {
		if n == name {
			return Policy(i), nil
		}
	}
	return None, fmt.Errorf("%w %q", ErrUnknownPolicy, s)
}

// Accumulator holds the running state of one cell.
type Accumulator struct {
	policy   Policy
	n        int
	sum      float64
	weight   float64
	integral bool
	isum     int64
	last     value.Value
}

// New returns an empty accumulator for p.
func New(p Policy) *Accumulator {
	return &Accumulator{policy: p, integral: true}
}

// Policy returns the accumulator's policy.
func (a *Accumulator) Policy() Policy { return a.policy }

// Count returns the number of values added since the last reset.
func (a *Accumulator) Count() int { return a.n }

// Reset clears all accumulated state.
func (a *Accumulator) Reset() {
	*a = Accumulator{policy: a.policy, integral: true}
}

// Add feeds a value with its weight. Adding an absent value resets the
// accumulator.
func (a *Accumulator) Add(v value.Value, weight float64) error {
	if v.IsAbsent() {
		a.Reset()
		return nil
	}
	if a.policy == None {
		a.last = v
		a.n++
		return nil
	}
	if !v.IsNumeric() {
		return fmt.Errorf("%s of %q: %w", a.policy, v.String(), ErrNotNumeric)
	}

	switch a.policy {
	case Min:
		if a.n == 0 || v.Float64() < a.last.Float64() {
			a.last = v
		}
	case Max:
		if a.n == 0 || v.Float64() > a.last.Float64() {
			a.last = v
		}
	default:
		a.sum += v.Float64() * weight
		a.weight += weight
		if a.integral && v.IsInt() && weight == math.Trunc(weight) {
			a.isum += v.Int64() * int64(weight)
		} else {
			a.integral = false
		}
	}
	a.n++
	return nil
}

// Resolve returns the value a cell should display.
func (a *Accumulator) Resolve() (value.Value, error) {
	if a.n == 0 {
		return value.Absent(), nil
	}
	switch a.policy {
	case Sum:
		if a.integral {
			return value.Int(a.isum), nil
		}
		return value.Float(a.sum), nil
	case Mean:
		if a.weight == 0 {
			return value.Absent(), ErrZeroWeight
		}
		return value.Float(a.sum / a.weight), nil
	default:
		return a.last, nil
	}
}
