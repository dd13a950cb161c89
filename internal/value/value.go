// Package value defines the scalar stored in a table cell.
//
// A [Value] is either absent, an integer, a float or a piece of text.
// Integers and floats are kept apart so that integral sums print
// without decimals while averages always print as floats.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindInt
	KindFloat
	KindText
)

// Value is an immutable cell value. The zero Value is absent.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Absent returns the empty value.
func Absent() Value { return Value{} }

// Int returns an integral value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a textual value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Of converts an arbitrary Go value. Unknown types are stored as their
// fmt representation.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Absent()
	case Value:
		return x
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Int(int64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return Int(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case string:
		return Text(x)
	case bool:
		return Text(strconv.FormatBool(x))
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Text(fmt.Sprint(x))
	}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether no value is set.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNumeric reports whether the value is an int or a float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// IsInt reports whether the value is integral.
func (v Value) IsInt() bool { return v.kind == KindInt }

// Float64 returns the numeric value as a float. Text and absent values
// return NaN.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	default:
		return math.NaN()
	}
}

// Int64 returns the integral value, truncating floats.
func (v Value) Int64() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Any returns the value as a plain Go value suitable for export:
// nil, int64, float64 or string.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	default:
		return nil
	}
}

// Format renders the value with the given number of decimal places for
// floats. Integers never carry decimals and absent values render empty.
func (v Value) Format(decimals int) string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', decimals, 64)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// String implements fmt.Stringer using the shortest float form.
func (v Value) String() string {
	if v.kind == KindFloat {
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.Format(0)
}
