package aggregate

import (
	"errors"
	"testing"

	"github.com/raphi011/ptable/internal/value"
)

type update struct {
	v value.Value
	w float64
}

func feed(t *testing.T, p Policy, updates []update) (value.Value, error) {
	t.Helper()
	a := New(p)
	for _, u := range updates {
		if err := a.Add(u.v, u.w); err != nil {
			t.Fatalf("Add(%v, %v) error = %v", u.v, u.w, err)
		}
	}
	return a.Resolve()
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  Policy
		updates []update
		want    string
	}{
		{"none keeps last", None, []update{{value.Int(1), 1}, {value.Int(9), 5}}, "9"},
		{"none keeps text", None, []update{{value.Text("warmup"), 1}}, "warmup"},
		{"sum of ints stays int", Sum, []update{{value.Int(2), 1}, {value.Int(3), 2}}, "8"},
		{"sum with float weight", Sum, []update{{value.Int(2), 0.5}}, "1.0000"},
		{"sum of floats", Sum, []update{{value.Float(0.5), 1}, {value.Float(0.25), 1}}, "0.7500"},
		{"mean weighted", Mean, []update{{value.Float(1), 1}, {value.Float(4), 2}}, "3.0000"},
		{"mean of ints is float", Mean, []update{{value.Int(1), 1}, {value.Int(2), 1}}, "1.5000"},
		{"min", Min, []update{{value.Int(4), 1}, {value.Float(-1.5), 1}, {value.Int(2), 1}}, "-1.5000"},
		{"max", Max, []update{{value.Int(4), 1}, {value.Float(-1.5), 1}, {value.Int(2), 1}}, "4"},
		{"empty", Mean, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := feed(t, tt.policy, tt.updates)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if s := got.Format(4); s != tt.want {
				t.Errorf("Resolve() = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestMeanIsOrderIndependent(t *testing.T) {
	t.Parallel()

	updates := []update{
		{value.Float(0.5), 1},
		{value.Float(2), 3},
		{value.Float(-1), 0.5},
		{value.Int(4), 2},
	}

	forward, err := feed(t, Mean, updates)
	if err != nil {
		t.Fatal(err)
	}

	reversed := make([]update, len(updates))
	for i, u := range updates {
		reversed[len(updates)-1-i] = u
	}
	backward, err := feed(t, Mean, reversed)
	if err != nil {
		t.Fatal(err)
	}

	if forward.Float64() != backward.Float64() {
		t.Errorf("mean forward = %v, backward = %v", forward, backward)
	}
}

func TestMeanZeroWeight(t *testing.T) {
	t.Parallel()

	a := New(Mean)
	if err := a.Add(value.Float(3), 0); err != nil {
		t.Fatal(err)
	}
	got, err := a.Resolve()
	if !errors.Is(err, ErrZeroWeight) {
		t.Errorf("Resolve() error = %v, want ErrZeroWeight", err)
	}
	if !got.IsAbsent() {
		t.Errorf("Resolve() = %v, want absent", got)
	}
}

func TestNotNumeric(t *testing.T) {
	t.Parallel()

	for _, p := range []Policy{Sum, Mean, Min, Max} {
		a := New(p)
		if err := a.Add(value.Text("x"), 1); !errors.Is(err, ErrNotNumeric) {
			t.Errorf("%s: Add(text) error = %v, want ErrNotNumeric", p, err)
		}
	}
}

func TestAddAbsentResets(t *testing.T) {
	t.Parallel()

	a := New(Sum)
	_ = a.Add(value.Int(3), 1)
	_ = a.Add(value.Absent(), 1)
	if a.Count() != 0 {
		t.Errorf("Count() = %d after absent, want 0", a.Count())
	}
	got, _ := a.Resolve()
	if !got.IsAbsent() {
		t.Errorf("Resolve() = %v, want absent", got)
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", None, false},
		{"none", None, false},
		{"SUM", Sum, false},
		{" mean ", Mean, false},
		{"max", Max, false},
		{"median", None, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownPolicy) {
			t.Errorf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
