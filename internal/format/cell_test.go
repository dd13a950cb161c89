package format

import (
	"testing"
)

func TestCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		align Alignment
		want  string
	}{
		{"center header", "Value", 8, AlignCenter, "  Value   "},
		{"center even pad", "2.0000", 8, AlignCenter, "  2.0000  "},
		{"center odd pad odd width", "-45.8462", 11, AlignCenter, "   -45.8462  "},
		{"center odd pad even width", "x", 8, AlignCenter, "    x     "},
		{"left", "ab", 5, AlignLeft, " ab    "},
		{"right", "ab", 5, AlignRight, "    ab "},
		{"clipped", "overflowing", 4, AlignCenter, " over…"},
		{"exact fit", "abcd", 4, AlignRight, " abcd "},
		{"wide runes", "日本", 6, AlignLeft, " 日本   "},
		{"empty", "", 3, AlignCenter, "     "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Cell(tt.text, tt.width, tt.align, "…")
			if got != tt.want {
				t.Errorf("Cell(%q, %d, %v) = %q, want %q", tt.text, tt.width, tt.align, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	t.Parallel()

	l := Fit("abc", 8, AlignCenter)
	if l.Left != 2 || l.Right != 3 || l.Clipped {
		t.Errorf("Fit(abc, 8) = %+v, want Left=2 Right=3", l)
	}

	l = Fit("abcdef", 3, AlignLeft)
	if !l.Clipped || l.Text != "abc" {
		t.Errorf("Fit(abcdef, 3) = %+v, want clipped to abc", l)
	}

	l = Fit("\x1b[31mred\x1b[0m", 5, AlignLeft)
	if l.Right != 2 {
		t.Errorf("Fit(colored red, 5).Right = %d, want 2", l.Right)
	}
}

func TestParseAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Alignment
		wantErr bool
	}{
		{"", AlignCenter, false},
		{"left", AlignLeft, false},
		{"RIGHT", AlignRight, false},
		{"center", AlignCenter, false},
		{"justify", AlignCenter, true},
	}

	for _, tt := range tests {
		got, err := ParseAlignment(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlignment(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseAlignment(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("abcdef", 0); got != "" {
		t.Errorf("Truncate(abcdef, 0) = %q, want empty", got)
	}
	if got := Truncate("abcdef", 4); got != "abcd" {
		t.Errorf("Truncate(abcdef, 4) = %q, want %q", got, "abcd")
	}
	if got := Width("日本"); got != 4 {
		t.Errorf("Width(日本) = %d, want 4", got)
	}
}
