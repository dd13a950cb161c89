package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := WithPrinter(context.Background(), &buf)
		p := FromContext(ctx)
		if p == nil {
			t.Fatal("FromContext returned nil")
		}
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		p := FromContext(context.Background())
		if p.Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter_Print(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	p.Print("hello", " ", "world")
	p.Printf(" %d", 42)
	p.Println()
	if got := buf.String(); got != "hello world 42\n" {
		t.Errorf("output = %q, want %q", got, "hello world 42\n")
	}
}

func TestTee(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	p := Tee(&a, &b)
	p.Print("row")
	if a.String() != "row" || b.String() != "row" {
		t.Errorf("Tee wrote %q and %q, want both %q", a.String(), b.String(), "row")
	}
	if single := Tee(&a); single.Writer() != &a {
		t.Error("Tee with one writer should not wrap it")
	}
}

func TestTerminalProperties(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := Tee(&buf, os.Stderr)
	if p.IsTerminal() {
		t.Error("IsTerminal() = true for a buffer")
	}
	if w, h := p.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %d, %d; want zeros for a buffer", w, h)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	tests := []struct {
		mode string
		want bool
	}{
		{ColorAlways, true},
		{ColorNever, false},
		{ColorAuto, false},
	}
	for _, tt := range tests {
		if got := p.ColorEnabled(tt.mode, []string{"TERM=xterm-256color"}); got != tt.want {
			t.Errorf("ColorEnabled(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
