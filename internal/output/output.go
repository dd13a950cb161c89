// Package output provides context-aware output for ptable.
// Stdout carries the table; stderr (via the log package) carries
// diagnostics. A Printer also knows whether its stream is a terminal,
// how large that terminal is and whether it accepts color.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

type ctxKey struct{}

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes primary output.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Tee creates a Printer that duplicates output to every writer. The
// first writer decides terminal properties.
func Tee(w ...io.Writer) *Printer {
	if len(w) == 1 {
		return New(w[0])
	}
	return &Printer{w: &teeWriter{primary: w[0], all: io.MultiWriter(w...)}}
}

// teeWriter remembers the primary stream so that terminal detection
// keeps working behind io.MultiWriter.
type teeWriter struct {
	primary io.Writer
	all     io.Writer
}

func (t *teeWriter) Write(p []byte) (int, error) { return t.all.Write(p) }

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// file returns the primary stream when it is an *os.File.
func (p *Printer) file() (*os.File, bool) {
	w := p.w
	if t, ok := w.(*teeWriter); ok {
		w = t.primary
	}
	f, ok := w.(*os.File)
	return f, ok
}

// IsTerminal reports whether the primary stream is a terminal.
func (p *Printer) IsTerminal() bool {
	f, ok := p.file()
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Size returns the terminal width and height, or zeros when the stream
// is not a terminal.
func (p *Printer) Size() (width, height int) {
	f, ok := p.file()
	if !ok {
		return 0, 0
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}

// ColorEnabled resolves a color mode against the stream. In auto mode
// color is used when the detected profile supports it, which honors
// NO_COLOR and similar environment settings.
func (p *Printer) ColorEnabled(mode string, environ []string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	w := p.w
	if t, ok := w.(*teeWriter); ok {
		w = t.primary
	}
	profile := colorprofile.Detect(w, environ)
	return profile != colorprofile.NoTTY && profile != colorprofile.Ascii
}
