package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"reckon/internal/diag"
	"reckon/internal/source"
)

const gutter = "    "

type palette struct {
	err     *color.Color
	warning *color.Color
	path    *color.Color
	note    *color.Color
	dim     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		path:    color.New(color.Bold),
		note:    color.New(color.FgCyan),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warning, p.path, p.note, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev >= diag.SevError {
		return p.err
	}
	return p.warning
}

// Pretty renders every diagnostic in bag as a header, a window of the
// offending line, a caret underline and the message under the caret:
//
//	main.rk:1:7: ERROR LEX1001: Expected Expression | Found <Bad>
//	    1 + 1 & 0
//	          ^
//	          Expected Expression | Found <Bad>
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintln(w)
		p.dim.Fprintf(w, "... %d more diagnostic(s) not shown (limit %d)\n", n, bag.Cap())
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.severity(d.Severity)

	if loc, ok := locate(fs, d.Primary, opts.PathMode); ok {
		p.path.Fprintf(w, "%s: ", loc)
	}
	sevColor.Fprintf(w, "%s %s", d.Severity, d.Code.ID())
	fmt.Fprintf(w, ": %s\n", d.Message)

	if win, ok := window(fs, d.Primary, opts.context()); ok {
		fmt.Fprintf(w, "%s%s", gutter, win.prefix)
		sevColor.Fprint(w, win.span)
		fmt.Fprintf(w, "%s\n", win.suffix)

		pad := strings.Repeat(" ", runewidth.StringWidth(win.prefix))
		carets := strings.Repeat("^", max(runewidth.StringWidth(win.span), 1))
		fmt.Fprintf(w, "%s%s", gutter, pad)
		sevColor.Fprintln(w, carets)
		fmt.Fprintf(w, "%s%s%s\n", gutter, pad, d.Message)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		p.note.Fprint(w, "  note: ")
		if loc, ok := locate(fs, n.Span, opts.PathMode); ok {
			fmt.Fprintf(w, "%s: ", loc)
		}
		fmt.Fprintln(w, n.Msg)
	}
}

// locate formats "path:line:col" for the start of span.
func locate(fs *source.FileSet, span source.Span, mode PathMode) (string, bool) {
	if fs == nil || int(span.File) >= fs.Len() {
		return "", false
	}
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := f.FormatPath(formatPath(mode), fs.BaseDir())
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), true
}

type lineWindow struct {
	prefix string
	span   string
	suffix string
}

// window cuts the span's line into up to ctx runes before the span, the
// span itself (clipped to the line) and up to ctx runes after it.
func window(fs *source.FileSet, span source.Span, ctx int) (lineWindow, bool) {
	if fs == nil || int(span.File) >= fs.Len() {
		return lineWindow{}, false
	}
	f := fs.Get(span.File)
	line := f.LineIndex(span.Start)
	lineStart, lineEnd := f.LineStart(line), f.LineEnd(line)
	start := min(max(span.Start, lineStart), lineEnd)
	end := min(max(span.End, start), lineEnd)

	before := []rune(displayText(f.Content[lineStart:start]))
	after := []rune(displayText(f.Content[end:lineEnd]))
	if len(before) > ctx {
		before = before[len(before)-ctx:]
	}
	if len(after) > ctx {
		after = after[:ctx]
	}
	return lineWindow{
		prefix: string(before),
		span:   displayText(f.Content[start:end]),
		suffix: string(after),
	}, true
}

// displayText keeps the caret column stable: tabs become single spaces.
func displayText(b []byte) string {
	return strings.ReplaceAll(string(b), "\t", " ")
}
