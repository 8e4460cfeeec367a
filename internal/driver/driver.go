// Package driver wires the reckon pipeline together: load a source, lex it,
// parse it into a fresh arena, then evaluate or lower it. It is the only
// place that decides whether a later phase runs, based on the diagnostics
// the parser left in the Bag.
//
// Every phase is traced through the trace.Tracer carried by the context and
// timed on Options.Timer when one is set.
package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"reckon/internal/diag"
	"reckon/internal/observ"
	"reckon/internal/parser"
	"reckon/internal/source"
	"reckon/internal/trace"
)

// Options configures a single pipeline run.
type Options struct {
	// MaxDiagnostics caps the Bag and the parser's error reporting; 0 means no limit.
	MaxDiagnostics int
	// Timer receives one phase per pipeline step. May be nil.
	Timer *observ.Timer
}

func (o Options) newBag() *diag.Bag {
	return diag.NewBag(o.MaxDiagnostics)
}

func (o Options) parserOptions(bag *diag.Bag) (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(o.MaxDiagnostics, 0))
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}, nil
}

// phase runs fn as one traced and timed step of the pipeline.
func phase(ctx context.Context, timer *observ.Timer, name string, fn func() error) error {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, name, trace.ParentSpan(ctx))
	idx := -1
	if timer != nil {
		idx = timer.Begin(name)
	}
	err := fn()
	if timer != nil {
		timer.End(idx, "")
	}
	if err != nil {
		span.Fail(err)
		return err
	}
	span.End("")
	return nil
}

// loadFile reads path into fs under the "load" phase.
func loadFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*source.File, error) {
	var id source.FileID
	err := phase(ctx, opts.Timer, "load", func() error {
		var err error
		id, err = fs.Load(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs.Get(id), nil
}

// addString registers an in-memory source under name.
func addString(fs *source.FileSet, name, src string) *source.File {
	if name == "" {
		name = "<eval>"
	}
	return fs.Get(fs.AddVirtual(name, []byte(src)))
}
