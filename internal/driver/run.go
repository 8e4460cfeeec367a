package driver

import (
	"context"
	"errors"

	"reckon/internal/eval"
)

// RunResult is a parse followed, when the parse was clean, by evaluation.
type RunResult struct {
	*ParseResult
	// Evaluated is false when diagnostics stopped the run before eval.
	Evaluated bool
	Value     eval.Result
	// Err is the fatal evaluation error, if any.
	Err *eval.EvalError
}

// Failed reports whether the run should end with a non-zero status.
func (r *RunResult) Failed() bool {
	return !r.Clean() || r.Err != nil
}

// Run parses path and evaluates it unless the parser reported anything.
func Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	pr, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return evaluate(ctx, pr, opts)
}

// Eval runs src as a virtual file called name (`reckon eval`).
func Eval(ctx context.Context, name, src string, opts Options) (*RunResult, error) {
	pr, err := ParseString(ctx, name, src, opts)
	if err != nil {
		return nil, err
	}
	return evaluate(ctx, pr, opts)
}

func evaluate(ctx context.Context, pr *ParseResult, opts Options) (*RunResult, error) {
	out := &RunResult{ParseResult: pr}
	if !pr.Clean() {
		return out, nil
	}

	err := phase(ctx, opts.Timer, "eval", func() error {
		var err error
		out.Value, err = eval.New(pr.Builder).Run(pr.FileID)
		return err
	})
	out.Evaluated = true

	var ee *eval.EvalError
	switch {
	case errors.As(err, &ee):
		out.Err = ee
	case err != nil:
		return nil, err
	}
	return out, nil
}
