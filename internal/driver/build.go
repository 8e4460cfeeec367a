package driver

import (
	"context"
	"errors"

	"reckon/internal/backend/llvm"
)

// BuildResult is a parse followed, when the parse was clean, by IR emission.
type BuildResult struct {
	*ParseResult
	Emitted bool
	IR      string
	Err     *llvm.EmitError
}

func (r *BuildResult) Failed() bool {
	return !r.Clean() || r.Err != nil
}

// Build parses path and lowers it to LLVM IR text.
func Build(ctx context.Context, path string, opts Options, emit llvm.Options) (*BuildResult, error) {
	pr, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return lower(ctx, pr, opts, emit)
}

func lower(ctx context.Context, pr *ParseResult, opts Options, emit llvm.Options) (*BuildResult, error) {
	out := &BuildResult{ParseResult: pr}
	if !pr.Clean() {
		return out, nil
	}
	if emit.SourceName == "" {
		emit.SourceName = pr.File.Path
	}

	err := phase(ctx, opts.Timer, "emit", func() error {
		var err error
		out.IR, err = llvm.Emit(pr.Builder, pr.FileID, emit)
		return err
	})

	var ee *llvm.EmitError
	switch {
	case errors.As(err, &ee):
		out.Err = ee
	case err != nil:
		return nil, err
	default:
		out.Emitted = true
	}
	return out, nil
}
