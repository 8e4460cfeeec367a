package driver

import (
	"context"

	"reckon/internal/ast"
	"reckon/internal/diag"
	"reckon/internal/parser"
	"reckon/internal/source"
	"reckon/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Clean reports whether parsing left no diagnostics at all.
func (r *ParseResult) Clean() bool {
	return r.Bag == nil || r.Bag.Empty()
}

func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, file, opts)
}

// ParseString parses src as a virtual file called name.
func ParseString(ctx context.Context, name, src string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, addString(fs, name, src), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	toks := tokenizeFile(ctx, fs, file, opts).Tokens

	bag := opts.newBag()
	popts, err := opts.parserOptions(bag)
	if err != nil {
		return nil, err
	}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	var res parser.Result
	_ = phase(ctx, opts.Timer, "parse", func() error {
		res = parser.ParseTokens(toks, builder, popts)
		return nil
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Builder: builder,
		FileID:  res.File,
		Bag:     bag,
	}, nil
}
