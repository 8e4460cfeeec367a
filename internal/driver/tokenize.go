package driver

import (
	"context"

	"reckon/internal/lexer"
	"reckon/internal/source"
	"reckon/internal/token"
)

// TokenizeResult holds the full token stream, Whitespace included, so the
// token texts concatenate back to the file content.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(ctx, fs, file, opts), nil
}

// TokenizeString lexes src as a virtual file called name.
func TokenizeString(ctx context.Context, name, src string, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(ctx, fs, addString(fs, name, src), opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	var toks []token.Token
	// лексер не падает: неизвестные символы становятся Bad токенами
	_ = phase(ctx, opts.Timer, "lex", func() error {
		toks = lexer.Tokenize(file)
		return nil
	})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
	}
}
