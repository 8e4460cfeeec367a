// Package parser builds the reckon AST from a token stream.
//
// It never aborts on bad input: an unexpected token is reported through the
// diag.Reporter and the token is used anyway, and a token that cannot start
// an expression becomes an ast.ExprError node. The tree is therefore always
// complete and the caller decides, from the diagnostics, whether to go on.
package parser

import (
	"reckon/internal/ast"
	"reckon/internal/diag"
	"reckon/internal/lexer"
	"reckon/internal/source"
	"reckon/internal/token"
)

type Options struct {
	// MaxErrors stops reporting (not parsing) after this many errors; 0 means no limit.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser - состояние парсера на один файл
type Parser struct {
	toks   []token.Token // без Whitespace, последний всегда EOF
	pos    int
	arenas *ast.Builder
	file   ast.FileID
	opts   Options
}

// New prepares a parser over toks. Whitespace is dropped up front; a
// stream without a trailing EOF gets one.
func New(toks []token.Token, arenas *ast.Builder, opts Options) *Parser {
	filtered := make([]token.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.IsTrivia() {
			continue
		}
		filtered = append(filtered, tok)
	}
	if n := len(filtered); n == 0 || filtered[n-1].Kind != token.EOF {
		var eof source.Span
		if n > 0 {
			eof = source.Point(filtered[n-1].Span.File, filtered[n-1].Span.End)
		}
		filtered = append(filtered, token.Token{Kind: token.EOF, Span: eof})
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}

	span := filtered[0].Span.Cover(filtered[len(filtered)-1].Span)
	return &Parser{
		toks:   filtered,
		arenas: arenas,
		file:   arenas.NewFile(span),
		opts:   opts,
	}
}

// ParseFile - входная точка для разбора одного файла: lex, parse every
// statement, return the AST file. Diagnostics go to opts.Reporter.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	return ParseTokens(lexer.Tokenize(file), arenas, opts)
}

// ParseTokens parses an already lexed stream.
func ParseTokens(toks []token.Token, arenas *ast.Builder, opts Options) Result {
	p := New(toks, arenas, opts)
	p.parseStatements()

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

// File returns the AST file statements are appended to.
func (p *Parser) File() ast.FileID {
	return p.file
}

// NextStatement parses one statement and appends it to the file. It
// returns false once the input is exhausted.
func (p *Parser) NextStatement() (ast.StmtID, bool) {
	if p.at(token.EOF) {
		return ast.NoStmtID, false
	}
	var id ast.StmtID
	if p.at(token.KwLet) {
		id = p.parseLetStmt()
	} else {
		id = p.parseExprStmt()
	}
	p.arenas.PushStmt(p.file, id)
	return id, true
}

// parseStatements - основной цикл: пока не EOF - NextStatement.
func (p *Parser) parseStatements() {
	for {
		if _, ok := p.NextStatement(); !ok {
			return
		}
	}
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}
