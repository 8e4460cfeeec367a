package parser

import (
	"reckon/internal/ast"
	"reckon/internal/diag"
	"reckon/internal/source"
	"reckon/internal/token"
)

// parseLetStmt: 'let' Ident '=' Expr. Mismatches are reported and parsing
// continues with whatever token was there.
func (p *Parser) parseLetStmt() ast.StmtID {
	letTok := p.advance()
	nameTok, _ := p.expect(token.Ident, diag.SynExpectIdentifier)
	eqTok, _ := p.expect(token.Assign, diag.SynExpectAssign)
	value := p.parseExpr()

	name := source.NoStringID
	if nameTok.IsIdent() {
		name = p.arenas.Strings.Intern(nameTok.Text)
	}

	span := letTok.Span.Cover(p.arenas.Exprs.Get(value).Span)
	return p.arenas.Stmts.NewLet(span, ast.StmtLetData{
		Name:       name,
		NameToken:  nameTok,
		Value:      value,
		LetSpan:    letTok.Span,
		EqualsSpan: eqTok.Span,
	})
}

func (p *Parser) parseExprStmt() ast.StmtID {
	expr := p.parseExpr()
	return p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr)
}
