package parser

import (
	"reckon/internal/ast"
	"reckon/internal/diag"
	"reckon/internal/token"
)

const precLowest = 1

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(precLowest)
}

// parseBinaryExpr - precedence climbing. An operator below minPrec ends
// the loop without being consumed. The right operand is parsed with
// prec+1, so operators of equal precedence fold to the left:
// 10-3-2 is (10-3)-2.
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	left := p.parsePrimaryExpr()

	for {
		op, ok := ast.BinaryOpFromToken(p.peek())
		if !ok {
			break
		}
		prec := op.Precedence()
		if prec < minPrec {
			break // приоритет слишком низкий
		}
		p.advance()

		right := p.parseBinaryExpr(prec + 1)

		leftSpan := p.arenas.Exprs.Get(left).Span
		rightSpan := p.arenas.Exprs.Get(right).Span
		left = p.arenas.Exprs.NewBinary(leftSpan.Cover(rightSpan), op, left, right)
	}

	return left
}

// parsePrimaryExpr: Number | '(' Expr ')' | Ident. Anything else is
// reported and replaced by an Error node over the offending token, which
// is consumed.
func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.advance()
	switch tok.Kind {
	case token.Number:
		return p.arenas.Exprs.NewNumber(tok)

	case token.LParen:
		inner := p.parseExpr()
		closing := p.expectClosingParen(tok)
		return p.arenas.Exprs.NewGroup(tok.Span.Cover(closing.Span), inner, tok.Span, closing.Span)

	case token.Ident:
		return p.arenas.Exprs.NewVariable(p.arenas.Strings.Intern(tok.Text), tok)

	default:
		p.emit(diag.ReportExpectedExpression(p.opts.Reporter, tok))
		return p.arenas.Exprs.NewError(tok.Span)
	}
}

// expectClosingParen is expect(RParen) with a note pointing back at the
// opening parenthesis.
func (p *Parser) expectClosingParen(open token.Token) token.Token {
	tok := p.advance()
	if tok.Kind != token.RParen {
		p.emit(diag.ReportUnexpectedToken(p.opts.Reporter, diag.SynUnclosedParen, token.RParen, tok).
			WithNote(open.Span, "to match this '('"))
	}
	return tok
}
