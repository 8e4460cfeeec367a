package parser

import (
	"reckon/internal/diag"
	"reckon/internal/token"
)

// peek returns the current token. Past the end it keeps returning EOF.
func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance - съедает текущий токен. EOF is never stepped over.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// expect consumes the current token whatever it is. On a kind mismatch it
// reports "Expected <k> | Found <kind>" and hands the seen token back so
// the caller keeps going.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	tok := p.advance()
	if tok.Kind == k {
		return tok, true
	}
	p.emit(diag.ReportUnexpectedToken(p.opts.Reporter, code, k, tok))
	return tok, false
}

// emit sends b unless the error budget is spent. Warnings are never capped.
func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if b.Diagnostic().Severity == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	b.Emit()
	return true
}
