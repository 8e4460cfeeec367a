package ast

import (
	"reckon/internal/source"
	"reckon/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Numbers   *Arena[ExprNumberData]
	Binaries  *Arena[ExprBinaryData]
	Groups    *Arena[ExprGroupData]
	Variables *Arena[ExprVariableData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Numbers:   NewArena[ExprNumberData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Groups:    NewArena[ExprGroupData](capHint / 4),
		Variables: NewArena[ExprVariableData](capHint / 4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewNumber creates a literal from a Number token.
func (e *Exprs) NewNumber(tok token.Token) ExprID {
	payload := e.Numbers.Allocate(ExprNumberData{Value: tok.Value, Token: tok})
	return e.new(ExprNumber, tok.Span, PayloadID(payload))
}

func (e *Exprs) Number(id ExprID) (*ExprNumberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNumber {
		return nil, false
	}
	return e.Numbers.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewGroup creates a parenthesized expression spanning lparen..rparen.
func (e *Exprs) NewGroup(span source.Span, inner ExprID, lparen, rparen source.Span) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner, LParen: lparen, RParen: rparen})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

// NewVariable creates a variable reference.
func (e *Exprs) NewVariable(name source.StringID, tok token.Token) ExprID {
	payload := e.Variables.Allocate(ExprVariableData{Name: name, Token: tok})
	return e.new(ExprVariable, tok.Span, PayloadID(payload))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVariable {
		return nil, false
	}
	return e.Variables.Get(uint32(expr.Payload)), true
}

// NewError creates a placeholder for an expression that failed to parse.
func (e *Exprs) NewError(span source.Span) ExprID {
	return e.new(ExprError, span, NoPayloadID)
}
