package ast

import (
	"reckon/internal/source"
	"reckon/internal/token"
)

type StmtKind uint8

const (
	// StmtExpr is a bare expression; its value becomes the program result
	// when it is last.
	StmtExpr StmtKind = iota
	// StmtLet is `let name = value`.
	StmtLet
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "Expression"
	case StmtLet:
		return "Let"
	}
	return "Unknown"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtLetData struct {
	Name       source.StringID
	NameToken  token.Token
	Value      ExprID
	LetSpan    source.Span
	EqualsSpan source.Span
}

type Stmts struct {
	Arena *Arena[Stmt]
	Exprs *Arena[StmtExprData]
	Lets  *Arena[StmtLetData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Exprs: NewArena[StmtExprData](capHint),
		Lets:  NewArena[StmtLetData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	payload := s.Lets.Allocate(data)
	return s.new(StmtLet, span, PayloadID(payload))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}
