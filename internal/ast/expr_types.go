package ast

import (
	"reckon/internal/source"
	"reckon/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprNumber is an integer literal.
	ExprNumber ExprKind = iota
	// ExprBinary is `left op right`.
	ExprBinary
	// ExprGroup is a parenthesized expression.
	ExprGroup
	// ExprVariable is a reference to a let binding.
	ExprVariable
	// ExprError stands in for an expression that failed to parse. It has no
	// payload; Span covers the offending token.
	ExprError
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprBinary:
		return "Binary"
	case ExprGroup:
		return "Group"
	case ExprVariable:
		return "Variable"
	case ExprError:
		return "Error"
	}
	return "Unknown"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOpKind enumerates binary operator kinds.
type BinaryOpKind uint8

const (
	BinaryAdd BinaryOpKind = iota
	BinarySub
	BinaryMul
	BinaryDiv
)

func (k BinaryOpKind) String() string {
	switch k {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	}
	return "?"
}

// Name is the long form used by tree dumps.
func (k BinaryOpKind) Name() string {
	switch k {
	case BinaryAdd:
		return "Add"
	case BinarySub:
		return "Subtract"
	case BinaryMul:
		return "Multiply"
	case BinaryDiv:
		return "Divide"
	}
	return "Unknown"
}

// Precedence is higher for tighter binding: + - are 1, * / are 2.
func (k BinaryOpKind) Precedence() int {
	switch k {
	case BinaryMul, BinaryDiv:
		return 2
	default:
		return 1
	}
}

// BinaryOp pairs an operator kind with the token it was parsed from.
type BinaryOp struct {
	Kind  BinaryOpKind
	Token token.Token
}

func (op BinaryOp) Precedence() int { return op.Kind.Precedence() }

// BinaryOpFromToken maps + - * / tokens to operators.
func BinaryOpFromToken(tok token.Token) (BinaryOp, bool) {
	var kind BinaryOpKind
	switch tok.Kind {
	case token.Plus:
		kind = BinaryAdd
	case token.Minus:
		kind = BinarySub
	case token.Star:
		kind = BinaryMul
	case token.Slash:
		kind = BinaryDiv
	default:
		return BinaryOp{}, false
	}
	return BinaryOp{Kind: kind, Token: tok}, true
}

type ExprNumberData struct {
	Value int64
	Token token.Token
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprGroupData struct {
	Inner  ExprID
	LParen source.Span
	RParen source.Span
}

type ExprVariableData struct {
	Name  source.StringID
	Token token.Token
}
