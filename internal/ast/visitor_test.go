package ast_test

import (
	"strings"
	"testing"

	"reckon/internal/ast"
	"reckon/internal/source"
	"reckon/internal/token"
)

func num(b *ast.Builder, v int64) ast.ExprID {
	return b.Exprs.NewNumber(token.Token{Kind: token.Number, Value: v})
}

func bin(b *ast.Builder, kind token.Kind, l, r ast.ExprID) ast.ExprID {
	op, ok := ast.BinaryOpFromToken(token.Token{Kind: kind})
	if !ok {
		panic("not an operator: " + kind.String())
	}
	return b.Exprs.NewBinary(source.Span{}, op, l, r)
}

// buildSample builds `let x = (1 + 2) * 3` followed by `x - y`, and `?`.
func buildSample() (*ast.Builder, ast.FileID) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	file := b.NewFile(source.Span{})

	inner := bin(b, token.Plus, num(b, 1), num(b, 2))
	group := b.Exprs.NewGroup(source.Span{}, inner, source.Span{}, source.Span{})
	value := bin(b, token.Star, group, num(b, 3))
	b.PushStmt(file, b.Stmts.NewLet(source.Span{}, ast.StmtLetData{
		Name:  b.Strings.Intern("x"),
		Value: value,
	}))

	x := b.Exprs.NewVariable(b.Strings.Intern("x"), token.Token{Kind: token.Ident, Text: "x"})
	y := b.Exprs.NewVariable(b.Strings.Intern("y"), token.Token{Kind: token.Ident, Text: "y"})
	b.PushStmt(file, b.Stmts.NewExpr(source.Span{}, bin(b, token.Minus, x, y)))
	b.PushStmt(file, b.Stmts.NewExpr(source.Span{}, b.Exprs.NewError(source.Span{Start: 9, End: 10})))
	return b, file
}

// recorder overrides the leaves only and relies on the default recursion.
type recorder struct {
	*ast.Walker
	events []string
}

func (r *recorder) VisitNumber(_ ast.ExprID, data *ast.ExprNumberData) {
	r.events = append(r.events, "num")
}

func (r *recorder) VisitVariable(_ ast.ExprID, data *ast.ExprVariableData) {
	r.events = append(r.events, "var:"+r.Tree.Name(data.Name))
}

func (r *recorder) VisitError(_ ast.ExprID, span source.Span) {
	r.events = append(r.events, "error@"+span.String())
}

func TestWalkerDefaultRecursion(t *testing.T) {
	tree, file := buildSample()
	r := &recorder{}
	r.Walker = ast.NewWalker(tree, r)
	r.WalkFile(file)

	got := strings.Join(r.events, " ")
	want := "num num num var:x var:y error@0:9-10"
	if got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}

// opTracer overrides VisitBinary but keeps the default traversal for children.
type opTracer struct {
	*ast.Walker
	ops []string
}

func (o *opTracer) VisitBinary(id ast.ExprID, data *ast.ExprBinaryData) {
	o.Walker.VisitBinary(id, data)
	o.ops = append(o.ops, data.Op.Kind.String())
}

func TestWalkerOverrideSeesNestedNodes(t *testing.T) {
	tree, file := buildSample()
	o := &opTracer{}
	o.Walker = ast.NewWalker(tree, o)
	o.WalkFile(file)

	if got := strings.Join(o.ops, ""); got != "+*-" {
		t.Fatalf("post-order ops = %q, want +*-", got)
	}
}

func TestWalkerNilSelf(t *testing.T) {
	tree, file := buildSample()
	w := ast.NewWalker(tree, nil)
	w.WalkFile(file) // must not panic
	w.WalkFile(ast.FileID(42))
}

func TestPrecedence(t *testing.T) {
	cases := map[token.Kind]int{
		token.Plus: 1, token.Minus: 1, token.Star: 2, token.Slash: 2,
	}
	for k, want := range cases {
		op, ok := ast.BinaryOpFromToken(token.Token{Kind: k})
		if !ok || op.Precedence() != want {
			t.Errorf("%v: precedence %d ok=%v, want %d", k, op.Precedence(), ok, want)
		}
	}
	if _, ok := ast.BinaryOpFromToken(token.Token{Kind: token.Assign}); ok {
		t.Error("'=' must not be a binary operator")
	}
}

func TestEqualFile(t *testing.T) {
	a, fa := buildSample()
	b, fb := buildSample()
	if !ast.EqualFile(a, fa, b, fb) {
		t.Fatal("identical builds compare unequal")
	}

	c := ast.NewBuilder(ast.Hints{}, nil)
	fc := c.NewFile(source.Span{})
	c.PushStmt(fc, c.Stmts.NewExpr(source.Span{}, num(c, 1)))
	if ast.EqualFile(a, fa, c, fc) {
		t.Fatal("different files compare equal")
	}
}

func TestArenaBounds(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena returned a value")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("Allocate = %d, Get = %v, Len = %d", id, a.Get(id), a.Len())
	}
}
