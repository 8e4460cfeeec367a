package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"reckon/internal/ast"
	"reckon/internal/diag"
	"reckon/internal/parser"
	"reckon/internal/source"
)

type parsed struct {
	fs   *source.FileSet
	tree *ast.Builder
	file ast.FileID
	bag  *diag.Bag
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.rk", []byte(src)))
	bag := diag.NewBag(0)
	tree := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(f, tree, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if res.Bag != bag {
		t.Fatalf("Result.Bag does not point at the reporter's bag")
	}
	return parsed{fs: fs, tree: tree, file: res.File, bag: bag}
}

func (p parsed) stmts() []ast.StmtID {
	return p.tree.Files.Get(p.file).Stmts
}

// sexpr renders a statement as an s-expression ignoring spans.
func (p parsed) sexpr(id ast.StmtID) string {
	if let, ok := p.tree.Stmts.Let(id); ok {
		return fmt.Sprintf("(let %s %s)", p.tree.Name(let.Name), p.exprSexpr(let.Value))
	}
	st, _ := p.tree.Stmts.Expr(id)
	return p.exprSexpr(st.Expr)
}

func (p parsed) exprSexpr(id ast.ExprID) string {
	ex := p.tree.Exprs
	switch ex.Get(id).Kind {
	case ast.ExprNumber:
		n, _ := ex.Number(id)
		return fmt.Sprint(n.Value)
	case ast.ExprBinary:
		b, _ := ex.Binary(id)
		return fmt.Sprintf("(%s %s %s)", b.Op.Kind, p.exprSexpr(b.Left), p.exprSexpr(b.Right))
	case ast.ExprGroup:
		g, _ := ex.Group(id)
		return fmt.Sprintf("[%s]", p.exprSexpr(g.Inner))
	case ast.ExprVariable:
		v, _ := ex.Variable(id)
		return p.tree.Name(v.Name)
	default:
		return "<error>"
	}
}

func (p parsed) all() string {
	parts := make([]string, 0, len(p.stmts()))
	for _, st := range p.stmts() {
		parts = append(parts, p.sexpr(st))
	}
	return strings.Join(parts, " ; ")
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
