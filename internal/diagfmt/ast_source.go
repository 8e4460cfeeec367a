package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"reckon/internal/ast"
	"reckon/internal/source"
)

// sourcePrinter re-emits a tree as program text, one statement per line.
// Group nodes print as parentheses; extra parentheses are added only where
// a hand-built tree would otherwise re-associate.
type sourcePrinter struct {
	*ast.Walker
	sb strings.Builder
	fs *source.FileSet
}

// FormatASTSource writes text that parses back into an equal tree.
func FormatASTSource(w io.Writer, tree *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := tree.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	p := &sourcePrinter{fs: fs}
	p.Walker = ast.NewWalker(tree, p)
	for _, stmt := range file.Stmts {
		p.VisitStmt(stmt)
		p.sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, p.sb.String())
	return err
}

// ExprSource renders a single expression.
func ExprSource(tree *ast.Builder, id ast.ExprID) string {
	p := &sourcePrinter{}
	p.Walker = ast.NewWalker(tree, p)
	p.VisitExpr(id)
	return p.sb.String()
}

func (p *sourcePrinter) VisitLet(_ ast.StmtID, data *ast.StmtLetData) {
	p.sb.WriteString("let ")
	p.sb.WriteString(p.Tree.Name(data.Name))
	p.sb.WriteString(" = ")
	p.VisitExpr(data.Value)
}

func (p *sourcePrinter) VisitNumber(_ ast.ExprID, data *ast.ExprNumberData) {
	// literal text survives wrapping: 9223372036854775808 prints as written
	if data.Token.Text != "" {
		p.sb.WriteString(data.Token.Text)
		return
	}
	p.sb.WriteString(strconv.FormatInt(data.Value, 10))
}

func (p *sourcePrinter) VisitBinary(_ ast.ExprID, data *ast.ExprBinaryData) {
	prec := data.Op.Precedence()
	p.operand(data.Left, prec)
	p.sb.WriteByte(' ')
	p.sb.WriteString(data.Op.Kind.String())
	p.sb.WriteByte(' ')
	p.operand(data.Right, prec+1)
}

// operand parenthesizes a bare binary child that binds looser than floor.
func (p *sourcePrinter) operand(id ast.ExprID, floor int) {
	if data, ok := p.Tree.Exprs.Binary(id); ok && data.Op.Precedence() < floor {
		p.sb.WriteByte('(')
		p.VisitExpr(id)
		p.sb.WriteByte(')')
		return
	}
	p.VisitExpr(id)
}

func (p *sourcePrinter) VisitGroup(_ ast.ExprID, data *ast.ExprGroupData) {
	p.sb.WriteByte('(')
	p.VisitExpr(data.Inner)
	p.sb.WriteByte(')')
}

func (p *sourcePrinter) VisitVariable(_ ast.ExprID, data *ast.ExprVariableData) {
	p.sb.WriteString(p.Tree.Name(data.Name))
}

func (p *sourcePrinter) VisitError(_ ast.ExprID, span source.Span) {
	if p.fs != nil && int(span.File) < p.fs.Len() {
		if text := p.fs.Get(span.File).Text(span); text != "" {
			p.sb.WriteString(text)
			return
		}
	}
	p.sb.WriteString("<error>")
}
