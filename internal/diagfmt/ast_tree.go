package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"reckon/internal/ast"
	"reckon/internal/source"
)

const treeIndentStep = 2

// treePrinter prints one line per node, children indented by two spaces:
//
//	Statement:
//	  Expression:
//	    Binary: Add
//	      Expression:
//	        Number: 1
//	      Expression:
//	        Number: 2
type treePrinter struct {
	*ast.Walker
	w      io.Writer
	fs     *source.FileSet
	indent int
	err    error
}

// FormatASTTree печатает дерево файла, по строке на узел.
func FormatASTTree(w io.Writer, tree *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	if tree.Files.Get(fileID) == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	p := &treePrinter{w: w, fs: fs}
	p.Walker = ast.NewWalker(tree, p)
	p.WalkFile(fileID)
	return p.err
}

func (p *treePrinter) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", p.indent), fmt.Sprintf(format, args...))
}

func (p *treePrinter) nested(fn func()) {
	p.indent += treeIndentStep
	fn()
	p.indent -= treeIndentStep
}

func (p *treePrinter) VisitStmt(id ast.StmtID) {
	p.line("Statement:")
	p.nested(func() { p.DoVisitStmt(id) })
}

func (p *treePrinter) VisitExpr(id ast.ExprID) {
	p.line("Expression:")
	p.nested(func() { p.DoVisitExpr(id) })
}

func (p *treePrinter) VisitLet(id ast.StmtID, data *ast.StmtLetData) {
	p.line("Let: %s", p.Tree.Name(data.Name))
	p.nested(func() { p.Walker.VisitLet(id, data) })
}

func (p *treePrinter) VisitNumber(_ ast.ExprID, data *ast.ExprNumberData) {
	p.line("Number: %d", data.Value)
}

func (p *treePrinter) VisitBinary(id ast.ExprID, data *ast.ExprBinaryData) {
	p.line("Binary: %s", data.Op.Kind.Name())
	p.nested(func() { p.Walker.VisitBinary(id, data) })
}

func (p *treePrinter) VisitGroup(id ast.ExprID, data *ast.ExprGroupData) {
	p.line("Group:")
	p.nested(func() { p.Walker.VisitGroup(id, data) })
}

func (p *treePrinter) VisitVariable(_ ast.ExprID, data *ast.ExprVariableData) {
	p.line("Variable: %s", p.Tree.Name(data.Name))
}

func (p *treePrinter) VisitError(_ ast.ExprID, span source.Span) {
	p.line("Error: %s", formatSpan(span, p.fs))
}

// formatSpan formats a span as "startLine:startCol-endLine:endCol" when fs
// is known and as "span(start-end)" otherwise.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
