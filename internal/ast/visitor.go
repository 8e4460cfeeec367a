package ast

import "reckon/internal/source"

// Visitor is implemented by every tree consumer (evaluator, printers,
// code generator). Dispatch and the default recursion live in Walker;
// a consumer embeds *Walker and overrides only the methods it cares about.
type Visitor interface {
	VisitStmt(id StmtID)
	VisitExpr(id ExprID)

	VisitExprStmt(id StmtID, data *StmtExprData)
	VisitLet(id StmtID, data *StmtLetData)

	VisitNumber(id ExprID, data *ExprNumberData)
	VisitBinary(id ExprID, data *ExprBinaryData)
	VisitGroup(id ExprID, data *ExprGroupData)
	VisitVariable(id ExprID, data *ExprVariableData)
	VisitError(id ExprID, span source.Span)
}

// Walker supplies default Visitor bodies. Every recursive call goes
// through Self, so overrides in the embedding consumer are honoured at
// every depth:
//
//	type counter struct {
//		*ast.Walker
//		n int
//	}
//
//	func (c *counter) VisitNumber(ast.ExprID, *ast.ExprNumberData) { c.n++ }
//
//	c := &counter{}
//	c.Walker = ast.NewWalker(tree, c)
//	c.WalkFile(file)
type Walker struct {
	Tree *Builder
	Self Visitor
}

// NewWalker binds a walker to tree. A nil self walks with the defaults only.
func NewWalker(tree *Builder, self Visitor) *Walker {
	w := &Walker{Tree: tree, Self: self}
	if w.Self == nil {
		w.Self = w
	}
	return w
}

// WalkFile visits the file's statements in source order.
func (w *Walker) WalkFile(id FileID) {
	file := w.Tree.Files.Get(id)
	if file == nil {
		return
	}
	for _, stmt := range file.Stmts {
		w.Self.VisitStmt(stmt)
	}
}

func (w *Walker) VisitStmt(id StmtID) { w.DoVisitStmt(id) }

// DoVisitStmt routes a statement to its kind-specific method.
func (w *Walker) DoVisitStmt(id StmtID) {
	stmt := w.Tree.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case StmtExpr:
		data, _ := w.Tree.Stmts.Expr(id)
		w.Self.VisitExprStmt(id, data)
	case StmtLet:
		data, _ := w.Tree.Stmts.Let(id)
		w.Self.VisitLet(id, data)
	}
}

func (w *Walker) VisitExpr(id ExprID) { w.DoVisitExpr(id) }

// DoVisitExpr routes an expression to its kind-specific method.
func (w *Walker) DoVisitExpr(id ExprID) {
	expr := w.Tree.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ExprNumber:
		data, _ := w.Tree.Exprs.Number(id)
		w.Self.VisitNumber(id, data)
	case ExprBinary:
		data, _ := w.Tree.Exprs.Binary(id)
		w.Self.VisitBinary(id, data)
	case ExprGroup:
		data, _ := w.Tree.Exprs.Group(id)
		w.Self.VisitGroup(id, data)
	case ExprVariable:
		data, _ := w.Tree.Exprs.Variable(id)
		w.Self.VisitVariable(id, data)
	case ExprError:
		w.Self.VisitError(id, expr.Span)
	}
}

func (w *Walker) VisitExprStmt(_ StmtID, data *StmtExprData) {
	w.Self.VisitExpr(data.Expr)
}

func (w *Walker) VisitLet(_ StmtID, data *StmtLetData) {
	w.Self.VisitExpr(data.Value)
}

func (w *Walker) VisitNumber(ExprID, *ExprNumberData) {}

// VisitBinary visits left, then right.
func (w *Walker) VisitBinary(_ ExprID, data *ExprBinaryData) {
	w.Self.VisitExpr(data.Left)
	w.Self.VisitExpr(data.Right)
}

func (w *Walker) VisitGroup(_ ExprID, data *ExprGroupData) {
	w.Self.VisitExpr(data.Inner)
}

func (w *Walker) VisitVariable(ExprID, *ExprVariableData) {}

func (w *Walker) VisitError(ExprID, source.Span) {}
