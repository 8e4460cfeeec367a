package ast

// EqualExpr reports whether two expressions, possibly from different
// builders, have the same shape: kinds, operators, literal values and
// names. Spans are ignored.
func EqualExpr(a *Builder, x ExprID, b *Builder, y ExprID) bool {
	ex, ey := a.Exprs.Get(x), b.Exprs.Get(y)
	if ex == nil || ey == nil {
		return ex == nil && ey == nil
	}
	if ex.Kind != ey.Kind {
		return false
	}
	switch ex.Kind {
	case ExprNumber:
		nx, _ := a.Exprs.Number(x)
		ny, _ := b.Exprs.Number(y)
		return nx.Value == ny.Value
	case ExprBinary:
		bx, _ := a.Exprs.Binary(x)
		by, _ := b.Exprs.Binary(y)
		return bx.Op.Kind == by.Op.Kind &&
			EqualExpr(a, bx.Left, b, by.Left) &&
			EqualExpr(a, bx.Right, b, by.Right)
	case ExprGroup:
		gx, _ := a.Exprs.Group(x)
		gy, _ := b.Exprs.Group(y)
		return EqualExpr(a, gx.Inner, b, gy.Inner)
	case ExprVariable:
		vx, _ := a.Exprs.Variable(x)
		vy, _ := b.Exprs.Variable(y)
		return a.Name(vx.Name) == b.Name(vy.Name)
	default:
		return true
	}
}

// EqualStmt is EqualExpr for statements.
func EqualStmt(a *Builder, x StmtID, b *Builder, y StmtID) bool {
	sx, sy := a.Stmts.Get(x), b.Stmts.Get(y)
	if sx == nil || sy == nil {
		return sx == nil && sy == nil
	}
	if sx.Kind != sy.Kind {
		return false
	}
	switch sx.Kind {
	case StmtLet:
		lx, _ := a.Stmts.Let(x)
		ly, _ := b.Stmts.Let(y)
		return a.Name(lx.Name) == b.Name(ly.Name) && EqualExpr(a, lx.Value, b, ly.Value)
	default:
		ex, _ := a.Stmts.Expr(x)
		ey, _ := b.Stmts.Expr(y)
		return EqualExpr(a, ex.Expr, b, ey.Expr)
	}
}

// EqualFile compares two files statement by statement.
func EqualFile(a *Builder, x FileID, b *Builder, y FileID) bool {
	fx, fy := a.Files.Get(x), b.Files.Get(y)
	if fx == nil || fy == nil {
		return fx == nil && fy == nil
	}
	if len(fx.Stmts) != len(fy.Stmts) {
		return false
	}
	for i := range fx.Stmts {
		if !EqualStmt(a, fx.Stmts[i], b, fy.Stmts[i]) {
			return false
		}
	}
	return true
}
