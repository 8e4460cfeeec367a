package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"reckon/internal/ast"
	"reckon/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is within file content bounds (empty only for an empty program)
// 2) every statement span is non-empty and fully contained in file.Span
// 3) every expression span is contained in its parent's span; only Error
//    nodes may be empty (a missing operand at EOF)
// 4) file.Span covers the union of statement spans
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.End < f.Span.Start {
		return fmt.Errorf("file span is inverted: %v", f.Span)
	}
	if f.Span.Empty() && len(f.Stmts) > 0 {
		return fmt.Errorf("file span is empty but holds %d statements", len(f.Stmts))
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	// 2) statement spans within file span; 4) file covers union
	var union source.Span
	var haveStmt bool
	for _, id := range f.Stmts {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := st.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty statement span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !within(sp, f.Span) {
			return fmt.Errorf("statement span %v is outside file span %v", sp, f.Span)
		}
		if err := checkStmt(b, id, sp); err != nil {
			return err
		}
		if !haveStmt {
			union = sp
			haveStmt = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveStmt && !within(union, f.Span) {
		return fmt.Errorf("file span %v does not cover union of statements %v", f.Span, union)
	}
	return nil
}

func checkStmt(b *ast.Builder, id ast.StmtID, parent source.Span) error {
	if data, ok := b.Stmts.Let(id); ok {
		if !within(data.LetSpan, parent) {
			return fmt.Errorf("let keyword %v is outside statement %v", data.LetSpan, parent)
		}
		return checkExpr(b, data.Value, parent)
	}
	if data, ok := b.Stmts.Expr(id); ok {
		return checkExpr(b, data.Expr, parent)
	}
	return fmt.Errorf("statement %d has unknown kind", id)
}

// 3) рекурсивно по выражениям
func checkExpr(b *ast.Builder, id ast.ExprID, parent source.Span) error {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	sp := expr.Span
	if sp.File != parent.File {
		return fmt.Errorf("expression span file mismatch: got=%d want=%d", sp.File, parent.File)
	}
	if sp.Empty() && expr.Kind != ast.ExprError {
		return fmt.Errorf("empty %v span: %v", expr.Kind, sp)
	}
	if !within(sp, parent) {
		return fmt.Errorf("%v span %v is outside parent %v", expr.Kind, sp, parent)
	}

	switch expr.Kind {
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		if err := checkExpr(b, data.Left, sp); err != nil {
			return err
		}
		return checkExpr(b, data.Right, sp)
	case ast.ExprGroup:
		data, _ := b.Exprs.Group(id)
		return checkExpr(b, data.Inner, sp)
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}
