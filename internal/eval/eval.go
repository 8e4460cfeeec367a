// Package eval walks a parsed reckon program and computes its value.
//
// Arithmetic is on int64 and wraps on overflow; division truncates toward
// zero. Variables live in one flat table for the whole run. Failures
// (unbound variable, division by zero, an error node left by the parser)
// are fatal and come back as *EvalError.
package eval

import (
	"reckon/internal/ast"
	"reckon/internal/source"
)

// Result is what a run leaves behind.
type Result struct {
	// Value is the last computed value; HasValue is false for an empty program.
	Value    int64
	HasValue bool
	Bindings map[string]int64
}

// Evaluator is an ast.Visitor. It overrides the leaf visits and Binary;
// dispatch and statement traversal come from the embedded Walker.
type Evaluator struct {
	*ast.Walker
	last    int64
	hasLast bool
	vars    map[source.StringID]int64
}

func New(tree *ast.Builder) *Evaluator {
	e := &Evaluator{
		vars: make(map[source.StringID]int64),
	}
	e.Walker = ast.NewWalker(tree, e)
	return e
}

// Run evaluates every statement of file in order. Bindings persist across
// calls, so a caller may feed one file at a time.
func (e *Evaluator) Run(file ast.FileID) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			ee, ok := r.(*EvalError)
			if !ok {
				panic(r)
			}
			err = ee
		}
	}()

	e.WalkFile(file)
	return e.Result(), nil
}

// Result snapshots the current state.
func (e *Evaluator) Result() Result {
	bindings := make(map[string]int64, len(e.vars))
	for id, v := range e.vars {
		bindings[e.Tree.Name(id)] = v
	}
	return Result{Value: e.last, HasValue: e.hasLast, Bindings: bindings}
}

// Lookup returns the current value bound to name.
func (e *Evaluator) Lookup(name string) (int64, bool) {
	id, ok := e.Tree.Strings.Find(name)
	if !ok {
		return 0, false
	}
	v, ok := e.vars[id]
	return v, ok
}

// value evaluates id and returns what it produced.
func (e *Evaluator) value(id ast.ExprID) int64 {
	e.hasLast = false
	e.Self.VisitExpr(id)
	if !e.hasLast {
		var span source.Span
		if expr := e.Tree.Exprs.Get(id); expr != nil {
			span = expr.Span
		}
		panic(missingOperand(span))
	}
	return e.last
}

func (e *Evaluator) set(v int64) {
	e.last = v
	e.hasLast = true
}

func (e *Evaluator) VisitLet(_ ast.StmtID, data *ast.StmtLetData) {
	v := e.value(data.Value)
	e.vars[data.Name] = v
	e.set(v)
}

func (e *Evaluator) VisitNumber(_ ast.ExprID, data *ast.ExprNumberData) {
	e.set(data.Value)
}

func (e *Evaluator) VisitBinary(id ast.ExprID, data *ast.ExprBinaryData) {
	left := e.value(data.Left)
	right := e.value(data.Right)

	switch data.Op.Kind {
	case ast.BinaryAdd:
		e.set(left + right)
	case ast.BinarySub:
		e.set(left - right)
	case ast.BinaryMul:
		e.set(left * right)
	case ast.BinaryDiv:
		if right == 0 {
			panic(divisionByZero(e.Tree.Exprs.Get(id).Span))
		}
		e.set(left / right)
	}
}

func (e *Evaluator) VisitVariable(_ ast.ExprID, data *ast.ExprVariableData) {
	v, ok := e.vars[data.Name]
	if !ok {
		panic(unboundVariable(data.Token.Text, data.Token.Span))
	}
	e.set(v)
}

func (e *Evaluator) VisitError(_ ast.ExprID, span source.Span) {
	panic(errorNode(span))
}
