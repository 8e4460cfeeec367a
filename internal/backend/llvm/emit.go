// Package llvm lowers a parsed reckon program to LLVM IR.
//
// The output is a single `main` that computes every statement, prints the
// last value with printf and returns 0. A division whose divisor turns out
// to be zero prints the same "panic EVAL1002" line the evaluator would and
// returns 1.
package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"reckon/internal/ast"
	"reckon/internal/source"
)

// DefaultTriple is written into every module unless Options overrides it.
const DefaultTriple = "x86_64-unknown-linux-gnu"

type Options struct {
	Triple     string
	SourceName string
	// Silent drops the final printf; main only returns the exit status.
	Silent bool
}

// Emitter is an ast.Visitor that builds instructions into the current block.
type Emitter struct {
	*ast.Walker
	mod  *ir.Module
	main *ir.Func
	cur  *ir.Block

	printf  *ir.Func
	fmtInt  *ir.Global
	fmtDiv0 *ir.Global

	slots map[source.StringID]*ir.InstAlloca
	last  value.Value
	divs  int
	opts  Options
}

// EmitModule lowers every statement of file into a fresh module.
func EmitModule(tree *ast.Builder, file ast.FileID, opts Options) (mod *ir.Module, err error) {
	if tree.Files.Get(file) == nil {
		return nil, fmt.Errorf("file %d not found", file)
	}
	e := newEmitter(tree, opts)

	defer func() {
		if r := recover(); r != nil {
			ee, ok := r.(*EmitError)
			if !ok {
				panic(r)
			}
			mod, err = nil, ee
		}
	}()

	e.WalkFile(file)
	e.finish()
	return e.mod, nil
}

// Emit is EmitModule rendered to LLVM assembly text.
func Emit(tree *ast.Builder, file ast.FileID, opts Options) (string, error) {
	mod, err := EmitModule(tree, file, opts)
	if err != nil {
		return "", err
	}
	return mod.String(), nil
}

func newEmitter(tree *ast.Builder, opts Options) *Emitter {
	if opts.Triple == "" {
		opts.Triple = DefaultTriple
	}
	e := &Emitter{
		mod:   ir.NewModule(),
		slots: make(map[source.StringID]*ir.InstAlloca),
		opts:  opts,
	}
	e.Walker = ast.NewWalker(tree, e)

	e.mod.TargetTriple = opts.Triple
	e.mod.SourceFilename = opts.SourceName
	e.declareRuntime()

	e.main = e.mod.NewFunc("main", types.I32)
	e.cur = e.main.NewBlock("entry")
	return e
}

func (e *Emitter) declareRuntime() {
	e.printf = e.mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	e.printf.Sig.Variadic = true

	e.fmtInt = e.cstring("fmt.int", "%lld\n")
	e.fmtDiv0 = e.cstring("fmt.div0", "panic EVAL1002: division by zero\n")
}

// cstring defines a private NUL-terminated constant.
func (e *Emitter) cstring(name, s string) *ir.Global {
	g := e.mod.NewGlobalDef(name, constant.NewCharArrayFromString(s+"\x00"))
	g.Immutable = true
	return g
}

// cstringPtr returns an i8* to the first byte of g.
func cstringPtr(g *ir.Global) constant.Constant {
	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}

func (e *Emitter) finish() {
	if e.last != nil && !e.opts.Silent {
		e.cur.NewCall(e.printf, cstringPtr(e.fmtInt), e.last)
	}
	e.cur.NewRet(constant.NewInt(types.I32, 0))
}

// value lowers id and returns the SSA value it produced.
func (e *Emitter) value(id ast.ExprID) value.Value {
	e.last = nil
	e.Self.VisitExpr(id)
	if e.last == nil {
		var span source.Span
		if expr := e.Tree.Exprs.Get(id); expr != nil {
			span = expr.Span
		}
		panic(&EmitError{Span: span, Message: "expression produced no value"})
	}
	return e.last
}

func (e *Emitter) VisitLet(_ ast.StmtID, data *ast.StmtLetData) {
	v := e.value(data.Value)
	slot, ok := e.slots[data.Name]
	if !ok {
		// allocas live in the entry block so they dominate every use
		slot = ir.NewAlloca(types.I64)
		slot.SetName(e.Tree.Name(data.Name) + ".addr")
		entry := e.main.Blocks[0]
		entry.Insts = append([]ir.Instruction{slot}, entry.Insts...)
		e.slots[data.Name] = slot
	}
	e.cur.NewStore(v, slot)
	e.last = v
}

func (e *Emitter) VisitNumber(_ ast.ExprID, data *ast.ExprNumberData) {
	e.last = constant.NewInt(types.I64, data.Value)
}

func (e *Emitter) VisitBinary(id ast.ExprID, data *ast.ExprBinaryData) {
	left := e.value(data.Left)
	right := e.value(data.Right)

	switch data.Op.Kind {
	case ast.BinaryAdd:
		e.last = e.cur.NewAdd(left, right)
	case ast.BinarySub:
		e.last = e.cur.NewSub(left, right)
	case ast.BinaryMul:
		e.last = e.cur.NewMul(left, right)
	case ast.BinaryDiv:
		e.last = e.emitDiv(left, right)
	default:
		panic(&EmitError{Span: e.Tree.Exprs.Get(id).Span, Message: fmt.Sprintf("unsupported operator %s", data.Op.Kind)})
	}
}

func (e *Emitter) VisitVariable(_ ast.ExprID, data *ast.ExprVariableData) {
	slot, ok := e.slots[data.Name]
	if !ok {
		panic(&EmitError{Span: data.Token.Span, Message: fmt.Sprintf("variable %q is not bound", data.Token.Text)})
	}
	e.last = e.cur.NewLoad(types.I64, slot)
}

func (e *Emitter) VisitError(_ ast.ExprID, span source.Span) {
	panic(&EmitError{Span: span, Message: "cannot compile an invalid expression"})
}
