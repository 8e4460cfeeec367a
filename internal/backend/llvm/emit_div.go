package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// emitDiv lowers a truncating signed division with the evaluator's rules:
// a zero divisor aborts main with exit status 1, MinInt64 / -1 wraps.
//
//	entry:        br (rhs == 0) div.zero, div.check
//	div.zero:     printf(panic...) ; ret 1
//	div.check:    br (rhs == -1) div.neg, div.quot
//	div.neg:      0 - lhs
//	div.quot:     sdiv lhs, rhs
//	div.done:     phi
func (e *Emitter) emitDiv(left, right value.Value) value.Value {
	if c, ok := right.(*constant.Int); ok && c.X.Sign() != 0 && c.X.Int64() != -1 {
		return e.cur.NewSDiv(left, right)
	}

	e.divs++
	n := e.divs
	zero := constant.NewInt(types.I64, 0)

	trap := e.main.NewBlock(fmt.Sprintf("div.zero.%d", n))
	check := e.main.NewBlock(fmt.Sprintf("div.check.%d", n))
	neg := e.main.NewBlock(fmt.Sprintf("div.neg.%d", n))
	quot := e.main.NewBlock(fmt.Sprintf("div.quot.%d", n))
	done := e.main.NewBlock(fmt.Sprintf("div.done.%d", n))

	isZero := e.cur.NewICmp(enum.IPredEQ, right, zero)
	e.cur.NewCondBr(isZero, trap, check)

	trap.NewCall(e.printf, cstringPtr(e.fmtDiv0))
	trap.NewRet(constant.NewInt(types.I32, 1))

	// sdiv MinInt64, -1 is undefined behaviour in LLVM
	isNegOne := check.NewICmp(enum.IPredEQ, right, constant.NewInt(types.I64, -1))
	check.NewCondBr(isNegOne, neg, quot)

	negated := neg.NewSub(zero, left)
	neg.NewBr(done)

	q := quot.NewSDiv(left, right)
	quot.NewBr(done)

	e.cur = done
	return done.NewPhi(ir.NewIncoming(negated, neg), ir.NewIncoming(q, quot))
}
