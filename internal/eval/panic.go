package eval

import (
	"fmt"
	"strings"

	"reckon/internal/source"
)

// ErrorCode identifies the kind of evaluation failure.
type ErrorCode int

// Stable error codes - do not change values.
const (
	ErrUnboundVariable ErrorCode = 1001 // EVAL1001: variable read before any let
	ErrDivisionByZero  ErrorCode = 1002 // EVAL1002: integer division by zero
	ErrErrorNode       ErrorCode = 1003 // EVAL1003: tree still holds a parse error
	ErrMissingOperand  ErrorCode = 1004 // EVAL1004: expression produced no value
)

// String returns the code as "EVAL1001" format.
func (c ErrorCode) String() string {
	return fmt.Sprintf("EVAL%d", c)
}

// EvalError is a fatal evaluation failure. Evaluation stops at the first
// one; no value is substituted.
type EvalError struct {
	Code    ErrorCode
	Message string
	Span    source.Span // узел, на котором остановились
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("panic %s: %s", e.Code, e.Message)
}

// FormatWithFiles formats the error with resolved file:line:col information.
func (e *EvalError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "panic %s: %s\n", e.Code, e.Message)
	sb.WriteString("at ")
	sb.WriteString(formatSpan(e.Span, files))
	sb.WriteString("\n")
	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>".
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || int(span.File) >= files.Len() {
		return "<no-span>"
	}
	file := files.Get(span.File)
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

func unboundVariable(name string, span source.Span) *EvalError {
	return &EvalError{Code: ErrUnboundVariable, Message: fmt.Sprintf("variable %q is not bound", name), Span: span}
}

func divisionByZero(span source.Span) *EvalError {
	return &EvalError{Code: ErrDivisionByZero, Message: "division by zero", Span: span}
}

func errorNode(span source.Span) *EvalError {
	return &EvalError{Code: ErrErrorNode, Message: "cannot evaluate an invalid expression", Span: span}
}

func missingOperand(span source.Span) *EvalError {
	return &EvalError{Code: ErrMissingOperand, Message: "expression produced no value", Span: span}
}
