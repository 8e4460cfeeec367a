package diag

import (
	"fmt"

	"reckon/internal/source"
	"reckon/internal/token"
)

// Reporter - минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, primary, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// UnexpectedTokenMessage renders "Expected <X> | Found <Y>".
func UnexpectedTokenMessage(expected, found token.Kind) string {
	return fmt.Sprintf("Expected <%s> | Found <%s>", expected, found)
}

// ExpectedExpressionMessage renders "Expected Expression | Found <Y>".
func ExpectedExpressionMessage(found token.Kind) string {
	return fmt.Sprintf("Expected Expression | Found <%s>", found)
}

// ReportUnexpectedToken reports a required token that did not match. The
// span is the token actually found.
func ReportUnexpectedToken(r Reporter, code Code, expected token.Kind, found token.Token) *ReportBuilder {
	if code == UnknownCode {
		code = SynUnexpectedToken
	}
	return ReportError(r, code, found.Span, UnexpectedTokenMessage(expected, found.Kind))
}

// ReportExpectedExpression reports a token that cannot start an expression.
func ReportExpectedExpression(r Reporter, found token.Token) *ReportBuilder {
	code := SynExpectExpression
	if found.Kind == token.Bad {
		code = LexUnknownChar
	}
	return ReportError(r, code, found.Span, ExpectedExpressionMessage(found.Kind))
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter - адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}
