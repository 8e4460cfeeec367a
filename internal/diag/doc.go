// Package diag defines the diagnostic model shared by the reckon front end.
//
// A Diagnostic is a source-located problem that does not stop the phase that
// found it: the parser reports and keeps going, and the driver inspects the
// Bag once parsing is done. Any error-level diagnostic means evaluation does
// not run.
//
// Producers emit through a Reporter (usually BagReporter) using the
// ReportError / ReportWarning builders, or the ReportUnexpectedToken and
// ReportExpectedExpression helpers which fix the message wording:
//
//	Expected <RParen> | Found <EOF>
//	Expected Expression | Found <Bad>
//
// Package diag does no rendering; see internal/diagfmt.
package diag
