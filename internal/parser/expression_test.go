package parser_test

import (
	"testing"
)

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"1+2*3", "(+ 1 (* 2 3))"},
		{"(1+2)*3", "(* [(+ 1 2)] 3)"},
		{"10-3-2", "(- (- 10 3) 2)"},
		{"8/4/2", "(/ (/ 8 4) 2)"},
		{"1*2+3*4", "(+ (* 1 2) (* 3 4))"},
		{"1+2*3-4/2", "(- (+ 1 (* 2 3)) (/ 4 2))"},
		{"2*3*4+5", "(+ (* (* 2 3) 4) 5)"},
		{"((1))", "[[1]]"},
		{"a * (b - c)", "(* a [(- b c)])"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := parseSource(t, tt.src)
			if p.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
			}
			if got := p.all(); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBinarySpans(t *testing.T) {
	p := parseSource(t, "1 + 2 * 3")
	st, _ := p.tree.Stmts.Expr(p.stmts()[0])
	root := p.tree.Exprs.Get(st.Expr)
	if root.Span.Start != 0 || root.Span.End != 9 {
		t.Fatalf("root span = %v, want 0..9", root.Span)
	}
	bin, _ := p.tree.Exprs.Binary(st.Expr)
	right := p.tree.Exprs.Get(bin.Right)
	if right.Span.Start != 4 || right.Span.End != 9 {
		t.Fatalf("right span = %v, want 4..9", right.Span)
	}
	if bin.Op.Token.Text != "+" || bin.Op.Token.Span.Start != 2 {
		t.Fatalf("operator token = %+v", bin.Op.Token)
	}
}

func TestGroupSpanCoversParens(t *testing.T) {
	p := parseSource(t, " (1+2) ")
	st, _ := p.tree.Stmts.Expr(p.stmts()[0])
	g := p.tree.Exprs.Get(st.Expr)
	if g.Span.Start != 1 || g.Span.End != 6 {
		t.Fatalf("group span = %v, want 1..6", g.Span)
	}
}

func TestExpectedExpression(t *testing.T) {
	tests := []struct {
		src   string
		tree  string
		diags string
	}{
		{"1 +", "(+ 1 <error>)", "[SYN2203] Expected Expression | Found <EOF>"},
		{")", "<error>", "[SYN2203] Expected Expression | Found <RParen>"},
		{"1 + 1 & 0", "(+ 1 1) ; <error> ; 0", "[LEX1001] Expected Expression | Found <Bad>"},
		{"* 2", "<error> ; 2", "[SYN2203] Expected Expression | Found <Star>"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := parseSource(t, tt.src)
			if got := p.all(); got != tt.tree {
				t.Errorf("tree = %s, want %s", got, tt.tree)
			}
			if got := diagnosticsSummary(p.bag); got != tt.diags {
				t.Errorf("diags = %s, want %s", got, tt.diags)
			}
		})
	}
}

func TestErrorNodeSpan(t *testing.T) {
	p := parseSource(t, "1 + 1 & 0")
	st, _ := p.tree.Stmts.Expr(p.stmts()[1])
	e := p.tree.Exprs.Get(st.Expr)
	if e.Span.Start != 6 || e.Span.End != 7 {
		t.Fatalf("error node span = %v, want 6..7", e.Span)
	}
	if d := p.bag.Items()[0]; d.Primary != e.Span {
		t.Fatalf("diagnostic span %v != error node span %v", d.Primary, e.Span)
	}
}

func TestMissingCloseParenContinues(t *testing.T) {
	p := parseSource(t, "(1+2")
	if got := p.all(); got != "[(+ 1 2)]" {
		t.Fatalf("tree = %s", got)
	}
	items := p.bag.Items()
	if len(items) != 1 {
		t.Fatalf("diags = %s", diagnosticsSummary(p.bag))
	}
	d := items[0]
	if d.Message != "Expected <RParen> | Found <EOF>" || d.Code.ID() != "SYN2006" {
		t.Fatalf("diag = [%s] %s", d.Code.ID(), d.Message)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Start != 0 {
		t.Fatalf("expected a note at the opening paren, got %+v", d.Notes)
	}
}

func TestWrongCloserIsConsumed(t *testing.T) {
	// The token seen in place of ')' is used up; parsing resumes after it.
	p := parseSource(t, "(1 2 3")
	if got := p.all(); got != "[1] ; 3" {
		t.Fatalf("tree = %s", got)
	}
	if got := diagnosticsSummary(p.bag); got != "[SYN2006] Expected <RParen> | Found <Number>" {
		t.Fatalf("diags = %s", got)
	}
}
