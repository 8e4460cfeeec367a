package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reckon/internal/ast"
	"reckon/internal/backend/llvm"
	"reckon/internal/eval"
	"reckon/internal/observ"
	"reckon/internal/testkit"
	"reckon/internal/trace"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestTokenizeKeepsWhitespace(t *testing.T) {
	src := "let a = 1\n  a * (2+3)\n"
	path := writeSource(t, t.TempDir(), "main.rk", src)

	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var sb strings.Builder
	for _, tok := range res.Tokens {
		sb.WriteString(tok.Text)
	}
	if sb.String() != src {
		t.Fatalf("token texts do not rebuild the source:\n got %q\nwant %q", sb.String(), src)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.rk"), Options{})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		value int64
	}{
		{name: "precedence", src: "1+2*3", value: 7},
		{name: "group", src: "(1+2)*3", value: 9},
		{name: "left assoc", src: "10-3-2", value: 5},
		{name: "let", src: "let x = 5\nx+1", value: 6},
		{name: "truncating division", src: "0 - 7 / 2", value: -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, t.TempDir(), "main.rk", tt.src)
			res, err := Run(context.Background(), path, Options{})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Failed() || !res.Evaluated {
				t.Fatalf("run failed: bag=%d err=%v", res.Bag.Len(), res.Err)
			}
			if !res.Value.HasValue || res.Value.Value != tt.value {
				t.Errorf("value = %d (has=%v), want %d", res.Value.Value, res.Value.HasValue, tt.value)
			}
			if err := testkit.CheckSpanInvariants(res.Builder, res.FileID, res.File); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRunSkipsEvalOnDiagnostics(t *testing.T) {
	res, err := Eval(context.Background(), "", "1 + 1 & 0", Options{})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Clean() {
		t.Fatal("expected diagnostics for '&'")
	}
	if res.Evaluated {
		t.Error("evaluation ran despite diagnostics")
	}
	if !res.Failed() {
		t.Error("run with diagnostics must fail")
	}
}

func TestRunDivisionByZero(t *testing.T) {
	res, err := Eval(context.Background(), "div.rk", "1/0", Options{})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !res.Clean() {
		t.Fatalf("1/0 must parse cleanly, got %d diagnostics", res.Bag.Len())
	}
	if res.Err == nil || res.Err.Code != eval.ErrDivisionByZero {
		t.Fatalf("expected EVAL1002, got %v", res.Err)
	}
	if got := res.Err.FormatWithFiles(res.FileSet); !strings.Contains(got, "at div.rk:1:1") {
		t.Errorf("unexpected location: %q", got)
	}
}

func TestMaxDiagnosticsCapsBag(t *testing.T) {
	res, err := Eval(context.Background(), "", "& & & & &", Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Bag.Len() > 2 {
		t.Errorf("bag holds %d diagnostics, cap is 2", res.Bag.Len())
	}
	if res.Clean() {
		t.Error("capped bag must still count as not clean")
	}
}

func TestRunRecordsPhases(t *testing.T) {
	var buf bytes.Buffer
	tracer := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tracer)
	timer := observ.NewTimer()

	path := writeSource(t, t.TempDir(), "main.rk", "2*21")
	if _, err := Run(ctx, path, Options{Timer: timer}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := tracer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "load,lex,parse,eval" {
		t.Errorf("phases = %s", got)
	}
	for _, name := range []string{"lex", "parse", "eval"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("trace has no %q span:\n%s", name, buf.String())
		}
	}
}

func TestParseString(t *testing.T) {
	res, err := ParseString(context.Background(), "expr", "let y = (4)", Options{})
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if !res.Clean() {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	file := res.Builder.Files.Get(res.FileID)
	if len(file.Stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(file.Stmts))
	}
	if st := res.Builder.Stmts.Get(file.Stmts[0]); st.Kind != ast.StmtLet {
		t.Errorf("expected let, got %v", st.Kind)
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()

	ok := writeSource(t, dir, "ok.rk", "let n = 6\nn * 7")
	res, err := Build(context.Background(), ok, Options{}, llvm.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Failed() || !res.Emitted {
		t.Fatalf("build failed: %v", res.Err)
	}
	if !strings.Contains(res.IR, "define i32 @main()") {
		t.Errorf("no main in IR:\n%s", res.IR)
	}
	if !strings.Contains(res.IR, "ok.rk") {
		t.Errorf("source name not recorded:\n%s", res.IR)
	}

	bad := writeSource(t, dir, "bad.rk", "1 +")
	res, err = Build(context.Background(), bad, Options{}, llvm.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Emitted || res.Clean() {
		t.Error("a file with diagnostics must not be lowered")
	}

	unbound := writeSource(t, dir, "unbound.rk", "z")
	res, err = Build(context.Background(), unbound, Options{}, llvm.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Err == nil || !res.Failed() {
		t.Error("expected an emit error for an unbound variable")
	}
}
