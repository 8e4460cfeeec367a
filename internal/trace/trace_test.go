package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	run := Begin(tr, ScopeDriver, "run", 0)
	parse := Begin(tr, ScopePass, "parse", run.ID())
	parse.WithExtra("stmts", "3").End("")
	file := Begin(tr, ScopeFile, "file:a.rk", run.ID())
	file.End("")
	run.End("ok")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (file scope filtered), got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ run") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "  → parse") {
		t.Errorf("parse is not nested under run: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← parse") || !strings.HasSuffix(lines[2], "{stmts=3}") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], ": ok") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestLevelErrorEmitsOnlyFailures(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)

	Begin(tr, ScopePass, "lex", 0).End("")
	Begin(tr, ScopePass, "eval", 0).Fail(errors.New("division by zero"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the failed end event, got:\n%s", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("invalid ndjson: %v", err)
	}
	if ev["name"] != "eval" || ev["failed"] != true || ev["detail"] != "division by zero" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("LevelOff tracer is enabled")
	}
	if d := Begin(tr, ScopePass, "parse", 0).End(""); d != 0 {
		t.Fatalf("nop span reported duration %v", d)
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context should yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx = WithTracer(ctx, tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(tr, ScopeDriver, "run", 0)
	ctx = WithSpan(ctx, span)
	if ParentSpan(ctx) != span.ID() {
		t.Fatal("span not propagated")
	}
}
