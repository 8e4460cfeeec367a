package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"reckon/internal/lexer"
	"reckon/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.rk", []byte("let a = 42")))

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lexer.Tokenize(f), fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// let, ws, a, ws, =, ws, 42, EOF
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), buf.String())
	}
	if want := `  1: Let             "let" at 1:1-1:4`; lines[0] != want {
		t.Errorf("line 1 = %q, want %q", lines[0], want)
	}
	if want := `  7: Number          "42" = 42 at 1:9-1:11`; lines[6] != want {
		t.Errorf("line 7 = %q, want %q", lines[6], want)
	}
	if want := `  8: EOF             at 1:11-1:11`; lines[7] != want {
		t.Errorf("line 8 = %q, want %q", lines[7], want)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.rk", []byte("7*x")))

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, lexer.Tokenize(f)); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}

	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(out))
	}
	if out[0].Kind != "Number" || out[0].Value == nil || *out[0].Value != 7 {
		t.Errorf("unexpected number token: %+v", out[0])
	}
	if out[1].Value != nil {
		t.Errorf("operator carries a value: %+v", out[1])
	}
	if out[3].Kind != "EOF" || out[3].Span.Start != 3 {
		t.Errorf("unexpected EOF token: %+v", out[3])
	}
}
