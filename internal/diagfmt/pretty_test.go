package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"reckon/internal/diag"
	"reckon/internal/source"
)

func prettyString(bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) string {
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, opts)
	return buf.String()
}

func TestPrettyLayout(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rk", []byte("1 + 1 & 0"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 6, End: 7},
		"Expected Expression | Found <Bad>"))

	got := prettyString(bag, fs, PrettyOpts{})
	want := "test.rk:1:7: ERROR LEX1001: Expected Expression | Found <Bad>\n" +
		"    1 + 1 & 0\n" +
		"          ^\n" +
		"          Expected Expression | Found <Bad>\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextWindow(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rk", []byte("123456789 + 987654321 & 5"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 22, End: 23}, "bad"))

	got := prettyString(bag, fs, PrettyOpts{Context: 3})
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got:\n%s", got)
	}
	if lines[1] != "    21 & 5" {
		t.Errorf("window line = %q, want %q", lines[1], "    21 & 5")
	}
	if lines[2] != "       ^" {
		t.Errorf("caret line = %q, want %q", lines[2], "       ^")
	}
}

func TestPrettyCaretWidth(t *testing.T) {
	tests := []struct {
		name    string
		content string
		span    source.Span
		caret   string
	}{
		{
			name:    "multi byte span",
			content: "12 + 345",
			span:    source.Span{Start: 5, End: 8},
			caret:   "         ^^^",
		},
		{
			name:    "wide runes before span",
			content: "日本 & 1",
			span:    source.Span{Start: 7, End: 8},
			caret:   "         ^",
		},
		{
			name:    "zero length span at end",
			content: "1 +",
			span:    source.Span{Start: 3, End: 3},
			caret:   "       ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			fileID := fs.AddVirtual("test.rk", []byte(tt.content))
			span := tt.span
			span.File = fileID

			bag := diag.NewBag(0)
			bag.Add(diag.NewError(diag.SynExpectExpression, span, "msg"))

			lines := strings.Split(prettyString(bag, fs, PrettyOpts{}), "\n")
			if len(lines) < 3 {
				t.Fatalf("output too short: %q", lines)
			}
			if lines[2] != tt.caret {
				t.Errorf("caret line = %q, want %q", lines[2], tt.caret)
			}
		})
	}
}

func TestPrettySecondLine(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rk", []byte("1\n2 + )\n"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: fileID, Start: 6, End: 7},
		"Expected Expression | Found <RParen>"))

	got := prettyString(bag, fs, PrettyOpts{})
	if !strings.HasPrefix(got, "test.rk:2:5: ERROR SYN2203:") {
		t.Fatalf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "    2 + )\n") {
		t.Fatalf("expected only the second line in the window:\n%s", got)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.rk", []byte("let x = 1 $ 2\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 10, End: 11}, "Unknown character"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.rk:1:11"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.rk:1:11"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.rk:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := prettyString(bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("Expected ERROR in output")
			}
			if !strings.Contains(output, "LEX1001") {
				t.Error("Expected LEX1001 code in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.rk", expected: "test.rk:1:9"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.rk", expected: "\nfile.rk:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("let x = 42\n"))

			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			output := "\n" + prettyString(bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
			if !strings.Contains(output, "WARNING LEX1001") {
				t.Errorf("Expected warning severity, got:\n%s", output)
			}
		})
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rk", []byte("let y = (1 + 2\n"))

	d := diag.NewError(diag.SynUnclosedParen, source.Point(fileID, 14), "Expected <RParen> | Found <EOF>").
		WithNote(source.Span{File: fileID, Start: 8, End: 9}, "to match this '('")
	bag := diag.NewBag(4)
	bag.Add(d)

	withNotes := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(withNotes, "note: test.rk:1:9: to match this '('") {
		t.Fatalf("expected note with location, got:\n%s", withNotes)
	}

	withoutNotes := prettyString(bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(withoutNotes, "note:") {
		t.Fatalf("notes printed although ShowNotes is off:\n%s", withoutNotes)
	}
}

func TestPrettyDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rk", []byte("& &"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "first"))
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 2, End: 3}, "second"))

	output := prettyString(bag, fs, PrettyOpts{})
	if strings.Contains(output, "second") {
		t.Fatalf("dropped diagnostic was printed:\n%s", output)
	}
	if !strings.Contains(output, "1 more diagnostic(s) not shown (limit 1)") {
		t.Fatalf("expected dropped summary, got:\n%s", output)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rk", []byte("1 & 2"))

	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 2, End: 3}, "bad"))

	if out := prettyString(bag, fs, PrettyOpts{Color: true}); !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes with Color on, got %q", out)
	}
	if out := prettyString(bag, fs, PrettyOpts{}); strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ANSI escapes with Color off: %q", out)
	}
}
