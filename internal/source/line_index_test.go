package source

import "testing"

func TestLineIndex(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.rk", []byte("ab\ncd\n\nef")))

	tests := []struct {
		pos  uint32
		want int
	}{
		{0, 0}, {2, 0}, {3, 1}, {5, 1}, {6, 2}, {7, 3}, {9, 3}, {100, 3},
	}
	for _, tt := range tests {
		if got := f.LineIndex(tt.pos); got != tt.want {
			t.Errorf("LineIndex(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}

	if f.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", f.LineCount())
	}
	lines := []string{"ab", "cd", "", "ef"}
	for i, want := range lines {
		if got := f.LineText(i); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
	if got := f.LineText(4); got != "" {
		t.Errorf("LineText past end = %q", got)
	}
	if got := f.LineStart(3); got != 7 {
		t.Errorf("LineStart(3) = %d, want 7", got)
	}
	if got := f.GetLine(2); got != "cd" {
		t.Errorf("GetLine(2) = %q", got)
	}
}

func TestLineIndexEmptyFile(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("empty.rk", nil))

	if f.LineCount() != 1 || f.LineIndex(0) != 0 || f.LineText(0) != "" {
		t.Errorf("empty file: count=%d index=%d text=%q", f.LineCount(), f.LineIndex(0), f.LineText(0))
	}
}

func TestText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rk", []byte("let x = 42"))
	f := fs.Get(id)

	if got := f.Text(Span{File: id, Start: 8, End: 10}); got != "42" {
		t.Errorf("Text = %q, want 42", got)
	}
	if got := f.Text(Span{File: id, Start: 8, End: 99}); got != "42" {
		t.Errorf("clamped Text = %q, want 42", got)
	}
	if got := f.Text(Point(id, 10)); got != "" {
		t.Errorf("empty span Text = %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 0, End: 2}
	if got := a.Cover(b); got != (Span{File: 1, Start: 0, End: 6}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 9}); got != a {
		t.Errorf("cross-file Cover = %v, want %v", got, a)
	}
	if !a.Contains(5) || a.Contains(6) {
		t.Error("Contains is not half-open")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	x := in.Intern("x")
	if x == NoStringID {
		t.Fatal("Intern returned NoStringID")
	}
	if again := in.Intern("x"); again != x {
		t.Errorf("Intern not stable: %d vs %d", again, x)
	}
	if s := in.MustLookup(x); s != "x" {
		t.Errorf("MustLookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("Lookup of unknown id succeeded")
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
}
