package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.rk", []byte("1+2"), 0)
	id2 := fs.Add("main.rk", []byte("3*4"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("main.rk")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "1+2" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.rk", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.rk")
	raw := []byte{0xEF, 0xBB, 0xBF, 'l', 'e', 't', ' ', 'x', '\r', '\n', 'x'}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "let x\nx" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + COMBINING ACUTE ACCENT
	content, flags := Normalize([]byte("cafe\u0301"))
	if string(content) != "caf\u00e9" {
		t.Fatalf("content = %q", content)
	}
	if flags&FileNormalizedNFC == 0 {
		t.Error("expected FileNormalizedNFC flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.rk", []byte("let x = 1\nx + 22\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start", 0, LineCol{1, 1}},
		{"first line newline", 9, LineCol{1, 10}},
		{"second line start", 10, LineCol{2, 1}},
		{"second line literal", 14, LineCol{2, 5}},
		{"end of file", 17, LineCol{3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Point(id, tt.off))
			if got != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.rk", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 2})
	if start != (LineCol{1, 1}) || end != (LineCol{1, 3}) {
		t.Errorf("Resolve = %+v..%+v", start, end)
	}
}

func TestFormatPath(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("<eval>", []byte("1")))
	if got := f.FormatPath("relative", "/tmp"); got != "<eval>" {
		t.Errorf("virtual relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "<eval>" {
		t.Errorf("basename = %q", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.rk")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "nested", "file.rk")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := "nested/file.rk"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}
