package source

import (
	"fmt"

	"fortio.org/safecast"
)

func (f *File) contentLen() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// LineCount returns the number of lines; an empty file has one empty line.
func (f *File) LineCount() int {
	return len(f.LineIdx) + 1
}

// LineIndex returns the 0-based line that holds byte offset pos.
// A newline byte belongs to the line it terminates. Offsets past the end
// map to the last line.
func (f *File) LineIndex(pos uint32) int {
	return lineOf(f.LineIdx, min(pos, f.contentLen()))
}

// LineStart returns the byte offset where the 0-based line begins.
func (f *File) LineStart(index int) uint32 {
	return lineStartOf(f.LineIdx, index)
}

// LineEnd returns the byte offset of the line terminator (or end of file).
func (f *File) LineEnd(index int) uint32 {
	if index >= 0 && index < len(f.LineIdx) {
		return f.LineIdx[index]
	}
	return f.contentLen()
}

// LineText returns the text of the 0-based line without its terminator.
// Out-of-range indexes yield "".
func (f *File) LineText(index int) string {
	if index < 0 || index >= f.LineCount() {
		return ""
	}
	return string(f.Content[f.LineStart(index):f.LineEnd(index)])
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	return f.LineText(int(lineNum) - 1)
}

// Text returns the literal source text covered by span, clamped to the file.
func (f *File) Text(span Span) string {
	n := f.contentLen()
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}
