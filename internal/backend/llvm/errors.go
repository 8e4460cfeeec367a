package llvm

import (
	"fmt"

	"reckon/internal/source"
)

// EmitError stops lowering at the first node that has no IR form.
type EmitError struct {
	Span    source.Span
	Message string
}

func (e *EmitError) Error() string {
	return "emit: " + e.Message
}

// FormatWithFiles appends the resolved location of the failing node.
func (e *EmitError) FormatWithFiles(files *source.FileSet) string {
	if files == nil || int(e.Span.File) >= files.Len() {
		return e.Error() + "\n"
	}
	start, _ := files.Resolve(e.Span)
	return fmt.Sprintf("%s\nat %s:%d:%d\n", e.Error(), files.Get(e.Span.File).Path, start.Line, start.Col)
}
