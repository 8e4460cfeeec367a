package diagfmt

import (
	"io"

	"reckon/internal/diag"
	"reckon/internal/source"
)

// FormatShortDiagnostics writes one line per diagnostic, sorted by position:
//
//	error SYN2001 main.rk:1:7 Expected <RParen> | Found <EOF>
func FormatShortDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
