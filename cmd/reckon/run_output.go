package main

import (
	"encoding/json"
	"io"

	"reckon/internal/diagfmt"
	"reckon/internal/driver"
	"reckon/internal/source"
)

type evalErrorJSON struct {
	Code     string                `json:"code"`
	Message  string                `json:"message"`
	Location *diagfmt.LocationJSON `json:"location,omitempty"`
}

// runOutput is one file of `reckon run --format json`.
type runOutput struct {
	Path        string                     `json:"path"`
	Evaluated   bool                       `json:"evaluated"`
	Value       *int64                     `json:"value,omitempty"`
	Bindings    map[string]int64           `json:"bindings,omitempty"`
	Diagnostics *diagfmt.DiagnosticsOutput `json:"diagnostics,omitempty"`
	Error       *evalErrorJSON             `json:"error,omitempty"`
	LoadError   string                     `json:"load_error,omitempty"`
	Cached      bool                       `json:"cached,omitempty"`
}

func buildRunOutput(path string, res *driver.RunResult, fs *source.FileSet) runOutput {
	out := runOutput{Path: path, Evaluated: res.Evaluated}
	if !res.Clean() {
		diags := diagfmt.BuildDiagnosticsOutput(res.Bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
		out.Diagnostics = &diags
	}
	if res.Err != nil {
		out.Error = &evalErrorJSON{
			Code:     res.Err.Code.String(),
			Message:  res.Err.Message,
			Location: diagfmt.Location(res.Err.Span, fs, diagfmt.PathModeAuto),
		}
		return out
	}
	if res.Evaluated {
		if res.Value.HasValue {
			v := res.Value.Value
			out.Value = &v
		}
		out.Bindings = res.Value.Bindings
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
