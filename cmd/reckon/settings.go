package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reckon/internal/diag"
	"reckon/internal/diagfmt"
	"reckon/internal/driver"
	"reckon/internal/observ"
	"reckon/internal/project"
	"reckon/internal/source"
)

// settings are the persistent flags merged over reckon.toml: a flag the
// user set wins, otherwise the manifest value, otherwise the flag default.
type settings struct {
	colorMode      string
	quiet          bool
	maxDiagnostics int
	context        int
	timer          *observ.Timer
	manifest       *project.Manifest // nil outside a project
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	s := &settings{
		colorMode:      strings.ToLower(colorMode),
		quiet:          quiet,
		maxDiagnostics: maxDiagnostics,
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, err := project.Load(wd)
	switch {
	case errors.Is(err, project.ErrNoManifest):
	case err != nil:
		return nil, err
	default:
		s.manifest = m
		cfg := m.Config.Diagnostics
		if !flags.Changed("color") && cfg.Color != "" {
			s.colorMode = cfg.Color
		}
		if !flags.Changed("max-diagnostics") && cfg.Max > 0 {
			s.maxDiagnostics = cfg.Max
		}
		s.context = cfg.Context
	}

	switch s.colorMode {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}
	if s.maxDiagnostics < 0 {
		return nil, fmt.Errorf("--max-diagnostics must not be negative")
	}
	return s, nil
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Timer:          s.timer,
	}
}

func (s *settings) useColor(w io.Writer) bool {
	return s.colorMode == "on" || (s.colorMode == "auto" && isTerminal(w))
}

func (s *settings) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.useColor(w),
		Context:   s.context,
		ShowNotes: true,
	})
}

// printTimings writes the phase summary when --timings is set.
func (s *settings) printTimings(w io.Writer) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(w, s.timer.Summary())
}
