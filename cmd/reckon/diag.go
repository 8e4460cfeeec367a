package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reckon/internal/diagfmt"
	"reckon/internal/driver"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] file.rk",
		Short: "Report diagnostics for a reckon source file",
		Long:  `Diag lexes and parses a file and prints every diagnostic without evaluating it`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in short and json output")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	return cmd
}

// runDiagnose prints diagnostics to stdout and exits 1 when there are any.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("unknown path mode: %s", pathModeStr)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())

	res, err := driver.Parse(cmd.Context(), args[0], s.driverOptions())
	if err != nil {
		return fmt.Errorf("diagnose failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     s.useColor(out),
			Context:   s.context,
			PathMode:  pathMode,
			ShowNotes: true,
		})
	case "short":
		err = diagfmt.FormatShortDiagnostics(out, res.Bag, res.FileSet, withNotes)
	case "json":
		err = diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if !res.Clean() {
		return fail()
	}
	return nil
}
