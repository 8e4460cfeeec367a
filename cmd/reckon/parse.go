package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reckon/internal/diagfmt"
	"reckon/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.rk",
		Short: "Parse a reckon source file and print its AST",
		Long: `Parse builds the syntax tree of a file and prints it. Diagnostics go to
stderr; the tree is printed even when the parser had to recover.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|source|json|repr)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "source", "json", "repr":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())

	res, err := driver.Parse(cmd.Context(), args[0], s.driverOptions())
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = diagfmt.FormatASTTree(out, res.Builder, res.FileID, res.FileSet)
	case "source":
		err = diagfmt.FormatASTSource(out, res.Builder, res.FileID, res.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, res.Builder, res.FileID)
	case "repr":
		err = diagfmt.FormatASTRepr(out, res.Builder)
	}
	if err != nil {
		return err
	}

	if !res.Clean() {
		s.printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)
		return fail()
	}
	return nil
}
