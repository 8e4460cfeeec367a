package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reckon/internal/backend/llvm"
	"reckon/internal/driver"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] file.rk",
		Short: "Compile a reckon program to LLVM IR",
		Long: `Build lowers a program to a textual LLVM module whose main prints the
last value. Feed the result to clang or llc to get a native binary.`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
	cmd.Flags().StringP("output", "o", "", "output path (- for stdout, default <name>.ll)")
	cmd.Flags().String("triple", llvm.DefaultTriple, "target triple")
	cmd.Flags().Bool("silent", false, "do not print the final value at run time")
	return cmd
}

func outputNameFromPath(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ll"
}

func runBuild(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	triple, err := cmd.Flags().GetString("triple")
	if err != nil {
		return fmt.Errorf("failed to get triple flag: %w", err)
	}
	silent, err := cmd.Flags().GetBool("silent")
	if err != nil {
		return fmt.Errorf("failed to get silent flag: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())

	res, err := driver.Build(cmd.Context(), args[0], s.driverOptions(), llvm.Options{
		Triple: triple,
		Silent: silent,
	})
	if err != nil {
		return err
	}
	stderr := cmd.ErrOrStderr()
	if !res.Clean() {
		s.printDiagnostics(stderr, res.Bag, res.FileSet)
		return fail()
	}
	if res.Err != nil {
		fmt.Fprint(stderr, res.Err.FormatWithFiles(res.FileSet))
		return fail()
	}

	if output == "" {
		output = outputNameFromPath(args[0])
	}
	if output == "-" {
		_, err = io.WriteString(cmd.OutOrStdout(), res.IR)
		return err
	}
	if err := os.WriteFile(output, []byte(res.IR), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	}
	return nil
}
