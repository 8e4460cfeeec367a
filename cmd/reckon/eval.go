package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"reckon/internal/driver"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] <expression>...",
		Short: "Evaluate a reckon expression given on the command line",
		Long: `Eval runs its arguments as a program, one statement per argument:
  reckon eval "let x = 4" "x * x"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEval,
	}
	cmd.Flags().Bool("bindings", false, "print every let binding after the value")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	showBindings, err := cmd.Flags().GetBool("bindings")
	if err != nil {
		return fmt.Errorf("failed to get bindings flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())

	// аргументы - отдельные строки программы
	res, err := driver.Eval(cmd.Context(), "<eval>", strings.Join(args, "\n"), s.driverOptions())
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if !res.Clean() {
		s.printDiagnostics(stderr, res.Bag, res.FileSet)
		return fail()
	}
	if res.Err != nil {
		fmt.Fprint(stderr, res.Err.FormatWithFiles(res.FileSet))
		return fail()
	}
	if res.Value.HasValue {
		fmt.Fprintln(stdout, res.Value.Value)
	}
	if showBindings {
		names := make([]string, 0, len(res.Value.Bindings))
		for name := range res.Value.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(stdout, "%s = %d\n", name, res.Value.Bindings[name])
		}
	}
	return nil
}
