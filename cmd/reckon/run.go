package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"reckon/internal/diagfmt"
	"reckon/internal/driver"
	"reckon/internal/source"
	"reckon/internal/version"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [file.rk|directory]",
		Short: "Evaluate a reckon program",
		Long: `Run parses a program, prints its syntax tree and the value of the last
statement. Any diagnostic stops the run before evaluation. Without an argument
the [run].main entry of reckon.toml is used; a directory runs every *.rk file
under it independently.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExecution,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("no-ast", false, "do not print the syntax tree")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory runs (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	return cmd
}

type runFlags struct {
	format string
	noAST  bool
	jobs   int
	ui     uiMode
	cache  bool
}

func readRunFlags(cmd *cobra.Command) (runFlags, error) {
	var rf runFlags
	var err error
	if rf.format, err = cmd.Flags().GetString("format"); err != nil {
		return rf, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch rf.format {
	case "pretty", "json":
	default:
		return rf, fmt.Errorf("unknown format: %s", rf.format)
	}
	if rf.noAST, err = cmd.Flags().GetBool("no-ast"); err != nil {
		return rf, fmt.Errorf("failed to get no-ast flag: %w", err)
	}
	if rf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return rf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return rf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if rf.ui, err = readUIMode(uiValue); err != nil {
		return rf, err
	}
	if rf.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return rf, fmt.Errorf("failed to get cache flag: %w", err)
	}
	return rf, nil
}

func runExecution(cmd *cobra.Command, args []string) error {
	rf, err := readRunFlags(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())

	var target string
	if len(args) == 1 {
		target = args[0]
	} else {
		if s.manifest == nil {
			return errors.New("no file given and no reckon.toml found")
		}
		if target, err = s.manifest.MainPath(); err != nil {
			return err
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return runDirectory(cmd, s, rf, target)
	}
	return runFile(cmd, s, rf, target)
}

func runFile(cmd *cobra.Command, s *settings, rf runFlags, path string) error {
	res, err := driver.Run(cmd.Context(), path, s.driverOptions())
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if rf.format == "json" {
		if err := writeJSON(stdout, buildRunOutput(res.File.Path, res, res.FileSet)); err != nil {
			return err
		}
		if res.Failed() {
			return fail()
		}
		return nil
	}

	if !res.Clean() {
		s.printDiagnostics(stderr, res.Bag, res.FileSet)
		return fail()
	}
	if !rf.noAST && !s.quiet {
		if err := diagfmt.FormatASTTree(stdout, res.Builder, res.FileID, res.FileSet); err != nil {
			return err
		}
	}
	if res.Err != nil {
		fmt.Fprint(stderr, res.Err.FormatWithFiles(res.FileSet))
		return fail()
	}
	if res.Value.HasValue {
		fmt.Fprintln(stdout, res.Value.Value)
	}
	return nil
}

func runDirectory(cmd *cobra.Command, s *settings, rf runFlags, dir string) error {
	opts := driver.DirOptions{
		Options: s.driverOptions(),
		Jobs:    rf.jobs,
		Version: version.Fingerprint(),
	}
	if rf.cache {
		cache, err := driver.OpenDiskCache("reckon")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	files, err := driver.ListSources(dir)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.DirResult
		runErr  error
	)
	if rf.format == "pretty" && shouldUseTUI(rf.ui, stdout) && len(files) > 0 {
		fs, results, runErr = runDirWithUI(cmd.Context(), stdout, dir, driver.DisplayFiles(files, dir), opts)
	} else {
		fs, results, runErr = driver.RunDir(cmd.Context(), dir, opts)
	}
	if runErr != nil {
		return runErr
	}

	failed := false
	for _, r := range results {
		failed = failed || r.Failed()
	}

	if rf.format == "json" {
		outputs := make([]runOutput, 0, len(results))
		for _, r := range results {
			if r.LoadErr != nil {
				outputs = append(outputs, runOutput{Path: r.Path, LoadError: r.LoadErr.Error()})
				continue
			}
			out := buildRunOutput(r.Path, r.RunResult, fs)
			out.Cached = r.Cached
			outputs = append(outputs, out)
		}
		if err := writeJSON(stdout, outputs); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			printDirResult(stdout, stderr, s, r, fs)
		}
	}

	if failed {
		return fail()
	}
	return nil
}

// printDirResult: one line per file on stdout, problems on stderr.
func printDirResult(stdout, stderr io.Writer, s *settings, r driver.DirResult, fs *source.FileSet) {
	switch {
	case r.LoadErr != nil:
		fmt.Fprintf(stderr, "%s: %v\n", r.Path, r.LoadErr)
	case !r.Clean():
		s.printDiagnostics(stderr, r.Bag, fs)
	case r.Err != nil:
		fmt.Fprint(stderr, r.Err.FormatWithFiles(fs))
	case r.Value.HasValue:
		fmt.Fprintf(stdout, "%s: %d\n", r.Path, r.Value.Value)
	default:
		fmt.Fprintf(stdout, "%s: <empty>\n", r.Path)
	}
}
