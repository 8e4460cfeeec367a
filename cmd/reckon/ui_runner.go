package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"reckon/internal/driver"
	"reckon/internal/source"
	"reckon/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

// runDirWithUI runs the directory in the background and shows progress
// until the run closes the event stream.
func runDirWithUI(ctx context.Context, out io.Writer, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []driver.DirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		opts.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.RunDir(ctx, dir, opts)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	uiErr := ui.Run("reckon run "+dir, files, events, tea.WithOutput(out), tea.WithInput(nil))
	if uiErr != nil {
		// UI умер - дочитываем события, чтобы воркеры не встали
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
