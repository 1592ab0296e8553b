package main

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fluentkit/internal/driver"
	"fluentkit/internal/ui"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

// runCheckWithUI runs CheckDir in the background and renders its events.
func runCheckWithUI(cmd *cobra.Command, dir string, opts driver.CheckOptions) (*driver.CheckResult, error) {
	files := []string{dir}
	if info, err := os.Stat(dir); err != nil {
		return nil, err
	} else if info.IsDir() {
		if files, err = driver.ListFTLFiles(dir); err != nil {
			return nil, err
		}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		opts.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.CheckDir(cmd.Context(), dir, opts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("check "+filepath.Clean(dir), files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
