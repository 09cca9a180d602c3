package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"skein/internal/driver"
	"skein/internal/ui"
)

type parseOutcome struct {
	results []*driver.Result
	err     error
}

func runParseDirWithUI(ctx context.Context, title string, files []string, root string, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		results, err := driver.ParseDir(ctx, root, opts, events)
		outcomeCh <- parseOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
