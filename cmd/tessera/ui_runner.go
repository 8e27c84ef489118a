package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tessera/internal/diag"
	"tessera/internal/driver"
	"tessera/internal/ir"
	"tessera/internal/ui"
)

type analyzeOutcome struct {
	report *driver.Report
	bag    *diag.Bag
	err    error
}

// runAnalyzeWithUI runs the analysis in the background while a progress view
// renders its events.
func runAnalyzeWithUI(ctx context.Context, title string, prog *ir.Program, opts driver.Options) (*driver.Report, *diag.Bag, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		report, bag, err := driver.Analyze(ctx, prog, o)
		outcomeCh <- analyzeOutcome{report: report, bag: bag, err: err}
		close(events)
	}()

	names := make([]string, len(prog.Funcs))
	for i, f := range prog.Funcs {
		names[i] = f.Name
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, outcome.bag, uiErr
	}
	return outcome.report, outcome.bag, outcome.err
}
