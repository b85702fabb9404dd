package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"monoforce/internal/driver"
	"monoforce/internal/ui"
)

type expandOutcome struct {
	result  *driver.Result
	summary driver.WriteSummary
	err     error
}

// runExpandWithUI runs expansion and writing while a Bubble Tea view follows
// the progress events.
func runExpandWithUI(ctx context.Context, title string, files []string, req *driver.Request, wopts driver.WriteOptions) (*driver.Result, driver.WriteSummary, error) {
	if req == nil {
		return nil, driver.WriteSummary{}, fmt.Errorf("missing expand request")
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandOutcome, 1)

	go func() {
		sink := driver.ChannelSink{Ch: events}
		reqCopy := *req
		reqCopy.Progress = sink
		var out expandOutcome
		out.result, out.err = driver.Expand(ctx, &reqCopy)
		if out.err == nil {
			wopts.Progress = sink
			out.summary, out.err = driver.Write(ctx, out.result, wopts)
		}
		outcomeCh <- out
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events, true)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, outcome.summary, uiErr
	}
	return outcome.result, outcome.summary, outcome.err
}
