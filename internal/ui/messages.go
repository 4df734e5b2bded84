package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/anomaly-terminal/internal/coordinator"
	"github.com/ngmaloney/anomaly-terminal/internal/journal"
	"github.com/ngmaloney/anomaly-terminal/internal/prediction"
)

// Message types for async operations

// predictionFetchedMsg is sent when a prediction request completes, successfully or not
type predictionFetchedMsg struct {
	done coordinator.Completion
}

// fetchRecordedMsg is sent when a completion has been written to the journal
type fetchRecordedMsg struct {
	err error
}

// fetchPrediction runs a coordinator ticket in the background. No deadline is
// applied here; the prediction client's own timeout (if any) governs.
func fetchPrediction(client prediction.Client, ticket coordinator.Ticket) tea.Cmd {
	return func() tea.Msg {
		return predictionFetchedMsg{done: coordinator.Fetch(context.Background(), client, ticket)}
	}
}

// recordFetch appends a journal entry in the background
func recordFetch(rec journal.Recorder, entry journal.Entry) tea.Cmd {
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return fetchRecordedMsg{err: rec.Record(ctx, entry)}
	}
}
