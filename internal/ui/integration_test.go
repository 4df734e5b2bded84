package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/anomaly-terminal/internal/journal"
	"github.com/ngmaloney/anomaly-terminal/internal/models"
	"github.com/ngmaloney/anomaly-terminal/internal/prediction"
)

type memoryRecorder struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (r *memoryRecorder) Record(ctx context.Context, entry journal.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// drain runs cmd and every command it produces, feeding the resulting
// messages back into the model. Spinner ticks are dropped so the loop ends.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, nil:
		default:
			var out tea.Cmd
			m, out = update(t, m, msg)
			queue = append(queue, out)
		}
	}

	return m
}

func TestIntegration_StartupAndSelection(t *testing.T) {
	client := &mockPredictionClient{results: map[int]*models.PredictionResult{
		0: {Image: "https://maps/0.png", MinTemperature: -0.8, MaxTemperature: 1.1},
		3: {Image: "https://maps/3.png", MinTemperature: -1.23, MaxTemperature: 2.45},
	}}
	rec := &memoryRecorder{}

	m := NewModel(Options{
		Window:    models.BuildDayWindow(testAnchor),
		Client:    client,
		Journal:   rec,
		SessionID: "integration",
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = drain(t, m, m.Init())

	snap := m.Snapshot()
	if snap.Loading || snap.ActiveIndex != 0 {
		t.Fatalf("after startup loading=%v activeIndex=%d", snap.Loading, snap.ActiveIndex)
	}
	if *snap.MaxTemperature != 1.1 {
		t.Errorf("max = %v, want 1.1", *snap.MaxTemperature)
	}

	m, cmd := update(t, m, keyRune('4'))
	m = drain(t, m, cmd)

	snap = m.Snapshot()
	if snap.ActiveIndex != 3 || *snap.MinTemperature != -1.23 || *snap.MaxTemperature != 2.45 {
		t.Errorf("after selecting Saturday: %+v", snap)
	}
	if got := client.calls; len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Errorf("client calls = %v, want [0 3]", got)
	}

	view := m.View()
	if !strings.Contains(view, "https://maps/3.png") {
		t.Error("view should reference the selected day's map")
	}

	if len(rec.entries) != 2 {
		t.Fatalf("journal entries = %d, want 2", len(rec.entries))
	}
	for _, e := range rec.entries {
		if e.Outcome != journal.OutcomeSuccess || e.SessionID != "integration" {
			t.Errorf("unexpected journal entry %+v", e)
		}
	}
}

func TestIntegration_FailureThenRecovery(t *testing.T) {
	client := &mockPredictionClient{err: &prediction.NetworkError{Err: context.DeadlineExceeded}}
	rec := &memoryRecorder{}

	m := NewModel(Options{
		Window:  models.BuildDayWindow(testAnchor),
		Client:  client,
		Journal: rec,
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = drain(t, m, m.Init())

	if m.Notice() == nil {
		t.Fatal("expected a failure notice")
	}
	if !strings.Contains(m.View(), "network error") {
		t.Error("notice should show the failure reason")
	}
	if len(rec.entries) != 1 || rec.entries[0].ErrorKind != "network" {
		t.Errorf("journal entries = %+v", rec.entries)
	}

	client.err = nil
	client.results = map[int]*models.PredictionResult{
		0: {Image: "https://maps/0.png", MinTemperature: -2, MaxTemperature: 3},
	}

	m, _ = update(t, m, keyRune('x'))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	snap := m.Snapshot()
	if snap.Err != nil || snap.Image == nil || *snap.MaxTemperature != 3 {
		t.Errorf("retry should succeed: %+v", snap)
	}
}
