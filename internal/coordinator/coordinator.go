package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ngmaloney/anomaly-terminal/internal/models"
	"github.com/ngmaloney/anomaly-terminal/internal/prediction"
)

// ErrDayOutOfRange is returned when a selection falls outside the day window
var ErrDayOutOfRange = errors.New("day index out of range")

// Coordinator owns the active day selection and the prediction request state.
// It is not safe for concurrent use: all methods except Fetch must be called
// from the single event loop that renders its snapshots.
type Coordinator struct {
	window      models.DayWindow
	activeIndex int
	state       RequestState
	generation  uint64
	logger      *slog.Logger
	now         func() time.Time
}

// New creates an idle coordinator for window. A nil logger discards output.
func New(window models.DayWindow, logger *slog.Logger) Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Coordinator{
		window: window,
		state:  RequestState{Phase: PhaseIdle},
		logger: logger,
		now:    time.Now,
	}
}

// Start performs the initial selection of today and returns its ticket
func (c *Coordinator) Start() Ticket {
	ticket, _ := c.SelectDay(0)
	return ticket
}

// SelectDay makes index the active day and begins a fetch for it.
// Re-selecting the active day re-issues the fetch.
func (c *Coordinator) SelectDay(index int) (Ticket, error) {
	if !c.window.Contains(index) {
		return Ticket{}, fmt.Errorf("select day %d: %w", index, ErrDayOutOfRange)
	}
	c.activeIndex = index
	return c.Begin(index), nil
}

// Begin moves to Loading and clears any displayed result in the same step,
// so a pending fetch never shows stale values.
func (c *Coordinator) Begin(index int) Ticket {
	c.generation++
	c.state = RequestState{Phase: PhaseLoading}

	ticket := Ticket{
		DayIndex:   index,
		Generation: c.generation,
		IssuedAt:   c.now(),
	}
	c.logger.Debug("prediction fetch issued",
		"day_index", index,
		"generation", ticket.Generation)

	return ticket
}

// Fetch runs ticket against client. It does not read or modify coordinator
// state and may run off the event loop.
func Fetch(ctx context.Context, client prediction.Client, ticket Ticket) Completion {
	start := time.Now()
	result, err := client.Predict(ctx, ticket.DayIndex)
	if err != nil {
		result = nil
	}

	return Completion{
		Ticket:   ticket,
		Result:   result,
		Err:      err,
		Duration: time.Since(start),
	}
}

// Resolve applies a completion. Completions from any fetch other than the most
// recently issued one are discarded, so the last issued selection always wins.
func (c *Coordinator) Resolve(done Completion) Outcome {
	if done.Ticket.Generation != c.generation {
		c.logger.Debug("stale prediction discarded",
			"day_index", done.Ticket.DayIndex,
			"generation", done.Ticket.Generation,
			"current_generation", c.generation)
		return OutcomeStale
	}

	if done.Err == nil && done.Result == nil {
		done.Err = &prediction.ParseError{Err: errors.New("empty prediction result")}
	}
	if done.Err != nil {
		c.state = RequestState{Phase: PhaseFailed, Err: done.Err}
		c.logger.Error("prediction fetch failed",
			"day_index", done.Ticket.DayIndex,
			"generation", done.Ticket.Generation,
			"kind", prediction.Kind(done.Err),
			"duration", done.Duration,
			"error", done.Err)
		return OutcomeApplied
	}

	result := *done.Result
	c.state = RequestState{Phase: PhaseSuccess, Result: &result}
	c.logger.Info("prediction fetched",
		"day_index", done.Ticket.DayIndex,
		"generation", done.Ticket.Generation,
		"min_temperature", result.MinTemperature,
		"max_temperature", result.MaxTemperature,
		"duration", done.Duration)

	return OutcomeApplied
}

// ActiveIndex returns the currently selected day index
func (c *Coordinator) ActiveIndex() int {
	return c.activeIndex
}

// State returns the current request state
func (c *Coordinator) State() RequestState {
	return c.state
}

// Loading reports whether a fetch for the active day is pending
func (c *Coordinator) Loading() bool {
	return c.state.Phase == PhaseLoading
}

// Snapshot returns the presentation view of the current state
func (c *Coordinator) Snapshot() Snapshot {
	snap := Snapshot{
		Window:      c.window,
		ActiveIndex: c.activeIndex,
		Phase:       c.state.Phase,
		Loading:     c.state.Phase == PhaseLoading,
		Err:         c.state.Err,
	}

	if r := c.state.Result; r != nil {
		image, lo, hi := r.Image, r.MinTemperature, r.MaxTemperature
		snap.Image = &image
		snap.MinTemperature = &lo
		snap.MaxTemperature = &hi
	}

	return snap
}
