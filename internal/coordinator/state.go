package coordinator

import (
	"time"

	"github.com/ngmaloney/anomaly-terminal/internal/models"
)

// Phase is the request lifecycle position of the coordinator
type Phase int

const (
	PhaseIdle    Phase = iota // Nothing requested yet
	PhaseLoading              // A fetch for the active day is in flight
	PhaseSuccess              // The last fetch produced a result
	PhaseFailed               // The last fetch failed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// RequestState is the tagged request state. Result is set only in
// PhaseSuccess and Err only in PhaseFailed.
type RequestState struct {
	Phase  Phase
	Result *models.PredictionResult
	Err    error
}

// Ticket identifies one issued fetch
type Ticket struct {
	DayIndex   int
	Generation uint64
	IssuedAt   time.Time
}

// Completion is the outcome of running a Ticket against the service
type Completion struct {
	Ticket   Ticket
	Result   *models.PredictionResult
	Err      error
	Duration time.Duration
}

// Outcome reports what Resolve did with a Completion
type Outcome int

const (
	OutcomeApplied Outcome = iota // State now reflects the completion
	OutcomeStale                  // A newer fetch was issued; completion discarded
)

func (o Outcome) String() string {
	if o == OutcomeStale {
		return "stale"
	}
	return "applied"
}

// Snapshot is the read-only view handed to the presentation layer on each render
type Snapshot struct {
	Window         models.DayWindow
	ActiveIndex    int
	Phase          Phase
	Loading        bool
	Image          *string
	MinTemperature *float64
	MaxTemperature *float64
	Err            error
}
