// Package demoservice is a local stand-in for the prediction service. It
// serves deterministic synthetic anomaly maps so the terminal can be run and
// tested without the model backend.
package demoservice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ngmaloney/anomaly-terminal/internal/logger"
	"github.com/ngmaloney/anomaly-terminal/internal/models"
)

// Options configures the demo service
type Options struct {
	Seed     int64
	FailDays []int // day indices answered with 500
	Logger   *slog.Logger
}

type predictRequest struct {
	DayIndex *int `json:"day_index"`
}

type predictResponse struct {
	Image          string  `json:"image"`
	MinTemperature float64 `json:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature"`
	Shape          []int   `json:"shape"`
}

type errorResponse struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

type errorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Handler serves prediction requests
type Handler struct {
	seed     int64
	failDays map[int]bool
	logger   *slog.Logger
}

// NewHandler creates a handler from opts
func NewHandler(opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	fail := make(map[int]bool, len(opts.FailDays))
	for _, d := range opts.FailDays {
		fail[d] = true
	}

	return &Handler{seed: opts.Seed, failDays: fail, logger: log}
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := middleware.GetReqID(r.Context())

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), reqID)
		return
	}
	if req.DayIndex == nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "day_index is required", reqID)
		return
	}

	day := *req.DayIndex
	if day < 0 || day >= models.WindowSize {
		writeError(w, http.StatusUnprocessableEntity, "day_out_of_range", "day_index must be between 0 and 6", reqID)
		return
	}
	if h.failDays[day] {
		h.logger.Warn("simulated prediction failure", "day_index", day, "request_id", reqID)
		writeError(w, http.StatusInternalServerError, "internal_error", "model inference failed", reqID)
		return
	}

	field := Generate(h.seed, day)
	uri, err := field.DataURI()
	if err != nil {
		h.logger.Error("rendering prediction", "day_index", day, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error(), reqID)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Image:          uri,
		MinTemperature: field.Min,
		MaxTemperature: field.Max,
		Shape:          []int{field.Height, field.Width},
	})

	h.logger.Info("prediction served",
		"day_index", day,
		"min_temperature", field.Min,
		"max_temperature", field.Max,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", reqID,
	)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, errorResponse{Status: "error", Error: errorPayload{Code: code, Message: message, RequestID: requestID}})
}
