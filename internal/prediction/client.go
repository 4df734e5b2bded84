package prediction

import (
	"context"

	"github.com/ngmaloney/anomaly-terminal/internal/models"
)

// Client defines the interface for fetching anomaly predictions
type Client interface {
	// Predict retrieves the anomaly map and temperature range for a day index (0 = today)
	Predict(ctx context.Context, dayIndex int) (*models.PredictionResult, error)
}
