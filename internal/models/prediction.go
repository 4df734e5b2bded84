package models

// PredictionRequest is the payload sent to the prediction service
type PredictionRequest struct {
	DayIndex int `json:"day_index"`
}

// PredictionResult is the anomaly map and temperature range for one day
type PredictionResult struct {
	Image          string  // Data URI or URL of the rendered anomaly map
	MinTemperature float64 // Celsius anomaly
	MaxTemperature float64 // Celsius anomaly
}
