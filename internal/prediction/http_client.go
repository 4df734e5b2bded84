package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ngmaloney/anomaly-terminal/internal/models"
)

// DefaultEndpoint is the prediction service address used when none is configured
const DefaultEndpoint = "http://127.0.0.1:8000/predict"

// maxResponseBytes bounds the decoded body; anomaly maps arrive inline as data URIs
const maxResponseBytes = 32 << 20

// HTTPClient implements Client against the prediction service's JSON API
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
}

// NewHTTPClient creates a prediction client. A zero timeout means requests
// wait for the service indefinitely.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &HTTPClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "AnomalyTerminal/1.0 (github.com/ngmaloney/anomaly-terminal)",
	}
}

// Endpoint returns the URL requests are posted to
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Predict posts {"day_index": n} and decodes the anomaly map response
func (c *HTTPClient) Predict(ctx context.Context, dayIndex int) (*models.PredictionResult, error) {
	body, err := json.Marshal(models.PredictionRequest{DayIndex: dayIndex})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &ServiceError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	// Unmarshal rejects anything after the first JSON value
	var predictResp predictResponse
	if err := json.Unmarshal(data, &predictResp); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return predictResp.toResult()
}

// statusText returns the reason phrase without the numeric code ("Internal Server Error")
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))); text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// Internal types for the prediction API response. Other fields, such as
// "shape", are ignored whatever their type.

type predictResponse struct {
	Image          *string  `json:"image"`
	MinTemperature *float64 `json:"min_temperature"`
	MaxTemperature *float64 `json:"max_temperature"`
}

func (r predictResponse) toResult() (*models.PredictionResult, error) {
	var missing []string
	if r.Image == nil {
		missing = append(missing, "image")
	}
	if r.MinTemperature == nil {
		missing = append(missing, "min_temperature")
	}
	if r.MaxTemperature == nil {
		missing = append(missing, "max_temperature")
	}
	if len(missing) > 0 {
		return nil, &ParseError{Err: errors.New("missing fields: " + strings.Join(missing, ", "))}
	}

	return &models.PredictionResult{
		Image:          *r.Image,
		MinTemperature: *r.MinTemperature,
		MaxTemperature: *r.MaxTemperature,
	}, nil
}
