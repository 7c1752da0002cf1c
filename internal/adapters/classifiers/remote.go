package classifiers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteClassifier invokes an HTTP inference service that hosts the trained
// model. The request carries the ordered feature vector; the service answers
// with the positive-class probability.
type RemoteClassifier struct {
	endpoint string
	client   *http.Client
}

// NewRemoteClassifier creates a remote classifier for an inference endpoint
func NewRemoteClassifier(endpoint string) *RemoteClassifier {
	return &RemoteClassifier{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type inferenceRequest struct {
	Features []float64 `json:"features"`
}

type inferenceResponse struct {
	Probability float64 `json:"probability"`
}

// Predict posts the vector to the inference service and decodes the
// probability.
func (c *RemoteClassifier) Predict(ctx context.Context, features []float64) (float64, error) {
	body, err := json.Marshal(inferenceRequest{Features: features})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inference service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	var out inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode inference response: %w", err)
	}

	return out.Probability, nil
}
