// Package classifiers provides the trained-model implementations behind the
// predictor's Classifier interface: a local logistic artifact scorer and a
// remote inference client.
package classifiers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// logisticArtifact is the exported-model file layout: coefficients of a
// fitted logistic regression plus the optional standardization parameters of
// its preprocessing pipeline.
type logisticArtifact struct {
	Condition string    `json:"condition"`
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Means     []float64 `json:"feature_means,omitempty"`
	Scales    []float64 `json:"feature_scales,omitempty"`
}

// LogisticModel scores a feature vector with fitted logistic-regression
// coefficients. It is immutable after loading and safe for concurrent use.
type LogisticModel struct {
	condition string
	weights   []float64
	intercept float64
	means     []float64
	scales    []float64
}

// LoadLogistic reads a JSON coefficient artifact from disk
func LoadLogistic(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier artifact %s: %w", path, err)
	}

	var artifact logisticArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse classifier artifact %s: %w", path, err)
	}
	if len(artifact.Weights) == 0 {
		return nil, fmt.Errorf("classifier artifact %s has no weights", path)
	}
	if len(artifact.Means) > 0 && len(artifact.Means) != len(artifact.Weights) {
		return nil, fmt.Errorf("classifier artifact %s: %d means for %d weights", path, len(artifact.Means), len(artifact.Weights))
	}
	if len(artifact.Scales) > 0 && len(artifact.Scales) != len(artifact.Weights) {
		return nil, fmt.Errorf("classifier artifact %s: %d scales for %d weights", path, len(artifact.Scales), len(artifact.Weights))
	}

	return &LogisticModel{
		condition: artifact.Condition,
		weights:   artifact.Weights,
		intercept: artifact.Intercept,
		means:     artifact.Means,
		scales:    artifact.Scales,
	}, nil
}

// Predict returns the positive-class probability for an ordered feature
// vector of the trained dimensionality.
func (m *LogisticModel) Predict(_ context.Context, features []float64) (float64, error) {
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.weights), len(features))
	}

	z := m.intercept
	for i, x := range features {
		if len(m.means) > 0 {
			x -= m.means[i]
		}
		if len(m.scales) > 0 && m.scales[i] != 0 {
			x /= m.scales[i]
		}
		z += m.weights[i] * x
	}

	return 1 / (1 + math.Exp(-z)), nil
}
