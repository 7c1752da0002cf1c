package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/domain/providers"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// neutralScore is substituted when a classifier reports NaN or an infinite
// probability: a corrupted model output must never crash a downstream
// consumer or yield an impossible score.
const neutralScore = 50.0

// defaultInferenceTimeout bounds a single classifier invocation
const defaultInferenceTimeout = 10 * time.Second

// RiskPredictor adapts validated feature vectors into classifier invocations
// and normalizes the output into a bounded percentage. The registry is
// read-only after construction and safe for concurrent use.
type RiskPredictor struct {
	registry *providers.ClassifierRegistry
	timeout  time.Duration
}

// NewRiskPredictor creates a predictor over an explicit classifier registry
func NewRiskPredictor(registry *providers.ClassifierRegistry) *RiskPredictor {
	return &RiskPredictor{
		registry: registry,
		timeout:  defaultInferenceTimeout,
	}
}

// Predict invokes the condition's classifier on an ordered numeric vector and
// returns the clamped risk percentage. Inference failures surface as
// InferenceError and are never retried: model inference is deterministic and
// side-effect-free, so a retry would only repeat the failure.
func (p *RiskPredictor) Predict(ctx context.Context, condition string, values []float64) (entities.RiskScore, error) {
	classifier, ok := p.registry.Get(condition)
	if !ok {
		return entities.RiskScore{}, apperrors.NewConfigurationError(
			fmt.Sprintf("no classifier configured for condition %q", condition), nil)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	probability, err := classifier.Predict(ctx, values)
	if err != nil {
		return entities.RiskScore{}, apperrors.NewInferenceError(
			fmt.Sprintf("classifier invocation failed for condition %q", condition), err)
	}

	return entities.RiskScore{
		Condition: condition,
		Value:     ClampScore(probability * 100),
	}, nil
}

// ClampScore bounds a raw percentage to [0,100]. NaN and infinities map to
// the neutral 50.0 fallback. Idempotent: ClampScore(ClampScore(x)) ==
// ClampScore(x) for all x.
func ClampScore(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return neutralScore
	}
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
