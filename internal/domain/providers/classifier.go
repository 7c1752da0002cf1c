package providers

import (
	"context"
	"sort"
)

// Classifier is the opaque pre-trained model capability: given a fixed-length
// ordered numeric vector it returns the positive-class probability in [0,1].
// Implementations that only support binary labels return 0.0 or 1.0.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// ClassifierRegistry maps condition ids to their configured classifiers.
// It is an explicit constructed value handed to the predictor, populated once
// at startup and read-only afterwards, so it is safe to share across requests.
type ClassifierRegistry struct {
	byCondition map[string]Classifier
}

// NewClassifierRegistry creates an empty registry
func NewClassifierRegistry() *ClassifierRegistry {
	return &ClassifierRegistry{byCondition: make(map[string]Classifier)}
}

// Register adds a classifier for a condition, replacing any previous entry
func (r *ClassifierRegistry) Register(condition string, c Classifier) {
	r.byCondition[condition] = c
}

// Get returns the classifier configured for a condition
func (r *ClassifierRegistry) Get(condition string) (Classifier, bool) {
	c, ok := r.byCondition[condition]
	return c, ok
}

// Conditions returns the registered condition ids in sorted order
func (r *ClassifierRegistry) Conditions() []string {
	conditions := make([]string, 0, len(r.byCondition))
	for condition := range r.byCondition {
		conditions = append(conditions, condition)
	}
	sort.Strings(conditions)
	return conditions
}

// Len returns the number of registered classifiers
func (r *ClassifierRegistry) Len() int {
	return len(r.byCondition)
}
