package entities

// FeatureMap is a per-request mapping from feature name to a raw submitted
// value. It is consumed during validation and never persisted.
type FeatureMap map[string]interface{}

// ValidationReason describes why a feature map was rejected
type ValidationReason string

const (
	ReasonMissingFields    ValidationReason = "missing_fields"
	ReasonNonNumeric       ValidationReason = "non_numeric"
	ReasonUnknownCondition ValidationReason = "unknown_condition"
)

// ValidationResult is the outcome of checking a FeatureMap against a
// condition's schema. When Valid is true, Values holds the coerced numeric
// vector in schema order; otherwise Missing, Expected and Reason describe the
// failure completely so the caller can self-correct.
type ValidationResult struct {
	Valid    bool
	Values   []float64
	Missing  []string
	Expected []string
	Reason   ValidationReason
}
