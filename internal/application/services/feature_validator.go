package services

import (
	"encoding/json"
	"strconv"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/domain/features"
)

// FeatureValidator checks submitted feature maps against a condition's schema
// and coerces them into the ordered numeric vector the classifier expects.
// It is a total function over its inputs: any feature map and condition yield
// exactly one Valid or Invalid result.
type FeatureValidator struct{}

// NewFeatureValidator creates a new feature validator
func NewFeatureValidator() *FeatureValidator {
	return &FeatureValidator{}
}

// Validate looks up the condition's schema, collects every missing required
// field, and on a complete map coerces each value to float64 in schema order.
// Validation always runs before model invocation so partial or garbage
// vectors never reach the predictor.
func (v *FeatureValidator) Validate(condition string, payload entities.FeatureMap) entities.ValidationResult {
	schema, ok := features.Schema(condition)
	if !ok {
		return entities.ValidationResult{
			Valid:  false,
			Reason: entities.ReasonUnknownCondition,
		}
	}

	var missing []string
	for _, name := range schema {
		if _, present := payload[name]; !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return entities.ValidationResult{
			Valid:    false,
			Missing:  missing,
			Expected: schema,
			Reason:   entities.ReasonMissingFields,
		}
	}

	values := make([]float64, 0, len(schema))
	for _, name := range schema {
		value, ok := coerceFloat(payload[name])
		if !ok {
			return entities.ValidationResult{
				Valid:    false,
				Expected: schema,
				Reason:   entities.ReasonNonNumeric,
			}
		}
		values = append(values, value)
	}

	return entities.ValidationResult{
		Valid:    true,
		Values:   values,
		Expected: schema,
	}
}

func coerceFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
