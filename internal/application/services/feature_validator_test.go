package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velora-health/patient-assistant/internal/application/services"
	"github.com/velora-health/patient-assistant/internal/domain/entities"
)

func diabetesPayload() entities.FeatureMap {
	return entities.FeatureMap{
		"Pregnancies":              2,
		"Glucose":                  148.0,
		"BloodPressure":            72,
		"SkinThickness":            35,
		"Insulin":                  0,
		"BMI":                      33.6,
		"DiabetesPedigreeFunction": 0.627,
		"Age":                      50,
	}
}

func TestValidateCompletePayload(t *testing.T) {
	validator := services.NewFeatureValidator()

	result := validator.Validate("diabetes", diabetesPayload())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Missing)
	assert.Len(t, result.Values, 8)
	// Values come back in schema order regardless of map iteration order
	assert.Equal(t, 2.0, result.Values[0])
	assert.Equal(t, 148.0, result.Values[1])
	assert.Equal(t, 50.0, result.Values[7])
}

func TestValidateReportsAllMissingFields(t *testing.T) {
	validator := services.NewFeatureValidator()

	payload := diabetesPayload()
	delete(payload, "Glucose")
	delete(payload, "BMI")

	result := validator.Validate("diabetes", payload)

	assert.False(t, result.Valid)
	assert.Equal(t, entities.ReasonMissingFields, result.Reason)
	assert.ElementsMatch(t, []string{"Glucose", "BMI"}, result.Missing)
	assert.Len(t, result.Expected, 8)
	assert.Nil(t, result.Values)
}

func TestValidateSingleMissingField(t *testing.T) {
	validator := services.NewFeatureValidator()

	payload := diabetesPayload()
	delete(payload, "Glucose")

	result := validator.Validate("diabetes", payload)

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Glucose"}, result.Missing)
}

func TestValidateUnknownCondition(t *testing.T) {
	validator := services.NewFeatureValidator()

	result := validator.Validate("liver", diabetesPayload())

	assert.False(t, result.Valid)
	assert.Equal(t, entities.ReasonUnknownCondition, result.Reason)
}

func TestValidateNonNumericValue(t *testing.T) {
	validator := services.NewFeatureValidator()

	payload := diabetesPayload()
	payload["Glucose"] = "not a number"

	result := validator.Validate("diabetes", payload)

	assert.False(t, result.Valid)
	assert.Equal(t, entities.ReasonNonNumeric, result.Reason)
}

func TestValidateCoercesNumericStrings(t *testing.T) {
	validator := services.NewFeatureValidator()

	payload := diabetesPayload()
	payload["Glucose"] = "148.5"

	result := validator.Validate("diabetes", payload)

	assert.True(t, result.Valid)
	assert.Equal(t, 148.5, result.Values[1])
}

func TestValidateCoercesBooleans(t *testing.T) {
	validator := services.NewFeatureValidator()

	payload := diabetesPayload()
	payload["Pregnancies"] = true

	result := validator.Validate("diabetes", payload)

	assert.True(t, result.Valid)
	assert.Equal(t, 1.0, result.Values[0])
}

func TestValidateIgnoresExtraFields(t *testing.T) {
	validator := services.NewFeatureValidator()

	payload := diabetesPayload()
	payload["unrelated"] = 99

	result := validator.Validate("diabetes", payload)

	assert.True(t, result.Valid)
	assert.Len(t, result.Values, 8)
}

func TestValidateHeartSchema(t *testing.T) {
	validator := services.NewFeatureValidator()

	result := validator.Validate("heart", entities.FeatureMap{"age": 63})

	assert.False(t, result.Valid)
	assert.Equal(t, entities.ReasonMissingFields, result.Reason)
	// 13 features, one supplied
	assert.Len(t, result.Missing, 12)
	assert.Len(t, result.Expected, 13)
}

func TestValidateKidneySchema(t *testing.T) {
	validator := services.NewFeatureValidator()

	result := validator.Validate("kidney", entities.FeatureMap{})

	assert.False(t, result.Valid)
	assert.Len(t, result.Missing, 24)
}
