// Package features holds the per-condition feature schema registry: the
// ordered list of measurements each condition's classifier was trained on.
package features

// schemas maps condition id to its required feature names, in the exact
// order the trained classifiers expect their input vectors.
var schemas = map[string][]string{
	"diabetes": {
		"Pregnancies", "Glucose", "BloodPressure", "SkinThickness",
		"Insulin", "BMI", "DiabetesPedigreeFunction", "Age",
	},
	"heart": {
		"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
		"thalach", "exang", "oldpeak", "slope", "ca", "thal",
	},
	"kidney": {
		"age", "bp", "sg", "al", "su", "rbc", "pc", "pcc", "ba",
		"bgr", "bu", "sc", "sod", "pot", "hemo", "pcv", "wc", "rc",
		"htn", "dm", "cad", "appet", "pe", "ane",
	},
}

// Schema returns the ordered required feature names for a condition
func Schema(condition string) ([]string, bool) {
	s, ok := schemas[condition]
	return s, ok
}

// Supported reports whether a condition has a registered schema
func Supported(condition string) bool {
	_, ok := schemas[condition]
	return ok
}

// Conditions returns the supported condition ids
func Conditions() []string {
	return []string{"diabetes", "heart", "kidney"}
}
