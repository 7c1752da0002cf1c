package services

import (
	"github.com/velora-health/patient-assistant/internal/domain/entities"
)

// riskTier collapses the six bands into the three rule-table tiers
type riskTier int

const (
	tierLow riskTier = iota
	tierModerate
	tierHigh
)

func tierOf(band entities.RiskBand) riskTier {
	switch band.Zone() {
	case entities.ZoneGreen:
		return tierLow
	case entities.ZoneYellow:
		return tierModerate
	default:
		return tierHigh
	}
}

// baseRecommendations returns a fresh copy of the generic rule table for a
// tier. Callers append condition-specific entries and prepend urgency
// banners, so the shared tables must never leak out by reference.
func baseRecommendations(t riskTier) entities.RecommendationCategories {
	switch t {
	case tierLow:
		return entities.RecommendationCategories{
			Lifestyle: []string{
				"Maintain healthy sleep habits (7-9 hours per night)",
				"Practice stress management techniques like meditation or yoga",
				"Stay socially active and maintain mental wellness",
				"Avoid smoking and limit alcohol consumption",
			},
			Diet: []string{
				"Eat a balanced diet rich in vegetables, fruits, and whole grains",
				"Limit processed foods and added sugars",
				"Stay well-hydrated (8 glasses of water daily)",
				"Control portion sizes and maintain healthy weight",
			},
			Exercise: []string{
				"Aim for 150 minutes of moderate exercise per week",
				"Include both cardio and strength training",
				"Take regular breaks from sitting every hour",
				"Find activities you enjoy to stay consistent",
			},
			Monitoring: []string{
				"Schedule annual health check-ups",
				"Track your weight and vital signs monthly",
				"Keep a health journal to note any changes",
			},
			Medical: []string{
				"Continue preventive care with your doctor",
				"Stay up to date with recommended screenings",
			},
		}
	case tierModerate:
		return entities.RecommendationCategories{
			Lifestyle: []string{
				"Make lifestyle modifications a priority",
				"Reduce stress through relaxation techniques",
				"Ensure adequate sleep and rest",
				"Quit smoking immediately if applicable",
				"Limit alcohol to moderate levels or avoid completely",
			},
			Diet: []string{
				"Work with a nutritionist for personalized meal planning",
				"Significantly reduce processed foods and fast food",
				"Monitor calorie intake to achieve/maintain healthy weight",
				"Increase fiber intake through vegetables and whole grains",
			},
			Exercise: []string{
				"Gradually increase physical activity with doctor's approval",
				"Start with 30 minutes of moderate activity 5 days/week",
				"Consider supervised exercise programs",
				"Avoid sudden strenuous activities",
			},
			Monitoring: []string{
				"Schedule medical consultation within 2-4 weeks",
				"Track symptoms, weight, and vital signs weekly",
				"Keep a detailed health diary",
				"Set up regular follow-up appointments",
			},
			Medical: []string{
				"Consult your primary care physician for comprehensive evaluation",
				"Discuss preventive medication if recommended",
				"Follow prescribed treatment plans carefully",
			},
		}
	default:
		return entities.RecommendationCategories{
			Lifestyle: []string{
				"Avoid strenuous physical or mental stress",
				"Ensure someone is available to assist you",
				"Keep emergency contacts readily accessible",
				"Do not ignore any warning symptoms",
			},
			Diet: []string{
				"Follow strict dietary restrictions as prescribed",
				"Avoid foods that worsen your condition",
				"Work closely with a registered dietician",
				"Stay hydrated unless fluid restriction advised",
			},
			Exercise: []string{
				"Avoid strenuous exercise until medical clearance",
				"Only light activities as approved by doctor",
				"Rest adequately and avoid overexertion",
			},
			Monitoring: []string{
				"Monitor vital signs daily or as directed",
				"Keep detailed log of symptoms and readings",
				"Watch for emergency warning signs",
				"Do not self-medicate - consult doctor for any medication",
			},
			Medical: []string{
				"Seek immediate medical attention",
				"Schedule urgent specialist consultation",
				"Follow treatment plan strictly",
				"Consider emergency care if symptoms worsen",
				"Have all medical records and medications list ready",
			},
		}
	}
}

// minimalRecommendations is the fallback rule set for condition ids the
// engine does not recognize: recommendations never hard-fail a request that
// already produced a valid score.
func minimalRecommendations() entities.RecommendationCategories {
	return entities.RecommendationCategories{
		Lifestyle:  []string{"Maintain healthy lifestyle habits"},
		Diet:       []string{"Eat a balanced, nutritious diet"},
		Exercise:   []string{"Stay physically active as appropriate"},
		Monitoring: []string{"Monitor your health regularly"},
		Medical:    []string{"Consult with healthcare professionals"},
	}
}

// applyConditionRules extends the diet, monitoring and (for high risk)
// medical categories with condition-specific entries.
func applyConditionRules(recs *entities.RecommendationCategories, condition string, t riskTier) {
	switch t {
	case tierLow:
		switch condition {
		case "diabetes":
			recs.Diet = append(recs.Diet,
				"Choose low-glycemic index foods",
				"Limit refined carbohydrates and sugary beverages")
			recs.Monitoring = append(recs.Monitoring,
				"Check fasting glucose every 6-12 months")
		case "heart":
			recs.Diet = append(recs.Diet,
				"Follow a heart-healthy diet (Mediterranean or DASH)",
				"Limit saturated fats and sodium")
			recs.Monitoring = append(recs.Monitoring,
				"Monitor blood pressure regularly")
			recs.Exercise = append(recs.Exercise,
				"Include cardio exercises like walking, swimming, or cycling")
		case "kidney":
			recs.Diet = append(recs.Diet,
				"Moderate protein intake",
				"Limit sodium and potassium-rich foods")
			recs.Monitoring = append(recs.Monitoring,
				"Annual kidney function tests (eGFR)")
		}
	case tierModerate:
		switch condition {
		case "diabetes":
			recs.Diet = append(recs.Diet,
				"Strictly control carbohydrate portions",
				"Avoid sugary snacks and beverages")
			recs.Monitoring = append(recs.Monitoring,
				"Consider HbA1c test",
				"Monitor blood glucose levels regularly")
			recs.Medical = append(recs.Medical,
				"Consider referral to endocrinologist or dietician")
		case "heart":
			recs.Diet = append(recs.Diet,
				"Follow strict low-sodium diet (<2000mg/day)",
				"Reduce cholesterol and saturated fat intake")
			recs.Monitoring = append(recs.Monitoring,
				"Check blood pressure daily",
				"Get lipid profile test")
			recs.Medical = append(recs.Medical,
				"Consult cardiologist for evaluation",
				"Consider ECG and stress test")
		case "kidney":
			recs.Diet = append(recs.Diet,
				"Limit protein intake as advised",
				"Restrict phosphorus and potassium")
			recs.Monitoring = append(recs.Monitoring,
				"Regular urine albumin/creatinine ratio tests",
				"Monitor kidney function closely")
			recs.Medical = append(recs.Medical,
				"Schedule nephrology consultation")
		}
	case tierHigh:
		switch condition {
		case "diabetes":
			recs.Monitoring = append(recs.Monitoring,
				"Check blood glucose frequently",
				"Watch for signs of hyper/hypoglycemia")
			recs.Medical = append(recs.Medical,
				"Urgent endocrinology review required",
				"Discuss insulin or medication adjustment")
		case "heart":
			recs.Monitoring = append(recs.Monitoring,
				"Seek immediate ER if chest pain, shortness of breath, or dizziness occurs")
			recs.Medical = append(recs.Medical,
				"Urgent cardiology consultation required",
				"May need cardiac catheterization or advanced imaging")
		case "kidney":
			recs.Monitoring = append(recs.Monitoring,
				"Watch for swelling, decreased urination, or severe fatigue")
			recs.Medical = append(recs.Medical,
				"Urgent nephrology evaluation needed",
				"May require dialysis or advanced kidney care")
		}
	}
}

// urgencyBanners maps each band to its annotation. Green banners lead the
// lifestyle category; yellow and red banners lead the medical category with
// progressively tighter consultation windows.
var urgencyBanners = map[entities.RiskBand]string{
	entities.BandGreenLow:   "Excellent health indicators - maintain current habits",
	entities.BandGreenHigh:  "Good health but some risk factors detected - focus on prevention",
	entities.BandYellowLow:  "Moderate risk detected - schedule medical consultation within 3-4 weeks",
	entities.BandYellowHigh: "Elevated risk - schedule medical consultation within 1-2 weeks",
	entities.BandRedLow:     "High risk detected - seek medical attention within 3-5 days",
	entities.BandRedHigh:    "CRITICAL RISK - seek immediate medical attention (within 24-48 hours)",
}
