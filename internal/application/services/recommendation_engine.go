package services

import (
	"fmt"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/domain/features"
)

// RecommendationEngine composes categorized action plans from the fixed rule
// tables. The tables are read-only after initialization; for a fixed
// (condition, score) pair the output is identical on every call.
type RecommendationEngine struct {
	zones *ZoneClassifier
}

// NewRecommendationEngine creates a recommendation engine
func NewRecommendationEngine(zones *ZoneClassifier) *RecommendationEngine {
	return &RecommendationEngine{zones: zones}
}

// Recommend builds the action plan for a condition at a given risk score.
// Unknown condition ids fall through to the minimal generic rule set instead
// of failing: a request that already produced a valid score must always get
// recommendations.
func (e *RecommendationEngine) Recommend(condition string, score float64) *entities.RecommendationSet {
	score = ClampScore(score)
	band := e.zones.Band(score)
	t := tierOf(band)

	var recs entities.RecommendationCategories
	if features.Supported(condition) {
		recs = baseRecommendations(t)
		applyConditionRules(&recs, condition, t)
	} else {
		recs = minimalRecommendations()
	}

	// The banner is chosen from the finer band so that, say, yellow_low and
	// yellow_high both read as moderate risk but carry different
	// consultation windows.
	banner := urgencyBanners[band]
	if band.Zone() == entities.ZoneGreen {
		recs.Lifestyle = prepend(recs.Lifestyle, banner)
	} else {
		recs.Medical = prepend(recs.Medical, banner)
	}

	return &entities.RecommendationSet{
		Condition:       condition,
		Score:           score,
		ZoneLabel:       zoneLabel(band, score),
		Band:            band,
		Recommendations: recs,
	}
}

func prepend(items []string, head string) []string {
	out := make([]string, 0, len(items)+1)
	out = append(out, head)
	return append(out, items...)
}

func zoneLabel(band entities.RiskBand, score float64) string {
	switch band.Zone() {
	case entities.ZoneGreen:
		return fmt.Sprintf("Green Zone (Low Risk - %.1f%%)", score)
	case entities.ZoneYellow:
		return fmt.Sprintf("Yellow Zone (Moderate Risk - %.1f%%)", score)
	default:
		return fmt.Sprintf("Red Zone (High Risk - %.1f%%)", score)
	}
}
