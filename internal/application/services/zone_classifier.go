package services

import (
	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/pkg/config"
)

// ZoneClassifier maps a risk percentage into discrete zones. The 3-band zone
// follows the configured thresholds, falling back to the fixed 30/70 split
// whenever the score lands outside every configured bound. The 6-band scheme
// is fixed: it subdivides each band at its midpoint and exists so that
// recommendations can distinguish urgency within a zone.
type ZoneClassifier struct {
	thresholds config.RiskThresholds
}

// NewZoneClassifier creates a zone classifier with the supplied thresholds
func NewZoneClassifier(thresholds config.RiskThresholds) *ZoneClassifier {
	return &ZoneClassifier{thresholds: thresholds}
}

// Zone returns the 3-band classification of a score. Band upper edges are
// inclusive; no finite score is left unclassified.
func (z *ZoneClassifier) Zone(score float64) entities.RiskZone {
	t := z.thresholds
	switch {
	case score >= t.Green.Low && score <= t.Green.High:
		return entities.ZoneGreen
	case score >= t.Yellow.Low && score <= t.Yellow.High:
		return entities.ZoneYellow
	case score >= t.Red.Low && score <= t.Red.High:
		return entities.ZoneRed
	}

	// Configured bounds did not cover the score (gap, overlap or an
	// out-of-range input): fall back to the fixed 30/70 split.
	switch {
	case score <= 30:
		return entities.ZoneGreen
	case score <= 70:
		return entities.ZoneYellow
	default:
		return entities.ZoneRed
	}
}

// Band returns the fixed 6-band classification of a score
func (z *ZoneClassifier) Band(score float64) entities.RiskBand {
	switch {
	case score <= 25:
		return entities.BandGreenLow
	case score <= 40:
		return entities.BandGreenHigh
	case score <= 55:
		return entities.BandYellowLow
	case score <= 70:
		return entities.BandYellowHigh
	case score <= 85:
		return entities.BandRedLow
	default:
		return entities.BandRedHigh
	}
}
