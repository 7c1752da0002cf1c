package entities

// RiskZone is the coarse 3-band risk classification used in API responses
type RiskZone string

const (
	ZoneGreen  RiskZone = "Green"
	ZoneYellow RiskZone = "Yellow"
	ZoneRed    RiskZone = "Red"
)

// RiskBand is the finer 6-band classification used to select recommendation
// urgency. Each band projects onto exactly one RiskZone.
type RiskBand string

const (
	BandGreenLow   RiskBand = "green_low"
	BandGreenHigh  RiskBand = "green_high"
	BandYellowLow  RiskBand = "yellow_low"
	BandYellowHigh RiskBand = "yellow_high"
	BandRedLow     RiskBand = "red_low"
	BandRedHigh    RiskBand = "red_high"
)

// Zone returns the fixed 3-band projection of the band
func (b RiskBand) Zone() RiskZone {
	switch b {
	case BandGreenLow, BandGreenHigh:
		return ZoneGreen
	case BandYellowLow, BandYellowHigh:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

// RiskScore is a calibrated disease-risk percentage, always in [0,100] and
// never NaN or infinite downstream of the predictor.
type RiskScore struct {
	Condition string
	Value     float64
}

// RecommendationCategories holds the categorized action plan. Field order is
// the presentation order; within each list the most urgent items come first.
type RecommendationCategories struct {
	Lifestyle  []string `json:"lifestyle"`
	Diet       []string `json:"diet"`
	Exercise   []string `json:"exercise"`
	Monitoring []string `json:"monitoring"`
	Medical    []string `json:"medical"`
}

// RecommendationSet is the full recommendation payload for one condition and
// score.
type RecommendationSet struct {
	Condition       string
	Score           float64
	ZoneLabel       string
	Band            RiskBand
	Recommendations RecommendationCategories
}
