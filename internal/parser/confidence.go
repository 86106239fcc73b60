package parser

import "math"

// Confidence weights per resolved slot. Participants and cost only count
// when the command spelled them out; defaults are free.
const (
	weightSport        = 0.3
	weightTime         = 0.3
	weightVenue        = 0.2
	weightParticipants = 0.15
	weightCost         = 0.05

	successThreshold = 0.5
)

// aggregateConfidence sums the weighted slot contributions, capped at 1
func aggregateConfidence(res *resolution) float64 {
	c := 0.0
	if res.sportID != "" {
		c += weightSport
	}
	if res.span != nil {
		c += weightTime
	}
	if res.venue != nil {
		c += weightVenue
	}
	if res.participants.explicit {
		c += weightParticipants
	}
	if res.cost.explicit {
		c += weightCost
	}
	if c > 1 {
		c = 1
	}
	return math.Round(c*100) / 100
}

// isSuccess requires the confidence bar plus the two slots no event can do
// without: what to play and when.
func isSuccess(confidence float64, res *resolution) bool {
	return confidence > successThreshold && res.sportID != "" && res.span != nil
}
