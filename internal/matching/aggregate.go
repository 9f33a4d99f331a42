package matching

import (
	"math"

	"github.com/yumeworks/talent-match/internal/platform"
)

// reasonThreshold gates most dimensions; service requires an exact match.
const reasonThreshold = 0.8

var reasonMessages = map[Dimension]string{
	DimensionAge:       "age fits the listing's preferred range",
	DimensionLocation:  "the listing is in a matching area",
	DimensionBodyType:  "body type fits the listing's preferred range",
	DimensionCupSize:   "cup size fits the listing's preferences",
	DimensionGuarantee: "the guarantee meets the desired amount",
	DimensionService:   "the service type matches the talent's preferences",
}

// Aggregate combines dimension scores with the active weight profile into the
// public 0..100 match score. An all-zero profile yields 0, not a division
// error.
func Aggregate(scores DimensionScores, weights WeightProfile) int {
	var sum, sumW float64
	for _, dim := range scoredDimensions {
		w := weights[dim]
		sum += scores[dim] * w
		sumW += w
	}

	if sumW <= 0 {
		return 0
	}

	return int(math.Round(sum / sumW * 100))
}

// Reasons emits human-readable explanations for high-scoring dimensions in
// the fixed dimension order, followed by listing-level perks.
func Reasons(scores DimensionScores, l *platform.Listing) []string {
	var reasons []string

	for _, dim := range scoredDimensions {
		score := scores[dim]
		if dim == DimensionService {
			if score == 1.0 {
				reasons = append(reasons, reasonMessages[dim])
			}
			continue
		}
		if score > reasonThreshold {
			reasons = append(reasons, reasonMessages[dim])
		}
	}

	if l.HasBenefit(platform.BenefitTransportation) {
		reasons = append(reasons, "transportation support is provided")
	}
	if l.HasBenefit(platform.BenefitHousing) {
		reasons = append(reasons, "housing support is provided")
	}

	return reasons
}
