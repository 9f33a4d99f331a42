package matching

import (
	"github.com/yumeworks/talent-match/internal/platform"
)

// DimensionScores holds one normalized score per scored dimension, produced
// fresh for every (talent, listing) pair.
type DimensionScores map[Dimension]float64

const (
	ageDecayYears     = 10.0
	specDecayPoints   = 20.0
	cupSizeNeutral    = 0.5
	guaranteeNeutral  = 0.5
	guaranteeFallback = 0.3
	locationPreferred = 0.8
	locationMismatch  = 0.2
	locationNeutral   = 0.5
)

// ScoreListing runs every dimension scorer for the pair. All scorers are
// total functions over their input domain and return values in [0,1].
func ScoreListing(f *TalentFeatures, l *platform.Listing) DimensionScores {
	req := l.Requirements
	return DimensionScores{
		DimensionAge:       scoreAge(f.Age, req.AgeMin, req.AgeMax),
		DimensionLocation:  scoreLocation(f, l.Location),
		DimensionBodyType:  scoreBodyType(f.BodySpec, req.SpecMin, req.SpecMax),
		DimensionCupSize:   scoreCupSize(),
		DimensionGuarantee: scoreGuarantee(f.DesiredGuarantee, l.MinimumGuarantee, l.MaximumGuarantee),
		DimensionService:   scoreService(f.ServiceTypes, l.ServiceType),
	}
}

// scoreAge is 1.0 inside the listing's closed range and decays linearly to 0
// over ageDecayYears from the nearest bound. An unknown age or an unbounded
// listing fails open.
func scoreAge(age, min, max *int) float64 {
	if age == nil || (min == nil && max == nil) {
		return 1.0
	}
	return rangeDecay(float64(*age), min, max, ageDecayYears)
}

// scoreBodyType applies the same decay against the spec bounds with a wider
// window. A zero-or-negative range width scores the 0.5 guard value.
func scoreBodyType(spec, min, max *int) float64 {
	if spec == nil || (min == nil && max == nil) {
		return 1.0
	}
	if min != nil && max != nil && *max-*min <= 0 {
		return 0.5
	}
	return rangeDecay(float64(*spec), min, max, specDecayPoints)
}

// scoreCupSize is a fixed placeholder until real cup-size compatibility data
// exists. It must stay at the neutral value for behavioral parity.
func scoreCupSize() float64 {
	return cupSizeNeutral
}

func scoreLocation(f *TalentFeatures, listing platform.Prefecture) float64 {
	if listing == "" {
		return locationNeutral
	}
	if listing == f.Location {
		return 1.0
	}
	if _, ok := f.PreferredLocations[listing]; ok {
		return locationPreferred
	}
	return locationMismatch
}

// scoreGuarantee is neutral without data on either side, 1.0 when the listing
// meets the desired amount, a pro-rated score when only an insufficient
// minimum exists, and a deliberately non-zero fallback otherwise.
func scoreGuarantee(desired int, min, max *int) float64 {
	if desired <= 0 {
		return guaranteeNeutral
	}
	if min == nil && max == nil {
		return guaranteeNeutral
	}
	if (max != nil && *max >= desired) || (min != nil && *min >= desired) {
		return 1.0
	}
	if min != nil {
		return clamp01(float64(*min) / float64(desired))
	}
	return guaranteeFallback
}

// scoreService is the only dimension with a hard zero.
func scoreService(prefs map[platform.ServiceType]struct{}, st platform.ServiceType) float64 {
	if _, ok := prefs[st]; ok {
		return 1.0
	}
	return 0.0
}

// rangeDecay returns 1.0 inside [min,max] and max(0, 1-distance/window)
// outside, against whichever bounds are present.
func rangeDecay(value float64, min, max *int, window float64) float64 {
	var distance float64
	switch {
	case min != nil && value < float64(*min):
		distance = float64(*min) - value
	case max != nil && value > float64(*max):
		distance = value - float64(*max)
	default:
		return 1.0
	}

	return clamp01(1.0 - distance/window)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
