package matching

// Dimension names one axis the engine can weigh. The set is a superset of the
// scored axes: the reserved dimensions accumulate behavioral weight but have
// no scorer wired yet.
type Dimension string

const (
	DimensionAge       Dimension = "age"
	DimensionLocation  Dimension = "location"
	DimensionBodyType  Dimension = "body_type"
	DimensionCupSize   Dimension = "cup_size"
	DimensionGuarantee Dimension = "guarantee"
	DimensionService   Dimension = "service"

	// Reserved dimensions: tracked by the behavioral adjuster only.
	DimensionAppearance Dimension = "appearance"
	DimensionHairColor  Dimension = "hair_color"
	DimensionTattoo     Dimension = "tattoo"
)

// scoredDimensions is the fixed aggregation and reason order.
var scoredDimensions = []Dimension{
	DimensionAge,
	DimensionLocation,
	DimensionBodyType,
	DimensionCupSize,
	DimensionGuarantee,
	DimensionService,
}

// ScoredDimensions returns the dimensions that currently have a scorer, in
// aggregation order.
func ScoredDimensions() []Dimension {
	out := make([]Dimension, len(scoredDimensions))
	copy(out, scoredDimensions)
	return out
}

var allDimensions = map[Dimension]struct{}{
	DimensionAge:        {},
	DimensionLocation:   {},
	DimensionBodyType:   {},
	DimensionCupSize:    {},
	DimensionGuarantee:  {},
	DimensionService:    {},
	DimensionAppearance: {},
	DimensionHairColor:  {},
	DimensionTattoo:     {},
}

// WeightProfile maps dimensions to their importance in aggregation.
type WeightProfile map[Dimension]float64

// DefaultWeights returns the static weight profile.
func DefaultWeights() WeightProfile {
	return WeightProfile{
		DimensionAge:       25,
		DimensionLocation:  20,
		DimensionBodyType:  15,
		DimensionCupSize:   15,
		DimensionGuarantee: 15,
		DimensionService:   10,
	}
}

// NewWeightProfile overlays the provided overrides on the defaults. Negative
// weights and unknown dimensions are rejected, never clamped.
func NewWeightProfile(overrides map[Dimension]float64) (WeightProfile, error) {
	w := DefaultWeights()

	for dim, value := range overrides {
		if _, ok := allDimensions[dim]; !ok {
			return nil, &ConfigurationError{Reason: "unknown weight dimension: " + string(dim)}
		}
		if value < 0 {
			return nil, &ConfigurationError{Reason: "negative weight for dimension " + string(dim)}
		}
		w[dim] = value
	}

	return w, nil
}

// Deltas are non-negative behavioral adjustments added on top of a profile.
type Deltas map[Dimension]float64

// maxDimensionDelta caps the accumulated adjustment per dimension.
const maxDimensionDelta = 5.0

// Clamped returns a copy with every delta limited to maxDimensionDelta.
func (d Deltas) Clamped() Deltas {
	out := make(Deltas, len(d))
	for dim, v := range d {
		if v > maxDimensionDelta {
			v = maxDimensionDelta
		}
		out[dim] = v
	}
	return out
}

// Adjusted returns a new profile with the deltas applied. The receiver is not
// modified; the engine never mutates shared weight state.
func (w WeightProfile) Adjusted(d Deltas) WeightProfile {
	out := make(WeightProfile, len(w))
	for dim, v := range w {
		out[dim] = v
	}
	for dim, v := range d {
		out[dim] += v
	}
	return out
}
