package platform

import (
	"time"
)

// ListingStatusPublished is the only status eligible for matching.
const ListingStatusPublished = "published"

// Prefecture identifies a registered working area.
type Prefecture string

// ServiceType identifies a category of service a store offers.
type ServiceType string

// TattooLevel describes how strict a listing is about tattoos.
type TattooLevel string

const (
	// TattooNotAllowed is the strictest acceptance level.
	TattooNotAllowed TattooLevel = "not_allowed"
	TattooSmallOK    TattooLevel = "small_ok"
	TattooAllowed    TattooLevel = "allowed"
)

// Benefit tags recognised on listings.
const (
	BenefitTransportation = "transportation_support"
	BenefitHousing        = "housing_support"
)

// User holds the account-level fields the engine reads.
type User struct {
	ID                 string       `json:"id"`
	BirthDate          string       `json:"birth_date,omitempty"`
	Location           Prefecture   `json:"location,omitempty"`
	PreferredLocations []Prefecture `json:"preferred_locations,omitempty"`
}

// TalentProfile holds the talent-side matching inputs.
type TalentProfile struct {
	UserID           string        `json:"user_id"`
	HeightCm         *int          `json:"height_cm,omitempty"`
	WeightKg         *int          `json:"weight_kg,omitempty"`
	DesiredGuarantee int           `json:"desired_guarantee,omitempty"`
	ServiceTypes     []ServiceType `json:"service_types,omitempty"`
}

// CupSpecOverride narrows the body-spec range for a specific cup size.
// Accepted as data for forward compatibility; the default engine does not
// consume it yet.
type CupSpecOverride struct {
	Cup     string `json:"cup"`
	SpecMin *int   `json:"spec_min,omitempty"`
	SpecMax *int   `json:"spec_max,omitempty"`
}

// ListingRequirements describes the eligibility preferences of a listing.
// Absent bounds are nil, meaning the listing states no preference.
type ListingRequirements struct {
	AgeMin     *int              `json:"age_min,omitempty"`
	AgeMax     *int              `json:"age_max,omitempty"`
	SpecMin    *int              `json:"spec_min,omitempty"`
	SpecMax    *int              `json:"spec_max,omitempty"`
	CupSpecs   []CupSpecOverride `json:"cup_specs,omitempty"`
	LookTypes  []string          `json:"look_types,omitempty"`
	HairColors []string          `json:"hair_colors,omitempty"`
	Tattoo     TattooLevel       `json:"tattoo,omitempty"`
}

// Listing is a store's published job posting.
type Listing struct {
	ID               string              `json:"id"`
	StoreName        string              `json:"store_name,omitempty"`
	Status           string              `json:"status"`
	Location         Prefecture          `json:"location,omitempty"`
	ServiceType      ServiceType         `json:"service_type,omitempty"`
	MinimumGuarantee *int                `json:"minimum_guarantee,omitempty"`
	MaximumGuarantee *int                `json:"maximum_guarantee,omitempty"`
	Requirements     ListingRequirements `json:"requirements"`
	Benefits         []string            `json:"benefits,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// HasBenefit reports whether the listing advertises the given benefit tag.
func (l *Listing) HasBenefit(tag string) bool {
	for _, b := range l.Benefits {
		if b == tag {
			return true
		}
	}
	return false
}

// Application is an entry in a talent's application history.
type Application struct {
	ListingID string    `json:"listing_id"`
	AppliedAt time.Time `json:"applied_at"`
}

// Keep is a bookmarked listing.
type Keep struct {
	ListingID string    `json:"listing_id"`
	KeptAt    time.Time `json:"kept_at"`
}

// View is an entry in a talent's listing view history.
type View struct {
	ListingID string    `json:"listing_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}
