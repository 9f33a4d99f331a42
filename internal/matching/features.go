package matching

import (
	"time"

	"github.com/yumeworks/talent-match/internal/platform"
)

// TalentFeatures holds the scoring inputs derived from a talent's records.
// Built once per matching run and discarded after.
type TalentFeatures struct {
	// Age in whole years; nil when the birth date is missing or unparsable,
	// in which case age scoring fails open.
	Age *int `json:"age,omitempty"`
	// BodySpec is height minus weight; nil when either measure is missing.
	BodySpec           *int                               `json:"body_spec,omitempty"`
	Location           platform.Prefecture                `json:"location,omitempty"`
	PreferredLocations map[platform.Prefecture]struct{}   `json:"-"`
	DesiredGuarantee   int                                `json:"desired_guarantee,omitempty"`
	ServiceTypes       map[platform.ServiceType]struct{}  `json:"-"`
}

var birthDateLayouts = []string{"2006-01-02", time.RFC3339}

// ExtractFeatures derives TalentFeatures from the user and profile records.
// It performs no I/O and never fails: unusable inputs yield nil features that
// score neutrally.
func ExtractFeatures(user *platform.User, profile *platform.TalentProfile, now time.Time) *TalentFeatures {
	f := &TalentFeatures{
		Age:                ageAt(user.BirthDate, now),
		Location:           user.Location,
		PreferredLocations: make(map[platform.Prefecture]struct{}, len(user.PreferredLocations)),
		DesiredGuarantee:   profile.DesiredGuarantee,
		ServiceTypes:       make(map[platform.ServiceType]struct{}, len(profile.ServiceTypes)),
	}

	for _, p := range user.PreferredLocations {
		f.PreferredLocations[p] = struct{}{}
	}
	for _, st := range profile.ServiceTypes {
		f.ServiceTypes[st] = struct{}{}
	}

	if profile.HeightCm != nil && profile.WeightKg != nil {
		spec := *profile.HeightCm - *profile.WeightKg
		f.BodySpec = &spec
	}

	return f
}

// ageAt computes whole years between the birth date and now, subtracting one
// when this year's anniversary has not yet occurred.
func ageAt(birthDate string, now time.Time) *int {
	var born time.Time
	var parsed bool
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, birthDate); err == nil {
			born = t
			parsed = true
			break
		}
	}
	if !parsed {
		return nil
	}

	years := now.Year() - born.Year()
	anniversary := time.Date(now.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		years = 0
	}

	return &years
}
