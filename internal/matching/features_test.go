package matching

import (
	"testing"
	"time"

	"github.com/yumeworks/talent-match/internal/platform"
)

func TestExtractFeaturesAge(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	user := &platform.User{ID: "u1", BirthDate: "2000-06-15"}
	f := ExtractFeatures(user, &platform.TalentProfile{UserID: "u1"}, now)
	if f.Age == nil || *f.Age != 26 {
		t.Fatalf("expected age 26 on the anniversary, got %v", f.Age)
	}

	user.BirthDate = "2000-06-16"
	f = ExtractFeatures(user, &platform.TalentProfile{UserID: "u1"}, now)
	if f.Age == nil || *f.Age != 25 {
		t.Fatalf("expected age 25 before the anniversary, got %v", f.Age)
	}
}

func TestExtractFeaturesAgeRFC3339(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	user := &platform.User{ID: "u1", BirthDate: "1999-01-02T00:00:00Z"}

	f := ExtractFeatures(user, &platform.TalentProfile{UserID: "u1"}, now)
	if f.Age == nil || *f.Age != 27 {
		t.Fatalf("expected age 27, got %v", f.Age)
	}
}

func TestExtractFeaturesUnparsableBirthDate(t *testing.T) {
	now := time.Now()
	for _, birthDate := range []string{"", "not-a-date", "15/06/2000"} {
		user := &platform.User{ID: "u1", BirthDate: birthDate}
		f := ExtractFeatures(user, &platform.TalentProfile{UserID: "u1"}, now)
		if f.Age != nil {
			t.Fatalf("expected nil age for birth date %q, got %d", birthDate, *f.Age)
		}
	}
}

func TestExtractFeaturesBodySpec(t *testing.T) {
	now := time.Now()
	user := &platform.User{ID: "u1"}

	profile := &platform.TalentProfile{UserID: "u1", HeightCm: intp(160), WeightKg: intp(45)}
	f := ExtractFeatures(user, profile, now)
	if f.BodySpec == nil || *f.BodySpec != 115 {
		t.Fatalf("expected body spec 115, got %v", f.BodySpec)
	}

	profile = &platform.TalentProfile{UserID: "u1", HeightCm: intp(160)}
	f = ExtractFeatures(user, profile, now)
	if f.BodySpec != nil {
		t.Fatalf("expected nil body spec without a weight, got %d", *f.BodySpec)
	}
}

func TestExtractFeaturesPreferences(t *testing.T) {
	now := time.Now()
	user := &platform.User{
		ID:                 "u1",
		Location:           "tokyo",
		PreferredLocations: []platform.Prefecture{"osaka", "kyoto"},
	}
	profile := &platform.TalentProfile{
		UserID:           "u1",
		DesiredGuarantee: 20000,
		ServiceTypes:     []platform.ServiceType{"store_health"},
	}

	f := ExtractFeatures(user, profile, now)

	if f.Location != "tokyo" {
		t.Fatalf("unexpected location: %s", f.Location)
	}
	if f.DesiredGuarantee != 20000 {
		t.Fatalf("unexpected desired guarantee: %d", f.DesiredGuarantee)
	}
	if _, ok := f.PreferredLocations["osaka"]; !ok {
		t.Fatalf("expected osaka in preferred locations")
	}
	if _, ok := f.PreferredLocations["kyoto"]; !ok {
		t.Fatalf("expected kyoto in preferred locations")
	}
	if _, ok := f.ServiceTypes["store_health"]; !ok {
		t.Fatalf("expected store_health in service types")
	}
}
