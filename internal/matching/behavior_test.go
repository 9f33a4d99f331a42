package matching

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/yumeworks/talent-match/internal/platform"
)

type fakeHistory struct {
	apps  []*platform.Application
	keeps []*platform.Keep
	views []*platform.View
	err   error
}

func (h *fakeHistory) GetApplications(context.Context, string) ([]*platform.Application, error) {
	return h.apps, h.err
}

func (h *fakeHistory) GetKeeps(context.Context, string) ([]*platform.Keep, error) {
	return h.keeps, h.err
}

func (h *fakeHistory) GetViews(context.Context, string, int) ([]*platform.View, error) {
	return h.views, h.err
}

type fakeListings struct {
	listings []*platform.Listing
	err      error
}

func (s *fakeListings) GetPublishedListings(context.Context) ([]*platform.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

func (s *fakeListings) GetListingsByIDs(_ context.Context, ids []string) ([]*platform.Listing, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var found []*platform.Listing
	for _, l := range s.listings {
		if _, ok := wanted[l.ID]; ok {
			found = append(found, l)
		}
	}
	return found, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAdjusterEmptyHistory(t *testing.T) {
	adjuster := NewAdjuster(&fakeHistory{}, &fakeListings{}, nil)

	deltas := adjuster.Deltas(context.Background(), "u1")
	if len(deltas) != 0 {
		t.Fatalf("expected no deltas for an empty history, got %v", deltas)
	}
}

func TestAdjusterAppliedSignals(t *testing.T) {
	listing := &platform.Listing{
		ID:               "l1",
		MinimumGuarantee: intp(30000),
		Requirements: platform.ListingRequirements{
			LookTypes:  []string{"gyaru"},
			HairColors: []string{"black"},
			Tattoo:     platform.TattooNotAllowed,
		},
	}
	history := &fakeHistory{
		apps: []*platform.Application{{ListingID: "l1"}},
	}

	adjuster := NewAdjuster(history, &fakeListings{listings: []*platform.Listing{listing}}, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if !almostEqual(deltas[DimensionLocation], 0.5) {
		t.Fatalf("expected location delta 0.5, got %v", deltas[DimensionLocation])
	}
	if !almostEqual(deltas[DimensionService], 0.5) {
		t.Fatalf("expected service delta 0.5, got %v", deltas[DimensionService])
	}
	if !almostEqual(deltas[DimensionGuarantee], 0.5) {
		t.Fatalf("expected guarantee delta 0.5, got %v", deltas[DimensionGuarantee])
	}
	if !almostEqual(deltas[DimensionAppearance], 0.3) {
		t.Fatalf("expected appearance delta 0.3, got %v", deltas[DimensionAppearance])
	}
	if !almostEqual(deltas[DimensionHairColor], 0.3) {
		t.Fatalf("expected hair color delta 0.3, got %v", deltas[DimensionHairColor])
	}
	if !almostEqual(deltas[DimensionTattoo], 0.3) {
		t.Fatalf("expected tattoo delta 0.3, got %v", deltas[DimensionTattoo])
	}
}

func TestAdjusterGuaranteeSignalThreshold(t *testing.T) {
	// Exactly at the threshold is not a high-pay signal.
	listing := &platform.Listing{ID: "l1", MinimumGuarantee: intp(25000)}
	history := &fakeHistory{apps: []*platform.Application{{ListingID: "l1"}}}

	adjuster := NewAdjuster(history, &fakeListings{listings: []*platform.Listing{listing}}, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if _, ok := deltas[DimensionGuarantee]; ok {
		t.Fatalf("did not expect a guarantee delta at the threshold, got %v", deltas[DimensionGuarantee])
	}
}

func TestAdjusterKeepAndViewSignals(t *testing.T) {
	listings := []*platform.Listing{
		{
			ID:               "kept",
			MinimumGuarantee: intp(30000),
			Requirements:     platform.ListingRequirements{SpecMin: intp(105)},
		},
		{ID: "viewed"},
	}
	history := &fakeHistory{
		keeps: []*platform.Keep{{ListingID: "kept"}},
		views: []*platform.View{{ListingID: "viewed"}},
	}

	adjuster := NewAdjuster(history, &fakeListings{listings: listings}, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if !almostEqual(deltas[DimensionLocation], 0.4) {
		t.Fatalf("expected location delta 0.4, got %v", deltas[DimensionLocation])
	}
	if !almostEqual(deltas[DimensionService], 0.3) {
		t.Fatalf("expected service delta 0.3, got %v", deltas[DimensionService])
	}
	if !almostEqual(deltas[DimensionGuarantee], 0.4) {
		t.Fatalf("expected guarantee delta 0.4, got %v", deltas[DimensionGuarantee])
	}
	if !almostEqual(deltas[DimensionBodyType], 0.2) {
		t.Fatalf("expected body type delta 0.2, got %v", deltas[DimensionBodyType])
	}
}

func TestAdjusterClampsAccumulatedDeltas(t *testing.T) {
	listing := &platform.Listing{ID: "l1"}

	history := &fakeHistory{}
	for i := 0; i < 20; i++ {
		history.apps = append(history.apps, &platform.Application{ListingID: "l1"})
	}

	adjuster := NewAdjuster(history, &fakeListings{listings: []*platform.Listing{listing}}, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if deltas[DimensionLocation] != 5.0 {
		t.Fatalf("expected location delta clamped to 5.0, got %v", deltas[DimensionLocation])
	}
	if deltas[DimensionService] != 5.0 {
		t.Fatalf("expected service delta clamped to 5.0, got %v", deltas[DimensionService])
	}
}

func TestAdjusterIgnoresUnknownListings(t *testing.T) {
	history := &fakeHistory{
		apps: []*platform.Application{{ListingID: "gone"}},
	}

	adjuster := NewAdjuster(history, &fakeListings{}, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if len(deltas) != 0 {
		t.Fatalf("expected no deltas for deleted listings, got %v", deltas)
	}
}

func TestAdjusterDegradesOnHistoryError(t *testing.T) {
	history := &fakeHistory{err: fmt.Errorf("connection refused")}

	adjuster := NewAdjuster(history, &fakeListings{}, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if len(deltas) != 0 {
		t.Fatalf("expected zero deltas on a history failure, got %v", deltas)
	}
}

func TestAdjusterDegradesOnListingError(t *testing.T) {
	history := &fakeHistory{
		apps: []*platform.Application{{ListingID: "l1"}},
	}
	listings := &fakeListings{err: fmt.Errorf("connection refused")}

	adjuster := NewAdjuster(history, listings, nil)
	deltas := adjuster.Deltas(context.Background(), "u1")

	if len(deltas) != 0 {
		t.Fatalf("expected zero deltas on a listing failure, got %v", deltas)
	}
}
