package filtering

import (
	"context"
	"fmt"
	"testing"

	"github.com/yumeworks/talent-match/internal/platform"
)

type stubHistory struct {
	apps []*platform.Application
	err  error
}

func (h *stubHistory) GetApplications(context.Context, string) ([]*platform.Application, error) {
	return h.apps, h.err
}

func (h *stubHistory) GetKeeps(context.Context, string) ([]*platform.Keep, error) {
	return nil, nil
}

func (h *stubHistory) GetViews(context.Context, string, int) ([]*platform.View, error) {
	return nil, nil
}

func TestAppliedFilterRemovesAppliedListings(t *testing.T) {
	history := &stubHistory{apps: []*platform.Application{{ListingID: "a"}}}
	f := NewApplied(nil, "u1", &AppliedDeps{History: history})

	listings := []*platform.Listing{{ID: "a"}, {ID: "b"}}

	kept, step, err := f.Apply(context.Background(), listings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Initial != 2 || step.Dropped != 1 || step.Left != 1 {
		t.Fatalf("unexpected step info: %+v", step)
	}
	if len(kept) != 1 || kept[0].ID != "b" {
		t.Fatalf("unexpected kept listings: %+v", kept)
	}
}

func TestAppliedFilterIgnore(t *testing.T) {
	history := &stubHistory{apps: []*platform.Application{{ListingID: "a"}}}
	f := NewApplied(&AppliedConfig{Ignore: true}, "u1", &AppliedDeps{History: history})

	listings := []*platform.Listing{{ID: "a"}, {ID: "b"}}

	kept, step, err := f.Apply(context.Background(), listings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(kept) != 2 || step.Dropped != 0 {
		t.Fatalf("expected the ignore flag to keep everything, got %+v", step)
	}
}

func TestAppliedFilterDegradesOnHistoryError(t *testing.T) {
	history := &stubHistory{err: fmt.Errorf("connection refused")}
	f := NewApplied(nil, "u1", &AppliedDeps{History: history})

	listings := []*platform.Listing{{ID: "a"}, {ID: "b"}}

	kept, step, err := f.Apply(context.Background(), listings)
	if err != nil {
		t.Fatalf("expected the step to degrade instead of failing, got %v", err)
	}
	if len(kept) != 2 || step.Dropped != 0 {
		t.Fatalf("expected the full pool on a history failure, got %+v", step)
	}
}

func TestAppliedFilterValidate(t *testing.T) {
	f := NewApplied(nil, "u1", nil)
	if err := f.Validate(); err == nil {
		t.Fatalf("expected a validation error without a history source")
	}

	f = NewApplied(&AppliedConfig{Ignore: true}, "u1", nil)
	if err := f.Validate(); err != nil {
		t.Fatalf("expected no validation error when ignoring, got %v", err)
	}
}
