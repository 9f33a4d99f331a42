package filtering

import (
	"context"

	"github.com/yumeworks/talent-match/internal/platform"
)

type publishedFilter struct{}

// NewPublished creates a filter that keeps only published listings. Unpublished
// listings are never eligible for scoring.
func NewPublished() Filter {
	return &publishedFilter{}
}

func (f *publishedFilter) Name() string { return "published" }

func (f *publishedFilter) Disable(string) {}

func (f *publishedFilter) IsEnabled() bool { return true }

func (f *publishedFilter) Validate() error { return nil }

func (f *publishedFilter) Apply(_ context.Context, listings []*platform.Listing) ([]*platform.Listing, Step, error) {
	initial := len(listings)

	kept := make([]*platform.Listing, 0, initial)
	for _, l := range listings {
		if l.Status == platform.ListingStatusPublished {
			kept = append(kept, l)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
