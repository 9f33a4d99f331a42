package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yumeworks/talent-match/internal/platform"
)

type appliedFilter struct {
	deps   *AppliedDeps
	userID string
	ignore bool
}

// AppliedDeps aggregates the dependencies of the applied-history filter.
type AppliedDeps struct {
	History platform.HistorySource
	Logger  *zap.Logger
}

// AppliedConfig configures the applied-history filter.
type AppliedConfig struct {
	// Ignore keeps already-applied listings in the result set.
	Ignore bool
}

// NewApplied creates a filter that removes listings the talent has already
// applied to. Removing them is a recommendation-quality concern, so a failed
// history read only skips the step instead of failing the matching run.
func NewApplied(cfg *AppliedConfig, userID string, deps *AppliedDeps) Filter {
	ignore := false
	if cfg != nil {
		ignore = cfg.Ignore
	}

	return &appliedFilter{
		deps:   deps,
		userID: userID,
		ignore: ignore,
	}
}

func (f *appliedFilter) Name() string { return "applied_history" }

func (f *appliedFilter) Disable(string) {}

func (f *appliedFilter) IsEnabled() bool { return true }

func (f *appliedFilter) Validate() error {
	if f.ignore {
		return nil
	}
	if f.deps == nil || f.deps.History == nil {
		return fmt.Errorf("history source is required")
	}
	return nil
}

func (f *appliedFilter) Apply(ctx context.Context, listings []*platform.Listing) ([]*platform.Listing, Step, error) {
	initial := len(listings)
	if f.ignore {
		f.log().Info("keeping already applied listings", zap.String("reason", "ignore flag is set"))
		return listings, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	apps, err := f.deps.History.GetApplications(ctx, f.userID)
	if err != nil {
		f.log().Warn("skipping applied-history filter",
			zap.String("user_id", f.userID),
			zap.Error(err),
		)
		return listings, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	applied := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		applied[app.ListingID] = struct{}{}
	}

	kept := make([]*platform.Listing, 0, initial)
	for _, l := range listings {
		if _, ok := applied[l.ID]; !ok {
			kept = append(kept, l)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *appliedFilter) log() *zap.Logger {
	if f.deps != nil && f.deps.Logger != nil {
		return f.deps.Logger
	}
	return zap.NewNop()
}
