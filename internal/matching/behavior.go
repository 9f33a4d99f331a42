package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/yumeworks/talent-match/internal/platform"
)

const (
	// guaranteeSignalThreshold marks a listing's minimum guarantee as a
	// high-pay preference signal.
	guaranteeSignalThreshold = 25000
	// viewHistoryLimit bounds how far back the view signal reaches.
	viewHistoryLimit = 50
)

// Adjuster derives weight deltas from a talent's application, keep and view
// history. Personalization is a quality enhancement: any read failure
// degrades to zero deltas instead of failing the matching run.
type Adjuster struct {
	history  platform.HistorySource
	listings platform.ListingSource
	logger   *zap.Logger
}

func NewAdjuster(history platform.HistorySource, listings platform.ListingSource, logger *zap.Logger) *Adjuster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adjuster{history: history, listings: listings, logger: logger}
}

// Deltas accumulates per-dimension adjustments from the talent's history and
// clamps every dimension to the documented maximum.
func (a *Adjuster) Deltas(ctx context.Context, userID string) Deltas {
	apps, err := a.history.GetApplications(ctx, userID)
	if err != nil {
		return a.degrade("get applications", userID, err)
	}

	keeps, err := a.history.GetKeeps(ctx, userID)
	if err != nil {
		return a.degrade("get keeps", userID, err)
	}

	views, err := a.history.GetViews(ctx, userID, viewHistoryLimit)
	if err != nil {
		return a.degrade("get views", userID, err)
	}

	ids := make([]string, 0, len(apps)+len(keeps)+len(views))
	seen := make(map[string]struct{})
	collect := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, app := range apps {
		collect(app.ListingID)
	}
	for _, keep := range keeps {
		collect(keep.ListingID)
	}
	for _, view := range views {
		collect(view.ListingID)
	}

	if len(ids) == 0 {
		return Deltas{}
	}

	// One batched read; the per-record loops below operate on the in-memory
	// slice only.
	listings, err := a.listings.GetListingsByIDs(ctx, ids)
	if err != nil {
		return a.degrade("get history listings", userID, err)
	}

	byID := make(map[string]*platform.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	deltas := make(Deltas)

	for _, app := range apps {
		l, ok := byID[app.ListingID]
		if !ok {
			continue
		}
		deltas[DimensionLocation] += 0.5
		deltas[DimensionService] += 0.5
		if highGuarantee(l) {
			deltas[DimensionGuarantee] += 0.5
		}
		if len(l.Requirements.LookTypes) > 0 {
			deltas[DimensionAppearance] += 0.3
		}
		if len(l.Requirements.HairColors) > 0 {
			deltas[DimensionHairColor] += 0.3
		}
		if l.Requirements.Tattoo == platform.TattooNotAllowed {
			deltas[DimensionTattoo] += 0.3
		}
	}

	for _, keep := range keeps {
		l, ok := byID[keep.ListingID]
		if !ok {
			continue
		}
		deltas[DimensionLocation] += 0.3
		deltas[DimensionService] += 0.2
		if highGuarantee(l) {
			deltas[DimensionGuarantee] += 0.3
		}
		if l.Requirements.SpecMin != nil || l.Requirements.SpecMax != nil {
			deltas[DimensionBodyType] += 0.2
		}
	}

	for _, view := range views {
		if _, ok := byID[view.ListingID]; !ok {
			continue
		}
		deltas[DimensionLocation] += 0.1
		deltas[DimensionGuarantee] += 0.1
		deltas[DimensionService] += 0.1
	}

	return deltas.Clamped()
}

func (a *Adjuster) degrade(op, userID string, err error) Deltas {
	a.logger.Warn("behavioral adjustment degraded to defaults",
		zap.String("op", op),
		zap.String("user_id", userID),
		zap.Error(err),
	)
	return Deltas{}
}

func highGuarantee(l *platform.Listing) bool {
	return l.MinimumGuarantee != nil && *l.MinimumGuarantee > guaranteeSignalThreshold
}
