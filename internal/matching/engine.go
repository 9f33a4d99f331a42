package matching

import (
	"context"
	"errors"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yumeworks/talent-match/internal/filtering"
	"github.com/yumeworks/talent-match/internal/logger"
	"github.com/yumeworks/talent-match/internal/platform"
)

const (
	defaultResultLimit = 10
	defaultDataTimeout = 5 * time.Second
)

// Config holds engine construction settings.
type Config struct {
	// Weights overrides individual default weights; negative values are
	// rejected.
	Weights map[Dimension]float64
	// DefaultLimit is the result cut-off applied when options do not override
	// it. Zero means the built-in default.
	DefaultLimit int
	// DataTimeout bounds the collaborator reads of a single matching run.
	DataTimeout time.Duration
	// ExcludeApplied removes listings the talent already applied to from the
	// candidate pool.
	ExcludeApplied bool
}

// Options tune a single ComputeMatches call.
type Options struct {
	// Limit overrides the engine's result cut-off. Zero keeps the engine
	// default; a negative value returns the full ranked list.
	Limit int
	// StaticWeights skips behavioral weight adjustment for this run.
	StaticWeights bool
}

// Engine runs the matching pipeline. It holds no per-request state, so one
// engine serves concurrent matching requests for different users.
type Engine struct {
	users    platform.UserSource
	listings platform.ListingSource
	history  platform.HistorySource
	adjuster *Adjuster
	logger   *zap.Logger

	weights        WeightProfile
	defaultLimit   int
	dataTimeout    time.Duration
	excludeApplied bool
}

// New validates the weight configuration and builds an engine.
func New(cfg *Config, users platform.UserSource, listings platform.ListingSource, history platform.HistorySource, logger *zap.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	weights, err := NewWeightProfile(cfg.Weights)
	if err != nil {
		return nil, err
	}

	limit := cfg.DefaultLimit
	if limit == 0 {
		limit = defaultResultLimit
	}

	timeout := cfg.DataTimeout
	if timeout <= 0 {
		timeout = defaultDataTimeout
	}

	return &Engine{
		users:          users,
		listings:       listings,
		history:        history,
		adjuster:       NewAdjuster(history, listings, logger),
		logger:         logger,
		weights:        weights,
		defaultLimit:   limit,
		dataTimeout:    timeout,
		excludeApplied: cfg.ExcludeApplied,
	}, nil
}

// ComputeMatches scores every eligible published listing against the talent's
// profile and returns the ranked result set.
func (e *Engine) ComputeMatches(ctx context.Context, userID string, opts *Options) (*MatchResults, error) {
	if opts == nil {
		opts = &Options{}
	}

	loadCtx, cancel := context.WithTimeout(ctx, e.dataTimeout)
	defer cancel()

	features, err := e.loadFeatures(loadCtx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := e.listings.GetPublishedListings(loadCtx)
	if err != nil {
		return nil, &DataUnavailableError{Op: "get published listings", Err: err}
	}

	filters := e.prepareFilters(userID)
	pool, err = filters.RunFilters(loadCtx, pool)
	if err != nil {
		return nil, &DataUnavailableError{Op: "filter candidate pool", Err: err}
	}

	weights := e.weights
	if !opts.StaticWeights {
		deltas := e.adjuster.Deltas(loadCtx, userID)
		weights = weights.Adjusted(deltas)
	}

	results, err := e.scorePool(ctx, features, weights, pool)
	if err != nil {
		return nil, err
	}

	results.Sort()
	results.Truncate(e.resultLimit(opts))

	e.logger.Info("matching run completed",
		zap.String(logger.FieldUser, userID),
		zap.Int("candidates", len(pool)),
		zap.Int("returned", results.Len()),
	)

	return results, nil
}

// TalentFeatures loads the user and profile records and extracts the matching
// features, without running the pipeline. Useful for presenting the talent
// side of an already computed result set.
func (e *Engine) TalentFeatures(ctx context.Context, userID string) (*TalentFeatures, error) {
	loadCtx, cancel := context.WithTimeout(ctx, e.dataTimeout)
	defer cancel()

	return e.loadFeatures(loadCtx, userID)
}

func (e *Engine) loadFeatures(ctx context.Context, userID string) (*TalentFeatures, error) {
	user, err := e.users.GetUser(ctx, userID)
	if err != nil {
		return nil, e.loadError("get user", err)
	}

	profile, err := e.users.GetTalentProfile(ctx, userID)
	if err != nil {
		return nil, e.loadError("get talent profile", err)
	}

	return ExtractFeatures(user, profile, time.Now()), nil
}

// scorePool scores listings in parallel. The scorers are pure, so only the
// slice slot owned by each goroutine is written; ordering is applied by the
// sort afterwards, never incrementally.
func (e *Engine) scorePool(ctx context.Context, features *TalentFeatures, weights WeightProfile, pool []*platform.Listing) (*MatchResults, error) {
	items := make([]*MatchResult, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, listing := range pool {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			scores := ScoreListing(features, listing)
			items[i] = &MatchResult{
				ListingID: listing.ID,
				StoreName: listing.StoreName,
				Score:     Aggregate(scores, weights),
				Reasons:   Reasons(scores, listing),
				CreatedAt: listing.CreatedAt,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MatchResults{Items: items}, nil
}

func (e *Engine) prepareFilters(userID string) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewPublished(),
		filtering.NewApplied(
			&filtering.AppliedConfig{Ignore: !e.excludeApplied},
			userID,
			&filtering.AppliedDeps{History: e.history, Logger: e.logger},
		),
	}

	return filtering.New(steps, e.logger)
}

func (e *Engine) resultLimit(opts *Options) int {
	switch {
	case opts.Limit > 0:
		return opts.Limit
	case opts.Limit < 0:
		return 0
	default:
		return e.defaultLimit
	}
}

func (e *Engine) loadError(op string, err error) error {
	if errors.Is(err, platform.ErrNotFound) {
		return ErrProfileNotFound
	}
	return &DataUnavailableError{Op: op, Err: err}
}
