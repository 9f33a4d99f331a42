package ai

import (
	"context"

	"github.com/yumeworks/talent-match/internal/matching"
)

// MatchSummary is an advisory, human-readable digest of a matching run. It
// never feeds back into scoring.
type MatchSummary struct {
	Summary    string
	Highlights []string
	Raw        string
}

// Advisor generates a summary for the talent from the ranked results.
type Advisor interface {
	Summarize(ctx context.Context, features *matching.TalentFeatures, results *matching.MatchResults) (*MatchSummary, error)
}
