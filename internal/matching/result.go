package matching

import (
	"encoding/json"
	"os"
	"sort"
	"time"
)

// MatchResult is one scored listing with its explanation.
type MatchResult struct {
	ListingID string    `json:"listing_id"`
	StoreName string    `json:"store_name,omitempty"`
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchResults is the ranked result set of a matching run.
type MatchResults struct {
	Items []*MatchResult
}

func (r *MatchResults) Len() int {
	return len(r.Items)
}

// Sort orders results by score descending, then listing recency descending,
// then listing ID. The order is a total one so reruns over the same data are
// reproducible regardless of how the candidates were scored.
func (r *MatchResults) Sort() {
	sort.Slice(r.Items, func(i, j int) bool {
		a, b := r.Items[i], r.Items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ListingID < b.ListingID
	})
}

// Truncate keeps the top limit results. Zero or negative keeps everything;
// the cut-off is caller policy, not an engine invariant.
func (r *MatchResults) Truncate(limit int) {
	if limit > 0 && len(r.Items) > limit {
		r.Items = r.Items[:limit]
	}
}

func (r *MatchResults) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
