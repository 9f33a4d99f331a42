package matching

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestMatchResultsSortIsTotal(t *testing.T) {
	now := time.Now()
	results := &MatchResults{Items: []*MatchResult{
		{ListingID: "b", Score: 72, CreatedAt: now},
		{ListingID: "a", Score: 72, CreatedAt: now},
		{ListingID: "c", Score: 72, CreatedAt: now.Add(time.Hour)},
		{ListingID: "d", Score: 90, CreatedAt: now.Add(-time.Hour)},
	}}

	results.Sort()

	want := []string{"d", "c", "a", "b"}
	for i, id := range want {
		if results.Items[i].ListingID != id {
			t.Fatalf("expected %s at position %d, got %s", id, i, results.Items[i].ListingID)
		}
	}
}

func TestMatchResultsTruncate(t *testing.T) {
	results := &MatchResults{Items: []*MatchResult{
		{ListingID: "a"}, {ListingID: "b"}, {ListingID: "c"},
	}}

	results.Truncate(0)
	if results.Len() != 3 {
		t.Fatalf("expected zero limit to keep everything, got %d", results.Len())
	}

	results.Truncate(5)
	if results.Len() != 3 {
		t.Fatalf("expected a generous limit to keep everything, got %d", results.Len())
	}

	results.Truncate(2)
	if results.Len() != 2 {
		t.Fatalf("expected 2 results after truncation, got %d", results.Len())
	}
}

func TestDumpToTmpFile(t *testing.T) {
	results := &MatchResults{Items: []*MatchResult{
		{ListingID: "l1", Score: 80, Reasons: []string{"the listing is in a matching area"}},
	}}

	filename, err := results.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded MatchResults
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("parsing dump: %v", err)
	}
	if decoded.Len() != 1 || decoded.Items[0].ListingID != "l1" {
		t.Fatalf("unexpected dump contents: %+v", decoded.Items)
	}
}
