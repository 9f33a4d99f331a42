package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Fixture is a JSON snapshot of the platform data the engine reads. It backs
// offline runs and tests without a database.
type Fixture struct {
	Users        []*User                   `json:"users"`
	Profiles     []*TalentProfile          `json:"profiles"`
	Listings     []*Listing                `json:"listings"`
	Applications map[string][]*Application `json:"applications,omitempty"`
	Keeps        map[string][]*Keep        `json:"keeps,omitempty"`
	Views        map[string][]*View        `json:"views,omitempty"`
}

// FixtureStore serves the repository interfaces from an in-memory fixture.
type FixtureStore struct {
	users    map[string]*User
	profiles map[string]*TalentProfile
	listings []*Listing
	apps     map[string][]*Application
	keeps    map[string][]*Keep
	views    map[string][]*View
}

// LoadFixture reads a fixture snapshot from a JSON file.
func LoadFixture(path string) (*FixtureStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file %q: %w", path, err)
	}

	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture file %q: %w", path, err)
	}

	return NewFixtureStore(&f), nil
}

// NewFixtureStore builds a store from an already-decoded fixture.
func NewFixtureStore(f *Fixture) *FixtureStore {
	s := &FixtureStore{
		users:    make(map[string]*User, len(f.Users)),
		profiles: make(map[string]*TalentProfile, len(f.Profiles)),
		listings: f.Listings,
		apps:     f.Applications,
		keeps:    f.Keeps,
		views:    f.Views,
	}

	for _, u := range f.Users {
		s.users[u.ID] = u
	}
	for _, p := range f.Profiles {
		s.profiles[p.UserID] = p
	}

	return s
}

func (s *FixtureStore) GetUser(_ context.Context, id string) (*User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *FixtureStore) GetTalentProfile(_ context.Context, userID string) (*TalentProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *FixtureStore) GetPublishedListings(_ context.Context) ([]*Listing, error) {
	published := make([]*Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if l.Status == ListingStatusPublished {
			published = append(published, l)
		}
	}
	return published, nil
}

func (s *FixtureStore) GetListingsByIDs(_ context.Context, ids []string) ([]*Listing, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var found []*Listing
	for _, l := range s.listings {
		if _, ok := wanted[l.ID]; ok {
			found = append(found, l)
		}
	}
	return found, nil
}

func (s *FixtureStore) GetApplications(_ context.Context, userID string) ([]*Application, error) {
	return s.apps[userID], nil
}

func (s *FixtureStore) GetKeeps(_ context.Context, userID string) ([]*Keep, error) {
	return s.keeps[userID], nil
}

func (s *FixtureStore) GetViews(_ context.Context, userID string, limit int) ([]*View, error) {
	views := s.views[userID]
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}
