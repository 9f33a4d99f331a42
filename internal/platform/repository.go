package platform

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserSource provides read access to talent account data.
type UserSource interface {
	GetUser(ctx context.Context, id string) (*User, error)
	GetTalentProfile(ctx context.Context, userID string) (*TalentProfile, error)
}

// ListingSource provides read access to store listings.
type ListingSource interface {
	GetPublishedListings(ctx context.Context) ([]*Listing, error)
	GetListingsByIDs(ctx context.Context, ids []string) ([]*Listing, error)
}

// HistorySource provides read access to a talent's behavioral history.
type HistorySource interface {
	GetApplications(ctx context.Context, userID string) ([]*Application, error)
	GetKeeps(ctx context.Context, userID string) ([]*Keep, error)
	GetViews(ctx context.Context, userID string, limit int) ([]*View, error)
}
