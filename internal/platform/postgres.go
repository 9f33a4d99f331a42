package platform

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// OpenPostgres opens a pooled connection to the platform database.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// PostgresStore implements the read-only sources over the platform database.
// All queries are parameterized; batch id lookups go through pq.Array instead
// of interpolated IN lists.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ping verifies the connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, COALESCE(birth_date, ''), COALESCE(location, ''), preferred_locations
		FROM users
		WHERE id = $1`

	var (
		u     User
		prefs pq.StringArray
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.BirthDate, &u.Location, &prefs)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}

	for _, p := range prefs {
		u.PreferredLocations = append(u.PreferredLocations, Prefecture(p))
	}

	return &u, nil
}

func (s *PostgresStore) GetTalentProfile(ctx context.Context, userID string) (*TalentProfile, error) {
	const query = `
		SELECT user_id, height_cm, weight_kg, COALESCE(desired_guarantee, 0), service_types
		FROM talent_profiles
		WHERE user_id = $1`

	var (
		p        TalentProfile
		height   sql.NullInt64
		weight   sql.NullInt64
		services pq.StringArray
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &height, &weight, &p.DesiredGuarantee, &services)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get talent profile %s: %w", userID, err)
	}

	p.HeightCm = nullableInt(height)
	p.WeightKg = nullableInt(weight)
	for _, st := range services {
		p.ServiceTypes = append(p.ServiceTypes, ServiceType(st))
	}

	return &p, nil
}

const listingColumns = `
	id, COALESCE(store_name, ''), status, COALESCE(location, ''), COALESCE(service_type, ''),
	minimum_guarantee, maximum_guarantee,
	age_min, age_max, spec_min, spec_max,
	cup_specs, look_types, hair_colors, COALESCE(tattoo_level, ''),
	benefits, created_at`

func (s *PostgresStore) GetPublishedListings(ctx context.Context) ([]*Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM store_listings
		WHERE status = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ListingStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("get published listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func (s *PostgresStore) GetListingsByIDs(ctx context.Context, ids []string) ([]*Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + listingColumns + `
		FROM store_listings
		WHERE id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("get listings by ids: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanListings(rows *sql.Rows) ([]*Listing, error) {
	var listings []*Listing

	for rows.Next() {
		var (
			l                  Listing
			minGuar, maxGuar   sql.NullInt64
			ageMin, ageMax     sql.NullInt64
			specMin, specMax   sql.NullInt64
			cupSpecs           []byte
			lookTypes, hair    pq.StringArray
			benefits           pq.StringArray
			tattoo             string
		)

		err := rows.Scan(
			&l.ID, &l.StoreName, &l.Status, &l.Location, &l.ServiceType,
			&minGuar, &maxGuar,
			&ageMin, &ageMax, &specMin, &specMax,
			&cupSpecs, &lookTypes, &hair, &tattoo,
			&benefits, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}

		l.MinimumGuarantee = nullableInt(minGuar)
		l.MaximumGuarantee = nullableInt(maxGuar)
		l.Requirements = ListingRequirements{
			AgeMin:     nullableInt(ageMin),
			AgeMax:     nullableInt(ageMax),
			SpecMin:    nullableInt(specMin),
			SpecMax:    nullableInt(specMax),
			LookTypes:  lookTypes,
			HairColors: hair,
			Tattoo:     TattooLevel(tattoo),
		}
		l.Benefits = benefits

		if len(cupSpecs) > 0 {
			if err := json.Unmarshal(cupSpecs, &l.Requirements.CupSpecs); err != nil {
				return nil, fmt.Errorf("decode cup specs for listing %s: %w", l.ID, err)
			}
		}

		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	return listings, nil
}

func (s *PostgresStore) GetApplications(ctx context.Context, userID string) ([]*Application, error) {
	const query = `
		SELECT listing_id, created_at
		FROM applications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get applications for %s: %w", userID, err)
	}
	defer rows.Close()

	var apps []*Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ListingID, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, &a)
	}

	return apps, rows.Err()
}

func (s *PostgresStore) GetKeeps(ctx context.Context, userID string) ([]*Keep, error) {
	const query = `
		SELECT listing_id, created_at
		FROM keeps
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get keeps for %s: %w", userID, err)
	}
	defer rows.Close()

	var keeps []*Keep
	for rows.Next() {
		var k Keep
		if err := rows.Scan(&k.ListingID, &k.KeptAt); err != nil {
			return nil, fmt.Errorf("scan keep: %w", err)
		}
		keeps = append(keeps, &k)
	}

	return keeps, rows.Err()
}

func (s *PostgresStore) GetViews(ctx context.Context, userID string, limit int) ([]*View, error) {
	const query = `
		SELECT listing_id, viewed_at
		FROM listing_views
		WHERE user_id = $1
		ORDER BY viewed_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get views for %s: %w", userID, err)
	}
	defer rows.Close()

	var views []*View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ListingID, &v.ViewedAt); err != nil {
			return nil, fmt.Errorf("scan view: %w", err)
		}
		views = append(views, &v)
	}

	return views, rows.Err()
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
