package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sportbeacon/eventparse/internal/venues"
	"github.com/sportbeacon/eventparse/pkg/logger"
)

// VenueStorage handles storage of the venue directory
type VenueStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewVenueStorage creates a new SQLite venue storage
func NewVenueStorage(db *sql.DB, log *logger.Logger) (*VenueStorage, error) {
	storage := &VenueStorage{
		db:     db,
		logger: log.Named("sqlite-venues"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize venue storage: %w", err)
	}
	return storage, nil
}

// initDB initializes the database tables
func (s *VenueStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT,
			surface TEXT,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			amenities TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create venues table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_venues_name ON venues(name COLLATE NOCASE)`,
		`CREATE INDEX IF NOT EXISTS idx_venues_type ON venues(type)`,
	}
	for _, indexSQL := range indexes {
		if _, err = s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create venue index: %w", err)
		}
	}

	return nil
}

// UpsertVenue stores or replaces a venue record
func (s *VenueStorage) UpsertVenue(ctx context.Context, v venues.Venue) error {
	amenities, err := json.Marshal(v.Amenities)
	if err != nil {
		return fmt.Errorf("failed to encode amenities: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO venues (id, name, type, surface, lat, lng, amenities, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			surface = excluded.surface,
			lat = excluded.lat,
			lng = excluded.lng,
			amenities = excluded.amenities`,
		v.ID, v.Name, v.Type, v.Surface, v.Latitude, v.Longitude,
		string(amenities), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert venue: %w", err)
	}
	return nil
}

// LookupByNamePrefix returns venues whose name starts with the query. When
// the full query matches nothing the first word is retried, so "central
// park" still surfaces "Central City Park" for the scoring pass to rank.
func (s *VenueStorage) LookupByNamePrefix(ctx context.Context, query string) ([]venues.Venue, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	found, err := s.queryVenues(ctx,
		`SELECT id, name, type, surface, lat, lng, amenities
		FROM venues WHERE name LIKE ? ORDER BY name LIMIT 25`,
		query+"%")
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return found, nil
	}

	if first, _, cut := strings.Cut(query, " "); cut && first != "" {
		return s.queryVenues(ctx,
			`SELECT id, name, type, surface, lat, lng, amenities
			FROM venues WHERE name LIKE ? ORDER BY name LIMIT 25`,
			first+"%")
	}
	return nil, nil
}

// ScanAll returns the entire directory for the fuzzy fallback
func (s *VenueStorage) ScanAll(ctx context.Context) ([]venues.Venue, error) {
	return s.queryVenues(ctx,
		`SELECT id, name, type, surface, lat, lng, amenities FROM venues ORDER BY id`)
}

// Count returns the number of venues in the directory
func (s *VenueStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return n, nil
}

func (s *VenueStorage) queryVenues(ctx context.Context, query string, args ...any) ([]venues.Venue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	return s.scanVenueRows(rows)
}

// scanVenueRows scans database rows into Venue structs
func (s *VenueStorage) scanVenueRows(rows *sql.Rows) ([]venues.Venue, error) {
	var records []venues.Venue
	for rows.Next() {
		var v venues.Venue
		var venueType, surface, amenities sql.NullString

		if err := rows.Scan(&v.ID, &v.Name, &venueType, &surface, &v.Latitude, &v.Longitude, &amenities); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}

		v.Type = venueType.String
		v.Surface = surface.String
		if amenities.Valid && amenities.String != "" {
			if err := json.Unmarshal([]byte(amenities.String), &v.Amenities); err != nil {
				return nil, fmt.Errorf("failed to decode amenities for %s: %w", v.ID, err)
			}
		}

		records = append(records, v)
	}
	return records, rows.Err()
}

// SeedDemoVenues loads a small demo directory on first start so parsing has
// something to resolve against. Existing rows are left untouched.
func (s *VenueStorage) SeedDemoVenues(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	demo := []venues.Venue{
		{ID: "venue_001", Name: "Cary Community Center", Type: "court", Surface: "rubber",
			Latitude: 35.7915, Longitude: -78.7811, Amenities: []string{"indoor", "parking", "water fountain"}},
		{ID: "venue_002", Name: "Bond Park Field A", Type: "field", Surface: "grass",
			Latitude: 35.7862, Longitude: -78.8005, Amenities: []string{"outdoor", "parking", "restrooms"}},
		{ID: "venue_003", Name: "Central City Park", Type: "park", Surface: "grass",
			Latitude: 35.7880, Longitude: -78.7850, Amenities: []string{"outdoor", "courts", "trails"}},
		{ID: "venue_004", Name: "Riverside Tennis Club", Type: "court", Surface: "clay",
			Latitude: 35.7700, Longitude: -78.7600, Amenities: []string{"outdoor", "pro shop"}},
		{ID: "venue_005", Name: "Westside Aquatic Center", Type: "pool", Surface: "tile",
			Latitude: 35.7790, Longitude: -78.8100, Amenities: []string{"indoor", "lockers", "showers"}},
		{ID: "venue_006", Name: "Greenway Running Trail", Type: "trail", Surface: "asphalt",
			Latitude: 35.7950, Longitude: -78.7700, Amenities: []string{"outdoor", "water stations"}},
	}
	for _, v := range demo {
		if err := s.UpsertVenue(ctx, v); err != nil {
			return err
		}
	}

	s.logger.Info("Seeded demo venue directory", logger.Int("venues", len(demo)))
	return nil
}
