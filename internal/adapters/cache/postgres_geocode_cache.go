package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-schedule-service/internal/domain"
	"strings"
)

// PostgresGeocodeCache is the Postgres twin of the SQLite cache, for
// deployments that point the service at a shared database instead of a
// local file. Same hashed-key contract, Postgres upsert syntax.
type PostgresGeocodeCache struct {
	DB *sql.DB
}

func NewPostgresGeocodeCache(db *sql.DB) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{DB: db}
}

// EnsureSchema creates the geocache table if it is missing.
func (s *PostgresGeocodeCache) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocache (
        address_hash TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL
    );
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("geocode cache schema: create table: %w", err)
	}

	return nil
}

// Get returns the cached coordinates for an address, if present.
func (s *PostgresGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, false, nil
	}

	var c domain.Coordinates
	err := s.DB.QueryRowContext(ctx,
		`SELECT lat, lng FROM geocache WHERE address_hash = $1;`,
		domain.HashAddress(address),
	).Scan(&c.Lat, &c.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocache table: %w", err)
	}

	return c, true, nil
}

// Put inserts or replaces the cached coordinates for an address.
func (s *PostgresGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return errors.New("put geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocache (address_hash, lat, lng)
    VALUES ($1, $2, $3)
	ON CONFLICT (address_hash) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`
	if _, err := s.DB.ExecContext(ctx, q, domain.HashAddress(address), coords.Lat, coords.Lng); err != nil {
		return fmt.Errorf("put geocode cache: %w", err)
	}

	return nil
}

// Clear deletes every cached entry and returns how many were removed.
func (s *PostgresGeocodeCache) Clear(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("geocode cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM geocache;`)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return 0, nil
		}
		return 0, fmt.Errorf("clear geocode cache: delete rows: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear geocode cache: rows affected: %w", err)
	}

	return count, nil
}
