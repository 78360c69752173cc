package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-schedule-service/internal/domain"
	"strings"
)

// SQLite-backed geocode cache keyed by hashed addresses.
//
// Raw address text is never stored: records are keyed by
// domain.HashAddress. Every operation runs as its own implicit
// transaction, so no lock outlives a single call.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// EnsureSchema creates the geocache table, migrating away from the
// legacy layout that keyed rows by raw address text. The migration
// drops the old table outright: previously cached coordinates are
// discarded rather than re-keyed, trading cache warmth for privacy.
func (s *SqliteGeocodeCache) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	legacy, err := s.hasLegacySchema(ctx)
	if err != nil {
		return fmt.Errorf("geocode cache schema: %w", err)
	}
	if legacy {
		if _, err := s.DB.ExecContext(ctx, `DROP TABLE geocache;`); err != nil {
			return fmt.Errorf("geocode cache schema: drop legacy table: %w", err)
		}
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocache (
        address_hash TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lng REAL NOT NULL
    );
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("geocode cache schema: create table: %w", err)
	}

	return nil
}

// hasLegacySchema reports whether a geocache table exists with an
// "address" column and no "address_hash" column.
func (s *SqliteGeocodeCache) hasLegacySchema(ctx context.Context) (bool, error) {
	var name string
	err := s.DB.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'geocache';`,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect sqlite_master: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `PRAGMA table_info(geocache);`)
	if err != nil {
		return false, fmt.Errorf("inspect geocache columns: %w", err)
	}
	defer rows.Close()

	hasAddress := false
	hasHash := false
	for rows.Next() {
		var (
			cid        int
			colName    string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("scan geocache column: %w", err)
		}
		switch colName {
		case "address":
			hasAddress = true
		case "address_hash":
			hasHash = true
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterate geocache columns: %w", err)
	}

	return hasAddress && !hasHash, nil
}

// Get returns the cached coordinates for an address, if present.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, false, nil
	}

	var c domain.Coordinates
	err := s.DB.QueryRowContext(ctx,
		`SELECT lat, lng FROM geocache WHERE address_hash = ?;`,
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
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return errors.New("put geocode cache: empty address key")
	}

	q := `
	INSERT OR REPLACE INTO geocache (
        address_hash,
        lat,
        lng
    )
    VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, domain.HashAddress(address), coords.Lat, coords.Lng); err != nil {
		return fmt.Errorf("put geocode cache: %w", err)
	}

	return nil
}

// Clear deletes every cached entry and returns how many were removed.
// A missing table counts as an already empty cache, not an error.
func (s *SqliteGeocodeCache) Clear(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("geocode cache: db is nil")
	}

	var count int64
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM geocache;`).Scan(&count)
	if err != nil {
		if isMissingTable(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("clear geocode cache: count rows: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM geocache;`); err != nil {
		return 0, fmt.Errorf("clear geocode cache: delete rows: %w", err)
	}

	return count, nil
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
