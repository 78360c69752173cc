package ports

import (
	"context"
	"route-schedule-service/internal/domain"
)

// Port: persistent cache mapping hashed addresses to coordinates.
//
// Implementations key records by domain.HashAddress so that raw address
// text is never stored. Put has upsert semantics: caching the same
// address twice never produces two entries. Each operation is its own
// transaction; last writer wins, which is safe because the value for a
// given address is deterministic.
type GeocodeCache interface {
	// Get returns the cached coordinates for an address, if present.
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	// Put inserts or replaces the cached coordinates for an address.
	Put(ctx context.Context, address string, coords domain.Coordinates) error
	// Clear removes all cached entries and returns how many were deleted.
	// A missing table or empty store clears to zero without error.
	Clear(ctx context.Context) (int64, error)
}
