package ports

import (
	"context"
	"route-schedule-service/internal/domain"
)

// Port: a single geocoding provider.
//
// The boolean distinguishes "provider answered but found nothing" from a
// provider fault carried in the error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error)
}

// ResolveOutcome classifies how an address resolution ended, so callers
// can tell "address genuinely not found" from "network degraded".
type ResolveOutcome int

const (
	// ResolveEmpty: the address was blank after trimming; skipped silently.
	ResolveEmpty ResolveOutcome = iota
	// ResolveCacheHit: served from the persistent cache.
	ResolveCacheHit
	// ResolveFresh: resolved by a provider and written back to the cache.
	ResolveFresh
	// ResolveMiss: every provider answered but none had a result.
	ResolveMiss
	// ResolveFault: the last provider attempt failed (timeout, bad response).
	ResolveFault
)

// Port: address resolution with caching and provider fallback.
//
// Resolve never returns an error: expected failure modes degrade to a
// Miss or Fault outcome with a warning logged. ResolveMany resolves in
// input order and skips addresses that fail; a partial result is normal.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, ResolveOutcome)
	ResolveMany(ctx context.Context, addresses []string) map[string]domain.Coordinates
}
