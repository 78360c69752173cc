package geocode

import (
	"context"
	"log"
	"route-schedule-service/internal/domain"
	"route-schedule-service/internal/platform/obs"
	"route-schedule-service/internal/ports"
	"strings"
)

// Resolver turns free-text addresses into coordinates.
//
// Resolution order: cache, keyed provider (when configured), free
// fallback provider, in that order, short-circuiting on the first
// answer. Successful provider results are written back to the cache.
// Expected failures (timeouts, no results, malformed responses) degrade
// to a Miss or Fault outcome with a warning logged; no error ever
// reaches the caller from those paths.
type Resolver struct {
	cache    ports.GeocodeCache
	keyed    ports.Geocoder
	fallback ports.Geocoder
}

// NewResolver wires a resolver. keyed may be nil when no API key is
// configured; fallback should always be present.
func NewResolver(cache ports.GeocodeCache, keyed, fallback ports.Geocoder) *Resolver {
	return &Resolver{cache: cache, keyed: keyed, fallback: fallback}
}

// Resolve resolves one address per the chain above.
func (r *Resolver) Resolve(ctx context.Context, address string) (domain.Coordinates, ports.ResolveOutcome) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, ports.ResolveEmpty
	}

	if r.cache != nil {
		coords, ok, err := r.cache.Get(ctx, address)
		if err != nil {
			// A broken cache degrades to a miss; resolution continues.
			log.Printf("geocode cache read failed: addr=%q err=%v", truncate(address, 50), err)
		} else if ok {
			return coords, ports.ResolveCacheHit
		}
	}

	coords, found, faulted := r.fromProviders(ctx, address)
	if !found {
		if faulted {
			return domain.Coordinates{}, ports.ResolveFault
		}
		return domain.Coordinates{}, ports.ResolveMiss
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, address, coords); err != nil {
			log.Printf("geocode cache write failed: addr=%q err=%v", truncate(address, 50), err)
		}
	}

	return coords, ports.ResolveFresh
}

// fromProviders tries the keyed provider then the free fallback.
// faulted reports whether the final unanswered attempt was a provider
// fault rather than a clean "no results".
func (r *Resolver) fromProviders(ctx context.Context, address string) (coords domain.Coordinates, found, faulted bool) {
	if r.keyed != nil {
		coords, ok, err := r.keyed.Geocode(ctx, address)
		if err != nil {
			log.Printf("keyed geocode failed for %q: %v", truncate(address, 50), err)
		} else if ok {
			return coords, true, false
		}
	}

	if r.fallback != nil {
		coords, ok, err := r.fallback.Geocode(ctx, address)
		if err != nil {
			log.Printf("geocoding failed for %q: %v", truncate(address, 50), err)
			return domain.Coordinates{}, false, true
		}
		if ok {
			return coords, true, false
		}
	}

	return domain.Coordinates{}, false, false
}

// ResolveMany resolves addresses in input order. Addresses that fail
// resolve are skipped with a log line each; the batch never aborts on a
// partial failure, so callers get whatever subset resolved.
func (r *Resolver) ResolveMany(ctx context.Context, addresses []string) (out map[string]domain.Coordinates) {
	var err error
	defer obs.Time(ctx, "geocode.ResolveMany")(&err)

	out = make(map[string]domain.Coordinates, len(addresses))
	for _, addr := range addresses {
		if err := ctx.Err(); err != nil {
			log.Printf("geocode batch canceled: resolved=%d total=%d", len(out), len(addresses))
			return out
		}

		trimmed := strings.TrimSpace(addr)
		coords, outcome := r.Resolve(ctx, trimmed)
		switch outcome {
		case ports.ResolveCacheHit, ports.ResolveFresh:
			out[trimmed] = coords
		case ports.ResolveMiss, ports.ResolveFault:
			log.Printf("could not geocode: %q", truncate(trimmed, 60))
		}
	}

	return out
}

// truncate shortens s to n runes, not bytes, so log lines never carry a
// split multi-byte character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
