package services

import (
	"route-schedule-service/internal/domain"
	"strings"
	"time"
)

// SplitConfig carries the settings the splitter and break classifier
// work from.
type SplitConfig struct {
	// DepotAddress every trip must start and end at.
	DepotAddress string
	// DepotName labels synthetic depot visits.
	DepotName string
	// BreakNames are the tokens identifying break visits, matched as
	// case-insensitive substrings of "visit type + name".
	BreakNames []string
	// Lunch is the window in which a break closes the morning trip.
	Lunch domain.ClockWindow
	// Evening is the window in which a break closes the afternoon trip.
	Evening domain.ClockWindow
}

// IsBreak reports whether a visit is a break event: it must be located
// at the depot and its visit-type label concatenated with its display
// name, case-folded, must contain at least one configured break token.
func IsBreak(v domain.Visit, cfg SplitConfig) bool {
	if !v.AtAddress(cfg.DepotAddress) {
		return false
	}

	haystack := strings.ToLower(v.VisitType + " " + v.Name)
	for _, token := range cfg.BreakNames {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" && strings.Contains(haystack, token) {
			return true
		}
	}

	return false
}

// SplitIntoTrips walks a route's sorted visits and cuts them into named
// trips at break events.
//
// Boundary policy: a break visit closes the current trip and is also the
// first visit of the next one, so adjacent trips share their depot break.
// A break inside the lunch window closes a morning trip; a break inside
// the evening window closes an afternoon trip and promotes the remainder
// to evening. Window boundaries are inclusive. With no breaks at all the
// single trip is named from its first visit's time of day.
//
// Every finished trip is padded so it starts and ends at the depot; a
// trip already bounded by depot visits is not padded again. Empty
// buffers are dropped, so zero trips is a valid result for callers.
func SplitIntoTrips(visits []domain.Visit, cfg SplitConfig) []domain.Trip {
	trips := make([]domain.Trip, 0, 3)

	current := make([]domain.Visit, 0, len(visits))
	sawBreak := false
	lastBreakEvening := false

	for _, v := range visits {
		current = append(current, v)

		if !IsBreak(v, cfg) {
			continue
		}

		switch {
		case cfg.Lunch.Contains(v.Start):
			if trip, ok := finishTrip(domain.TripMorning, current, cfg); ok {
				trips = append(trips, trip)
			}
			sawBreak = true
			lastBreakEvening = false
			current = []domain.Visit{v}
		case cfg.Evening.Contains(v.Start):
			if trip, ok := finishTrip(domain.TripAfternoon, current, cfg); ok {
				trips = append(trips, trip)
			}
			sawBreak = true
			lastBreakEvening = true
			current = []domain.Visit{v}
		}
	}

	if len(current) > 0 {
		name := trailingTripName(current[0], sawBreak, lastBreakEvening, cfg)
		if trip, ok := finishTrip(name, current, cfg); ok {
			trips = append(trips, trip)
		}
	}

	return trips
}

// trailingTripName names the buffer left after the last break. With no
// breaks the name comes from a first-visit-time heuristic instead.
func trailingTripName(first domain.Visit, sawBreak, lastBreakEvening bool, cfg SplitConfig) domain.TripName {
	if sawBreak {
		if lastBreakEvening {
			return domain.TripEvening
		}
		return domain.TripAfternoon
	}

	m := first.Start.Hour()*60 + first.Start.Minute()
	switch {
	case m < cfg.Lunch.Start:
		return domain.TripMorning
	case m < cfg.Evening.Start:
		return domain.TripAfternoon
	default:
		return domain.TripEvening
	}
}

// finishTrip pads a finished buffer with synthetic depot visits and
// wraps it in a Trip. An empty buffer produces no trip.
func finishTrip(name domain.TripName, visits []domain.Visit, cfg SplitConfig) (domain.Trip, bool) {
	if len(visits) == 0 {
		return domain.Trip{}, false
	}

	padded := make([]domain.Visit, 0, len(visits)+2)

	first := visits[0]
	if !first.AtAddress(cfg.DepotAddress) {
		// Zero-duration departure marker carrying the first real start time.
		padded = append(padded, syntheticDepot(first.Start, first.RouteID, cfg))
	}
	padded = append(padded, visits...)

	last := visits[len(visits)-1]
	if !last.AtAddress(cfg.DepotAddress) {
		returnAt := last.Start
		if last.End != nil {
			returnAt = *last.End
		}
		padded = append(padded, syntheticDepot(returnAt, last.RouteID, cfg))
	}

	return domain.Trip{Name: name, Visits: padded}, true
}

func syntheticDepot(at time.Time, routeID string, cfg SplitConfig) domain.Visit {
	return domain.Visit{
		Start:     at,
		Name:      cfg.DepotName,
		Address:   cfg.DepotAddress,
		RouteID:   routeID,
		Synthetic: true,
	}
}
