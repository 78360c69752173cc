package services

import (
	"route-schedule-service/internal/domain"
	"sort"
	"strings"
	"time"
)

// Route sort orders accepted from settings.
const (
	SortByName = "name"
	SortByTime = "time"
)

// SortRoutesForDisplay returns the route identifiers of one date in
// display order: alphabetically, or by the start time of each route's
// earliest trip when the "time" order is configured. Ties and routes
// without trips fall back to the name order so output stays stable.
func SortRoutesForDisplay(trips map[string][]domain.Trip, order string) []string {
	names := make([]string, 0, len(trips))
	for name := range trips {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if order == SortByTime {
			ti, iok := firstTripStart(trips[names[i]])
			tj, jok := firstTripStart(trips[names[j]])
			switch {
			case iok && !jok:
				return true
			case !iok && jok:
				return false
			case iok && jok && !ti.Equal(tj):
				return ti.Before(tj)
			}
		}
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	return names
}

func firstTripStart(trips []domain.Trip) (time.Time, bool) {
	for _, t := range trips {
		if len(t.Visits) > 0 {
			return t.Visits[0].Start, true
		}
	}
	return time.Time{}, false
}
