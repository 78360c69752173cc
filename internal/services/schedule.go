package services

import (
	"route-schedule-service/internal/domain"
)

// ScheduleConfig bundles everything the row-to-trips pipeline needs.
// Values originate from the settings store; services stay unaware of
// where configuration lives.
type ScheduleConfig struct {
	DefaultAddress      string
	DefaultLocationName string
	BreakNames          []string
	Lunch               domain.ClockWindow
	Evening             domain.ClockWindow
	RouteRules          []domain.RouteRule
}

// BuildSchedule runs the full pipeline: preprocessing rules, grouping
// into date/route buckets, then splitting each route into named trips.
// The result is keyed by date, then route id.
func BuildSchedule(rows []domain.ScheduleRow, cfg ScheduleConfig) map[string]map[string][]domain.Trip {
	rows = ApplyRouteRules(rows, cfg.RouteRules, cfg.DefaultAddress)

	grouped := GroupByDate(rows, GroupConfig{
		DefaultAddress:      cfg.DefaultAddress,
		DefaultLocationName: cfg.DefaultLocationName,
	})

	splitCfg := SplitConfig{
		DepotAddress: cfg.DefaultAddress,
		DepotName:    cfg.DefaultLocationName,
		BreakNames:   cfg.BreakNames,
		Lunch:        cfg.Lunch,
		Evening:      cfg.Evening,
	}

	out := make(map[string]map[string][]domain.Trip, len(grouped))
	for date, routes := range grouped {
		byRoute := make(map[string][]domain.Trip, len(routes))
		for routeID, visits := range routes {
			byRoute[routeID] = SplitIntoTrips(visits, splitCfg)
		}
		out[date] = byRoute
	}

	return out
}
