package services

import (
	"route-schedule-service/internal/domain"
	"sort"
	"strings"
	"time"
)

// Bucket for rows whose start time carries no calendar date.
const UnknownDate = "unknown"

// Placeholder route identifier for rows with no route of their own.
const PlaceholderRoute = "no route"

// GroupConfig carries the defaults the grouper substitutes for missing
// fields.
type GroupConfig struct {
	// DefaultAddress is the depot address used when a row has none.
	DefaultAddress string
	// DefaultLocationName labels every visit at the depot address,
	// regardless of what the row's name field said.
	DefaultLocationName string
}

// Start-time layouts accepted from the schedule source. Layouts without
// a date part are accepted but bucket the visit under UnknownDate.
var startLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z07:00",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
}

// GroupByDate groups raw schedule rows into visits bucketed by calendar
// date and route identifier.
//
// Rows with an unparseable start time are dropped: without a timestamp
// the row cannot be placed. Every other input defect is recovered with a
// default, never surfaced as an error. Within each (date, route) bucket
// visits are sorted by (start time, address) ascending; the address
// tie-break keeps output deterministic for visits sharing a timestamp.
//
// Invariant: no visit in the output has an address the normalizer
// considers empty.
func GroupByDate(rows []domain.ScheduleRow, cfg GroupConfig) map[string]map[string][]domain.Visit {
	out := make(map[string]map[string][]domain.Visit)

	for _, row := range rows {
		start, dated, ok := parseStart(row.Start)
		if !ok {
			continue
		}

		date := UnknownDate
		if dated {
			date = start.Format("2006-01-02")
		}

		routeID := strings.TrimSpace(row.RouteID)
		if routeID == "" {
			routeID = PlaceholderRoute
		}

		name := strings.TrimSpace(row.Name)
		if domain.IsEmptyValue(name) {
			name = strings.TrimSpace(row.VisitType)
		}

		address := strings.TrimSpace(row.Address)
		if domain.IsEmptyValue(address) {
			address = cfg.DefaultAddress
		}
		// The depot is always labeled consistently, whatever the row said.
		if strings.EqualFold(address, cfg.DefaultAddress) {
			name = cfg.DefaultLocationName
		}

		v := domain.Visit{
			Start:     start,
			End:       parseEnd(row.End),
			Name:      name,
			Address:   address,
			VisitType: strings.TrimSpace(row.VisitType),
			RouteID:   routeID,
		}

		if out[date] == nil {
			out[date] = make(map[string][]domain.Visit)
		}
		out[date][routeID] = append(out[date][routeID], v)
	}

	for _, routes := range out {
		for _, visits := range routes {
			sort.SliceStable(visits, func(i, j int) bool {
				if !visits[i].Start.Equal(visits[j].Start) {
					return visits[i].Start.Before(visits[j].Start)
				}
				return visits[i].Address < visits[j].Address
			})
		}
	}

	return out
}

// SortedDates returns the grouped dates in ascending order. The
// UnknownDate bucket sorts last.
func SortedDates(grouped map[string]map[string][]domain.Visit) []string {
	dates := make([]string, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		if dates[i] == UnknownDate {
			return false
		}
		if dates[j] == UnknownDate {
			return true
		}
		return dates[i] < dates[j]
	})
	return dates
}

func parseStart(s string) (t time.Time, dated bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}

	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, true
		}
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, true
		}
	}

	return time.Time{}, false, false
}

func parseEnd(s string) *time.Time {
	end, _, ok := parseStart(s)
	if !ok {
		return nil
	}
	return &end
}
