package services

import (
	"context"
	"log"
	"math"
	"route-schedule-service/internal/domain"
	"route-schedule-service/internal/ports"
	"strings"
)

// MapConfig carries what marker assembly needs beyond the trips
// themselves.
type MapConfig struct {
	DepotAddress string
	DepotName    string
	SortOrder    string
	ColorRules   []domain.ColorRule
}

// BuildMapData resolves every visit address for one date's trips and
// assembles the flat marker/polyline lists a map surface consumes.
//
// Addresses are resolved as one batch in first-seen order, with the
// depot address always included. Visits whose address fails to resolve
// simply produce no marker; the batch never aborts on a partial failure
// and the tally lets the caller report "resolved N of M".
func BuildMapData(
	ctx context.Context,
	date string,
	trips map[string][]domain.Trip,
	resolver ports.AddressResolver,
	cfg MapConfig,
) domain.MapData {
	addresses := collectAddresses(trips, cfg.DepotAddress)
	coords := resolver.ResolveMany(ctx, addresses)

	routeNames := SortRoutesForDisplay(trips, cfg.SortOrder)
	colors := ColorsForRoutes(routeNames, cfg.ColorRules)

	data := domain.MapData{
		Resolved: len(coords),
		Total:    len(addresses),
	}

	for _, routeID := range routeNames {
		for tripIdx, trip := range trips[routeID] {
			key := domain.TripKey(date, routeID, tripIdx)
			color := colors[routeID]
			if color == "" {
				color = DefaultRouteColor
			}

			var path [][2]float64
			for visitIdx, v := range trip.Visits {
				c, ok := coords[strings.TrimSpace(v.Address)]
				if !ok {
					continue
				}

				data.Markers = append(data.Markers, domain.Marker{
					Lat:        c.Lat,
					Lng:        c.Lng,
					Label:      markerLabel(v, cfg),
					Address:    v.Address,
					Color:      color,
					TripKey:    key,
					VisitIndex: visitIdx,
				})
				path = append(path, [2]float64{c.Lat, c.Lng})
			}

			if len(path) >= 2 {
				data.Polylines = append(data.Polylines, domain.Polyline{
					TripKey: key,
					Path:    path,
					Color:   color,
				})
			}
		}
	}

	applyOverlapOffsets(data.Markers)

	if data.Resolved < data.Total {
		log.Printf("map data: date=%s resolved=%d total=%d", date, data.Resolved, data.Total)
	}

	return data
}

// collectAddresses returns the unique non-empty addresses across all
// trips in first-seen order, with the depot address placed first.
func collectAddresses(trips map[string][]domain.Trip, depot string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 32)

	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}

	add(depot)

	routeNames := SortRoutesForDisplay(trips, SortByName)
	for _, routeID := range routeNames {
		for _, trip := range trips[routeID] {
			for _, v := range trip.Visits {
				add(v.Address)
			}
		}
	}

	return out
}

// markerLabel picks the pin label: the visit name, falling back to the
// depot display name at the depot and a truncated address elsewhere.
func markerLabel(v domain.Visit, cfg MapConfig) string {
	name := strings.TrimSpace(v.Name)
	if !domain.IsEmptyValue(name) {
		return name
	}

	if v.AtAddress(cfg.DepotAddress) {
		return cfg.DepotName
	}

	addr := strings.TrimSpace(v.Address)
	// Truncate on a rune boundary; addresses carry non-ASCII letters.
	if r := []rune(addr); len(r) > 30 {
		return string(r[:30])
	}
	return addr
}

// applyOverlapOffsets nudges the labels of markers sharing (within
// ~1e-4 degrees) a position with an earlier marker, so stacked pins
// stay readable.
func applyOverlapOffsets(markers []domain.Marker) {
	for i := range markers {
		for j := range markers {
			if i == j {
				continue
			}
			if math.Abs(markers[i].Lat-markers[j].Lat) < 1e-4 &&
				math.Abs(markers[i].Lng-markers[j].Lng) < 1e-4 {
				markers[i].LabelOffsetX = float64(i%3-1) * 12
				markers[i].LabelOffsetY = float64(i/3) * 10
				break
			}
		}
	}
}
