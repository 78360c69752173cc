package handlers

import (
	"log"
	"net/http"

	"route-schedule-service/internal/adapters/settings"
	"route-schedule-service/internal/api/dto"
	"route-schedule-service/internal/domain"
	"route-schedule-service/internal/ports"
	"route-schedule-service/internal/services"
)

// RouteHandler serves the full grouped-and-split schedule.
type RouteHandler struct {
	Repo     ports.ScheduleRepository
	Settings *settings.Store
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rows, err := h.Repo.ListRows(r.Context())
	if err != nil {
		log.Printf("list routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	cfg := h.Settings.Current()
	schedule := services.BuildSchedule(rows, scheduleConfig(cfg))

	res := dto.RoutesResponse{Dates: make([]dto.DateRoutes, 0, len(schedule))}
	for _, date := range sortedScheduleDates(schedule) {
		trips := schedule[date]
		routeNames := services.SortRoutesForDisplay(trips, cfg.RouteSortOrder)
		colors := services.ColorsForRoutes(routeNames, cfg.ColorRules)

		day := dto.DateRoutes{
			Date:   date,
			Routes: make([]dto.RouteResponse, 0, len(routeNames)),
		}
		for _, routeID := range routeNames {
			day.Routes = append(day.Routes, routeResponse(date, routeID, trips[routeID], colors[routeID]))
		}
		res.Dates = append(res.Dates, day)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func routeResponse(date, routeID string, trips []domain.Trip, color string) dto.RouteResponse {
	if color == "" {
		color = services.DefaultRouteColor
	}

	out := dto.RouteResponse{
		RouteID: routeID,
		Color:   color,
		Trips:   make([]dto.TripResponse, 0, len(trips)),
	}
	for i, trip := range trips {
		tr := dto.TripResponse{
			Name:    string(trip.Name),
			TripKey: domain.TripKey(date, routeID, i),
			Visits:  make([]dto.VisitResponse, 0, len(trip.Visits)),
		}
		for _, v := range trip.Visits {
			tr.Visits = append(tr.Visits, dto.VisitResponse{
				Start:     v.Start,
				End:       v.End,
				Name:      v.Name,
				Address:   v.Address,
				VisitType: v.VisitType,
				Synthetic: v.Synthetic,
			})
		}
		out.Trips = append(out.Trips, tr)
	}

	return out
}

// sortedScheduleDates orders dates ascending with the unknown bucket
// last, same as the grouper's SortedDates but over the split schedule.
func sortedScheduleDates(schedule map[string]map[string][]domain.Trip) []string {
	asVisits := make(map[string]map[string][]domain.Visit, len(schedule))
	for date := range schedule {
		asVisits[date] = nil
	}
	return services.SortedDates(asVisits)
}
