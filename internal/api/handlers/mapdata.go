package handlers

import (
	"log"
	"net/http"
	"strings"

	"route-schedule-service/internal/adapters/settings"
	"route-schedule-service/internal/api/dto"
	"route-schedule-service/internal/ports"
	"route-schedule-service/internal/services"
)

// MapHandler serves geocoded marker and polyline data for one date.
type MapHandler struct {
	Repo     ports.ScheduleRepository
	Resolver ports.AddressResolver
	Settings *settings.Store
}

func (h *MapHandler) MapData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(w, r, http.StatusBadRequest, "date query parameter is required")
		return
	}

	rows, err := h.Repo.ListRows(r.Context())
	if err != nil {
		log.Printf("map data: list rows failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	cfg := h.Settings.Current()
	schedule := services.BuildSchedule(rows, scheduleConfig(cfg))

	trips, ok := schedule[date]
	if !ok {
		writeError(w, r, http.StatusNotFound, "no routes for date")
		return
	}

	data := services.BuildMapData(r.Context(), date, trips, h.Resolver, services.MapConfig{
		DepotAddress: cfg.DefaultAddress,
		DepotName:    cfg.DefaultLocationName,
		SortOrder:    cfg.RouteSortOrder,
		ColorRules:   cfg.ColorRules,
	})

	res := dto.MapDataResponse{
		Date:      date,
		Markers:   make([]dto.MarkerResponse, 0, len(data.Markers)),
		Polylines: make([]dto.PolylineResponse, 0, len(data.Polylines)),
		Resolved:  data.Resolved,
		Total:     data.Total,
	}
	for _, m := range data.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			Lat:          m.Lat,
			Lng:          m.Lng,
			Label:        m.Label,
			Address:      m.Address,
			Color:        m.Color,
			TripKey:      m.TripKey,
			VisitIndex:   m.VisitIndex,
			LabelOffsetX: m.LabelOffsetX,
			LabelOffsetY: m.LabelOffsetY,
		})
	}
	for _, p := range data.Polylines {
		res.Polylines = append(res.Polylines, dto.PolylineResponse{
			TripKey: p.TripKey,
			Path:    p.Path,
			Color:   p.Color,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
