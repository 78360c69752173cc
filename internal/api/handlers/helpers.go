package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"route-schedule-service/internal/adapters/settings"
	"route-schedule-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// scheduleConfig translates stored settings into the pipeline config.
// The store only ever holds validated settings, so the window parse
// cannot fail here; the guard keeps a corrupted store from panicking.
func scheduleConfig(s settings.Settings) services.ScheduleConfig {
	lunch, evening, err := s.Windows()
	if err != nil {
		log.Printf("settings windows invalid, using defaults: %v", err)
		d := settings.Defaults()
		lunch, evening, _ = d.Windows()
	}

	return services.ScheduleConfig{
		DefaultAddress:      s.DefaultAddress,
		DefaultLocationName: s.DefaultLocationName,
		BreakNames:          s.BreakNameList(),
		Lunch:               lunch,
		Evening:             evening,
		RouteRules:          s.RouteRules,
	}
}
