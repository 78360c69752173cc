package handlers

import (
	"log"
	"net/http"

	"route-schedule-service/internal/api/dto"
	"route-schedule-service/internal/ports"
)

// GeocacheHandler exposes cache maintenance operations.
type GeocacheHandler struct {
	Cache ports.GeocodeCache
}

// Clear empties the geocode cache and reports how many entries were
// removed. Clearing an empty or absent cache is not an error.
func (h *GeocacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deleted, err := h.Cache.Clear(r.Context())
	if err != nil {
		log.Printf("clear geocache failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("geocache cleared: deleted=%d", deleted)
	writeJSON(w, r, http.StatusOK, dto.ClearCacheResponse{Deleted: deleted})
}
