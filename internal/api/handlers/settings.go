package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"route-schedule-service/internal/adapters/settings"
)

// SettingsHandler reads and replaces the service settings.
type SettingsHandler struct {
	Store *settings.Store
}

func (h *SettingsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Store.Current())
}

// put replaces the whole settings document. Partial updates are not
// supported; clients send back the full object they got from GET.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req settings.Settings

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := h.Store.Replace(req); err != nil {
		log.Printf("settings update rejected: %v", err)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, h.Store.Current())
}
