package api

import (
	"net/http"

	"route-schedule-service/internal/adapters/settings"
	"route-schedule-service/internal/api/handlers"
	"route-schedule-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware
// of concrete adapters.
func NewRouter(
	repo ports.ScheduleRepository,
	resolver ports.AddressResolver,
	cache ports.GeocodeCache,
	store *settings.Store,
) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Repo: repo, Settings: store}
	mapHandler := &handlers.MapHandler{Repo: repo, Resolver: resolver, Settings: store}
	cacheHandler := &handlers.GeocacheHandler{Cache: cache}
	settingsHandler := &handlers.SettingsHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes", routeHandler.List)
	mux.HandleFunc("/mapdata", mapHandler.MapData)
	mux.HandleFunc("/geocache/clear", cacheHandler.Clear)
	mux.HandleFunc("/settings", settingsHandler.Handle)

	return requestIDMiddleware(loggingMiddleware(mux))
}
