package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"route-schedule-service/internal/adapters/cache"
	"route-schedule-service/internal/adapters/geocode"
	"route-schedule-service/internal/adapters/repositories"
	"route-schedule-service/internal/adapters/settings"
	"route-schedule-service/internal/api"
	"route-schedule-service/internal/config"
	"route-schedule-service/internal/platform/db"
	"route-schedule-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root. It wires concrete adapters
// (SQLite, Redis or Postgres cache, geocode providers) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "")
	settingsPath := config.Get("SETTINGS_PATH", "data/settings.yaml")
	port := config.Get("PORT", "8080")

	sqliteDB, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatal(err)
	}
	// Seeding is optional for the server; dbtool covers explicit loads.
	if seedPath != "" {
		if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	ctx := context.Background()

	geoCache, err := openGeocodeCache(ctx, sqliteDB)
	if err != nil {
		log.Fatal(err)
	}

	// The keyed provider is optional; without a key resolution goes
	// straight to the free fallback.
	var keyed ports.Geocoder
	if key := strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")); key != "" {
		g, err := geocode.NewGoogleGeocoder(key)
		if err != nil {
			log.Fatal(err)
		}
		keyed = g
	} else {
		log.Println("GOOGLE_MAPS_API_KEY not set, using fallback geocoder only")
	}
	resolver := geocode.NewResolver(geoCache, keyed, geocode.NewNominatimGeocoder())

	store, err := settings.NewStore(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if config.GetBool("SETTINGS_WATCH", true) {
		if err := settings.NewWatcher(store).Start(ctx); err != nil {
			log.Printf("settings watcher disabled: %v", err)
		}
	}

	repo := repositories.NewSqliteScheduleRepository(sqliteDB)
	router := api.NewRouter(repo, resolver, geoCache, store)

	// Write timeout is generous: a cold-cache /mapdata request fans out
	// to external geocoding providers.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openGeocodeCache selects the cache backend from CACHE_BACKEND:
// "sqlite" (default, shares the schedule database), "redis", or
// "postgres".
func openGeocodeCache(ctx context.Context, sqliteDB *sql.DB) (ports.GeocodeCache, error) {
	backend := strings.ToLower(config.Get("CACHE_BACKEND", "sqlite"))
	switch backend {
	case "sqlite":
		c := cache.NewSqliteGeocodeCache(sqliteDB)
		if err := c.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return c, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.Get("REDIS_ADDR", "localhost:6379"),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("open geocode cache: verify redis connection: %w", err)
		}
		return cache.NewRedisGeocodeCache(client), nil

	case "postgres":
		databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if databaseURL == "" {
			return nil, errors.New("open geocode cache: DATABASE_URL is required for the postgres backend")
		}
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, err
		}
		c := cache.NewPostgresGeocodeCache(pg)
		if err := c.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("open geocode cache: unknown CACHE_BACKEND %q", backend)
	}
}
