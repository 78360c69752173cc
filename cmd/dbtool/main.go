package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"

	"route-schedule-service/internal/adapters/cache"
	"route-schedule-service/internal/adapters/repositories"
	"route-schedule-service/internal/config"
	"route-schedule-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool manages the schedule database outside the server process:
// schema init, seeding from an extracted-schedule JSON file, and
// geocode cache maintenance. It talks to SQLite by default, or to
// Postgres when DATABASE_URL is set.
func main() {
	initFlag := flag.Bool("init", false, "initialize the schedule schema")
	seedFlag := flag.String("seed", "", "seed schedule rows from a JSON file (implies -init)")
	clearFlag := flag.Bool("clear-geocache", false, "delete all cached geocode entries")
	flag.Parse()

	if !*initFlag && *seedFlag == "" && !*clearFlag {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	conn, postgres, err := open()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	if *initFlag || *seedFlag != "" {
		log.Println("Initializing database schema...")
		if err := repositories.InitSchema(conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Schema ready.")
	}

	if *seedFlag != "" {
		log.Println("Seeding schedule rows...")
		if err := repositories.SeedFromJSON(conn, *seedFlag); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		log.Println("Seeding complete.")
	}

	if *clearFlag {
		deleted, err := clearGeocache(ctx, conn, postgres)
		if err != nil {
			log.Fatalf("clearing geocode cache failed: %v", err)
		}
		log.Printf("Geocode cache cleared: deleted=%d", deleted)
	}
}

// open connects to Postgres when DATABASE_URL is set, otherwise to the
// local SQLite file.
func open() (conn *sql.DB, postgres bool, err error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		conn, err = db.OpenPostgres(databaseURL)
		return conn, true, err
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err = db.OpenSqlite(dbPath)
	return conn, false, err
}

func clearGeocache(ctx context.Context, conn *sql.DB, postgres bool) (int64, error) {
	if postgres {
		return cache.NewPostgresGeocodeCache(conn).Clear(ctx)
	}
	return cache.NewSqliteGeocodeCache(conn).Clear(ctx)
}
