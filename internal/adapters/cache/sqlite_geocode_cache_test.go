package cache

import (
	"context"
	"database/sql"
	"testing"

	"route-schedule-service/internal/domain"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection keeps every statement on the same in-memory db.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(openTestDB(t))
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	if _, ok, err := c.Get(ctx, "5 High St"); err != nil || ok {
		t.Fatalf("empty cache Get = ok=%v err=%v", ok, err)
	}

	want := domain.Coordinates{Lat: 52.37, Lng: 4.89}
	if err := c.Put(ctx, "5 High St", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "5 High St")
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// Upsert replaces the previous coordinates.
	updated := domain.Coordinates{Lat: 51.92, Lng: 4.48}
	if err := c.Put(ctx, "5 High St", updated); err != nil {
		t.Fatalf("second put: %v", err)
	}
	got, _, _ = c.Get(ctx, "5 High St")
	if got != updated {
		t.Fatalf("after upsert got %+v, want %+v", got, updated)
	}
}

func TestSqliteGeocodeCacheStoresHashesOnly(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	c := NewSqliteGeocodeCache(db)
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	if err := c.Put(ctx, "12 Privacy Lane", domain.Coordinates{Lat: 1, Lng: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}

	var key string
	if err := db.QueryRow(`SELECT address_hash FROM geocache;`).Scan(&key); err != nil {
		t.Fatalf("read key: %v", err)
	}
	if key != domain.HashAddress("12 Privacy Lane") {
		t.Fatalf("stored key = %q, want the address hash", key)
	}
}

func TestSqliteGeocodeCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(openTestDB(t))
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	for _, addr := range []string{"a", "b", "c"} {
		if err := c.Put(ctx, addr, domain.Coordinates{Lat: 1, Lng: 2}); err != nil {
			t.Fatalf("put %q: %v", addr, err)
		}
	}

	deleted, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("deleted = %d, want 3", deleted)
	}

	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("cache still has entries after clear")
	}
}

func TestSqliteGeocodeCacheClearWithoutTable(t *testing.T) {
	c := NewSqliteGeocodeCache(openTestDB(t))

	deleted, err := c.Clear(context.Background())
	if err != nil {
		t.Fatalf("clear on missing table: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("deleted = %d, want 0", deleted)
	}
}

func TestSqliteGeocodeCacheMigratesLegacySchema(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	// Legacy layout keyed by raw address text.
	if _, err := db.Exec(`CREATE TABLE geocache (address TEXT PRIMARY KEY, lat REAL, lng REAL);`); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO geocache (address, lat, lng) VALUES ('12 Main St', 1.0, 2.0);`); err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	c := NewSqliteGeocodeCache(db)
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	// Legacy entries are discarded, not re-keyed.
	if _, ok, err := c.Get(ctx, "12 Main St"); err != nil || ok {
		t.Fatalf("legacy entry survived migration: ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, "12 Main St", domain.Coordinates{Lat: 1, Lng: 2}); err != nil {
		t.Fatalf("put after migration: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "12 Main St"); !ok {
		t.Fatal("migrated table does not accept new entries")
	}

	// A second EnsureSchema on the new layout is a no-op.
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("second ensure schema: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "12 Main St"); !ok {
		t.Fatal("repeat migration dropped the new table")
	}
}
