package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	return db
}

const seedJSON = `[
  {"start": "2026-03-02 08:00:00", "end": "2026-03-02 08:20:00", "name": "Acme", "address": "5 High St", "visit_type": "delivery", "route_id": "R1"},
  {"start": "2026-03-02 09:00:00", "name": "Bakery", "address": "7 Low Rd", "visit_type": "delivery", "route_id": "R1"}
]`

func writeSeed(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestSeedAndListRows(t *testing.T) {
	db := openTestDB(t)

	if err := SeedFromJSON(db, writeSeed(t, seedJSON)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSqliteScheduleRepository(db)
	rows, err := repo.ListRows(context.Background())
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Acme" || rows[0].End != "2026-03-02 08:20:00" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Name != "Bakery" || rows[1].End != "" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestSeedReplacesPreviousRows(t *testing.T) {
	db := openTestDB(t)

	if err := SeedFromJSON(db, writeSeed(t, seedJSON)); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	second := `[{"start": "2026-03-03 10:00:00", "name": "Cafe", "address": "2 Side St", "route_id": "R2"}]`
	if err := SeedFromJSON(db, writeSeed(t, second)); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	rows, err := NewSqliteScheduleRepository(db).ListRows(context.Background())
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Cafe" {
		t.Fatalf("rows after reseed = %+v, want only Cafe", rows)
	}
}

func TestSeedRejectsMissingStart(t *testing.T) {
	db := openTestDB(t)

	bad := `[{"start": "  ", "name": "A", "address": "1 St"}]`
	if err := SeedFromJSON(db, writeSeed(t, bad)); err == nil {
		t.Fatal("row without a start time accepted")
	}
}
