package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite schedule schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS schedule_rows (
		row_id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TEXT NOT NULL,
		end_time TEXT,
		name TEXT,
		address TEXT,
		visit_type TEXT,
		route_id TEXT
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create schedule_rows: %w", err)
	}

	return nil
}

type scheduleRowSeed struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	VisitType string `json:"visit_type"`
	RouteID   string `json:"route_id"`
}

// SeedFromJSON loads schedule rows from a JSON file, replacing whatever
// rows were previously stored. Loading an extracted schedule is a full
// re-import, not a merge.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed schedule: read %q: %w", jsonPath, err)
	}

	var data []scheduleRowSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed schedule: parse json: %w", err)
	}

	for i, row := range data {
		if strings.TrimSpace(row.Start) == "" {
			return fmt.Errorf("seed schedule: row at index %d: start time cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed schedule: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM schedule_rows;`); err != nil {
		return fmt.Errorf("seed schedule: clear previous rows: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO schedule_rows (
		start_time,
		end_time,
		name,
		address,
		visit_type,
		route_id
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed schedule: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range data {
		if _, err := stmt.Exec(row.Start, row.End, row.Name, row.Address, row.VisitType, row.RouteID); err != nil {
			return fmt.Errorf("seed schedule: insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed schedule: commit tx: %w", err)
	}

	return nil
}
