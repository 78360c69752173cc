package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-schedule-service/internal/domain"
)

// SQLite-backed implementation of the ScheduleRepository port.
type SqliteScheduleRepository struct{ DB *sql.DB }

func NewSqliteScheduleRepository(db *sql.DB) *SqliteScheduleRepository {
	return &SqliteScheduleRepository{DB: db}
}

// Return all schedule rows in insertion order.
func (s *SqliteScheduleRepository) ListRows(ctx context.Context) ([]domain.ScheduleRow, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		start_time,
		COALESCE(end_time, ''),
		COALESCE(name, ''),
		COALESCE(address, ''),
		COALESCE(visit_type, ''),
		COALESCE(route_id, '')
	FROM schedule_rows
	ORDER BY row_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedule rows: query schedule_rows table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScheduleRow, 0, 64)
	for rows.Next() {
		var r domain.ScheduleRow
		if err := rows.Scan(&r.Start, &r.End, &r.Name, &r.Address, &r.VisitType, &r.RouteID); err != nil {
			return nil, fmt.Errorf("list schedule rows: scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedule rows: row iteration: %w", err)
	}

	return out, nil
}
