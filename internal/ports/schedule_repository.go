package ports

import (
	"context"
	"route-schedule-service/internal/domain"
)

// Port: a boundary for retrieving raw schedule rows from a data source.
type ScheduleRepository interface {
	// Retrieve all schedule rows available for grouping.
	ListRows(ctx context.Context) ([]domain.ScheduleRow, error)
}
