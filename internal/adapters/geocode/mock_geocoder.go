package geocode

import (
	"context"
	"route-schedule-service/internal/domain"
)

// MockGeocoder serves canned results for tests and counts its calls.
type MockGeocoder struct {
	Results map[string]domain.Coordinates
	Err     error
	Calls   int
}

func NewMockGeocoder(results map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{Results: results}
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	m.Calls++
	if m.Err != nil {
		return domain.Coordinates{}, false, m.Err
	}

	c, ok := m.Results[address]
	return c, ok, nil
}
