package services

import (
	"testing"
	"time"

	"route-schedule-service/internal/domain"
)

var splitCfg = SplitConfig{
	DepotAddress: "1 Depot Way",
	DepotName:    "Depot",
	BreakNames:   []string{"lunch", "break"},
	Lunch:        domain.ClockWindow{Start: 600, End: 840},  // 10:00-14:00
	Evening:      domain.ClockWindow{Start: 900, End: 1140}, // 15:00-19:00
}

func visitAt(h, m int, name, address string) domain.Visit {
	return domain.Visit{
		Start:   time.Date(2026, 3, 2, h, m, 0, 0, time.UTC),
		Name:    name,
		Address: address,
		RouteID: "R1",
	}
}

func breakAt(h, m int) domain.Visit {
	v := visitAt(h, m, "Depot", splitCfg.DepotAddress)
	v.VisitType = "lunch break"
	return v
}

func TestIsBreak(t *testing.T) {
	if !IsBreak(breakAt(12, 0), splitCfg) {
		t.Fatal("depot visit with a break token must classify as a break")
	}

	// A break-named visit away from the depot is a customer stop.
	v := visitAt(12, 0, "Lunch Cafe", "9 Food St")
	v.VisitType = "lunch"
	if IsBreak(v, splitCfg) {
		t.Fatal("non-depot visit must not classify as a break")
	}

	// A depot visit with no break token is a regular depot stop.
	if IsBreak(visitAt(12, 0, "Depot", splitCfg.DepotAddress), splitCfg) {
		t.Fatal("depot visit without a break token must not classify as a break")
	}
}

func TestSplitIntoTripsFullDay(t *testing.T) {
	visits := []domain.Visit{
		visitAt(8, 0, "A", "1 First St"),
		visitAt(8, 30, "B", "2 Second St"),
		breakAt(12, 0),
		visitAt(13, 0, "C", "3 Third St"),
		breakAt(16, 30),
		visitAt(17, 0, "D", "4 Fourth St"),
	}

	trips := SplitIntoTrips(visits, splitCfg)
	if len(trips) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(trips))
	}

	wantNames := []domain.TripName{domain.TripMorning, domain.TripAfternoon, domain.TripEvening}
	for i, want := range wantNames {
		if trips[i].Name != want {
			t.Fatalf("trip %d name = %q, want %q", i, trips[i].Name, want)
		}
	}

	// Each break closes one trip and opens the next.
	morning := trips[0].Visits
	if morning[len(morning)-1].Start.Hour() != 12 {
		t.Fatal("morning trip must end at the lunch break")
	}
	if trips[1].Visits[0].Start.Hour() != 12 {
		t.Fatal("afternoon trip must start at the lunch break")
	}
	if trips[2].Visits[0].Start.Hour() != 16 {
		t.Fatal("evening trip must start at the evening break")
	}

	// The first visit of the day is away from the depot, so the morning
	// trip gets a synthetic departure marker.
	if !morning[0].Synthetic || !morning[0].AtAddress(splitCfg.DepotAddress) {
		t.Fatal("morning trip must open with a synthetic depot visit")
	}
	if morning[0].Start.Hour() != 8 || morning[0].Start.Minute() != 0 {
		t.Fatal("synthetic departure must carry the first real start time")
	}
}

func TestSplitIntoTripsDepotBoundsInvariant(t *testing.T) {
	visits := []domain.Visit{
		visitAt(8, 0, "A", "1 First St"),
		breakAt(12, 0),
		visitAt(13, 0, "C", "3 Third St"),
	}

	for _, trip := range SplitIntoTrips(visits, splitCfg) {
		first := trip.Visits[0]
		last := trip.Visits[len(trip.Visits)-1]
		if !first.AtAddress(splitCfg.DepotAddress) {
			t.Fatalf("trip %q does not start at the depot", trip.Name)
		}
		if !last.AtAddress(splitCfg.DepotAddress) {
			t.Fatalf("trip %q does not end at the depot", trip.Name)
		}
	}
}

func TestSplitIntoTripsCoversEveryVisit(t *testing.T) {
	visits := []domain.Visit{
		visitAt(8, 0, "A", "1 First St"),
		visitAt(9, 0, "B", "2 Second St"),
		breakAt(12, 0),
		visitAt(13, 0, "C", "3 Third St"),
	}

	seen := make(map[string]bool)
	for _, trip := range SplitIntoTrips(visits, splitCfg) {
		for _, v := range trip.RealVisits() {
			seen[v.Name+v.Start.String()] = true
		}
	}

	for _, v := range visits {
		if !seen[v.Name+v.Start.String()] {
			t.Fatalf("visit %q missing from the split", v.Name)
		}
	}
}

func TestSplitIntoTripsWindowBoundariesInclusive(t *testing.T) {
	visits := []domain.Visit{
		visitAt(8, 0, "A", "1 First St"),
		breakAt(14, 0), // exactly at the lunch window's end
		visitAt(14, 30, "B", "2 Second St"),
	}

	trips := SplitIntoTrips(visits, splitCfg)
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[0].Name != domain.TripMorning || trips[1].Name != domain.TripAfternoon {
		t.Fatalf("trip names = %q, %q, want morning, afternoon", trips[0].Name, trips[1].Name)
	}
}

func TestSplitIntoTripsNoBreaksUsesFirstVisitHeuristic(t *testing.T) {
	cases := []struct {
		hour int
		want domain.TripName
	}{
		{8, domain.TripMorning},
		{11, domain.TripAfternoon},
		{16, domain.TripEvening},
	}

	for _, c := range cases {
		trips := SplitIntoTrips([]domain.Visit{visitAt(c.hour, 0, "A", "1 First St")}, splitCfg)
		if len(trips) != 1 {
			t.Fatalf("hour %d: expected 1 trip, got %d", c.hour, len(trips))
		}
		if trips[0].Name != c.want {
			t.Fatalf("hour %d: trip name = %q, want %q", c.hour, trips[0].Name, c.want)
		}
	}
}

func TestSplitIntoTripsEmptyInput(t *testing.T) {
	if trips := SplitIntoTrips(nil, splitCfg); len(trips) != 0 {
		t.Fatalf("expected no trips, got %d", len(trips))
	}
}

func TestSplitIntoTripsSyntheticReturnUsesEndTime(t *testing.T) {
	end := time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC)
	v := visitAt(9, 0, "A", "1 First St")
	v.End = &end

	trips := SplitIntoTrips([]domain.Visit{v}, splitCfg)
	last := trips[0].Visits[len(trips[0].Visits)-1]
	if !last.Synthetic {
		t.Fatal("expected a synthetic return visit")
	}
	if !last.Start.Equal(end) {
		t.Fatalf("return time = %v, want the visit's end time %v", last.Start, end)
	}
}
