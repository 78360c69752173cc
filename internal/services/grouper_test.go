package services

import (
	"testing"

	"route-schedule-service/internal/domain"
)

var groupCfg = GroupConfig{
	DefaultAddress:      "1 Depot Way",
	DefaultLocationName: "Depot",
}

func TestGroupByDateDefaults(t *testing.T) {
	rows := []domain.ScheduleRow{
		{Start: "2026-03-02 08:00:00", Name: "Acme", Address: "5 High St", VisitType: "delivery", RouteID: "R1"},
		{Start: "2026-03-02 09:00:00", Name: "Bakery", Address: "nan", VisitType: "delivery", RouteID: "R1"},
		{Start: "2026-03-02 10:00:00", Name: "", Address: "7 Low Rd", VisitType: "pickup", RouteID: ""},
	}

	grouped := GroupByDate(rows, groupCfg)

	day := grouped["2026-03-02"]
	if day == nil {
		t.Fatal("expected a 2026-03-02 bucket")
	}

	r1 := day["R1"]
	if len(r1) != 2 {
		t.Fatalf("expected 2 visits on R1, got %d", len(r1))
	}

	// Empty address falls back to the depot, and depot visits always
	// carry the depot label.
	if r1[1].Address != groupCfg.DefaultAddress {
		t.Fatalf("empty address = %q, want depot", r1[1].Address)
	}
	if r1[1].Name != groupCfg.DefaultLocationName {
		t.Fatalf("depot visit name = %q, want %q", r1[1].Name, groupCfg.DefaultLocationName)
	}

	// Missing route id gets the placeholder; missing name falls back to
	// the visit type.
	ph := day[PlaceholderRoute]
	if len(ph) != 1 {
		t.Fatalf("expected 1 placeholder-route visit, got %d", len(ph))
	}
	if ph[0].Name != "pickup" {
		t.Fatalf("name fallback = %q, want visit type", ph[0].Name)
	}
}

func TestGroupByDateNoVisitKeepsEmptyAddress(t *testing.T) {
	rows := []domain.ScheduleRow{
		{Start: "2026-03-02 08:00:00", Name: "A", Address: "  ", RouteID: "R1"},
		{Start: "2026-03-02 09:00:00", Name: "B", Address: "None", RouteID: "R1"},
	}

	for _, visits := range GroupByDate(rows, groupCfg)["2026-03-02"] {
		for _, v := range visits {
			if domain.IsEmptyValue(v.Address) {
				t.Fatalf("visit %q kept an empty address", v.Name)
			}
		}
	}
}

func TestGroupByDateDropsUnparseableAndBucketsTimeOnly(t *testing.T) {
	rows := []domain.ScheduleRow{
		{Start: "not a time", Name: "A", Address: "1 St", RouteID: "R1"},
		{Start: "", Name: "B", Address: "2 St", RouteID: "R1"},
		{Start: "08:15", Name: "C", Address: "3 St", RouteID: "R1"},
	}

	grouped := GroupByDate(rows, groupCfg)
	if len(grouped) != 1 {
		t.Fatalf("expected only the unknown bucket, got %d buckets", len(grouped))
	}

	unknown := grouped[UnknownDate]["R1"]
	if len(unknown) != 1 || unknown[0].Name != "C" {
		t.Fatalf("unknown bucket = %+v, want only visit C", unknown)
	}
}

func TestGroupByDateSortsByStartThenAddress(t *testing.T) {
	rows := []domain.ScheduleRow{
		{Start: "2026-03-02 09:00:00", Name: "late", Address: "9 St", RouteID: "R1"},
		{Start: "2026-03-02 08:00:00", Name: "tie-b", Address: "B St", RouteID: "R1"},
		{Start: "2026-03-02 08:00:00", Name: "tie-a", Address: "A St", RouteID: "R1"},
	}

	visits := GroupByDate(rows, groupCfg)["2026-03-02"]["R1"]
	want := []string{"tie-a", "tie-b", "late"}
	for i, name := range want {
		if visits[i].Name != name {
			t.Fatalf("visit %d = %q, want %q", i, visits[i].Name, name)
		}
	}
}

func TestSortedDatesUnknownLast(t *testing.T) {
	grouped := map[string]map[string][]domain.Visit{
		UnknownDate:  nil,
		"2026-03-03": nil,
		"2026-03-01": nil,
	}

	got := SortedDates(grouped)
	want := []string{"2026-03-01", "2026-03-03", UnknownDate}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dates = %v, want %v", got, want)
		}
	}
}
