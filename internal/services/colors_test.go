package services

import (
	"regexp"
	"testing"

	"route-schedule-service/internal/domain"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestColorsForRoutesFirstMatchWins(t *testing.T) {
	rules := []domain.ColorRule{
		{Pattern: "express", Color: "#ff0000"},
		{Pattern: "north", Color: "#00ff00"},
	}

	colors := ColorsForRoutes([]string{"North Express"}, rules)
	if colors["North Express"] != "#ff0000" {
		t.Fatalf("color = %q, want the first matching rule's #ff0000", colors["North Express"])
	}
}

func TestColorsForRoutesDefaultForUnmatched(t *testing.T) {
	colors := ColorsForRoutes([]string{"R1"}, nil)
	if colors["R1"] != DefaultRouteColor {
		t.Fatalf("color = %q, want default %q", colors["R1"], DefaultRouteColor)
	}
}

func TestColorsForRoutesSharedBaseGetsDistinctTints(t *testing.T) {
	rules := []domain.ColorRule{{Pattern: "city", Color: "#3366cc"}}
	names := []string{"City A", "City B", "City C", "City D", "City E"}

	colors := ColorsForRoutes(names, rules)

	if colors["City A"] != "#3366cc" {
		t.Fatalf("first claim = %q, want the base color", colors["City A"])
	}

	seen := make(map[string]string)
	for _, name := range names {
		c := colors[name]
		if !hexPattern.MatchString(c) {
			t.Fatalf("color for %q = %q, not a hex color", name, c)
		}
		if prev, dup := seen[c]; dup {
			t.Fatalf("routes %q and %q share color %q", prev, name, c)
		}
		seen[c] = name
	}
}

func TestColorsForRoutesDeterministic(t *testing.T) {
	rules := []domain.ColorRule{{Pattern: "r", Color: "#aa2211"}}
	names := []string{"r1", "r2", "r3"}

	first := ColorsForRoutes(names, rules)
	second := ColorsForRoutes(names, rules)

	for name, c := range first {
		if second[name] != c {
			t.Fatalf("color for %q changed between runs: %q vs %q", name, c, second[name])
		}
	}
}
