package services

import (
	"fmt"
	"route-schedule-service/internal/domain"
	"strconv"
	"strings"
)

// Neutral color for routes no rule matches.
const DefaultRouteColor = "#777777"

// Tint steps applied to the Nth route claiming the same base color:
// base, light, dark, lighter, darker, cycling past five claims.
var tintSteps = []func(string) string{
	func(c string) string { return c },
	func(c string) string { return blendColor(c, 255, 255, 255, 0.40) },
	func(c string) string { return blendColor(c, 0, 0, 0, 0.15) },
	func(c string) string { return blendColor(c, 255, 255, 255, 0.55) },
	func(c string) string { return blendColor(c, 0, 0, 0, 0.30) },
}

// ColorsForRoutes assigns each route name a display color.
//
// Rules are tested in order; the first whose pattern is a
// case-insensitive substring of the name supplies the base color, and
// unmatched names get the neutral default. Names claiming an already
// claimed base color are tinted deterministically so routes sharing a
// configured color stay visually distinct. The function is pure: the
// same rules and the same ordered names always produce the same map.
func ColorsForRoutes(routeNames []string, rules []domain.ColorRule) map[string]string {
	claims := make(map[string]int)
	out := make(map[string]string, len(routeNames))

	for _, name := range routeNames {
		if _, ok := out[name]; ok {
			continue
		}

		base := DefaultRouteColor
		for _, rule := range rules {
			if rule.Matches(name) {
				base = rule.Color
				break
			}
		}

		n := claims[base]
		claims[base]++
		out[name] = tintSteps[n%len(tintSteps)](base)
	}

	return out
}

// blendColor mixes a hex color toward the given RGB target by factor t
// (0 keeps the base, 1 is the target). Unparseable colors pass through.
func blendColor(hex string, tr, tg, tb int, t float64) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}

	mix := func(c, target int) int {
		v := int(float64(c)*(1-t) + float64(target)*t + 0.5)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v
	}

	return fmt.Sprintf("#%02x%02x%02x", mix(r, tr), mix(g, tg), mix(b, tb))
}

func parseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}

	rv, err1 := strconv.ParseInt(s[0:2], 16, 0)
	gv, err2 := strconv.ParseInt(s[2:4], 16, 0)
	bv, err3 := strconv.ParseInt(s[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}

	return int(rv), int(gv), int(bv), true
}
