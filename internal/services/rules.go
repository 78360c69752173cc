package services

import (
	"fmt"
	"route-schedule-service/internal/domain"
	"strings"
)

// ValidateRouteRules checks every rule's tagged-union shape up front so
// a bad settings file is rejected at load time, not applied halfway.
func ValidateRouteRules(rules []domain.RouteRule) error {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("validate route rules: rule %d: %w", i+1, err)
		}
	}
	return nil
}

// ApplyRouteRules runs the configured preprocessing rules over raw
// schedule rows, in rule order, before grouping. Rows are either
// modified in place (address substitution) or dropped entirely.
func ApplyRouteRules(rows []domain.ScheduleRow, rules []domain.RouteRule, defaultAddress string) []domain.ScheduleRow {
	if len(rules) == 0 {
		return rows
	}

	out := make([]domain.ScheduleRow, 0, len(rows))

rowLoop:
	for _, row := range rows {
		for _, rule := range rules {
			value := strings.TrimSpace(rule.Field(row))

			switch rule.Kind {
			case domain.RuleFillDefaultAddress:
				if domain.IsEmptyValue(value) || hasAnyPrefix(value, rule.Prefixes) {
					row.Address = defaultAddress
				}
			case domain.RuleRemoveIfEmpty:
				if domain.IsEmptyValue(value) {
					continue rowLoop
				}
			case domain.RuleRemoveIfStartsWith:
				if hasAnyPrefix(value, []string{rule.Pattern}) {
					continue rowLoop
				}
			}
		}
		out = append(out, row)
	}

	return out
}

func hasAnyPrefix(value string, prefixes []string) bool {
	lower := strings.ToLower(value)
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
