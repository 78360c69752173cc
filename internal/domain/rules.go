package domain

import (
	"fmt"
	"strings"
)

// ColorRule maps route names to a base display color. Rules are ordered:
// the first rule whose pattern is a case-insensitive substring of the
// route name wins.
type ColorRule struct {
	Pattern string `yaml:"pattern" json:"pattern" validate:"required"`
	Color   string `yaml:"color" json:"color" validate:"required,hexcolor"`
}

// Matches reports whether the rule applies to the given route name.
func (r ColorRule) Matches(routeName string) bool {
	return strings.Contains(strings.ToLower(routeName), strings.ToLower(r.Pattern))
}

// Route rule kinds. The set is closed: settings loading rejects any
// other value instead of silently ignoring it.
const (
	RuleFillDefaultAddress = "fill_default_address"
	RuleRemoveIfEmpty      = "remove_if_empty"
	RuleRemoveIfStartsWith = "remove_if_starts_with"
)

// Columns a route rule may address, by canonical field name.
var ruleColumns = map[string]struct{}{
	"start":      {},
	"end":        {},
	"name":       {},
	"address":    {},
	"visit_type": {},
	"route_id":   {},
}

// RouteRule is one preprocessing rule applied to raw schedule rows
// before grouping. Kind selects the variant; the remaining fields are
// interpreted per kind:
//
//   - fill_default_address: rows whose column is empty or starts with
//     one of Prefixes get the default depot address substituted.
//   - remove_if_empty: rows whose column is empty are dropped.
//   - remove_if_starts_with: rows whose column starts with Pattern are
//     dropped.
type RouteRule struct {
	Kind     string   `yaml:"kind" json:"kind" validate:"required"`
	Column   string   `yaml:"column" json:"column" validate:"required"`
	Prefixes []string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Pattern  string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Validate checks the tagged-union shape of the rule.
func (r RouteRule) Validate() error {
	if _, ok := ruleColumns[r.Column]; !ok {
		return fmt.Errorf("route rule: unknown column %q", r.Column)
	}

	switch r.Kind {
	case RuleFillDefaultAddress:
		if len(r.Prefixes) == 0 {
			return fmt.Errorf("route rule %s: prefixes must be non-empty", r.Kind)
		}
	case RuleRemoveIfEmpty:
		// column is all it needs
	case RuleRemoveIfStartsWith:
		if strings.TrimSpace(r.Pattern) == "" {
			return fmt.Errorf("route rule %s: pattern must be non-empty", r.Kind)
		}
	default:
		return fmt.Errorf("route rule: unknown kind %q", r.Kind)
	}

	return nil
}

// Field returns the row value the rule's column refers to.
func (r RouteRule) Field(row ScheduleRow) string {
	switch r.Column {
	case "start":
		return row.Start
	case "end":
		return row.End
	case "name":
		return row.Name
	case "address":
		return row.Address
	case "visit_type":
		return row.VisitType
	case "route_id":
		return row.RouteID
	}
	return ""
}
