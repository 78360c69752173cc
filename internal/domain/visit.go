package domain

import (
	"strings"
	"time"
)

// ScheduleRow is one raw row from the schedule source, before any
// defaulting or grouping. All fields are free text as they arrived.
type ScheduleRow struct {
	Start     string
	End       string
	Name      string
	Address   string
	VisitType string
	RouteID   string
}

// Visit is a single scheduled stop, produced by the grouper from one
// schedule row and immutable thereafter. Address is never empty: rows
// without one receive the configured depot address. Synthetic marks
// depot visits inserted by trip padding rather than present in the
// source data.
type Visit struct {
	Start     time.Time
	End       *time.Time
	Name      string
	Address   string
	VisitType string
	RouteID   string
	Synthetic bool
}

// AtAddress reports whether the visit is located at the given address,
// compared case-insensitively.
func (v Visit) AtAddress(address string) bool {
	return strings.EqualFold(strings.TrimSpace(v.Address), strings.TrimSpace(address))
}
