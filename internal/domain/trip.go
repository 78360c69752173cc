package domain

import "fmt"

// TripName identifies the segment of the day a trip covers.
type TripName string

const (
	TripMorning   TripName = "morning"
	TripAfternoon TripName = "afternoon"
	TripEvening   TripName = "evening"
)

// TripNames lists the trip names in display order.
var TripNames = []TripName{TripMorning, TripAfternoon, TripEvening}

// Trip is a contiguous, named segment of a route's visits. Non-empty
// trips begin and end with a visit at the depot address; the splitter
// inserts synthetic depot visits where the source sequence did not
// already provide them.
type Trip struct {
	Name   TripName
	Visits []Visit
}

// RealVisits returns the trip's visits excluding synthetic depot padding.
func (t Trip) RealVisits() []Visit {
	out := make([]Visit, 0, len(t.Visits))
	for _, v := range t.Visits {
		if !v.Synthetic {
			out = append(out, v)
		}
	}
	return out
}

// TripKey composes the identifier map consumers use to toggle trip
// visibility: date, route and trip index joined with "|".
func TripKey(date, routeID string, tripIndex int) string {
	return fmt.Sprintf("%s|%s|%d", date, routeID, tripIndex)
}
