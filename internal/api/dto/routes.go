package dto

import "time"

type VisitResponse struct {
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	VisitType string     `json:"visit_type"`
	Synthetic bool       `json:"synthetic"`
}

type TripResponse struct {
	Name    string          `json:"name"`
	TripKey string          `json:"trip_key"`
	Visits  []VisitResponse `json:"visits"`
}

type RouteResponse struct {
	RouteID string         `json:"route_id"`
	Color   string         `json:"color"`
	Trips   []TripResponse `json:"trips"`
}

type DateRoutes struct {
	Date   string          `json:"date"`
	Routes []RouteResponse `json:"routes"`
}

type RoutesResponse struct {
	Dates []DateRoutes `json:"dates"`
}
