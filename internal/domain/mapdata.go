package domain

// Marker is one map pin, ready for a rendering surface.
type Marker struct {
	Lat          float64
	Lng          float64
	Label        string
	Address      string
	Color        string
	TripKey      string
	VisitIndex   int
	LabelOffsetX float64
	LabelOffsetY float64
}

// Polyline connects a trip's resolved visit coordinates in visit order.
type Polyline struct {
	TripKey string
	Path    [][2]float64
	Color   string
}

// MapData is the flat, map-ready output for one date: all markers and
// polylines plus the batch resolution tally ("resolved N of M").
type MapData struct {
	Markers   []Marker
	Polylines []Polyline
	Resolved  int
	Total     int
}
