package dto

type MarkerResponse struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Label        string  `json:"label"`
	Address      string  `json:"address"`
	Color        string  `json:"color"`
	TripKey      string  `json:"trip_key"`
	VisitIndex   int     `json:"visit_index"`
	LabelOffsetX float64 `json:"label_offset_x"`
	LabelOffsetY float64 `json:"label_offset_y"`
}

type PolylineResponse struct {
	TripKey string       `json:"trip_key"`
	Path    [][2]float64 `json:"path"`
	Color   string       `json:"color"`
}

type MapDataResponse struct {
	Date      string             `json:"date"`
	Markers   []MarkerResponse   `json:"markers"`
	Polylines []PolylineResponse `json:"polylines"`
	Resolved  int                `json:"resolved"`
	Total     int                `json:"total"`
}

type ClearCacheResponse struct {
	Deleted int64 `json:"deleted"`
}
