package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"route-schedule-service/internal/domain"
	"strconv"
)

const nominatimUserAgent = "route-schedule-service/1.0"

// Nominatim returns lat/lon as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimGeocoder resolves addresses through the free OpenStreetMap
// Nominatim service. It needs no key, which makes it the fallback of
// last resort; the usage policy requires an identifying User-Agent.
type NominatimGeocoder struct {
	client  *http.Client
	baseURL string
}

func NewNominatimGeocoder() *NominatimGeocoder {
	return &NominatimGeocoder{
		client:  newClient(),
		baseURL: "https://nominatim.openstreetmap.org",
	}
}

// Geocode resolves one address, taking the first result if any.
func (n *NominatimGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search", nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", nominatimUserAgent)
		q := req.URL.Query()
		q.Set("q", address)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := doWithRetry(ctx, n.client, makeReq)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("nominatim geocode: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("nominatim geocode: decode response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, false, nil
	}

	lat, err1 := strconv.ParseFloat(decoded[0].Lat, 64)
	lng, err2 := strconv.ParseFloat(decoded[0].Lon, 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinates{}, false, fmt.Errorf("nominatim geocode: malformed coordinates in result")
	}

	return domain.Coordinates{Lat: lat, Lng: lng}, true, nil
}
