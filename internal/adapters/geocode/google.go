package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"route-schedule-service/internal/domain"
)

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleGeocoder resolves addresses through the keyed Google Maps
// geocoding API.
type GoogleGeocoder struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google geocoder: api key is empty")
	}

	return &GoogleGeocoder{
		client:  newClient(),
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
	}, nil
}

// Geocode resolves one address. Only a "OK" status with at least one
// result counts as found; the first result's location wins.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/maps/api/geocode/json", nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("address", address)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := doWithRetry(ctx, g.client, makeReq)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("google geocode: %w", err)
	}
	defer resp.Body.Close()

	var decoded googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("google geocode: decode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}
