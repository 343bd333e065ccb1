package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"localspot/internal/model"
)

const defaultIPAPIEndpoint = "http://ip-api.com/json/"

// ipapiResponse mirrors the ip-api.com JSON payload for the fields we read.
type ipapiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPAPILocator resolves an approximate position from the caller's public IP
// using the ip-api.com JSON endpoint.
type IPAPILocator struct {
	endpoint   string
	httpClient *http.Client
}

// NewIPAPILocator creates a locator against the public ip-api.com endpoint.
// An empty endpoint selects the default.
func NewIPAPILocator(endpoint string) *IPAPILocator {
	if endpoint == "" {
		endpoint = defaultIPAPIEndpoint
	}
	return &IPAPILocator{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentPosition performs a single lookup.
func (l *IPAPILocator) CurrentPosition(ctx context.Context) (model.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("failed to create geolocation request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("geolocation request returned status %d", resp.StatusCode)
	}

	var payload ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Coordinate{}, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if payload.Status != "success" {
		return model.Coordinate{}, fmt.Errorf("geolocation lookup failed: %s", payload.Message)
	}

	coord := model.Coordinate{Latitude: payload.Lat, Longitude: payload.Lon}
	if !coord.Valid() {
		return model.Coordinate{}, fmt.Errorf("geolocation lookup returned out-of-range coordinate (%f, %f)", payload.Lat, payload.Lon)
	}
	return coord, nil
}
