// Package geocode resolves coordinates to display addresses through the
// Nominatim reverse-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lifelink/config"
	"lifelink/internal/domain/service"
	"lifelink/internal/errors"
)

const defaultTimeout = 5 * time.Second

type nominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// New creates a Nominatim-backed Geocoder from configuration.
func New(cfg *config.Config) (service.Geocoder, error) {
	if cfg.Geocoder == nil || cfg.Geocoder.BaseURL == "" {
		return nil, errors.New("geocoder base URL must be configured")
	}

	timeout := cfg.Geocoder.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &nominatimGeocoder{
		baseURL: cfg.Geocoder.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// reverseResponse is the subset of the Nominatim payload we consume.
type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode resolves a latitude/longitude pair to a display address.
func (g *nominatimGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lon))

	endpoint := g.baseURL + "/reverse?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build reverse geocode request")
	}
	// Nominatim's usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "lifelink/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "reverse geocode request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Wrap(err, "failed to decode reverse geocode response")
	}
	if payload.DisplayName == "" {
		return "", errors.New("reverse geocode returned no address")
	}

	return payload.DisplayName, nil
}
