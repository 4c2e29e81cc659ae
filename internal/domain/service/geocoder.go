package service

import "context"

// Geocoder defines the interface for turning coordinates into a
// human-readable pickup address.
type Geocoder interface {
	// ReverseGeocode resolves a latitude/longitude pair to a display address.
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
