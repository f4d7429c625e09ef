//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=google_test
package google

import (
	"context"

	"googlemaps.github.io/maps"
)

type directionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}
