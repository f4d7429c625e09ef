package google

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/routing"
)

const providerName = "google"

type Gateway struct {
	client directionsClient
}

// NewClient клиент Directions API, ключ обязателен.
func NewClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return client, nil
}

func New(client directionsClient) *Gateway {
	return &Gateway{
		client: client,
	}
}

// RouteDistance сумма длин всех участков первого маршрута, stops идут как waypoints.
// Клиент maps сам ограничивает частоту запросов, ретраев здесь нет.
func (g *Gateway) RouteDistance(
	ctx context.Context,
	origin entities.Coordinate,
	destination entities.Coordinate,
	stops []entities.Coordinate,
) (float64, error) {
	req := &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
	}
	for _, stop := range stops {
		req.Waypoints = append(req.Waypoints, latLng(stop))
	}

	start := time.Now()
	routes, _, err := g.client.Directions(ctx, req)
	routing.Observe(providerName, 1, time.Since(start).Seconds(), err)
	if err != nil {
		return 0, fmt.Errorf("gateway google, directions: %w: %w", routing.ErrProviderUnhealthy, err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, routing.ErrNoRoute
	}

	var meters int
	for _, leg := range routes[0].Legs {
		if leg == nil {
			continue
		}
		meters += leg.Distance.Meters
	}

	return float64(meters) / 1000, nil
}

func latLng(c entities.Coordinate) string {
	return strconv.FormatFloat(c.Latitude, 'f', 6, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', 6, 64)
}
