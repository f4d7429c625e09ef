package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/routing"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const providerName = "osrm"

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 1 * time.Second
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxAttempts     = 3
)

const metersInKm = 1000.0

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

type Gateway struct {
	endpoint string
	client   httpClient
	retrier  retrier
}

func New(endpoint string, client httpClient) *Gateway {
	return NewWithRetrier(endpoint, client, backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
		MaxAttempts:     maxAttempts,
	}))
}

func NewWithRetrier(endpoint string, client httpClient, retrier retrier) *Gateway {
	return &Gateway{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
		retrier:  retrier,
	}
}

// RouteDistance маршрут origin -> stops... -> destination, километры по дорогам.
func (g *Gateway) RouteDistance(
	ctx context.Context,
	origin entities.Coordinate,
	destination entities.Coordinate,
	stops []entities.Coordinate,
) (float64, error) {
	url := g.routeURL(origin, destination, stops)

	var attempts uint64
	var meters float64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempts++
		var err error
		meters, err = g.fetch(ctx, url)
		return err
	})

	routing.Observe(providerName, attempts, time.Since(start).Seconds(), err)

	if err != nil {
		return 0, fmt.Errorf("gateway osrm, route distance: %w", err)
	}

	return meters / metersInKm, nil
}

func (g *Gateway) routeURL(origin, destination entities.Coordinate, stops []entities.Coordinate) string {
	points := make([]string, 0, len(stops)+2)
	points = append(points, lonLat(origin))
	for _, stop := range stops {
		points = append(points, lonLat(stop))
	}
	points = append(points, lonLat(destination))

	return g.endpoint + "/route/v1/driving/" + strings.Join(points, ";") + "?overview=false"
}

func (g *Gateway) fetch(ctx context.Context, url string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", routing.ErrProviderRejected, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", routing.ErrProviderUnhealthy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("%w: status %d", routing.ErrProviderUnhealthy, resp.StatusCode)
	}

	var out routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: decode: %w", routing.ErrProviderRejected, err)
	}

	// OSRM отвечает 400 с code=NoRoute, если точки не связаны дорогами
	if out.Code != "Ok" {
		if out.Code == "NoRoute" {
			return 0, routing.ErrNoRoute
		}
		return 0, fmt.Errorf("%w: %s %s", routing.ErrProviderRejected, out.Code, out.Message)
	}
	if len(out.Routes) == 0 {
		return 0, routing.ErrNoRoute
	}

	return out.Routes[0].Distance, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, routing.ErrProviderUnhealthy) && !errors.Is(err, context.Canceled)
}

func lonLat(c entities.Coordinate) string {
	return strconv.FormatFloat(c.Longitude, 'f', 6, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', 6, 64)
}
