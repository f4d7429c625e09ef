package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

const DefaultRoutingTimeout = 10 * time.Second

type Calculator struct {
	provider RoutingProvider
	timeout  time.Duration
	log      handlerLogger
}

// New provider может быть nil, тогда дорожное расстояние всегда считается по haversine.
func New(provider RoutingProvider, timeout time.Duration, log handlerLogger) *Calculator {
	if timeout <= 0 {
		timeout = DefaultRoutingTimeout
	}

	return &Calculator{
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

func (c *Calculator) Distance(a, b entities.Coordinate) float64 {
	return Haversine(a, b)
}

// RoadDistance никогда не возвращает ошибку: любой сбой провайдера
// заменяется расстоянием pickup -> dropoff по прямой, промежуточные точки при этом игнорируются.
func (c *Calculator) RoadDistance(
	ctx context.Context,
	origin entities.Coordinate,
	destination entities.Coordinate,
	stops []entities.Coordinate,
) float64 {
	if c.provider == nil {
		RoutingFallbackTotal.WithLabelValues("no_provider").Inc()
		return Haversine(origin, destination)
	}

	km, err := c.routeDistance(ctx, origin, destination, stops)
	if err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		} else if errors.Is(err, ErrInvalidProviderDistance) {
			reason = "invalid_distance"
		}
		RoutingFallbackTotal.WithLabelValues(reason).Inc()

		c.log.Warn("road distance fallback to haversine",
			logger.NewField("reason", reason),
			logger.NewField("error", err),
		)
		return Haversine(origin, destination)
	}

	return km
}

func (c *Calculator) routeDistance(
	ctx context.Context,
	origin entities.Coordinate,
	destination entities.Coordinate,
	stops []entities.Coordinate,
) (float64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	km, err := c.provider.RouteDistance(ctxWithTimeout, origin, destination, stops)
	if err != nil {
		if ctxErr := ctxWithTimeout.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrExternalProviderFailure, err)
	}

	if !isValidDistance(km) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidProviderDistance, km)
	}

	return km, nil
}
