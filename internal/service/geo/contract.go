//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=geo_test
package geo

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// RoutingProvider внешний движок маршрутов, возвращает километры по дорогам.
type RoutingProvider interface {
	RouteDistance(ctx context.Context, origin entities.Coordinate, destination entities.Coordinate, stops []entities.Coordinate) (float64, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
