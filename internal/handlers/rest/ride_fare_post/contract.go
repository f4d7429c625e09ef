//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ride_fare_post_test
package ride_fare_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CalculateFare(ctx context.Context, caller entities.Caller, pickup, dropoff entities.Coordinate, stops []entities.Coordinate) (*entities.FareQuote, error)
}
