//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_availability_put_test
package rider_availability_put

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
	SetAvailability(ctx context.Context, caller entities.Caller, accepting bool) (*entities.Rider, error)
}
