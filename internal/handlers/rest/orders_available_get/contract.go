//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_available_get_test
package orders_available_get

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
	ListAvailableForRiders(ctx context.Context, caller entities.Caller) ([]entities.Order, error)
}
