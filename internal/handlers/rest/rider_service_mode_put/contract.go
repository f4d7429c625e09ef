//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_service_mode_put_test
package rider_service_mode_put

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
	SetServiceMode(ctx context.Context, caller entities.Caller, mode entities.ServiceModeType) (*entities.Rider, error)
}
