//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ride_cancel_post_test
package ride_cancel_post

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
	CancelRide(ctx context.Context, caller entities.Caller, id string, reason string) (*entities.RideCancellation, error)
}
