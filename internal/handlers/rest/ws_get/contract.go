//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ws_get_test
package ws_get

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

type Authorizer interface {
	Authorize(ctx context.Context, caller entities.Caller, channel string) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
