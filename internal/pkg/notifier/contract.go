//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notifier_test
package notifier

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Publisher interface {
	Name() string
	Publish(ctx context.Context, event entities.Event) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
