//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_test
package rider

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Repository interface {
	// CreateIfAbsent возвращает true вторым результатом, если профиль создан этим вызовом.
	CreateIfAbsent(ctx context.Context, riderModify entities.RiderModify) (*entities.Rider, bool, error)
	GetByAccountID(ctx context.Context, accountID string) (*entities.Rider, error)
	Update(ctx context.Context, riderModify entities.RiderModify) (*entities.Rider, error)
	// SetAvailability меняет is_available, статус трогает только у свободного райдера.
	SetAvailability(ctx context.Context, id int64, accepting bool) (*entities.Rider, error)
}

type OrderReader interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
}

type RideReader interface {
	GetByID(ctx context.Context, id string) (*entities.Ride, error)
}

type Notifier interface {
	Notify(ctx context.Context, events ...entities.Event)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
