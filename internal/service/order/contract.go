//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	List(ctx context.Context, filter entities.OrderListFilter, limit uint64) ([]entities.Order, error)
	// ListUnassigned заказы без райдера в указанных статусах, старые первыми.
	ListUnassigned(ctx context.Context, statuses []entities.OrderStatusType, limit uint64) ([]entities.Order, error)
}

type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Restaurant, error)
}

// RiderRepository CAS операции над записью райдера.
type RiderRepository interface {
	AssignJob(ctx context.Context, assignment entities.RiderAssignment) (*entities.Rider, error)
	ReleaseJob(ctx context.Context, release entities.RiderRelease) (*entities.Rider, error)
}

type RiderProfiles interface {
	EnsureProfile(ctx context.Context, caller entities.Caller) (*entities.Rider, error)
}

type Matcher interface {
	FindNearestRider(ctx context.Context, origin entities.Coordinate, radiusKm float64, mode entities.ServiceModeType, exclude ...int64) (*entities.Rider, error)
}

type Notifier interface {
	Notify(ctx context.Context, events ...entities.Event)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
