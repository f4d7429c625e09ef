//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ride_test
package ride

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, ride entities.Ride) (*entities.Ride, error)
	GetByID(ctx context.Context, id string) (*entities.Ride, error)
	Update(ctx context.Context, rideModify entities.RideModify) (*entities.Ride, error)
	// ListPendingDue поездки в pending без райдера, у которых время подачи наступило к dueAt.
	ListPendingDue(ctx context.Context, dueAt time.Time, limit uint64) ([]entities.Ride, error)
}

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

type RouteCalculator interface {
	RoadDistance(ctx context.Context, origin, destination entities.Coordinate, stops []entities.Coordinate) float64
}

type CancellationPolicy interface {
	CheckSuspension(ctx context.Context, customerID string) error
	PendingPenalty(ctx context.Context, customerID string) (float64, error)
	ChargePendingPenalty(ctx context.Context, customerID string) (float64, error)
	RecordCancellation(ctx context.Context, customerID string) (entities.PolicyOutcome, error)
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
