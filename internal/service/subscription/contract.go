//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=subscription_test
package subscription

import (
	"context"

	"dispatch/internal/entities"
)

type OrderReader interface {
	GetOrder(ctx context.Context, caller entities.Caller, id string) (*entities.Order, error)
}

type RideReader interface {
	GetRide(ctx context.Context, caller entities.Caller, id string) (*entities.Ride, error)
}

type RiderProfiles interface {
	EnsureProfile(ctx context.Context, caller entities.Caller) (*entities.Rider, error)
}

type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Restaurant, error)
}
