package subscription

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dispatch/internal/entities"
	"dispatch/internal/service/order"
	"dispatch/internal/service/ride"
)

// Authorizer решает, может ли вызывающий слушать канал событий.
// Доступ к каналу заказа или поездки совпадает с доступом на чтение самой сущности.
type Authorizer struct {
	orders      OrderReader
	rides       RideReader
	riders      RiderProfiles
	restaurants RestaurantRepository
}

func New(orders OrderReader, rides RideReader, riders RiderProfiles, restaurants RestaurantRepository) *Authorizer {
	return &Authorizer{
		orders:      orders,
		rides:       rides,
		riders:      riders,
		restaurants: restaurants,
	}
}

func (a *Authorizer) Authorize(ctx context.Context, caller entities.Caller, channel string) error {
	kind, id, ok := strings.Cut(channel, "_")
	if !ok || id == "" {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}

	switch kind {
	case "customer":
		if caller.IsAdmin() || (caller.Role == entities.RoleCustomer && caller.AccountID == id) {
			return nil
		}
		return ErrForbidden

	case "order":
		_, err := a.orders.GetOrder(ctx, caller, id)
		return mapReadError(err, order.ErrForbidden, order.ErrOrderNotFound)

	case "ride":
		_, err := a.rides.GetRide(ctx, caller, id)
		return mapReadError(err, ride.ErrForbidden, ride.ErrRideNotFound)

	case "rider":
		return a.authorizeRider(ctx, caller, id)

	case "restaurant":
		return a.authorizeRestaurant(ctx, caller, id)
	}

	return fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
}

func (a *Authorizer) authorizeRider(ctx context.Context, caller entities.Caller, id string) error {
	riderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: rider id %q", ErrUnknownChannel, id)
	}
	if caller.IsAdmin() {
		return nil
	}
	if caller.Role != entities.RoleRider {
		return ErrForbidden
	}

	profile, err := a.riders.EnsureProfile(ctx, caller)
	if err != nil {
		return fmt.Errorf("get rider profile: %w", err)
	}
	if profile.ID != riderID {
		return ErrForbidden
	}
	return nil
}

func (a *Authorizer) authorizeRestaurant(ctx context.Context, caller entities.Caller, id string) error {
	if caller.IsAdmin() {
		return nil
	}
	if caller.Role != entities.RoleRestaurant {
		return ErrForbidden
	}

	restaurant, err := a.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, order.ErrRestaurantNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("get restaurant: %w", err)
	}
	if restaurant.OwnerID != caller.AccountID {
		return ErrForbidden
	}
	return nil
}

// mapReadError отказ в чтении и отсутствие сущности для подписки неразличимы.
func mapReadError(err error, forbidden, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, forbidden), errors.Is(err, notFound):
		return ErrForbidden
	default:
		return err
	}
}
