package rider

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type Rider struct {
	repository Repository
	orders     OrderReader
	rides      RideReader
	notifier   Notifier
	log        handlerLogger
}

func New(
	repository Repository,
	orders OrderReader,
	rides RideReader,
	notifier Notifier,
	log handlerLogger,
) *Rider {
	return &Rider{
		repository: repository,
		orders:     orders,
		rides:      rides,
		notifier:   notifier,
		log:        log,
	}
}

// EnsureProfile возвращает профиль райдера, создавая его при первом обращении.
func (s *Rider) EnsureProfile(ctx context.Context, caller entities.Caller) (*entities.Rider, error) {
	if caller.Role != entities.RoleRider {
		return nil, ErrForbidden
	}

	rider, err := s.repository.GetByAccountID(ctx, caller.AccountID)
	if err == nil {
		return rider, nil
	}
	if !errors.Is(err, ErrRiderNotFound) {
		return nil, fmt.Errorf("get rider profile: %w", err)
	}

	vehicle := entities.DefaultVehicleType
	status := entities.RiderOffline
	accepting := false
	mode := entities.ServiceModeFoodDelivery
	rider, created, err := s.repository.CreateIfAbsent(ctx, entities.RiderModify{
		AccountID:   &caller.AccountID,
		Name:        &caller.Name,
		Phone:       &caller.Phone,
		VehicleType: &vehicle,
		Status:      &status,
		IsAvailable: &accepting,
		ServiceMode: &mode,
	})
	if err != nil {
		return nil, fmt.Errorf("create rider profile: %w", err)
	}
	// параллельный запрос успел создать профиль
	if !created {
		return rider, nil
	}

	s.log.Info("rider profile created",
		logger.NewField("rider_id", rider.ID),
		logger.NewField("account_id", caller.AccountID),
	)
	return rider, nil
}

// UpdateLocation сохраняет координаты и отправляет их клиенту активного заказа или поездки.
func (s *Rider) UpdateLocation(ctx context.Context, caller entities.Caller, location entities.Coordinate) (*entities.Rider, error) {
	if !location.Valid() {
		return nil, ErrInvalidLocation
	}

	current, err := s.EnsureProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	rider, err := s.repository.Update(ctx, entities.RiderModify{
		ID:       &current.ID,
		Location: &location,
	})
	if err != nil {
		return nil, fmt.Errorf("update rider location: %w", err)
	}

	s.pushLocation(ctx, rider, location)
	return rider, nil
}

func (s *Rider) SetAvailability(ctx context.Context, caller entities.Caller, accepting bool) (*entities.Rider, error) {
	current, err := s.EnsureProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	rider, err := s.repository.SetAvailability(ctx, current.ID, accepting)
	if err != nil {
		return nil, fmt.Errorf("set rider availability: %w", err)
	}
	return rider, nil
}

// SetServiceMode переключение запрещено, пока у райдера есть активная работа.
func (s *Rider) SetServiceMode(ctx context.Context, caller entities.Caller, mode entities.ServiceModeType) (*entities.Rider, error) {
	if !isValidServiceMode(mode) {
		return nil, ErrInvalidServiceMode
	}

	current, err := s.EnsureProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if current.ServiceMode == mode {
		return current, nil
	}
	if current.HasActiveJob() {
		return nil, ErrRiderBusy
	}

	rider, err := s.repository.Update(ctx, entities.RiderModify{
		ID:          &current.ID,
		ServiceMode: &mode,
	})
	if err != nil {
		return nil, fmt.Errorf("set rider service mode: %w", err)
	}
	return rider, nil
}

func (s *Rider) pushLocation(ctx context.Context, rider *entities.Rider, location entities.Coordinate) {
	payload := map[string]any{
		"rider_id": rider.ID,
		"location": location.Payload(),
	}

	switch {
	case rider.CurrentOrderID != nil:
		order, err := s.orders.GetByID(ctx, *rider.CurrentOrderID)
		if err != nil {
			s.log.Warn("skip location push: active order lookup failed",
				logger.NewField("rider_id", rider.ID),
				logger.NewField("order_id", *rider.CurrentOrderID),
				logger.NewField("error", err),
			)
			return
		}
		payload["order_id"] = order.ID
		s.notifier.Notify(ctx,
			entities.NewEvent(entities.EventRiderLocationUpdate, entities.CustomerChannel(order.CustomerID), payload),
			entities.NewEvent(entities.EventRiderLocationUpdate, entities.OrderChannel(order.ID), payload),
		)
	case rider.CurrentRideID != nil:
		ride, err := s.rides.GetByID(ctx, *rider.CurrentRideID)
		if err != nil {
			s.log.Warn("skip location push: active ride lookup failed",
				logger.NewField("rider_id", rider.ID),
				logger.NewField("ride_id", *rider.CurrentRideID),
				logger.NewField("error", err),
			)
			return
		}
		payload["ride_id"] = ride.ID
		s.notifier.Notify(ctx,
			entities.NewEvent(entities.EventRiderLocationUpdate, entities.CustomerChannel(ride.CustomerID), payload),
			entities.NewEvent(entities.EventRiderLocationUpdate, entities.RideChannel(ride.ID), payload),
		)
	}
}
