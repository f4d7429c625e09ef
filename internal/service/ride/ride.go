package ride

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/entities"
	"dispatch/internal/service/matcher"
	ridersvc "dispatch/internal/service/rider"
	"dispatch/pkg/logger"
)

const (
	DefaultMaxAssignAttempts = 3

	availableListLimit = 50
	dispatchBatchSize  = 50
)

type Config struct {
	RadiusKm          float64
	BaseFare          float64
	PerKmRate         float64
	MaxAssignAttempts int
}

type transition struct {
	ride   *entities.Ride
	events []entities.Event
}

type Service struct {
	repository Repository
	riders     RiderRepository
	profiles   RiderProfiles
	matcher    Matcher
	routes     RouteCalculator
	policy     CancellationPolicy
	notifier   Notifier
	txManager  TxManager
	log        handlerLogger
	cfg        Config
	now        func() time.Time
}

func New(
	repository Repository,
	riders RiderRepository,
	profiles RiderProfiles,
	matcher Matcher,
	routes RouteCalculator,
	policy CancellationPolicy,
	notifier Notifier,
	txManager TxManager,
	log handlerLogger,
	cfg Config,
) *Service {
	if cfg.RadiusKm <= 0 {
		cfg.RadiusKm = 10
	}
	if cfg.BaseFare <= 0 {
		cfg.BaseFare = DefaultBaseFare
	}
	if cfg.PerKmRate <= 0 {
		cfg.PerKmRate = DefaultPerKmRate
	}
	if cfg.MaxAssignAttempts <= 0 {
		cfg.MaxAssignAttempts = DefaultMaxAssignAttempts
	}

	return &Service{
		repository: repository,
		riders:     riders,
		profiles:   profiles,
		matcher:    matcher,
		routes:     routes,
		policy:     policy,
		notifier:   notifier,
		txManager:  txManager,
		log:        log,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create оформляет поездку: проверка блокировки, расстояние, тариф со списанием штрафа,
// затем диспетчеризация, если время подачи уже наступило.
func (s *Service) Create(ctx context.Context, caller entities.Caller, create entities.RideCreate) (*entities.RideDispatch, error) {
	if caller.Role != entities.RoleCustomer {
		return nil, ErrForbidden
	}
	if !isValidRoute(create.Pickup, create.Dropoff, create.Stops) {
		return nil, ErrInvalidLocation
	}
	if create.PaymentMethod == "" {
		create.PaymentMethod = entities.PaymentCash
	}
	if !isValidPaymentMethod(create.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	if err := s.policy.CheckSuspension(ctx, caller.AccountID); err != nil {
		return nil, fmt.Errorf("check suspension: %w", err)
	}

	// маршрут считается вне транзакции, провайдер может отвечать долго
	distance := round2(s.routes.RoadDistance(ctx, create.Pickup, create.Dropoff, create.Stops))
	estimated := EstimateFare(distance, s.cfg.BaseFare, s.cfg.PerKmRate)

	phone := create.CustomerPhone
	if phone == "" {
		phone = caller.Phone
	}

	now := s.now()
	var t *transition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		penalty, err := s.policy.ChargePendingPenalty(ctx, caller.AccountID)
		if err != nil {
			return fmt.Errorf("charge pending penalty: %w", err)
		}

		created, err := s.repository.Create(ctx, entities.Ride{
			ID:              uuid.NewString(),
			CustomerID:      caller.AccountID,
			CustomerName:    caller.Name,
			CustomerPhone:   phone,
			Pickup:          create.Pickup,
			Dropoff:         create.Dropoff,
			Stops:           create.Stops,
			DistanceKm:      distance,
			BaseFare:        s.cfg.BaseFare,
			PerKmRate:       s.cfg.PerKmRate,
			EstimatedFare:   estimated,
			ActualFare:      round2(estimated + penalty),
			CancellationFee: penalty,
			Status:          entities.RidePending,
			PaymentMethod:   create.PaymentMethod,
			PaymentStatus:   entities.PaymentPending,
			ScheduledTime:   create.ScheduledTime,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("create ride: %w", err)
		}

		t = &transition{ride: created}
		if !created.Due(now) {
			return nil
		}
		return s.dispatch(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	switch {
	case !t.ride.Due(now):
		RidesCreatedTotal.WithLabelValues("scheduled").Inc()
	case t.ride.RiderID != nil:
		RidesCreatedTotal.WithLabelValues("assigned").Inc()
	default:
		RidesCreatedTotal.WithLabelValues("unassigned").Inc()
	}

	if len(t.events) > 0 {
		s.notifier.Notify(ctx, t.events...)
	}

	return &entities.RideDispatch{
		Ride:     t.ride,
		Assigned: t.ride.RiderID != nil,
	}, nil
}

// CalculateFare считает стоимость без списания штрафа.
func (s *Service) CalculateFare(
	ctx context.Context,
	caller entities.Caller,
	pickup, dropoff entities.Coordinate,
	stops []entities.Coordinate,
) (*entities.FareQuote, error) {
	if !isValidRoute(pickup, dropoff, stops) {
		return nil, ErrInvalidLocation
	}

	var penalty float64
	if caller.Role == entities.RoleCustomer {
		var err error
		penalty, err = s.policy.PendingPenalty(ctx, caller.AccountID)
		if err != nil {
			return nil, fmt.Errorf("get pending penalty: %w", err)
		}
	}

	distance := round2(s.routes.RoadDistance(ctx, pickup, dropoff, stops))
	estimated := EstimateFare(distance, s.cfg.BaseFare, s.cfg.PerKmRate)

	return &entities.FareQuote{
		DistanceKm:     distance,
		BaseFare:       s.cfg.BaseFare,
		PerKmRate:      s.cfg.PerKmRate,
		EstimatedFare:  estimated,
		PendingPenalty: penalty,
		Total:          round2(estimated + penalty),
	}, nil
}

func (s *Service) GetRide(ctx context.Context, caller entities.Caller, id string) (*entities.Ride, error) {
	if !isValidID(id) {
		return nil, ErrInvalidRideID
	}

	ride, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ride: %w", err)
	}

	if caller.IsAdmin() || (caller.Role == entities.RoleCustomer && ride.CustomerID == caller.AccountID) {
		return ride, nil
	}

	allowed, err := s.isAssignedRider(ctx, caller, ride)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}
	return ride, nil
}

// UpdateStatus переходы назначенного райдера. Повтор текущего статуса ничего не меняет.
func (s *Service) UpdateStatus(
	ctx context.Context,
	caller entities.Caller,
	id string,
	status entities.RideStatusType,
) (*entities.Ride, error) {
	if !isValidID(id) {
		return nil, ErrInvalidRideID
	}
	if !isKnownStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if !riderRequestable(status) {
		return nil, fmt.Errorf("%w: %s cannot be requested by a rider", ErrInvalidTransition, status)
	}
	if caller.Role != entities.RoleRider {
		return nil, ErrForbidden
	}

	var t *transition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get ride: %w", err)
		}

		allowed, err := s.isAssignedRider(ctx, caller, current)
		if err != nil {
			return err
		}
		if !allowed {
			return fmt.Errorf("%w: only the assigned rider can update the ride", ErrForbidden)
		}

		t = &transition{ride: current}
		if current.Status == status {
			return nil
		}
		if !CanTransition(current.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
		}

		now := s.now()
		modify := entities.RideModify{
			ID:     &current.ID,
			Status: &status,
		}
		switch status {
		case entities.RidePickedUp:
			modify.PickedUpAt = &now
		case entities.RideCompleted:
			_, err := s.riders.ReleaseJob(ctx, entities.RiderRelease{
				RiderID:   *current.RiderID,
				Kind:      entities.JobRide,
				JobID:     current.ID,
				Completed: true,
			})
			if err != nil {
				return fmt.Errorf("release rider: %w", err)
			}

			paid := entities.PaymentCompleted
			modify.DroppedOffAt = &now
			modify.PaymentStatus = &paid
		}

		updated, err := s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update ride status: %w", err)
		}

		t.ride = updated
		t.events = statusEvents(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(t.events) > 0 {
		s.notifier.Notify(ctx, t.events...)
	}
	return t.ride, nil
}

// AcceptRide самоназначение райдера в режиме ride_service на ожидающую поездку.
func (s *Service) AcceptRide(ctx context.Context, caller entities.Caller, id string) (*entities.Ride, error) {
	if caller.Role != entities.RoleRider {
		return nil, ErrForbidden
	}
	if !isValidID(id) {
		return nil, ErrInvalidRideID
	}

	var t *transition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		rider, err := s.profiles.EnsureProfile(ctx, caller)
		if err != nil {
			return fmt.Errorf("ensure rider profile: %w", err)
		}
		if rider.ServiceMode != entities.ServiceModeRideService {
			return ErrWrongServiceMode
		}

		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get ride: %w", err)
		}
		if current.RiderID != nil {
			return ErrRideAlreadyAssigned
		}
		if current.Status != entities.RidePending {
			return fmt.Errorf("%w: ride is %s", ErrInvalidTransition, current.Status)
		}
		if !current.Due(s.now()) {
			return ErrRideNotDue
		}

		assigned, err := s.riders.AssignJob(ctx, entities.RiderAssignment{
			RiderID: rider.ID,
			Kind:    entities.JobRide,
			JobID:   current.ID,
		})
		if err != nil {
			return fmt.Errorf("assign rider: %w", err)
		}

		t = &transition{}
		if err := s.recordAssignment(ctx, t, current.ID, assigned); err != nil {
			return err
		}
		t.events = append(t.events, entities.NewEvent(
			entities.EventRiderAssigned,
			entities.CustomerChannel(t.ride.CustomerID),
			map[string]any{
				"ride_id":    t.ride.ID,
				"rider_name": assigned.Name,
			},
		))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, t.events...)
	return t.ride, nil
}

// CancelRide отмена клиентом или админом. Освобождение райдера и учет отмены
// выполняются в одной транзакции с записью поездки.
func (s *Service) CancelRide(
	ctx context.Context,
	caller entities.Caller,
	id string,
	reason string,
) (*entities.RideCancellation, error) {
	if !isValidID(id) {
		return nil, ErrInvalidRideID
	}
	if caller.Role != entities.RoleCustomer && !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	var (
		t       *transition
		outcome entities.PolicyOutcome
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get ride: %w", err)
		}
		if !caller.IsAdmin() && current.CustomerID != caller.AccountID {
			return fmt.Errorf("%w: ride belongs to another customer", ErrForbidden)
		}
		if current.Status.Terminal() {
			return fmt.Errorf("%w: ride is already %s", ErrInvalidTransition, current.Status)
		}

		if current.RiderID != nil {
			_, err := s.riders.ReleaseJob(ctx, entities.RiderRelease{
				RiderID: *current.RiderID,
				Kind:    entities.JobRide,
				JobID:   current.ID,
			})
			if err != nil && !errors.Is(err, ridersvc.ErrRiderNotAssigned) {
				return fmt.Errorf("release rider: %w", err)
			}
		}

		now := s.now()
		status := entities.RideCancelled
		modify := entities.RideModify{
			ID:          &current.ID,
			Status:      &status,
			CancelledAt: &now,
		}
		if reason = strings.TrimSpace(reason); reason != "" {
			modify.CancellationReason = &reason
		}

		updated, err := s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update ride status: %w", err)
		}

		outcome, err = s.policy.RecordCancellation(ctx, updated.CustomerID)
		if err != nil {
			return fmt.Errorf("record cancellation: %w", err)
		}

		t = &transition{ride: updated, events: statusEvents(updated)}
		if current.RiderID != nil {
			t.events = append(t.events, entities.NewEvent(
				entities.EventRideStatusUpdate,
				entities.RiderChannel(*current.RiderID),
				statusPayload(updated),
			))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, t.events...)
	return &entities.RideCancellation{
		Ride:    t.ride,
		Outcome: outcome,
	}, nil
}

// ListAvailableRides поездки для самоназначения, будущие по расписанию скрыты.
func (s *Service) ListAvailableRides(ctx context.Context, caller entities.Caller) ([]entities.Ride, error) {
	if caller.Role != entities.RoleRider {
		return nil, ErrForbidden
	}

	rides, err := s.repository.ListPendingDue(ctx, s.now(), availableListLimit)
	if err != nil {
		return nil, fmt.Errorf("list available rides: %w", err)
	}
	return rides, nil
}

// DispatchDueRides назначает райдеров на ожидающие поездки с наступившим временем подачи.
func (s *Service) DispatchDueRides(ctx context.Context) (int, error) {
	due, err := s.repository.ListPendingDue(ctx, s.now(), dispatchBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list due rides: %w", err)
	}

	assigned := 0
	for _, candidate := range due {
		var t *transition
		err := s.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := s.repository.GetByID(ctx, candidate.ID)
			if err != nil {
				return fmt.Errorf("get ride: %w", err)
			}
			if current.Status != entities.RidePending || current.RiderID != nil {
				return nil
			}

			t = &transition{ride: current}
			return s.dispatch(ctx, t)
		})
		if err != nil {
			s.log.Warn("ride dispatch failed",
				logger.NewField("ride_id", candidate.ID),
				logger.NewField("error", err),
			)
			continue
		}

		if t != nil && t.ride.RiderID != nil {
			assigned++
			s.notifier.Notify(ctx, t.events...)
		}
	}

	return assigned, nil
}

// dispatch ищет ближайшего райдера в режиме ride_service, поездка остается pending без кандидатов.
func (s *Service) dispatch(ctx context.Context, t *transition) error {
	log := s.log.With(logger.NewField("ride_id", t.ride.ID))

	var exclude []int64
	for attempt := 0; attempt < s.cfg.MaxAssignAttempts; attempt++ {
		candidate, err := s.matcher.FindNearestRider(
			ctx,
			t.ride.Pickup,
			s.cfg.RadiusKm,
			entities.ServiceModeRideService,
			exclude...,
		)
		if err != nil {
			switch {
			case errors.Is(err, matcher.ErrNoCandidateAvailable):
				log.Info("no rider available, ride stays pending")
				return nil
			case errors.Is(err, matcher.ErrInvalidInput):
				log.Warn("ride cannot be dispatched", logger.NewField("error", err))
				return nil
			default:
				return fmt.Errorf("find nearest rider: %w", err)
			}
		}

		assigned, err := s.riders.AssignJob(ctx, entities.RiderAssignment{
			RiderID:          candidate.ID,
			Kind:             entities.JobRide,
			JobID:            t.ride.ID,
			RequireAvailable: true,
		})
		if err != nil {
			if errors.Is(err, ridersvc.ErrRiderBusy) || errors.Is(err, ridersvc.ErrRiderUnavailable) {
				exclude = append(exclude, candidate.ID)
				continue
			}
			return fmt.Errorf("assign rider: %w", err)
		}

		if err := s.recordAssignment(ctx, t, t.ride.ID, assigned); err != nil {
			return err
		}
		t.events = append(t.events, entities.NewEvent(
			entities.EventNewRideRequest,
			entities.RiderChannel(assigned.ID),
			requestPayload(t.ride),
		))
		return nil
	}

	log.Warn("dispatch attempts exhausted, ride stays pending",
		logger.NewField("attempts", s.cfg.MaxAssignAttempts),
	)
	return nil
}

func (s *Service) recordAssignment(ctx context.Context, t *transition, rideID string, rider *entities.Rider) error {
	status := entities.RideAccepted
	updated, err := s.repository.Update(ctx, entities.RideModify{
		ID:           &rideID,
		Status:       &status,
		RiderID:      &rider.ID,
		RiderName:    &rider.Name,
		RiderPhone:   &rider.Phone,
		RiderVehicle: &rider.VehicleType,
	})
	if err != nil {
		return fmt.Errorf("record rider assignment: %w", err)
	}

	t.ride = updated
	t.events = append(t.events, statusEvents(updated)...)
	return nil
}

func (s *Service) isAssignedRider(ctx context.Context, caller entities.Caller, ride *entities.Ride) (bool, error) {
	if caller.Role != entities.RoleRider || ride.RiderID == nil {
		return false, nil
	}

	rider, err := s.profiles.EnsureProfile(ctx, caller)
	if err != nil {
		return false, fmt.Errorf("get rider profile: %w", err)
	}
	return rider.ID == *ride.RiderID, nil
}

func statusPayload(ride *entities.Ride) map[string]any {
	payload := map[string]any{
		"ride_id": ride.ID,
		"status":  ride.Status.String(),
	}
	if ride.RiderID != nil {
		payload["rider_id"] = *ride.RiderID
	}
	if ride.RiderName != nil {
		payload["rider_name"] = *ride.RiderName
	}
	if ride.RiderVehicle != nil {
		payload["rider_vehicle"] = *ride.RiderVehicle
	}
	return payload
}

func statusEvents(ride *entities.Ride) []entities.Event {
	payload := statusPayload(ride)
	return []entities.Event{
		entities.NewEvent(entities.EventRideStatusUpdate, entities.RideChannel(ride.ID), payload),
		entities.NewEvent(entities.EventRideStatusUpdate, entities.CustomerChannel(ride.CustomerID), payload),
	}
}

func requestPayload(ride *entities.Ride) map[string]any {
	stops := make([]map[string]any, 0, len(ride.Stops))
	for _, stop := range ride.Stops {
		stops = append(stops, stop.Payload())
	}

	return map[string]any{
		"ride_id":        ride.ID,
		"customer_name":  ride.CustomerName,
		"pickup":         ride.Pickup.Payload(),
		"dropoff":        ride.Dropoff.Payload(),
		"stops":          stops,
		"distance_km":    ride.DistanceKm,
		"fare":           ride.ActualFare,
		"payment_method": ride.PaymentMethod.String(),
	}
}
