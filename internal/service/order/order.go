package order

import (
	"context"
	"errors"
	"fmt"
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
	callerListLimit    = 100
	dispatchBatchSize  = 50
)

type Config struct {
	RadiusKm          float64
	MaxAssignAttempts int
}

// transition накапливает результат перехода внутри транзакции,
// события уходят только после коммита.
type transition struct {
	order  *entities.Order
	events []entities.Event
}

type effectFn func(ctx context.Context, t *transition, status entities.OrderStatusType) error

type Service struct {
	repository  Repository
	restaurants RestaurantRepository
	riders      RiderRepository
	profiles    RiderProfiles
	matcher     Matcher
	notifier    Notifier
	txManager   TxManager
	log         handlerLogger
	cfg         Config
	effects     map[entities.OrderStatusType]effectFn
}

func New(
	repository Repository,
	restaurants RestaurantRepository,
	riders RiderRepository,
	profiles RiderProfiles,
	matcher Matcher,
	notifier Notifier,
	txManager TxManager,
	log handlerLogger,
	cfg Config,
) *Service {
	if cfg.RadiusKm <= 0 {
		cfg.RadiusKm = 10
	}
	if cfg.MaxAssignAttempts <= 0 {
		cfg.MaxAssignAttempts = DefaultMaxAssignAttempts
	}

	s := &Service{
		repository:  repository,
		restaurants: restaurants,
		riders:      riders,
		profiles:    profiles,
		matcher:     matcher,
		notifier:    notifier,
		txManager:   txManager,
		log:         log,
		cfg:         cfg,
	}
	s.effects = map[entities.OrderStatusType]effectFn{
		entities.OrderReadyForPickup: s.readyForPickup,
		entities.OrderDelivered:      s.delivered,
		entities.OrderCancelled:      s.cancelled,
	}
	return s
}

func (s *Service) Create(ctx context.Context, caller entities.Caller, create entities.OrderCreate) (*entities.Order, error) {
	if caller.Role != entities.RoleCustomer {
		return nil, ErrForbidden
	}
	if !isValidID(create.RestaurantID) {
		return nil, ErrInvalidRestaurantID
	}
	if !isValidItems(create.Items) {
		return nil, ErrInvalidItems
	}
	if !create.DeliveryAddress.Valid() {
		return nil, ErrInvalidDeliveryAddress
	}
	deliveryFee, ok := resolveDeliveryFee(create)
	if !ok {
		return nil, ErrInvalidDeliveryFee
	}
	if create.PaymentMethod == "" {
		create.PaymentMethod = entities.PaymentCash
	}
	if !isValidPaymentMethod(create.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	restaurant, err := s.restaurants.GetByID(ctx, create.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if !restaurant.IsOpen {
		return nil, ErrRestaurantClosed
	}

	subtotal := 0.0
	for _, item := range create.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = roundCents(subtotal)

	phone := create.CustomerPhone
	if phone == "" {
		phone = caller.Phone
	}

	now := time.Now().UTC()
	created, err := s.repository.Create(ctx, entities.Order{
		ID:                  uuid.NewString(),
		CustomerID:          caller.AccountID,
		CustomerName:        caller.Name,
		CustomerPhone:       phone,
		RestaurantID:        restaurant.ID,
		RestaurantName:      restaurant.Name,
		RestaurantLocation:  restaurant.Location,
		Items:               create.Items,
		Subtotal:            subtotal,
		DeliveryFee:         deliveryFee,
		RiderFee:            roundCents(create.RiderFee),
		AppFee:              roundCents(create.AppFee),
		Total:               roundCents(subtotal + deliveryFee),
		DeliveryAddress:     create.DeliveryAddress,
		Status:              entities.OrderPreparing,
		PaymentMethod:       create.PaymentMethod,
		PaymentStatus:       entities.PaymentPending,
		SpecialInstructions: create.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.notifier.Notify(ctx, entities.NewEvent(
		entities.EventNewOrder,
		entities.RestaurantChannel(created.RestaurantID),
		map[string]any{
			"order_id":      created.ID,
			"customer_name": created.CustomerName,
			"items":         len(created.Items),
			"total":         created.Total,
			"status":        created.Status.String(),
		},
	))

	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, caller entities.Caller, id string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if caller.IsAdmin() || (caller.Role == entities.RoleCustomer && order.CustomerID == caller.AccountID) {
		return order, nil
	}

	allowed, err := s.isRestaurantOwner(ctx, caller, order)
	if err != nil {
		return nil, err
	}
	if !allowed {
		allowed, err = s.isAssignedRider(ctx, caller, order)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return order, nil
}

// UpdateStatus применяет переход по таблице. Повтор текущего статуса ничего не делает,
// кроме повторной диспетчеризации неназначенного ready_for_pickup.
func (s *Service) UpdateStatus(
	ctx context.Context,
	caller entities.Caller,
	id string,
	status entities.OrderStatusType,
) (*entities.OrderDispatch, error) {
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}
	if !isKnownStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if !requestable(status) {
		return nil, fmt.Errorf("%w: %s cannot be requested directly", ErrInvalidTransition, status)
	}

	var t *transition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if err := s.authorizeTransition(ctx, caller, current, status); err != nil {
			return err
		}

		t = &transition{order: current}

		if current.Status == status {
			if status == entities.OrderReadyForPickup && current.RiderID == nil {
				return s.dispatch(ctx, t)
			}
			return nil
		}
		if status == entities.OrderReadyForPickup && current.Status == entities.OrderRiderAssigned {
			return nil
		}

		if !CanTransition(current.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
		}

		effect, ok := s.effects[status]
		if !ok {
			effect = s.applyStatus
		}
		return effect(ctx, t, status)
	})
	if err != nil {
		return nil, err
	}

	if len(t.events) > 0 {
		s.notifier.Notify(ctx, t.events...)
	}

	return &entities.OrderDispatch{
		Order:    t.order,
		Assigned: t.order.RiderID != nil,
	}, nil
}

// AcceptDelivery самоназначение райдера на готовый неназначенный заказ.
func (s *Service) AcceptDelivery(ctx context.Context, caller entities.Caller, id string) (*entities.Order, error) {
	if caller.Role != entities.RoleRider {
		return nil, ErrForbidden
	}
	if !isValidID(id) {
		return nil, ErrInvalidOrderID
	}

	var t *transition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		rider, err := s.profiles.EnsureProfile(ctx, caller)
		if err != nil {
			return fmt.Errorf("ensure rider profile: %w", err)
		}

		current, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if current.RiderID != nil {
			return ErrOrderAlreadyAssigned
		}
		if current.Status != entities.OrderReadyForPickup {
			return fmt.Errorf("%w: order is %s, not ready for pickup", ErrInvalidTransition, current.Status)
		}

		assigned, err := s.riders.AssignJob(ctx, entities.RiderAssignment{
			RiderID: rider.ID,
			Kind:    entities.JobOrder,
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
			entities.CustomerChannel(t.order.CustomerID),
			map[string]any{
				"order_id":   t.order.ID,
				"rider_name": assigned.Name,
			},
		))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, t.events...)
	return t.order, nil
}

// ListForCaller заказы вызывающего по роли: свои для клиента, своих ресторанов
// для владельца, назначенные для райдера. Остальным роли пустой список.
func (s *Service) ListForCaller(ctx context.Context, caller entities.Caller) ([]entities.Order, error) {
	var filter entities.OrderListFilter
	switch caller.Role {
	case entities.RoleCustomer:
		filter.CustomerID = &caller.AccountID
	case entities.RoleRestaurant:
		filter.RestaurantOwnerID = &caller.AccountID
	case entities.RoleRider:
		filter.RiderAccountID = &caller.AccountID
	default:
		return []entities.Order{}, nil
	}

	orders, err := s.repository.List(ctx, filter, callerListLimit)
	if err != nil {
		return nil, fmt.Errorf("list caller orders: %w", err)
	}
	return orders, nil
}

// ListAvailableForRiders заказы без райдера, которые скоро будут готовы или уже готовы.
func (s *Service) ListAvailableForRiders(ctx context.Context, caller entities.Caller) ([]entities.Order, error) {
	if caller.Role != entities.RoleRider {
		return nil, ErrForbidden
	}

	orders, err := s.repository.ListUnassigned(ctx, []entities.OrderStatusType{
		entities.OrderPreparing,
		entities.OrderReadyForPickup,
	}, availableListLimit)
	if err != nil {
		return nil, fmt.Errorf("list available orders: %w", err)
	}
	return orders, nil
}

// RetryPendingDispatch повторяет поиск райдера для готовых неназначенных заказов, возвращает число назначений.
func (s *Service) RetryPendingDispatch(ctx context.Context) (int, error) {
	pending, err := s.repository.ListUnassigned(ctx, []entities.OrderStatusType{
		entities.OrderReadyForPickup,
	}, dispatchBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list orders awaiting dispatch: %w", err)
	}

	assigned := 0
	for _, candidate := range pending {
		var t *transition
		err := s.txManager.Do(ctx, func(ctx context.Context) error {
			current, err := s.repository.GetByID(ctx, candidate.ID)
			if err != nil {
				return fmt.Errorf("get order: %w", err)
			}
			if current.Status != entities.OrderReadyForPickup || current.RiderID != nil {
				return nil
			}

			t = &transition{order: current}
			return s.dispatch(ctx, t)
		})
		if err != nil {
			s.log.Warn("order dispatch retry failed",
				logger.NewField("order_id", candidate.ID),
				logger.NewField("error", err),
			)
			continue
		}

		if t != nil && t.order.RiderID != nil {
			assigned++
			s.notifier.Notify(ctx, t.events...)
		}
	}

	return assigned, nil
}

func (s *Service) applyStatus(ctx context.Context, t *transition, status entities.OrderStatusType) error {
	updated, err := s.repository.Update(ctx, entities.OrderModify{
		ID:     &t.order.ID,
		Status: &status,
	})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	t.order = updated
	t.events = append(t.events, statusEvents(updated)...)
	return nil
}

func (s *Service) readyForPickup(ctx context.Context, t *transition, status entities.OrderStatusType) error {
	updated, err := s.repository.Update(ctx, entities.OrderModify{
		ID:     &t.order.ID,
		Status: &status,
	})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	t.order = updated

	if err := s.dispatch(ctx, t); err != nil {
		return err
	}

	// без райдера клиент видит ready_for_pickup, с райдером событие уже добавил dispatch
	if t.order.RiderID == nil {
		t.events = append(t.events, statusEvents(t.order)...)
	}
	return nil
}

func (s *Service) delivered(ctx context.Context, t *transition, status entities.OrderStatusType) error {
	if t.order.RiderID == nil {
		return ErrRiderNotAssigned
	}

	_, err := s.riders.ReleaseJob(ctx, entities.RiderRelease{
		RiderID:   *t.order.RiderID,
		Kind:      entities.JobOrder,
		JobID:     t.order.ID,
		Completed: true,
	})
	if err != nil {
		return fmt.Errorf("release rider: %w", err)
	}

	paid := entities.PaymentCompleted
	updated, err := s.repository.Update(ctx, entities.OrderModify{
		ID:            &t.order.ID,
		Status:        &status,
		PaymentStatus: &paid,
	})
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	t.order = updated
	t.events = append(t.events, statusEvents(updated)...)
	return nil
}

func (s *Service) cancelled(ctx context.Context, t *transition, status entities.OrderStatusType) error {
	if t.order.RiderID != nil {
		_, err := s.riders.ReleaseJob(ctx, entities.RiderRelease{
			RiderID: *t.order.RiderID,
			Kind:    entities.JobOrder,
			JobID:   t.order.ID,
		})
		if err != nil && !errors.Is(err, ridersvc.ErrRiderNotAssigned) {
			return fmt.Errorf("release rider: %w", err)
		}
	}

	return s.applyStatus(ctx, t, status)
}

// dispatch ищет ближайшего райдера и назначает его CAS-ом. Проигравший гонку
// райдер исключается из следующей попытки. Отсутствие кандидатов не ошибка.
// Конфликт сериализации на CAS прерывает транзакцию, её целиком повторяет txManager.
func (s *Service) dispatch(ctx context.Context, t *transition) error {
	log := s.log.With(logger.NewField("order_id", t.order.ID))

	var exclude []int64
	for attempt := 0; attempt < s.cfg.MaxAssignAttempts; attempt++ {
		candidate, err := s.matcher.FindNearestRider(
			ctx,
			t.order.RestaurantLocation,
			s.cfg.RadiusKm,
			entities.ServiceModeFoodDelivery,
			exclude...,
		)
		if err != nil {
			switch {
			case errors.Is(err, matcher.ErrNoCandidateAvailable):
				log.Info("no rider available, order stays unassigned")
				return nil
			case errors.Is(err, matcher.ErrInvalidInput):
				log.Warn("order cannot be dispatched", logger.NewField("error", err))
				return nil
			default:
				return fmt.Errorf("find nearest rider: %w", err)
			}
		}

		assigned, err := s.riders.AssignJob(ctx, entities.RiderAssignment{
			RiderID:          candidate.ID,
			Kind:             entities.JobOrder,
			JobID:            t.order.ID,
			RequireAvailable: true,
		})
		if err != nil {
			if errors.Is(err, ridersvc.ErrRiderBusy) || errors.Is(err, ridersvc.ErrRiderUnavailable) {
				exclude = append(exclude, candidate.ID)
				continue
			}
			return fmt.Errorf("assign rider: %w", err)
		}

		if err := s.recordAssignment(ctx, t, t.order.ID, assigned); err != nil {
			return err
		}
		t.events = append(t.events, entities.NewEvent(
			entities.EventNewAssignment,
			entities.RiderChannel(assigned.ID),
			assignmentPayload(t.order),
		))
		return nil
	}

	log.Warn("dispatch attempts exhausted, order stays unassigned",
		logger.NewField("attempts", s.cfg.MaxAssignAttempts),
	)
	return nil
}

func (s *Service) recordAssignment(ctx context.Context, t *transition, orderID string, rider *entities.Rider) error {
	status := entities.OrderRiderAssigned
	updated, err := s.repository.Update(ctx, entities.OrderModify{
		ID:         &orderID,
		Status:     &status,
		RiderID:    &rider.ID,
		RiderName:  &rider.Name,
		RiderPhone: &rider.Phone,
	})
	if err != nil {
		return fmt.Errorf("record rider assignment: %w", err)
	}

	t.order = updated
	t.events = append(t.events, statusEvents(updated)...)
	return nil
}

func (s *Service) authorizeTransition(
	ctx context.Context,
	caller entities.Caller,
	order *entities.Order,
	status entities.OrderStatusType,
) error {
	if caller.IsAdmin() {
		return nil
	}

	var (
		allowed bool
		err     error
	)
	switch status {
	case entities.OrderReadyForPickup:
		allowed, err = s.isRestaurantOwner(ctx, caller, order)
	case entities.OrderPickedUp, entities.OrderOutForDelivery, entities.OrderDelivered:
		allowed, err = s.isAssignedRider(ctx, caller, order)
	case entities.OrderCancelled:
		allowed = caller.Role == entities.RoleCustomer && order.CustomerID == caller.AccountID
		if !allowed {
			allowed, err = s.isRestaurantOwner(ctx, caller, order)
		}
	}
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: %s cannot set %s", ErrForbidden, caller.Role, status)
	}
	return nil
}

func (s *Service) isRestaurantOwner(ctx context.Context, caller entities.Caller, order *entities.Order) (bool, error) {
	if caller.Role != entities.RoleRestaurant {
		return false, nil
	}

	restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID)
	if err != nil {
		if errors.Is(err, ErrRestaurantNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get restaurant: %w", err)
	}
	return restaurant.OwnerID == caller.AccountID, nil
}

func (s *Service) isAssignedRider(ctx context.Context, caller entities.Caller, order *entities.Order) (bool, error) {
	if caller.Role != entities.RoleRider || order.RiderID == nil {
		return false, nil
	}

	rider, err := s.profiles.EnsureProfile(ctx, caller)
	if err != nil {
		return false, fmt.Errorf("get rider profile: %w", err)
	}
	return rider.ID == *order.RiderID, nil
}

func statusEvents(order *entities.Order) []entities.Event {
	payload := map[string]any{
		"order_id": order.ID,
		"status":   order.Status.String(),
	}
	if order.RiderID != nil {
		payload["rider_id"] = *order.RiderID
	}
	if order.RiderName != nil {
		payload["rider_name"] = *order.RiderName
	}

	return []entities.Event{
		entities.NewEvent(entities.EventOrderStatusUpdate, entities.OrderChannel(order.ID), payload),
		entities.NewEvent(entities.EventOrderStatusUpdate, entities.CustomerChannel(order.CustomerID), payload),
	}
}

func assignmentPayload(order *entities.Order) map[string]any {
	return map[string]any{
		"order_id":        order.ID,
		"restaurant_id":   order.RestaurantID,
		"restaurant_name": order.RestaurantName,
		"pickup":          order.RestaurantLocation.Payload(),
		"dropoff":         order.DeliveryAddress.Payload(),
		"total":           order.Total,
		"payment_method":  order.PaymentMethod.String(),
	}
}
