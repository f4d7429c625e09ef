package order

import "dispatch/internal/entities"

// allowedTransitions вариант auto-accept: заказ создается сразу в preparing.
// pending, payment_pending, paid и accepted известны, но переходов из них нет.
var allowedTransitions = map[entities.OrderStatusType][]entities.OrderStatusType{
	entities.OrderPreparing:      {entities.OrderReadyForPickup, entities.OrderCancelled},
	entities.OrderReadyForPickup: {entities.OrderRiderAssigned, entities.OrderCancelled},
	entities.OrderRiderAssigned:  {entities.OrderPickedUp, entities.OrderCancelled},
	entities.OrderPickedUp:       {entities.OrderOutForDelivery, entities.OrderDelivered, entities.OrderCancelled},
	entities.OrderOutForDelivery: {entities.OrderDelivered, entities.OrderCancelled},
}

func CanTransition(from, to entities.OrderStatusType) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// requestable rider_assigned ставится только диспетчеризацией или самоназначением.
func requestable(status entities.OrderStatusType) bool {
	switch status {
	case entities.OrderReadyForPickup,
		entities.OrderPickedUp,
		entities.OrderOutForDelivery,
		entities.OrderDelivered,
		entities.OrderCancelled:
		return true
	}
	return false
}
