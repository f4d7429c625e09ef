package order

import "errors"

var (
	ErrInvalidOrderID         = errors.New("invalid order id")
	ErrInvalidStatus          = errors.New("unknown order status")
	ErrInvalidItems           = errors.New("order must contain valid items")
	ErrInvalidDeliveryAddress = errors.New("invalid delivery address")
	ErrInvalidDeliveryFee     = errors.New("invalid delivery fee")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidRestaurantID    = errors.New("invalid restaurant id")

	ErrOrderNotFound      = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrOrderAlreadyAssigned = errors.New("order already has a rider")
	ErrRiderNotAssigned     = errors.New("order has no assigned rider")
	ErrRestaurantClosed     = errors.New("restaurant is closed")

	ErrForbidden = errors.New("caller is not allowed to access this order")
	ErrConflict  = errors.New("order conflict")
)
