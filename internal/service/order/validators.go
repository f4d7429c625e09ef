package order

import (
	"math"
	"strings"

	"dispatch/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isKnownStatus(status entities.OrderStatusType) bool {
	switch status {
	case entities.OrderPending,
		entities.OrderPaymentPending,
		entities.OrderPaid,
		entities.OrderAccepted,
		entities.OrderPreparing,
		entities.OrderReadyForPickup,
		entities.OrderRiderAssigned,
		entities.OrderPickedUp,
		entities.OrderOutForDelivery,
		entities.OrderDelivered,
		entities.OrderCancelled:
		return true
	}
	return false
}

func isValidItems(items []entities.OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 || !isValidAmount(item.Price) {
			return false
		}
	}
	return true
}

func isValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func isValidPaymentMethod(method entities.PaymentMethodType) bool {
	return method == entities.PaymentCash || method == entities.PaymentGCash
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolveDeliveryFee сводит сбор за доставку с его разбивкой: пустой сбор
// считается из разбивки, заданная разбивка должна совпадать со сбором до копейки.
func resolveDeliveryFee(create entities.OrderCreate) (float64, bool) {
	if !isValidAmount(create.DeliveryFee) || !isValidAmount(create.RiderFee) || !isValidAmount(create.AppFee) {
		return 0, false
	}

	breakdown := roundCents(create.RiderFee + create.AppFee)
	fee := roundCents(create.DeliveryFee)
	if breakdown == 0 {
		return fee, true
	}
	if fee == 0 {
		return breakdown, true
	}
	return fee, math.Abs(fee-breakdown) < 0.005
}
