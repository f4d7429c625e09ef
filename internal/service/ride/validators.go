package ride

import (
	"math"
	"strings"

	"dispatch/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isKnownStatus(status entities.RideStatusType) bool {
	switch status {
	case entities.RidePending,
		entities.RideAccepted,
		entities.RideRiderArrived,
		entities.RidePickedUp,
		entities.RideInTransit,
		entities.RideCompleted,
		entities.RideCancelled:
		return true
	}
	return false
}

func isValidRoute(pickup, dropoff entities.Coordinate, stops []entities.Coordinate) bool {
	if !pickup.Valid() || !dropoff.Valid() {
		return false
	}
	for _, stop := range stops {
		if !stop.Valid() {
			return false
		}
	}
	return true
}

func isValidPaymentMethod(method entities.PaymentMethodType) bool {
	return method == entities.PaymentCash || method == entities.PaymentGCash
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
