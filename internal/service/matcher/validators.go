package matcher

import (
	"math"

	"dispatch/internal/entities"
)

func isValidRadius(radiusKm float64) bool {
	return !math.IsNaN(radiusKm) && !math.IsInf(radiusKm, 0) && radiusKm > 0
}

func isValidMode(mode entities.ServiceModeType) bool {
	return mode == entities.ServiceModeFoodDelivery || mode == entities.ServiceModeRideService
}
