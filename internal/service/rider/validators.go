package rider

import "dispatch/internal/entities"

func isValidServiceMode(mode entities.ServiceModeType) bool {
	return mode == entities.ServiceModeFoodDelivery || mode == entities.ServiceModeRideService
}
