package ride

import "dispatch/internal/entities"

// allowedTransitions accepted ставит только диспетчеризация или самоназначение,
// cancelled только отмена поездки.
var allowedTransitions = map[entities.RideStatusType][]entities.RideStatusType{
	entities.RidePending:      {entities.RideAccepted, entities.RideCancelled},
	entities.RideAccepted:     {entities.RideRiderArrived, entities.RideCancelled},
	entities.RideRiderArrived: {entities.RidePickedUp, entities.RideCancelled},
	entities.RidePickedUp:     {entities.RideInTransit, entities.RideCancelled},
	entities.RideInTransit:    {entities.RideCompleted, entities.RideCancelled},
}

func CanTransition(from, to entities.RideStatusType) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func riderRequestable(status entities.RideStatusType) bool {
	switch status {
	case entities.RideRiderArrived,
		entities.RidePickedUp,
		entities.RideInTransit,
		entities.RideCompleted:
		return true
	}
	return false
}
