package ride

import (
	"dispatch/internal/entities"
)

func ToDomain(r *RideDB) *entities.Ride {
	if r == nil {
		return nil
	}

	stops := make([]entities.Coordinate, len(r.Stops))
	for i, stop := range r.Stops {
		stops[i] = entities.Coordinate{
			Latitude:  stop.Latitude,
			Longitude: stop.Longitude,
			Address:   stop.Address,
		}
	}

	return &entities.Ride{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Pickup: entities.Coordinate{
			Latitude:  r.PickupLatitude,
			Longitude: r.PickupLongitude,
			Address:   r.PickupAddress,
		},
		Dropoff: entities.Coordinate{
			Latitude:  r.DropoffLatitude,
			Longitude: r.DropoffLongitude,
			Address:   r.DropoffAddress,
		},
		Stops:              stops,
		RiderID:            r.RiderID,
		RiderName:          r.RiderName,
		RiderPhone:         r.RiderPhone,
		RiderVehicle:       r.RiderVehicle,
		DistanceKm:         r.DistanceKm,
		BaseFare:           r.BaseFare,
		PerKmRate:          r.PerKmRate,
		EstimatedFare:      r.EstimatedFare,
		ActualFare:         r.ActualFare,
		CancellationFee:    r.CancellationFee,
		Status:             entities.RideStatusType(r.Status),
		PaymentMethod:      entities.PaymentMethodType(r.PaymentMethod),
		PaymentStatus:      entities.PaymentStatusType(r.PaymentStatus),
		ScheduledTime:      r.ScheduledTime,
		PickedUpAt:         r.PickedUpAt,
		DroppedOffAt:       r.DroppedOffAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func FromDomain(r *entities.Ride) *RideDB {
	if r == nil {
		return nil
	}

	// пустой массив, а не null: колонка NOT NULL
	stops := make([]StopDB, len(r.Stops))
	for i, stop := range r.Stops {
		stops[i] = StopDB{
			Latitude:  stop.Latitude,
			Longitude: stop.Longitude,
			Address:   stop.Address,
		}
	}

	return &RideDB{
		ID:                 r.ID,
		CustomerID:         r.CustomerID,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		PickupLatitude:     r.Pickup.Latitude,
		PickupLongitude:    r.Pickup.Longitude,
		PickupAddress:      r.Pickup.Address,
		DropoffLatitude:    r.Dropoff.Latitude,
		DropoffLongitude:   r.Dropoff.Longitude,
		DropoffAddress:     r.Dropoff.Address,
		Stops:              stops,
		RiderID:            r.RiderID,
		RiderName:          r.RiderName,
		RiderPhone:         r.RiderPhone,
		RiderVehicle:       r.RiderVehicle,
		DistanceKm:         r.DistanceKm,
		BaseFare:           r.BaseFare,
		PerKmRate:          r.PerKmRate,
		EstimatedFare:      r.EstimatedFare,
		ActualFare:         r.ActualFare,
		CancellationFee:    r.CancellationFee,
		Status:             r.Status.String(),
		PaymentMethod:      r.PaymentMethod.String(),
		PaymentStatus:      r.PaymentStatus.String(),
		ScheduledTime:      r.ScheduledTime,
		PickedUpAt:         r.PickedUpAt,
		DroppedOffAt:       r.DroppedOffAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func FromDomainModify(rideModify *entities.RideModify) *RideModifyDB {
	if rideModify == nil {
		return nil
	}
	rideDB := &RideModifyDB{
		ID:                 rideModify.ID,
		RiderID:            rideModify.RiderID,
		RiderName:          rideModify.RiderName,
		RiderPhone:         rideModify.RiderPhone,
		RiderVehicle:       rideModify.RiderVehicle,
		PickedUpAt:         rideModify.PickedUpAt,
		DroppedOffAt:       rideModify.DroppedOffAt,
		CancelledAt:        rideModify.CancelledAt,
		CancellationReason: rideModify.CancellationReason,
	}

	if rideModify.Status != nil {
		status := rideModify.Status.String()
		rideDB.Status = &status
	}
	if rideModify.PaymentStatus != nil {
		paymentStatus := rideModify.PaymentStatus.String()
		rideDB.PaymentStatus = &paymentStatus
	}

	return rideDB
}

func ToDomainList(ridesDB []RideDB) []entities.Ride {
	if len(ridesDB) == 0 {
		return []entities.Ride{}
	}

	result := make([]entities.Ride, len(ridesDB))
	for i := range ridesDB {
		result[i] = *ToDomain(&ridesDB[i])
	}
	return result
}
