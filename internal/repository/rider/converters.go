package rider

import (
	"dispatch/internal/entities"
)

func ToDomain(r *RiderDB) *entities.Rider {
	if r == nil {
		return nil
	}

	rider := &entities.Rider{
		ID:              r.ID,
		AccountID:       r.AccountID,
		Name:            r.Name,
		Phone:           r.Phone,
		VehicleType:     r.VehicleType,
		Status:          entities.RiderStatusType(r.Status),
		IsAvailable:     r.IsAvailable,
		CurrentOrderID:  r.CurrentOrderID,
		CurrentRideID:   r.CurrentRideID,
		ServiceMode:     entities.ServiceModeType(r.ServiceMode),
		TotalDeliveries: r.TotalDeliveries,
		TotalRides:      r.TotalRides,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Latitude != nil && r.Longitude != nil {
		location := entities.Coordinate{
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
		}
		if r.Address != nil {
			location.Address = *r.Address
		}
		rider.Location = &location
	}

	return rider
}

func FromDomainModify(riderModify *entities.RiderModify) *RiderModifyDB {
	if riderModify == nil {
		return nil
	}
	riderDB := &RiderModifyDB{
		ID:          riderModify.ID,
		AccountID:   riderModify.AccountID,
		Name:        riderModify.Name,
		Phone:       riderModify.Phone,
		VehicleType: riderModify.VehicleType,
		IsAvailable: riderModify.IsAvailable,
	}

	if riderModify.Status != nil {
		status := riderModify.Status.String()
		riderDB.Status = &status
	}
	if riderModify.ServiceMode != nil {
		mode := riderModify.ServiceMode.String()
		riderDB.ServiceMode = &mode
	}
	if riderModify.Location != nil {
		lat, lng, address := riderModify.Location.Latitude, riderModify.Location.Longitude, riderModify.Location.Address
		riderDB.Latitude = &lat
		riderDB.Longitude = &lng
		riderDB.Address = &address
	}

	return riderDB
}

func ToDomainList(ridersDB []RiderDB) []entities.Rider {
	if len(ridersDB) == 0 {
		return []entities.Rider{}
	}

	result := make([]entities.Rider, len(ridersDB))
	for i := range ridersDB {
		result[i] = *ToDomain(&ridersDB[i])
	}
	return result
}

// jobColumn колонка указателя на работу, единственное место сопоставления JobKind и схемы.
func jobColumn(kind entities.JobKind) (string, bool) {
	switch kind {
	case entities.JobOrder:
		return "current_order_id", true
	case entities.JobRide:
		return "current_ride_id", true
	}
	return "", false
}

func counterColumn(kind entities.JobKind) string {
	if kind == entities.JobRide {
		return "total_rides"
	}
	return "total_deliveries"
}
