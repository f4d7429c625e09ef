package dto

import (
	"time"

	"dispatch/internal/entities"
)

type Rider struct {
	ID              int64       `json:"id"`
	AccountID       string      `json:"account_id"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	VehicleType     string      `json:"vehicle_type"`
	Status          string      `json:"status"`
	IsAvailable     bool        `json:"is_available"`
	Location        *Coordinate `json:"current_location"`
	CurrentOrderID  *string     `json:"current_order_id"`
	CurrentRideID   *string     `json:"current_ride_id"`
	ServiceMode     string      `json:"current_mode"`
	TotalDeliveries int64       `json:"total_deliveries"`
	TotalRides      int64       `json:"total_rides"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type Availability struct {
	IsAvailable *bool `json:"is_available"`
}

type ServiceMode struct {
	Mode string `json:"mode"`
}

type CancellationRecord struct {
	CustomerID         string     `json:"customer_id"`
	TotalCancellations int64      `json:"total_cancellations"`
	LastCancellationAt *time.Time `json:"last_cancellation_at"`
	PendingPenalty     float64    `json:"pending_penalty"`
	SuspendedUntil     *time.Time `json:"suspended_until"`
	SuspensionReason   *string    `json:"suspension_reason"`
}

func FromRider(r *entities.Rider) Rider {
	rider := Rider{
		ID:              r.ID,
		AccountID:       r.AccountID,
		Name:            r.Name,
		Phone:           r.Phone,
		VehicleType:     r.VehicleType,
		Status:          r.Status.String(),
		IsAvailable:     r.IsAvailable,
		CurrentOrderID:  r.CurrentOrderID,
		CurrentRideID:   r.CurrentRideID,
		ServiceMode:     r.ServiceMode.String(),
		TotalDeliveries: r.TotalDeliveries,
		TotalRides:      r.TotalRides,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Location != nil {
		location := FromCoordinate(*r.Location)
		rider.Location = &location
	}
	return rider
}

func FromCancellationRecord(r *entities.CancellationRecord) CancellationRecord {
	return CancellationRecord{
		CustomerID:         r.CustomerID,
		TotalCancellations: r.TotalCancellations,
		LastCancellationAt: r.LastCancellationAt,
		PendingPenalty:     r.PendingPenalty,
		SuspendedUntil:     r.SuspendedUntil,
		SuspensionReason:   r.SuspensionReason,
	}
}
