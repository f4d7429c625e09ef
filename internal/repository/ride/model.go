package ride

import "time"

type RideDB struct {
	ID                 string
	CustomerID         string
	CustomerName       string
	CustomerPhone      string
	PickupLatitude     float64
	PickupLongitude    float64
	PickupAddress      string
	DropoffLatitude    float64
	DropoffLongitude   float64
	DropoffAddress     string
	Stops              []StopDB
	RiderID            *int64
	RiderName          *string
	RiderPhone         *string
	RiderVehicle       *string
	DistanceKm         float64
	BaseFare           float64
	PerKmRate          float64
	EstimatedFare      float64
	ActualFare         float64
	CancellationFee    float64
	Status             string
	PaymentMethod      string
	PaymentStatus      string
	ScheduledTime      *time.Time
	PickedUpAt         *time.Time
	DroppedOffAt       *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StopDB элемент JSONB колонки stops.
type StopDB struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type RideModifyDB struct {
	ID                 *string
	Status             *string
	RiderID            *int64
	RiderName          *string
	RiderPhone         *string
	RiderVehicle       *string
	PaymentStatus      *string
	PickedUpAt         *time.Time
	DroppedOffAt       *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
}

const rideColumns = `id, customer_id, customer_name, customer_phone,
	pickup_latitude, pickup_longitude, pickup_address,
	dropoff_latitude, dropoff_longitude, dropoff_address, stops,
	rider_id, rider_name, rider_phone, rider_vehicle,
	distance_km, base_fare, per_km_rate, estimated_fare, actual_fare, cancellation_fee,
	status, payment_method, payment_status,
	scheduled_time, picked_up_at, dropped_off_at, cancelled_at, cancellation_reason,
	created_at, updated_at`

func (r *RideDB) scanTargets() []any {
	return []any{
		&r.ID,
		&r.CustomerID,
		&r.CustomerName,
		&r.CustomerPhone,
		&r.PickupLatitude,
		&r.PickupLongitude,
		&r.PickupAddress,
		&r.DropoffLatitude,
		&r.DropoffLongitude,
		&r.DropoffAddress,
		&r.Stops,
		&r.RiderID,
		&r.RiderName,
		&r.RiderPhone,
		&r.RiderVehicle,
		&r.DistanceKm,
		&r.BaseFare,
		&r.PerKmRate,
		&r.EstimatedFare,
		&r.ActualFare,
		&r.CancellationFee,
		&r.Status,
		&r.PaymentMethod,
		&r.PaymentStatus,
		&r.ScheduledTime,
		&r.PickedUpAt,
		&r.DroppedOffAt,
		&r.CancelledAt,
		&r.CancellationReason,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}
