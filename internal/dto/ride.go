package dto

import (
	"time"

	"dispatch/internal/entities"
)

type RideCreate struct {
	Pickup        Coordinate   `json:"pickup"`
	Dropoff       Coordinate   `json:"dropoff"`
	Stops         []Coordinate `json:"stops"`
	PaymentMethod string       `json:"payment_method"`
	CustomerPhone string       `json:"customer_phone"`
	ScheduledTime *time.Time   `json:"scheduled_time"`
}

type FareRequest struct {
	Pickup  Coordinate   `json:"pickup"`
	Dropoff Coordinate   `json:"dropoff"`
	Stops   []Coordinate `json:"stops"`
}

type RideCancel struct {
	Reason string `json:"reason"`
}

type Ride struct {
	ID                 string       `json:"id"`
	CustomerID         string       `json:"customer_id"`
	CustomerName       string       `json:"customer_name"`
	CustomerPhone      string       `json:"customer_phone"`
	Pickup             Coordinate   `json:"pickup"`
	Dropoff            Coordinate   `json:"dropoff"`
	Stops              []Coordinate `json:"stops"`
	RiderID            *int64       `json:"rider_id"`
	RiderName          *string      `json:"rider_name"`
	RiderPhone         *string      `json:"rider_phone"`
	RiderVehicle       *string      `json:"rider_vehicle"`
	DistanceKm         float64      `json:"distance_km"`
	BaseFare           float64      `json:"base_fare"`
	PerKmRate          float64      `json:"per_km_rate"`
	EstimatedFare      float64      `json:"estimated_fare"`
	ActualFare         float64      `json:"actual_fare"`
	CancellationFee    float64      `json:"cancellation_fee"`
	Status             string       `json:"status"`
	PaymentMethod      string       `json:"payment_method"`
	PaymentStatus      string       `json:"payment_status"`
	ScheduledTime      *time.Time   `json:"scheduled_time"`
	PickedUpAt         *time.Time   `json:"picked_up_at"`
	DroppedOffAt       *time.Time   `json:"dropped_off_at"`
	CancelledAt        *time.Time   `json:"cancelled_at"`
	CancellationReason *string      `json:"cancellation_reason"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type RideDispatch struct {
	Ride     Ride `json:"ride"`
	Assigned bool `json:"assigned"`
}

type FareQuote struct {
	DistanceKm     float64 `json:"distance_km"`
	BaseFare       float64 `json:"base_fare"`
	PerKmRate      float64 `json:"per_km_rate"`
	EstimatedFare  float64 `json:"estimated_fare"`
	PendingPenalty float64 `json:"pending_penalty"`
	Total          float64 `json:"total_fare"`
}

type RideCancellation struct {
	Ride         Ride               `json:"ride"`
	Consequence  string             `json:"consequence"`
	Message      string             `json:"message"`
	Cancellation CancellationRecord `json:"cancellation"`
}

func (c RideCreate) ToDomain() entities.RideCreate {
	return entities.RideCreate{
		Pickup:        c.Pickup.ToDomain(),
		Dropoff:       c.Dropoff.ToDomain(),
		Stops:         toDomainCoordinates(c.Stops),
		PaymentMethod: entities.PaymentMethodType(c.PaymentMethod),
		CustomerPhone: c.CustomerPhone,
		ScheduledTime: c.ScheduledTime,
	}
}

func (r FareRequest) StopsToDomain() []entities.Coordinate {
	return toDomainCoordinates(r.Stops)
}

func FromRide(r *entities.Ride) Ride {
	stops := make([]Coordinate, len(r.Stops))
	for i, stop := range r.Stops {
		stops[i] = FromCoordinate(stop)
	}

	return Ride{
		ID:                 r.ID,
		CustomerID:         r.CustomerID,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		Pickup:             FromCoordinate(r.Pickup),
		Dropoff:            FromCoordinate(r.Dropoff),
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

func FromRideList(rides []entities.Ride) []Ride {
	result := make([]Ride, len(rides))
	for i := range rides {
		result[i] = FromRide(&rides[i])
	}
	return result
}

func FromFareQuote(q *entities.FareQuote) FareQuote {
	return FareQuote{
		DistanceKm:     q.DistanceKm,
		BaseFare:       q.BaseFare,
		PerKmRate:      q.PerKmRate,
		EstimatedFare:  q.EstimatedFare,
		PendingPenalty: q.PendingPenalty,
		Total:          q.Total,
	}
}

func FromRideCancellation(c *entities.RideCancellation) RideCancellation {
	return RideCancellation{
		Ride:         FromRide(c.Ride),
		Consequence:  c.Outcome.Consequence.String(),
		Message:      c.Outcome.Message,
		Cancellation: FromCancellationRecord(&c.Outcome.Record),
	}
}
