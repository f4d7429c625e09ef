package entities

import "time"

type Ride struct {
	ID                 string
	CustomerID         string
	CustomerName       string
	CustomerPhone      string
	Pickup             Coordinate
	Dropoff            Coordinate
	Stops              []Coordinate
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
	Status             RideStatusType
	PaymentMethod      PaymentMethodType
	PaymentStatus      PaymentStatusType
	ScheduledTime      *time.Time
	PickedUpAt         *time.Time
	DroppedOffAt       *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Due поездка без расписания или с наступившим временем доступна для диспетчеризации.
func (r *Ride) Due(now time.Time) bool {
	return r.ScheduledTime == nil || !r.ScheduledTime.After(now)
}

type RideStatusType string

const (
	RidePending      RideStatusType = "pending"
	RideAccepted     RideStatusType = "accepted"
	RideRiderArrived RideStatusType = "rider_arrived"
	RidePickedUp     RideStatusType = "picked_up"
	RideInTransit    RideStatusType = "in_transit"
	RideCompleted    RideStatusType = "completed"
	RideCancelled    RideStatusType = "cancelled"
)

func (s RideStatusType) String() string {
	return string(s)
}

func (s RideStatusType) Terminal() bool {
	return s == RideCompleted || s == RideCancelled
}

type RideCreate struct {
	Pickup        Coordinate
	Dropoff       Coordinate
	Stops         []Coordinate
	PaymentMethod PaymentMethodType
	CustomerPhone string
	ScheduledTime *time.Time
}

type RideModify struct {
	ID                 *string
	Status             *RideStatusType
	RiderID            *int64
	RiderName          *string
	RiderPhone         *string
	RiderVehicle       *string
	PaymentStatus      *PaymentStatusType
	PickedUpAt         *time.Time
	DroppedOffAt       *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
}

type FareQuote struct {
	DistanceKm     float64
	BaseFare       float64
	PerKmRate      float64
	EstimatedFare  float64
	PendingPenalty float64
	Total          float64
}

type RideDispatch struct {
	Ride     *Ride
	Assigned bool
}

type RideCancellation struct {
	Ride    *Ride
	Outcome PolicyOutcome
}

func RideChannel(rideID string) string {
	return "ride_" + rideID
}
