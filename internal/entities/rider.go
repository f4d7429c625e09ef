package entities

import (
	"strconv"
	"time"
)

type Rider struct {
	ID              int64
	AccountID       string
	Name            string
	Phone           string
	VehicleType     string
	Status          RiderStatusType
	IsAvailable     bool
	Location        *Coordinate
	CurrentOrderID  *string
	CurrentRideID   *string
	ServiceMode     ServiceModeType
	TotalDeliveries int64
	TotalRides      int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasActiveJob единственный источник правды о занятости райдера.
func (r *Rider) HasActiveJob() bool {
	return r.CurrentOrderID != nil || r.CurrentRideID != nil
}

type RiderStatusType string

const (
	RiderOffline   RiderStatusType = "offline"
	RiderAvailable RiderStatusType = "available"
	RiderBusy      RiderStatusType = "busy"
)

func (t RiderStatusType) String() string {
	return string(t)
}

type ServiceModeType string

const (
	ServiceModeFoodDelivery ServiceModeType = "food_delivery"
	ServiceModeRideService  ServiceModeType = "ride_service"
)

func (t ServiceModeType) String() string {
	return string(t)
}

const DefaultVehicleType = "Motorcycle"

type RiderModify struct {
	ID          *int64
	AccountID   *string
	Name        *string
	Phone       *string
	VehicleType *string
	Status      *RiderStatusType
	IsAvailable *bool
	Location    *Coordinate
	ServiceMode *ServiceModeType
}

type JobKind string

const (
	JobOrder JobKind = "order"
	JobRide  JobKind = "ride"
)

func (k JobKind) String() string {
	return string(k)
}

// RiderAssignment параметры CAS-назначения работы райдеру.
type RiderAssignment struct {
	RiderID int64
	Kind    JobKind
	JobID   string
	// RequireAvailable дополнительно требует status=available и is_available,
	// используется автодиспетчеризацией. Самоназначение проверяет только отсутствие работы.
	RequireAvailable bool
}

// RiderRelease освобождение райдера от конкретной работы.
type RiderRelease struct {
	RiderID int64
	Kind    JobKind
	JobID   string
	// Completed увеличивает счетчик выполненных доставок или поездок.
	Completed bool
}

func RiderChannel(riderID int64) string {
	return "rider_" + strconv.FormatInt(riderID, 10)
}
