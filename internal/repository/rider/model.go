package rider

import "time"

type RiderDB struct {
	ID              int64
	AccountID       string
	Name            string
	Phone           string
	VehicleType     string
	Status          string
	IsAvailable     bool
	Latitude        *float64
	Longitude       *float64
	Address         *string
	CurrentOrderID  *string
	CurrentRideID   *string
	ServiceMode     string
	TotalDeliveries int64
	TotalRides      int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type RiderModifyDB struct {
	ID          *int64
	AccountID   *string
	Name        *string
	Phone       *string
	VehicleType *string
	Status      *string
	IsAvailable *bool
	Latitude    *float64
	Longitude   *float64
	Address     *string
	ServiceMode *string
}

const riderColumns = `id, account_id, name, phone, vehicle_type, status, is_available,
	latitude, longitude, address, current_order_id, current_ride_id, service_mode,
	total_deliveries, total_rides, created_at, updated_at`

func (r *RiderDB) scanTargets() []any {
	return []any{
		&r.ID,
		&r.AccountID,
		&r.Name,
		&r.Phone,
		&r.VehicleType,
		&r.Status,
		&r.IsAvailable,
		&r.Latitude,
		&r.Longitude,
		&r.Address,
		&r.CurrentOrderID,
		&r.CurrentRideID,
		&r.ServiceMode,
		&r.TotalDeliveries,
		&r.TotalRides,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}
