package order

import "time"

type OrderDB struct {
	ID                  string
	CustomerID          string
	CustomerName        string
	CustomerPhone       string
	RestaurantID        string
	RestaurantName      string
	RestaurantLatitude  float64
	RestaurantLongitude float64
	RestaurantAddress   string
	Items               []OrderItemDB
	Subtotal            float64
	DeliveryFee         float64
	RiderFee            float64
	AppFee              float64
	Total               float64
	DeliveryLatitude    float64
	DeliveryLongitude   float64
	DeliveryAddress     string
	Status              string
	RiderID             *int64
	RiderName           *string
	RiderPhone          *string
	PaymentMethod       string
	PaymentStatus       string
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItemDB элемент JSONB колонки items.
type OrderItemDB struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type OrderModifyDB struct {
	ID            *string
	Status        *string
	RiderID       *int64
	RiderName     *string
	RiderPhone    *string
	PaymentStatus *string
}

const orderColumns = `id, customer_id, customer_name, customer_phone,
	restaurant_id, restaurant_name, restaurant_latitude, restaurant_longitude, restaurant_address,
	items, subtotal, delivery_fee, rider_fee, app_fee, total,
	delivery_latitude, delivery_longitude, delivery_address,
	status, rider_id, rider_name, rider_phone,
	payment_method, payment_status, special_instructions, created_at, updated_at`

func (o *OrderDB) scanTargets() []any {
	return []any{
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.RestaurantID,
		&o.RestaurantName,
		&o.RestaurantLatitude,
		&o.RestaurantLongitude,
		&o.RestaurantAddress,
		&o.Items,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.RiderFee,
		&o.AppFee,
		&o.Total,
		&o.DeliveryLatitude,
		&o.DeliveryLongitude,
		&o.DeliveryAddress,
		&o.Status,
		&o.RiderID,
		&o.RiderName,
		&o.RiderPhone,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.SpecialInstructions,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}
