package dto

import (
	"time"

	"dispatch/internal/entities"
)

type OrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type OrderCreate struct {
	RestaurantID        string      `json:"restaurant_id"`
	Items               []OrderItem `json:"items"`
	DeliveryFee         float64     `json:"delivery_fee"`
	RiderFee            float64     `json:"rider_fee"`
	AppFee              float64     `json:"app_fee"`
	DeliveryAddress     Coordinate  `json:"delivery_address"`
	PaymentMethod       string      `json:"payment_method"`
	CustomerPhone       string      `json:"customer_phone"`
	SpecialInstructions string      `json:"special_instructions"`
}

type Order struct {
	ID                  string      `json:"id"`
	CustomerID          string      `json:"customer_id"`
	CustomerName        string      `json:"customer_name"`
	CustomerPhone       string      `json:"customer_phone"`
	RestaurantID        string      `json:"restaurant_id"`
	RestaurantName      string      `json:"restaurant_name"`
	RestaurantLocation  Coordinate  `json:"restaurant_location"`
	Items               []OrderItem `json:"items"`
	Subtotal            float64     `json:"subtotal"`
	DeliveryFee         float64     `json:"delivery_fee"`
	RiderFee            float64     `json:"rider_fee"`
	AppFee              float64     `json:"app_fee"`
	Total               float64     `json:"total"`
	DeliveryAddress     Coordinate  `json:"delivery_address"`
	Status              string      `json:"status"`
	RiderID             *int64      `json:"rider_id"`
	RiderName           *string     `json:"rider_name"`
	RiderPhone          *string     `json:"rider_phone"`
	PaymentMethod       string      `json:"payment_method"`
	PaymentStatus       string      `json:"payment_status"`
	SpecialInstructions string      `json:"special_instructions"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// OrderDispatch ответ на смену статуса, assigned=false значит райдер пока не найден.
type OrderDispatch struct {
	Order    Order `json:"order"`
	Assigned bool  `json:"assigned"`
}

func (c OrderCreate) ToDomain() entities.OrderCreate {
	items := make([]entities.OrderItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = entities.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	return entities.OrderCreate{
		RestaurantID:        c.RestaurantID,
		Items:               items,
		DeliveryFee:         c.DeliveryFee,
		RiderFee:            c.RiderFee,
		AppFee:              c.AppFee,
		DeliveryAddress:     c.DeliveryAddress.ToDomain(),
		PaymentMethod:       entities.PaymentMethodType(c.PaymentMethod),
		CustomerPhone:       c.CustomerPhone,
		SpecialInstructions: c.SpecialInstructions,
	}
}

func FromOrder(o *entities.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	return Order{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		RestaurantID:        o.RestaurantID,
		RestaurantName:      o.RestaurantName,
		RestaurantLocation:  FromCoordinate(o.RestaurantLocation),
		Items:               items,
		Subtotal:            o.Subtotal,
		DeliveryFee:         o.DeliveryFee,
		RiderFee:            o.RiderFee,
		AppFee:              o.AppFee,
		Total:               o.Total,
		DeliveryAddress:     FromCoordinate(o.DeliveryAddress),
		Status:              o.Status.String(),
		RiderID:             o.RiderID,
		RiderName:           o.RiderName,
		RiderPhone:          o.RiderPhone,
		PaymentMethod:       o.PaymentMethod.String(),
		PaymentStatus:       o.PaymentStatus.String(),
		SpecialInstructions: o.SpecialInstructions,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func FromOrderList(orders []entities.Order) []Order {
	result := make([]Order, len(orders))
	for i := range orders {
		result[i] = FromOrder(&orders[i])
	}
	return result
}
