package entities

import "time"

type Order struct {
	ID                  string
	CustomerID          string
	CustomerName        string
	CustomerPhone       string
	RestaurantID        string
	RestaurantName      string
	RestaurantLocation  Coordinate
	Items               []OrderItem
	Subtotal            float64
	DeliveryFee         float64
	RiderFee            float64
	AppFee              float64
	Total               float64
	DeliveryAddress     Coordinate
	Status              OrderStatusType
	RiderID             *int64
	RiderName           *string
	RiderPhone          *string
	PaymentMethod       PaymentMethodType
	PaymentStatus       PaymentStatusType
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type OrderItem struct {
	MenuItemID string
	Name       string
	Price      float64
	Quantity   int
}

type OrderStatusType string

const (
	OrderPending        OrderStatusType = "pending"
	OrderPaymentPending OrderStatusType = "payment_pending"
	OrderPaid           OrderStatusType = "paid"
	OrderAccepted       OrderStatusType = "accepted"
	OrderPreparing      OrderStatusType = "preparing"
	OrderReadyForPickup OrderStatusType = "ready_for_pickup"
	OrderRiderAssigned  OrderStatusType = "rider_assigned"
	OrderPickedUp       OrderStatusType = "picked_up"
	OrderOutForDelivery OrderStatusType = "out_for_delivery"
	OrderDelivered      OrderStatusType = "delivered"
	OrderCancelled      OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type PaymentMethodType string

const (
	PaymentCash  PaymentMethodType = "cash"
	PaymentGCash PaymentMethodType = "gcash"
)

func (t PaymentMethodType) String() string {
	return string(t)
}

type PaymentStatusType string

const (
	PaymentPending   PaymentStatusType = "pending"
	PaymentCompleted PaymentStatusType = "completed"
)

func (t PaymentStatusType) String() string {
	return string(t)
}

// OrderCreate данные от клиента, остальное заполняет сервис.
// RiderFee и AppFee необязательная разбивка DeliveryFee.
type OrderCreate struct {
	RestaurantID        string
	Items               []OrderItem
	DeliveryFee         float64
	RiderFee            float64
	AppFee              float64
	DeliveryAddress     Coordinate
	PaymentMethod       PaymentMethodType
	CustomerPhone       string
	SpecialInstructions string
}

type OrderModify struct {
	ID            *string
	Status        *OrderStatusType
	RiderID       *int64
	RiderName     *string
	RiderPhone    *string
	PaymentStatus *PaymentStatusType
}

// OrderListFilter задано ровно одно поле: чьи заказы выбирать.
type OrderListFilter struct {
	CustomerID        *string
	RestaurantOwnerID *string
	RiderAccountID    *string
}

// OrderDispatch результат перехода заказа, Assigned=false если райдер не найден.
type OrderDispatch struct {
	Order    *Order
	Assigned bool
}

func OrderChannel(orderID string) string {
	return "order_" + orderID
}
