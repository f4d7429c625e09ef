package order

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	items := make([]entities.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = entities.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	return &entities.Order{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		RestaurantID:   o.RestaurantID,
		RestaurantName: o.RestaurantName,
		RestaurantLocation: entities.Coordinate{
			Latitude:  o.RestaurantLatitude,
			Longitude: o.RestaurantLongitude,
			Address:   o.RestaurantAddress,
		},
		Items:       items,
		Subtotal:    o.Subtotal,
		DeliveryFee: o.DeliveryFee,
		RiderFee:    o.RiderFee,
		AppFee:      o.AppFee,
		Total:       o.Total,
		DeliveryAddress: entities.Coordinate{
			Latitude:  o.DeliveryLatitude,
			Longitude: o.DeliveryLongitude,
			Address:   o.DeliveryAddress,
		},
		Status:              entities.OrderStatusType(o.Status),
		RiderID:             o.RiderID,
		RiderName:           o.RiderName,
		RiderPhone:          o.RiderPhone,
		PaymentMethod:       entities.PaymentMethodType(o.PaymentMethod),
		PaymentStatus:       entities.PaymentStatusType(o.PaymentStatus),
		SpecialInstructions: o.SpecialInstructions,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func FromDomain(o *entities.Order) *OrderDB {
	if o == nil {
		return nil
	}

	items := make([]OrderItemDB, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemDB{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	return &OrderDB{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		RestaurantID:        o.RestaurantID,
		RestaurantName:      o.RestaurantName,
		RestaurantLatitude:  o.RestaurantLocation.Latitude,
		RestaurantLongitude: o.RestaurantLocation.Longitude,
		RestaurantAddress:   o.RestaurantLocation.Address,
		Items:               items,
		Subtotal:            o.Subtotal,
		DeliveryFee:         o.DeliveryFee,
		RiderFee:            o.RiderFee,
		AppFee:              o.AppFee,
		Total:               o.Total,
		DeliveryLatitude:    o.DeliveryAddress.Latitude,
		DeliveryLongitude:   o.DeliveryAddress.Longitude,
		DeliveryAddress:     o.DeliveryAddress.Address,
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

func FromDomainModify(orderModify *entities.OrderModify) *OrderModifyDB {
	if orderModify == nil {
		return nil
	}
	orderDB := &OrderModifyDB{
		ID:         orderModify.ID,
		RiderID:    orderModify.RiderID,
		RiderName:  orderModify.RiderName,
		RiderPhone: orderModify.RiderPhone,
	}

	if orderModify.Status != nil {
		status := orderModify.Status.String()
		orderDB.Status = &status
	}
	if orderModify.PaymentStatus != nil {
		paymentStatus := orderModify.PaymentStatus.String()
		orderDB.PaymentStatus = &paymentStatus
	}

	return orderDB
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i := range ordersDB {
		result[i] = *ToDomain(&ordersDB[i])
	}
	return result
}
