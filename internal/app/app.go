package app

import (
	redisEvents "dispatch/internal/gateway/events/redis"
	cancellationService "dispatch/internal/service/cancellation"
	orderService "dispatch/internal/service/order"
	rideService "dispatch/internal/service/ride"
	riderService "dispatch/internal/service/rider"
	"dispatch/internal/service/subscription"
	"dispatch/pkg/background"
)

// Application собранный граф HTTP сервиса (cmd/service).
type Application struct {
	Orders            *orderService.Service
	Rides             *rideService.Service
	Riders            *riderService.Rider
	Cancellations     *cancellationService.Engine
	Subscriptions     *subscription.Authorizer
	Events            *redisEvents.Subscriber
	BackgroundWorkers *background.Worker
}

// KafkaWorkerApp граф воркера order.status.changed: только сервис заказов и его зависимости.
type KafkaWorkerApp struct {
	OrderService *orderService.Service
}
