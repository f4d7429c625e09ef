package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	kafkaEvents "dispatch/internal/gateway/events/kafka"
	redisEvents "dispatch/internal/gateway/events/redis"
	"dispatch/internal/gateway/routing/cache"
	"dispatch/internal/gateway/routing/google"
	"dispatch/internal/gateway/routing/osrm"
	"dispatch/internal/handlers/tasks/order_dispatch_retry"
	"dispatch/internal/handlers/tasks/scheduled_rides"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/notifier"
	cancellationRepo "dispatch/internal/repository/cancellation"
	orderRepo "dispatch/internal/repository/order"
	restaurantRepo "dispatch/internal/repository/restaurant"
	rideRepo "dispatch/internal/repository/ride"
	riderRepo "dispatch/internal/repository/rider"
	cancellationService "dispatch/internal/service/cancellation"
	"dispatch/internal/service/geo"
	"dispatch/internal/service/matcher"
	orderService "dispatch/internal/service/order"
	rideService "dispatch/internal/service/ride"
	riderService "dispatch/internal/service/rider"
	"dispatch/internal/service/subscription"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
)

type (
	OrderDispatchRetryInterval time.Duration
	ScheduledRidesInterval     time.Duration
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideRideRepository(querier *querier.Querier) *rideRepo.Repository {
	return rideRepo.New(querier)
}

func provideRiderRepository(querier *querier.Querier) *riderRepo.Repository {
	return riderRepo.New(querier)
}

func provideRestaurantRepository(querier *querier.Querier) *restaurantRepo.Repository {
	return restaurantRepo.New(querier)
}

func provideCancellationRepository(querier *querier.Querier) *cancellationRepo.Repository {
	return cancellationRepo.New(querier)
}

// provideNotifier события уходят и в Kafka (аудит, интеграции), и в Redis (websocket).
func provideNotifier(log logger.Logger, producer sarama.SyncProducer, client *goredis.Client, cfg *config.Config) *notifier.Notifier {
	return notifier.New(
		log.With(logger.NewField("component", "notifier")),
		kafkaEvents.NewPublisher(producer, cfg.Kafka.EventsTopic),
		redisEvents.NewPublisher(client),
	)
}

func provideEventSubscriber(client *goredis.Client) *redisEvents.Subscriber {
	return redisEvents.NewSubscriber(client)
}

// provideRoutingProvider для ROUTING_PROVIDER=none возвращает nil interface,
// тогда geo считает только по прямой.
func provideRoutingProvider(log logger.Logger, client *goredis.Client, cfg *config.Config) (geo.RoutingProvider, error) {
	routeLog := log.With(
		logger.NewField("component", "routing"),
		logger.NewField("provider", cfg.Routing.Provider),
	)

	switch cfg.Routing.Provider {
	case config.RoutingProviderOSRM:
		gateway := osrm.New(cfg.Routing.OSRMEndpoint, &http.Client{Timeout: cfg.Routing.Timeout})
		return cache.New(gateway, client, cfg.Routing.CacheTTL, routeLog), nil

	case config.RoutingProviderGoogle:
		mapsClient, err := google.NewClient(cfg.Routing.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("routing provider: %w", err)
		}
		return cache.New(google.New(mapsClient), client, cfg.Routing.CacheTTL, routeLog), nil

	default:
		routeLog.Warn("routing provider disabled, road distance falls back to haversine")
		return nil, nil
	}
}

func provideGeoCalculator(log logger.Logger, provider geo.RoutingProvider, cfg *config.Config) *geo.Calculator {
	return geo.New(provider, cfg.Routing.Timeout, log.With(logger.NewField("component", "geo")))
}

func provideMatcher(registry *riderRepo.Repository, calculator *geo.Calculator) *matcher.Matcher {
	return matcher.New(registry, calculator)
}

func provideCancellationEngine(repository *cancellationRepo.Repository, txManager *tx.Manager, cfg *config.Config) *cancellationService.Engine {
	return cancellationService.New(repository, txManager, cancellationService.Config{
		PenaltyAmount: cfg.Cancellation.PenaltyAmount,
	})
}

func provideRiderService(
	log logger.Logger,
	repository *riderRepo.Repository,
	orders *orderRepo.Repository,
	rides *rideRepo.Repository,
	notifier *notifier.Notifier,
) *riderService.Rider {
	return riderService.New(repository, orders, rides, notifier, log.With(logger.NewField("service", "rider")))
}

func provideOrderService(
	log logger.Logger,
	repository *orderRepo.Repository,
	restaurants *restaurantRepo.Repository,
	riders *riderRepo.Repository,
	profiles *riderService.Rider,
	matcher *matcher.Matcher,
	notifier *notifier.Notifier,
	txManager *tx.Manager,
	cfg *config.Config,
) *orderService.Service {
	return orderService.New(
		repository,
		restaurants,
		riders,
		profiles,
		matcher,
		notifier,
		txManager,
		log.With(logger.NewField("service", "order")),
		orderService.Config{
			RadiusKm:          cfg.Dispatch.OrderRadiusKm,
			MaxAssignAttempts: cfg.Dispatch.MaxAssignAttempts,
		},
	)
}

func provideRideService(
	log logger.Logger,
	repository *rideRepo.Repository,
	riders *riderRepo.Repository,
	profiles *riderService.Rider,
	matcher *matcher.Matcher,
	routes *geo.Calculator,
	policy *cancellationService.Engine,
	notifier *notifier.Notifier,
	txManager *tx.Manager,
	cfg *config.Config,
) *rideService.Service {
	return rideService.New(
		repository,
		riders,
		profiles,
		matcher,
		routes,
		policy,
		notifier,
		txManager,
		log.With(logger.NewField("service", "ride")),
		rideService.Config{
			RadiusKm:          cfg.Dispatch.RideRadiusKm,
			BaseFare:          cfg.Fare.Base,
			PerKmRate:         cfg.Fare.PerKm,
			MaxAssignAttempts: cfg.Dispatch.MaxAssignAttempts,
		},
	)
}

func provideSubscriptionAuthorizer(
	orders *orderService.Service,
	rides *rideService.Service,
	riders *riderService.Rider,
	restaurants *restaurantRepo.Repository,
) *subscription.Authorizer {
	return subscription.New(orders, rides, riders, restaurants)
}

func provideOrderDispatchRetryInterval(cfg *config.Config) OrderDispatchRetryInterval {
	return OrderDispatchRetryInterval(cfg.Tasks.OrderDispatchRetryInterval)
}

func provideScheduledRidesInterval(cfg *config.Config) ScheduledRidesInterval {
	return ScheduledRidesInterval(cfg.Tasks.ScheduledRidesInterval)
}

func provideOrderDispatchRetryTask(
	log logger.Logger,
	service *orderService.Service,
	interval OrderDispatchRetryInterval,
) *order_dispatch_retry.OrderDispatchRetry {
	return order_dispatch_retry.New(log, service, time.Duration(interval))
}

func provideScheduledRidesTask(
	log logger.Logger,
	service *rideService.Service,
	interval ScheduledRidesInterval,
) *scheduled_rides.ScheduledRides {
	return scheduled_rides.New(log, service, time.Duration(interval))
}

func provideTaskList(
	orderDispatchRetryTask *order_dispatch_retry.OrderDispatchRetry,
	scheduledRidesTask *scheduled_rides.ScheduledRides,
) []background.Task {
	return []background.Task{
		orderDispatchRetryTask,
		scheduledRidesTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log.With(logger.NewField("component", "background")), tasks)
}
