//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
)

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideOrderRepository,
	provideRideRepository,
	provideRiderRepository,
	provideRestaurantRepository,
	provideCancellationRepository,
)

var dispatchSet = wire.NewSet(
	repositorySet,

	provideNotifier,
	provideRoutingProvider,
	provideGeoCalculator,
	provideMatcher,
	provideCancellationEngine,

	provideRiderService,
	provideOrderService,
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		dispatchSet,

		provideRideService,
		provideSubscriptionAuthorizer,
		provideEventSubscriber,

		provideOrderDispatchRetryInterval,
		provideScheduledRidesInterval,
		provideOrderDispatchRetryTask,
		provideScheduledRidesTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		dispatchSet,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
