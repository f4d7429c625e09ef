package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	application "dispatch/internal/app"
	"dispatch/internal/handlers/rest/cancellation_me_get"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/order_accept_post"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_post"
	"dispatch/internal/handlers/rest/order_status_put"
	"dispatch/internal/handlers/rest/orders_available_get"
	"dispatch/internal/handlers/rest/orders_get"
	"dispatch/internal/handlers/rest/ping_get"
	"dispatch/internal/handlers/rest/ride_accept_post"
	"dispatch/internal/handlers/rest/ride_cancel_post"
	"dispatch/internal/handlers/rest/ride_fare_post"
	"dispatch/internal/handlers/rest/ride_get"
	"dispatch/internal/handlers/rest/ride_post"
	"dispatch/internal/handlers/rest/ride_status_put"
	"dispatch/internal/handlers/rest/rider_availability_put"
	"dispatch/internal/handlers/rest/rider_location_put"
	"dispatch/internal/handlers/rest/rider_me_get"
	"dispatch/internal/handlers/rest/rider_service_mode_put"
	"dispatch/internal/handlers/rest/rides_available_get"
	"dispatch/internal/handlers/rest/ws_get"
	"dispatch/internal/handlers/tasks/rate_limiter_evict"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/grpchealth"
	"dispatch/internal/pkg/kafka"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/identity"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/postgres"
	"dispatch/internal/pkg/redis"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"
)

const (
	serviceName           = "dispatch"
	rateLimiterEvictEvery = time.Minute
)

func main() {
	// .env читается до логгера, иначе LOG_LEVEL из файла не применится
	dotenvErr := loadDotenv()

	zapLogger, err := zap_adapter.NewZapAdapter(serviceName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting dispatch application")

	if dotenvErr != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", dotenvErr))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func loadDotenv() error {
	err := dotenv.Load()
	if err != nil {
		return err
	}
	return dotenv.ApplyFlags(os.Args[1:])
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client", logger.NewField("error", err))
		}
	}()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka, kafka.SplitBrokers(cfg.Kafka.Brokers))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, redisClient, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	limiter := token_bucket.NewKeyedLimiter(cfg.Server.RateLimiterBurst, float64(cfg.Server.RateLimiterQPS))
	infraWorkers, err := background.New(ctx, log.With(logger.NewField("component", "infra-background")), []background.Task{
		rate_limiter_evict.New(log, limiter, rateLimiterEvictEvery),
	})
	if err != nil {
		return fmt.Errorf("infra tasks: %w", err)
	}

	metrics_system.StartSystemCollector(ctx, metrics_system.DefaultInterval)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	dependencies := map[string]healthcheck_head.Dependency{
		"postgres": pool,
		"redis":    redis.NewPinger(redisClient),
	}

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server, limiter, dependencies),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер
	healthServer := grpchealth.New(log, serviceName)
	healthListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}

	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)
		if err := healthServer.Serve(healthListener); err != nil {
			healthServerErr <- err
		}
	}()
	healthServer.SetServing(true)
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(log, &isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("grpc health server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	healthServer.SetServing(false)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	// websocket соединения живут вне Shutdown, их закрывает отмена ongoingCtx
	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	healthServer.Stop()

	businessApp.BackgroundWorkers.Wait()
	infraWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
	limiter *token_bucket.KeyedLimiter,
	dependencies map[string]healthcheck_head.Dependency,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(log, isShuttingDown, ongoingCtx))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterBurst, limiter))

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, dependencies)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log, serviceName)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(identity.Middleware())

	// websocket живет дольше любого request timeout, поэтому вне timeout middleware
	api.Handle("/ws", ws_get.New(log, app.Subscriptions, app.Events)).Methods(http.MethodGet)

	rest := api.NewRoute().Subrouter()
	rest.Use(timeout.Middleware(cfg.RequestTimeout))

	rest.Handle("/orders", order_post.New(log, app.Orders)).Methods(http.MethodPost)
	rest.Handle("/orders", orders_get.New(log, app.Orders)).Methods(http.MethodGet)
	rest.Handle("/orders/available", orders_available_get.New(log, app.Orders)).Methods(http.MethodGet)
	rest.Handle("/orders/{id}", order_get.New(log, app.Orders)).Methods(http.MethodGet)
	rest.Handle("/orders/{id}/status", order_status_put.New(log, app.Orders)).Methods(http.MethodPut)
	rest.Handle("/orders/{id}/accept-delivery", order_accept_post.New(log, app.Orders)).Methods(http.MethodPost)

	rest.Handle("/rides", ride_post.New(log, app.Rides)).Methods(http.MethodPost)
	rest.Handle("/rides/fare", ride_fare_post.New(log, app.Rides)).Methods(http.MethodPost)
	rest.Handle("/rides/available", rides_available_get.New(log, app.Rides)).Methods(http.MethodGet)
	rest.Handle("/rides/{id}", ride_get.New(log, app.Rides)).Methods(http.MethodGet)
	rest.Handle("/rides/{id}/status", ride_status_put.New(log, app.Rides)).Methods(http.MethodPut)
	rest.Handle("/rides/{id}/accept", ride_accept_post.New(log, app.Rides)).Methods(http.MethodPost)
	rest.Handle("/rides/{id}/cancel", ride_cancel_post.New(log, app.Rides)).Methods(http.MethodPost)

	rest.Handle("/riders/me", rider_me_get.New(log, app.Riders)).Methods(http.MethodGet)
	rest.Handle("/riders/location", rider_location_put.New(log, app.Riders)).Methods(http.MethodPut)
	rest.Handle("/riders/availability", rider_availability_put.New(log, app.Riders)).Methods(http.MethodPut)
	rest.Handle("/riders/service-mode", rider_service_mode_put.New(log, app.Riders)).Methods(http.MethodPut)

	rest.Handle("/cancellations/me", cancellation_me_get.New(log, app.Cancellations)).Methods(http.MethodGet)

	return router
}

func initPprofRouter(log logger.Logger, isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, nil)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
