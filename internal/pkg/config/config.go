package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	RoutingProviderNone   = "none"
	RoutingProviderOSRM   = "osrm"
	RoutingProviderGoogle = "google"
)

type (
	Tasks struct {
		OrderDispatchRetryInterval time.Duration
		ScheduledRidesInterval     time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
		GRPCHealthPort   string
	}

	Database struct {
		Host           string
		Port           string
		User           string
		Password       string
		DBName         string
		SSLMode        string
		MigrateOnStart bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		EventsTopic     string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderStatusChanged OrderStatusChanged
	}

	OrderStatusChanged struct {
		ProcessTimeout time.Duration
	}

	// Dispatch, Fare и Cancellation: нулевые значения заменяются дефолтами в сервисах.
	Dispatch struct {
		OrderRadiusKm     float64
		RideRadiusKm      float64
		MaxAssignAttempts int
	}

	Fare struct {
		Base  float64
		PerKm float64
	}

	Cancellation struct {
		PenaltyAmount float64
	}

	Routing struct {
		Provider     string
		OSRMEndpoint string
		GoogleAPIKey string
		Timeout      time.Duration
		CacheTTL     time.Duration
	}

	Config struct {
		Tasks        Tasks
		Server       HTTPServer
		Database     Database
		Redis        Redis
		Kafka        Kafka
		Dispatch     Dispatch
		Fare         Fare
		Cancellation Cancellation
		Routing      Routing
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	orderDispatchInterval, err := osGetEnvDuration("BACKGROUND_ORDER_DISPATCH_RETRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scheduledRidesInterval, err := osGetEnvDuration("BACKGROUND_SCHEDULED_RIDES_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderStatusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrateOnStart, err := osGetBool("POSTGRES_MIGRATE_ON_START")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderRadius, err := osGetFloat("DISPATCH_ORDER_RADIUS_KM")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rideRadius, err := osGetFloat("DISPATCH_RIDE_RADIUS_KM")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxAssignAttempts, err := osGetInt("DISPATCH_MAX_ASSIGN_ATTEMPTS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	fareBase, err := osGetFloat("FARE_BASE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	farePerKm, err := osGetFloat("FARE_PER_KM")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	penaltyAmount, err := osGetFloat("CANCELLATION_PENALTY_AMOUNT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	routingTimeout, err := osGetEnvDuration("ROUTING_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	routingCacheTTL, err := osGetEnvDuration("ROUTING_CACHE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	routingProvider := os.Getenv("ROUTING_PROVIDER")
	if routingProvider == "" {
		routingProvider = RoutingProviderNone
	}

	return &Config{
		Tasks: Tasks{
			OrderDispatchRetryInterval: orderDispatchInterval,
			ScheduledRidesInterval:     scheduledRidesInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
			GRPCHealthPort:   os.Getenv("GRPC_HEALTH_PORT"),
		},
		Database: Database{
			Host:           os.Getenv("POSTGRES_HOST"),
			Port:           os.Getenv("POSTGRES_PORT"),
			User:           os.Getenv("POSTGRES_USER"),
			Password:       os.Getenv("POSTGRES_PASSWORD"),
			DBName:         os.Getenv("POSTGRES_DB"),
			SSLMode:        os.Getenv("POSTGRES_SSLMODE"),
			MigrateOnStart: migrateOnStart,
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			EventsTopic:     os.Getenv("KAFKA_EVENTS_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderStatusChanged: OrderStatusChanged{
					ProcessTimeout: orderStatusChangedTimeout,
				},
			},
		},
		Dispatch: Dispatch{
			OrderRadiusKm:     orderRadius,
			RideRadiusKm:      rideRadius,
			MaxAssignAttempts: maxAssignAttempts,
		},
		Fare: Fare{
			Base:  fareBase,
			PerKm: farePerKm,
		},
		Cancellation: Cancellation{
			PenaltyAmount: penaltyAmount,
		},
		Routing: Routing{
			Provider:     routingProvider,
			OSRMEndpoint: os.Getenv("ROUTING_OSRM_ENDPOINT"),
			GoogleAPIKey: os.Getenv("ROUTING_GOOGLE_API_KEY"),
			Timeout:      routingTimeout,
			CacheTTL:     routingCacheTTL,
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}
	if cfg.Server.GRPCHealthPort == "" {
		return errors.New("GRPC_HEALTH_PORT is required")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	if cfg.Tasks.OrderDispatchRetryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_ORDER_DISPATCH_RETRY_INTERVAL is required")
	}
	if cfg.Tasks.ScheduledRidesInterval == time.Duration(0) {
		return errors.New("BACKGROUND_SCHEDULED_RIDES_INTERVAL is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.EventsTopic == "" {
		return errors.New("KAFKA_EVENTS_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.OrderStatusChanged.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_STATUS_CHANGED_PROCESS_TIMEOUT is required")
	}

	if cfg.Dispatch.OrderRadiusKm < 0 || cfg.Dispatch.RideRadiusKm < 0 {
		return errors.New("DISPATCH_ORDER_RADIUS_KM and DISPATCH_RIDE_RADIUS_KM must not be negative")
	}
	if cfg.Dispatch.MaxAssignAttempts < 0 {
		return errors.New("DISPATCH_MAX_ASSIGN_ATTEMPTS must not be negative")
	}
	if cfg.Fare.Base < 0 || cfg.Fare.PerKm < 0 {
		return errors.New("FARE_BASE and FARE_PER_KM must not be negative")
	}
	if cfg.Cancellation.PenaltyAmount < 0 {
		return errors.New("CANCELLATION_PENALTY_AMOUNT must not be negative")
	}

	switch cfg.Routing.Provider {
	case RoutingProviderNone:
	case RoutingProviderOSRM:
		if cfg.Routing.OSRMEndpoint == "" {
			return errors.New("ROUTING_OSRM_ENDPOINT is required for osrm routing provider")
		}
	case RoutingProviderGoogle:
		if cfg.Routing.GoogleAPIKey == "" {
			return errors.New("ROUTING_GOOGLE_API_KEY is required for google routing provider")
		}
	default:
		return fmt.Errorf("unknown ROUTING_PROVIDER %q (none|osrm|google)", cfg.Routing.Provider)
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
