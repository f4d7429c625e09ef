// Package integration_test поднимает общее подключение к тестовой базе
// для интеграционных тестов репозиториев. Переменные POSTGRES_* выставляет
// окружение запуска (docker compose или CI), миграции катятся один раз.
package integration_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/stretchr/testify/require"

	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
)

const statementTimeout = 2 * time.Second

// dispatchTables в порядке зависимостей, TRUNCATE ... CASCADE все равно их развяжет.
var dispatchTables = []string{
	"customer_cancellations",
	"rides",
	"orders",
	"riders",
	"restaurants",
}

type suite struct {
	querier *querier.Querier
	tx      *tx.Manager
}

var (
	shared    suite
	sharedErr error
	initOnce  sync.Once
)

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func databaseFromEnv() *config.Database {
	return &config.Database{
		Host:     env("POSTGRES_HOST", "localhost"),
		Port:     env("POSTGRES_PORT", "5432"),
		User:     env("POSTGRES_USER", "dispatch"),
		Password: env("POSTGRES_PASSWORD", "dispatch"),
		DBName:   env("POSTGRES_DB", "dispatch_test"),
		SSLMode:  env("POSTGRES_SSLMODE", "disable"),
	}
}

func connect() (suite, error) {
	ctx := context.Background()

	zapLogger, err := zap_adapter.NewZapAdapter("dispatch-integration", "warn")
	if err != nil {
		return suite{}, fmt.Errorf("logger: %w", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	pool, err := postgres.NewConnPool(ctx, zapLogger, databaseFromEnv())
	if err != nil {
		return suite{}, fmt.Errorf("connect: %w", err)
	}

	err = postgres.Migrate(ctx, zapLogger, pool)
	if err != nil {
		pool.Close()
		return suite{}, fmt.Errorf("migrate: %w", err)
	}

	return suite{
		querier: querier.New(pool, pgxv5.DefaultCtxGetter),
		tx:      tx.New(pool),
	}, nil
}

func load() suite {
	initOnce.Do(func() {
		shared, sharedErr = connect()
	})
	if sharedErr != nil {
		panic(fmt.Sprintf("integration database: %v", sharedErr))
	}
	return shared
}

func GetQuerier() *querier.Querier {
	return load().querier
}

func GetTxManager() *tx.Manager {
	return load().tx
}

// SetupDB выполняет сид-скрипты по порядку.
func SetupDB(t *testing.T, statements ...string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	for _, statement := range statements {
		_, err := GetQuerier().Exec(ctx, statement)
		require.NoError(t, err)
	}
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := GetQuerier().Exec(ctx,
		"TRUNCATE TABLE "+strings.Join(dispatchTables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}
