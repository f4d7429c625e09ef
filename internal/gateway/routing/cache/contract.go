//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cache_test
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type provider interface {
	RouteDistance(ctx context.Context, origin entities.Coordinate, destination entities.Coordinate, stops []entities.Coordinate) (float64, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
