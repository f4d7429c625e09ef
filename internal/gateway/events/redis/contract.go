//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=redis_test
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}
