package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/routing"
	"dispatch/pkg/logger"
)

const (
	DefaultTTL = 15 * time.Minute
	keyPrefix  = "route:"
	// 5 знаков ~ 1 метр, соседние запросы с того же места попадают в один ключ
	keyPrecision = 5
)

// RouteCache оборачивает провайдера маршрутов. Redis здесь только ускоритель:
// его ошибки логируются и запрос идет к провайдеру.
type RouteCache struct {
	next   provider
	client redisClient
	ttl    time.Duration
	log    handlerLogger
}

func New(next provider, client redisClient, ttl time.Duration, log handlerLogger) *RouteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RouteCache{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *RouteCache) RouteDistance(
	ctx context.Context,
	origin entities.Coordinate,
	destination entities.Coordinate,
	stops []entities.Coordinate,
) (float64, error) {
	key := routeKey(origin, destination, stops)

	cached, err := c.client.Get(ctx, key).Float64()
	switch {
	case err == nil:
		routing.RouteCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, redis.Nil):
		routing.RouteCacheTotal.WithLabelValues("miss").Inc()
	default:
		routing.RouteCacheTotal.WithLabelValues("error").Inc()
		c.log.Warn("route cache get failed", logger.NewField("key", key), logger.NewField("error", err))
	}

	km, err := c.next.RouteDistance(ctx, origin, destination, stops)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, km, c.ttl).Err(); err != nil {
		c.log.Warn("route cache set failed", logger.NewField("key", key), logger.NewField("error", err))
	}

	return km, nil
}

func routeKey(origin, destination entities.Coordinate, stops []entities.Coordinate) string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	writePoint(&b, origin)
	for _, stop := range stops {
		b.WriteByte('|')
		writePoint(&b, stop)
	}
	b.WriteByte('|')
	writePoint(&b, destination)
	return b.String()
}

func writePoint(b *strings.Builder, c entities.Coordinate) {
	b.WriteString(strconv.FormatFloat(c.Latitude, 'f', keyPrecision, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(c.Longitude, 'f', keyPrecision, 64))
}
