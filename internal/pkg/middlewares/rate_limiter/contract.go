package rate_limiter

import (
	"dispatch/pkg/logger"
)

// Limiter отдельный бакет на ключ, см. token_bucket.KeyedLimiter.
type Limiter interface {
	AllowKey(key string) bool
}

// handlerLogger пишет только через With, поля запроса нужны в каждой записи.
type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}
