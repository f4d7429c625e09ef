package rate_limiter_evict

import (
	"context"
	"time"

	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/pkg/logger"
)

// RateLimiterEvict чистит бакеты аккаунтов, которые успели полностью восстановиться.
type RateLimiterEvict struct {
	log      handlerLogger
	limiter  Limiter
	interval time.Duration
}

func New(log handlerLogger, limiter Limiter, interval time.Duration) *RateLimiterEvict {
	return &RateLimiterEvict{
		log:      log,
		limiter:  limiter,
		interval: interval,
	}
}

func (t *RateLimiterEvict) TTL() time.Duration {
	return t.interval
}

func (t *RateLimiterEvict) Do(_ context.Context) error {
	removed := t.limiter.Evict()
	remaining := t.limiter.Len()
	rate_limiter.TrackedKeys.Set(float64(remaining))

	if removed > 0 {
		t.log.Debug("rate limiter buckets evicted",
			logger.NewField("removed", removed),
			logger.NewField("remaining", remaining),
		)
	}
	return nil
}

func (t *RateLimiterEvict) Info() string {
	return "rate limiter eviction"
}
