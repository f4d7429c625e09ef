package token_bucket

import (
	"sync"
	"time"
)

// Limiter решает, пропустить ли очередной запрос.
type Limiter interface {
	Allow() bool
}

// TokenBucket классический token bucket с дробным пополнением:
// токены копятся непрерывно со скоростью refillRate в секунду, но не выше capacity.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
	t.lastRefill = now
}

// full true, если бакет восстановился до capacity и его можно выбросить.
func (t *TokenBucket) full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity
}

// KeyedLimiter держит отдельный бакет на ключ (аккаунт, IP).
// Райдеры шлют координаты часто, общий бакет на весь сервис душил бы соседей.
type KeyedLimiter struct {
	capacity   int
	refillRate float64
	now        func() time.Time

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewKeyedLimiter(capacity int, refillRate float64) *KeyedLimiter {
	return NewKeyedLimiterWithClock(capacity, refillRate, time.Now)
}

func NewKeyedLimiterWithClock(capacity int, refillRate float64, now func() time.Time) *KeyedLimiter {
	return &KeyedLimiter{
		capacity:   capacity,
		refillRate: refillRate,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *KeyedLimiter) AllowKey(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = newTokenBucket(k.capacity, k.refillRate, k.now)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}

// Evict удаляет полностью восстановленные бакеты, возвращает сколько удалено.
func (k *KeyedLimiter) Evict() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	for key, bucket := range k.buckets {
		if bucket.full() {
			delete(k.buckets, key)
			removed++
		}
	}
	return removed
}

func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}
