package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

// NotifyFunc вызывается перед каждой паузой: ошибка попытки и сколько будем ждать.
type NotifyFunc func(err error, wait time.Duration)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc
	OnRetry     NotifyFunc

	// MaxAttempts ограничивает число вызовов fn, 0 = только MaxElapsedTime.
	MaxAttempts uint64
}

// Startup параметры ожидания инфраструктуры при старте процесса:
// экспоненциальная пауза от initial до 30s, не дольше двух минут в сумме.
func Startup(initial time.Duration) Config {
	return Config{
		InitialInterval: initial,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  2 * time.Minute,
		Randomization:   0.5,
		Multiplier:      2,
	}
}
