package backoff_adapter

import (
	"context"
	"fmt"
	"time"

	"dispatch/pkg/logger"
	"dispatch/pkg/retrier"
)

type waitLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

// WaitReady ретраит ping, пока зависимость не ответит или не выйдет cfg.MaxElapsedTime.
func WaitReady(ctx context.Context, log waitLogger, name string, cfg retrier.Config, ping func(context.Context) error) error {
	var attempt uint64
	cfg.OnRetry = func(err error, wait time.Duration) {
		log.Warn(name+" not ready, retrying",
			logger.NewField("attempt", attempt),
			logger.NewField("wait", wait.String()),
			logger.NewField("error", err),
		)
	}

	err := New(cfg).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return ping(ctx)
	})
	if err != nil {
		log.Error(name+" connection failed after retries",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("%s not ready after %d attempts: %w", name, attempt, err)
	}

	log.Info(name+" connection established", logger.NewField("attempts", attempt))
	return nil
}
