package order_dispatch_retry

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

// OrderDispatchRetry повторно ищет райдеров для заказов, которые стали ready_for_pickup,
// когда рядом никого не было.
type OrderDispatchRetry struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func New(log handlerLogger, service Service, interval time.Duration) *OrderDispatchRetry {
	return &OrderDispatchRetry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OrderDispatchRetry) TTL() time.Duration {
	return o.interval
}

func (o *OrderDispatchRetry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	assigned, err := o.service.RetryPendingDispatch(ctxWithTimeout)
	if err != nil {
		return err
	}

	if assigned > 0 {
		o.log.Info("orders dispatched on retry",
			logger.NewField("assigned", assigned),
		)
	}
	return nil
}

func (o *OrderDispatchRetry) Info() string {
	return "order dispatch retry"
}
