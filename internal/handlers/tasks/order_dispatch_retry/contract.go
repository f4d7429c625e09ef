//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_dispatch_retry_test
package order_dispatch_retry

import (
	"context"

	"dispatch/pkg/logger"
)

type Service interface {
	RetryPendingDispatch(ctx context.Context) (int, error)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
}
