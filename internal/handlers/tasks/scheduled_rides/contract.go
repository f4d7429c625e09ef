//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=scheduled_rides_test
package scheduled_rides

import (
	"context"

	"dispatch/pkg/logger"
)

type Service interface {
	DispatchDueRides(ctx context.Context) (int, error)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
}
