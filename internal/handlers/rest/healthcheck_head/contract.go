//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=healthcheck_head_test
package healthcheck_head

import (
	"context"

	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
}

// Dependency внешняя зависимость, без которой сервис не может обслуживать запросы.
type Dependency interface {
	Ping(ctx context.Context) error
}
