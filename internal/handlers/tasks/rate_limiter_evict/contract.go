//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rate_limiter_evict_test
package rate_limiter_evict

import (
	"dispatch/pkg/logger"
)

type Limiter interface {
	Evict() int
	Len() int
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
}
