package metrics

import (
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}
