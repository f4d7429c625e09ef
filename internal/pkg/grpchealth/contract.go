//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=grpchealth_test
package grpchealth

import (
	"dispatch/pkg/logger"
)

type serverLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
