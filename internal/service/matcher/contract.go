//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=matcher_test
package matcher

import (
	"context"

	"dispatch/internal/entities"
)

// RiderRegistry отдает райдеров со статусом available, is_available и известной локацией.
// Для ride_service дополнительно фильтрует по режиму.
type RiderRegistry interface {
	ListDispatchCandidates(ctx context.Context, mode entities.ServiceModeType) ([]entities.Rider, error)
}

type DistanceCalculator interface {
	Distance(a, b entities.Coordinate) float64
}
