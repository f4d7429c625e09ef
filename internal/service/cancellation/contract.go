//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cancellation_test
package cancellation

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	Get(ctx context.Context, customerID string) (*entities.CancellationRecord, error)
	// Increment атомарно создает запись или увеличивает счетчик отмен.
	Increment(ctx context.Context, customerID string, at time.Time) (*entities.CancellationRecord, error)
	Update(ctx context.Context, modify entities.CancellationModify) (*entities.CancellationRecord, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
