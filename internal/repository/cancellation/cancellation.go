package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/cancellation"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Get(ctx context.Context, customerID string) (*entities.CancellationRecord, error) {
	query := `SELECT ` + cancellationColumns + `
		FROM customer_cancellations
		WHERE customer_id = $1`

	var model CancellationDB
	err := r.querier.QueryRow(ctx, query, customerID).Scan(model.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cancellation.ErrRecordNotFound
		}
		return nil, fmt.Errorf("unexpected cancellation repository get error: %w", err)
	}

	return ToDomain(&model), nil
}

// Increment upsert: первая отмена создает запись, следующие увеличивают счетчик в одной строке.
func (r *Repository) Increment(ctx context.Context, customerID string, at time.Time) (*entities.CancellationRecord, error) {
	query := `INSERT INTO customer_cancellations (customer_id, total_cancellations, last_cancellation_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (customer_id) DO UPDATE
		SET total_cancellations = customer_cancellations.total_cancellations + 1,
			last_cancellation_at = EXCLUDED.last_cancellation_at,
			updated_at = NOW()
		RETURNING ` + cancellationColumns

	var model CancellationDB
	err := r.querier.QueryRow(ctx, query, customerID, at).Scan(model.scanTargets()...)
	if err != nil {
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", cancellation.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected cancellation repository increment error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) Update(ctx context.Context, modify entities.CancellationModify) (*entities.CancellationRecord, error) {
	modifyModel := FromDomainModify(&modify)
	if modifyModel.CustomerID == nil {
		return nil, fmt.Errorf("unexpected cancellation repository update error: customer id is required")
	}

	builder := qb.
		Update("customer_cancellations")

	// опциональные поля
	if modifyModel.PendingPenalty != nil {
		builder = builder.Set("pending_penalty", modifyModel.PendingPenalty)
	}
	if modifyModel.SuspendedUntil != nil {
		builder = builder.Set("suspended_until", modifyModel.SuspendedUntil)
	}
	if modifyModel.SuspensionReason != nil {
		builder = builder.Set("suspension_reason", modifyModel.SuspensionReason)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"customer_id": *modifyModel.CustomerID}).
		Suffix("RETURNING " + cancellationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected cancellation repository update error: %w", err)
	}

	var model CancellationDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(model.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cancellation.ErrRecordNotFound
		}
		if repository.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w", cancellation.ErrConflict, err)
		}
		return nil, fmt.Errorf("unexpected cancellation repository update error: %w", err)
	}

	return ToDomain(&model), nil
}
