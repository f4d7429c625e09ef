package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

type Config struct {
	PenaltyAmount float64
}

type Engine struct {
	repository    Repository
	txManager     TxManager
	penaltyAmount float64
}

func New(repository Repository, txManager TxManager, cfg Config) *Engine {
	penalty := cfg.PenaltyAmount
	if penalty <= 0 {
		penalty = DefaultPenaltyAmount
	}

	return &Engine{
		repository:    repository,
		txManager:     txManager,
		penaltyAmount: penalty,
	}
}

func (e *Engine) RecordCancellation(ctx context.Context, customerID string) (entities.PolicyOutcome, error) {
	if !isValidCustomerID(customerID) {
		return entities.PolicyOutcome{}, ErrInvalidCustomerID
	}

	var outcome entities.PolicyOutcome
	err := e.txManager.Do(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		record, err := e.repository.Increment(ctx, customerID, now)
		if err != nil {
			return fmt.Errorf("increment cancellations: %w", err)
		}

		next := ladder(record.TotalCancellations, e.penaltyAmount, now)
		if next.pendingPenalty != nil || next.suspendedUntil != nil {
			record, err = e.repository.Update(ctx, entities.CancellationModify{
				CustomerID:       &customerID,
				PendingPenalty:   next.pendingPenalty,
				SuspendedUntil:   next.suspendedUntil,
				SuspensionReason: next.reason,
			})
			if err != nil {
				return fmt.Errorf("apply cancellation consequence: %w", err)
			}
		}

		outcome = entities.PolicyOutcome{
			Record:      *record,
			Consequence: next.kind,
			Message:     next.message,
		}
		return nil
	})
	if err != nil {
		return entities.PolicyOutcome{}, err
	}

	CancellationsTotal.WithLabelValues(outcome.Consequence.String()).Inc()
	return outcome, nil
}

// CheckSuspension возвращает *SuspensionError, пока suspended_until в будущем.
func (e *Engine) CheckSuspension(ctx context.Context, customerID string) error {
	record, err := e.GetRecord(ctx, customerID)
	if err != nil {
		return err
	}

	if record.Suspended(time.Now().UTC()) {
		reason := ""
		if record.SuspensionReason != nil {
			reason = *record.SuspensionReason
		}
		return &SuspensionError{
			Reason: reason,
			Until:  *record.SuspendedUntil,
		}
	}

	return nil
}

// PendingPenalty для расчета цены без списания.
func (e *Engine) PendingPenalty(ctx context.Context, customerID string) (float64, error) {
	record, err := e.GetRecord(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return record.PendingPenalty, nil
}

// ChargePendingPenalty возвращает штраф и обнуляет его, вызывается внутри транзакции создания поездки.
func (e *Engine) ChargePendingPenalty(ctx context.Context, customerID string) (float64, error) {
	if !isValidCustomerID(customerID) {
		return 0, ErrInvalidCustomerID
	}

	var charged float64
	err := e.txManager.Do(ctx, func(ctx context.Context) error {
		record, err := e.repository.Get(ctx, customerID)
		if err != nil {
			if errors.Is(err, ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("get cancellation record: %w", err)
		}

		if record.PendingPenalty <= 0 {
			return nil
		}

		zero := 0.0
		_, err = e.repository.Update(ctx, entities.CancellationModify{
			CustomerID:     &customerID,
			PendingPenalty: &zero,
		})
		if err != nil {
			return fmt.Errorf("clear pending penalty: %w", err)
		}

		charged = record.PendingPenalty
		return nil
	})
	if err != nil {
		return 0, err
	}

	return charged, nil
}

// GetRecord отсутствие записи не ошибка, возвращается нулевая запись.
func (e *Engine) GetRecord(ctx context.Context, customerID string) (*entities.CancellationRecord, error) {
	if !isValidCustomerID(customerID) {
		return nil, ErrInvalidCustomerID
	}

	record, err := e.repository.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return &entities.CancellationRecord{CustomerID: customerID}, nil
		}
		return nil, fmt.Errorf("get cancellation record: %w", err)
	}

	return record, nil
}
