package cancellation

import "time"

type CancellationDB struct {
	CustomerID         string
	TotalCancellations int64
	LastCancellationAt *time.Time
	PendingPenalty     float64
	SuspendedUntil     *time.Time
	SuspensionReason   *string
	UpdatedAt          time.Time
}

type CancellationModifyDB struct {
	CustomerID       *string
	PendingPenalty   *float64
	SuspendedUntil   *time.Time
	SuspensionReason *string
}

const cancellationColumns = `customer_id, total_cancellations, last_cancellation_at,
	pending_penalty, suspended_until, suspension_reason, updated_at`

func (c *CancellationDB) scanTargets() []any {
	return []any{
		&c.CustomerID,
		&c.TotalCancellations,
		&c.LastCancellationAt,
		&c.PendingPenalty,
		&c.SuspendedUntil,
		&c.SuspensionReason,
		&c.UpdatedAt,
	}
}
