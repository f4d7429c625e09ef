package entities

import "time"

type CancellationRecord struct {
	CustomerID         string
	TotalCancellations int64
	LastCancellationAt *time.Time
	PendingPenalty     float64
	SuspendedUntil     *time.Time
	SuspensionReason   *string
	UpdatedAt          time.Time
}

// Suspended активна ли блокировка на момент now.
func (r *CancellationRecord) Suspended(now time.Time) bool {
	return r.SuspendedUntil != nil && r.SuspendedUntil.After(now)
}

type ConsequenceType string

const (
	ConsequenceWarning    ConsequenceType = "warning"
	ConsequencePenalty    ConsequenceType = "penalty"
	ConsequenceSuspension ConsequenceType = "suspension"
)

func (t ConsequenceType) String() string {
	return string(t)
}

type PolicyOutcome struct {
	Record      CancellationRecord
	Consequence ConsequenceType
	Message     string
}

type CancellationModify struct {
	CustomerID       *string
	PendingPenalty   *float64
	SuspendedUntil   *time.Time
	SuspensionReason *string
}
