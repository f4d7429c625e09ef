package cancellation

import (
	"dispatch/internal/entities"
)

func ToDomain(c *CancellationDB) *entities.CancellationRecord {
	if c == nil {
		return nil
	}

	return &entities.CancellationRecord{
		CustomerID:         c.CustomerID,
		TotalCancellations: c.TotalCancellations,
		LastCancellationAt: c.LastCancellationAt,
		PendingPenalty:     c.PendingPenalty,
		SuspendedUntil:     c.SuspendedUntil,
		SuspensionReason:   c.SuspensionReason,
		UpdatedAt:          c.UpdatedAt,
	}
}

func FromDomainModify(m *entities.CancellationModify) *CancellationModifyDB {
	if m == nil {
		return nil
	}

	return &CancellationModifyDB{
		CustomerID:       m.CustomerID,
		PendingPenalty:   m.PendingPenalty,
		SuspendedUntil:   m.SuspendedUntil,
		SuspensionReason: m.SuspensionReason,
	}
}
