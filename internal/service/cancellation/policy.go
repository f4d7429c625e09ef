package cancellation

import (
	"fmt"
	"time"

	"dispatch/internal/entities"
)

const (
	DefaultPenaltyAmount = 5.0

	shortSuspension = 3 * 24 * time.Hour
	longSuspension  = 7 * 24 * time.Hour
)

// indefiniteUntil дата "навсегда", хранится как обычный timestamp.
func indefiniteUntil(now time.Time) time.Time {
	return now.AddDate(100, 0, 0)
}

type consequence struct {
	kind           entities.ConsequenceType
	message        string
	pendingPenalty *float64
	suspendedUntil *time.Time
	reason         *string
}

// ladder считается по количеству отмен уже после инкремента.
func ladder(total int64, penaltyAmount float64, now time.Time) consequence {
	suspend := func(until time.Time, reason, message string) consequence {
		return consequence{
			kind:           entities.ConsequenceSuspension,
			message:        message,
			suspendedUntil: &until,
			reason:         &reason,
		}
	}

	switch {
	case total <= 1:
		return consequence{
			kind:    entities.ConsequenceWarning,
			message: "Warning: further cancellations will result in penalties",
		}
	case total == 2:
		return consequence{
			kind:           entities.ConsequencePenalty,
			message:        fmt.Sprintf("A cancellation fee of %.2f will be added to your next ride", penaltyAmount),
			pendingPenalty: &penaltyAmount,
		}
	case total == 3:
		return suspend(now.Add(shortSuspension),
			"3 cancellations: ride booking suspended for 3 days",
			"Your account is suspended for 3 days due to repeated cancellations")
	case total == 4:
		return suspend(now.Add(longSuspension),
			"4 cancellations: ride booking suspended for 7 days",
			"Your account is suspended for 7 days due to repeated cancellations")
	default:
		return suspend(indefiniteUntil(now),
			fmt.Sprintf("%d cancellations: ride booking suspended indefinitely", total),
			"Your account is suspended indefinitely due to excessive cancellations")
	}
}
