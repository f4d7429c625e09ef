package cancellation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidCustomerID = errors.New("invalid customer id")
	ErrRecordNotFound    = errors.New("cancellation record not found")
	ErrConflict          = errors.New("cancellation record conflict")
	ErrSuspensionActive  = errors.New("customer suspension active")
)

// SuspensionError несет причину и срок блокировки до клиента.
type SuspensionError struct {
	Reason string
	Until  time.Time
}

func (e *SuspensionError) Error() string {
	return fmt.Sprintf("%s until %s: %s", ErrSuspensionActive, e.Until.UTC().Format(time.RFC3339), e.Reason)
}

func (e *SuspensionError) Is(target error) bool {
	return target == ErrSuspensionActive
}
