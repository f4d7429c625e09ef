package ride

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid ride input")

	ErrInvalidRideID        = fmt.Errorf("%w: ride id is empty", ErrInvalidInput)
	ErrInvalidStatus        = fmt.Errorf("%w: unknown ride status", ErrInvalidInput)
	ErrInvalidLocation      = fmt.Errorf("%w: invalid coordinates", ErrInvalidInput)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unsupported payment method", ErrInvalidInput)

	ErrRideNotFound        = errors.New("ride not found")
	ErrInvalidTransition   = errors.New("invalid ride status transition")
	ErrRideAlreadyAssigned = errors.New("ride already has a rider")
	ErrRideNotDue          = errors.New("scheduled ride is not due yet")
	ErrWrongServiceMode    = errors.New("rider is not in ride service mode")
	ErrRiderNotAssigned    = errors.New("ride has no assigned rider")
	ErrForbidden           = errors.New("operation not permitted for caller")
	ErrConflict            = errors.New("ride conflict")
)
