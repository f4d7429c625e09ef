package rider

import "errors"

var (
	ErrForbidden          = errors.New("caller is not a rider")
	ErrInvalidLocation    = errors.New("invalid location")
	ErrInvalidServiceMode = errors.New("invalid service mode")

	ErrRiderNotFound    = errors.New("rider not found")
	ErrRiderBusy        = errors.New("rider already has an active job")
	ErrRiderUnavailable = errors.New("rider is not available for dispatch")
	ErrRiderNotAssigned = errors.New("rider is not assigned to this job")
	ErrConflict         = errors.New("rider conflict")
)
