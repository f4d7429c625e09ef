package geo

import "errors"

var (
	ErrExternalProviderFailure = errors.New("external routing provider failure")
	ErrInvalidProviderDistance = errors.New("routing provider returned invalid distance")
)
