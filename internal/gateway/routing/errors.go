package routing

import "errors"

var (
	ErrNoRoute           = errors.New("routing provider found no route")
	ErrProviderRejected  = errors.New("routing provider rejected request")
	ErrProviderUnhealthy = errors.New("routing provider unavailable")
)
