package matcher

import "errors"

var (
	ErrInvalidInput = errors.New("invalid dispatch input")

	// ErrNoCandidateAvailable штатный исход, вызывающий оставляет работу неназначенной.
	ErrNoCandidateAvailable = errors.New("no candidate rider available")
)
