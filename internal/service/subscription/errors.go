package subscription

import "errors"

var (
	ErrUnknownChannel = errors.New("unknown channel")
	ErrForbidden      = errors.New("caller cannot subscribe to this channel")
)
