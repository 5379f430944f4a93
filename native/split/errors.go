package split

import "errors"

var (
	ErrUnknownPolicy    = errors.New("split: unknown policy")
	ErrNegativeAmount   = errors.New("split: amount must be positive")
	ErrMalformedCatalog = errors.New("split: malformed policy catalog")
)
