package tier

import "errors"

var (
	ErrUnknownTier      = errors.New("tier: unknown tier")
	ErrMalformedCatalog = errors.New("tier: malformed catalog")
)
