package yield

import "errors"

var (
	ErrInvalidTimestamp = errors.New("yield: invalid capsule timestamp")
	ErrScoreOutOfRange  = errors.New("yield: score out of range")
)
