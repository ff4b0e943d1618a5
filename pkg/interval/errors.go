package interval

import "errors"

var (
	// ErrInvalidArgument is returned for an edge specifier or textual form that
	// cannot be interpreted.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotBounded is returned when an operation needs a set that is bounded
	// on the relevant side.
	ErrNotBounded = errors.New("set is not bounded")
)
