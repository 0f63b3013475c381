package merge

import "errors"

var (
	// ErrInvalidArgumentType is returned when a value is neither a collection
	// nor something that can live inside one.
	ErrInvalidArgumentType = errors.New("invalid argument type")

	// ErrMaxDepthExceeded is returned when input nests deeper than Options.MaxDepth.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")

	// ErrKeyCollision is returned when a positional and a named key of one
	// collection render to the same text, e.g. 0 and "0".
	ErrKeyCollision = errors.New("key collision")
)
