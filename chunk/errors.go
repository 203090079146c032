package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals malformed construction parameters.
	ErrInvalidArgument = errors.New("chunk: invalid argument")
	// ErrRange signals a range with start after end.
	ErrRange = fmt.Errorf("%w: start after end", ErrInvalidArgument)
	// ErrEndOutOfBounds signals a range end beyond the backing storage.
	ErrEndOutOfBounds = fmt.Errorf("%w: end beyond storage bounds", ErrInvalidArgument)
	// ErrIndexOutOfBounds signals a read outside the visible bytes.
	ErrIndexOutOfBounds = errors.New("chunk: index out of bounds")
	// ErrCapacityExceeded signals a write past the fixed capacity of a chunk.
	ErrCapacityExceeded = errors.New("chunk: capacity exceeded")
)
