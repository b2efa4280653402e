package codec

import "errors"

var (
	// ErrMissingCodec is returned when the engine a task's algorithm
	// requires is not registered.
	ErrMissingCodec = errors.New("codec engine not registered")

	// ErrUnsupportedAlgorithm is returned for algorithm identities absent
	// from the dispatch table.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidFrameInfo is returned when frame metadata is out of range.
	ErrInvalidFrameInfo = errors.New("invalid frame info")

	// ErrCorruptStream is returned when a compressed bitstream cannot be
	// decoded.
	ErrCorruptStream = errors.New("corrupt compressed stream")
)
