package bitio

import (
	"errors"
)

var (
	// ErrClosed is returned by every operation on a Reader or Writer after
	// Close has been called.
	ErrClosed = errors.New("bitio: stream closed")

	// ErrBitCount is returned when a bit count lies outside the interval
	// accepted by the operation.
	ErrBitCount = errors.New("bitio: bit count out of range")

	// ErrBufferSize is returned by the constructors for a non-positive
	// buffer size.
	ErrBufferSize = errors.New("bitio: buffer size must be positive")

	// ErrUnreadSize is returned when more bits are unread than the most
	// recent read allows.
	ErrUnreadSize = errors.New("bitio: not enough bits to unread")

	// ErrInsertSize is returned when more bits are inserted than the bit
	// buffer has room for.
	ErrInsertSize = errors.New("bitio: not enough room to insert bits")
)
