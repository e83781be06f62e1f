package huffman

import (
	"errors"
)

var (
	// ErrTooFewSymbols is returned by Encoder.Init when fewer than two
	// symbols have a non-zero frequency.
	ErrTooFewSymbols = errors.New("huffman: at least two distinct symbols are required")

	// ErrCodeTooLong is returned when a code length exceeds 31 bits.
	ErrCodeTooLong = errors.New("huffman: code length exceeds 31 bits")

	// ErrTableTooLarge is returned when the SingleTable decoder is asked
	// to index codes longer than 24 bits.
	ErrTableTooLarge = errors.New("huffman: code too long for a single lookup table")

	// ErrGuardFrequency is returned by Encode when the guard symbol occurs
	// too often for its count to fit in the header.
	ErrGuardFrequency = errors.New("huffman: guard frequency does not fit in 31 bits")

	// ErrInputChanged is returned by Encode when the second pass over the
	// input does not match the first.
	ErrInputChanged = errors.New("huffman: input changed between passes")

	// ErrCorrupt is returned when a compressed stream cannot be decoded.
	ErrCorrupt = errors.New("huffman: corrupt stream")
)
