// Package lzw implements an LZW codec over bytes with a growing code width.
//
// Codes start 9 bits wide.  Values 0 to 255 stand for single bytes, 256 is
// the width escape, and dictionary entries are numbered from 257 upward.
// Before a code too large for the current width, the encoder writes the
// escape at the current width and every later code is one bit wider.  Width
// never exceeds 17 bits: once the dictionary holds MaxCode-FirstCode entries
// it is frozen and the encoder keeps going with the entries it has.
//
// There is no end marker.  The stream ends when fewer bits remain than the
// current width, which the zero padding of the last byte always satisfies.
//
// Two encoders and two decoders are provided.  They differ in how the
// dictionary is kept, never in the bits they read or write.
//
// Debug events are logged through github.com/op/go-logging under the module
// name "bitpress/lzw".  Until the program installs a backend of its own,
// only warnings and above are printed.
//
package lzw

const (
	// MinWidth is the width of the first code.
	MinWidth = 9

	// MaxWidth is the largest code width.
	MaxWidth = 17

	// Escape announces that the next code is one bit wider.
	Escape = 256

	// FirstCode is the first dictionary code.
	FirstCode = 257

	// MaxCode bounds the dictionary: codes are assigned only below it.
	MaxCode = 1<<MaxWidth - 1
)
