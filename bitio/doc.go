// Package bitio implements buffered bit-granularity views over byte streams.
//
// Bits are packed most-significant-bit first within each byte, so the first
// bit written by a Writer is the high bit of the first output byte.  A Reader
// hands out up to 31 bits per call; the value EOS (-1) signals that fewer bits
// than requested remain, which is why 32-bit reads are not offered.
//
// Beyond plain reads, a Reader can peek and skip bits, push back (unread) the
// bits most recently read, and insert arbitrary bits at the front of the
// stream.  Table-driven decoders use unread to read a fixed-width chunk,
// resolve it through a lookup table, and then return the bits that belonged to
// the following symbol.
//
// Neither Reader nor Writer is safe for concurrent use.
//
package bitio

// DefaultBufferSize is the size of the internal byte buffer used by NewReader
// and NewWriter.
const DefaultBufferSize = 4096

// EOS is the value returned by the bit-reading methods of Reader when the
// stream holds fewer bits than were requested.
const EOS = -1

// MaxReadBits is the largest bit count accepted by Reader.ReadBits and
// Reader.PeekBits.
const MaxReadBits = 31

// MaxWriteBits is the largest bit count accepted by Writer.WriteBits.
const MaxWriteBits = 32

// safeReadBits is the largest read that can never overflow the 32-bit bit
// buffer of a Reader, whatever its fill level.
const safeReadBits = 25

func mask(n int) uint32 {
	return uint32(1)<<uint(n) - 1
}
