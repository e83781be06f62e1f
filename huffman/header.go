package huffman

import (
	"fmt"
	"io"

	"github.com/chronos-tachyon/bitpress/bitio"
)

// The header of a compressed stream is laid out as follows, most significant
// bit first:
//
//	3 bits      k, the bit width of the largest code size
//	256 times   "0" if the byte value is not coded, else "1" and its size in k bits
//	5 bits      s, the bit width of the guard frequency
//	s bits      the guard frequency
//
// The guard is not transmitted: both sides take the lowest byte value with
// the largest size.

// header holds the decoded fields of a stream header.
type header struct {
	sizes     []byte
	guardFreq uint32
}

// writeHeader writes the header for e, whose guard occurs guardFreq times in
// the data.
func writeHeader(w *bitio.Writer, e *Encoder, guardFreq uint32) error {
	if guardFreq > 1<<bitio.MaxReadBits-1 {
		return fmt.Errorf("%w: got %d", ErrGuardFrequency, guardFreq)
	}

	k := bitWidth(uint32(e.maxSize))
	if err := w.WriteBits(uint32(k), 3); err != nil {
		return err
	}
	for _, hc := range e.codes {
		var err error
		if hc.Size == 0 {
			err = w.WriteBit(0)
		} else {
			err = w.WriteBits(uint32(hc.Size)|1<<uint(k), k+1)
		}
		if err != nil {
			return err
		}
	}

	s := bitWidth(guardFreq)
	if err := w.WriteBits(uint32(s), 5); err != nil {
		return err
	}
	return w.WriteBits(guardFreq, s)
}

// readHeader reads a header written by writeHeader.
func readHeader(r *bitio.Reader) (header, error) {
	var h header

	k, err := readField(r, 3)
	if err != nil {
		return h, err
	}

	h.sizes = make([]byte, NumSymbols)
	for symbol := range h.sizes {
		present, err := readField(r, 1)
		if err != nil {
			return h, err
		}
		if present == 0 {
			continue
		}
		size, err := readField(r, k)
		if err != nil {
			return h, err
		}
		if size == 0 {
			return h, fmt.Errorf("%w: symbol %d is marked present with size 0", ErrCorrupt, symbol)
		}
		if size > maxBitsPerCode {
			return h, fmt.Errorf("%w: %w: symbol %d has size %d", ErrCorrupt, ErrCodeTooLong, symbol, size)
		}
		h.sizes[symbol] = byte(size)
	}

	s, err := readField(r, 5)
	if err != nil {
		return h, err
	}
	if s > bitio.MaxReadBits {
		return h, fmt.Errorf("%w: guard frequency width %d", ErrCorrupt, s)
	}
	freq, err := readField(r, s)
	if err != nil {
		return h, err
	}
	h.guardFreq = uint32(freq)
	return h, nil
}

// readField reads an n-bit header field.
func readField(r *bitio.Reader, n int) (int, error) {
	v, err := r.ReadBits(n)
	if err != nil {
		return 0, err
	}
	if v == bitio.EOS {
		return 0, fmt.Errorf("%w: header: %w", ErrCorrupt, io.ErrUnexpectedEOF)
	}
	return v, nil
}
