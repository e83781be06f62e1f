package bitio

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/chronos-tachyon/assert"
	icza "github.com/icza/bitio"
)

// Writer is a buffered sink of bits.
//
// Bit packing is done by an icza/bitio Writer.  The bytes it completes go
// to an internal byte buffer, which is written to the underlying io.Writer
// when it fills up, on Flush, and on Close.  Write errors are sticky: once
// the underlying io.Writer fails, every later call returns the same error.
type Writer struct {
	dst  io.Writer
	sink *byteSink
	bw   *icza.Writer

	// pending counts the bits of the last, incomplete byte.
	pending int
}

// NewWriter returns a Writer with a buffer of DefaultBufferSize bytes.
func NewWriter(dst io.Writer) *Writer {
	w, err := NewWriterSize(dst, DefaultBufferSize)
	assert.Assertf(err == nil, "NewWriterSize failed with default size: %v", err)
	return w
}

// NewWriterSize returns a Writer whose internal byte buffer holds size bytes.
func NewWriterSize(dst io.Writer, size int) (*Writer, error) {
	assert.Assertf(dst != nil, "dst is nil")
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBufferSize, size)
	}
	sink := &byteSink{dst: dst, buf: make([]byte, size)}
	return &Writer{dst: dst, sink: sink, bw: icza.NewWriter(sink)}, nil
}

func (w *Writer) check() error {
	if w.dst == nil {
		return ErrClosed
	}
	return w.bw.TryError
}

func (w *Writer) advance(n int) error {
	if err := w.bw.TryError; err != nil {
		return err
	}
	w.pending = (w.pending + n) & 7
	return nil
}

// WriteBit writes the low bit of bit.
func (w *Writer) WriteBit(bit int) error {
	if err := w.check(); err != nil {
		return err
	}
	w.bw.TryWriteBool(bit&1 == 1)
	return w.advance(1)
}

// WriteBits writes the low n bits of value, most significant first.
// n must lie in [0, 32]; writing 0 bits does nothing.
func (w *Writer) WriteBits(value uint32, n int) error {
	if err := w.check(); err != nil {
		return err
	}
	if n < 0 || n > MaxWriteBits {
		return fmt.Errorf("%w: cannot write %d bits", ErrBitCount, n)
	}
	w.bw.TryWriteBits(uint64(value), uint8(n))
	return w.advance(n)
}

// WriteLeftBits writes the n most significant bits of value.
func (w *Writer) WriteLeftBits(value uint32, n int) error {
	if n == 0 {
		return w.check()
	}
	if n < 0 || n > MaxWriteBits {
		return fmt.Errorf("%w: cannot write %d bits", ErrBitCount, n)
	}
	return w.WriteBits(value>>uint(32-n), n)
}

// WriteValue writes the significant bits of value, that is every bit from
// the highest 1-bit down.  Zero is written as a single 0-bit.
func (w *Writer) WriteValue(value uint32) error {
	return w.WriteBits(value, max(bits.Len32(value), 1))
}

// WriteByte writes the 8 bits of b.  It implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	if err := w.check(); err != nil {
		return err
	}
	w.bw.TryWriteByte(b)
	return w.bw.TryError
}

// Write writes every byte of p as 8 bits, whatever the current bit
// alignment.  It implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.check(); err != nil {
		return 0, err
	}
	n := w.bw.TryWrite(p)
	return n, w.bw.TryError
}

// MissingBits returns the number of 0-bits that Flush would append to
// complete the last byte.
func (w *Writer) MissingBits() (int, error) {
	if err := w.check(); err != nil {
		return 0, err
	}
	return (8 - w.pending) & 7, nil
}

// Flush pads the pending bits with 0-bits up to a byte boundary and writes
// everything buffered to the underlying io.Writer, flushing that as well if
// it has a Flush method.
func (w *Writer) Flush() error {
	if err := w.check(); err != nil {
		return err
	}
	w.bw.TryAlign()
	if err := w.bw.TryError; err != nil {
		return err
	}
	w.pending = 0
	if err := w.sink.flush(); err != nil {
		w.bw.TryError = err
		return err
	}
	if f, ok := w.dst.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			w.bw.TryError = err
			return err
		}
	}
	return nil
}

// Close flushes w and closes the underlying io.Writer if it implements
// io.Closer.  The underlying io.Writer is closed even if the flush fails.
// Every later call on w fails with ErrClosed, except Close itself which does
// nothing.
func (w *Writer) Close() error {
	if w.dst == nil {
		return nil
	}
	err := w.Flush()
	dst := w.dst
	w.dst = nil
	w.sink = nil
	w.pending = 0
	if c, ok := dst.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// byteSink is a fixed-size byte buffer in front of the underlying io.Writer.
// Because it is an io.ByteWriter, the icza/bitio Writer feeds it directly
// instead of wrapping it in a bufio.Writer of its own.
type byteSink struct {
	dst io.Writer
	buf []byte
	pos int
}

func (s *byteSink) flush() error {
	if s.pos == 0 {
		return nil
	}
	n, err := s.dst.Write(s.buf[:s.pos])
	if err == nil && n < s.pos {
		err = io.ErrShortWrite
	}
	s.pos = 0
	return err
}

func (s *byteSink) WriteByte(b byte) error {
	if s.pos >= len(s.buf) {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.buf[s.pos] = b
	s.pos++
	return nil
}

func (s *byteSink) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if s.pos >= len(s.buf) {
			if err := s.flush(); err != nil {
				return total, err
			}
		}
		n := copy(s.buf[s.pos:], p)
		s.pos += n
		total += n
		p = p[n:]
	}
	return total, nil
}

var _ io.ByteWriter = (*Writer)(nil)
var _ io.WriteCloser = (*Writer)(nil)
var _ io.ByteWriter = (*byteSink)(nil)
