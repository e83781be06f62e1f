package bitio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Reader is a buffered source of bits.
//
// Bytes move from the underlying io.Reader into an internal byte buffer, and
// from there one at a time into a 32-bit bit buffer from which bits are
// handed out.  The low bitSize bits of the bit buffer are the bits not yet
// read; the bits above them are the most recently read ones, which is what
// makes unread possible.
type Reader struct {
	src io.Reader
	buf []byte

	// buf[pos:end] holds bytes not yet moved into the bit buffer.
	pos int
	end int
	eof bool

	bits    uint32
	bitSize int

	// unreadSize is the number of bits that may currently be pushed back.
	// It is reset by every successful read and reduced by unread and
	// insert.  Peek and skip zero it, as does a source that runs dry or
	// fails.
	unreadSize int
}

// NewReader returns a Reader with a buffer of DefaultBufferSize bytes.
func NewReader(src io.Reader) *Reader {
	r, err := NewReaderSize(src, DefaultBufferSize)
	assert.Assertf(err == nil, "NewReaderSize failed with default size: %v", err)
	return r
}

// NewReaderSize returns a Reader whose internal byte buffer holds size bytes.
func NewReaderSize(src io.Reader, size int) (*Reader, error) {
	assert.Assertf(src != nil, "src is nil")
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBufferSize, size)
	}
	return &Reader{src: src, buf: make([]byte, size)}, nil
}

// FromBytes returns a Reader over b.  The buffer is no larger than b.
func FromBytes(b []byte) *Reader {
	size := DefaultBufferSize
	if len(b) < size {
		size = len(b)
	}
	if size == 0 {
		size = 1
	}
	r, err := NewReaderSize(bytes.NewReader(b), size)
	assert.Assertf(err == nil, "NewReaderSize failed: %v", err)
	return r
}

func (r *Reader) check() error {
	if r.src == nil {
		return ErrClosed
	}
	return nil
}

// fill refills the byte buffer.  It returns false at end of stream.
func (r *Reader) fill() (bool, error) {
	if r.src == nil {
		return false, ErrClosed
	}
	r.pos, r.end = 0, 0
	for !r.eof {
		n, err := r.src.Read(r.buf)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			r.unreadSize = 0
			return false, err
		}
		if n > 0 {
			r.end = n
			return true, nil
		}
	}
	r.unreadSize = 0
	return false, nil
}

// load shifts the next byte into the bit buffer.  It returns false at end of
// stream.
func (r *Reader) load() (bool, error) {
	if r.pos >= r.end {
		ok, err := r.fill()
		if !ok {
			return false, err
		}
	}
	r.bits = r.bits<<8 | uint32(r.buf[r.pos])
	r.pos++
	r.bitSize += 8
	return true, nil
}

// ensure loads bytes until at least n bits are buffered.  n must not exceed
// 25 unless the bit buffer is already that full.
func (r *Reader) ensure(n int) (bool, error) {
	for r.bitSize < n {
		ok, err := r.load()
		if !ok {
			return false, err
		}
	}
	return true, nil
}

// Buffered returns the number of bits that can be read without touching the
// underlying io.Reader.
func (r *Reader) Buffered() (int, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	return r.bitSize + 8*(r.end-r.pos), nil
}

// ReadBit returns the next bit, or EOS if the stream is exhausted.
func (r *Reader) ReadBit() (int, error) {
	if err := r.check(); err != nil {
		return EOS, err
	}
	if r.bitSize <= 0 {
		ok, err := r.load()
		if !ok {
			return EOS, err
		}
	}
	r.bitSize--
	r.unreadSize = 1
	return int(r.bits>>uint(r.bitSize)) & 1, nil
}

// ReadBits returns the next n bits, 0 <= n <= 31, as the low bits of the
// result.  If fewer than n bits remain, ReadBits returns EOS; Buffered then
// reports exactly how many are left.
//
// After a read of at most 25 bits all of them can be unread.  A longer read
// may overflow the bit buffer, in which case the overflowed bits are consumed
// for good and only the remaining ones (never fewer than 25) can be unread.
//
func (r *Reader) ReadBits(n int) (int, error) {
	if err := r.check(); err != nil {
		return EOS, err
	}
	if n < 0 || n > MaxReadBits {
		return EOS, fmt.Errorf("%w: cannot read %d bits", ErrBitCount, n)
	}

	if n <= safeReadBits {
		if ok, err := r.ensure(n); !ok {
			return EOS, err
		}
		r.bitSize -= n
		r.unreadSize = n
		return int((r.bits >> uint(r.bitSize)) & mask(n)), nil
	}

	if ok, err := r.ensure(safeReadBits); !ok {
		return EOS, err
	}
	if n <= r.bitSize {
		r.bitSize -= n
		r.unreadSize = n
		return int((r.bits >> uint(r.bitSize)) & mask(n)), nil
	}

	// 25 <= bitSize < n <= 31: one more byte is needed, and loading it
	// pushes bitSize-24 bits out of the top of the bit buffer.  Keep them
	// in saved so they can still be returned.
	saved := r.bits & mask(r.bitSize)
	oldSize := r.bitSize
	if ok, err := r.load(); !ok {
		return EOS, err
	}
	diff := n - oldSize
	assert.Assertf(diff >= 1 && diff <= 6, "diff %d outside [1,6]", diff)
	r.bitSize = 8 - diff
	r.unreadSize = diff + 24
	return int(saved<<uint(diff) | (r.bits>>uint(r.bitSize))&mask(diff)), nil
}

// ReadByte reads 8 bits.  It implements io.ByteReader and returns io.EOF if
// fewer than 8 bits remain.
func (r *Reader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	if err != nil {
		return 0, err
	}
	if v == EOS {
		return 0, io.EOF
	}
	return byte(v), nil
}

// PeekBit returns the next bit without consuming it, or EOS.
func (r *Reader) PeekBit() (int, error) {
	if err := r.check(); err != nil {
		return EOS, err
	}
	r.unreadSize = 0
	if r.bitSize <= 0 {
		ok, err := r.load()
		if !ok {
			return EOS, err
		}
	}
	return int(r.bits>>uint(r.bitSize-1)) & 1, nil
}

// PeekBits returns the next n bits without consuming them, or EOS.
func (r *Reader) PeekBits(n int) (int, error) {
	if err := r.check(); err != nil {
		return EOS, err
	}
	if n < 0 || n > MaxReadBits {
		return EOS, fmt.Errorf("%w: cannot peek %d bits", ErrBitCount, n)
	}
	r.unreadSize = 0

	if n <= safeReadBits {
		if ok, err := r.ensure(n); !ok {
			return EOS, err
		}
		return int((r.bits >> uint(r.bitSize-n)) & mask(n)), nil
	}

	if ok, err := r.ensure(safeReadBits); !ok {
		return EOS, err
	}
	if n <= r.bitSize {
		return int((r.bits >> uint(r.bitSize-n)) & mask(n)), nil
	}

	// The missing bits are taken straight from the byte buffer, which
	// leaves the bit buffer untouched.
	if r.pos >= r.end {
		ok, err := r.fill()
		if !ok {
			return EOS, err
		}
	}
	diff := n - r.bitSize
	next := uint32(r.buf[r.pos]) >> uint(8-diff)
	return int((r.bits<<uint(diff) | next) & mask(n)), nil
}

// SkipBits discards up to n bits and returns the number actually skipped,
// which is less than n only at end of stream.  Non-positive n skips nothing
// but, like any skip, ends the unread budget of the previous read.
func (r *Reader) SkipBits(n int) (int, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	r.unreadSize = 0
	if n <= 0 {
		return 0, nil
	}

	if n <= r.bitSize {
		r.bitSize -= n
		return n, nil
	}

	skipped := r.bitSize
	r.bitSize = 0
	for n-skipped >= 8 {
		if r.pos >= r.end {
			ok, err := r.fill()
			if !ok {
				return skipped, err
			}
		}
		whole := (n - skipped) / 8
		if avail := r.end - r.pos; whole > avail {
			whole = avail
		}
		r.pos += whole
		skipped += 8 * whole
	}
	if rest := n - skipped; rest > 0 {
		ok, err := r.load()
		if !ok {
			return skipped, err
		}
		r.bitSize -= rest
		skipped = n
	}
	return skipped, nil
}

// UnreadBit pushes back the most recently read bit that has not already been
// pushed back.
func (r *Reader) UnreadBit() error {
	return r.UnreadBits(1)
}

// UnreadBits pushes back the n most recently read bits that have not already
// been pushed back.  n must not exceed UnreadSize.
func (r *Reader) UnreadBits(n int) error {
	if err := r.check(); err != nil {
		return err
	}
	if n < 0 || n > r.unreadSize {
		return fmt.Errorf("%w: requested %d, available %d", ErrUnreadSize, n, r.unreadSize)
	}
	r.unreadSize -= n
	r.bitSize += n
	return nil
}

// UnreadAll pushes back as many of the most recently read bits as possible.
func (r *Reader) UnreadAll() error {
	if err := r.check(); err != nil {
		return err
	}
	r.bitSize += r.unreadSize
	r.unreadSize = 0
	return nil
}

// UnreadSize returns the number of bits that can be pushed back right now.
func (r *Reader) UnreadSize() (int, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	return r.unreadSize, nil
}

// InsertSize returns the number of bits that can be inserted right now.
// After a read it is always at least the number of bits read, up to 25.
func (r *Reader) InsertSize() (int, error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	return 32 - r.bitSize, nil
}

// InsertBit inserts the low bit of bit at the front of the stream.
func (r *Reader) InsertBit(bit int) error {
	return r.InsertBits(uint32(bit), 1)
}

// InsertBits inserts the low n bits of value at the front of the stream, so
// that they are the next bits read.  The unread budget shrinks by n.
func (r *Reader) InsertBits(value uint32, n int) error {
	if err := r.check(); err != nil {
		return err
	}
	if n < 0 || n > 32-r.bitSize {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsertSize, n, 32-r.bitSize)
	}

	if n == 32 {
		r.bits = value
	} else {
		low := r.bits & mask(r.bitSize)
		high := r.bits &^ mask(r.bitSize)
		r.bits = low | high<<uint(n) | (value&mask(n))<<uint(r.bitSize)
	}
	r.unreadSize -= n
	if r.unreadSize < 0 {
		r.unreadSize = 0
	}
	r.bitSize += n
	return nil
}

// Close closes the underlying io.Reader if it implements io.Closer.  Every
// later call on r fails with ErrClosed, except Close itself which does
// nothing.
func (r *Reader) Close() error {
	if r.src == nil {
		return nil
	}
	src := r.src
	r.src = nil
	r.buf = nil
	r.pos, r.end = 0, 0
	r.bitSize = 0
	r.unreadSize = 0
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ io.ByteReader = (*Reader)(nil)
var _ io.Closer = (*Reader)(nil)
