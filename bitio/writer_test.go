package bitio

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	icza "github.com/icza/bitio"
)

func TestWriter_MatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 50; iter++ {
		ns := make([]int, 200)
		vs := make([]uint32, 200)

		var buf bytes.Buffer
		w, err := NewWriterSize(&buf, 1+rng.Intn(7))
		if err != nil {
			t.Fatalf("NewWriterSize failed: %v", err)
		}
		for i := range ns {
			ns[i] = 1 + rng.Intn(MaxWriteBits)
			vs[i] = rng.Uint32()
			if err := w.WriteBits(vs[i], ns[i]); err != nil {
				t.Fatalf("WriteBits(%d) failed: %v", ns[i], err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush failed: %v", err)
		}

		ir := icza.NewReader(bytes.NewReader(buf.Bytes()))
		for i := range ns {
			got, err := ir.ReadBits(uint8(ns[i]))
			if err != nil {
				t.Fatalf("oracle ReadBits(%d) failed: %v", ns[i], err)
			}
			if want := uint64(vs[i] & mask(ns[i])); got != want {
				t.Fatalf("iter %d, write %d: expected %#x in %d bits, got %#x", iter, i, want, ns[i], got)
			}
		}
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	for n := 0; n <= MaxReadBits; n++ {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		values := []uint32{0, 1, mask(n), 0x5a5a5a5a & mask(n)}
		for _, v := range values {
			if err := w.WriteBits(v, n); err != nil {
				t.Fatalf("WriteBits(%d) failed: %v", n, err)
			}
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if want := (4*n + 7) / 8; buf.Len() != want {
			t.Errorf("n=%d: expected %d bytes, got %d", n, want, buf.Len())
		}

		r := FromBytes(buf.Bytes())
		for _, v := range values {
			got, err := r.ReadBits(n)
			if err != nil {
				t.Fatalf("ReadBits(%d) failed: %v", n, err)
			}
			if uint32(got) != v&mask(n) {
				t.Errorf("n=%d: expected %#x, got %#x", n, v&mask(n), got)
			}
		}
	}
}

func TestWriter_Padding(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	_ = w.WriteBits(0x5, 3)
	if n, _ := w.MissingBits(); n != 5 {
		t.Errorf("expected 5 missing bits, got %d", n)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if n, _ := w.MissingBits(); n != 0 {
		t.Errorf("expected 0 missing bits after Flush, got %d", n)
	}
	_ = w.WriteBit(1)
	_ = w.WriteByte(0xff)
	_ = w.Flush()

	expect := []byte{0xa0, 0xff, 0x80}
	if !bytes.Equal(buf.Bytes(), expect) {
		t.Errorf("expected % x, got % x", expect, buf.Bytes())
	}
}

func TestWriter_LeftBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	_ = w.WriteLeftBits(0xd0000000, 4)
	_ = w.WriteLeftBits(0xffffffff, 0)
	_ = w.WriteLeftBits(0x9abcdef0, 32)
	_ = w.WriteLeftBits(0x80000000, 4)
	_ = w.Close()

	expect := []byte{0xd9, 0xab, 0xcd, 0xef, 0x08}
	if !bytes.Equal(buf.Bytes(), expect) {
		t.Errorf("expected % x, got % x", expect, buf.Bytes())
	}
}

func TestWriter_WriteValue(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// 101 0 1 11111111 1 leaves 14 bits pending.
	for _, v := range []uint32{5, 0, 1, 0xff, 1} {
		if err := w.WriteValue(v); err != nil {
			t.Fatalf("WriteValue(%d) failed: %v", v, err)
		}
	}
	if n, _ := w.MissingBits(); n != 2 {
		t.Errorf("expected 2 missing bits, got %d", n)
	}
	_ = w.WriteValue(0x80000000)
	_ = w.Close()

	expect := "10101111 11111110 00000000 00000000 00000000 00000000"
	if got := BitString(buf.Bytes()); got != expect {
		t.Errorf("expected %s, got %s", expect, got)
	}
}

func TestWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	_ = w.WriteBits(0xf, 4)
	n, err := w.Write([]byte{0x12, 0x34})
	if n != 2 || err != nil {
		t.Fatalf("Write = %d, %v", n, err)
	}
	_ = w.Close()

	expect := []byte{0xf1, 0x23, 0x40}
	if !bytes.Equal(buf.Bytes(), expect) {
		t.Errorf("expected % x, got % x", expect, buf.Bytes())
	}
}

func TestWriter_BitCount(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	for _, n := range []int{-1, 33} {
		if err := w.WriteBits(0, n); !errors.Is(err, ErrBitCount) {
			t.Errorf("WriteBits(%d): expected ErrBitCount, got %v", n, err)
		}
		if err := w.WriteLeftBits(0, n); !errors.Is(err, ErrBitCount) {
			t.Errorf("WriteLeftBits(%d): expected ErrBitCount, got %v", n, err)
		}
	}
	if _, err := NewWriterSize(&bytes.Buffer{}, -3); !errors.Is(err, ErrBufferSize) {
		t.Errorf("expected ErrBufferSize, got %v", err)
	}
}

func TestWriter_Close(t *testing.T) {
	sink := &closingBuffer{}
	w := NewWriter(sink)

	_ = w.WriteBits(0x3, 2)
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if sink.closed != 1 {
		t.Errorf("expected sink closed once, got %d", sink.closed)
	}
	if sink.flushed != 1 {
		t.Errorf("expected sink flushed once, got %d", sink.flushed)
	}
	if !bytes.Equal(sink.Bytes(), []byte{0xc0}) {
		t.Errorf("expected c0, got % x", sink.Bytes())
	}
	if err := w.WriteBit(1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := w.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestWriter_StickyError(t *testing.T) {
	boom := errors.New("boom")
	w, _ := NewWriterSize(failingWriter{boom}, 1)

	_ = w.WriteByte(0x01)
	if err := w.WriteByte(0x02); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := w.WriteBit(0); !errors.Is(err, boom) {
		t.Errorf("expected sticky boom, got %v", err)
	}
}

func TestWriter_ShortWrite(t *testing.T) {
	w, _ := NewWriterSize(shortWriter{}, 2)

	_, _ = w.Write([]byte{1, 2, 3})
	if err := w.Flush(); !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected io.ErrShortWrite, got %v", err)
	}
	if err := w.WriteBits(1, 3); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected sticky io.ErrShortWrite, got %v", err)
	}
	if err := w.Close(); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected io.ErrShortWrite from Close, got %v", err)
	}
	if err := w.WriteBit(1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

type closingBuffer struct {
	bytes.Buffer
	closed  int
	flushed int
}

func (b *closingBuffer) Flush() error {
	b.flushed++
	return nil
}

func (b *closingBuffer) Close() error {
	b.closed++
	return nil
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}
