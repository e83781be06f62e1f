package huffman

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/bitpress/bitio"
)

// Encode compresses src into dst.  src is read twice: once to count its bytes
// and, after seeking back to where it started, once to code them.
//
// Every input round-trips, including the empty one and inputs with a single
// distinct byte value.
//
// dst is wrapped in a bitio.Writer which is closed before Encode returns, so
// dst is closed too if it is an io.Closer.
//
func Encode(dst io.Writer, src io.ReadSeeker) (err error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	freqs, total, err := CountFrequencies(src)
	if err != nil {
		return err
	}
	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return err
	}

	var e Encoder
	if err := e.Init(NumSymbols, freqs.weights()); err != nil {
		return err
	}
	guardFreq := freqs[e.guard]
	log.Debugf("encode: %d bytes, %d distinct, sizes %d..%d, guard %d x%d",
		total, freqs.Distinct(), e.minSize, e.maxSize, e.guard, guardFreq)

	w := bitio.NewWriter(dst)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if err := writeHeader(w, &e, guardFreq); err != nil {
		return err
	}

	var seen [NumSymbols]uint32
	br := bufio.NewReader(src)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		hc := e.codes[b]
		if freqs[b] == 0 || seen[b] == freqs[b] {
			return fmt.Errorf("%w: byte %d occurs more often than counted", ErrInputChanged, b)
		}
		seen[b]++
		if err := w.WriteBits(hc.Bits, int(hc.Size)); err != nil {
			return err
		}
	}
	if seen != freqs {
		return fmt.Errorf("%w: input is shorter than counted", ErrInputChanged)
	}

	hc := e.codes[e.guard]
	return w.WriteBits(hc.Bits, int(hc.Size))
}

// EncodeBytes compresses data.
func EncodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decompresses src into dst using method m.  The stream ends at the
// occurrence of the guard symbol that follows the number of occurrences
// recorded in the header; anything after it is ignored.
//
// src is wrapped in a bitio.Reader which is closed before Decode returns, so
// src is closed too if it is an io.Closer.  dst is flushed but not closed.
//
func Decode(dst io.Writer, src io.Reader, m Method) (err error) {
	r := bitio.NewReader(src)
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()

	h, err := readHeader(r)
	if err != nil {
		return err
	}

	var d Decoder
	if err := d.Init(h.sizes); err != nil {
		return err
	}
	log.Debugf("decode: sizes %d..%d, guard %d x%d, method %v",
		d.minSize, d.maxSize, d.guard, h.guardFreq, m)

	dec, err := d.newSymbolDecoder(m)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(dst)
	var seen uint32
	for {
		symbol, err := dec.decodeSymbol(r)
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if err != nil {
			return err
		}
		if symbol == d.guard {
			if seen == h.guardFreq {
				break
			}
			seen++
		}
		if err := bw.WriteByte(byte(symbol)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeBytes decompresses data using method m.
func DecodeBytes(data []byte, m Method) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decode(&buf, bytes.NewReader(data), m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
