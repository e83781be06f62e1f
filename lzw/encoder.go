package lzw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/bitpress/bitio"
)

// pair is a dictionary key: the code of a string, and the byte that extends
// it.
type pair struct {
	prefix uint32
	symbol byte
}

// encodeStats is what the encoders report at debug level.
type encodeStats struct {
	bytes int64
	codes int64
	next  uint32
	width int
}

func (s *encodeStats) report(name string) {
	log.Debugf("%s: %d bytes in %d codes, width %d, next code %d", name, s.bytes, s.codes, s.width, s.next)
}

// Encode compresses src into dst.  The dictionary is keyed by (code, byte)
// pairs, so a string is never spelled out.
//
// dst is wrapped in a bitio.Writer which is closed before Encode returns, so
// dst is closed too if it is an io.Closer.
//
func Encode(dst io.Writer, src io.Reader) (err error) {
	w := bitio.NewWriter(dst)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	br := bufio.NewReader(src)
	b, err := br.ReadByte()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	stats := encodeStats{bytes: 1, next: FirstCode, width: MinWidth}
	limit := uint32(1) << MinWidth
	emit := func(code uint32) error {
		for code >= limit {
			if err := w.WriteBits(Escape, stats.width); err != nil {
				return err
			}
			stats.width++
			limit *= 2
			assert.Assertf(stats.width <= MaxWidth, "width %d for code %d", stats.width, code)
			log.Debugf("encode: width %d before code %d", stats.width, code)
		}
		stats.codes++
		return w.WriteBits(code, stats.width)
	}

	dict := make(map[pair]uint32)
	code := uint32(b)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		stats.bytes++

		p := pair{code, b}
		if c, found := dict[p]; found {
			code = c
			continue
		}
		if err := emit(code); err != nil {
			return err
		}
		if stats.next < MaxCode {
			dict[p] = stats.next
			stats.next++
			if stats.next == MaxCode {
				log.Debugf("encode: dictionary frozen after %d bytes", stats.bytes)
			}
		}
		code = uint32(b)
	}
	if err := emit(code); err != nil {
		return err
	}
	stats.report("encode")
	return nil
}

// EncodeStrings compresses src into dst, keying the dictionary by the byte
// strings themselves.  The output is identical to that of Encode.
//
// dst is wrapped in a bitio.Writer which is closed before EncodeStrings
// returns, so dst is closed too if it is an io.Closer.
//
func EncodeStrings(dst io.Writer, src io.Reader) (err error) {
	w := bitio.NewWriter(dst)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	br := bufio.NewReader(src)
	b, err := br.ReadByte()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	stats := encodeStats{bytes: 1, next: FirstCode, width: MinWidth}
	emit := func(code uint32) error {
		for code >= 1<<uint(stats.width) {
			if err := w.WriteBits(Escape, stats.width); err != nil {
				return err
			}
			stats.width++
			assert.Assertf(stats.width <= MaxWidth, "width %d for code %d", stats.width, code)
			log.Debugf("encode: width %d before code %d", stats.width, code)
		}
		stats.codes++
		return w.WriteBits(code, stats.width)
	}

	dict := make(map[string]uint32)
	s := []byte{b}
	code := uint32(b)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		stats.bytes++

		s = append(s, b)
		if c, found := dict[string(s)]; found {
			code = c
			continue
		}
		if err := emit(code); err != nil {
			return err
		}
		if stats.next < MaxCode {
			dict[string(s)] = stats.next
			stats.next++
			if stats.next == MaxCode {
				log.Debugf("encode: dictionary frozen after %d bytes", stats.bytes)
			}
		}
		s = append(s[:0], b)
		code = uint32(b)
	}
	if err := emit(code); err != nil {
		return err
	}
	stats.report("encode")
	return nil
}

// EncodeWith compresses src into dst with the encoder for m.
func EncodeWith(dst io.Writer, src io.Reader, m Method) error {
	switch m {
	case Trie:
		return Encode(dst, src)
	case Strings:
		return EncodeStrings(dst, src)
	default:
		return fmt.Errorf("lzw: unknown method %v", m)
	}
}
