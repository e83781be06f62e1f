package lzw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chronos-tachyon/bitpress/bitio"
	"github.com/chronos-tachyon/bitpress/internal/stack"
)

// codeReader reads codes, following width escapes.
type codeReader struct {
	r     *bitio.Reader
	width int
	codes int64
}

// next returns the next code.  ok is false at the end of the stream.
func (cr *codeReader) next() (code uint32, ok bool, err error) {
	escaped := false
	for {
		v, err := cr.r.ReadBits(cr.width)
		if err != nil {
			return 0, false, err
		}
		if v == bitio.EOS {
			if escaped {
				return 0, false, fmt.Errorf("%w: stream ends after escape: %w", ErrCorrupt, io.ErrUnexpectedEOF)
			}
			return 0, false, nil
		}
		if v != Escape {
			cr.codes++
			return uint32(v), true, nil
		}
		if cr.width == MaxWidth {
			return 0, false, fmt.Errorf("%w: escape at width %d", ErrCorrupt, MaxWidth)
		}
		cr.width++
		escaped = true
		log.Debugf("decode: width %d after %d codes", cr.width, cr.codes)
	}
}

// first reads the first code, which must be a byte.
func (cr *codeReader) first() (code uint32, ok bool, err error) {
	code, ok, err = cr.next()
	if err == nil && ok && code > 0xff {
		err = fmt.Errorf("%w: first code is %d", ErrCorrupt, code)
	}
	return code, ok, err
}

// entry is a dictionary entry of the trie decoder: the string of code parent
// extended by symbol.
type entry struct {
	parent uint32
	symbol byte
}

// Decode decompresses src into dst.  Each string is spelled out by walking
// parent links from its code down to a byte, pushing bytes onto a stack, and
// then emptying the stack.
//
// src is wrapped in a bitio.Reader which is closed before Decode returns, so
// src is closed too if it is an io.Closer.  dst is flushed but not closed.
//
func Decode(dst io.Writer, src io.Reader) (err error) {
	r := bitio.NewReader(src)
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()

	cr := codeReader{r: r, width: MinWidth}
	code, ok, err := cr.first()
	if err != nil || !ok {
		return err
	}

	bw := bufio.NewWriter(dst)
	if err := bw.WriteByte(byte(code)); err != nil {
		return err
	}

	var entries []entry
	st := stack.New[byte](64)
	prev := code
	c := byte(code)
	for {
		code, ok, err := cr.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		next := FirstCode + uint32(len(entries))
		x := code
		switch {
		case code < next:
		case code == next && next < MaxCode:
			st.Push(c)
			x = prev
		default:
			return fmt.Errorf("%w: code %d before %d is defined", ErrCorrupt, code, next)
		}
		for x >= FirstCode {
			e := entries[x-FirstCode]
			st.Push(e.symbol)
			x = e.parent
		}
		st.Push(byte(x))

		c, _ = st.Peek()
		for {
			b, ok := st.Pop()
			if !ok {
				break
			}
			if err := bw.WriteByte(b); err != nil {
				return err
			}
		}

		if next < MaxCode {
			entries = append(entries, entry{parent: prev, symbol: c})
			if next+1 == MaxCode {
				log.Debugf("decode: dictionary frozen after %d codes", cr.codes)
			}
		}
		prev = code
	}
	log.Debugf("decode: %d codes, width %d, next code %d", cr.codes, cr.width, FirstCode+len(entries))
	return bw.Flush()
}

// DecodeStrings decompresses src into dst, keeping every dictionary string
// in full.
//
// src is wrapped in a bitio.Reader which is closed before DecodeStrings
// returns, so src is closed too if it is an io.Closer.  dst is flushed but
// not closed.
//
func DecodeStrings(dst io.Writer, src io.Reader) (err error) {
	r := bitio.NewReader(src)
	defer func() {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}()

	cr := codeReader{r: r, width: MinWidth}
	code, ok, err := cr.first()
	if err != nil || !ok {
		return err
	}

	var literals [256][1]byte
	for i := range literals {
		literals[i][0] = byte(i)
	}

	bw := bufio.NewWriter(dst)
	prev := literals[code][:]
	if _, err := bw.Write(prev); err != nil {
		return err
	}

	var dict [][]byte
	for {
		code, ok, err := cr.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		next := FirstCode + uint32(len(dict))
		var cur []byte
		switch {
		case code < 256:
			cur = literals[code][:]
		case code >= FirstCode && code < next:
			cur = dict[code-FirstCode]
		case code == next && next < MaxCode:
			cur = extend(prev, prev[0])
		default:
			return fmt.Errorf("%w: code %d before %d is defined", ErrCorrupt, code, next)
		}
		if _, err := bw.Write(cur); err != nil {
			return err
		}

		if next < MaxCode {
			dict = append(dict, extend(prev, cur[0]))
			if next+1 == MaxCode {
				log.Debugf("decode: dictionary frozen after %d codes", cr.codes)
			}
		}
		prev = cur
	}
	log.Debugf("decode: %d codes, width %d, next code %d", cr.codes, cr.width, FirstCode+len(dict))
	return bw.Flush()
}

// extend returns a new slice holding s followed by b.
func extend(s []byte, b byte) []byte {
	out := make([]byte, len(s)+1)
	copy(out, s)
	out[len(s)] = b
	return out
}

// DecodeWith decompresses src into dst with the decoder for m.
func DecodeWith(dst io.Writer, src io.Reader, m Method) error {
	switch m {
	case Trie:
		return Decode(dst, src)
	case Strings:
		return DecodeStrings(dst, src)
	default:
		return fmt.Errorf("lzw: unknown method %v", m)
	}
}
