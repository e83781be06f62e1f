// Package bitpress gives the codecs of this module one interface.
//
// A Codec names a compression method and, where the method has more than
// one, the variant used to run it.  Variants of one method always read and
// write the same streams, so a stream can be decoded with any variant of the
// method that wrote it.
//
package bitpress

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/bitpress/adaptive"
	"github.com/chronos-tachyon/bitpress/huffman"
	"github.com/chronos-tachyon/bitpress/lzw"
)

// Method is a compression method.
type Method byte

const (
	// Huffman is the two-pass canonical Huffman codec.
	Huffman Method = iota

	// Adaptive is the single-pass adaptive Huffman codec.
	Adaptive

	// LZW is the LZW codec.
	LZW
)

var methodNames = [...]string{
	Huffman:  "huffman",
	Adaptive: "adaptive",
	LZW:      "lzw",
}

// String returns the name of the method, as accepted by ParseMethod.
func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", byte(m))
}

// ParseMethod returns the Method named by str.  Matching ignores case.
func ParseMethod(str string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(str, name) {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("bitpress: unknown method %q", str)
}

// Codec is a Method together with its variant.  Huffman selects the decoder
// of the Huffman method and LZW the dictionary of the LZW method; each is
// ignored by the other methods.
type Codec struct {
	Method  Method
	Huffman huffman.Method
	LZW     lzw.Method
}

// Codecs lists every distinct Codec.
func Codecs() []Codec {
	var out []Codec
	for _, m := range huffman.Methods() {
		out = append(out, Codec{Method: Huffman, Huffman: m})
	}
	out = append(out, Codec{Method: Adaptive})
	for _, m := range lzw.Methods() {
		out = append(out, Codec{Method: LZW, LZW: m})
	}
	return out
}

// ParseCodec returns the Codec for method and variant.  An empty variant
// selects the default variant of the method.
func ParseCodec(method, variant string) (Codec, error) {
	var c Codec
	m, err := ParseMethod(method)
	if err != nil {
		return c, err
	}
	c.Method = m
	if variant == "" {
		return c, nil
	}

	switch m {
	case Huffman:
		c.Huffman, err = huffman.ParseMethod(variant)
	case LZW:
		c.LZW, err = lzw.ParseMethod(variant)
	default:
		err = fmt.Errorf("bitpress: method %v has no variant %q", m, variant)
	}
	return c, err
}

// String returns "method" or "method/variant".
func (c Codec) String() string {
	switch c.Method {
	case Huffman:
		return c.Method.String() + "/" + c.Huffman.String()
	case LZW:
		return c.Method.String() + "/" + c.LZW.String()
	default:
		return c.Method.String()
	}
}

// Encode compresses src into dst.  Only the Huffman method seeks in src.
func (c Codec) Encode(dst io.Writer, src io.ReadSeeker) error {
	switch c.Method {
	case Huffman:
		return huffman.Encode(dst, src)
	case Adaptive:
		return adaptive.Encode(dst, src)
	case LZW:
		return lzw.EncodeWith(dst, src, c.LZW)
	default:
		return fmt.Errorf("bitpress: unknown method %v", c.Method)
	}
}

// Decode decompresses src into dst.
func (c Codec) Decode(dst io.Writer, src io.Reader) error {
	switch c.Method {
	case Huffman:
		return huffman.Decode(dst, src, c.Huffman)
	case Adaptive:
		return adaptive.Decode(dst, src)
	case LZW:
		return lzw.DecodeWith(dst, src, c.LZW)
	default:
		return fmt.Errorf("bitpress: unknown method %v", c.Method)
	}
}

// EncodeBytes compresses data.
func (c Codec) EncodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes decompresses data.
func (c Codec) DecodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Decode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ fmt.Stringer = Method(0)
var _ fmt.Stringer = Codec{}
