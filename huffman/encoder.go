package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder holds the canonical code built from a set of symbol weights.  The
// zero value has no code; call Init.
type Encoder struct {
	codes   []Code
	minSize byte
	maxSize byte
	guard   Symbol
}

// Init builds the code for an alphabet of numSymbols symbols.  weights[s] is
// the number of occurrences of symbol s; symbols past the end of weights, and
// symbols of weight 0, get no code.
//
// Fewer than two weighted symbols yield ErrTooFewSymbols, and a tree deeper
// than 31 levels yields ErrCodeTooLong.
//
func (e *Encoder) Init(numSymbols int, weights []uint32) error {
	assert.Assertf(numSymbols >= len(weights), "%d weights for %d symbols", len(weights), numSymbols)

	leaves := make([]*leafNode, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			leaves = append(leaves, &leafNode{Symbol(i), w})
		}
	}
	if len(leaves) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSymbols, len(leaves))
	}

	codes := make([]Code, numSymbols)
	minSize, maxSize, err := assignSizes(codes, buildTree(leaves))
	if err != nil {
		return err
	}
	assignCodes(codes)

	e.codes = codes
	e.minSize, e.maxSize = minSize, maxSize
	e.guard = firstLongest(codes)
	return nil
}

// Encode returns the code of symbol.  A symbol without a code yields a Code
// of Size 0.
func (e Encoder) Encode(symbol Symbol) Code {
	return e.codes[symbol]
}

// MinSize returns the length of the shortest code.
func (e Encoder) MinSize() byte { return e.minSize }

// MaxSize returns the length of the longest code.
func (e Encoder) MaxSize() byte { return e.maxSize }

// MaxSymbol returns the highest symbol of the alphabet, coded or not.
func (e Encoder) MaxSymbol() Symbol { return Symbol(len(e.codes)) - 1 }

// Guard returns the lowest symbol among those with the longest code.  Its
// code ends a compressed stream.
func (e Encoder) Guard() Symbol { return e.guard }

// SizeBySymbol returns the code length of every symbol, 0 for none.  The
// lengths alone determine the code: Decoder.Init rebuilds it from them.
func (e Encoder) SizeBySymbol() []byte {
	out := make([]byte, len(e.codes))
	for i, hc := range e.codes {
		out[i] = hc.Size
	}
	return out
}

// Dump writes one line of summary, then the code of every coded symbol.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "sizes %d..%d, guard %d\n", e.minSize, e.maxSize, e.guard)
	for i, hc := range e.codes {
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "%d %v\n", i, hc)
		}
	}
	return buf.WriteTo(w)
}
