package huffman

import (
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/op/go-logging"

	"github.com/chronos-tachyon/bitpress/bitio"
)

// symbolDecoder reads one coded symbol from a bit stream.  A stream that ends
// inside a code yields io.ErrUnexpectedEOF.
type symbolDecoder interface {
	decodeSymbol(r *bitio.Reader) (Symbol, error)
}

// newSymbolDecoder returns the decoding strategy for m.
func (d Decoder) newSymbolDecoder(m Method) (symbolDecoder, error) {
	assert.Assertf(len(d.trie) != 0, "Decoder is not initialized")
	switch m {
	case BitByBit:
		return trieDecoder(d.trie), nil
	case SingleTable:
		return newTableDecoder(d)
	case TwoLevel:
		return newTwoLevelDecoder(d), nil
	default:
		return nil, fmt.Errorf("huffman: unknown decoding method %v", m)
	}
}

// tableEntry is one slot of a lookup table: the symbol whose code is a prefix
// of the slot's index, and how many trailing bits of the index belong to
// the next code.
type tableEntry struct {
	symbol Symbol
	back   uint8
}

// fill sets table[code<<back : (code+1)<<back] to the given symbol.
func fill(table []tableEntry, symbol Symbol, code uint32, back int) {
	lo := code << uint(back)
	hi := lo + uint32(1)<<uint(back)
	for j := lo; j < hi; j++ {
		table[j] = tableEntry{symbol, uint8(back)}
	}
}

// type trieDecoder {{{

type trieDecoder []trieNode

func (trie trieDecoder) decodeSymbol(r *bitio.Reader) (Symbol, error) {
	node := &trie[0]
	for node.symbol < 0 {
		bit, err := r.ReadBit()
		if err != nil {
			return InvalidSymbol, err
		}
		if bit == bitio.EOS {
			return InvalidSymbol, io.ErrUnexpectedEOF
		}
		node = &trie[node.child[bit]]
	}
	return node.symbol, nil
}

var _ symbolDecoder = trieDecoder(nil)

// }}}

// type tableDecoder {{{

type tableDecoder struct {
	size  int
	table []tableEntry
}

func newTableDecoder(d Decoder) (*tableDecoder, error) {
	size := int(d.maxSize)
	if size > maxTableBits {
		return nil, fmt.Errorf("%w: need %d bits, max %d", ErrTableTooLarge, size, maxTableBits)
	}

	table := make([]tableEntry, 1<<uint(size))
	for symbol, hc := range d.codes {
		if hc.Size != 0 {
			fill(table, Symbol(symbol), hc.Bits, size-int(hc.Size))
		}
	}
	return &tableDecoder{size, table}, nil
}

func (t *tableDecoder) decodeSymbol(r *bitio.Reader) (Symbol, error) {
	index, err := r.ReadBits(t.size)
	if err != nil {
		return InvalidSymbol, err
	}
	if index == bitio.EOS {
		return InvalidSymbol, io.ErrUnexpectedEOF
	}
	entry := t.table[index]
	if err := r.UnreadBits(int(entry.back)); err != nil {
		return InvalidSymbol, err
	}
	return entry.symbol, nil
}

var _ symbolDecoder = (*tableDecoder)(nil)

// }}}

// type twoLevelDecoder {{{

// twoLevelDecoder splits codes at level m = (MaxSize+1)/2.  Codes of up to m
// bits live in primary.  Every longer code starts with one of the inner
// prefixes, which are the values below len(heights); the rest of such a code
// is resolved in sub[prefix], which is only as large as the subtree below
// that prefix requires.
type twoLevelDecoder struct {
	m       int
	primary []tableEntry
	heights []int
	sub     [][]tableEntry
}

func newTwoLevelDecoder(d Decoder) *twoLevelDecoder {
	var leaves histogram
	leaves.count(d.codes)

	m := (int(d.maxSize) + 1) / 2
	heights := leaves.subtreeHeights(int(d.maxSize), m)

	sub := make([][]tableEntry, len(heights))
	for prefix, height := range heights {
		sub[prefix] = make([]tableEntry, 1<<uint(height))
	}

	primary := make([]tableEntry, 1<<uint(m))
	for symbol, hc := range d.codes {
		size := int(hc.Size)
		switch {
		case size == 0:
			// not coded
		case size <= m:
			fill(primary, Symbol(symbol), hc.Bits, m-size)
		default:
			d1 := size - m
			prefix := hc.Bits >> uint(d1)
			suffix := hc.Bits & (uint32(1)<<uint(d1) - 1)
			assert.Assertf(int(prefix) < len(heights), "prefix %d of symbol %d is not an inner prefix", prefix, symbol)
			fill(sub[prefix], Symbol(symbol), suffix, heights[prefix]-d1)
		}
	}

	if log.IsEnabledFor(logging.DEBUG) {
		total := len(primary)
		for _, table := range sub {
			total += len(table)
		}
		log.Debugf("two-level tables: split at %d bits, %d sub-tables, %d entries", m, len(sub), total)
	}

	return &twoLevelDecoder{m, primary, heights, sub}
}

func (t *twoLevelDecoder) decodeSymbol(r *bitio.Reader) (Symbol, error) {
	index, err := r.ReadBits(t.m)
	if err != nil {
		return InvalidSymbol, err
	}
	if index == bitio.EOS {
		return InvalidSymbol, io.ErrUnexpectedEOF
	}

	var entry tableEntry
	if index < len(t.heights) {
		rest, err := r.ReadBits(t.heights[index])
		if err != nil {
			return InvalidSymbol, err
		}
		if rest == bitio.EOS {
			return InvalidSymbol, io.ErrUnexpectedEOF
		}
		entry = t.sub[index][rest]
	} else {
		entry = t.primary[index]
	}

	if err := r.UnreadBits(int(entry.back)); err != nil {
		return InvalidSymbol, err
	}
	return entry.symbol, nil
}

var _ symbolDecoder = (*twoLevelDecoder)(nil)

// }}}
