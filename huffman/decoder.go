package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Decoder rebuilds a canonical code from its code lengths and maps codes
// back to symbols.  The zero value has no code; call Init.
type Decoder struct {
	sizes   []byte
	codes   []Code
	trie    []trieNode
	minSize byte
	maxSize byte
	guard   Symbol
}

// Init rebuilds the code whose lengths are sizes, one per symbol, as
// returned by Encoder.SizeBySymbol.  Length 0 means the symbol has no code.
//
// Only what an Encoder can produce is accepted: a complete prefix code of at
// least two symbols.  Anything else yields ErrCorrupt, except a length above
// 31, which yields ErrCodeTooLong.
//
func (d *Decoder) Init(sizes []byte) error {
	codes := make([]Code, len(sizes))
	var numCoded int
	var minSize, maxSize byte = maxBitsPerCode, 0
	for i, size := range sizes {
		switch {
		case size == 0:
			continue
		case size > maxBitsPerCode:
			return fmt.Errorf("%w: symbol %d has length %d", ErrCodeTooLong, i, size)
		}
		minSize = min(minSize, size)
		maxSize = max(maxSize, size)
		codes[i].Size = size
		numCoded++
	}

	var leaves histogram
	leaves.count(codes)
	if _, ok := leaves.nodes(); !ok {
		return fmt.Errorf("%w: %d code lengths do not form a complete prefix code", ErrCorrupt, numCoded)
	}
	assignCodes(codes)

	d.sizes = append([]byte(nil), sizes...)
	d.codes = codes
	d.trie = buildTrie(codes, numCoded)
	d.minSize, d.maxSize = minSize, maxSize
	d.guard = firstLongest(codes)
	return nil
}

// Decode looks up the bits of hc as a whole code or a code prefix.
//
// A whole code yields its symbol, with minSize and maxSize both equal to
// hc.Size.  A proper prefix yields InvalidSymbol, and the shortest and the
// longest code that hc could still become.  Bits that begin no code at all
// yield InvalidSymbol, 0, 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	if len(d.trie) == 0 {
		return InvalidSymbol, 0, 0
	}
	var index int32
	for i := byte(0); i < hc.Size; i++ {
		if index = d.trie[index].child[hc.Bit(i)]; index == 0 {
			return InvalidSymbol, 0, 0
		}
	}
	node := &d.trie[index]
	return node.symbol, node.minSize, node.maxSize
}

// MinSize returns the length of the shortest code.
func (d Decoder) MinSize() byte { return d.minSize }

// MaxSize returns the length of the longest code.
func (d Decoder) MaxSize() byte { return d.maxSize }

// MaxSymbol returns the highest symbol of the alphabet, coded or not.
func (d Decoder) MaxSymbol() Symbol { return Symbol(len(d.sizes)) - 1 }

// Guard returns the lowest symbol among those with the longest code.
func (d Decoder) Guard() Symbol { return d.guard }

// Code returns the canonical code of symbol.
func (d Decoder) Code(symbol Symbol) Code {
	return d.codes[symbol]
}

// SizeBySymbol returns a copy of the lengths given to Init.
func (d Decoder) SizeBySymbol() []byte {
	return append([]byte(nil), d.sizes...)
}

// Dump writes one line of summary, then one line per trie node, shortest
// prefixes first.  Whole codes show their symbol; proper prefixes show "?"
// and the range of code lengths below them.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	type prefix struct {
		hc    Code
		index int32
	}
	var list []prefix
	if len(d.trie) != 0 {
		list = append(list, prefix{Code{}, 0})
		for i := 0; i < len(list); i++ {
			p := list[i]
			for bit, child := range d.trie[p.index].child {
				if child != 0 {
					list = append(list, prefix{MakeCode(p.hc.Size+1, p.hc.Bits<<1|uint32(bit)), child})
				}
			}
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "sizes %d..%d, guard %d\n", d.minSize, d.maxSize, d.guard)
	for _, p := range list {
		node := &d.trie[p.index]
		if node.symbol == InvalidSymbol {
			fmt.Fprintf(&buf, "%v ? %d..%d\n", p.hc, node.minSize, node.maxSize)
		} else {
			fmt.Fprintf(&buf, "%v %d\n", p.hc, node.symbol)
		}
	}
	return buf.WriteTo(w)
}

// trieNode is a node of the explicit code trie.  Index 0 is the root, which
// is never anyone's child, so a zero child means "no child".
type trieNode struct {
	child   [2]int32
	symbol  Symbol
	minSize byte
	maxSize byte
}

func buildTrie(codes []Code, numCoded int) []trieNode {
	trie := make([]trieNode, 1, 2*numCoded)
	trie[0] = trieNode{symbol: InvalidSymbol}

	for symbol, hc := range codes {
		if hc.Size == 0 {
			continue
		}

		index := int32(0)
		for i := byte(0); ; i++ {
			node := &trie[index]
			if node.maxSize == 0 {
				node.minSize, node.maxSize = hc.Size, hc.Size
			} else if node.minSize > hc.Size {
				node.minSize = hc.Size
			} else if node.maxSize < hc.Size {
				node.maxSize = hc.Size
			}
			if i == hc.Size {
				node.symbol = Symbol(symbol)
				break
			}

			bit := hc.Bit(i)
			next := node.child[bit]
			if next == 0 {
				next = int32(len(trie))
				node.child[bit] = next
				trie = append(trie, trieNode{symbol: InvalidSymbol})
			}
			index = next
		}
	}
	return trie
}
