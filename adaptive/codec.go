package adaptive

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/bitpress/bitio"
)

// Encoder writes adaptively coded symbols to a bitio.Writer.
type Encoder struct {
	tree *Tree
	w    *bitio.Writer
	path []byte
}

// NewEncoder returns an Encoder with an empty tree.
func NewEncoder(w *bitio.Writer) *Encoder {
	return &Encoder{tree: NewTree(), w: w}
}

// Tree returns the encoder's current tree.
func (e *Encoder) Tree() *Tree {
	return e.tree
}

// WriteSymbol writes the code of symbol, then updates the tree.  symbol must
// lie below EOC.
func (e *Encoder) WriteSymbol(symbol int) error {
	if symbol < 0 || symbol >= EOC {
		return fmt.Errorf("adaptive: symbol %d out of range", symbol)
	}
	if err := e.writeCode(symbol); err != nil {
		return err
	}
	e.tree.Update(symbol)
	return nil
}

// Close writes EOC.  It does not close the underlying bitio.Writer.
func (e *Encoder) Close() error {
	return e.writeCode(EOC)
}

func (e *Encoder) writeCode(symbol int) error {
	id := e.tree.leaves[symbol]
	literal := id == 0
	if literal {
		id = e.tree.nyt
	}

	e.path = e.tree.appendPath(e.path[:0], id)
	for _, bit := range e.path {
		if err := e.w.WriteBit(int(bit)); err != nil {
			return err
		}
	}
	if literal {
		return e.w.WriteBits(uint32(symbol), literalBits)
	}
	return nil
}

// Decoder reads adaptively coded symbols from a bitio.Reader.
type Decoder struct {
	tree *Tree
	r    *bitio.Reader
	done bool
}

// NewDecoder returns a Decoder with an empty tree.
func NewDecoder(r *bitio.Reader) *Decoder {
	return &Decoder{tree: NewTree(), r: r}
}

// Tree returns the decoder's current tree.
func (d *Decoder) Tree() *Tree {
	return d.tree
}

// ReadSymbol reads one symbol and updates the tree.  It returns io.EOF once
// EOC has been read.  A stream that ends before EOC yields
// io.ErrUnexpectedEOF.
func (d *Decoder) ReadSymbol() (int, error) {
	if d.done {
		return 0, io.EOF
	}

	t := d.tree
	id := int32(rootID)
	for !t.nodes[id].isLeaf() {
		bit, err := d.r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == bitio.EOS {
			return 0, io.ErrUnexpectedEOF
		}
		if bit == 0 {
			id = t.nodes[id].left
		} else {
			id = t.nodes[id].right
		}
	}

	if id != t.nyt {
		symbol := int(t.nodes[id].symbol)
		t.Update(symbol)
		return symbol, nil
	}

	symbol, err := d.r.ReadBits(literalBits)
	if err != nil {
		return 0, err
	}
	if symbol == bitio.EOS {
		return 0, io.ErrUnexpectedEOF
	}
	if symbol == EOC {
		d.done = true
		return 0, io.EOF
	}
	if symbol >= NumSymbols || t.Contains(symbol) {
		return 0, fmt.Errorf("%w: unexpected literal %d", ErrCorrupt, symbol)
	}
	t.Update(symbol)
	return symbol, nil
}

// Encode compresses src into dst.
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

	e := NewEncoder(w)
	br := bufio.NewReader(src)
	var total int64
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := e.WriteSymbol(int(b)); err != nil {
			return err
		}
		total++
	}
	log.Debugf("encode: %d bytes, tree has %d nodes", total, e.tree.Len())
	return e.Close()
}

// EncodeBytes compresses data.
func EncodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decompresses src into dst.  Anything after EOC is ignored.
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

	d := NewDecoder(r)
	bw := bufio.NewWriter(dst)
	for {
		symbol, err := d.ReadSymbol()
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if err != nil {
			return err
		}
		if symbol > 0xff {
			return fmt.Errorf("%w: symbol %d is not a byte", ErrCorrupt, symbol)
		}
		if err := bw.WriteByte(byte(symbol)); err != nil {
			return err
		}
	}
	log.Debugf("decode: %d bytes, tree has %d nodes", d.tree.Weight(), d.tree.Len())
	return bw.Flush()
}

// DecodeBytes decompresses data.
func DecodeBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decode(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
