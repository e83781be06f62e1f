package adaptive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// rootID is the arena index of the root.  The root keeps rank 0 for the
// lifetime of the tree, because no node outranks it.
const rootID = 0

// node is one slot of the tree arena.  Links are arena indices; since the
// root is nobody's child, 0 doubles as "no child".
type node struct {
	freq   uint64
	symbol int32
	rank   int32
	parent int32
	left   int32
	right  int32
}

func (n *node) isLeaf() bool {
	return n.left == 0 && n.right == 0
}

// Tree is an adaptive Huffman tree.
//
// Every node has a rank, its position in order.  Rank 0 is the root, and a
// node's rank is always smaller than its children's.  The sibling property
// holds between updates: frequencies never increase with rank.
//
// The order number used in the literature is len(order)-1-rank.
type Tree struct {
	nodes  []node
	order  []int32
	leaves [NumSymbols]int32
	nyt    int32
}

// NewTree returns a tree holding only the NYT leaf.
func NewTree() *Tree {
	t := &Tree{
		nodes: make([]node, 0, 2*NumSymbols),
		order: make([]int32, 0, 2*NumSymbols),
	}
	t.nyt = t.add(-1, -1)
	return t
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.order)
}

// Weight returns the frequency of the root, which is the number of updates
// so far.
func (t *Tree) Weight() uint64 {
	return t.nodes[rootID].freq
}

// Contains returns true if symbol has its own leaf.
func (t *Tree) Contains(symbol int) bool {
	return t.leaves[symbol] != 0
}

// Frequency returns the number of updates with symbol.
func (t *Tree) Frequency(symbol int) uint64 {
	if id := t.leaves[symbol]; id != 0 {
		return t.nodes[id].freq
	}
	return 0
}

func (t *Tree) add(symbol int32, parent int32) int32 {
	id := int32(len(t.nodes))
	rank := int32(len(t.order))
	t.nodes = append(t.nodes, node{symbol: symbol, rank: rank, parent: parent})
	t.order = append(t.order, id)
	return id
}

// split turns the NYT leaf into an internal node whose right child is a new
// leaf for symbol and whose left child is the new NYT leaf.  The leaf gets
// the lower rank of the two.
func (t *Tree) split(symbol int) int32 {
	old := t.nyt
	leaf := t.add(int32(symbol), old)
	nyt := t.add(-1, old)

	n := &t.nodes[old]
	n.left, n.right = nyt, leaf

	t.nyt = nyt
	t.leaves[symbol] = leaf
	return leaf
}

// Update counts one more occurrence of symbol, adding a leaf for it first if
// it is new.
//
// From the leaf up to the root, each node is swapped with the lowest-ranked
// other node of equal frequency, unless that node is its parent, and then
// incremented.  The root is never swapped.
func (t *Tree) Update(symbol int) {
	assert.Assertf(symbol >= 0 && symbol < NumSymbols, "symbol %d out of range", symbol)

	id := t.leaves[symbol]
	if id == 0 {
		id = t.split(symbol)
	}

	for {
		n := &t.nodes[id]
		k := n.rank
		for k > 1 && t.nodes[t.order[k-1]].freq == n.freq {
			k--
		}
		if k < n.rank {
			if q := t.order[k]; q != n.parent {
				t.swap(id, q)
			}
		}
		n.freq++
		if id == rootID {
			return
		}
		id = n.parent
	}
}

// swap exchanges the positions of nodes a and b, together with their
// subtrees.  Neither may be an ancestor of the other.
func (t *Tree) swap(a, b int32) {
	na, nb := &t.nodes[a], &t.nodes[b]
	pa, pb := na.parent, nb.parent
	if pa == pb {
		p := &t.nodes[pa]
		p.left, p.right = p.right, p.left
	} else {
		t.replaceChild(pa, a, b)
		t.replaceChild(pb, b, a)
		na.parent, nb.parent = pb, pa
	}
	t.order[na.rank], t.order[nb.rank] = b, a
	na.rank, nb.rank = nb.rank, na.rank
}

func (t *Tree) replaceChild(parent, old, repl int32) {
	p := &t.nodes[parent]
	if p.left == old {
		p.left = repl
	} else {
		assert.Assertf(p.right == old, "node %d is not a child of %d", old, parent)
		p.right = repl
	}
}

// appendPath appends the path from the root to node id to dst, one byte
// per bit.
func (t *Tree) appendPath(dst []byte, id int32) []byte {
	start := len(dst)
	for id != rootID {
		parent := t.nodes[id].parent
		var bit byte
		if t.nodes[parent].right == id {
			bit = 1
		}
		dst = append(dst, bit)
		id = parent
	}
	for i, j := start, len(dst)-1; i < j; i, j = i+1, j-1 {
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}

// CheckSiblingProperty verifies the structural invariants of the tree and
// returns an error describing the first violation found.
func (t *Tree) CheckSiblingProperty() error {
	for rank, id := range t.order {
		n := &t.nodes[id]
		if int(n.rank) != rank {
			return fmt.Errorf("node %d at rank %d records rank %d", id, rank, n.rank)
		}
		if rank > 0 {
			prev := &t.nodes[t.order[rank-1]]
			if prev.freq < n.freq {
				return fmt.Errorf("rank %d has frequency %d, above %d at rank %d", rank, n.freq, prev.freq, rank-1)
			}
		}
		if n.isLeaf() {
			continue
		}
		l, r := &t.nodes[n.left], &t.nodes[n.right]
		if l.parent != id || r.parent != id {
			return fmt.Errorf("children of node %d do not point back to it", id)
		}
		if l.rank <= n.rank || r.rank <= n.rank {
			return fmt.Errorf("node %d at rank %d outranks a child", id, n.rank)
		}
		if n.freq != l.freq+r.freq {
			return fmt.Errorf("node %d has frequency %d, children sum to %d", id, n.freq, l.freq+r.freq)
		}
	}
	return nil
}

// Dump writes the nodes in rank order as "(rank,freq)", with ",symbol"
// added for symbol leaves.  Printable ASCII symbols are shown as characters.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for rank, id := range t.order {
		if rank > 0 {
			buf.WriteByte(' ')
		}
		n := &t.nodes[id]
		fmt.Fprintf(&buf, "(%d,%d", rank, n.freq)
		if n.isLeaf() && id != t.nyt {
			if n.symbol > ' ' && n.symbol < 0x7f {
				fmt.Fprintf(&buf, ",%c", rune(n.symbol))
			} else {
				fmt.Fprintf(&buf, ",%d", n.symbol)
			}
		}
		buf.WriteByte(')')
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}
