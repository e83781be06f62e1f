package huffman

import (
	"container/heap"
	"fmt"
	"math"
)

// treeNode is a node of the Huffman tree built by Encoder.Init: either a
// *leafNode or an *internalNode.
type treeNode interface {
	weight() uint32
}

type leafNode struct {
	symbol Symbol
	freq   uint32
}

type internalNode struct {
	freq  uint32
	left  treeNode
	right treeNode
}

func (n *leafNode) weight() uint32     { return n.freq }
func (n *internalNode) weight() uint32 { return n.freq }

// buildTree merges the two lightest nodes until one remains, and returns it.
// The first node extracted becomes the left child.  len(leaves) must be at
// least 2.
//
// Ties are broken by key: leaves sort before internal nodes, leaves by
// symbol, internal nodes by creation order.
func buildTree(leaves []*leafNode) treeNode {
	list := make([]nodeAndKey, 0, len(leaves))
	for _, leaf := range leaves {
		list = append(list, nodeAndKey{leaf, uint32(leaf.symbol)})
	}

	h := freqHeap{list}
	h.Init()

	nextKey := uint32(math.MaxInt32) + 1
	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndKey)
		b := heap.Pop(&h).(nodeAndKey)

		// Compute freqSum using saturating addition
		freqSum := a.node.weight() + b.node.weight()
		if freqSum < a.node.weight() {
			freqSum = math.MaxUint32
		}

		heap.Push(&h, nodeAndKey{&internalNode{freqSum, a.node, b.node}, nextKey})
		nextKey++
	}

	return heap.Pop(&h).(nodeAndKey).node
}

// assignSizes walks the tree rooted at root and sets codes[Symbol].Size to
// the depth of each leaf.  It returns the smallest and largest depth found.
//
// The walk uses an explicit stack, so its cost does not depend on how skewed
// the tree is.
func assignSizes(codes []Code, root treeNode) (minSize byte, maxSize byte, err error) {
	// x counts the children of n already visited.
	type stackItem struct {
		n *internalNode
		x byte
	}

	stack := make([]stackItem, 0, 16)
	minSize = maxBitsPerCode

	processChild := func(child treeNode) error {
		switch node := child.(type) {
		case *internalNode:
			stack = append(stack, stackItem{n: node})
			return nil

		case *leafNode:
			depth := len(stack)
			if depth > maxBitsPerCode {
				return fmt.Errorf("%w: symbol %d needs %d bits", ErrCodeTooLong, node.symbol, depth)
			}
			size := byte(depth)
			codes[node.symbol].Size = size
			minSize = min(minSize, size)
			maxSize = max(maxSize, size)
			return nil

		default:
			panic(fmt.Errorf("unexpected tree node %T", child))
		}
	}

	if err := processChild(root); err != nil {
		return 0, 0, err
	}
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			err = processChild(top.n.left)
		case 1:
			err = processChild(top.n.right)
		case 2:
			stack = stack[:len(stack)-1]
		}
		if err != nil {
			return 0, 0, err
		}
	}
	return minSize, maxSize, nil
}

// assignCodes sets codes[Symbol].Bits from codes[Symbol].Size.
//
// Codes of equal size are consecutive and increase with the symbol.  Levels
// are numbered from the bottom up: the deepest codes start at 0, and the
// first code at each shallower level is half of the number of nodes on the
// level below.  Those smaller values are the prefixes of the longer codes.
func assignCodes(codes []Code) {
	var leaves histogram
	leaves.count(codes)

	var next [maxBitsPerCode + 1]uint32
	for k := maxBitsPerCode; k > 0; k-- {
		next[k-1] = (next[k] + uint32(leaves[k])) / 2
	}

	for symbol := range codes {
		size := codes[symbol].Size
		if size == 0 {
			continue
		}
		codes[symbol].Bits = next[size]
		next[size]++
	}
}

// histogram counts the codes of each size.
type histogram [maxBitsPerCode + 1]int

func (h *histogram) count(codes []Code) {
	for _, hc := range codes {
		if hc.Size != 0 {
			h[hc.Size]++
		}
	}
}

// nodes returns the number of tree nodes on each level, assuming the
// counted sizes form a complete prefix code.  ok is false if they do not.
func (h *histogram) nodes() (nodes [maxBitsPerCode + 1]int, ok bool) {
	nodes[maxBitsPerCode] = h[maxBitsPerCode]
	for k := maxBitsPerCode; k > 0; k-- {
		if nodes[k]%2 != 0 {
			return nodes, false
		}
		nodes[k-1] = nodes[k]/2 + h[k-1]
	}
	return nodes, nodes[0] == 1 && h[0] == 0
}

// subtreeHeights returns, for each internal node on the given level of a
// complete code, the height of the subtree below it.  Internal nodes come
// first on every level, so the i'th entry belongs to the prefix with value i.
func (h *histogram) subtreeHeights(maxSize int, level int) []int {
	nodes, ok := h.nodes()
	if !ok {
		panic(fmt.Errorf("subtreeHeights called on an incomplete code"))
	}

	heights := make([]int, nodes[maxSize])
	for i := maxSize - 1; i >= level; i-- {
		inner := nodes[i] - h[i]
		above := make([]int, nodes[i])
		for j := 0; j < inner; j++ {
			above[j] = max(heights[2*j], heights[2*j+1]) + 1
		}
		heights = above
	}
	return heights[:nodes[level]-h[level]]
}

// type nodeAndKey + type freqHeap {{{

type nodeAndKey struct {
	node treeNode
	key  uint32
}

type freqHeap struct {
	list []nodeAndKey
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if af, bf := a.node.weight(), b.node.weight(); af != bf {
		return af < bf
	}
	return a.key < b.key
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndKey))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndKey{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
