package huffpack

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// Node is one node of a Huffman tree.  A leaf has no children and carries a
// valid Symbol; an internal node has exactly two children, carries
// InvalidSymbol, and weighs the sum of its children.
//
// Each internal node exclusively owns its two children.
type Node struct {
	Symbol Symbol
	Weight uint64
	Left   *Node
	Right  *Node
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaves in the subtree rooted at n.
func (n *Node) Leaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// Depth returns the length of the longest root-to-leaf path below n.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l < r {
		l = r
	}
	return l + 1
}

// BuildTree builds a Huffman tree from freq by repeatedly merging the two
// lightest nodes.
//
// Ties between equal weights go to the node created first: leaves are
// created in first-seen order of their symbols, and each merged node is
// created after every leaf and every earlier merge.  The first node removed
// in a merge becomes the left child.  Identical inputs therefore always
// produce identical trees.
//
// A table with a single symbol yields a single leaf.
//
func BuildTree(freq *FrequencyTable) (*Node, error) {
	if freq == nil || freq.Len() == 0 {
		return nil, ErrEmptyInput
	}

	// Step 1: build a minheap of leaves.

	symbols := freq.Symbols()
	items := make([]nodeAndSeq, 0, len(symbols))
	for _, symbol := range symbols {
		leaf := &Node{Symbol: symbol, Weight: freq.Count(symbol)}
		items = append(items, nodeAndSeq{leaf, uint32(len(items))})
	}

	h := nodeHeap{items}
	h.Init()
	nextSeq := uint32(len(items))

	// Step 2: pop two nodes, merge them, push the merged node back.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq)
		b := heap.Pop(&h).(nodeAndSeq)

		sum := a.node.Weight + b.node.Weight
		assert.Assertf(sum > a.node.Weight && sum > b.node.Weight, "weight overflow merging %d + %d", a.node.Weight, b.node.Weight)

		merged := &Node{
			Symbol: InvalidSymbol,
			Weight: sum,
			Left:   a.node,
			Right:  b.node,
		}
		heap.Push(&h, nodeAndSeq{merged, nextSeq})
		nextSeq++
	}

	root := heap.Pop(&h).(nodeAndSeq).node
	assert.Assertf(root.Weight == freq.Total(), "root weight %d != total %d", root.Weight, freq.Total())
	return root, nil
}

// type nodeAndSeq + type nodeHeap {{{

type nodeAndSeq struct {
	node *Node
	seq  uint32
}

type nodeHeap struct {
	list []nodeAndSeq
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.Weight != b.node.Weight {
		return a.node.Weight < b.node.Weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
