package huffman

import (
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/huff/pqueue"
)

// maxNodes is the number of nodes in a full binary tree with NumSymbols
// leaves.
const maxNodes = 2*NumSymbols - 1

// Node is a node of a Huffman tree.  Nodes only know their parent, so the
// tree can only be walked from a leaf toward the root.
type Node struct {
	freq   uint64
	parent *Node
	symbol Symbol
	bit    uint8
}

// Frequency returns the number of occurrences represented by this node.  For
// an internal node that is the sum of its two children.
func (n *Node) Frequency() uint64 {
	return n.freq
}

// Parent returns the parent of this node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Symbol returns the symbol of a leaf, or InvalidSymbol for an internal node.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// IsLeaf reports whether this node stands for a symbol.
func (n *Node) IsLeaf() bool {
	return n.symbol != InvalidSymbol
}

// Bit returns the branch taken from the parent to reach this node: 0 for the
// first child merged, 1 for the second.  The root has no branch and returns 0.
func (n *Node) Bit() uint8 {
	return n.bit
}

// CodeLength returns the number of edges between this node and the root.
func (n *Node) CodeLength() int {
	return CodeLength(n)
}

func (n *Node) setParent(p *Node, bit uint8) {
	assert.Assertf(n.parent == nil, "huffman: node already has a parent")
	assert.Assertf(n != p, "huffman: node cannot be its own parent")
	n.parent = p
	n.bit = bit
}

// CodeLength returns the number of edges between leaf and the root.
func CodeLength(leaf *Node) int {
	assert.Assertf(leaf != nil, "huffman: CodeLength of nil node")
	var length int
	for n := leaf; n.parent != nil; n = n.parent {
		length++
	}
	return length
}

// Tree is a Huffman tree built from a frequency table.  It owns every Node it
// contains; the nodes stay valid until Release is called.
type Tree struct {
	nodes  []Node
	leaves [NumSymbols]*Node
	freq   Frequencies
	root   *Node
}

// BuildFrequencyTable counts the occurrences of every byte value in data.
// The EOF entry is always 0.
func BuildFrequencyTable(data []byte) Frequencies {
	var freq Frequencies
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// CountFrequencies is the streaming form of BuildFrequencyTable.
func CountFrequencies(r io.Reader) (Frequencies, error) {
	var freq Frequencies
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			freq[b]++
		}
		if err == io.EOF {
			return freq, nil
		}
		if err != nil {
			return freq, fmt.Errorf("failed to count input bytes: %w", err)
		}
	}
}

// BuildTree constructs the Huffman tree for the given frequencies.
//
// A leaf is created for every byte value with a nonzero count, plus the EOF
// leaf, which is always present with frequency 0 (freq[EOF] is ignored).  The
// two lowest-frequency nodes are then repeatedly merged under a new internal
// node until a single root remains.  With no input bytes at all, the EOF leaf
// is the root and has a code length of 0.
//
// The result is a pure function of freq: the same counts always yield the
// same tree, which is what lets a reader rebuild it from a stored header.
//
func BuildTree(freq Frequencies) *Tree {
	t := &Tree{
		nodes: make([]Node, 0, maxNodes),
		freq:  freq,
	}
	t.freq[EOF] = 0

	pq := pqueue.New(compareNodes)
	defer pq.Destroy()

	for symbol := Symbol(0); symbol < EOF; symbol++ {
		if t.freq[symbol] == 0 {
			continue
		}
		leaf := t.newNode(t.freq[symbol], symbol)
		t.leaves[symbol] = leaf
		pq.Insert(leaf)
	}

	eof := t.newNode(0, EOF)
	t.leaves[EOF] = eof
	pq.Insert(eof)

	for pq.Len() > 1 {
		n1 := pq.ExtractMin()
		n2 := pq.ExtractMin()
		internal := t.newNode(saturatingAdd(n1.freq, n2.freq), InvalidSymbol)
		n1.setParent(internal, 0)
		n2.setParent(internal, 1)
		pq.Insert(internal)
	}

	t.root = pq.ExtractMin()
	return t
}

func compareNodes(a, b *Node) int {
	switch {
	case a.freq < b.freq:
		return -1
	case a.freq > b.freq:
		return 1
	default:
		return 0
	}
}

func (t *Tree) newNode(freq uint64, symbol Symbol) *Node {
	assert.Assertf(len(t.nodes) < cap(t.nodes), "huffman: node arena exhausted (%d nodes)", len(t.nodes))
	t.nodes = append(t.nodes, Node{freq: freq, symbol: symbol})
	return &t.nodes[len(t.nodes)-1]
}

// Root returns the root of the tree.
func (t *Tree) Root() *Node {
	t.checkLive()
	return t.root
}

// Leaf returns the leaf for symbol, or nil if the symbol did not occur.  The
// EOF leaf is never nil.
func (t *Tree) Leaf(symbol Symbol) *Node {
	t.checkLive()
	assert.Assertf(symbol >= 0 && symbol <= MaxSymbol, "huffman: symbol %d out of range", symbol)
	return t.leaves[symbol]
}

// Frequencies returns the counts the tree was built from.
func (t *Tree) Frequencies() Frequencies {
	return t.freq
}

// NumNodes returns the number of nodes, leaves and internal, in the tree.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// Code returns the bit sequence that reaches symbol's leaf from the root.  The
// bits are gathered during a single walk from the leaf up to the root.
func (t *Tree) Code(symbol Symbol) (Code, error) {
	leaf := t.Leaf(symbol)
	if leaf == nil {
		return Code{}, fmt.Errorf("%w: %s", ErrNoSuchSymbol, symbol.Label())
	}

	var size uint
	var reversed uint64
	for n := leaf; n.parent != nil; n = n.parent {
		if size >= MaxBitsPerCode {
			return Code{}, fmt.Errorf("%w: symbol %s is deeper than %d", ErrCodeTooLong, symbol.Label(), MaxBitsPerCode)
		}
		reversed |= uint64(n.bit) << size
		size++
	}
	return MakeReversedCode(byte(size), reversed), nil
}

// WeightedLength returns the sum of frequency times code length over all
// leaves, i.e. the number of bits needed to encode the counted input.
func (t *Tree) WeightedLength() uint64 {
	var total uint64
	for _, leaf := range t.leaves {
		if leaf != nil {
			total += leaf.freq * uint64(CodeLength(leaf))
		}
	}
	return total
}

// Release drops every node owned by the tree.  Nodes obtained from the tree
// must not be used afterward.
func (t *Tree) Release() {
	t.nodes = nil
	t.leaves = [NumSymbols]*Node{}
	t.root = nil
}

func (t *Tree) checkLive() {
	assert.Assertf(t != nil, "huffman: nil tree")
	assert.Assertf(t.root != nil, "huffman: tree used after Release")
}
