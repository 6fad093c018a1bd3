/*

PrefixCodeTree: bit-by-bit decoding of prefix (Huffman) codes.

*/

package bitstream

import "fmt"

// NoSymbol is the placeholder carried by tree positions never assigned by
// Insert. Decoding onto such a position reports a corrupt stream.
const NoSymbol uint16 = 0xffff

// node is a single position in a PrefixCodeTree. A node with no children
// terminates a codeword.
type node struct {
	zero, one *node
	sym       uint16
}

// PrefixCodeTree maps prefix-free codewords to symbols, decoded one bit at a
// time. The tree is built incrementally with Insert; once decoding has
// started it must be treated as read-only.
//
// Inserting a codeword that extends a previously inserted shorter one (a
// malformed code table, impossible with well-formed canonical Huffman
// lengths) silently makes the shorter symbol unreachable: last insert wins.
type PrefixCodeTree struct {
	root  node
	nodes int // descendant nodes created by Insert
}

// NewPrefixCodeTree returns an empty tree: a lone root with no children and
// no symbol.
func NewPrefixCodeTree() *PrefixCodeTree {
	return &PrefixCodeTree{root: node{sym: NoSymbol}}
}

// Insert assigns sym to the codeword formed by the length (1..32) lowest
// bits of code, consumed most significant first: a 1 bit descends into the
// one-branch, a 0 bit into the zero-branch, creating nodes as needed.
func (t *PrefixCodeTree) Insert(code uint32, length int, sym uint16) error {
	if length < 1 || length > 32 {
		return fmt.Errorf("%w: codeword length %d", ErrInvalidArgs, length)
	}
	n := &t.root
	for i := length - 1; i >= 0; i-- {
		if code>>uint(i)&1 == 1 {
			if n.one == nil {
				n.one = &node{sym: NoSymbol}
				t.nodes++
			}
			n = n.one
		} else {
			if n.zero == nil {
				n.zero = &node{sym: NoSymbol}
				t.nodes++
			}
			n = n.zero
		}
	}
	n.sym = sym
	return nil
}

// Len returns the number of live descendant nodes.
func (t *PrefixCodeTree) Len() int {
	return t.nodes
}

// Decode reads bits from r until it lands on a node with no children and
// returns that node's symbol: a 1 bit descends into the one-branch, a 0 bit
// into the zero-branch. A bit sequence leading off the tree, or onto a
// position never assigned by Insert, fails with ErrInvalidRead.
func (t *PrefixCodeTree) Decode(r *BitReader) (sym uint16, err error) {
	n := &t.root
	for n.zero != nil || n.one != nil {
		var bit byte
		if bit, err = r.ReadBit(); err != nil {
			return NoSymbol, err
		}
		if bit == 1 {
			n = n.one
		} else {
			n = n.zero
		}
		if n == nil {
			return NoSymbol, fmt.Errorf("%w: codeword not in tree", ErrInvalidRead)
		}
	}
	if n.sym == NoSymbol {
		return NoSymbol, fmt.Errorf("%w: unassigned codeword", ErrInvalidRead)
	}
	return n.sym, nil
}

// Destroy unlinks every descendant node and resets the tree to its empty
// state, returning the number of nodes released. An explicit worklist is
// used instead of recursion, so teardown depth does not depend on the
// longest codeword; children are always unlinked before their parent is
// dropped. Safe on a tree with no inserted codewords.
func (t *PrefixCodeTree) Destroy() (released int) {
	stack := make([]*node, 0, 64)
	stack = append(stack, &t.root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		if n.zero != nil || n.one != nil {
			// Queue the children and revisit n once they are gone.
			if n.zero != nil {
				stack = append(stack, n.zero)
				n.zero = nil
			}
			if n.one != nil {
				stack = append(stack, n.one)
				n.one = nil
			}
			continue
		}
		stack = stack[:len(stack)-1]
		released++
	}
	released-- // the root is part of the tree itself, not a descendant
	t.root.sym = NoSymbol
	t.nodes = 0
	return released
}
