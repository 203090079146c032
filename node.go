package bigbytes

import (
	"fmt"

	"github.com/npillmayer/bigbytes/chunk"
)

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotLeaf           // only in nodes of dimension 1
	slotBranch         // only in nodes of dimension >= 2
)

// slot is either empty, a leaf chunk or a child node of one dimension less.
type slot struct {
	kind   slotKind
	leaf   *chunk.MutableChunk
	branch *node
}

// node is a buffer node. It exclusively owns its children.
//
// Slots are filled from left to right without gaps: slots[:used] are
// occupied and every occupied slot except the last one is full.
type node struct {
	dim   int
	slots []slot
	used  int
	// full caches whether every slot is occupied and the last one is full.
	// It is maintained by carry.
	full bool
}

func newNode(cfg Config, dim int) *node {
	assert(dim >= 1, "buffer node with dimension < 1")
	return &node{
		dim:   dim,
		slots: make([]slot, cfg.slots(dim)),
	}
}

// leafAt descends along coords (one slot index per dimension, most
// significant first) and returns the addressed leaf. If create is set, empty
// slots on the path are filled with fresh children; otherwise a missing leaf
// is reported as nil.
func (n *node) leafAt(cfg Config, coords []int, create bool) (*chunk.MutableChunk, error) {
	assert(len(coords) == n.dim, "coordinates do not match node dimension")
	cur := n
	for level := 0; ; level++ {
		i := coords[level]
		s := &cur.slots[i]
		if s.kind == slotEmpty {
			if !create {
				return nil, nil
			}
			assert(i == cur.used, "slot allocation would leave a gap")
			if cur.dim == 1 {
				leaf, err := chunk.NewMutable(cfg.LeafCapacity)
				if err != nil {
					return nil, err
				}
				*s = slot{kind: slotLeaf, leaf: leaf}
			} else {
				*s = slot{kind: slotBranch, branch: newNode(cfg, cur.dim-1)}
			}
			cur.used++
		}
		if s.kind == slotLeaf {
			return s.leaf, nil
		}
		cur = s.branch
	}
}

// appendByte appends b to the leaf addressed by coords, creating the leaf if
// necessary. If the leaf fills up, coords are advanced to the next leaf
// position (see carry) and overflow reports whether n itself became full.
// The leaf written to is returned.
func (n *node) appendByte(cfg Config, coords []int, b byte) (leaf *chunk.MutableChunk, overflow bool, err error) {
	if n.full {
		return nil, true, fmt.Errorf("%w: node of dimension %d is full", ErrCapacityExceeded, n.dim)
	}
	if leaf, err = n.leafAt(cfg, coords, true); err != nil {
		return nil, false, err
	}
	if err = leaf.AppendByte(b); err != nil {
		return nil, false, err
	}
	if !leaf.IsFull() {
		return leaf, false, nil
	}
	return leaf, n.carry(coords), nil
}

// carry advances coords past a leaf which just filled up, like incrementing a
// mixed-radix odometer with one digit per dimension. Digits which roll over
// mark their node as full. carry returns true if n itself rolled over; coords
// are all zero then.
func (n *node) carry(coords []int) bool {
	if n.dim > 1 {
		child := n.slots[coords[0]].branch
		assert(child != nil, "carry through an empty slot")
		if !child.carry(coords[1:]) {
			return false
		}
	}
	coords[0]++
	if coords[0] < len(n.slots) {
		return false
	}
	coords[0] = 0
	n.full = true
	return true
}

// locate maps a flat byte index to its leaf and the offset within that leaf.
// spans[k] is the byte capacity of a node of dimension k, spans[0] is the
// leaf capacity.
func (n *node) locate(spans []uint64, index uint64) (*chunk.MutableChunk, int, error) {
	if index >= spans[n.dim] {
		return nil, 0, fmt.Errorf("%w: index %d, node capacity %d", ErrIndexOutOfBounds,
			index, spans[n.dim])
	}
	cur := n
	for {
		span := spans[cur.dim-1]
		i := index / span
		index %= span
		if i >= uint64(cur.used) {
			return nil, 0, fmt.Errorf("%w: slot %d of dimension %d is empty",
				ErrIndexOutOfBounds, i, cur.dim)
		}
		s := cur.slots[i]
		if s.kind == slotLeaf {
			return s.leaf, int(index), nil
		}
		cur = s.branch
	}
}

// get returns the byte at a flat index.
func (n *node) get(spans []uint64, index uint64) (byte, error) {
	leaf, offset, err := n.locate(spans, index)
	if err != nil {
		return 0, err
	}
	return leaf.Get(offset)
}

// isFull recomputes fullness bottom-up, ignoring the cache.
func (n *node) isFull() bool {
	if n.used < len(n.slots) {
		return false
	}
	last := n.slots[len(n.slots)-1]
	if last.kind == slotLeaf {
		return last.leaf.IsFull()
	}
	return last.branch.isFull()
}
