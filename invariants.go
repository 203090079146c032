package bigbytes

import "fmt"

// Check validates structural buffer invariants.
//
// It recomputes every cached value (fullness per node, total length, cursor
// position) from the leaves upwards and compares. Check is intended for
// tests and debugging; it visits every node.
func (b *Buffer) Check() error {
	if b == nil || b.root == nil {
		return fmt.Errorf("%w: nil buffer", ErrCorrupted)
	}
	if len(b.cursor) != b.root.dim {
		return fmt.Errorf("%w: cursor has %d digits, dimension is %d", ErrCorrupted,
			len(b.cursor), b.root.dim)
	}
	if len(b.spans) <= b.root.dim {
		return fmt.Errorf("%w: missing span for dimension %d", ErrCorrupted, b.root.dim)
	}
	size, err := b.checkNode(b.root)
	if err != nil {
		return err
	}
	if size != b.size {
		return fmt.Errorf("%w: length is %d, leaves hold %d bytes", ErrCorrupted, b.size, size)
	}
	return b.checkCursor()
}

func (b *Buffer) checkNode(n *node) (size uint64, err error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrCorrupted)
	}
	if len(n.slots) != b.cfg.slots(n.dim) {
		return 0, fmt.Errorf("%w: node of dimension %d has %d slots, want %d", ErrCorrupted,
			n.dim, len(n.slots), b.cfg.slots(n.dim))
	}
	if n.used < 0 || n.used > len(n.slots) {
		return 0, fmt.Errorf("%w: used count %d out of range", ErrCorrupted, n.used)
	}
	for i, s := range n.slots {
		if i >= n.used {
			if s.kind != slotEmpty {
				return 0, fmt.Errorf("%w: occupied slot %d behind used count %d", ErrCorrupted, i, n.used)
			}
			continue
		}
		var childFull bool
		switch s.kind {
		case slotEmpty:
			return 0, fmt.Errorf("%w: gap at slot %d of dimension %d", ErrCorrupted, i, n.dim)
		case slotLeaf:
			if n.dim != 1 || s.leaf == nil {
				return 0, fmt.Errorf("%w: leaf in node of dimension %d", ErrCorrupted, n.dim)
			}
			if s.leaf.Cap() != b.cfg.LeafCapacity {
				return 0, fmt.Errorf("%w: leaf capacity %d", ErrCorrupted, s.leaf.Cap())
			}
			size += uint64(s.leaf.Len())
			childFull = s.leaf.IsFull()
		case slotBranch:
			if n.dim == 1 || s.branch == nil || s.branch.dim != n.dim-1 {
				return 0, fmt.Errorf("%w: misplaced branch in node of dimension %d", ErrCorrupted, n.dim)
			}
			k, err := b.checkNode(s.branch)
			if err != nil {
				return 0, err
			}
			size += k
			childFull = s.branch.isFull()
		}
		if !childFull && i < n.used-1 {
			return 0, fmt.Errorf("%w: non-full slot %d followed by occupied slots", ErrCorrupted, i)
		}
	}
	if n.full != n.isFull() {
		return 0, fmt.Errorf("%w: stale fullness cache in node of dimension %d (cached %v)",
			ErrCorrupted, n.dim, n.full)
	}
	return size, nil
}

// checkCursor verifies that the cursor addresses the first non-full leaf
// position in depth-first order and that the cached tail is that leaf.
func (b *Buffer) checkCursor() error {
	if b.root.full {
		for _, d := range b.cursor {
			if d != 0 {
				return fmt.Errorf("%w: cursor %v of a full root", ErrCorrupted, b.cursor)
			}
		}
		if b.tail != nil {
			return fmt.Errorf("%w: tail set for a full root", ErrCorrupted)
		}
		return nil
	}
	cur := b.root
	for level, d := range b.cursor {
		if d < 0 || d >= len(cur.slots) {
			return fmt.Errorf("%w: cursor digit %d out of range", ErrCorrupted, d)
		}
		if d < cur.used-1 || d > cur.used {
			return fmt.Errorf("%w: cursor digit %d at level %d, %d slots used",
				ErrCorrupted, d, level, cur.used)
		}
		s := cur.slots[d]
		switch s.kind {
		case slotEmpty:
			if d > 0 && !slotFull(cur.slots[d-1]) {
				return fmt.Errorf("%w: cursor skips a non-full slot at level %d", ErrCorrupted, level)
			}
			for _, rest := range b.cursor[level+1:] {
				if rest != 0 {
					return fmt.Errorf("%w: cursor %v below an empty slot", ErrCorrupted, b.cursor)
				}
			}
			if b.tail != nil {
				return fmt.Errorf("%w: tail set for an unallocated leaf", ErrCorrupted)
			}
			return nil
		case slotLeaf:
			if s.leaf.IsFull() {
				return fmt.Errorf("%w: cursor addresses a full leaf", ErrCorrupted)
			}
			if s.leaf != b.tail {
				return fmt.Errorf("%w: tail is not the leaf at the cursor", ErrCorrupted)
			}
			return nil
		case slotBranch:
			if s.branch.isFull() {
				return fmt.Errorf("%w: cursor addresses a full subtree", ErrCorrupted)
			}
			cur = s.branch
		}
	}
	return nil
}

func slotFull(s slot) bool {
	switch s.kind {
	case slotLeaf:
		return s.leaf.IsFull()
	case slotBranch:
		return s.branch.isFull()
	}
	return false
}
