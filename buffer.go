package bigbytes

import (
	"fmt"

	"github.com/npillmayer/bigbytes/chunk"
)

// Buffer is a growable sequence of bytes, stored in leaf chunks of a recursive
// node structure. Create buffers with New; the zero value is not usable.
type Buffer struct {
	cfg  Config
	root *node
	size uint64
	// cursor holds the coordinates of the next writable leaf, one slot index
	// per dimension, most significant first.
	cursor []int
	// spans[k] is the byte capacity of a node of dimension k; spans[0] is
	// the leaf capacity.
	spans []uint64
	// tail is the leaf addressed by cursor, or nil if it has not been
	// allocated yet.
	tail *chunk.MutableChunk
}

// New creates an empty buffer of dimension 1.
func New(cfg Config) (*Buffer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	leafCap := uint64(cfg.LeafCapacity)
	return &Buffer{
		cfg:    cfg,
		root:   newNode(cfg, 1),
		cursor: make([]int, 1),
		spans:  []uint64{leafCap, cfg.span(1, leafCap)},
	}, nil
}

// Config returns the configuration the buffer has been created with.
func (b *Buffer) Config() Config {
	return b.cfg
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() uint64 {
	if b == nil {
		return 0
	}
	return b.size
}

// IsEmpty reports whether the buffer holds no bytes.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Dimension returns the dimension of the root node, 1 for a fresh buffer.
func (b *Buffer) Dimension() int {
	return b.root.dim
}

// Capacity returns the number of bytes the buffer may hold before it has to
// grow another dimension.
func (b *Buffer) Capacity() uint64 {
	return b.spans[b.root.dim]
}

// Remaining returns the free space of the leaf the next append goes to.
// AppendChunk accepts chunks up to this size.
func (b *Buffer) Remaining() int {
	if b.tail != nil {
		return b.tail.Remaining()
	}
	return b.cfg.LeafCapacity
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(x byte) error {
	if b.tail == nil {
		return b.appendByteToNewLeaf(x)
	}
	if err := b.tail.AppendByte(x); err != nil {
		return err
	}
	b.size++
	if b.tail.IsFull() {
		b.root.carry(b.cursor)
		b.tail = nil
	}
	return nil
}

// appendByteToNewLeaf routes x through the root, which allocates the leaf at
// the cursor position. The root is replaced by a taller one first, if it has
// no room left.
func (b *Buffer) appendByteToNewLeaf(x byte) error {
	if b.root.full {
		b.grow()
	}
	leaf, _, err := b.root.appendByte(b.cfg, b.cursor, x)
	if err != nil {
		return err
	}
	b.size++
	if !leaf.IsFull() {
		b.tail = leaf
	}
	return nil
}

// AppendChunk copies the bytes of c into the buffer.
//
// The bytes must fit into the current leaf, i.e. c.Len() must not exceed
// Remaining(). Otherwise ErrCapacityExceeded is returned and the buffer is left
// unchanged. AppendChunk never splits a chunk across leaves; clients who need
// this should use Write.
func (b *Buffer) AppendChunk(c chunk.Chunk) error {
	if c.IsEmpty() {
		return nil
	}
	if c.Len() > b.Remaining() {
		return fmt.Errorf("%w: chunk of %d bytes, %d remaining in leaf", ErrCapacityExceeded,
			c.Len(), b.Remaining())
	}
	leaf, err := b.currentLeaf()
	if err != nil {
		return err
	}
	if err := leaf.Append(c); err != nil {
		return err
	}
	b.size += uint64(c.Len())
	if leaf.IsFull() {
		b.root.carry(b.cursor)
		b.tail = nil
	}
	return nil
}

// currentLeaf returns the leaf at the cursor, allocating it (and growing the
// buffer) if necessary.
func (b *Buffer) currentLeaf() (*chunk.MutableChunk, error) {
	if b.tail != nil {
		return b.tail, nil
	}
	if b.root.full {
		b.grow()
	}
	leaf, err := b.root.leafAt(b.cfg, b.cursor, true)
	if err != nil {
		return nil, err
	}
	b.tail = leaf
	return leaf, nil
}

// grow installs a new root of one dimension more, with the current (full) root
// in slot 0. Appending continues in slot 1. The new state is assembled aside
// and committed at once.
func (b *Buffer) grow() {
	assert(b.root.full, "grow called for a root with free slots")
	dim := b.root.dim + 1
	root := newNode(b.cfg, dim)
	root.slots[0] = slot{kind: slotBranch, branch: b.root}
	root.used = 1
	cursor := make([]int, dim)
	cursor[0] = 1
	spans := b.spans
	if len(spans) <= dim {
		spans = append(spans[:len(spans):len(spans)], b.cfg.span(dim, spans[dim-1]))
	}
	tracer().Debugf("buffer: growing from dimension %d to %d, capacity %d",
		dim-1, dim, spans[dim])
	b.root, b.cursor, b.spans, b.tail = root, cursor, spans, nil
}

// Get returns the byte at index.
func (b *Buffer) Get(index uint64) (byte, error) {
	if index >= b.size {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, index, b.size)
	}
	return b.root.get(b.spans, index)
}

// Map returns a new buffer with the same configuration, holding f(x) for
// every byte x of b.
func (b *Buffer) Map(f func(byte) byte) (*Buffer, error) {
	out, err := New(b.cfg)
	if err != nil {
		return nil, err
	}
	scratch := make([]byte, 0, b.cfg.LeafCapacity)
	stream := b.Stream()
	for c, ok := stream.Next(); ok; c, ok = stream.Next() {
		scratch = c.AppendTo(scratch[:0])
		for i, x := range scratch {
			scratch[i] = f(x)
		}
		if _, err := out.Write(scratch); err != nil {
			return nil, err
		}
	}
	return out, nil
}
