package bigbytes

import (
	"iter"

	"github.com/npillmayer/bigbytes/chunk"
)

// ChunkStream produces the leaf chunks of a buffer in append order, one at a
// time. A stream is finite and cannot be restarted; call Buffer.Stream again
// for a fresh one.
//
// The stream keeps its own path from the root to the current leaf, so moving
// on to the next chunk does not re-derive coordinates from the root. The
// buffer must not be appended to while a stream is in use.
type ChunkStream struct {
	stack []streamFrame
	pos   uint64
}

type streamFrame struct {
	n    *node
	next int // next slot to visit
}

// Stream returns a new stream positioned at the first byte of b.
func (b *Buffer) Stream() *ChunkStream {
	stack := make([]streamFrame, 1, b.root.dim)
	stack[0] = streamFrame{n: b.root}
	return &ChunkStream{stack: stack}
}

// Next returns the next chunk. The boolean is false when the stream is
// exhausted.
func (s *ChunkStream) Next() (chunk.Chunk, bool) {
	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		if top.next >= top.n.used {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}
		sl := top.n.slots[top.next]
		top.next++
		if sl.kind == slotBranch {
			s.stack = append(s.stack, streamFrame{n: sl.branch})
			continue
		}
		if sl.leaf.Len() == 0 {
			continue
		}
		c := sl.leaf.AsChunk()
		s.pos += uint64(c.Len())
		return c, true
	}
	return chunk.Chunk{}, false
}

// Pos returns the number of bytes delivered so far.
func (s *ChunkStream) Pos() uint64 {
	return s.pos
}

// RangeChunk returns an iterator over all chunks in append order. Every call
// of the iterator starts a fresh stream.
func (b *Buffer) RangeChunk() iter.Seq[chunk.Chunk] {
	return func(yield func(chunk.Chunk) bool) {
		s := b.Stream()
		for c, ok := s.Next(); ok; c, ok = s.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

// EachChunk visits all chunks in append order.
//
// The callback receives each chunk and its starting byte offset. Iteration stops
// at the first callback error and returns that error to the caller.
func (b *Buffer) EachChunk(f func(chunk.Chunk, uint64) error) error {
	s := b.Stream()
	for {
		pos := s.Pos()
		c, ok := s.Next()
		if !ok {
			return nil
		}
		if err := f(c, pos); err != nil {
			return err
		}
	}
}
