// Package chunk provides the byte storage units of a big byte buffer:
// Chunk, a bounds-checked read-only view over a byte range, and MutableChunk,
// a fixed-capacity append-only store used as a buffer leaf.
package chunk

import (
	"encoding/hex"
	"fmt"
	"io"
)

// Chunk is a read-only view over the range [start, start+n) of a byte slice.
//
// A chunk never copies or mutates its storage and never takes ownership of it.
// Callers must keep the storage unchanged for as long as the view is in use.
// The zero value is an empty chunk.
type Chunk struct {
	storage []byte
	start   int
	n       int
}

// New creates a view for [start,end) of storage.
//
// Returns ErrRange if start > end (or start is negative) and ErrEndOutOfBounds
// if end exceeds the storage length.
func New(storage []byte, start, end int) (Chunk, error) {
	if start > end || start < 0 {
		return Chunk{}, fmt.Errorf("%w: start %d, end %d", ErrRange, start, end)
	}
	if end > len(storage) {
		return Chunk{}, fmt.Errorf("%w: end %d, length %d", ErrEndOutOfBounds, end, len(storage))
	}
	return Chunk{storage: storage, start: start, n: end - start}, nil
}

// Of returns a view over all of storage.
func Of(storage []byte) Chunk {
	return Chunk{storage: storage, n: len(storage)}
}

// Len returns the number of visible bytes.
func (c Chunk) Len() int {
	return c.n
}

// IsEmpty reports whether the chunk has no bytes.
func (c Chunk) IsEmpty() bool {
	return c.n == 0
}

// Get returns the byte at chunk-local offset i.
func (c Chunk) Get(i int) (byte, error) {
	if i < 0 || i >= c.n {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, c.n)
	}
	return c.storage[c.start+i], nil
}

// Slice returns a sub-view for [start,end) in chunk-local offsets.
func (c Chunk) Slice(start, end int) (Chunk, error) {
	if start > end || start < 0 {
		return Chunk{}, fmt.Errorf("%w: start %d, end %d", ErrRange, start, end)
	}
	if end > c.n {
		return Chunk{}, fmt.Errorf("%w: end %d, length %d", ErrEndOutOfBounds, end, c.n)
	}
	return Chunk{storage: c.storage, start: c.start + start, n: end - start}, nil
}

// Bytes returns a copy of the visible bytes.
func (c Chunk) Bytes() []byte {
	return append([]byte(nil), c.view()...)
}

// AppendTo appends the visible bytes to dst and returns the extended slice.
func (c Chunk) AppendTo(dst []byte) []byte {
	return append(dst, c.view()...)
}

// CopyTo copies the visible bytes into dst and returns the number of bytes
// copied, which is the minimum of c.Len() and len(dst).
func (c Chunk) CopyTo(dst []byte) int {
	return copy(dst, c.view())
}

// WriteTo writes the visible bytes to w. It implements io.WriterTo.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	if c.n == 0 {
		return 0, nil
	}
	n, err := w.Write(c.view())
	return int64(n), err
}

// String returns a short hex preview of the chunk, for debugging.
func (c Chunk) String() string {
	const preview = 16
	if c.n <= preview {
		return fmt.Sprintf("[%d]%s", c.n, hex.EncodeToString(c.view()))
	}
	return fmt.Sprintf("[%d]%s…", c.n, hex.EncodeToString(c.view()[:preview]))
}

// view is the visible range of the storage. It must not escape to clients
// without copying.
func (c Chunk) view() []byte {
	return c.storage[c.start : c.start+c.n : c.start+c.n]
}
