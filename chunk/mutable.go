package chunk

import "fmt"

// MutableChunk is a fixed-capacity byte store which grows by appending only.
//
// Storage is allocated once on creation and never reallocated, so views derived
// with AsChunk stay valid while the chunk keeps filling up.
type MutableChunk struct {
	data []byte // len(data) is the capacity
	n    int    // fill length, data[:n] is valid
}

// NewMutable allocates a chunk with room for capacity bytes.
func NewMutable(capacity int) (*MutableChunk, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidArgument, capacity)
	}
	return &MutableChunk{data: make([]byte, capacity)}, nil
}

// Len returns the fill length.
func (mc *MutableChunk) Len() int {
	return mc.n
}

// Cap returns the fixed capacity.
func (mc *MutableChunk) Cap() int {
	return len(mc.data)
}

// Remaining returns the number of bytes which may still be appended.
func (mc *MutableChunk) Remaining() int {
	return len(mc.data) - mc.n
}

// IsFull reports whether the fill length has reached the capacity.
func (mc *MutableChunk) IsFull() bool {
	return mc.n == len(mc.data)
}

// AppendByte writes b at the fill cursor.
func (mc *MutableChunk) AppendByte(b byte) error {
	if mc.n == len(mc.data) {
		return fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, len(mc.data))
	}
	mc.data[mc.n] = b
	mc.n++
	return nil
}

// Append copies all bytes of c to the fill cursor.
//
// Either all of c is appended or, if c is larger than Remaining, nothing is and
// ErrCapacityExceeded is returned.
func (mc *MutableChunk) Append(c Chunk) error {
	if c.Len() > mc.Remaining() {
		return fmt.Errorf("%w: chunk of %d bytes, %d remaining", ErrCapacityExceeded,
			c.Len(), mc.Remaining())
	}
	mc.n += copy(mc.data[mc.n:], c.view())
	return nil
}

// Get returns the byte at offset i, which must be below the fill length.
func (mc *MutableChunk) Get(i int) (byte, error) {
	if i < 0 || i >= mc.n {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, mc.n)
	}
	return mc.data[i], nil
}

// AsChunk returns a view over the bytes filled so far.
//
// The view does not copy. Its length is fixed when it is derived, so bytes
// appended afterwards are visible only through a newly derived view.
func (mc *MutableChunk) AsChunk() Chunk {
	return Chunk{storage: mc.data, n: mc.n}
}
