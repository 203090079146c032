package chunk

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestChunkViewProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		storage := rapid.SliceOf(rapid.Byte()).Draw(t, "storage")
		start := rapid.IntRange(0, len(storage)).Draw(t, "start")
		end := rapid.IntRange(start, len(storage)).Draw(t, "end")

		c, err := New(storage, start, end)
		if err != nil {
			t.Fatalf("unexpected New error: %v", err)
		}
		if c.Len() != end-start {
			t.Fatalf("Len() = %d, want %d", c.Len(), end-start)
		}
		for i := 0; i < c.Len(); i++ {
			b, err := c.Get(i)
			if err != nil {
				t.Fatalf("unexpected Get(%d) error: %v", i, err)
			}
			if b != storage[start+i] {
				t.Fatalf("Get(%d) = %d, want %d", i, b, storage[start+i])
			}
		}
	})
}

func TestChunkInvalidRangeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		storage := rapid.SliceOf(rapid.Byte()).Draw(t, "storage")
		end := rapid.IntRange(0, len(storage)).Draw(t, "end")
		start := rapid.IntRange(end+1, end+64).Draw(t, "start")
		if _, err := New(storage, start, end); !errors.Is(err, ErrRange) {
			t.Fatalf("expected ErrRange for [%d,%d), got %v", start, end, err)
		}
		beyond := rapid.IntRange(len(storage)+1, len(storage)+64).Draw(t, "beyond")
		if _, err := New(storage, 0, beyond); !errors.Is(err, ErrEndOutOfBounds) {
			t.Fatalf("expected ErrEndOutOfBounds for end %d, got %v", beyond, err)
		}
	})
}
