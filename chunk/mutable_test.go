package chunk

import (
	"errors"
	"testing"
)

func TestNewMutableRejectsNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		if _, err := NewMutable(c); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for capacity %d, got %v", c, err)
		}
	}
}

func TestMutableAppendUntilFull(t *testing.T) {
	mc, err := NewMutable(3)
	if err != nil {
		t.Fatalf("unexpected NewMutable error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if mc.IsFull() {
			t.Fatalf("chunk reports full after %d bytes", i)
		}
		if err := mc.AppendByte(byte('a' + i)); err != nil {
			t.Fatalf("unexpected AppendByte error: %v", err)
		}
	}
	if !mc.IsFull() || mc.Remaining() != 0 || mc.Len() != 3 || mc.Cap() != 3 {
		t.Fatalf("unexpected state len=%d cap=%d remaining=%d", mc.Len(), mc.Cap(), mc.Remaining())
	}
	if err := mc.AppendByte('x'); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if mc.Len() != 3 {
		t.Fatalf("failed append changed fill length to %d", mc.Len())
	}
	if string(mc.AsChunk().Bytes()) != "abc" {
		t.Fatalf("unexpected content %q", mc.AsChunk().Bytes())
	}
}

func TestMutableGetBelowFill(t *testing.T) {
	mc, _ := NewMutable(8)
	_ = mc.AppendByte(7)
	if b, err := mc.Get(0); err != nil || b != 7 {
		t.Fatalf("Get(0) = %d, %v", b, err)
	}
	// index 1 is inside capacity, but not yet written
	if _, err := mc.Get(1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds beyond fill, got %v", err)
	}
	if _, err := mc.Get(-1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds for negative index, got %v", err)
	}
}

func TestMutableAppendChunkAllOrNothing(t *testing.T) {
	mc, _ := NewMutable(4)
	if err := mc.Append(Of([]byte("ab"))); err != nil {
		t.Fatalf("unexpected Append error: %v", err)
	}
	if err := mc.Append(Of([]byte("cde"))); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if mc.Len() != 2 {
		t.Fatalf("rejected append changed fill length to %d", mc.Len())
	}
	if err := mc.Append(Of([]byte("cd"))); err != nil {
		t.Fatalf("unexpected Append error: %v", err)
	}
	if string(mc.AsChunk().Bytes()) != "abcd" {
		t.Fatalf("unexpected content %q", mc.AsChunk().Bytes())
	}
}

func TestAsChunkIsFixedAtDerivation(t *testing.T) {
	mc, _ := NewMutable(4)
	_ = mc.AppendByte('a')
	view := mc.AsChunk()
	_ = mc.AppendByte('b')
	if view.Len() != 1 {
		t.Fatalf("derived view changed length to %d", view.Len())
	}
	if again := mc.AsChunk(); again.Len() != 2 || string(again.Bytes()) != "ab" {
		t.Fatalf("re-derived view should see new bytes, got %q", again.Bytes())
	}
}
