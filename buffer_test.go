package bigbytes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/bigbytes/chunk"
	"github.com/npillmayer/bigbytes/ubyte"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func newTestBuffer(t *testing.T, s, c int) *Buffer {
	t.Helper()
	b, err := New(Config{BranchingFactor: s, LeafCapacity: c})
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	return b
}

func appendAll(t *testing.T, b *Buffer, data []byte) {
	t.Helper()
	for i, x := range data {
		if err := b.AppendByte(x); err != nil {
			t.Fatalf("unexpected AppendByte error at %d: %v", i, err)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	for _, cfg := range []Config{{0, 8}, {4, 0}, {-1, -1}, {}} {
		if _, err := New(cfg); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for %+v, got %v", cfg, err)
		}
	}
}

func TestNewBufferIsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bigbytes")
	defer teardown()
	//
	b, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	if !b.IsEmpty() || b.Len() != 0 {
		t.Errorf("new buffer has length %d", b.Len())
	}
	if b.Dimension() != 1 {
		t.Errorf("new buffer has dimension %d, want 1", b.Dimension())
	}
	if b.Capacity() != DefaultBranchingFactor*DefaultLeafCapacity {
		t.Errorf("unexpected capacity %d", b.Capacity())
	}
	if _, err := b.Get(0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds for empty buffer, got %v", err)
	}
	if err := b.Check(); err != nil {
		t.Errorf("empty buffer fails check: %v", err)
	}
}

func TestAppendAndGetRoundTrip(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, cfg := range []Config{{1, 1}, {2, 1}, {2, 3}, {3, 2}, {4, 8}, {1, 5}, {64, 64}} {
		b := newTestBuffer(t, cfg.BranchingFactor, cfg.LeafCapacity)
		data := make([]byte, 1000)
		for i := range data {
			data[i] = byte(i * 7)
		}
		appendAll(t, b, data)
		if b.Len() != uint64(len(data)) {
			t.Fatalf("%+v: length %d, want %d", cfg, b.Len(), len(data))
		}
		for i := range data {
			x, err := b.Get(uint64(i))
			if err != nil {
				t.Fatalf("%+v: unexpected Get(%d) error: %v", cfg, i, err)
			}
			if x != data[i] {
				t.Fatalf("%+v: Get(%d) = %d, want %d", cfg, i, x, data[i])
			}
		}
		if _, err := b.Get(uint64(len(data))); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("%+v: expected ErrIndexOutOfBounds past the end, got %v", cfg, err)
		}
		if err := b.Check(); err != nil {
			t.Fatalf("%+v: check failed: %v", cfg, err)
		}
	}
}

func TestDimensionGrowth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bigbytes")
	defer teardown()
	//
	b := newTestBuffer(t, 2, 1)
	appendAll(t, b, []byte{0xa, 0xb})
	if b.Dimension() != 1 {
		t.Fatalf("dimension %d after filling the root, want 1", b.Dimension())
	}
	if err := b.AppendByte(0xc); err != nil {
		t.Fatalf("unexpected AppendByte error: %v", err)
	}
	if b.Dimension() < 2 {
		t.Fatalf("dimension %d after overflowing the root, want >= 2", b.Dimension())
	}
	for i, want := range []byte{0xa, 0xb, 0xc} {
		if x, err := b.Get(uint64(i)); err != nil || x != want {
			t.Fatalf("Get(%d) = %d, %v; want %d", i, x, err, want)
		}
	}
	if err := b.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestDimensionFollowsCapacity(t *testing.T) {
	// capacity of dimension d is 2^d * 2
	for n, wantDim := range map[int]int{4: 1, 5: 2, 8: 2, 9: 3, 16: 3, 17: 4} {
		b := newTestBuffer(t, 2, 2)
		appendAll(t, b, make([]byte, n))
		if b.Dimension() != wantDim {
			t.Errorf("%d bytes: dimension %d, want %d", n, b.Dimension(), wantDim)
		}
		if b.Capacity() < b.Len() {
			t.Errorf("%d bytes: capacity %d below length", n, b.Capacity())
		}
	}
}

func TestBranchingFactorOneIsAChain(t *testing.T) {
	b := newTestBuffer(t, 1, 2)
	data := []byte("abcdefghijklmnopq")
	appendAll(t, b, data)
	if err := b.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !bytes.Equal(b.Bytes(), data) {
		t.Fatalf("content %q, want %q", b.Bytes(), data)
	}
	if b.Dimension() < 4 {
		t.Errorf("expected a deep chain, dimension is %d", b.Dimension())
	}
}

func TestTenBytesExample(t *testing.T) {
	b := newTestBuffer(t, 4, 8)
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	appendAll(t, b, data)
	if b.Len() != 10 {
		t.Fatalf("length %d, want 10", b.Len())
	}
	if x, _ := b.Get(9); x != 0x09 {
		t.Errorf("Get(9) = %d", x)
	}
	if x, _ := b.Get(0); x != 0x00 {
		t.Errorf("Get(0) = %d", x)
	}
	var chunks int
	var out []byte
	for c := range b.RangeChunk() {
		chunks++
		out = c.AppendTo(out)
	}
	if chunks < 1 || chunks > 2 {
		t.Errorf("streamed %d chunks, want 1 or 2", chunks)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("streamed %v, want %v", out, data)
	}
}

func TestAppendChunkFitsLeaf(t *testing.T) {
	b := newTestBuffer(t, 2, 4)
	if b.Remaining() != 4 {
		t.Fatalf("fresh buffer remaining %d, want 4", b.Remaining())
	}
	if err := b.AppendChunk(chunk.Of([]byte("abc"))); err != nil {
		t.Fatalf("unexpected AppendChunk error: %v", err)
	}
	if b.Remaining() != 1 {
		t.Fatalf("remaining %d, want 1", b.Remaining())
	}
	if err := b.AppendChunk(chunk.Of([]byte("d"))); err != nil {
		t.Fatalf("unexpected AppendChunk error: %v", err)
	}
	// leaf is full now, the next chunk goes to a fresh leaf
	if b.Remaining() != 4 {
		t.Fatalf("remaining %d after filling a leaf, want 4", b.Remaining())
	}
	if err := b.AppendChunk(chunk.Of([]byte("efgh"))); err != nil {
		t.Fatalf("unexpected AppendChunk error: %v", err)
	}
	if err := b.AppendChunk(chunk.Of(nil)); err != nil {
		t.Fatalf("empty chunk should be accepted, got %v", err)
	}
	if string(b.Bytes()) != "abcdefgh" {
		t.Fatalf("unexpected content %q", b.Bytes())
	}
	if err := b.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestAppendChunkRejectsOversizedChunk(t *testing.T) {
	b := newTestBuffer(t, 2, 4)
	appendAll(t, b, []byte("ab"))
	before := b.Bytes()
	err := b.AppendChunk(chunk.Of([]byte("xyz")))
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if b.Len() != 2 || b.Remaining() != 2 || b.Dimension() != 1 {
		t.Fatalf("rejected chunk changed state: len=%d remaining=%d dim=%d",
			b.Len(), b.Remaining(), b.Dimension())
	}
	if !bytes.Equal(b.Bytes(), before) {
		t.Fatalf("rejected chunk changed content to %q", b.Bytes())
	}
	// a chunk larger than any leaf is rejected even on a full root
	full := newTestBuffer(t, 2, 1)
	appendAll(t, full, []byte("ab"))
	if err := full.AppendChunk(chunk.Of([]byte("cd"))); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if full.Dimension() != 1 {
		t.Fatalf("rejected chunk grew the buffer to dimension %d", full.Dimension())
	}
	if err := full.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestAppendChunkGrowsFullRoot(t *testing.T) {
	b := newTestBuffer(t, 2, 2)
	for _, s := range []string{"ab", "cd", "ef"} {
		if err := b.AppendChunk(chunk.Of([]byte(s))); err != nil {
			t.Fatalf("unexpected AppendChunk error: %v", err)
		}
	}
	if b.Dimension() != 2 {
		t.Fatalf("dimension %d, want 2", b.Dimension())
	}
	if string(b.Bytes()) != "abcdef" {
		t.Fatalf("unexpected content %q", b.Bytes())
	}
	if err := b.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestWriteSplitsAtLeafBoundaries(t *testing.T) {
	b := newTestBuffer(t, 3, 5)
	appendAll(t, b, []byte("xy"))
	payload := bytes.Repeat([]byte("0123456789"), 17)
	n, err := b.Write(payload)
	if err != nil || n != len(payload) {
		t.Fatalf("Write = %d, %v", n, err)
	}
	want := append([]byte("xy"), payload...)
	if !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("content mismatch after Write")
	}
	for c := range b.RangeChunk() {
		if c.Len() > 5 {
			t.Fatalf("chunk of %d bytes exceeds leaf capacity", c.Len())
		}
	}
	if err := b.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestMapInvertsBytes(t *testing.T) {
	b := newTestBuffer(t, 2, 3)
	appendAll(t, b, []byte{0x01, 0x02, 0x80, 0xf0, 0x0f, 0xff, 0x00})
	rev, err := b.Map(func(x byte) byte { return x ^ 0xff })
	if err != nil {
		t.Fatalf("unexpected Map error: %v", err)
	}
	if rev.Config() != b.Config() || rev.Len() != b.Len() {
		t.Fatalf("mapped buffer differs in shape")
	}
	want := []byte{0xfe, 0xfd, 0x7f, 0x0f, 0xf0, 0x00, 0xff}
	if !bytes.Equal(rev.Bytes(), want) {
		t.Fatalf("mapped content %x, want %x", rev.Bytes(), want)
	}
	if !bytes.Equal(b.Bytes(), []byte{0x01, 0x02, 0x80, 0xf0, 0x0f, 0xff, 0x00}) {
		t.Fatalf("Map changed the source buffer")
	}
}

func TestMapWithBitReversalIsSelfInverse(t *testing.T) {
	b := newTestBuffer(t, 3, 4)
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	appendAll(t, b, data)
	rev, err := b.Map(ubyte.Reverse)
	if err != nil {
		t.Fatalf("unexpected Map error: %v", err)
	}
	if x, _ := rev.Get(1); x != 0x80 {
		t.Fatalf("reversed byte 1 is %#02x, want 0x80", x)
	}
	back, err := rev.Map(ubyte.Reverse)
	if err != nil {
		t.Fatalf("unexpected Map error: %v", err)
	}
	if !bytes.Equal(back.Bytes(), data) {
		t.Fatalf("double bit reversal does not restore content")
	}
}
