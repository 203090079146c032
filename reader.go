package bigbytes

import (
	"fmt"
	"io"

	"github.com/npillmayer/bigbytes/chunk"
)

var (
	_ io.Writer     = (*Buffer)(nil)
	_ io.ByteWriter = (*Buffer)(nil)
	_ io.ReaderFrom = (*Buffer)(nil)
	_ io.ReaderAt   = (*Buffer)(nil)
	_ io.WriterTo   = (*Buffer)(nil)
)

// Write appends all bytes of p, splitting p at leaf boundaries. It implements
// io.Writer and never fails for a valid buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	for n < len(p) {
		k := min(b.Remaining(), len(p)-n)
		c, err := chunk.New(p, n, n+k)
		if err != nil {
			return n, err
		}
		if err = b.AppendChunk(c); err != nil {
			return n, err
		}
		n += k
	}
	return n, nil
}

// WriteByte appends c. It implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	return b.AppendByte(c)
}

// ReadFrom appends bytes from r until EOF. It implements io.ReaderFrom.
//
// ReadFrom returns the number of bytes read and any error encountered,
// except that io.EOF is not returned as an error.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	buf := make([]byte, max(b.cfg.LeafCapacity, 512))
	for {
		c, rerr := r.Read(buf)
		if c > 0 {
			w, _ := b.Write(buf[:c])
			n += int64(w)
		}
		if rerr != nil {
			if rerr == io.EOF {
				rerr = nil
			}
			return n, rerr
		}
	}
}

// ReadAt reads len(p) bytes starting at byte offset off. It implements
// io.ReaderAt; if fewer than len(p) bytes are available, io.EOF is returned.
func (b *Buffer) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ErrInvalidArgument, off)
	}
	pos := uint64(off)
	for n < len(p) {
		if pos >= b.size {
			return n, io.EOF
		}
		leaf, i, err := b.root.locate(b.spans, pos)
		if err != nil {
			return n, err
		}
		view, err := leaf.AsChunk().Slice(i, leaf.Len())
		if err != nil {
			return n, err
		}
		c := view.CopyTo(p[n:])
		n += c
		pos += uint64(c)
	}
	return n, nil
}

// WriteTo writes the content of the buffer to w, chunk by chunk. It
// implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	err = b.EachChunk(func(c chunk.Chunk, _ uint64) error {
		k, err := c.WriteTo(w)
		n += k
		return err
	})
	return n, err
}

// Bytes returns a copy of the content as a single slice.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.size)
	for c := range b.RangeChunk() {
		out = c.AppendTo(out)
	}
	return out
}

// Reader returns a reader for the bytes of the buffer.
func (b *Buffer) Reader() io.Reader {
	return &bufferReader{stream: b.Stream()}
}

type bufferReader struct {
	stream *ChunkStream
	cur    chunk.Chunk // unread rest of the current chunk
}

func (br *bufferReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	for n < len(p) {
		if br.cur.IsEmpty() {
			c, ok := br.stream.Next()
			if !ok {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			br.cur = c
		}
		k := br.cur.CopyTo(p[n:])
		n += k
		if br.cur, err = br.cur.Slice(k, br.cur.Len()); err != nil {
			return n, err
		}
	}
	return n, nil
}
