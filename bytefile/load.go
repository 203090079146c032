package bytefile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guiguan/caster"
	"github.com/klauspost/compress/zstd"
	"github.com/npillmayer/bigbytes"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// progressBacklog is the channel capacity of a progress subscription.
const progressBacklog = 256

// ErrNotRegular is returned when loading from a path which is not a regular file.
var ErrNotRegular = errors.New("bytefile: not a regular file")

// Progress is broadcast to subscribers after every fragment appended.
type Progress struct {
	Loaded int64 // bytes appended so far
	Total  int64 // expected number of bytes, or -1 if unknown
	Done   bool  // set for the final message of a load
}

// Loader loads files or readers into buffers of a fixed configuration.
// A Loader may be used for more than one load, but not concurrently.
type Loader struct {
	cfg      bigbytes.Config
	fragSize int
	prefetch int
	zstd     bool
	cast     *caster.Caster // broadcaster for progress messages
}

// Option configures a Loader.
type Option func(*Loader)

// WithZstd lets the loader decode zstd-compressed input.
func WithZstd() Option {
	return func(l *Loader) {
		l.zstd = true
	}
}

// WithFragmentSize sets the number of bytes read per fragment. A size <= 0
// selects a default depending on the input size.
func WithFragmentSize(n int) Option {
	return func(l *Loader) {
		l.fragSize = n
	}
}

// WithPrefetch sets the number of fragments which may be read ahead of the
// buffer. Values < 1 are treated as 1.
func WithPrefetch(n int) Option {
	return func(l *Loader) {
		l.prefetch = max(n, 1)
	}
}

// NewLoader creates a loader producing buffers with configuration cfg.
func NewLoader(cfg bigbytes.Config, opts ...Option) *Loader {
	l := &Loader{
		cfg:      cfg,
		prefetch: 4,
		cast:     caster.New(nil),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Progress subscribes to progress messages of all subsequent loads. Messages are
// of type Progress. The subscription ends when ctx is done or the loader is
// closed. Subscribers have to drain the channel, otherwise loading stalls.
func (l *Loader) Progress(ctx context.Context) (<-chan interface{}, bool) {
	return l.cast.Sub(ctx, progressBacklog)
}

// Close ends all progress subscriptions.
func (l *Loader) Close() {
	l.cast.Close()
}

// Load is a shortcut for loading a single file with a fresh loader.
func Load(ctx context.Context, name string, cfg bigbytes.Config, opts ...Option) (*bigbytes.Buffer, error) {
	l := NewLoader(cfg, opts...)
	defer l.Close()
	return l.Load(ctx, name)
}

// Load reads a file into a new buffer. If the loader has been created with
// WithZstd, the file content is decoded first.
func (l *Loader) Load(ctx context.Context, name string) (*bigbytes.Buffer, error) {
	file, size, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	tracer().Debugf("loading %s, %d bytes", name, size)
	return l.LoadReader(ctx, file, size)
}

// LoadReader reads r until EOF into a new buffer. size is the expected number of
// bytes, or -1 if unknown; it is used for choosing a fragment size and
// reporting progress.
func (l *Loader) LoadReader(ctx context.Context, r io.Reader, size int64) (*bigbytes.Buffer, error) {
	if l.zstd {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("bytefile: cannot decode zstd input: %w", err)
		}
		defer dec.Close()
		r, size = dec, -1
	}
	return l.load(ctx, r, size)
}

// openFile opens an OS file for reading, checking for error conditions.
func openFile(name string) (*os.File, int64, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, 0, err
	} else if !fi.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotRegular, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, 0, err
	}
	return file, fi.Size(), nil
}

// fragmentSize selects a read size for an input of size bytes.
func fragmentSize(size int64) int {
	switch {
	case size < 0:
		return sixKb
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// fragment is a piece of input, read by the producer goroutine.
type fragment struct {
	data []byte
	err  error
}

func (l *Loader) load(ctx context.Context, r io.Reader, size int64) (*bigbytes.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := bigbytes.New(l.cfg)
	if err != nil {
		return nil, err
	}
	fragSize := l.fragSize
	if fragSize <= 0 {
		fragSize = fragmentSize(size)
	}
	ctx, cancel := context.WithCancel(ctx)
	frags := make(chan fragment, l.prefetch)
	go readFragments(ctx, r, fragSize, frags)
	defer func() {
		cancel()
		for range frags { // wait for the producer to let go of r
		}
	}()
	var loaded int64
	for f := range frags {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.err != nil {
			return nil, fmt.Errorf("bytefile: error loading fragment at %d: %w", loaded, f.err)
		}
		n, err := buf.Write(f.data)
		loaded += int64(n)
		if err != nil {
			return nil, err
		}
		l.cast.Pub(Progress{Loaded: loaded, Total: size})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("loaded %d bytes into buffer of dimension %d", loaded, buf.Dimension())
	l.cast.Pub(Progress{Loaded: loaded, Total: size, Done: true})
	return buf, nil
}

// readFragments reads r in pieces of fragSize bytes and sends them to out,
// until EOF, an error, or cancellation. It closes out when done.
func readFragments(ctx context.Context, r io.Reader, fragSize int, out chan<- fragment) {
	defer close(out)
	for {
		data := make([]byte, fragSize)
		n, err := io.ReadFull(r, data)
		if n > 0 {
			select {
			case out <- fragment{data: data[:n]}:
			case <-ctx.Done():
				return
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return
		}
		if err != nil {
			select {
			case out <- fragment{err: err}:
			case <-ctx.Done():
			}
			return
		}
	}
}
