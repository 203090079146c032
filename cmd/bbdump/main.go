// bbdump loads a file into a big byte buffer and prints it.
//
// Usage:
//
//	bbdump <filename>             # colored hex dump
//	bbdump -n 256 <filename>      # dump the first 256 bytes only
//	bbdump -sum <filename>        # xxhash64 of the content
//	bbdump -dot <filename>        # Graphviz rendering of the buffer tree
//	bbdump -z -reverse <filename> # decode zstd, reverse bits of every byte
//
// Flags -s and -c set the branching factor and leaf capacity of the buffer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/cespare/xxhash/v2"
	"github.com/npillmayer/bigbytes"
	"github.com/npillmayer/bigbytes/bytefile"
	"github.com/npillmayer/bigbytes/ubyte"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func main() {
	branching := flag.Int("s", bigbytes.DefaultBranchingFactor, "branching factor of buffer nodes")
	leafCap := flag.Int("c", bigbytes.DefaultLeafCapacity, "capacity of buffer leaves in bytes")
	zstdFlag := flag.Bool("z", false, "input is zstd-compressed")
	sumFlag := flag.Bool("sum", false, "print xxhash64 checksum of the content")
	dotFlag := flag.Bool("dot", false, "print buffer structure in Graphviz DOT format")
	reverseFlag := flag.Bool("reverse", false, "reverse the bit order of every byte")
	countFlag := flag.Uint64("n", 0, "number of bytes to dump (0 = all)")
	traceFlag := flag.Bool("v", false, "trace loading progress to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: bbdump [-s n] [-c n] [-z] [-reverse] [-sum | -dot | -n count] <filename>")
		os.Exit(1)
	}
	if *traceFlag {
		gtrace.CoreTracer = gologadapter.New()
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := bigbytes.Config{BranchingFactor: *branching, LeafCapacity: *leafCap}
	var opts []bytefile.Option
	if *zstdFlag {
		opts = append(opts, bytefile.WithZstd())
	}
	buf, err := bytefile.Load(ctx, flag.Arg(0), cfg, opts...)
	if err != nil {
		fail(err)
	}
	if *reverseFlag {
		if buf, err = buf.Map(ubyte.Reverse); err != nil {
			fail(err)
		}
	}

	switch {
	case *sumFlag:
		digest := xxhash.New()
		if _, err := buf.WriteTo(digest); err != nil {
			fail(err)
		}
		fmt.Printf("%016x  %s  %d bytes\n", digest.Sum64(), flag.Arg(0), buf.Len())
	case *dotFlag:
		if err := bigbytes.Buffer2Dot(buf, os.Stdout); err != nil {
			fail(err)
		}
	default:
		d := newDumper(bytesPerLine(terminalWidth()))
		if err := d.dump(os.Stdout, buf, *countFlag); err != nil {
			fail(err)
		}
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
