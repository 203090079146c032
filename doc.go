/*
Package bigbytes offers a growable, potentially very large sequence of bytes.

Big Bytes

A Buffer stores bytes in fixed-capacity leaf chunks, organized by a recursive
structure of buffer nodes. Every node has a fixed number of slots (the branching
factor S). A node of dimension 1 holds leaf chunks of capacity C, a node of
dimension d > 1 holds nodes of dimension d-1. When all the slots of the root
are exhausted, the buffer puts the old root into slot 0 of a new, taller root
and continues appending in slot 1.

Appending never re-allocates or copies bytes already stored, which makes
appends amortized O(1), compared to the exponential grow-and-copy strategy of a
plain slice. Random access by index is O(log N), since an index decomposes into
one slot index per dimension, very much like the digits of a number in radix S.
Streaming the content chunk by chunk costs O(1) per chunk.

	buf, _ := bigbytes.New(bigbytes.DefaultConfig())
	buf.Write(payload)
	for c := range buf.RangeChunk() {
	    c.WriteTo(w)
	}

Buffers are not safe for concurrent use. At most one writer may append at a
time, and readers must not overlap with writers.

A buffer is unbounded by design: it may run the process out of memory. Clients
are responsible for limiting the amount of data they append.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package bigbytes

import (
	"github.com/npillmayer/bigbytes/chunk"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// BufferError is an error type for the bigbytes module.
type BufferError string

func (e BufferError) Error() string {
	return string(e)
}

// ErrCorrupted is flagged by Check whenever a structural invariant of a
// buffer is violated.
const ErrCorrupted = BufferError("buffer structure corrupted")

// Errors shared with package chunk, so that clients may test every layer with
// a single errors.Is.
var (
	// ErrInvalidArgument is flagged for malformed configuration or ranges.
	ErrInvalidArgument = chunk.ErrInvalidArgument
	// ErrIndexOutOfBounds is flagged whenever an index is not below the
	// length of a buffer or chunk.
	ErrIndexOutOfBounds = chunk.ErrIndexOutOfBounds
	// ErrCapacityExceeded is flagged if a chunk does not fit into the free
	// space of the current leaf.
	ErrCapacityExceeded = chunk.ErrCapacityExceeded
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
