/*
Package bytefile provides API helpers to load files as big byte buffers.

Files are read in fragments by a producer goroutine, with a bounded number of
fragments prefetched, while the calling goroutine appends them to the buffer.
Load itself is synchronous. Clients interested in the state of a long running
load may subscribe to progress messages.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package bytefile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bigbytes'
func tracer() tracing.Trace {
	return tracing.Select("bigbytes")
}
