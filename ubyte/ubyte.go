/*
Package ubyte holds a table of the 256 unsigned byte values and the bit-order
reversal mapping between least-significant-bit-first and
most-significant-bit-first encodings.

The tables are initialized once at program start and never modified afterwards,
so they may be read concurrently without synchronization.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package ubyte

import (
	"errors"
	"fmt"
	"math/bits"
)

// Count is the number of distinct byte values.
const Count = 256

// ErrIndexOutOfBounds signals a table index outside [0, Count).
var ErrIndexOutOfBounds = errors.New("ubyte: index out of bounds")

var (
	values   [Count]byte
	reversed [Count]byte
)

func init() {
	for i := range Count {
		values[i] = byte(i)
		reversed[i] = bits.Reverse8(byte(i))
	}
}

// Values returns all byte values in ascending order. The result is a copy.
func Values() [Count]byte {
	return values
}

// Value returns the byte value i.
func Value(i int) (byte, error) {
	if i < 0 || i >= Count {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfBounds, i)
	}
	return values[i], nil
}

// Reverse returns b with its bit order reversed. Reverse is self-inverse.
func Reverse(b byte) byte {
	return reversed[b]
}

// ReverseAll maps every byte of p with Reverse. It returns a new slice and
// leaves p unchanged.
func ReverseAll(p []byte) []byte {
	if p == nil {
		return nil
	}
	out := make([]byte, len(p))
	for i, b := range p {
		out[i] = reversed[b]
	}
	return out
}
