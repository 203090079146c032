package bigbytes

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// DefaultBranchingFactor is the number of slots per node used by DefaultConfig.
	DefaultBranchingFactor = 64
	// DefaultLeafCapacity is the leaf chunk capacity used by DefaultConfig.
	DefaultLeafCapacity = 64
)

// Config configures the shape of a buffer. It is fixed at buffer creation.
//
// A larger branching factor keeps the tree flat at the cost of bigger slot
// arrays per node; a larger leaf capacity makes streaming chunks longer and
// the tree smaller.
type Config struct {
	// BranchingFactor is the number of slots in every buffer node (S).
	BranchingFactor int
	// LeafCapacity is the byte capacity of every leaf chunk (C).
	LeafCapacity int
}

// DefaultConfig returns a configuration of 64 slots per node and 64 bytes
// per leaf.
func DefaultConfig() Config {
	return Config{
		BranchingFactor: DefaultBranchingFactor,
		LeafCapacity:    DefaultLeafCapacity,
	}
}

func (cfg Config) validate() error {
	if cfg.BranchingFactor < 1 {
		return fmt.Errorf("%w: branching factor %d", ErrInvalidArgument, cfg.BranchingFactor)
	}
	if cfg.LeafCapacity < 1 {
		return fmt.Errorf("%w: leaf capacity %d", ErrInvalidArgument, cfg.LeafCapacity)
	}
	return nil
}

// slots returns the slot count of a node of dimension dim.
//
// Nodes of dimension 2 and above need at least two slots, otherwise wrapping a
// full root would never add room. With S == 1 the buffer degenerates into a
// chain of single-leaf nodes joined by binary branches.
func (cfg Config) slots(dim int) int {
	if dim > 1 && cfg.BranchingFactor < 2 {
		return 2
	}
	return cfg.BranchingFactor
}

// span returns the byte capacity of a node of dimension dim, given the
// capacity of a node of dimension dim-1. Dimension 0 denotes a leaf chunk.
// The result saturates at math.MaxUint64.
func (cfg Config) span(dim int, below uint64) uint64 {
	hi, lo := bits.Mul64(below, uint64(cfg.slots(dim)))
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
