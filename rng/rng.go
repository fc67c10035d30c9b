// Package rng provides the cloneable random sources the search engine is
// parameterized over. Independent subtrees of work (notably IS-MCTS
// determinizations) each receive their own clone of the caller's source so
// that no two searches share a stream.
package rng

import (
	"golang.org/x/exp/rand"
)

// Cloneable is a random source whose stream can be duplicated. A clone
// starts at the exact state of the original; subsequent draws from either
// do not affect the other.
type Cloneable interface {
	rand.Source
	Clone() Cloneable
}

// PCG is a Cloneable source backed by rand.PCGSource. The underlying
// generator state is a plain value, so cloning is a struct copy.
type PCG struct {
	src rand.PCGSource
}

// NewPCG returns a PCG source seeded with seed.
func NewPCG(seed uint64) *PCG {
	p := &PCG{}
	p.src.Seed(seed)
	return p
}

// Uint64 draws the next value from the stream.
func (p *PCG) Uint64() uint64 { return p.src.Uint64() }

// Seed reseeds the source, restarting the stream.
func (p *PCG) Seed(seed uint64) { p.src.Seed(seed) }

// Clone returns an independent copy of the source at its current state.
func (p *PCG) Clone() Cloneable {
	c := *p
	return &c
}

// CloneAdvanced clones src and drains delta 32-bit words from the clone
// before returning it wrapped in a *rand.Rand. Used by IS-MCTS so that
// determinization i gets a stream decorrelated from determinization i-1
// while staying reproducible from the caller's single seed.
//
// PCGSource exposes no jump primitive, so decorrelation is by draining
// words. Callers wanting stronger stream separation can provide their own
// Cloneable whose Clone splits instead.
func CloneAdvanced(src Cloneable, delta int) *rand.Rand {
	r := rand.New(src.Clone())
	for i := 0; i < delta; i++ {
		r.Uint32()
	}
	return r
}
