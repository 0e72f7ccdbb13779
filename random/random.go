// This file is part of saturncore; adapted from JetSetIlly/Gopher2600 (GPLv3).

// Package random provides a rewindable pseudo-random source. It exists purely
// as a debugging aid: a hard reset always zeroes the WRAMs and CPU state
// deterministically (spec §4.10), but some callers want to exercise
// "randomise on reset" style testing, and need the randomisation itself to be
// reproducible given the same cycle count so that rewind/replay tooling stays
// consistent.
package random

// CycleSource supplies the current scheduler cycle, used to vary the
// pseudo-random seed over time without the caller having to manage its own
// counter.
type CycleSource interface {
	Cycle() uint64
}

// Random is a reproducible source of pseudo-random values. The zero value is
// not usable; use NewRandom.
type Random struct {
	// ZeroSeed forces every draw to derive from a constant seed, regardless
	// of the cycle source. Used by regression/determinism tests so that two
	// independently constructed instances produce identical sequences.
	ZeroSeed bool

	source  CycleSource
	counter uint64
}

// NewRandom creates a Random drawing its time-varying seed component from
// source.
func NewRandom(source CycleSource) *Random {
	return &Random{source: source}
}

func (r *Random) seed() uint64 {
	if r.ZeroSeed || r.source == nil {
		return 0
	}
	return r.source.Cycle()
}

// splitmix64 is used instead of math/rand so that a given (seed, n) pair
// always produces the same value regardless of Go version or global rand
// state -- a requirement of spec §8 property 1 (determinism).
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rewindable returns a pseudo-random value derived from the current seed and
// n. Calling it again with the same n, from a Random in the same seed state,
// always returns the same value -- it never advances any internal state, so
// it can be called repeatedly during a rewind/replay without diverging.
func (r *Random) Rewindable(n int) uint64 {
	return splitmix64(r.seed() ^ splitmix64(uint64(n)))
}

// NoRewind is like Rewindable but additionally mixes in a free-running
// internal counter, so repeated calls (even with the same n) diverge. Suited
// to one-shot randomisation where reproducibility across calls isn't
// required, only reproducibility across runs given the same sequence of
// calls.
func (r *Random) NoRewind(n int) uint64 {
	r.counter++
	return splitmix64(r.seed() ^ splitmix64(uint64(n)) ^ splitmix64(r.counter))
}
