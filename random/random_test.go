// This file is part of saturncore; adapted from JetSetIlly/Gopher2600 (GPLv3).

package random_test

import (
	"testing"

	"github.com/saturnist/corehw/random"
	"github.com/saturnist/corehw/test"
)

type fixedCycle struct {
	cycle uint64
}

func (f *fixedCycle) Cycle() uint64 {
	return f.cycle
}

func TestRandomZeroSeedIsReproducible(t *testing.T) {
	a := random.NewRandom(&fixedCycle{cycle: 100})
	b := random.NewRandom(&fixedCycle{cycle: 32})
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Rewindable(i), b.Rewindable(i))
	}
}

func TestRewindableIsStable(t *testing.T) {
	a := random.NewRandom(&fixedCycle{cycle: 100})
	first := a.Rewindable(7)
	second := a.Rewindable(7)
	test.ExpectEquality(t, first, second)
}

func TestNoRewindDiverges(t *testing.T) {
	a := random.NewRandom(&fixedCycle{cycle: 100})
	first := a.NoRewind(7)
	second := a.NoRewind(7)
	test.ExpectInequality(t, first, second)
}

func TestDifferentCycleDiffersUnlessZeroSeed(t *testing.T) {
	a := random.NewRandom(&fixedCycle{cycle: 1})
	b := random.NewRandom(&fixedCycle{cycle: 2})
	test.ExpectInequality(t, a.Rewindable(7), b.Rewindable(7))
}
