// This file is part of saturncore; adapted from JetSetIlly/Gopher2600's
// hardware/instance package (GPLv3).

// Package system defines those parts of the emulation that might change from
// instance to instance of the Saturn type but are not the Saturn itself --
// particularly useful when running more than one emulation instance in
// parallel (eg. a test harness comparing two runs, or a multi-core-aware
// front-end).
package system

import (
	"github.com/saturnist/corehw/config"
	"github.com/saturnist/corehw/random"
)

// Instance threads per-instance, non-hardware state through every component
// constructor so that two Saturn instances never share mutable state by
// accident (spec §9, "Global process-wide state: only the SH-2 decode table
// is global").
type Instance struct {
	Config *config.Config
	Random *random.Random
}

// NewInstance is the preferred method of initialisation for Instance.
func NewInstance(source random.CycleSource) *Instance {
	return &Instance{
		Config: config.NewConfig(),
		Random: random.NewRandom(source),
	}
}

// Normalise pins the instance to a known, deterministic default state (spec
// §8 property 1): two runs built from separate, normalised Instance values
// start from the same config and draw the same random sequences.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Config.SetDefaults()
}
