// This file is part of saturncore; the Disc/Session/Track data model is
// adapted from brimir's media/disc.hpp (see _examples/original_source),
// expressed as the plain-struct-plus-methods shape JetSetIlly/Gopher2600
// uses for its own cartridge/bank data model (hardware/memory/cartridge.go).

// Package disc implements the Saturn's disc data model (spec §3 "Disc
// model"): sessions, tracks, indices, FAD<->MSF conversions, and lead-in TOC
// construction. It supplies the data the CD drive state machine (package cd)
// reads sectors from; parsing a BIN/CUE or other container format into this
// model is out of scope (spec §1) and is the caller's responsibility.
package disc
