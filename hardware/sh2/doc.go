// This file is part of saturncore; the CPU struct shape, the cycleCallback
// stepping idiom and the decoded-instruction-table interpreter pattern are
// grounded on JetSetIlly/Gopher2600's hardware/cpu package (GPLv3),
// generalised from the 6507 to the SH-2 (spec §4.3).

// Package sh2 implements the SH-2 interpreter: registers, the precomputed
// decode table, delay-slot handling, interrupt acceptance, and the on-chip
// peripheral blocks (DMAC, INTC, BSC, FRT, WDT, SCI, cache). Both the master
// and slave Saturn CPUs are instances of this same type; the SH-1 CD-block
// CPU (package sh1) reuses the decode table and instruction execution from
// this package and supplies its own, differently laid out, peripheral set.
package sh2
