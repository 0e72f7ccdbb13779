// This file is part of saturncore; the peripheral-wrapper shape here
// mirrors JetSetIlly/Gopher2600's hardware/riot package (GPLv3), which
// bundles several independently clocked sub-devices behind one type.

// Package sh1 wires an SH-2 interpreter core (package sh2, reused as-is for
// its decode table and instruction execution) to the SH-1's own on-chip ROM,
// RAM, and peripheral layout: ITU (5 timers), a 4-channel DMAC, two SCI
// channels, PFC, WDT, an A/D converter, BSC, INTC, and a TPC (spec §4.4).
// This CPU drives the CD block firmware and the bit-serial link to the CD
// drive state machine (package cd).
package sh1
