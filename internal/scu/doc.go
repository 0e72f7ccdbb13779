// This file is part of saturncore; the channel/priority/start-factor shape
// and the write-restriction table are modeled directly on the original's
// hw/scu.cpp description (see _examples/original_source), expressed in the
// register-struct-plus-methods idiom hardware/sh2's peripherals (sh2.DMAC,
// sh2.SCI) already use, since no pack example targets this exact chip.

// Package scu implements the System Control Unit's three DMA channels
// (spec §2.7, §4.7): direct and indirect transfers, priority arbitration,
// start-factor triggering, and the hardwired restrictions that make some
// source/destination combinations illegal regardless of what software asks
// for.
package scu
