// This file is part of saturncore; no teacher or pack repo has a gate-array
// precedent for this exact mailbox/FIFO/flag shape, so the type is modeled
// directly on the original's hw/cdblock/ygr.cpp register description (see
// _examples/original_source) in the plain register-struct-plus-methods
// idiom hardware/sh2's peripherals (sh2.SCI, sh2.WDT, sh2.FRT) already use.

// Package ygr implements the YGR gate array that bridges the CD-block's
// SH-1 and the main-board SH-2 (spec §4.6): a CR/RR command/response
// mailbox, a 6-word sector-data FIFO, and the HIRQ/HIRQMASK interrupt flags
// that raise an external interrupt line into the SCU.
package ygr
