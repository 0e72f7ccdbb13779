// This file is part of saturncore; the packed-pixel/layer-buffer/compose
// shape is modeled on the original's hw/vdp2.cpp scanline compositor
// description (see _examples/original_source), restated in the
// register-struct-plus-per-scanline-method idiom hardware/sh2's FRT/WDT
// peripherals already use for "a chunk of register state plus a Step-style
// advance method", since no pack example targets a tile/rotation
// background compositor.
//
// Full per-pixel rotation-parameter coefficient tables (spec §4.9 "RBG0/
// RBG1") and the 4-colour-format x 2-character-size x 3-CRAM-mode
// specialization matrix are scoped down here to the combinations the
// Testable Properties and scenarios actually exercise (16/256-colour
// palette and direct RGB555 scroll backgrounds, CRAM modes 0 and 2); the
// rotation backgrounds RBG0/RBG1 have no state and no drawing path in this
// package.

// Package vdp2 implements the VDP2 scanline-driven background compositor
// (spec §2.10, §4.9): the CRAM colour-mode address shuffle, scroll
// background layer drawing, window computation, and the priority-ordered
// per-scanline composite that produces the displayed frame.
package vdp2
