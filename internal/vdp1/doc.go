// This file is part of saturncore; no pack example targets a command-list
// rasterizer, so the stepper/edge shapes (LineStepper, TextureStepper,
// GouraudChannelStepper, QuadStepper) are modeled directly on the
// original's hw/vdp1 rasterizer description (see _examples/original_source),
// restated in the small-struct-with-Next()/Done() idiom
// hardware/scheduler.Context already establishes for this module's stepping
// abstractions.
//
// The 32-byte command wire format is deliberately simplified from the real
// chip's bit-packed CMDCTRL/CMDPMOD encoding into named fields (control
// word, command type, draw mode, colour, character address/size, four
// vertices, Gouraud table address) -- this core has no ROM software to stay
// bit-compatible with, so the simplification keeps the concepts spec §4.8
// names without carrying bitfield trivia that serves no test.

// Package vdp1 implements the VDP1 sprite/polygon processor (spec §2.9,
// §4.8): the command-list interpreter, its clipping and local-coordinate
// state, the Bresenham/texture/Gouraud rasterizer steppers, and the two
// swappable 512x256 sprite framebuffers.
package vdp1
