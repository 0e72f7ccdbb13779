// This file is part of saturncore; the state machine here is translated
// from brimir's hw/cdblock/cd_drive.cpp and cd_drive.hpp (see
// _examples/original_source), simplified to the byte-at-a-time transfer
// granularity that hardware/sh1's SCI already models (its SetSerialHandlers
// callbacks exchange whole bytes, not individual bits).

// Package cd implements the Saturn CD drive: the bit-serial link's tx state
// machine, the command/status byte exchange, TOC and sector-read handling,
// and the security-ring sector synthesis firmware checks for on boot
// (spec §4.5). It reads sector data from an internal/disc.Disc and drives
// the CD-block SH-1 over the SCI0 link hardware/sh1 exposes.
package cd
