package sh1

// PFC is the SH-1's pin function controller: per-pin registers selecting
// whether a package pin carries its peripheral function (SCI, ITU, DMAC) or
// plain GPIO (spec §4.4). Nothing in the CD-block firmware path depends on
// pin muxing directly, so this is a plain register file -- grounded on
// sh2.BSC's same "inert configuration store" rationale.
type PFC struct {
	PAIOR uint16 // port A I/O register
	PBIOR uint16 // port B I/O register
	PACR1 uint16 // port A control register 1
	PACR2 uint16 // port A control register 2
	PBCR1 uint16 // port B control register 1
	PBCR2 uint16 // port B control register 2
}
