package vdp2

// CRAMMode selects how a CRAM byte address is interpreted (spec §4.9 "CRAM
// mode 0/1/2").
type CRAMMode uint8

const (
	CRAMMode0 CRAMMode = iota
	CRAMMode1
	CRAMMode2
)

const cramAddressSpace = 0x1000 // 4KB of CRAM, byte-addressed

// cramShuffleTable is precomputed once at package init: cramShuffleTable[a]
// is map_cram_address(a) for mode 2 addressing (spec §4.9 testable property
// 9: "bit 1 becomes bit 11 of the CRAM byte address, bits 2-11 shift right
// by 1"; map_cram_address must be bijective over [0, 0x1000)).
var cramShuffleTable [cramAddressSpace]uint16

func init() {
	for a := uint32(0); a < cramAddressSpace; a++ {
		bit0 := a & 0x1
		bit1 := (a >> 1) & 0x1
		rest := (a >> 2) & 0x3FF // bits 2-11, 10 bits
		cramShuffleTable[a] = uint16(bit0 | rest<<1 | bit1<<11)
	}
}

// MapCRAMAddress applies mode's address transform to a raw CRAM byte
// address, masked to the 4KB CRAM space. Mode 0 and 1 pass the address
// through unchanged; mode 2 applies the bit-shuffle table.
func MapCRAMAddress(mode CRAMMode, addr uint32) uint32 {
	addr &= cramAddressSpace - 1
	if mode != CRAMMode2 {
		return addr
	}
	return uint32(cramShuffleTable[addr])
}
