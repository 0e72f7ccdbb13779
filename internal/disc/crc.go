package disc

// edcTable and CalcEDC implement the CD-ROM error detection code (EDC):
// a table-driven CRC-32 variant over the sync+header+data bytes [0,2064)
// of a mode-1/mode-2-form-1 sector (spec §4.5 "compute CRC"). The original
// source's cdrom_crc.cpp was not present in the retrieval pack (only its
// header declaring CalcCRC's signature was); this is the standard,
// publicly documented ECMA-130 CD-ROM EDC algorithm, not a pack-grounded
// translation.
var edcTable [256]uint32

func init() {
	for i := uint32(0); i < 256; i++ {
		edc := i
		for j := 0; j < 8; j++ {
			if edc&1 != 0 {
				edc = (edc >> 1) ^ 0xD8018001
			} else {
				edc >>= 1
			}
		}
		edcTable[i] = edc
	}
}

// CalcEDC computes the CD-ROM EDC over data, which must be exactly 2064
// bytes (sync + header + user data) per spec §4.5.
func CalcEDC(data []byte) uint32 {
	var edc uint32
	for _, b := range data {
		edc = edcTable[(edc^uint32(b))&0xFF] ^ (edc >> 8)
	}
	return edc
}
