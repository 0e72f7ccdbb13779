package cd

import "github.com/saturnist/corehw/internal/disc"

// buildSecurityRingSector synthesizes the copy-protection "security ring"
// sector returned by the SeekRing and SeekSecurityRingB2/B6 operations
// (spec §12 supplemented feature: the ring sector's bytes must match the
// original bit-for-bit, since retail discs carry firmware that checks them).
// out must be exactly 2352 bytes.
func buildSecurityRingSector(fad disc.FAD, out []byte) {
	for i := range out {
		out[i] = 0
	}

	// sync pattern: 00 FF*10 00
	for i := 1; i <= 10; i++ {
		out[i] = 0xFF
	}

	// mode-2 form-2 header/subheader, duplicated at 16-19 and 20-23 as the
	// format requires.
	min, sec, frac := bcdFAD(fad)
	header := [4]byte{min, sec, frac, 0x02}
	copy(out[12:16], header[:])
	subheader := [4]byte{0x00, 0x00, 0x20, 0x20}
	copy(out[16:20], subheader[:])
	copy(out[20:24], subheader[:])

	// a 16-bit LFSR (seed 1) combined with a rotate-right-by-1 XOR against
	// the previous output byte fills the remainder of the sector.
	lfsr := uint16(1)
	for i := 24; i < 2352; i++ {
		bit := ((lfsr >> 0) ^ (lfsr >> 2) ^ (lfsr >> 3) ^ (lfsr >> 5)) & 1
		lfsr = (lfsr >> 1) | (bit << 15)
		prev := out[i-1]
		rot := (prev >> 1) | (prev << 7)
		out[i] = byte(lfsr) ^ rot
	}

	crc := disc.CalcEDC(out[:2064])
	out[2348] = byte(crc)
	out[2349] = byte(crc >> 8)
	out[2350] = byte(crc >> 16)
	out[2351] = byte(crc >> 24)
}

// bcdFAD returns the BCD-encoded minute/second/frame of fad relative to the
// disc's own frame numbering (FAD already includes the +150 lead-in offset).
func bcdFAD(fad disc.FAD) (min, sec, frac uint8) {
	msf := fad.ToMSF()
	return toBCD(msf.Min), toBCD(msf.Sec), toBCD(msf.Frac)
}

func toBCD(v uint8) uint8 {
	return (v/10)<<4 | (v % 10)
}
