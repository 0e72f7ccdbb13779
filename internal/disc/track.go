package disc

// BinaryReader supplies raw bytes from a track's backing file. Several
// tracks may share one BinaryReader (spec §3 "Disc binary readers are
// reference-counted because tracks can share one backing file"); in Go
// that sharing is just a shared io.ReaderAt and ordinary garbage
// collection, so no explicit reference count is needed.
type BinaryReader interface {
	// ReadAt copies min(len(out), available) bytes starting at offset into
	// out and returns the count actually read.
	ReadAt(offset int64, out []byte) int
}

// Index is one index (00-99) within a track, its own FAD range (spec §3).
type Index struct {
	StartFAD FAD
	EndFAD   FAD
}

// Control/ADR byte values distinguishing data and audio tracks (spec §4.5,
// §4.6 "controlADR").
const (
	ControlADRAudio = 0x01
	ControlADRData  = 0x41
)

// Track is one track of a session: a binary reader, sector geometry, and
// format flags (spec §3 "a track has indices 00-99, a binary reader that
// returns sector bytes, and flags").
type Track struct {
	Reader BinaryReader

	ControlADR uint8
	Mode2      bool
	BigEndian  bool // audio sample endianness on tape/FLAC-style sources

	UnitSize   uint32 // on-disk stride per sector, always >= SectorSize
	SectorSize uint32 // one of 2048, 2324, 2336, 2340, 2352, 2448

	userDataOffset uint32
	hasSyncBytes   bool
	hasHeader      bool
	hasECC         bool

	StartFAD   FAD
	EndFAD     FAD
	Index01FAD FAD
	Indices    []Index
}

// SetSectorSize configures SectorSize and derives the synthesize flags
// (spec §3 sector sizes, §4.5 sector synthesis).
func (t *Track) SetSectorSize(size uint32) {
	t.UnitSize = size
	t.SectorSize = size
	switch {
	case size >= 2352:
		t.userDataOffset = 24
		if !t.Mode2 {
			t.userDataOffset = 16
		}
	case size >= 2340:
		t.userDataOffset = 12
		if !t.Mode2 {
			t.userDataOffset = 4
		}
	default:
		t.userDataOffset = 0
	}
	t.hasSyncBytes = size >= 2352
	t.hasHeader = size >= 2340
	t.hasECC = size >= 2336
}

// FindIndex returns which index (0-based) contains fad, or 0xFF if none
// does.
func (t *Track) FindIndex(fad FAD) uint8 {
	for i, idx := range t.Indices {
		if fad >= idx.StartFAD && fad <= idx.EndFAD {
			return uint8(i)
		}
	}
	return 0xFF
}

var syncBytes = [12]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// ReadSector fills out (exactly 2352 bytes) with the full raw sector at
// fad, synthesizing sync bytes, header, and EDC when the track's on-disk
// format omits them (spec §4.5). Reports whether fad and the underlying
// read were both valid.
func (t *Track) ReadSector(fad FAD, out []byte) bool {
	if len(out) != 2352 || fad < t.StartFAD || fad > t.EndFAD {
		return false
	}

	if t.ControlADR == ControlADRAudio {
		offset := int64(uint32(fad-t.StartFAD) * t.UnitSize)
		return t.Reader.ReadAt(offset, out) == 2352
	}

	writeOffset := uint32(0)
	if !t.hasSyncBytes {
		writeOffset += 12
	}
	if !t.hasHeader {
		writeOffset += 4
	}

	outputSize := t.SectorSize
	if outputSize > 2352 {
		outputSize = 2352
	}
	offset := int64(uint32(fad-t.StartFAD) * t.UnitSize)
	if t.Reader.ReadAt(offset, out[writeOffset:writeOffset+outputSize]) != int(outputSize) {
		return false
	}

	if !t.hasSyncBytes {
		copy(out[:12], syncBytes[:])
	}
	if !t.hasHeader {
		out[0xC], out[0xD], out[0xE] = msfBCD(uint32(fad))
		if t.ControlADR == ControlADRData {
			if t.Mode2 {
				out[0xF] = 0x02
			} else {
				out[0xF] = 0x01
			}
		} else {
			out[0xF] = 0x00
		}
	}
	if !t.hasECC {
		edc := CalcEDC(out[:2064])
		out[2064] = byte(edc)
		out[2065] = byte(edc >> 8)
		out[2066] = byte(edc >> 16)
		out[2067] = byte(edc >> 24)
		for i := 2068; i < 2352; i++ {
			out[i] = 0
		}
	}
	return true
}

// ReadSectorUserData fills out (exactly 2048 bytes) with the user-data
// portion of the sector at fad.
func (t *Track) ReadSectorUserData(fad FAD, out []byte) bool {
	if len(out) != 2048 || fad < t.StartFAD || fad > t.EndFAD {
		return false
	}
	offset := int64(uint32(fad-t.StartFAD)*t.UnitSize) + int64(t.userDataOffset)
	return t.Reader.ReadAt(offset, out) == 2048
}
