package hardware

// flatMemory is a fixed-size, big-endian byte-addressable RAM/ROM region --
// the same byte-at-a-time idiom hardware/sh1's RAM/ROM types use, reused
// here for the Saturn's own WRAM-Low, WRAM-High, and IPL ROM (spec §4.2:
// "WRAM-Low 1MB, WRAM-High 1MB", §4.10 "512KB IPL ROM").
type flatMemory struct {
	data     []byte
	readOnly bool
}

func newFlatMemory(size int) *flatMemory {
	return &flatMemory{data: make([]byte, size)}
}

func (m *flatMemory) Read8(addr uint32) uint8 { return m.data[int(addr)%len(m.data)] }

func (m *flatMemory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr))<<8 | uint16(m.Read8(addr+1))
}

func (m *flatMemory) Read32(addr uint32) uint32 {
	return uint32(m.Read16(addr))<<16 | uint32(m.Read16(addr+2))
}

func (m *flatMemory) Write8(addr uint32, v uint8) {
	if m.readOnly {
		return
	}
	m.data[int(addr)%len(m.data)] = v
}

func (m *flatMemory) Write16(addr uint32, v uint16) {
	m.Write8(addr, uint8(v>>8))
	m.Write8(addr+1, uint8(v))
}

func (m *flatMemory) Write32(addr uint32, v uint32) {
	m.Write16(addr, uint16(v>>16))
	m.Write16(addr+2, uint16(v))
}

func (m *flatMemory) zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}
