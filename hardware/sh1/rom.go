package sh1

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/saturnist/corehw/errors"
)

// ROMSize is the fixed size of the SH-1's on-chip mask ROM (spec §4.4).
const ROMSize = 64 * 1024

// ROM is the SH-1's on-chip mask-programmed CD-block firmware. Grounded on
// the teacher's Cartridge.Hash field (hardware/memory/cartridge.go): the
// loaded image's hash is recorded at load time and never touched again, the
// same fingerprinting idiom the teacher uses for cartridge images.
type ROM struct {
	data [ROMSize]byte
	hash string
}

// Load validates that data is exactly ROMSize bytes, records its SHA-1 hash,
// and copies it in.
func (r *ROM) Load(data []byte) error {
	if len(data) != ROMSize {
		return errors.Errorf(errors.ROMSizeError, ROMSize, len(data))
	}
	sum := sha1.Sum(data)
	r.hash = hex.EncodeToString(sum[:])
	copy(r.data[:], data)
	return nil
}

// Hash returns the hex SHA-1 of the loaded image, or "" if none is loaded.
func (r *ROM) Hash() string {
	return r.hash
}

func (r *ROM) Read8(addr uint32) uint8 {
	return r.data[addr%ROMSize]
}

func (r *ROM) Read16(addr uint32) uint16 {
	return uint16(r.Read8(addr))<<8 | uint16(r.Read8(addr+1))
}

func (r *ROM) Read32(addr uint32) uint32 {
	return uint32(r.Read16(addr))<<16 | uint32(r.Read16(addr+2))
}

// RAMSize is the fixed size of the SH-1's on-chip RAM (spec §4.4).
const RAMSize = 4 * 1024

// RAM is the SH-1's on-chip working RAM.
type RAM struct {
	data [RAMSize]byte
}

func (r *RAM) Read8(addr uint32) uint8 { return r.data[addr%RAMSize] }

func (r *RAM) Read16(addr uint32) uint16 {
	return uint16(r.Read8(addr))<<8 | uint16(r.Read8(addr+1))
}

func (r *RAM) Read32(addr uint32) uint32 {
	return uint32(r.Read16(addr))<<16 | uint32(r.Read16(addr+2))
}

func (r *RAM) Write8(addr uint32, v uint8) { r.data[addr%RAMSize] = v }

func (r *RAM) Write16(addr uint32, v uint16) {
	r.Write8(addr, uint8(v>>8))
	r.Write8(addr+1, uint8(v))
}

func (r *RAM) Write32(addr uint32, v uint32) {
	r.Write16(addr, uint16(v>>16))
	r.Write16(addr+2, uint16(v))
}

// Bytes returns the RAM's raw contents, for save-state capture.
func (r *RAM) Bytes() []byte { return r.data[:] }

// LoadBytes overwrites the RAM's raw contents, for save-state restore. data
// must be exactly RAMSize bytes.
func (r *RAM) LoadBytes(data []byte) {
	copy(r.data[:], data)
}
