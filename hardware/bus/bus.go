// This file is part of saturncore; the CPUBus / peek-poke DebuggerBus split
// is grounded on JetSetIlly/Gopher2600's hardware/memory/bus package
// (GPLv3), generalised from the 2600's 16-bit flat address space to the
// Saturn's 32-bit, multi-bus memory map (spec §4.2).

// Package bus implements the address-decoded memory bus model spec §3/§4.2
// describe: one Bus per CPU (the main SH-2 bus, the CD-block SH-1 bus),
// mapping ranges of the flat address space to typed region handlers, with
// parallel "normal" (may have side effects) and "peek/poke"
// (side-effect-free) access paths.
package bus

import (
	"github.com/saturnist/corehw/errors"
)

// Region describes one mapped range of the address space. Lo and Hi are
// both inclusive. A nil handler for a given width/capability means that
// capability is unsupported for this region (eg. a read-only ROM has nil
// Write8/16/32).
type Region struct {
	Name string
	Lo   uint32
	Hi   uint32

	Read8  func(addr uint32) uint8
	Read16 func(addr uint32) uint16
	Read32 func(addr uint32) uint32

	Write8  func(addr uint32, v uint8)
	Write16 func(addr uint32, v uint16)
	Write32 func(addr uint32, v uint32)

	// Peek/Poke are the side-effect-free variants used by save-states and
	// debuggers (spec §4.2). If nil, the region falls back to Read/Write --
	// appropriate for plain RAM/ROM where there is no side effect to avoid
	// in the first place.
	Peek8  func(addr uint32) uint8
	Peek16 func(addr uint32) uint16
	Peek32 func(addr uint32) uint32

	Poke8  func(addr uint32, v uint8)
	Poke16 func(addr uint32, v uint16)
	Poke32 func(addr uint32, v uint32)

	// WaitPredicate, if non-nil, is consulted on every normal (non-peek)
	// access and reports whether the CPU must stall a cycle instead of
	// completing this access now (spec §4.2, eg. a FIFO not yet ready).
	WaitPredicate func(addr uint32) bool

	// Cost, if non-nil, reports the access cost in cycles for a read or
	// write of the given width (1/2/4 bytes) at addr (spec §4.3 "memory
	// access cost"). If nil, the region uses defaultCost.
	Cost func(addr uint32, width int) int
}

const buckets = 256

// Bus is an address-decoded memory bus for one CPU (spec §3). The zero
// value is not usable; use New.
type Bus struct {
	name  string
	table [buckets][]*Region
}

// New creates an empty Bus.
func New(name string) *Bus {
	return &Bus{name: name}
}

func bucketRange(lo, hi uint32) (int, int) {
	return int(lo >> 24), int(hi >> 24)
}

// Map registers a region. Regions must not overlap any previously mapped
// region (spec §3 invariant).
func (b *Bus) Map(r *Region) error {
	if existing := b.overlapping(r.Lo, r.Hi); existing != nil {
		return errors.Errorf(errors.OverlappingRegion, r.Lo, r.Hi)
	}
	lob, hib := bucketRange(r.Lo, r.Hi)
	for i := lob; i <= hib; i++ {
		b.table[i] = append(b.table[i], r)
	}
	return nil
}

func (b *Bus) overlapping(lo, hi uint32) *Region {
	lob, hib := bucketRange(lo, hi)
	for i := lob; i <= hib; i++ {
		for _, r := range b.table[i] {
			if lo <= r.Hi && hi >= r.Lo {
				return r
			}
		}
	}
	return nil
}

// find returns the region covering addr, or nil if the address falls
// through to the default open-bus handler (spec §3 invariant).
func (b *Bus) find(addr uint32) *Region {
	bucket := b.table[addr>>24]
	for _, r := range bucket {
		if addr >= r.Lo && addr <= r.Hi {
			return r
		}
	}
	return nil
}

// openBusValue is returned for reads that fall through to no region, a
// fixed pattern rather than zero so "nothing answered" is visibly distinct
// from a real zero value during debugging.
const openBusValue = 0xFF

// Read8 performs a normal (side-effecting) 8-bit read.
func (b *Bus) Read8(addr uint32) uint8 {
	r := b.find(addr)
	if r == nil || r.Read8 == nil {
		return openBusValue
	}
	return r.Read8(addr)
}

// Read16 performs a normal 16-bit read. The address is masked down to
// natural (2-byte) alignment before dispatch (spec §4.2); detecting and
// raising the address-error exception for an originally-misaligned access
// is the CPU's responsibility, done before calling this.
func (b *Bus) Read16(addr uint32) uint16 {
	addr &^= 1
	r := b.find(addr)
	if r == nil || r.Read16 == nil {
		return openBusValue | openBusValue<<8
	}
	return r.Read16(addr)
}

// Read32 performs a normal 32-bit read, masked to 4-byte alignment.
func (b *Bus) Read32(addr uint32) uint32 {
	addr &^= 3
	r := b.find(addr)
	if r == nil || r.Read32 == nil {
		return openBusValue | openBusValue<<8 | openBusValue<<16 | openBusValue<<24
	}
	return r.Read32(addr)
}

// Write8 performs a normal 8-bit write. Writes to an unmapped or read-only
// region are quiescent misbehaviour (spec §7): silently ignored.
func (b *Bus) Write8(addr uint32, v uint8) {
	r := b.find(addr)
	if r == nil || r.Write8 == nil {
		return
	}
	r.Write8(addr, v)
}

// Write16 performs a normal 16-bit write, masked to 2-byte alignment.
func (b *Bus) Write16(addr uint32, v uint16) {
	addr &^= 1
	r := b.find(addr)
	if r == nil || r.Write16 == nil {
		return
	}
	r.Write16(addr, v)
}

// Write32 performs a normal 32-bit write, masked to 4-byte alignment.
func (b *Bus) Write32(addr uint32, v uint32) {
	addr &^= 3
	r := b.find(addr)
	if r == nil || r.Write32 == nil {
		return
	}
	r.Write32(addr, v)
}

// Peek8 is the side-effect-free variant of Read8.
func (b *Bus) Peek8(addr uint32) uint8 {
	r := b.find(addr)
	if r == nil {
		return openBusValue
	}
	if r.Peek8 != nil {
		return r.Peek8(addr)
	}
	if r.Read8 != nil {
		return r.Read8(addr)
	}
	return openBusValue
}

// Peek16 is the side-effect-free variant of Read16.
func (b *Bus) Peek16(addr uint32) uint16 {
	addr &^= 1
	r := b.find(addr)
	if r == nil {
		return openBusValue | openBusValue<<8
	}
	if r.Peek16 != nil {
		return r.Peek16(addr)
	}
	if r.Read16 != nil {
		return r.Read16(addr)
	}
	return openBusValue | openBusValue<<8
}

// Peek32 is the side-effect-free variant of Read32.
func (b *Bus) Peek32(addr uint32) uint32 {
	addr &^= 3
	r := b.find(addr)
	if r == nil {
		return openBusValue | openBusValue<<8 | openBusValue<<16 | openBusValue<<24
	}
	if r.Peek32 != nil {
		return r.Peek32(addr)
	}
	if r.Read32 != nil {
		return r.Read32(addr)
	}
	return openBusValue | openBusValue<<8 | openBusValue<<16 | openBusValue<<24
}

// Poke8 is the side-effect-free variant of Write8.
func (b *Bus) Poke8(addr uint32, v uint8) {
	r := b.find(addr)
	if r == nil {
		return
	}
	if r.Poke8 != nil {
		r.Poke8(addr, v)
		return
	}
	if r.Write8 != nil {
		r.Write8(addr, v)
	}
}

// Poke16 is the side-effect-free variant of Write16.
func (b *Bus) Poke16(addr uint32, v uint16) {
	addr &^= 1
	r := b.find(addr)
	if r == nil {
		return
	}
	if r.Poke16 != nil {
		r.Poke16(addr, v)
		return
	}
	if r.Write16 != nil {
		r.Write16(addr, v)
	}
}

// Poke32 is the side-effect-free variant of Write32.
func (b *Bus) Poke32(addr uint32, v uint32) {
	addr &^= 3
	r := b.find(addr)
	if r == nil {
		return
	}
	if r.Poke32 != nil {
		r.Poke32(addr, v)
		return
	}
	if r.Write32 != nil {
		r.Write32(addr, v)
	}
}

// defaultCost is charged for a region (or unmapped address) that does not
// specify its own access cost.
const defaultCost = 1

// Cost reports the access cost in cycles for a width-byte access at addr
// (spec §4.3: on-chip ROM/RAM ~1, on-chip registers ~3, external ~5 as a
// first approximation -- regions set their own Cost to report these).
func (b *Bus) Cost(addr uint32, width int) int {
	r := b.find(addr)
	if r == nil || r.Cost == nil {
		return defaultCost
	}
	return r.Cost(addr, width)
}

// Stall reports whether a downstream region wants the CPU to spend a stall
// cycle before completing an access to addr, rather than blocking (spec
// §4.2, §5 "Suspension points").
func (b *Bus) Stall(addr uint32) bool {
	r := b.find(addr)
	if r == nil || r.WaitPredicate == nil {
		return false
	}
	return r.WaitPredicate(addr)
}
