// This file is part of saturncore.
//
// saturncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// saturncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with saturncore.  If not, see <https://www.gnu.org/licenses/>.

package errors

// error messages, one family per component
const (
	// scheduler
	SchedulerError = "scheduler error: %v"
	SchedulerUnknownEvent = "scheduler error: unknown event id (%v)"

	// bus
	BusError         = "bus error: %v"
	UnmappedAddress  = "bus error: unmapped address (%#08x)"
	OverlappingRegion = "bus error: region %#08x-%#08x overlaps existing region"

	// SH-2 / SH-1
	CPUError             = "cpu error: %v"
	IllegalInstruction    = "cpu error: illegal instruction (%#04x) at (%#08x)"
	IllegalSlotInstruction = "cpu error: illegal slot instruction (%#04x) at (%#08x)"
	AddressError          = "cpu error: address error at (%#08x)"
	ROMSizeError          = "cpu error: rom image must be exactly %d bytes, got %d"

	// CD drive / YGR
	CDDriveError = "cd drive error: %v"
	YGRError     = "ygr error: %v"
	DiscError    = "disc error: %v"

	// SCU
	SCUError            = "scu error: %v"
	SCUProhibitedDMA    = "scu error: dma to/from prohibited region (%v)"
	SCUMisalignedAccess = "scu error: misaligned dma access (%v)"

	// SMPC
	SMPCError = "smpc error: %v"

	// VDP1 / VDP2
	VDP1Error = "vdp1 error: %v"
	VDP2Error = "vdp2 error: %v"

	// top-level
	SaturnError  = "saturn error: %v"
	StateError   = "save state error: %v"
	IPLSizeError = "saturn error: ipl image must be exactly %d bytes, got %d"
	ConfigError  = "config error: %v"
)
