package sh2

// Registers holds the SH-2 general-purpose and control register file (spec
// §3 "CPU state (SH-2)"). R0 doubles as the implicit base register for
// several addressing modes (MOV.B @(R0,Rm) and friends); no special type is
// needed for it, callers simply index R[0].
type Registers struct {
	R    [16]uint32
	PC   uint32
	PR   uint32
	GBR  uint32
	VBR  uint32
	MACH uint32
	MACL uint32
	SR   StatusRegister
}

// Reset clears every register to zero and SR to its power-on state.
// CPU.Reset then loads PC and R15 from the reset vector; no register is
// randomised.
func (r *Registers) Reset() {
	*r = Registers{}
	r.SR.Reset()
}
