package sh2

// StatusRegister is the SH-2 SR: T, S, I[3:0], M, Q plus reserved bits that
// are preserved but otherwise meaningless to the interpreter (spec §3 CPU
// state). Bit-field access goes through typed getter/setter methods rather
// than raw masking at call sites.
type StatusRegister struct {
	raw uint32
}

const (
	srBitT = 1 << 0
	srBitS = 1 << 1
	srBitM = 1 << 9
	srBitQ = 1 << 8
	srMaskI = 0xF << 4
)

// T returns the true/test bit, set by compare, logical and arithmetic
// instructions and consumed by BT/BF.
func (sr StatusRegister) T() bool { return sr.raw&srBitT != 0 }

func (sr *StatusRegister) SetT(v bool) { sr.set(srBitT, v) }

// S is the MAC saturation-mode bit. It is stored and restored with the rest
// of SR, but MAC.L and MAC.W here never read it and never saturate.
func (sr StatusRegister) S() bool { return sr.raw&srBitS != 0 }

func (sr *StatusRegister) SetS(v bool) { sr.set(srBitS, v) }

// M and Q hold intermediate state for the DIV0/DIV1 step-division sequence.
func (sr StatusRegister) M() bool { return sr.raw&srBitM != 0 }

func (sr *StatusRegister) SetM(v bool) { sr.set(srBitM, v) }

func (sr StatusRegister) Q() bool { return sr.raw&srBitQ != 0 }

func (sr *StatusRegister) SetQ(v bool) { sr.set(srBitQ, v) }

// I is the 4-bit interrupt mask level; a pending interrupt is only accepted
// if its priority exceeds I (spec §4.3 "Interrupt acceptance").
func (sr StatusRegister) I() uint8 { return uint8((sr.raw & srMaskI) >> 4) }

func (sr *StatusRegister) SetI(level uint8) {
	sr.raw = (sr.raw &^ srMaskI) | (uint32(level&0xF) << 4)
}

func (sr *StatusRegister) set(bit uint32, v bool) {
	if v {
		sr.raw |= bit
	} else {
		sr.raw &^= bit
	}
}

// Raw returns the full 32-bit register contents (only the low bits are
// architecturally defined; the rest are preserved as loaded).
func (sr StatusRegister) Raw() uint32 { return sr.raw }

// Load replaces the entire register, eg. from RTE or LDC Rm,SR.
func (sr *StatusRegister) Load(v uint32) { sr.raw = v }

// Reset puts SR into the power-on-reset state: I=15 (all interrupts below
// NMI masked), everything else clear (spec §8 scenario S1).
func (sr *StatusRegister) Reset() {
	sr.raw = 0
	sr.SetI(15)
}
