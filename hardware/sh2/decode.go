package sh2

import "sync"

// OpcodeType identifies the decoded operation a fetched opcode represents.
// A 65,536-entry table maps every possible 16-bit opcode to one of these
// (spec §4.3).
type OpcodeType int

const (
	OpIllegal OpcodeType = iota
	OpIllegalSlot

	OpNOP
	OpSLEEP
	OpCLRT
	OpSETT
	OpCLRMAC

	OpMOV
	OpMOVImm
	OpMOVWLoadPC
	OpMOVLLoadPC
	OpMOVA
	OpMOVT

	OpMOVBLoad
	OpMOVWLoad
	OpMOVLLoad
	OpMOVBStore
	OpMOVWStore
	OpMOVLStore

	OpMOVBLoadInc
	OpMOVWLoadInc
	OpMOVLLoadInc
	OpMOVBStoreDec
	OpMOVWStoreDec
	OpMOVLStoreDec

	OpMOVBLoadDisp
	OpMOVWLoadDisp
	OpMOVLLoadDisp
	OpMOVBStoreDisp
	OpMOVWStoreDisp
	OpMOVLStoreDisp

	OpMOVBLoadR0
	OpMOVWLoadR0
	OpMOVLLoadR0
	OpMOVBStoreR0
	OpMOVWStoreR0
	OpMOVLStoreR0

	OpMOVBLoadGBR
	OpMOVWLoadGBR
	OpMOVLLoadGBR
	OpMOVBStoreGBR
	OpMOVWStoreGBR
	OpMOVLStoreGBR

	OpADD
	OpADDImm
	OpADDC
	OpADDV
	OpSUB
	OpSUBC
	OpSUBV
	OpNEG
	OpNEGC
	OpDT

	OpCMPEQ
	OpCMPEQImm
	OpCMPGE
	OpCMPGT
	OpCMPHI
	OpCMPHS
	OpCMPPL
	OpCMPPZ
	OpCMPSTR

	OpAND
	OpANDImm
	OpOR
	OpORImm
	OpXOR
	OpXORImm
	OpNOT
	OpTST
	OpTSTImm
	OpTAS

	OpEXTSB
	OpEXTSW
	OpEXTUB
	OpEXTUW
	OpSWAPB
	OpSWAPW
	OpXTRCT

	OpSHLL
	OpSHLR
	OpSHLL2
	OpSHLR2
	OpSHLL8
	OpSHLR8
	OpSHLL16
	OpSHLR16
	OpSHAL
	OpSHAR
	OpROTL
	OpROTR
	OpROTCL
	OpROTCR

	OpBRA
	OpBSR
	OpBF
	OpBT
	OpBFS
	OpBTS
	OpJMP
	OpJSR
	OpRTS
	OpRTE
	OpTRAPA

	OpLDCSR
	OpLDCGBR
	OpLDCVBR
	OpSTCSR
	OpSTCGBR
	OpSTCVBR
	OpLDCLSR
	OpLDCLGBR
	OpLDCLVBR
	OpSTCLSR
	OpSTCLGBR
	OpSTCLVBR

	OpLDSMACH
	OpLDSMACL
	OpLDSPR
	OpSTSMACH
	OpSTSMACL
	OpSTSPR
	OpLDSLMACH
	OpLDSLMACL
	OpLDSLPR
	OpSTSLMACH
	OpSTSLMACL
	OpSTSLPR

	OpMACL
	OpMACW
	OpMULL
	OpMULSW
	OpMULUW
	OpDIV0S
	OpDIV0U
	OpDIV1
)

// DecodedArgs is the operand payload extracted from a fetched opcode
// (spec §4.3: "rm, rn, disp_or_imm").
type DecodedArgs struct {
	Rn     int
	Rm     int
	Disp   int32
	Imm    int32
}

// DecodedInstruction is one entry of the 65,536-entry decode table.
type DecodedInstruction struct {
	Op            OpcodeType
	Args          DecodedArgs
	IllegalInSlot bool
}

type definition struct {
	pattern       string // 16 characters, one per bit, MSB first: '0'/'1' literal, n/m/i/d field
	op            OpcodeType
	illegalInSlot bool
}

// compiled is a definition reduced to a mask/value test plus the bit
// positions (MSB to LSB, as they appeared in the pattern) that feed each
// operand field. Fields are always contiguous runs in the real encoding,
// but extraction walks the recorded bit list rather than assuming that, so
// a discontiguous field would still decode correctly.
type compiled struct {
	mask, value   uint16
	op            OpcodeType
	illegalInSlot bool
	nBits, mBits  []uint
	immBits       []uint // 'i': always an unsigned field (zero-extended by the caller as needed)
	dispBits      []uint // 'd': a signed, instruction-width field (sign-extended here)
}

func compile(d definition) compiled {
	c := compiled{op: d.op, illegalInSlot: d.illegalInSlot}
	if len(d.pattern) != 16 {
		panic("sh2: pattern must be 16 bits: " + d.pattern)
	}
	for i, ch := range d.pattern {
		bit := uint(15 - i)
		switch ch {
		case '0':
			c.mask |= 1 << bit
		case '1':
			c.mask |= 1 << bit
			c.value |= 1 << bit
		case 'n':
			c.nBits = append(c.nBits, bit)
		case 'm':
			c.mBits = append(c.mBits, bit)
		case 'i':
			c.immBits = append(c.immBits, bit)
		case 'd':
			c.dispBits = append(c.dispBits, bit)
		default:
			panic("sh2: bad pattern character " + string(ch))
		}
	}
	return c
}

func (c compiled) matches(opcode uint16) bool {
	return opcode&c.mask == c.value
}

// extract packs the opcode bits named by bits (given MSB-first) into an
// unsigned value, MSB of the field first.
func extract(opcode uint16, bits []uint) int32 {
	var v int32
	for _, b := range bits {
		v <<= 1
		v |= int32((opcode >> b) & 1)
	}
	return v
}

func (c compiled) decode(opcode uint16) DecodedInstruction {
	d := DecodedInstruction{Op: c.op, IllegalInSlot: c.illegalInSlot}
	if len(c.nBits) > 0 {
		d.Args.Rn = int(extract(opcode, c.nBits))
	}
	if len(c.mBits) > 0 {
		d.Args.Rm = int(extract(opcode, c.mBits))
	}
	if len(c.immBits) > 0 {
		d.Args.Imm = extract(opcode, c.immBits)
	}
	if len(c.dispBits) > 0 {
		width := uint(len(c.dispBits))
		v := extract(opcode, c.dispBits)
		if v&(1<<(width-1)) != 0 {
			v -= 1 << width
		}
		d.Args.Disp = v
	}
	return d
}

// definitions is the representative SH-2 instruction set this interpreter
// supports, grouped by category (spec §4.3). The first matching pattern
// wins; the real SH-2 encoding space is partitioned so no two patterns
// listed here overlap.
var definitions = []definition{
	{"0000000000001001", OpNOP, false},
	{"0000000000011011", OpSLEEP, false},
	{"0000000000001000", OpCLRT, false},
	{"0000000000011000", OpSETT, false},
	{"0000000000101000", OpCLRMAC, false},

	{"0110nnnnmmmm0011", OpMOV, false},
	{"1110nnnniiiiiiii", OpMOVImm, false},
	{"1001nnnndddddddd", OpMOVWLoadPC, false},
	{"1101nnnndddddddd", OpMOVLLoadPC, false},
	{"11000111dddddddd", OpMOVA, false},
	{"0000nnnn00101001", OpMOVT, false},

	{"0110nnnnmmmm0000", OpMOVBLoad, false},
	{"0110nnnnmmmm0001", OpMOVWLoad, false},
	{"0110nnnnmmmm0010", OpMOVLLoad, false},
	{"0010nnnnmmmm0000", OpMOVBStore, false},
	{"0010nnnnmmmm0001", OpMOVWStore, false},
	{"0010nnnnmmmm0010", OpMOVLStore, false},

	{"0110nnnnmmmm0100", OpMOVBLoadInc, false},
	{"0110nnnnmmmm0101", OpMOVWLoadInc, false},
	{"0110nnnnmmmm0110", OpMOVLLoadInc, false},
	{"0010nnnnmmmm0100", OpMOVBStoreDec, false},
	{"0010nnnnmmmm0101", OpMOVWStoreDec, false},
	{"0010nnnnmmmm0110", OpMOVLStoreDec, false},

	{"10000100mmmmdddd", OpMOVBLoadDisp, false},
	{"10000101mmmmdddd", OpMOVWLoadDisp, false},
	{"0101nnnnmmmmdddd", OpMOVLLoadDisp, false},
	{"10000000nnnndddd", OpMOVBStoreDisp, false},
	{"10000001nnnndddd", OpMOVWStoreDisp, false},
	{"0001nnnnmmmmdddd", OpMOVLStoreDisp, false},

	{"0000nnnnmmmm1100", OpMOVBLoadR0, false},
	{"0000nnnnmmmm1101", OpMOVWLoadR0, false},
	{"0000nnnnmmmm1110", OpMOVLLoadR0, false},
	{"0000nnnnmmmm0100", OpMOVBStoreR0, false},
	{"0000nnnnmmmm0101", OpMOVWStoreR0, false},
	{"0000nnnnmmmm0110", OpMOVLStoreR0, false},

	{"11000100dddddddd", OpMOVBLoadGBR, false},
	{"11000101dddddddd", OpMOVWLoadGBR, false},
	{"11000110dddddddd", OpMOVLLoadGBR, false},
	{"11000000dddddddd", OpMOVBStoreGBR, false},
	{"11000001dddddddd", OpMOVWStoreGBR, false},
	{"11000010dddddddd", OpMOVLStoreGBR, false},

	{"0011nnnnmmmm1100", OpADD, false},
	{"0111nnnniiiiiiii", OpADDImm, false},
	{"0011nnnnmmmm1110", OpADDC, false},
	{"0011nnnnmmmm1111", OpADDV, false},
	{"0011nnnnmmmm1000", OpSUB, false},
	{"0011nnnnmmmm1010", OpSUBC, false},
	{"0011nnnnmmmm1011", OpSUBV, false},
	{"0110nnnnmmmm1011", OpNEG, false},
	{"0110nnnnmmmm1010", OpNEGC, false},
	{"0100nnnn00010000", OpDT, false},

	{"0011nnnnmmmm0000", OpCMPEQ, false},
	{"10001000iiiiiiii", OpCMPEQImm, false},
	{"0011nnnnmmmm0011", OpCMPGE, false},
	{"0011nnnnmmmm0111", OpCMPGT, false},
	{"0011nnnnmmmm0110", OpCMPHI, false},
	{"0011nnnnmmmm0010", OpCMPHS, false},
	{"0100nnnn00010101", OpCMPPL, false},
	{"0100nnnn00010001", OpCMPPZ, false},
	{"0010nnnnmmmm1100", OpCMPSTR, false},

	{"0010nnnnmmmm1001", OpAND, false},
	{"11001001iiiiiiii", OpANDImm, false},
	{"0010nnnnmmmm1011", OpOR, false},
	{"11001011iiiiiiii", OpORImm, false},
	{"0010nnnnmmmm1010", OpXOR, false},
	{"11001010iiiiiiii", OpXORImm, false},
	{"0110nnnnmmmm0111", OpNOT, false},
	{"0010nnnnmmmm1000", OpTST, false},
	{"11001000iiiiiiii", OpTSTImm, false},
	{"0100nnnn00011011", OpTAS, true},

	{"0110nnnnmmmm1110", OpEXTSB, false},
	{"0110nnnnmmmm1111", OpEXTSW, false},
	{"0110nnnnmmmm1100", OpEXTUB, false},
	{"0110nnnnmmmm1101", OpEXTUW, false},
	{"0110nnnnmmmm1000", OpSWAPB, false},
	{"0110nnnnmmmm1001", OpSWAPW, false},
	{"0010nnnnmmmm1101", OpXTRCT, false},

	{"0100nnnn00000000", OpSHLL, false},
	{"0100nnnn00000001", OpSHLR, false},
	{"0100nnnn00001000", OpSHLL2, false},
	{"0100nnnn00001001", OpSHLR2, false},
	{"0100nnnn00011000", OpSHLL8, false},
	{"0100nnnn00011001", OpSHLR8, false},
	{"0100nnnn00101000", OpSHLL16, false},
	{"0100nnnn00101001", OpSHLR16, false},
	{"0100nnnn00100000", OpSHAL, false},
	{"0100nnnn00100001", OpSHAR, false},
	{"0100nnnn00000100", OpROTL, false},
	{"0100nnnn00000101", OpROTR, false},
	{"0100nnnn00100100", OpROTCL, false},
	{"0100nnnn00100101", OpROTCR, false},

	{"1010dddddddddddd", OpBRA, true},
	{"1011dddddddddddd", OpBSR, true},
	{"10001011dddddddd", OpBF, false},
	{"10001001dddddddd", OpBT, false},
	{"10001111dddddddd", OpBFS, true},
	{"10001101dddddddd", OpBTS, true},
	{"0100mmmm00101011", OpJMP, true},
	{"0100mmmm00001011", OpJSR, true},
	{"0000000000001011", OpRTS, true},
	{"0000000000101011", OpRTE, true},
	{"11000011iiiiiiii", OpTRAPA, false},

	{"0100mmmm00001110", OpLDCSR, false},
	{"0100mmmm00011110", OpLDCGBR, false},
	{"0100mmmm00101110", OpLDCVBR, false},
	{"0000nnnn00000010", OpSTCSR, false},
	{"0000nnnn00010010", OpSTCGBR, false},
	{"0000nnnn00100010", OpSTCVBR, false},
	{"0100mmmm00000111", OpLDCLSR, false},
	{"0100mmmm00010111", OpLDCLGBR, false},
	{"0100mmmm00100111", OpLDCLVBR, false},
	{"0100nnnn00000011", OpSTCLSR, false},
	{"0100nnnn00010011", OpSTCLGBR, false},
	{"0100nnnn00100011", OpSTCLVBR, false},

	{"0100mmmm00001010", OpLDSMACH, false},
	{"0100mmmm00011010", OpLDSMACL, false},
	{"0100mmmm00101010", OpLDSPR, false},
	{"0000nnnn00001010", OpSTSMACH, false},
	{"0000nnnn00011010", OpSTSMACL, false},
	{"0000nnnn00101010", OpSTSPR, false},
	{"0100mmmm00000110", OpLDSLMACH, false},
	{"0100mmmm00010110", OpLDSLMACL, false},
	{"0100mmmm00100110", OpLDSLPR, false},
	{"0100nnnn00000010", OpSTSLMACH, false},
	{"0100nnnn00010010", OpSTSLMACL, false},
	{"0100nnnn00100010", OpSTSLPR, false},

	{"0000nnnnmmmm1111", OpMACL, false},
	{"0100nnnnmmmm1111", OpMACW, false},
	{"0000nnnnmmmm0111", OpMULL, false},
	{"0010nnnnmmmm1111", OpMULSW, false},
	{"0010nnnnmmmm1110", OpMULUW, false},
	{"0010nnnnmmmm0111", OpDIV0S, false},
	{"0000000000011001", OpDIV0U, false},
	{"0011nnnnmmmm0100", OpDIV1, false},
}

// Table is the process-wide decode table: opcode -> DecodedInstruction, for
// both the normal and the delay-slot variant (spec §4.3: "the decode table
// is a process-wide singleton"). Construction is idempotent and
// thread-safe: every field is written identically regardless of which
// goroutine wins the race to initialise.
type Table struct {
	normal    [65536]DecodedInstruction
	delaySlot [65536]DecodedInstruction
}

var (
	globalTable     Table
	globalTableOnce sync.Once
)

// GlobalTable returns the singleton decode table, building it on first use.
func GlobalTable() *Table {
	globalTableOnce.Do(buildGlobalTable)
	return &globalTable
}

func buildGlobalTable() {
	compiledDefs := make([]compiled, len(definitions))
	for i, d := range definitions {
		compiledDefs[i] = compile(d)
	}

	for opcode := 0; opcode < 65536; opcode++ {
		op := uint16(opcode)
		var normal, slot DecodedInstruction
		normal.Op, slot.Op = OpIllegal, OpIllegal

		for _, c := range compiledDefs {
			if !c.matches(op) {
				continue
			}
			d := c.decode(op)
			normal = d
			if c.illegalInSlot {
				slot = DecodedInstruction{Op: OpIllegalSlot}
			} else {
				slot = d
			}
			break
		}

		globalTable.normal[opcode] = normal
		globalTable.delaySlot[opcode] = slot
	}
}

// Decode returns the decoded instruction for opcode, selecting the
// delay-slot variant when inSlot is true (spec §4.3).
func (t *Table) Decode(opcode uint16, inSlot bool) DecodedInstruction {
	if inSlot {
		return t.delaySlot[opcode]
	}
	return t.normal[opcode]
}
