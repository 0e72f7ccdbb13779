package sh2

// execute performs the semantics of one decoded instruction. It returns the
// extra cycles consumed beyond the opcode fetch (memory access costs charged
// through c.mem.Cost); most ALU-only instructions cost nothing extra.
func (c *CPU) execute(d DecodedInstruction) (int, error) {
	r := &c.Regs
	a := d.Args
	extra := 0

	load := func(addr uint32, width int) {
		extra += c.mem.Cost(addr, width)
	}
	store := func(addr uint32, width int) {
		extra += c.mem.Cost(addr, width)
	}

	switch d.Op {
	case OpNOP:
	case OpSLEEP:
		c.sleeping = true
	case OpCLRT:
		r.SR.SetT(false)
	case OpSETT:
		r.SR.SetT(true)
	case OpCLRMAC:
		r.MACH, r.MACL = 0, 0

	// data transfer
	case OpMOV:
		r.R[a.Rn] = r.R[a.Rm]
	case OpMOVImm:
		r.R[a.Rn] = uint32(int32(int8(a.Imm)))
	case OpMOVWLoadPC:
		addr := c.fetchPC + 4 + uint32(a.Disp)*2
		load(addr, 2)
		r.R[a.Rn] = uint32(int32(int16(c.mem.Read16(addr))))
	case OpMOVLLoadPC:
		addr := (c.fetchPC &^ 3) + 4 + uint32(a.Disp)*4
		load(addr, 4)
		r.R[a.Rn] = c.mem.Read32(addr)
	case OpMOVA:
		r.R[0] = (c.fetchPC &^ 3) + 4 + uint32(a.Disp)*4
	case OpMOVT:
		r.R[a.Rn] = boolU32(r.SR.T())

	case OpMOVBLoad:
		load(r.R[a.Rm], 1)
		r.R[a.Rn] = signExtend8(uint32(c.mem.Read8(r.R[a.Rm])))
	case OpMOVWLoad:
		load(r.R[a.Rm], 2)
		r.R[a.Rn] = signExtend16(uint32(c.mem.Read16(r.R[a.Rm])))
	case OpMOVLLoad:
		load(r.R[a.Rm], 4)
		r.R[a.Rn] = c.mem.Read32(r.R[a.Rm])
	case OpMOVBStore:
		store(r.R[a.Rn], 1)
		c.mem.Write8(r.R[a.Rn], uint8(r.R[a.Rm]))
	case OpMOVWStore:
		store(r.R[a.Rn], 2)
		c.mem.Write16(r.R[a.Rn], uint16(r.R[a.Rm]))
	case OpMOVLStore:
		store(r.R[a.Rn], 4)
		c.mem.Write32(r.R[a.Rn], r.R[a.Rm])

	case OpMOVBLoadInc:
		addr := r.R[a.Rm]
		load(addr, 1)
		v := signExtend8(uint32(c.mem.Read8(addr)))
		r.R[a.Rm] = addr + 1
		r.R[a.Rn] = v
	case OpMOVWLoadInc:
		addr := r.R[a.Rm]
		load(addr, 2)
		v := signExtend16(uint32(c.mem.Read16(addr)))
		r.R[a.Rm] = addr + 2
		r.R[a.Rn] = v
	case OpMOVLLoadInc:
		addr := r.R[a.Rm]
		load(addr, 4)
		v := c.mem.Read32(addr)
		r.R[a.Rm] = addr + 4
		r.R[a.Rn] = v
	case OpMOVBStoreDec:
		addr := r.R[a.Rn] - 1
		store(addr, 1)
		c.mem.Write8(addr, uint8(r.R[a.Rm]))
		r.R[a.Rn] = addr
	case OpMOVWStoreDec:
		addr := r.R[a.Rn] - 2
		store(addr, 2)
		c.mem.Write16(addr, uint16(r.R[a.Rm]))
		r.R[a.Rn] = addr
	case OpMOVLStoreDec:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.R[a.Rm])
		r.R[a.Rn] = addr

	case OpMOVBLoadDisp: // MOV.B @(disp,Rm),R0
		addr := r.R[a.Rm] + uint32(a.Disp&0xF)
		load(addr, 1)
		r.R[0] = signExtend8(uint32(c.mem.Read8(addr)))
	case OpMOVWLoadDisp: // MOV.W @(disp,Rm),R0
		addr := r.R[a.Rm] + uint32(a.Disp&0xF)*2
		load(addr, 2)
		r.R[0] = signExtend16(uint32(c.mem.Read16(addr)))
	case OpMOVLLoadDisp: // MOV.L @(disp,Rm),Rn
		addr := r.R[a.Rm] + uint32(a.Disp&0xF)*4
		load(addr, 4)
		r.R[a.Rn] = c.mem.Read32(addr)
	case OpMOVBStoreDisp: // MOV.B R0,@(disp,Rn)
		addr := r.R[a.Rn] + uint32(a.Disp&0xF)
		store(addr, 1)
		c.mem.Write8(addr, uint8(r.R[0]))
	case OpMOVWStoreDisp: // MOV.W R0,@(disp,Rn)
		addr := r.R[a.Rn] + uint32(a.Disp&0xF)*2
		store(addr, 2)
		c.mem.Write16(addr, uint16(r.R[0]))
	case OpMOVLStoreDisp: // MOV.L Rm,@(disp,Rn)
		addr := r.R[a.Rn] + uint32(a.Disp&0xF)*4
		store(addr, 4)
		c.mem.Write32(addr, r.R[a.Rm])

	case OpMOVBLoadR0: // MOV.B @(R0,Rm),Rn
		addr := r.R[0] + r.R[a.Rm]
		load(addr, 1)
		r.R[a.Rn] = signExtend8(uint32(c.mem.Read8(addr)))
	case OpMOVWLoadR0:
		addr := r.R[0] + r.R[a.Rm]
		load(addr, 2)
		r.R[a.Rn] = signExtend16(uint32(c.mem.Read16(addr)))
	case OpMOVLLoadR0:
		addr := r.R[0] + r.R[a.Rm]
		load(addr, 4)
		r.R[a.Rn] = c.mem.Read32(addr)
	case OpMOVBStoreR0: // MOV.B Rm,@(R0,Rn)
		addr := r.R[0] + r.R[a.Rn]
		store(addr, 1)
		c.mem.Write8(addr, uint8(r.R[a.Rm]))
	case OpMOVWStoreR0:
		addr := r.R[0] + r.R[a.Rn]
		store(addr, 2)
		c.mem.Write16(addr, uint16(r.R[a.Rm]))
	case OpMOVLStoreR0:
		addr := r.R[0] + r.R[a.Rn]
		store(addr, 4)
		c.mem.Write32(addr, r.R[a.Rm])

	case OpMOVBLoadGBR:
		addr := r.GBR + uint32(a.Disp&0xFF)
		load(addr, 1)
		r.R[0] = signExtend8(uint32(c.mem.Read8(addr)))
	case OpMOVWLoadGBR:
		addr := r.GBR + uint32(a.Disp&0xFF)*2
		load(addr, 2)
		r.R[0] = signExtend16(uint32(c.mem.Read16(addr)))
	case OpMOVLLoadGBR:
		addr := r.GBR + uint32(a.Disp&0xFF)*4
		load(addr, 4)
		r.R[0] = c.mem.Read32(addr)
	case OpMOVBStoreGBR:
		addr := r.GBR + uint32(a.Disp&0xFF)
		store(addr, 1)
		c.mem.Write8(addr, uint8(r.R[0]))
	case OpMOVWStoreGBR:
		addr := r.GBR + uint32(a.Disp&0xFF)*2
		store(addr, 2)
		c.mem.Write16(addr, uint16(r.R[0]))
	case OpMOVLStoreGBR:
		addr := r.GBR + uint32(a.Disp&0xFF)*4
		store(addr, 4)
		c.mem.Write32(addr, r.R[0])

	// arithmetic
	case OpADD:
		r.R[a.Rn] += r.R[a.Rm]
	case OpADDImm:
		r.R[a.Rn] += uint32(int32(int8(a.Imm)))
	case OpADDC:
		sum := uint64(r.R[a.Rn]) + uint64(r.R[a.Rm])
		if r.SR.T() {
			sum++
		}
		r.SR.SetT(sum > 0xFFFFFFFF)
		r.R[a.Rn] = uint32(sum)
	case OpADDV:
		rn, rm := int32(r.R[a.Rn]), int32(r.R[a.Rm])
		sum := rn + rm
		overflow := (rn >= 0) == (rm >= 0) && (sum >= 0) != (rn >= 0)
		r.SR.SetT(overflow)
		r.R[a.Rn] = uint32(sum)
	case OpSUB:
		r.R[a.Rn] -= r.R[a.Rm]
	case OpSUBC:
		borrow := uint64(0)
		if r.SR.T() {
			borrow = 1
		}
		diff := int64(r.R[a.Rn]) - int64(r.R[a.Rm]) - int64(borrow)
		r.SR.SetT(diff < 0)
		r.R[a.Rn] = uint32(diff)
	case OpSUBV:
		rn, rm := int32(r.R[a.Rn]), int32(r.R[a.Rm])
		diff := rn - rm
		overflow := (rn >= 0) != (rm >= 0) && (diff >= 0) != (rn >= 0)
		r.SR.SetT(overflow)
		r.R[a.Rn] = uint32(diff)
	case OpNEG:
		r.R[a.Rn] = uint32(-int32(r.R[a.Rm]))
	case OpNEGC:
		borrow := uint64(0)
		if r.SR.T() {
			borrow = 1
		}
		diff := int64(0) - int64(r.R[a.Rm]) - int64(borrow)
		r.SR.SetT(diff < 0)
		r.R[a.Rn] = uint32(diff)
	case OpDT:
		r.R[a.Rn]--
		r.SR.SetT(r.R[a.Rn] == 0)

	case OpCMPEQ:
		r.SR.SetT(r.R[a.Rn] == r.R[a.Rm])
	case OpCMPEQImm:
		r.SR.SetT(int32(r.R[0]) == int32(int8(a.Imm)))
	case OpCMPGE:
		r.SR.SetT(int32(r.R[a.Rn]) >= int32(r.R[a.Rm]))
	case OpCMPGT:
		r.SR.SetT(int32(r.R[a.Rn]) > int32(r.R[a.Rm]))
	case OpCMPHI:
		r.SR.SetT(r.R[a.Rn] > r.R[a.Rm])
	case OpCMPHS:
		r.SR.SetT(r.R[a.Rn] >= r.R[a.Rm])
	case OpCMPPL:
		r.SR.SetT(int32(r.R[a.Rn]) > 0)
	case OpCMPPZ:
		r.SR.SetT(int32(r.R[a.Rn]) >= 0)
	case OpCMPSTR:
		x := r.R[a.Rn] ^ r.R[a.Rm]
		same := (x&0xFF == 0) || (x&0xFF00 == 0) || (x&0xFF0000 == 0) || (x&0xFF000000 == 0)
		r.SR.SetT(same)

	// logic
	case OpAND:
		r.R[a.Rn] &= r.R[a.Rm]
	case OpANDImm:
		r.R[0] &= uint32(a.Imm & 0xFF)
	case OpOR:
		r.R[a.Rn] |= r.R[a.Rm]
	case OpORImm:
		r.R[0] |= uint32(a.Imm & 0xFF)
	case OpXOR:
		r.R[a.Rn] ^= r.R[a.Rm]
	case OpXORImm:
		r.R[0] ^= uint32(a.Imm & 0xFF)
	case OpNOT:
		r.R[a.Rn] = ^r.R[a.Rm]
	case OpTST:
		r.SR.SetT(r.R[a.Rn]&r.R[a.Rm] == 0)
	case OpTSTImm:
		r.SR.SetT(r.R[0]&uint32(a.Imm&0xFF) == 0)
	case OpTAS:
		addr := r.R[a.Rn]
		load(addr, 1)
		v := c.mem.Read8(addr)
		r.SR.SetT(v == 0)
		store(addr, 1)
		c.mem.Write8(addr, v|0x80)

	case OpEXTSB:
		r.R[a.Rn] = signExtend8(r.R[a.Rm])
	case OpEXTSW:
		r.R[a.Rn] = signExtend16(r.R[a.Rm])
	case OpEXTUB:
		r.R[a.Rn] = r.R[a.Rm] & 0xFF
	case OpEXTUW:
		r.R[a.Rn] = r.R[a.Rm] & 0xFFFF
	case OpSWAPB:
		v := r.R[a.Rm]
		r.R[a.Rn] = (v &^ 0xFFFF) | ((v & 0xFF) << 8) | ((v >> 8) & 0xFF)
	case OpSWAPW:
		v := r.R[a.Rm]
		r.R[a.Rn] = (v << 16) | (v >> 16)
	case OpXTRCT:
		r.R[a.Rn] = (r.R[a.Rn] >> 16) | (r.R[a.Rm] << 16)

	// shift/rotate
	case OpSHLL:
		r.SR.SetT(r.R[a.Rn]&0x80000000 != 0)
		r.R[a.Rn] <<= 1
	case OpSHLR:
		r.SR.SetT(r.R[a.Rn]&1 != 0)
		r.R[a.Rn] >>= 1
	case OpSHLL2:
		r.R[a.Rn] <<= 2
	case OpSHLR2:
		r.R[a.Rn] >>= 2
	case OpSHLL8:
		r.R[a.Rn] <<= 8
	case OpSHLR8:
		r.R[a.Rn] >>= 8
	case OpSHLL16:
		r.R[a.Rn] <<= 16
	case OpSHLR16:
		r.R[a.Rn] >>= 16
	case OpSHAL:
		r.SR.SetT(r.R[a.Rn]&0x80000000 != 0)
		r.R[a.Rn] = uint32(int32(r.R[a.Rn]) << 1)
	case OpSHAR:
		r.SR.SetT(r.R[a.Rn]&1 != 0)
		r.R[a.Rn] = uint32(int32(r.R[a.Rn]) >> 1)
	case OpROTL:
		top := r.R[a.Rn] & 0x80000000
		r.SR.SetT(top != 0)
		r.R[a.Rn] = (r.R[a.Rn] << 1) | (top >> 31)
	case OpROTR:
		bottom := r.R[a.Rn] & 1
		r.SR.SetT(bottom != 0)
		r.R[a.Rn] = (r.R[a.Rn] >> 1) | (bottom << 31)
	case OpROTCL:
		top := r.R[a.Rn] & 0x80000000
		carry := boolU32(r.SR.T())
		r.SR.SetT(top != 0)
		r.R[a.Rn] = (r.R[a.Rn] << 1) | carry
	case OpROTCR:
		bottom := r.R[a.Rn] & 1
		carry := boolU32(r.SR.T())
		r.SR.SetT(bottom != 0)
		r.R[a.Rn] = (r.R[a.Rn] >> 1) | (carry << 31)

	// branch / control flow
	case OpBRA:
		c.enterDelaySlot(c.fetchPC + 4 + uint32(a.Disp)*2)
	case OpBSR:
		r.PR = c.fetchPC + 4
		c.enterDelaySlot(c.fetchPC + 4 + uint32(a.Disp)*2)
	case OpBF:
		if !r.SR.T() {
			r.PC = c.fetchPC + 4 + uint32(a.Disp)*2
		}
	case OpBT:
		if r.SR.T() {
			r.PC = c.fetchPC + 4 + uint32(a.Disp)*2
		}
	case OpBFS:
		if !r.SR.T() {
			c.enterDelaySlot(c.fetchPC + 4 + uint32(a.Disp)*2)
		}
	case OpBTS:
		if r.SR.T() {
			c.enterDelaySlot(c.fetchPC + 4 + uint32(a.Disp)*2)
		}
	case OpJMP:
		c.enterDelaySlot(r.R[a.Rm])
	case OpJSR:
		r.PR = c.fetchPC + 4
		c.enterDelaySlot(r.R[a.Rm])
	case OpRTS:
		c.enterDelaySlot(r.PR)
	case OpRTE:
		sr := c.popStack()
		pc := c.popStack()
		r.SR.Load(sr)
		c.enterDelaySlot(pc)
	case OpTRAPA:
		c.pushStack(r.SR.Raw())
		c.pushStack(r.PC)
		r.PC = c.mem.Read32(uint32(VectorTRAPABase+a.Imm) * 4)

	// system registers
	case OpLDCSR:
		r.SR.Load(r.R[a.Rm])
	case OpLDCGBR:
		r.GBR = r.R[a.Rm]
	case OpLDCVBR:
		r.VBR = r.R[a.Rm]
	case OpSTCSR:
		r.R[a.Rn] = r.SR.Raw()
	case OpSTCGBR:
		r.R[a.Rn] = r.GBR
	case OpSTCVBR:
		r.R[a.Rn] = r.VBR
	case OpLDCLSR:
		load(r.R[a.Rm], 4)
		r.SR.Load(c.mem.Read32(r.R[a.Rm]))
		r.R[a.Rm] += 4
	case OpLDCLGBR:
		load(r.R[a.Rm], 4)
		r.GBR = c.mem.Read32(r.R[a.Rm])
		r.R[a.Rm] += 4
	case OpLDCLVBR:
		load(r.R[a.Rm], 4)
		r.VBR = c.mem.Read32(r.R[a.Rm])
		r.R[a.Rm] += 4
	case OpSTCLSR:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.SR.Raw())
		r.R[a.Rn] = addr
	case OpSTCLGBR:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.GBR)
		r.R[a.Rn] = addr
	case OpSTCLVBR:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.VBR)
		r.R[a.Rn] = addr

	case OpLDSMACH:
		r.MACH = r.R[a.Rm]
	case OpLDSMACL:
		r.MACL = r.R[a.Rm]
	case OpLDSPR:
		r.PR = r.R[a.Rm]
	case OpSTSMACH:
		r.R[a.Rn] = r.MACH
	case OpSTSMACL:
		r.R[a.Rn] = r.MACL
	case OpSTSPR:
		r.R[a.Rn] = r.PR
	case OpLDSLMACH:
		load(r.R[a.Rm], 4)
		r.MACH = c.mem.Read32(r.R[a.Rm])
		r.R[a.Rm] += 4
	case OpLDSLMACL:
		load(r.R[a.Rm], 4)
		r.MACL = c.mem.Read32(r.R[a.Rm])
		r.R[a.Rm] += 4
	case OpLDSLPR:
		load(r.R[a.Rm], 4)
		r.PR = c.mem.Read32(r.R[a.Rm])
		r.R[a.Rm] += 4
	case OpSTSLMACH:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.MACH)
		r.R[a.Rn] = addr
	case OpSTSLMACL:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.MACL)
		r.R[a.Rn] = addr
	case OpSTSLPR:
		addr := r.R[a.Rn] - 4
		store(addr, 4)
		c.mem.Write32(addr, r.PR)
		r.R[a.Rn] = addr

	// multiply / divide
	case OpMACL:
		la := r.R[a.Rn]
		load(la, 4)
		va := int64(int32(c.mem.Read32(la)))
		r.R[a.Rn] += 4
		lb := r.R[a.Rm]
		load(lb, 4)
		vb := int64(int32(c.mem.Read32(lb)))
		r.R[a.Rm] += 4
		product := va * vb
		acc := int64(int32(r.MACH))<<32 | int64(r.MACL)
		acc += product
		r.MACH = uint32(acc >> 32)
		r.MACL = uint32(acc)
	case OpMACW:
		la := r.R[a.Rn]
		load(la, 2)
		va := int64(int16(c.mem.Read16(la)))
		r.R[a.Rn] += 2
		lb := r.R[a.Rm]
		load(lb, 2)
		vb := int64(int16(c.mem.Read16(lb)))
		r.R[a.Rm] += 2
		product := va * vb
		acc := int64(int32(r.MACL)) + product
		r.MACL = uint32(acc)
	case OpMULL:
		r.MACL = r.R[a.Rn] * r.R[a.Rm]
	case OpMULSW:
		r.MACL = uint32(int32(int16(r.R[a.Rn])) * int32(int16(r.R[a.Rm])))
	case OpMULUW:
		r.MACL = (r.R[a.Rn] & 0xFFFF) * (r.R[a.Rm] & 0xFFFF)
	case OpDIV0S:
		q := r.R[a.Rn]&0x80000000 != 0
		m := r.R[a.Rm]&0x80000000 != 0
		r.SR.SetQ(q)
		r.SR.SetM(m)
		r.SR.SetT(q != m)
	case OpDIV0U:
		r.SR.SetQ(false)
		r.SR.SetM(false)
		r.SR.SetT(false)
	case OpDIV1:
		c.div1(a.Rn, a.Rm)
	}

	return extra, nil
}

// enterDelaySlot implements the common "set delay_slot, record target"
// step shared by every delayed branch instruction (spec §4.3 "Delay-slot
// protocol"). PC is not touched here: Step has already advanced it to the
// slot instruction, and replaces it with the target once that instruction
// has run.
func (c *CPU) enterDelaySlot(target uint32) {
	c.delaySlot = true
	c.delayTarget = target
}

// div1 performs one step of the SH-2 step-division algorithm, using the Q/M
// flags left by a prior DIV0S/DIV0U (spec §3 CPU state "M, Q"). Follows the
// standard SH-2 bit-serial restoring-division microcode.
func (c *CPU) div1(rn, rm int) {
	r := &c.Regs
	oldQ := r.SR.Q()
	newQ := r.R[rn]&0x80000000 != 0
	before := (r.R[rn] << 1) | boolU32(r.SR.T())
	r.R[rn] = before

	m := r.SR.M()
	var borrowed bool
	if !oldQ {
		if !m {
			r.R[rn] = before - r.R[rm]
			borrowed = r.R[rn] > before
			newQ = cond(!newQ, borrowed, !borrowed)
		} else {
			r.R[rn] = before + r.R[rm]
			borrowed = r.R[rn] < before
			newQ = cond(!newQ, !borrowed, borrowed)
		}
	} else {
		if !m {
			r.R[rn] = before + r.R[rm]
			borrowed = r.R[rn] < before
			newQ = cond(!newQ, borrowed, !borrowed)
		} else {
			r.R[rn] = before - r.R[rm]
			borrowed = r.R[rn] > before
			newQ = cond(!newQ, !borrowed, borrowed)
		}
	}

	r.SR.SetQ(newQ)
	r.SR.SetT(newQ == m)
}

func cond(pred, ifTrue, ifFalse bool) bool {
	if pred {
		return ifTrue
	}
	return ifFalse
}

func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func signExtend8(v uint32) uint32  { return uint32(int32(int8(uint8(v)))) }
func signExtend16(v uint32) uint32 { return uint32(int32(int16(uint16(v)))) }
