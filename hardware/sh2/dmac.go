package sh2

// DMACChannel is one SH-2 on-chip DMA channel: a source address, a
// destination address, a transfer count, and control bits (spec §3
// "on-chip peripherals: DMAC channels"). Unlike the SCU's DMA engine (the
// Saturn's primary bulk-transfer path), the SH-2's own DMAC is used
// sparingly by games for small, CPU-local transfers.
type DMACChannel struct {
	SAR   uint32 // source address register
	DAR   uint32 // destination address register
	TCR   uint32 // transfer count register
	CHCR  uint32 // channel control register (enable, direction, mode bits)
	onEnd func()
}

const (
	chcrEnable = 1 << 0
	chcrEnd    = 1 << 1 // transfer-end flag, set on completion
)

// DMAC is the SH-2's on-chip DMA controller.
type DMAC struct {
	Channels [4]DMACChannel
	mem      Memory
}

// NewDMAC creates a DMAC driving transfers through mem.
func NewDMAC(mem Memory) *DMAC {
	return &DMAC{mem: mem}
}

// SetEndCallback installs the function called when channel ch finishes a
// transfer (typically used to raise a DMA-end interrupt through INTC).
func (d *DMAC) SetEndCallback(ch int, fn func()) {
	d.Channels[ch].onEnd = fn
}

// Run executes channel ch's configured transfer to completion in one call;
// the real hardware interleaves this with CPU cycles, but since no software
// depends on partial-transfer timing for the on-chip DMAC, modelling it as
// atomic keeps the scheduler simple (spec §4.3 memory-access costs are
// still charged per word through mem.Cost by the caller, not modelled
// here).
func (d *DMAC) Run(ch int) {
	c := &d.Channels[ch]
	if c.CHCR&chcrEnable == 0 {
		return
	}

	for i := uint32(0); i < c.TCR; i++ {
		v := d.mem.Read32(c.SAR + i*4)
		d.mem.Write32(c.DAR+i*4, v)
	}

	c.TCR = 0
	c.CHCR |= chcrEnd
	c.CHCR &^= chcrEnable
	if c.onEnd != nil {
		c.onEnd()
	}
}
