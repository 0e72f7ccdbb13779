package sh1_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/hardware/sh1"
	"github.com/saturnist/corehw/random"
	"github.com/saturnist/corehw/system"
)

type fixedCycle struct{}

func (fixedCycle) Cycle() uint64 { return 0 }

func newTestSH1() *sh1.CPU {
	return sh1.NewCPU(system.NewInstance(fixedCycle{}))
}

func TestLoadROMRejectsWrongSize(t *testing.T) {
	c := newTestSH1()
	err := c.LoadROM(make([]byte, 10))
	require.Error(t, err)
}

func TestLoadROMAcceptsExactSize(t *testing.T) {
	c := newTestSH1()
	img := make([]byte, sh1.ROMSize)
	img[4] = 0x11 // reset SP high byte, arbitrary

	err := c.LoadROM(img)
	require.NoError(t, err)
	require.NotEmpty(t, c.ROM.Hash())
}

func TestResetReadsOnChipROMVectors(t *testing.T) {
	c := newTestSH1()
	img := make([]byte, sh1.ROMSize)
	// reset PC = 0x00000100, reset SP = 0x00201000 (inside on-chip RAM)
	img[2], img[3] = 0x01, 0x00
	img[5], img[6], img[7] = 0x20, 0x10, 0x00

	require.NoError(t, c.LoadROM(img))
	c.Reset()

	require.Equal(t, uint32(0x00000100), c.Regs.PC)
	require.Equal(t, uint32(0x00201000), c.Regs.R[15])
}

func TestSerialAdvanceInvokesRxTx(t *testing.T) {
	c := newTestSH1()
	c.CyclesPerBit = 4

	var rxCalls, txCalls int
	c.SetSerialHandlers(
		func() uint8 { rxCalls++; return 0xAA },
		func(b uint8) { txCalls++ },
	)
	c.SCI[0].TxEnable = true

	c.SerialAdvance(10) // two full bit periods (8 cycles), 2 left over
	require.Equal(t, 2, rxCalls)
	require.Equal(t, 2, txCalls)
	require.Equal(t, uint8(0xAA), c.SCI[0].RDR)
}

func TestAssertDREQRunsConfiguredTransfer(t *testing.T) {
	c := newTestSH1()
	c.Bus.Write32(0x00200000, 0xCAFEBABE)

	c.DMAC.Channels[sh1.DREQSector].SAR = 0x00200000
	c.DMAC.Channels[sh1.DREQSector].DAR = 0x00200004
	c.DMAC.Channels[sh1.DREQSector].TCR = 1
	c.DMAC.Channels[sh1.DREQSector].CHCR = 1 // enable

	c.AssertDREQ(sh1.DREQSector)

	require.Equal(t, uint32(0xCAFEBABE), c.Bus.Read32(0x00200004))
}

var _ = random.CycleSource(fixedCycle{})
