package hardware_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/hardware"
)

func zeroIPL() []byte {
	return make([]byte, hardware.IPLSize)
}

func TestLoadIPLRejectsWrongSize(t *testing.T) {
	s := hardware.NewSaturn()
	err := s.LoadIPL(make([]byte, 10))
	require.Error(t, err)
}

func TestLoadIPLAcceptsExactSize(t *testing.T) {
	s := hardware.NewSaturn()
	require.NoError(t, s.LoadIPL(zeroIPL()))
}

// TestResetHaltsSlaveSH2 covers scenario S1 (reset -> boot): the slave
// SH-2 starts suspended and only the master runs until software wakes it.
func TestResetHaltsSlaveSH2(t *testing.T) {
	s := hardware.NewSaturn()
	require.NoError(t, s.LoadIPL(zeroIPL()))
	require.True(t, s.Slave.Suspended)
	require.False(t, s.Master.Suspended)
}

// TestRunFrameAdvancesSchedulerDeterministically covers spec §8 property 1:
// two freshly constructed Saturns given the same IPL and run for the same
// number of frames reach the same cycle count and framebuffer.
func TestRunFrameAdvancesSchedulerDeterministically(t *testing.T) {
	ipl := zeroIPL()

	run := func() (uint64, []uint32) {
		s := hardware.NewSaturn()
		require.NoError(t, s.LoadIPL(ipl))
		for i := 0; i < 3; i++ {
			s.RunFrame()
		}
		pixels, _, _ := s.GetFramebuffer()
		return s.Scheduler.Now(), append([]uint32(nil), pixels...)
	}

	cyclesA, fbA := run()
	cyclesB, fbB := run()

	require.Equal(t, cyclesA, cyclesB)
	require.Equal(t, fbA, fbB)
}

func TestFactoryResetRestoresDefaultAreaCode(t *testing.T) {
	s := hardware.NewSaturn()
	s.Config.AreaCode = 0xFF
	s.SMPC.SetAreaCode(0xFF)

	s.FactoryReset()

	require.Equal(t, s.Config.AreaCode, s.SMPC.AreaCode())
}

func TestSaveLoadStateRoundTripsWRAMAndCPURegisters(t *testing.T) {
	s := hardware.NewSaturn()
	require.NoError(t, s.LoadIPL(zeroIPL()))

	s.WRAMLow.Write32(0x10, 0xCAFEBABE)
	s.Master.Regs.R[3] = 0x1234

	var buf bytes.Buffer
	require.NoError(t, s.SaveState(&buf))

	s.WRAMLow.Write32(0x10, 0)
	s.Master.Regs.R[3] = 0

	require.NoError(t, s.LoadState(&buf))

	require.Equal(t, uint32(0xCAFEBABE), s.WRAMLow.Read32(0x10))
	require.Equal(t, uint32(0x1234), s.Master.Regs.R[3])
}
