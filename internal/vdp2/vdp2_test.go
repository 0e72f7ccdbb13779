package vdp2_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/internal/vdp2"
)

// TestMapCRAMAddressIsBijective is spec testable property 9: the CRAM
// mode-2 address shuffle must be a bijection over [0, 0x1000).
func TestMapCRAMAddressIsBijective(t *testing.T) {
	seen := make(map[uint32]uint32, 0x1000)
	for a := uint32(0); a < 0x1000; a++ {
		mapped := vdp2.MapCRAMAddress(vdp2.CRAMMode2, a)
		require.Less(t, mapped, uint32(0x1000))
		if prior, ok := seen[mapped]; ok {
			t.Fatalf("addresses %#x and %#x both map to %#x", prior, a, mapped)
		}
		seen[mapped] = a
	}
	require.Len(t, seen, 0x1000)
}

func TestMapCRAMAddressBitLayout(t *testing.T) {
	// bit 1 of the input becomes bit 11 of the output
	require.Equal(t, uint32(1<<11), vdp2.MapCRAMAddress(vdp2.CRAMMode2, 1<<1))
	// bit 2 of the input becomes bit 1 of the output
	require.Equal(t, uint32(1<<1), vdp2.MapCRAMAddress(vdp2.CRAMMode2, 1<<2))
	// bit 0 passes through unchanged
	require.Equal(t, uint32(1), vdp2.MapCRAMAddress(vdp2.CRAMMode2, 1))
}

func TestMode0And1PassThrough(t *testing.T) {
	require.Equal(t, uint32(0x123), vdp2.MapCRAMAddress(vdp2.CRAMMode0, 0x123))
	require.Equal(t, uint32(0x123), vdp2.MapCRAMAddress(vdp2.CRAMMode1, 0x123))
}

func writePatternEntry(vram []byte, addr uint32, charNum uint32, palNum uint16) {
	entry := uint16(charNum&0x3FF) | (palNum&0xF)<<10
	vram[addr] = byte(entry >> 8)
	vram[addr+1] = byte(entry)
}

func TestNBGDirectColorScanlineMatchesSolidTile(t *testing.T) {
	v := vdp2.New(32, 16)
	v.NBG[0] = vdp2.NBG{
		Enabled:  true,
		Priority: 1,
		MapAddr:  0x0000,
		CharAddr: 0x1000,
		Format:   vdp2.FormatDirect32K,
	}
	// character 0 at map cell (0,0), a solid tile of the smallest nonzero
	// blue (blue is RGB555 bits 10-14)
	writePatternEntry(v.VRAM[:], 0, 0, 0)
	const blue = uint16(1<<10 | 0<<5 | 0) // B=1, minimal nonzero value
	for i := 0; i < 64; i++ {
		v.VRAM[0x1000+i*2] = byte(blue >> 8)
		v.VRAM[0x1000+i*2+1] = byte(blue)
	}

	row := v.Scanline(0)
	for x := 0; x < 8; x++ {
		require.NotZero(t, row[x], "pixel %d should be the solid tile colour", x)
	}
}

func TestWindowExcludesPixelsOutsideRect(t *testing.T) {
	v := vdp2.New(16, 16)
	v.BackColor = 0x112233
	v.Window0 = vdp2.Window{Enabled: true, Rect: vdp2.Rect{X0: 0, Y0: 0, X1: 3, Y1: 15}}

	row := v.Scanline(0)
	// outside the window, back colour always shows regardless of layers
	require.Equal(t, uint32(0x112233), row[10])
}

func TestSpriteLayerComposesOverBackground(t *testing.T) {
	v := vdp2.New(8, 8)
	v.Sprite = vdp2.SpriteLayer{Enabled: true, Priority: 5}
	fb := make([]uint16, 512*256)
	fb[0] = 0x7C00 // red at (0,0)
	v.SpriteFB = fb

	row := v.Scanline(0)
	require.NotZero(t, row[0])
	require.Zero(t, row[1])
}
