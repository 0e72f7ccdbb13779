package vdp1_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saturnist/corehw/internal/vdp1"
)

func writeCommand(vram []byte, addr uint32, c vdp1.Command) {
	put := func(word int, v uint16) {
		vram[addr+uint32(word*2)] = byte(v >> 8)
		vram[addr+uint32(word*2)+1] = byte(v)
	}
	ctrl := uint16(c.Link)
	if c.End {
		ctrl |= 0x8000
	}
	put(0, ctrl)
	put(1, 0)
	put(2, uint16(c.Type))
	put(3, c.Mode)
	put(4, c.Colr)
	put(5, uint16(c.CharAddr/8))
	put(6, uint16(c.CharH)<<8|uint16(c.CharW))
	put(7, uint16(int16(c.V0.X)))
	put(8, uint16(int16(c.V0.Y)))
	put(9, uint16(int16(c.V1.X)))
	put(10, uint16(int16(c.V1.Y)))
	put(11, uint16(int16(c.V2.X)))
	put(12, uint16(int16(c.V2.Y)))
	put(13, uint16(int16(c.V3.X)))
	put(14, uint16(int16(c.V3.Y)))
	put(15, 0)
}

// TestDrawDistortedSpriteUnitSquare is spec scenario S5: a DrawDistortedSprite
// with 4 in-bounds vertices forming a unit square, a 16x16 RGB555 texture of
// solid colour 0x7C00 (red), opaque draw mode, must produce exactly 256 red
// pixels at the expected coordinates.
func TestDrawDistortedSpriteUnitSquare(t *testing.T) {
	v := vdp1.New()

	const texAddr = 0x1000
	for i := 0; i < 16*16; i++ {
		v.VRAM[texAddr+i*2] = 0x7C
		v.VRAM[texAddr+i*2+1] = 0x00
	}

	writeCommand(v.VRAM[:], 0, vdp1.Command{
		End:      true,
		Type:     vdp1.CmdDistortedSprite,
		Mode:     0, // opaque, no gouraud
		Colr:     0x7C00,
		CharAddr: texAddr,
		CharW:    16,
		CharH:    16,
		V0:       vdp1.Vertex{X: 0, Y: 0},
		V1:       vdp1.Vertex{X: 15, Y: 0},
		V2:       vdp1.Vertex{X: 15, Y: 15},
		V3:       vdp1.Vertex{X: 0, Y: 15},
	})

	v.RunCommandList()

	buf := v.DisplayBuffer()
	// drawing always targets the non-displayed buffer; flip once to see it.
	v.VBlankOut(true)
	buf = v.DisplayBuffer()

	count := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, uint16(0x7C00), buf[y*vdp1.FBWidth+x], "pixel (%d,%d)", x, y)
			count++
		}
	}
	require.Equal(t, 256, count)

	// nothing outside the unit square was touched
	require.Zero(t, buf[16*vdp1.FBWidth+0])
	require.Zero(t, buf[0*vdp1.FBWidth+16])
}

func TestSystemClipRejectsFullyOffscreenQuad(t *testing.T) {
	v := vdp1.New()
	v.SystemClip = vdp1.Rect{X0: 0, Y0: 0, X1: 63, Y1: 63}

	writeCommand(v.VRAM[:], 0, vdp1.Command{
		End:  true,
		Type: vdp1.CmdPolygon,
		Colr: 0x03E0, // green
		V0:   vdp1.Vertex{X: 200, Y: 200},
		V1:   vdp1.Vertex{X: 210, Y: 200},
		V2:   vdp1.Vertex{X: 210, Y: 210},
		V3:   vdp1.Vertex{X: 200, Y: 210},
	})

	v.RunCommandList()
	v.VBlankOut(true)
	buf := v.DisplayBuffer()
	for _, px := range buf {
		require.Zero(t, px)
	}
}

func TestEraseAppliesAtVBlankNotImmediately(t *testing.T) {
	v := vdp1.New()

	v.ScheduleErase(0x1234, vdp1.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1})
	// not yet applied to anything visible
	require.Zero(t, v.DisplayBuffer()[0])

	// erase lands in the non-displayed buffer at the first VBlankOut...
	v.VBlankOut(true)
	require.Zero(t, v.DisplayBuffer()[0])

	// ...and becomes visible once that buffer is swapped back in.
	v.VBlankOut(true)
	require.Equal(t, uint16(0x1234), v.DisplayBuffer()[0])
}

func TestLinkJump(t *testing.T) {
	v := vdp1.New()

	// command 0: jump to command at offset 64
	writeCommand(v.VRAM[:], 0, vdp1.Command{
		Link: vdp1.LinkJump,
		Type: vdp1.CmdLocalCoord,
		V0:   vdp1.Vertex{X: 5, Y: 7},
	})
	v.VRAM[2] = 0 // CMDLINK high byte
	v.VRAM[3] = 32 // CMDLINK low byte -> word offset 32 -> byte addr 64
	// command at byte 64: end
	writeCommand(v.VRAM[:], 64, vdp1.Command{
		End:  true,
		Type: vdp1.CmdLocalCoord,
		V0:   vdp1.Vertex{X: 9, Y: 9},
	})

	v.RunCommandList()
	require.Equal(t, 9, v.LocalCoord.X)
}
