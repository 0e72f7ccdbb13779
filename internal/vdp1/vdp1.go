package vdp1

import "github.com/saturnist/corehw/logger"

// VRAMSize and framebuffer dimensions match the real chip (spec §4.8: "VRAM
// 512KB, two 256KB sprite framebuffers").
const (
	VRAMSize = 512 * 1024

	FBWidth  = 512
	FBHeight = 256
)

// externalWritePenalty is the heuristic extra-cycle cost charged to a CPU
// write that lands in VDP1 VRAM while a command list may be running (spec
// §4.8 "VDP1 timing penalty ... the exact constant is an Open Question").
// This value is not derived from a timing analysis; it exists so the cost
// model has *a* number rather than none, and is expected to be tuned
// against real hardware captures later.
const externalWritePenalty = 22

// Rect is an inclusive clip rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// contains reports whether (x,y) falls within r, padded by one pixel on
// every edge (spec §4.8 "clipping ... with 1px padding").
func (r Rect) contains(x, y int) bool {
	return x >= r.X0-1 && x <= r.X1+1 && y >= r.Y0-1 && y <= r.Y1+1
}

// intersects reports whether r and bbox overlap at all, used for the
// fast-reject of fully off-screen primitives before rasterizing them.
func (r Rect) intersects(bbox Rect) bool {
	return bbox.X1 >= r.X0-1 && bbox.X0 <= r.X1+1 && bbox.Y1 >= r.Y0-1 && bbox.Y0 <= r.Y1+1
}

// VDP1 is the sprite/polygon processor (spec §2.9, §4.8).
type VDP1 struct {
	VRAM [VRAMSize]byte

	framebuffers [2][FBWidth * FBHeight]uint16
	meshbuffers  [2][FBWidth * FBHeight]uint16 // transparent-mesh compositing plane
	displayFB    int

	CommandListAddr uint32

	SystemClip Rect
	UserClip   Rect
	UserClipOn bool
	LocalCoord Vertex

	eraseScheduledVBlank bool
	eraseRect            Rect
	eraseValue           uint16

	TransparentMeshes bool

	CyclesSpent uint64

	// Profiler, if non-nil, is called once per processed command with the
	// command's type and the cycle cost charged to it (spec §12
	// "vdp1.Profiler hook").
	Profiler func(cmd CommandType, cycles uint64)
}

// New creates a VDP1 with a full-framebuffer system clip rectangle and an
// empty command list.
func New() *VDP1 {
	v := &VDP1{}
	v.SystemClip = Rect{0, 0, FBWidth - 1, FBHeight - 1}
	return v
}

// WriteVRAM16 performs an external (CPU/SCU-initiated) 16-bit VRAM write,
// charging the heuristic timing penalty.
func (v *VDP1) WriteVRAM16(addr uint32, val uint16) {
	addr &^= 1
	if int(addr)+1 < VRAMSize {
		v.VRAM[addr] = uint8(val >> 8)
		v.VRAM[addr+1] = uint8(val)
	}
	v.CyclesSpent += externalWritePenalty
}

// ReadVRAM16 reads back a 16-bit VRAM word.
func (v *VDP1) ReadVRAM16(addr uint32) uint16 {
	addr &^= 1
	if int(addr)+1 >= VRAMSize {
		return 0
	}
	return uint16(v.VRAM[addr])<<8 | uint16(v.VRAM[addr+1])
}

// drawBuffer returns the framebuffer currently being drawn into: always the
// one not presently displayed (spec §4.8 "drawing always targets the
// non-displayed framebuffer").
func (v *VDP1) drawBuffer() *[FBWidth * FBHeight]uint16 {
	return &v.framebuffers[1-v.displayFB]
}

// DisplayBuffer returns the framebuffer currently selected for display.
func (v *VDP1) DisplayBuffer() *[FBWidth * FBHeight]uint16 {
	return &v.framebuffers[v.displayFB]
}

// ScheduleErase latches an erase (value, rect) to be applied at the next
// VBlankOut (spec §4.8 "erase params ... latched and applied at VBLANK").
func (v *VDP1) ScheduleErase(value uint16, rect Rect) {
	v.eraseScheduledVBlank = true
	v.eraseValue = value
	v.eraseRect = rect
}

// VBlankOut swaps the displayed/drawn framebuffers when changeFramebuffer is
// set, then applies any latched erase to the newly-selected draw buffer
// (spec §4.8 "two sprite framebuffers, swapped per VBLANK-OUT on 'framebuffer
// change' bit").
func (v *VDP1) VBlankOut(changeFramebuffer bool) {
	if changeFramebuffer {
		v.displayFB = 1 - v.displayFB
	}
	if v.eraseScheduledVBlank {
		buf := v.drawBuffer()
		for y := v.eraseRect.Y0; y <= v.eraseRect.Y1; y++ {
			for x := v.eraseRect.X0; x <= v.eraseRect.X1; x++ {
				if x >= 0 && x < FBWidth && y >= 0 && y < FBHeight {
					buf[y*FBWidth+x] = v.eraseValue
				}
			}
		}
		v.eraseScheduledVBlank = false
	}
}

const maxCommands = 1 << 16 // runaway-list safety net; real lists never approach this

// RunCommandList interprets the command list starting at CommandListAddr
// until a LinkReturn with an empty call stack, an End-flagged command, or
// the safety limit is reached (spec §4.8).
func (v *VDP1) RunCommandList() {
	addr := v.CommandListAddr
	var callStack []uint32
	v.LocalCoord = Vertex{}
	v.UserClipOn = false

	for i := 0; i < maxCommands; i++ {
		if int(addr)+commandSize > VRAMSize {
			break
		}
		cmd := DecodeCommand(v.VRAM[:], addr)

		cost := v.processCommand(cmd)
		v.CyclesSpent += cost
		if v.Profiler != nil {
			v.Profiler(cmd.Type, cost)
		}

		if cmd.End {
			break
		}

		switch cmd.Link {
		case LinkJump:
			addr = cmd.linkAddr
			continue
		case LinkCall:
			callStack = append(callStack, addr+commandSize)
			addr = cmd.linkAddr
			continue
		case LinkReturn:
			if len(callStack) == 0 {
				return
			}
			addr = callStack[len(callStack)-1]
			callStack = callStack[:len(callStack)-1]
			continue
		case LinkAssign:
			// sets up a future return target without jumping now; this core
			// has no software that relies on it, so it's a no-op beyond
			// advancing linearly.
			fallthrough
		default:
			addr += commandSize
		}
	}
}

func (v *VDP1) offset(p Vertex) Vertex {
	return Vertex{p.X + v.LocalCoord.X, p.Y + v.LocalCoord.Y}
}

func (v *VDP1) processCommand(cmd Command) uint64 {
	switch cmd.Type {
	case CmdSystemClip:
		p := v.offset(cmd.V2)
		v.SystemClip = Rect{0, 0, p.X, p.Y}
		return 4
	case CmdUserClip:
		a, c := v.offset(cmd.V0), v.offset(cmd.V2)
		v.UserClip = Rect{a.X, a.Y, c.X, c.Y}
		v.UserClipOn = true
		return 4
	case CmdLocalCoord:
		v.LocalCoord = cmd.V0
		return 4
	case CmdNormalSprite:
		v.drawSprite(cmd, false)
		return uint64(cmd.CharW * cmd.CharH)
	case CmdScaledSprite:
		v.drawSprite(cmd, true)
		return uint64(cmd.CharW * cmd.CharH)
	case CmdDistortedSprite:
		v.drawQuad(cmd, true)
		return uint64(cmd.CharW * cmd.CharH)
	case CmdPolygon:
		v.drawQuad(cmd, false)
		return 16
	case CmdPolylines:
		v.drawPolyline(cmd, true)
		return 8
	case CmdLine:
		v.drawPolyline(cmd, false)
		return 8
	default:
		return 2
	}
}

func (v *VDP1) clipRect() Rect {
	r := v.SystemClip
	if v.UserClipOn {
		r = v.UserClip
	}
	return r
}

func quadBBox(v0, v1, v2, v3 Vertex) Rect {
	xs := []int{v0.X, v1.X, v2.X, v3.X}
	ys := []int{v0.Y, v1.Y, v2.Y, v3.Y}
	r := Rect{xs[0], ys[0], xs[0], ys[0]}
	for i := 1; i < 4; i++ {
		if xs[i] < r.X0 {
			r.X0 = xs[i]
		}
		if xs[i] > r.X1 {
			r.X1 = xs[i]
		}
		if ys[i] < r.Y0 {
			r.Y0 = ys[i]
		}
		if ys[i] > r.Y1 {
			r.Y1 = ys[i]
		}
	}
	return r
}

// drawSprite handles DrawNormalSprite/DrawScaledSprite by synthesizing a
// quad from a single anchor vertex plus character size (normal) or two
// opposite corners (scaled), then delegating to the same quad rasterizer
// DrawDistortedSprite uses.
func (v *VDP1) drawSprite(cmd Command, scaled bool) {
	a := v.offset(cmd.V0)
	var v0, v1, v2, v3 Vertex
	if scaled {
		c := v.offset(cmd.V2)
		v0 = a
		v1 = Vertex{c.X, a.Y}
		v2 = c
		v3 = Vertex{a.X, c.Y}
	} else {
		v0 = a
		v1 = Vertex{a.X + cmd.CharW - 1, a.Y}
		v2 = Vertex{a.X + cmd.CharW - 1, a.Y + cmd.CharH - 1}
		v3 = Vertex{a.X, a.Y + cmd.CharH - 1}
	}
	v.rasterizeQuad(cmd, v0, v1, v2, v3, true)
}

func (v *VDP1) drawQuad(cmd Command, textured bool) {
	v0, v1, v2, v3 := v.offset(cmd.V0), v.offset(cmd.V1), v.offset(cmd.V2), v.offset(cmd.V3)
	v.rasterizeQuad(cmd, v0, v1, v2, v3, textured)
}

func (v *VDP1) rasterizeQuad(cmd Command, v0, v1, v2, v3 Vertex, textured bool) {
	clip := v.clipRect()
	bbox := quadBBox(v0, v1, v2, v3)
	if !clip.intersects(bbox) {
		logger.Logf(logger.Groups.VDP1, "vdp1", "quad bbox %+v fully outside clip %+v, skipped", bbox, clip)
		return
	}

	opaque := cmd.Mode&PModTransparent == 0
	gouraud := cmd.Mode&PModGouraud != 0
	mesh := cmd.Mode&PModMeshEnable != 0 && v.TransparentMeshes

	buf := v.drawBuffer()
	qs := NewQuadStepper(v0, v1, v2, v3)
	var tex *TextureStepper
	if textured {
		tex = NewTextureStepper(cmd.CharH, qs.Rows)
	}
	for !qs.Done() {
		y, xL, xR := qs.Row()
		width := xR - xL + 1
		if width > 0 {
			texRow := 0
			if tex != nil {
				texRow = tex.Index()
			}

			var gr *GouraudStepper
			if gouraud && !textured {
				gr = NewGouraudStepper(decodeColr(cmd.Colr), decodeColr(cmd.Colr), width)
			}

			xstep := NewTextureStepper(cmd.CharW, width)
			for x := xL; x <= xR; x++ {
				inBounds := x >= 0 && x < FBWidth && y >= 0 && y < FBHeight
				if clip.contains(x, y) && inBounds {
					var color uint16
					if textured {
						color = v.fetchTexel(cmd.CharAddr, cmd.CharW, xstep.Index(), texRow)
					} else if gr != nil {
						r, g, b := gr.RGB()
						color = packRGB555(r, g, b)
					} else {
						color = cmd.Colr
					}
					if opaque || color != 0 {
						if mesh && (x+y)%2 == 0 {
							v.meshbuffers[1-v.displayFB][y*FBWidth+x] = color
						} else {
							buf[y*FBWidth+x] = color
						}
					}
				}
				xstep.Next()
				if gr != nil {
					gr.Next()
				}
			}
		}
		if tex != nil {
			tex.Next()
		}
		qs.Next()
	}
}

func (v *VDP1) fetchTexel(charAddr uint32, width, col, row int) uint16 {
	if width <= 0 {
		width = 1
	}
	off := charAddr + uint32((row*width+col)*2)
	if int(off)+1 >= VRAMSize {
		return 0
	}
	return uint16(v.VRAM[off])<<8 | uint16(v.VRAM[off+1])
}

func decodeColr(colr uint16) [3]int {
	r := int(colr & 0x1F)
	g := int((colr >> 5) & 0x1F)
	b := int((colr >> 10) & 0x1F)
	return [3]int{r, g, b}
}

func packRGB555(r, g, b int) uint16 {
	return uint16(r&0x1F) | uint16(g&0x1F)<<5 | uint16(b&0x1F)<<10
}

func (v *VDP1) drawPolyline(cmd Command, quad bool) {
	clip := v.clipRect()
	buf := v.drawBuffer()
	color := cmd.Colr

	segment := func(a, b Vertex) {
		bbox := Rect{min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X), max(a.Y, b.Y)}
		if !clip.intersects(bbox) {
			return
		}
		ls := NewLineStepper(a.X, a.Y, b.X, b.Y)
		for {
			x, y := ls.Point()
			if clip.contains(x, y) && x >= 0 && x < FBWidth && y >= 0 && y < FBHeight {
				buf[y*FBWidth+x] = color
			}
			if ls.Done() {
				break
			}
			ls.Next()
		}
	}

	a, b := v.offset(cmd.V0), v.offset(cmd.V1)
	segment(a, b)
	if quad {
		c, d := v.offset(cmd.V2), v.offset(cmd.V3)
		segment(b, c)
		segment(c, d)
		segment(d, a)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
