package vdp1

// LinkType selects how the command-list interpreter advances after
// processing a command (spec §4.8 "link types (next, jump, assign, call,
// return)").
type LinkType uint8

const (
	LinkNext   LinkType = iota // continue to the next 32-byte command
	LinkJump                   // jump to CMDLINK unconditionally
	LinkAssign                 // set the return-from-call address to CMDLINK without jumping
	LinkCall                   // push the next command's address, then jump to CMDLINK
	LinkReturn                 // pop the call stack, or end the list if empty
)

// CommandType is CMDCTRL's command-type field (spec §4.8 "command types").
type CommandType uint16

const (
	CmdNormalSprite    CommandType = 0x0000
	CmdScaledSprite    CommandType = 0x0001
	CmdDistortedSprite CommandType = 0x0002
	CmdPolygon         CommandType = 0x0004
	CmdPolylines       CommandType = 0x0005
	CmdLine            CommandType = 0x0006
	CmdUserClip        CommandType = 0x0008
	CmdSystemClip      CommandType = 0x0009
	CmdLocalCoord      CommandType = 0x000A
)

// Draw-mode (CMDPMOD) bits this module interprets; the rest of the real
// register's bits (MSBON, high-speed shrink, end-code control) have no
// effect on a from-scratch core with no legacy ROM depending on them.
const (
	PModGouraud     = 1 << 2
	PModMeshEnable  = 1 << 3
	PModTransparent = 1 << 6 // "transparent pixel disable" cleared = opaque
)

const commandSize = 32 // bytes per command-list entry

// Command is one decoded 32-byte VDP1 command-list entry.
type Command struct {
	Link LinkType
	End  bool

	Type CommandType
	Mode uint16
	Colr uint16

	CharAddr uint32 // VRAM byte offset of character (texture) data
	CharW    int
	CharH    int

	V0, V1, V2, V3 Vertex // CMDXA/YA .. CMDXD/YD, in local coordinates

	GouraudAddr uint32

	linkAddr uint32
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }

// DecodeCommand parses the 32 bytes at vram[addr:addr+32] into a Command.
func DecodeCommand(vram []byte, addr uint32) Command {
	w := func(word int) uint16 { return be16(vram[addr+uint32(word*2):]) }
	signed := func(word int) int { return int(int16(w(word))) }

	ctrl := w(0)
	var c Command
	c.Link = LinkType(ctrl & 0x7)
	c.End = ctrl&0x8000 != 0
	c.linkAddr = uint32(w(1)) * 2
	c.Type = CommandType(w(2) & 0x000F)
	c.Mode = w(3)
	c.Colr = w(4)
	c.CharAddr = uint32(w(5)) * 8
	size := w(6)
	c.CharW = int(size & 0xFF)
	c.CharH = int(size >> 8)
	c.V0 = Vertex{signed(7), signed(8)}
	c.V1 = Vertex{signed(9), signed(10)}
	c.V2 = Vertex{signed(11), signed(12)}
	c.V3 = Vertex{signed(13), signed(14)}
	c.GouraudAddr = uint32(w(15)) * 8
	return c
}
