package vdp2

// SoftwareSink is a plain in-memory FrameSink: it accumulates each composed
// frame into one packed row-major buffer, for front-ends (and the top-level
// Saturn.GetFramebuffer) that have no GPU context to hand glcompose.Sink
// instead (spec §4.10 "get_framebuffer ... little-endian XRGB8888").
type SoftwareSink struct {
	Width, Height int
	Pixels        []uint32
}

// NewSoftwareSink creates a sink ready to bind via FrameSink.
func NewSoftwareSink() *SoftwareSink {
	return &SoftwareSink{}
}

// FrameSink returns the vdp2.FrameSink hooks bound to this sink, ready to
// assign to VDP2.Sink.
func (s *SoftwareSink) FrameSink() FrameSink {
	return FrameSink{
		BeginFrame: s.beginFrame,
		WriteRow:   s.writeRow,
	}
}

func (s *SoftwareSink) beginFrame(width, height int) {
	s.Width, s.Height = width, height
	if len(s.Pixels) != width*height {
		s.Pixels = make([]uint32, width*height)
	}
}

func (s *SoftwareSink) writeRow(y int, pixels []uint32) {
	if y < 0 || y >= s.Height {
		return
	}
	copy(s.Pixels[y*s.Width:(y+1)*s.Width], pixels)
}
