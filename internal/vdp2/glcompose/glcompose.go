// This file is part of saturncore; the bare-function GL texture-upload
// path (no owned window or event loop, just a backend consuming someone
// else's current GL context) follows the minimal-wrapper style the
// go-gl/gl package itself is documented for, since no pack example wires a
// GPU compositor -- front-ends that already have a window (GLFW, SDL, a
// game engine) are expected to make their context current before calling
// into this package.

// Package glcompose is a GPU-backed vdp2.FrameSink: it uploads each
// composed scanline into a texture via go-gl/gl and blits it, as the
// alternative backend to the software FrameSink for front-ends that already
// own a GL context (SPEC_FULL.md §11.3).
package glcompose

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/saturnist/corehw/internal/vdp2"
)

// Sink uploads composed rows into a single RGBA texture sized for one
// frame, replacing it wholesale on EndFrame. It does not create a window,
// a context, or issue a SwapBuffers call -- the caller's existing render
// loop owns presentation.
type Sink struct {
	width, height int
	texture       uint32
	rows          [][]uint32
}

// New creates a Sink that will (re)allocate a width x height texture the
// first time a frame is composed at that size.
func New() *Sink {
	return &Sink{}
}

// FrameSink returns the vdp2.FrameSink hooks bound to this Sink, ready to
// assign to vdp2.VDP2.Sink.
func (s *Sink) FrameSink() vdp2.FrameSink {
	return vdp2.FrameSink{
		BeginFrame: s.beginFrame,
		WriteRow:   s.writeRow,
		EndFrame:   s.endFrame,
	}
}

func (s *Sink) beginFrame(width, height int) {
	s.width, s.height = width, height
	s.rows = make([][]uint32, height)
	if s.texture == 0 {
		gl.GenTextures(1, &s.texture)
	}
}

func (s *Sink) writeRow(y int, pixels []uint32) {
	if y < 0 || y >= len(s.rows) {
		return
	}
	row := make([]uint32, len(pixels))
	copy(row, pixels)
	s.rows[y] = row
}

// endFrame packs every row into one contiguous RGBA buffer (VDP2's
// little-endian XRGB8888 reinterpreted as RGBA8 for upload, since on a
// little-endian host the byte order is already R,G,B,X) and replaces the
// texture's image.
func (s *Sink) endFrame() {
	if s.width == 0 || s.height == 0 {
		return
	}
	buf := make([]uint32, s.width*s.height)
	for y, row := range s.rows {
		copy(buf[y*s.width:], row)
	}

	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(s.width), int32(s.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(buf),
	)
}

// Texture returns the GL texture name holding the most recently composed
// frame, for the caller's own blit/quad draw.
func (s *Sink) Texture() uint32 { return s.texture }
