// SPDX-License-Identifier: Unlicense OR MIT

// Package format describes texture formats: which attachment points a sized
// internal format can be rendered to and how its pixels are transferred.
package format

import "gioui.org/glsafe/gl"

// Table answers renderability and transfer questions for internal formats.
type Table interface {
	ColorRenderable(internal gl.Enum) bool
	DepthRenderable(internal gl.Enum) bool
	StencilRenderable(internal gl.Enum) bool
	// BytesPerPixel returns 0 for unknown formats.
	BytesPerPixel(internal gl.Enum) int
	// Transfer returns the format and type of client pixel data for
	// TexImage2D and ReadPixels.
	Transfer(internal gl.Enum) (format, typ gl.Enum, ok bool)
}

// Info describes one sized internal format.
type Info struct {
	Format        gl.Enum
	Type          gl.Enum
	BytesPerPixel int
	Color         bool
	Depth         bool
	Stencil       bool
}

// Map is a Table backed by a map.
type Map map[gl.Enum]Info

// Default covers the formats required by OpenGL 3.3 and OpenGL ES 3.0 for
// rendering.
var Default = Map{
	gl.R8:                 {Format: gl.RED, Type: gl.UNSIGNED_BYTE, BytesPerPixel: 1, Color: true},
	gl.RG8:                {Format: gl.RG, Type: gl.UNSIGNED_BYTE, BytesPerPixel: 2, Color: true},
	gl.RGB8:               {Format: gl.RGB, Type: gl.UNSIGNED_BYTE, BytesPerPixel: 3, Color: true},
	gl.RGBA8:              {Format: gl.RGBA, Type: gl.UNSIGNED_BYTE, BytesPerPixel: 4, Color: true},
	gl.SRGB8_ALPHA8:       {Format: gl.RGBA, Type: gl.UNSIGNED_BYTE, BytesPerPixel: 4, Color: true},
	gl.R16F:               {Format: gl.RED, Type: gl.HALF_FLOAT, BytesPerPixel: 2, Color: true},
	gl.RGBA16F:            {Format: gl.RGBA, Type: gl.HALF_FLOAT, BytesPerPixel: 8, Color: true},
	// 32-bit float formats are not color-renderable on OpenGL ES 3.0
	// without EXT_color_buffer_float.
	gl.R32F:               {Format: gl.RED, Type: gl.FLOAT, BytesPerPixel: 4},
	gl.RGBA32F:            {Format: gl.RGBA, Type: gl.FLOAT, BytesPerPixel: 16},
	gl.DEPTH_COMPONENT16:  {Format: gl.DEPTH_COMPONENT, Type: gl.UNSIGNED_SHORT, BytesPerPixel: 2, Depth: true},
	gl.DEPTH_COMPONENT24:  {Format: gl.DEPTH_COMPONENT, Type: gl.UNSIGNED_INT, BytesPerPixel: 4, Depth: true},
	gl.DEPTH_COMPONENT32F: {Format: gl.DEPTH_COMPONENT, Type: gl.FLOAT, BytesPerPixel: 4, Depth: true},
	gl.DEPTH24_STENCIL8:   {Format: gl.DEPTH_STENCIL, Type: gl.UNSIGNED_INT_24_8, BytesPerPixel: 4, Depth: true, Stencil: true},
	gl.DEPTH32F_STENCIL8:  {Format: gl.DEPTH_STENCIL, Type: gl.FLOAT_32_UNSIGNED_INT_24_8_REV, BytesPerPixel: 8, Depth: true, Stencil: true},
}

func (m Map) ColorRenderable(internal gl.Enum) bool {
	return m[internal].Color
}

func (m Map) DepthRenderable(internal gl.Enum) bool {
	return m[internal].Depth
}

func (m Map) StencilRenderable(internal gl.Enum) bool {
	return m[internal].Stencil
}

func (m Map) BytesPerPixel(internal gl.Enum) int {
	return m[internal].BytesPerPixel
}

func (m Map) Transfer(internal gl.Enum) (gl.Enum, gl.Enum, bool) {
	inf, ok := m[internal]
	return inf.Format, inf.Type, ok
}
