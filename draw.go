// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"gioui.org/glsafe/gl"
)

// Drawing issues draw calls after validating the bound state.
type Drawing struct {
	d *Device
}

func validMode(mode gl.Enum) bool {
	switch mode {
	case gl.POINTS, gl.LINES, gl.LINE_LOOP, gl.LINE_STRIP, gl.TRIANGLES, gl.TRIANGLE_STRIP, gl.TRIANGLE_FAN:
		return true
	}
	return false
}

// validate checks that a draw can proceed: a program is active, the bound
// vertex array reads from live buffers and the draw framebuffer neither
// attaches deleted textures nor a texture that is being sampled.
func (dr Drawing) validate(op string, mode gl.Enum, indexed bool) error {
	d := dr.d
	if !validMode(mode) {
		return invalidArg(op, "unknown mode %#x", mode)
	}
	if d.program.get() == nil {
		return newError(op, ErrResourceNotBound, nil, "no active program")
	}
	if err := d.vertexArray.get().validateSources(op, indexed); err != nil {
		return err
	}
	fb := d.drawFBO.get()
	if fb.isDefault {
		return nil
	}
	return d.Framebuffers().checkDrawable(op, fb)
}

func (dr Drawing) DrawArrays(mode gl.Enum, first, count int) error {
	const op = "Drawing.DrawArrays"
	if first < 0 || count < 0 {
		return invalidArg(op, "negative range")
	}
	if err := dr.validate(op, mode, false); err != nil {
		return err
	}
	dr.d.funcs.DrawArrays(mode, first, count)
	return nil
}

func validIndexType(ty gl.Enum) bool {
	return ty == gl.UNSIGNED_BYTE || ty == gl.UNSIGNED_SHORT || ty == gl.UNSIGNED_INT
}

// DrawElements draws count indices of type ty starting at byte offset in
// the index buffer of the bound vertex array.
func (dr Drawing) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) error {
	const op = "Drawing.DrawElements"
	if count < 0 || offset < 0 {
		return invalidArg(op, "negative range")
	}
	if !validIndexType(ty) {
		return invalidArg(op, "unknown index type %#x", ty)
	}
	if err := dr.validate(op, mode, true); err != nil {
		return err
	}
	dr.d.funcs.DrawElements(mode, count, ty, offset)
	return nil
}

func (dr Drawing) DrawArraysInstanced(mode gl.Enum, first, count, instances int) error {
	const op = "Drawing.DrawArraysInstanced"
	if first < 0 || count < 0 || instances < 0 {
		return invalidArg(op, "negative range")
	}
	if err := dr.validate(op, mode, false); err != nil {
		return err
	}
	dr.d.funcs.DrawArraysInstanced(mode, first, count, instances)
	return nil
}

func (dr Drawing) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) error {
	const op = "Drawing.DrawElementsInstanced"
	if count < 0 || offset < 0 || instances < 0 {
		return invalidArg(op, "negative range")
	}
	if !validIndexType(ty) {
		return invalidArg(op, "unknown index type %#x", ty)
	}
	if err := dr.validate(op, mode, true); err != nil {
		return err
	}
	dr.d.funcs.DrawElementsInstanced(mode, count, ty, offset, instances)
	return nil
}

// Clearing clears the bound draw framebuffer.
type Clearing struct {
	d *Device
}

func (c Clearing) SetColor(r, g, b, a float32) {
	c.d.state.setClearColor(c.d.funcs, r, g, b, a)
}

func (c Clearing) SetDepth(depth float32) {
	c.d.state.setClearDepth(c.d.funcs, depth)
}

func (c Clearing) SetStencil(s int) {
	c.d.state.setClearStencil(c.d.funcs, s)
}

// Clear clears the buffers selected by mask, a combination of
// COLOR_BUFFER_BIT, DEPTH_BUFFER_BIT and STENCIL_BUFFER_BIT.
func (c Clearing) Clear(mask gl.Enum) error {
	const op = "Clearing.Clear"
	d := c.d
	if mask == 0 || mask&^(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT) != 0 {
		return invalidArg(op, "invalid mask %#x", mask)
	}
	if fb := d.drawFBO.get(); !fb.isDefault {
		for _, t := range fb.textures() {
			if t.Deleted() {
				return newError(op, ErrResourceDeleted, t, "attached to %v", fb)
			}
		}
	}
	d.funcs.Clear(mask)
	return nil
}

// ClearColor sets the clear color and clears the color buffers.
func (c Clearing) ClearColor(r, g, b, a float32) error {
	c.SetColor(r, g, b, a)
	return c.Clear(gl.COLOR_BUFFER_BIT)
}
