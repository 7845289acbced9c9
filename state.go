// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"image"

	"gioui.org/glsafe/gl"
)

// glState mirrors the fixed-function driver state so that setters can skip
// calls that would not change it.
type glState struct {
	depthTest bool
	depthFunc gl.Enum
	depthMask bool
	stencil   struct {
		test                bool
		fn                  gl.Enum
		ref                 int
		mask                uint
		sfail, dpfail, pass gl.Enum
		writeMask           uint
	}
	blend struct {
		enable                 bool
		srcRGB, dstRGB         gl.Enum
		srcA, dstA             gl.Enum
		equationRGB, equationA gl.Enum
	}
	cull struct {
		enable bool
		face   gl.Enum
		front  gl.Enum
	}
	polygonOffset struct {
		enable        bool
		factor, units float32
	}
	scissorTest bool

	// scissor and viewport start out unknown: their initial values depend
	// on the surface the context was first made current on.
	scissor      [4]int
	scissorSet   bool
	viewport     [4]int
	viewportSet  bool
	colorMask    [4]bool
	srgb         bool
	clearColor   [4]float32
	clearDepth   float32
	clearStencil int
}

// initialState returns the driver state of a fresh context.
func initialState() glState {
	var s glState
	s.depthFunc = gl.LESS
	s.depthMask = true
	s.stencil.fn = gl.ALWAYS
	s.stencil.mask = ^uint(0)
	s.stencil.sfail, s.stencil.dpfail, s.stencil.pass = gl.KEEP, gl.KEEP, gl.KEEP
	s.stencil.writeMask = ^uint(0)
	s.blend.srcRGB, s.blend.srcA = gl.ONE, gl.ONE
	s.blend.dstRGB, s.blend.dstA = gl.ZERO, gl.ZERO
	s.blend.equationRGB, s.blend.equationA = gl.FUNC_ADD, gl.FUNC_ADD
	s.cull.face = gl.BACK
	s.cull.front = gl.CCW
	s.colorMask = [4]bool{true, true, true, true}
	s.clearDepth = 1
	return s
}

func (s *glState) set(f gl.Functions, target gl.Enum, enable bool) {
	var cur *bool
	switch target {
	case gl.FRAMEBUFFER_SRGB:
		cur = &s.srgb
	case gl.BLEND:
		cur = &s.blend.enable
	case gl.DEPTH_TEST:
		cur = &s.depthTest
	case gl.STENCIL_TEST:
		cur = &s.stencil.test
	case gl.CULL_FACE:
		cur = &s.cull.enable
	case gl.POLYGON_OFFSET_FILL:
		cur = &s.polygonOffset.enable
	case gl.SCISSOR_TEST:
		cur = &s.scissorTest
	default:
		panic("unknown enable")
	}
	if *cur == enable {
		return
	}
	*cur = enable
	if enable {
		f.Enable(target)
	} else {
		f.Disable(target)
	}
}

func (s *glState) setDepthFunc(f gl.Functions, df gl.Enum) {
	if df != s.depthFunc {
		f.DepthFunc(df)
		s.depthFunc = df
	}
}

func (s *glState) setDepthMask(f gl.Functions, enable bool) {
	if enable != s.depthMask {
		f.DepthMask(enable)
		s.depthMask = enable
	}
}

func (s *glState) setStencilFunc(f gl.Functions, fn gl.Enum, ref int, mask uint) {
	st := &s.stencil
	if fn != st.fn || ref != st.ref || mask != st.mask {
		f.StencilFunc(fn, ref, mask)
		st.fn, st.ref, st.mask = fn, ref, mask
	}
}

func (s *glState) setStencilOp(f gl.Functions, sfail, dpfail, pass gl.Enum) {
	st := &s.stencil
	if sfail != st.sfail || dpfail != st.dpfail || pass != st.pass {
		f.StencilOp(sfail, dpfail, pass)
		st.sfail, st.dpfail, st.pass = sfail, dpfail, pass
	}
}

func (s *glState) setStencilMask(f gl.Functions, mask uint) {
	if mask != s.stencil.writeMask {
		f.StencilMask(mask)
		s.stencil.writeMask = mask
	}
}

func (s *glState) setBlendFuncSeparate(f gl.Functions, srcRGB, dstRGB, srcA, dstA gl.Enum) {
	b := &s.blend
	if srcRGB != b.srcRGB || dstRGB != b.dstRGB || srcA != b.srcA || dstA != b.dstA {
		b.srcRGB = srcRGB
		b.dstRGB = dstRGB
		b.srcA = srcA
		b.dstA = dstA
		f.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
	}
}

func (s *glState) setBlendEquationSeparate(f gl.Functions, rgb, alpha gl.Enum) {
	if rgb != s.blend.equationRGB || alpha != s.blend.equationA {
		f.BlendEquationSeparate(rgb, alpha)
		s.blend.equationRGB, s.blend.equationA = rgb, alpha
	}
}

func (s *glState) setCullFace(f gl.Functions, face gl.Enum) {
	if face != s.cull.face {
		f.CullFace(face)
		s.cull.face = face
	}
}

func (s *glState) setFrontFace(f gl.Functions, mode gl.Enum) {
	if mode != s.cull.front {
		f.FrontFace(mode)
		s.cull.front = mode
	}
}

func (s *glState) setPolygonOffset(f gl.Functions, factor, units float32) {
	po := &s.polygonOffset
	if factor != po.factor || units != po.units {
		f.PolygonOffset(factor, units)
		po.factor, po.units = factor, units
	}
}

func (s *glState) setScissor(f gl.Functions, x, y, width, height int) {
	box := [4]int{x, y, width, height}
	if !s.scissorSet || box != s.scissor {
		f.Scissor(x, y, width, height)
		s.scissor = box
		s.scissorSet = true
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if !s.viewportSet || view != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = view
		s.viewportSet = true
	}
}

func (s *glState) setColorMask(f gl.Functions, r, g, b, a bool) {
	m := [4]bool{r, g, b, a}
	if m != s.colorMask {
		f.ColorMask(r, g, b, a)
		s.colorMask = m
	}
}

func (s *glState) setClearColor(f gl.Functions, r, g, b, a float32) {
	col := [4]float32{r, g, b, a}
	if col != s.clearColor {
		f.ClearColor(r, g, b, a)
		s.clearColor = col
	}
}

func (s *glState) setClearDepth(f gl.Functions, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setClearStencil(f gl.Functions, v int) {
	if v != s.clearStencil {
		f.ClearStencil(v)
		s.clearStencil = v
	}
}

// State sets fixed-function state. Setting a value equal to the current
// one issues no driver call.
type State struct {
	d *Device
}

func validCompare(fn gl.Enum) bool {
	switch fn {
	case gl.NEVER, gl.LESS, gl.EQUAL, gl.LEQUAL, gl.GREATER, gl.NOTEQUAL, gl.GEQUAL, gl.ALWAYS:
		return true
	}
	return false
}

func validStencilOp(op gl.Enum) bool {
	switch op {
	case gl.KEEP, gl.ZERO, gl.REPLACE, gl.INCR, gl.INCR_WRAP, gl.DECR, gl.DECR_WRAP, gl.INVERT:
		return true
	}
	return false
}

func validBlendFactor(f gl.Enum) bool {
	switch f {
	case gl.ZERO, gl.ONE, gl.SRC_COLOR, gl.ONE_MINUS_SRC_COLOR, gl.DST_COLOR, gl.ONE_MINUS_DST_COLOR,
		gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.DST_ALPHA, gl.ONE_MINUS_DST_ALPHA:
		return true
	}
	return false
}

func validBlendEquation(e gl.Enum) bool {
	switch e {
	case gl.FUNC_ADD, gl.FUNC_SUBTRACT, gl.FUNC_REVERSE_SUBTRACT, gl.MIN, gl.MAX:
		return true
	}
	return false
}

func (s State) SetDepthTest(enable bool) {
	s.d.state.set(s.d.funcs, gl.DEPTH_TEST, enable)
}

func (s State) SetDepthFunc(fn gl.Enum) error {
	if !validCompare(fn) {
		return invalidArg("State.SetDepthFunc", "unknown function %#x", fn)
	}
	s.d.state.setDepthFunc(s.d.funcs, fn)
	return nil
}

func (s State) SetDepthMask(enable bool) {
	s.d.state.setDepthMask(s.d.funcs, enable)
}

func (s State) SetStencilTest(enable bool) {
	s.d.state.set(s.d.funcs, gl.STENCIL_TEST, enable)
}

func (s State) SetStencilFunc(fn gl.Enum, ref int, mask uint) error {
	if !validCompare(fn) {
		return invalidArg("State.SetStencilFunc", "unknown function %#x", fn)
	}
	s.d.state.setStencilFunc(s.d.funcs, fn, ref, mask)
	return nil
}

func (s State) SetStencilOp(sfail, dpfail, dppass gl.Enum) error {
	if !validStencilOp(sfail) || !validStencilOp(dpfail) || !validStencilOp(dppass) {
		return invalidArg("State.SetStencilOp", "unknown operation")
	}
	s.d.state.setStencilOp(s.d.funcs, sfail, dpfail, dppass)
	return nil
}

func (s State) SetStencilMask(mask uint) {
	s.d.state.setStencilMask(s.d.funcs, mask)
}

func (s State) SetBlend(enable bool) {
	s.d.state.set(s.d.funcs, gl.BLEND, enable)
}

// SetBlendFunc sets separate color and alpha blend factors.
func (s State) SetBlendFunc(srcRGB, dstRGB, srcA, dstA gl.Enum) error {
	for _, f := range []gl.Enum{srcRGB, dstRGB, srcA, dstA} {
		if !validBlendFactor(f) {
			return invalidArg("State.SetBlendFunc", "unknown factor %#x", f)
		}
	}
	s.d.state.setBlendFuncSeparate(s.d.funcs, srcRGB, dstRGB, srcA, dstA)
	return nil
}

func (s State) SetBlendEquation(rgb, alpha gl.Enum) error {
	if !validBlendEquation(rgb) || !validBlendEquation(alpha) {
		return invalidArg("State.SetBlendEquation", "unknown equation")
	}
	s.d.state.setBlendEquationSeparate(s.d.funcs, rgb, alpha)
	return nil
}

func (s State) SetCull(enable bool) {
	s.d.state.set(s.d.funcs, gl.CULL_FACE, enable)
}

// SetCullFace selects FRONT, BACK or FRONT_AND_BACK faces for culling.
func (s State) SetCullFace(face gl.Enum) error {
	switch face {
	case gl.FRONT, gl.BACK, gl.FRONT_AND_BACK:
	default:
		return invalidArg("State.SetCullFace", "unknown face %#x", face)
	}
	s.d.state.setCullFace(s.d.funcs, face)
	return nil
}

// SetFrontFace sets the winding of front faces, CW or CCW.
func (s State) SetFrontFace(mode gl.Enum) error {
	if mode != gl.CW && mode != gl.CCW {
		return invalidArg("State.SetFrontFace", "unknown winding %#x", mode)
	}
	s.d.state.setFrontFace(s.d.funcs, mode)
	return nil
}

// SetPolygonOffset enables or disables depth offsetting of filled polygons.
// factor and units are ignored when disabling.
func (s State) SetPolygonOffset(enable bool, factor, units float32) {
	s.d.state.set(s.d.funcs, gl.POLYGON_OFFSET_FILL, enable)
	if enable {
		s.d.state.setPolygonOffset(s.d.funcs, factor, units)
	}
}

func (s State) SetScissorTest(enable bool) {
	s.d.state.set(s.d.funcs, gl.SCISSOR_TEST, enable)
}

func (s State) SetScissor(r image.Rectangle) error {
	if r.Dx() < 0 || r.Dy() < 0 || r != r.Canon() {
		return invalidArg("State.SetScissor", "malformed rectangle %v", r)
	}
	s.d.state.setScissor(s.d.funcs, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	return nil
}

func (s State) SetViewport(r image.Rectangle) error {
	if r.Empty() {
		return invalidArg("State.SetViewport", "empty rectangle %v", r)
	}
	s.d.state.setViewport(s.d.funcs, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	return nil
}

func (s State) SetColorMask(r, g, b, a bool) {
	s.d.state.setColorMask(s.d.funcs, r, g, b, a)
}

// SetSRGB enables or disables sRGB encoding of writes to sRGB attachments.
func (s State) SetSRGB(enable bool) {
	s.d.state.set(s.d.funcs, gl.FRAMEBUFFER_SRGB, enable)
}
