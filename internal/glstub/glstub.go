// SPDX-License-Identifier: Unlicense OR MIT

// Package glstub provides an in-memory gl.Functions for tests. It counts
// every driver call by name and models just enough driver state to answer
// completeness, compile and query requests.
package glstub

import (
	"gioui.org/glsafe/gl"
)

// Functions is a fake driver. The zero value is not usable; use New.
type Functions struct {
	// Limits answers GetInteger.
	Limits  map[gl.Enum]int
	Version string
	// FailCompile and FailLink make the next compile or link report failure.
	FailCompile bool
	FailLink    bool
	// QueryResult is the elapsed nanoseconds reported by every query,
	// 1500 if zero.
	QueryResult uint64

	calls   map[string]int
	order   []string
	next    uint
	pending []gl.Enum
	inject  map[string]gl.Enum

	drawFBO  uint
	readFBO  uint
	fbos     map[uint]*framebuffer
	textures map[uint]*texture
	buffers  map[uint]int
	unit     int
	bound    map[[2]uint]uint
	uniforms map[string]int

	// Uniforms records the last value uploaded per uniform location.
	Uniforms map[int][]float32
}

type framebuffer struct {
	attachments map[gl.Enum]uint
	drawBuffers []gl.Enum
}

type texture struct {
	target  gl.Enum
	defined bool
}

var _ gl.Functions = (*Functions)(nil)

// Compliant lists device limits that satisfy every minimum.
func Compliant() map[gl.Enum]int {
	return map[gl.Enum]int{
		gl.MAX_VERTEX_ATTRIBS:               16,
		gl.MAX_DRAW_BUFFERS:                 8,
		gl.MAX_COLOR_ATTACHMENTS:            8,
		gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 32,
		gl.MAX_TEXTURE_SIZE:                 4096,
		gl.MAX_CUBE_MAP_TEXTURE_SIZE:        4096,
	}
}

// New returns a stub reporting compliant limits and a 3.3 core version.
func New() *Functions {
	return &Functions{
		Limits:   Compliant(),
		Version:  "3.3 (Core Profile) glstub",
		calls:    make(map[string]int),
		inject:   make(map[string]gl.Enum),
		fbos:     make(map[uint]*framebuffer),
		textures: make(map[uint]*texture),
		buffers:  make(map[uint]int),
		bound:    make(map[[2]uint]uint),
		uniforms: make(map[string]int),
		Uniforms: make(map[int][]float32),
	}
}

// Calls returns the number of times the named method was called.
func (f *Functions) Calls(name string) int {
	return f.calls[name]
}

// Order returns the names of all calls in order since the last Reset.
func (f *Functions) Order() []string {
	return append([]string(nil), f.order...)
}

// Reset clears the call counters. Modelled driver state is kept.
func (f *Functions) Reset() {
	f.calls = make(map[string]int)
	f.order = nil
}

// FailOn makes the next call to the named method raise err through GetError.
func (f *Functions) FailOn(name string, err gl.Enum) {
	f.inject[name] = err
}

// Live reports whether a texture or framebuffer handle has been created and
// not yet deleted.
func (f *Functions) Live(h uint) bool {
	_, tex := f.textures[h]
	_, fbo := f.fbos[h]
	return tex || fbo
}

func (f *Functions) record(name string) {
	f.calls[name]++
	f.order = append(f.order, name)
	if err, ok := f.inject[name]; ok {
		delete(f.inject, name)
		f.pending = append(f.pending, err)
	}
}

func (f *Functions) handle() uint {
	f.next++
	return f.next
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.record("GetInteger")
	return f.Limits[pname]
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.record("GetString")
	if pname == gl.VERSION {
		return f.Version
	}
	return ""
}

func (f *Functions) GetError() gl.Enum {
	f.record("GetError")
	if len(f.pending) == 0 {
		return gl.NO_ERROR
	}
	err := f.pending[0]
	f.pending = f.pending[1:]
	return err
}

func (f *Functions) Flush() { f.record("Flush") }

func (f *Functions) CreateBuffer() gl.Buffer {
	f.record("CreateBuffer")
	h := f.handle()
	f.buffers[h] = 0
	return gl.Buffer{V: h}
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.record("DeleteBuffer")
	delete(f.buffers, b.V)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer")
	f.bound[[2]uint{uint(target), 0}] = b.V
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.record("BufferData")
	f.buffers[f.bound[[2]uint{uint(target), 0}]] = size
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData")
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	f.record("CreateVertexArray")
	return gl.VertexArray{V: f.handle()}
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) { f.record("DeleteVertexArray") }
func (f *Functions) BindVertexArray(a gl.VertexArray)   { f.record("BindVertexArray") }

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray")
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	f.record("DisableVertexAttribArray")
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer")
}

func (f *Functions) VertexAttribIPointer(dst gl.Attrib, size int, ty gl.Enum, stride, offset int) {
	f.record("VertexAttribIPointer")
}

func (f *Functions) VertexAttribDivisor(dst gl.Attrib, divisor int) {
	f.record("VertexAttribDivisor")
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	f.record("CreateFramebuffer")
	h := f.handle()
	f.fbos[h] = &framebuffer{
		attachments: make(map[gl.Enum]uint),
		drawBuffers: []gl.Enum{gl.COLOR_ATTACHMENT0},
	}
	return gl.Framebuffer{V: h}
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.record("DeleteFramebuffer")
	delete(f.fbos, fb.V)
	if f.drawFBO == fb.V {
		f.drawFBO = 0
	}
	if f.readFBO == fb.V {
		f.readFBO = 0
	}
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer")
	switch target {
	case gl.FRAMEBUFFER:
		f.drawFBO, f.readFBO = fb.V, fb.V
	case gl.DRAW_FRAMEBUFFER:
		f.drawFBO = fb.V
	case gl.READ_FRAMEBUFFER:
		f.readFBO = fb.V
	}
}

func (f *Functions) target(target gl.Enum) *framebuffer {
	h := f.drawFBO
	if target == gl.READ_FRAMEBUFFER {
		h = f.readFBO
	}
	return f.fbos[h]
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D")
	if fb := f.target(target); fb != nil {
		if t.V == 0 {
			delete(fb.attachments, attachment)
		} else {
			fb.attachments[attachment] = t.V
		}
	}
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus")
	fb := f.target(target)
	if fb == nil {
		return gl.FRAMEBUFFER_COMPLETE
	}
	if len(fb.attachments) == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACH
	}
	for _, h := range fb.attachments {
		if tex, ok := f.textures[h]; !ok || !tex.defined {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
	}
	for _, b := range fb.drawBuffers {
		if b == gl.NONE {
			continue
		}
		if _, ok := fb.attachments[b]; !ok {
			return gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {
	f.record("DrawBuffers")
	if fb := f.fbos[f.drawFBO]; fb != nil {
		fb.drawBuffers = append([]gl.Enum(nil), bufs...)
	}
}

func (f *Functions) ReadBuffer(src gl.Enum) { f.record("ReadBuffer") }

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask gl.Enum, filter gl.Enum) {
	f.record("BlitFramebuffer")
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("ReadPixels")
	// Row y is filled with the value y so that orientation is observable.
	stride := width * 4
	for row := 0; row < height && (row+1)*stride <= len(data); row++ {
		for i := row * stride; i < (row+1)*stride; i++ {
			data[i] = byte(row)
		}
	}
}

func (f *Functions) CreateTexture() gl.Texture {
	f.record("CreateTexture")
	h := f.handle()
	f.textures[h] = &texture{}
	return gl.Texture{V: h}
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.record("DeleteTexture")
	delete(f.textures, t.V)
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	f.record("ActiveTexture")
	f.unit = int(unit - gl.TEXTURE0)
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture")
	f.bound[[2]uint{uint(target), uint(f.unit) + 1}] = t.V
	if tex, ok := f.textures[t.V]; ok {
		tex.target = target
	}
}

func (f *Functions) boundTexture(target gl.Enum) *texture {
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z {
		target = gl.TEXTURE_CUBE_MAP
	}
	return f.textures[f.bound[[2]uint{uint(target), uint(f.unit) + 1}]]
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexImage2D")
	if tex := f.boundTexture(target); tex != nil {
		tex.defined = true
	}
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D")
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) { f.record("TexParameteri") }
func (f *Functions) PixelStorei(pname gl.Enum, param int)           { f.record("PixelStorei") }

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	f.record("CreateShader")
	return gl.Shader{V: f.handle()}
}

func (f *Functions) DeleteShader(s gl.Shader)             { f.record("DeleteShader") }
func (f *Functions) ShaderSource(s gl.Shader, src string) { f.record("ShaderSource") }
func (f *Functions) CompileShader(s gl.Shader)            { f.record("CompileShader") }

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.record("GetShaderi")
	if pname == gl.COMPILE_STATUS {
		if f.FailCompile {
			f.FailCompile = false
			return gl.FALSE
		}
		return gl.TRUE
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.record("GetShaderInfoLog")
	return "stub: compile error\n"
}

func (f *Functions) CreateProgram() gl.Program {
	f.record("CreateProgram")
	return gl.Program{V: f.handle()}
}

func (f *Functions) DeleteProgram(p gl.Program)                                { f.record("DeleteProgram") }
func (f *Functions) AttachShader(p gl.Program, s gl.Shader)                    { f.record("AttachShader") }
func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) { f.record("BindAttribLocation") }
func (f *Functions) LinkProgram(p gl.Program)                                  { f.record("LinkProgram") }

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.record("GetProgrami")
	if pname == gl.LINK_STATUS {
		if f.FailLink {
			f.FailLink = false
			return gl.FALSE
		}
		return gl.TRUE
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.record("GetProgramInfoLog")
	return "stub: link error\n"
}

func (f *Functions) UseProgram(p gl.Program) { f.record("UseProgram") }

// GetUniformLocation hands out a stable location per name. Names starting
// with "missing" are reported as not found.
func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation")
	if len(name) >= 7 && name[:7] == "missing" {
		return gl.Uniform{V: -1}
	}
	loc, ok := f.uniforms[name]
	if !ok {
		loc = len(f.uniforms)
		f.uniforms[name] = loc
	}
	return gl.Uniform{V: loc}
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.record("Uniform1i")
	f.Uniforms[dst.V] = []float32{float32(v)}
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.record("Uniform1f")
	f.Uniforms[dst.V] = []float32{v}
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.record("Uniform2f")
	f.Uniforms[dst.V] = []float32{v0, v1}
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.record("Uniform3f")
	f.Uniforms[dst.V] = []float32{v0, v1, v2}
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.record("Uniform4f")
	f.Uniforms[dst.V] = []float32{v0, v1, v2, v3}
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	f.record("UniformMatrix4fv")
	f.Uniforms[dst.V] = append([]float32(nil), v...)
}

func (f *Functions) CreateQuery() gl.Query {
	f.record("CreateQuery")
	return gl.Query{V: f.handle()}
}

func (f *Functions) DeleteQuery(q gl.Query)                { f.record("DeleteQuery") }
func (f *Functions) BeginQuery(target gl.Enum, q gl.Query) { f.record("BeginQuery") }
func (f *Functions) EndQuery(target gl.Enum)               { f.record("EndQuery") }

// GetQueryObjectuiv reports every query as available. Its 32-bit result
// is QueryResult truncated.
func (f *Functions) GetQueryObjectuiv(q gl.Query, pname gl.Enum) uint {
	f.record("GetQueryObjectuiv")
	switch pname {
	case gl.QUERY_RESULT_AVAILABLE:
		return gl.TRUE
	case gl.QUERY_RESULT:
		return uint(uint32(f.queryResult()))
	}
	return 0
}

func (f *Functions) GetQueryObjectui64v(q gl.Query, pname gl.Enum) uint64 {
	f.record("GetQueryObjectui64v")
	switch pname {
	case gl.QUERY_RESULT_AVAILABLE:
		return gl.TRUE
	case gl.QUERY_RESULT:
		return f.queryResult()
	}
	return 0
}

func (f *Functions) queryResult() uint64 {
	if f.QueryResult == 0 {
		return 1500
	}
	return f.QueryResult
}

func (f *Functions) Enable(cap gl.Enum)                         { f.record("Enable") }
func (f *Functions) Disable(cap gl.Enum)                        { f.record("Disable") }
func (f *Functions) DepthFunc(fn gl.Enum)                       { f.record("DepthFunc") }
func (f *Functions) DepthMask(mask bool)                        { f.record("DepthMask") }
func (f *Functions) StencilFunc(fn gl.Enum, ref int, mask uint) { f.record("StencilFunc") }
func (f *Functions) StencilOp(sfail, dpfail, dppass gl.Enum)    { f.record("StencilOp") }
func (f *Functions) StencilMask(mask uint)                      { f.record("StencilMask") }
func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	f.record("BlendEquationSeparate")
}
func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate")
}
func (f *Functions) ColorMask(r, g, b, a bool)                  { f.record("ColorMask") }
func (f *Functions) CullFace(mode gl.Enum)                      { f.record("CullFace") }
func (f *Functions) FrontFace(mode gl.Enum)                     { f.record("FrontFace") }
func (f *Functions) PolygonOffset(factor, units float32)        { f.record("PolygonOffset") }
func (f *Functions) Scissor(x, y, width, height int)            { f.record("Scissor") }
func (f *Functions) Viewport(x, y, width, height int)           { f.record("Viewport") }
func (f *Functions) ClearColor(red, green, blue, alpha float32) { f.record("ClearColor") }
func (f *Functions) ClearDepthf(d float32)                      { f.record("ClearDepthf") }
func (f *Functions) ClearStencil(s int)                         { f.record("ClearStencil") }
func (f *Functions) Clear(mask gl.Enum)                         { f.record("Clear") }
func (f *Functions) DrawArrays(mode gl.Enum, first, count int)  { f.record("DrawArrays") }
func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements")
}
func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.record("DrawArraysInstanced")
}
func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.record("DrawElementsInstanced")
}
