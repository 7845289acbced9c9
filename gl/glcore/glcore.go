// SPDX-License-Identifier: Unlicense OR MIT

// Package glcore implements gl.Functions on top of the desktop OpenGL 3.3
// core profile bindings.
//
// Init must be called with a context current on the calling thread, and the
// returned Functions must only be used from that thread.
package glcore

import (
	"unsafe"

	gl33 "github.com/go-gl/gl/v3.3-core/gl"

	"gioui.org/glsafe/gl"
)

type Functions struct{}

var _ gl.Functions = (*Functions)(nil)

// Init loads the OpenGL entry points for the current context.
func Init() (*Functions, error) {
	if err := gl33.Init(); err != nil {
		return nil, err
	}
	return new(Functions), nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	var v int32
	gl33.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetString(pname gl.Enum) string {
	s := gl33.GetString(uint32(pname))
	if s == nil {
		return ""
	}
	return gl33.GoStr(s)
}

func (f *Functions) GetError() gl.Enum {
	return gl.Enum(gl33.GetError())
}

func (f *Functions) Flush() {
	gl33.Flush()
}

func (f *Functions) CreateBuffer() gl.Buffer {
	var id uint32
	gl33.GenBuffers(1, &id)
	return gl.Buffer{V: uint(id)}
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	id := uint32(b.V)
	gl33.DeleteBuffers(1, &id)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	gl33.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	gl33.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	gl33.BufferSubData(uint32(target), offset, len(src), ptr(src))
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	var id uint32
	gl33.GenVertexArrays(1, &id)
	return gl.VertexArray{V: uint(id)}
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	id := uint32(a.V)
	gl33.DeleteVertexArrays(1, &id)
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	gl33.BindVertexArray(uint32(a.V))
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	gl33.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	gl33.DisableVertexAttribArray(uint32(a))
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	gl33.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), gl33.PtrOffset(offset))
}

func (f *Functions) VertexAttribIPointer(dst gl.Attrib, size int, ty gl.Enum, stride, offset int) {
	gl33.VertexAttribIPointer(uint32(dst), int32(size), uint32(ty), int32(stride), gl33.PtrOffset(offset))
}

func (f *Functions) VertexAttribDivisor(dst gl.Attrib, divisor int) {
	gl33.VertexAttribDivisor(uint32(dst), uint32(divisor))
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	var id uint32
	gl33.GenFramebuffers(1, &id)
	return gl.Framebuffer{V: uint(id)}
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	id := uint32(fb.V)
	gl33.DeleteFramebuffers(1, &id)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	gl33.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	gl33.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(gl33.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {
	if len(bufs) == 0 {
		gl33.DrawBuffers(0, nil)
		return
	}
	native := make([]uint32, len(bufs))
	for i, b := range bufs {
		native[i] = uint32(b)
	}
	gl33.DrawBuffers(int32(len(native)), &native[0])
}

func (f *Functions) ReadBuffer(src gl.Enum) {
	gl33.ReadBuffer(uint32(src))
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask gl.Enum, filter gl.Enum) {
	gl33.BlitFramebuffer(int32(sx0), int32(sy0), int32(sx1), int32(sy1), int32(dx0), int32(dy0), int32(dx1), int32(dy1), uint32(mask), uint32(filter))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	gl33.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) CreateTexture() gl.Texture {
	var id uint32
	gl33.GenTextures(1, &id)
	return gl.Texture{V: uint(id)}
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	id := uint32(t.V)
	gl33.DeleteTextures(1, &id)
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	gl33.ActiveTexture(uint32(unit))
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	gl33.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	gl33.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	gl33.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	gl33.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	gl33.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: uint(gl33.CreateShader(uint32(ty)))}
}

func (f *Functions) DeleteShader(s gl.Shader) {
	gl33.DeleteShader(uint32(s.V))
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	csrc, free := gl33.Strs(src + "\x00")
	defer free()
	gl33.ShaderSource(uint32(s.V), 1, csrc, nil)
}

func (f *Functions) CompileShader(s gl.Shader) {
	gl33.CompileShader(uint32(s.V))
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	gl33.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	n := f.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl33.GetShaderInfoLog(uint32(s.V), int32(n), nil, &buf[0])
	return gl33.GoStr(&buf[0])
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program{V: uint(gl33.CreateProgram())}
}

func (f *Functions) DeleteProgram(p gl.Program) {
	gl33.DeleteProgram(uint32(p.V))
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	gl33.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	gl33.BindAttribLocation(uint32(p.V), uint32(a), gl33.Str(name+"\x00"))
}

func (f *Functions) LinkProgram(p gl.Program) {
	gl33.LinkProgram(uint32(p.V))
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	gl33.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	n := f.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl33.GetProgramInfoLog(uint32(p.V), int32(n), nil, &buf[0])
	return gl33.GoStr(&buf[0])
}

func (f *Functions) UseProgram(p gl.Program) {
	gl33.UseProgram(uint32(p.V))
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{V: int(gl33.GetUniformLocation(uint32(p.V), gl33.Str(name+"\x00")))}
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	gl33.Uniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	gl33.Uniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	gl33.Uniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	gl33.Uniform3f(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	gl33.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	if len(v) < 16 {
		return
	}
	gl33.UniformMatrix4fv(int32(dst.V), int32(len(v)/16), transpose, &v[0])
}

func (f *Functions) CreateQuery() gl.Query {
	var id uint32
	gl33.GenQueries(1, &id)
	return gl.Query{V: uint(id)}
}

func (f *Functions) DeleteQuery(q gl.Query) {
	id := uint32(q.V)
	gl33.DeleteQueries(1, &id)
}

func (f *Functions) BeginQuery(target gl.Enum, q gl.Query) {
	gl33.BeginQuery(uint32(target), uint32(q.V))
}

func (f *Functions) EndQuery(target gl.Enum) {
	gl33.EndQuery(uint32(target))
}

func (f *Functions) GetQueryObjectuiv(q gl.Query, pname gl.Enum) uint {
	var v uint32
	gl33.GetQueryObjectuiv(uint32(q.V), uint32(pname), &v)
	return uint(v)
}

func (f *Functions) GetQueryObjectui64v(q gl.Query, pname gl.Enum) uint64 {
	var v uint64
	gl33.GetQueryObjectui64v(uint32(q.V), uint32(pname), &v)
	return v
}

func (f *Functions) Enable(cap gl.Enum) {
	gl33.Enable(uint32(cap))
}

func (f *Functions) Disable(cap gl.Enum) {
	gl33.Disable(uint32(cap))
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	gl33.DepthFunc(uint32(fn))
}

func (f *Functions) DepthMask(mask bool) {
	gl33.DepthMask(mask)
}

func (f *Functions) StencilFunc(fn gl.Enum, ref int, mask uint) {
	gl33.StencilFunc(uint32(fn), int32(ref), uint32(mask))
}

func (f *Functions) StencilOp(sfail, dpfail, dppass gl.Enum) {
	gl33.StencilOp(uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (f *Functions) StencilMask(mask uint) {
	gl33.StencilMask(uint32(mask))
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	gl33.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	gl33.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Functions) ColorMask(r, g, b, a bool) {
	gl33.ColorMask(r, g, b, a)
}

func (f *Functions) CullFace(mode gl.Enum) {
	gl33.CullFace(uint32(mode))
}

func (f *Functions) FrontFace(mode gl.Enum) {
	gl33.FrontFace(uint32(mode))
}

func (f *Functions) PolygonOffset(factor, units float32) {
	gl33.PolygonOffset(factor, units)
}

func (f *Functions) Scissor(x, y, width, height int) {
	gl33.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl33.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl33.ClearColor(red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	// ClearDepthf is only core in 4.1.
	gl33.ClearDepth(float64(d))
}

func (f *Functions) ClearStencil(s int) {
	gl33.ClearStencil(int32(s))
}

func (f *Functions) Clear(mask gl.Enum) {
	gl33.Clear(uint32(mask))
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	gl33.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	gl33.DrawElements(uint32(mode), int32(count), uint32(ty), gl33.PtrOffset(offset))
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	gl33.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	gl33.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), gl33.PtrOffset(offset), int32(instances))
}
