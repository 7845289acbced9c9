// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the set of primitive driver calls the binding layer issues.
// Implementations forward each call to the native API without caching or
// validation; all state tracking happens above this interface.
//
// A Functions value is bound to a single native context and must only be
// used from the thread on which that context is current.
type Functions interface {
	GetInteger(pname Enum) int
	GetString(pname Enum) string
	GetError() Enum
	Flush()

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)

	CreateVertexArray() VertexArray
	DeleteVertexArray(a VertexArray)
	BindVertexArray(a VertexArray)
	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	VertexAttribIPointer(dst Attrib, size int, ty Enum, stride, offset int)
	VertexAttribDivisor(dst Attrib, divisor int)

	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(fb Framebuffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	ReadBuffer(src Enum)
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask Enum, filter Enum)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)

	CreateTexture() Texture
	DeleteTexture(t Texture)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	PixelStorei(pname Enum, param int)

	CreateShader(ty Enum) Shader
	DeleteShader(s Shader)
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	CreateProgram() Program
	DeleteProgram(p Program)
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	GetUniformLocation(p Program, name string) Uniform
	Uniform1i(dst Uniform, v int)
	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst Uniform, transpose bool, v []float32)

	CreateQuery() Query
	DeleteQuery(q Query)
	BeginQuery(target Enum, q Query)
	EndQuery(target Enum)
	GetQueryObjectuiv(q Query, pname Enum) uint
	GetQueryObjectui64v(q Query, pname Enum) uint64

	Enable(cap Enum)
	Disable(cap Enum)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	StencilFunc(fn Enum, ref int, mask uint)
	StencilOp(sfail, dpfail, dppass Enum)
	StencilMask(mask uint)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	ColorMask(r, g, b, a bool)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	PolygonOffset(factor, units float32)
	Scissor(x, y, width, height int)
	Viewport(x, y, width, height int)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	Clear(mask Enum)

	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
}
