// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"log/slog"
	"sync"

	"gioui.org/shader"

	"gioui.org/glsafe/gl"
	"gioui.org/glsafe/internal/byteslice"
)

// ShaderStage selects the vertex or fragment stage.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) gl() gl.Enum {
	if s == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// Shader is a shared, compiled shader object.
type Shader struct {
	object
	stage ShaderStage
}

func (s *Shader) Stage() ShaderStage {
	return s.stage
}

// Program is a shared, linked program object.
type Program struct {
	object
	// mu guards locs, which contexts of the share group fill lazily.
	mu   sync.Mutex
	locs map[string]gl.Uniform
	// vert and frag emulate one uniform block per stage.
	vert, frag uniformBlock
}

type uniformBlock struct {
	locs []uniformLocation
	size int
}

type uniformLocation struct {
	uniform gl.Uniform
	offset  int
	typ     shader.DataType
	size    int
}

// Shaders creates and deletes shader objects.
type Shaders struct {
	d *Device
}

// Compile compiles src for stage.
func (ss Shaders) Compile(stage ShaderStage, src string) (*Shader, error) {
	const op = "Shaders.Compile"
	d := ss.d
	if stage > FragmentStage {
		return nil, invalidArg(op, "unknown stage %d", stage)
	}
	h, err := gl.CompileShader(d.funcs, stage.gl(), src)
	if err != nil {
		return nil, newError(op, ErrDriver, nil, "%v", err)
	}
	s := &Shader{stage: stage}
	s.init(kindShader, h.V, d.ctx)
	d.track(s)
	return s, nil
}

// Delete deletes s. Programs already linked from s are unaffected.
func (ss Shaders) Delete(s *Shader) error {
	d := ss.d
	if err := d.retire("Shaders.Delete", s); err != nil {
		return err
	}
	d.funcs.DeleteShader(gl.Shader{V: s.handle})
	return nil
}

// Programs tracks the active program binding point.
type Programs struct {
	d *Device
}

// Link links a vertex and a fragment shader, binding attribs[i] to
// attribute slot i.
func (ps Programs) Link(vs, fs *Shader, attribs []string) (*Program, error) {
	const op = "Programs.Link"
	d := ps.d
	if err := d.use(op, vs); err != nil {
		return nil, err
	}
	if err := d.use(op, fs); err != nil {
		return nil, err
	}
	if vs.stage != VertexStage || fs.stage != FragmentStage {
		return nil, invalidArg(op, "shader stages out of order")
	}
	if len(attribs) > d.limits.MaxVertexAttribs {
		return nil, invalidArg(op, "%d attributes, device supports %d", len(attribs), d.limits.MaxVertexAttribs)
	}
	h, err := gl.LinkProgram(d.funcs, gl.Shader{V: vs.handle}, gl.Shader{V: fs.handle}, attribs)
	if err != nil {
		return nil, newError(op, ErrDriver, nil, "%v", err)
	}
	p := &Program{locs: make(map[string]gl.Uniform)}
	p.init(kindProgram, h.V, d.ctx)
	d.track(p)
	return p, nil
}

// NewProgramFromSources compiles and links a program from reflected shader
// sources, picking the GLSL variant for the device. Texture samplers are
// assigned their reflected units and the uniform locations of both stages
// are resolved for SetUniformBlock. The program is left bound.
func (ps Programs) NewProgramFromSources(vsrc, fsrc shader.Sources) (*Program, error) {
	const op = "Programs.NewProgramFromSources"
	d := ps.d
	attribs := make([]string, len(vsrc.Inputs))
	for _, inp := range vsrc.Inputs {
		if inp.Location < 0 || inp.Location >= len(attribs) {
			return nil, invalidArg(op, "input %q has location %d", inp.Name, inp.Location)
		}
		attribs[inp.Location] = inp.Name
	}
	vglsl, fglsl := vsrc.GLSL150, fsrc.GLSL150
	if d.cfg.GLES {
		vglsl, fglsl = vsrc.GLSL100ES, fsrc.GLSL100ES
	}
	ss := d.Shaders()
	vs, err := ss.Compile(VertexStage, vglsl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vsrc.Name, err)
	}
	defer ss.Delete(vs)
	fs, err := ss.Compile(FragmentStage, fglsl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fsrc.Name, err)
	}
	defer ss.Delete(fs)
	p, err := ps.Link(vs, fs, attribs)
	if err != nil {
		return nil, err
	}
	if err := ps.Use(p); err != nil {
		return nil, err
	}
	for _, texs := range [][]shader.TextureBinding{vsrc.Textures, fsrc.Textures} {
		for _, tex := range texs {
			if u := ps.location(p, tex.Name); u.Valid() {
				d.funcs.Uniform1i(u, tex.Binding)
			}
		}
	}
	blocks := []struct {
		b    *uniformBlock
		refl shader.UniformsReflection
	}{{&p.vert, vsrc.Uniforms}, {&p.frag, fsrc.Uniforms}}
	for _, blk := range blocks {
		if err := ps.setupBlock(op, p, blk.b, blk.refl); err != nil {
			ps.Delete(p)
			return nil, err
		}
	}
	d.log.Debug("glsafe: program linked",
		slog.String("object", p.String()),
		slog.String("vertex", vsrc.Name),
		slog.String("fragment", fsrc.Name),
	)
	return p, nil
}

func (ps Programs) setupBlock(op string, p *Program, b *uniformBlock, refl shader.UniformsReflection) error {
	b.size = refl.Size
	b.locs = make([]uniformLocation, len(refl.Locations))
	for i, loc := range refl.Locations {
		u := ps.location(p, loc.Name)
		if !u.Valid() {
			return newError(op, ErrInvalidArgument, p, "uniform %q not found", loc.Name)
		}
		if loc.Type != shader.DataTypeFloat || loc.Size < 1 || loc.Size > 4 {
			return newError(op, ErrInvalidArgument, p, "uniform %q: unsupported type or size", loc.Name)
		}
		b.locs[i] = uniformLocation{uniform: u, offset: loc.Offset, typ: loc.Type, size: loc.Size}
	}
	return nil
}

func (ps Programs) location(p *Program, name string) gl.Uniform {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.locs[name]; ok {
		return u
	}
	u := ps.d.funcs.GetUniformLocation(gl.Program{V: p.handle}, name)
	p.locs[name] = u
	return u
}

func (d *Device) useProgram(p *Program) {
	var h gl.Program
	if p != nil {
		h.V = p.handle
	}
	d.funcs.UseProgram(h)
}

// Use makes p the active program.
func (ps Programs) Use(p *Program) error {
	d := ps.d
	return bind(d, "Programs.Use", &d.program, p, d.useProgram)
}

// Unuse clears the active program.
func (ps Programs) Unuse() {
	d := ps.d
	d.program.set(nil, d.useProgram)
}

// Bound returns the active program, or nil.
func (ps Programs) Bound() *Program {
	return ps.d.program.get()
}

func (ps Programs) IsBound(p *Program) bool {
	return p != nil && ps.d.program.holds(p)
}

// uniform validates that p is live and active and resolves name.
func (ps Programs) uniform(op string, p *Program, name string) (gl.Uniform, error) {
	d := ps.d
	if err := d.use(op, p); err != nil {
		return gl.Uniform{}, err
	}
	if !d.program.holds(p) {
		return gl.Uniform{}, newError(op, ErrResourceNotBound, p, "program is not active")
	}
	u := ps.location(p, name)
	if !u.Valid() {
		return gl.Uniform{}, newError(op, ErrInvalidArgument, p, "uniform %q not found", name)
	}
	return u, nil
}

// SetFloat sets a float, vec2, vec3 or vec4 uniform of the active program p.
func (ps Programs) SetFloat(p *Program, name string, v ...float32) error {
	const op = "Programs.SetFloat"
	if len(v) < 1 || len(v) > 4 {
		return invalidArg(op, "%d components", len(v))
	}
	u, err := ps.uniform(op, p, name)
	if err != nil {
		return err
	}
	setFloats(ps.d.funcs, u, v)
	return nil
}

func setFloats(f gl.Functions, u gl.Uniform, v []float32) {
	switch len(v) {
	case 1:
		f.Uniform1f(u, v[0])
	case 2:
		f.Uniform2f(u, v[0], v[1])
	case 3:
		f.Uniform3f(u, v[0], v[1], v[2])
	case 4:
		f.Uniform4f(u, v[0], v[1], v[2], v[3])
	default:
		panic("unsupported uniform size")
	}
}

// SetInt sets an int or sampler uniform of the active program p.
func (ps Programs) SetInt(p *Program, name string, v int) error {
	u, err := ps.uniform("Programs.SetInt", p, name)
	if err != nil {
		return err
	}
	ps.d.funcs.Uniform1i(u, v)
	return nil
}

// SetMatrix4 sets a mat4 uniform of the active program p from a column
// major matrix.
func (ps Programs) SetMatrix4(p *Program, name string, m [16]float32) error {
	u, err := ps.uniform("Programs.SetMatrix4", p, name)
	if err != nil {
		return err
	}
	ps.d.funcs.UniformMatrix4fv(u, false, m[:])
	return nil
}

// SetUniformBlock uploads the emulated uniform block of stage from data,
// laid out as reflected by NewProgramFromSources.
func (ps Programs) SetUniformBlock(p *Program, stage ShaderStage, data []byte) error {
	const op = "Programs.SetUniformBlock"
	d := ps.d
	if err := d.use(op, p); err != nil {
		return err
	}
	if !d.program.holds(p) {
		return newError(op, ErrResourceNotBound, p, "program is not active")
	}
	b := &p.vert
	if stage == FragmentStage {
		b = &p.frag
	}
	if len(data) < b.size {
		return newError(op, ErrInvalidArgument, p, "uniform data too small, got %d need %d", len(data), b.size)
	}
	for _, u := range b.locs {
		v, ok := byteslice.Float32s(data, u.offset, u.size)
		if !ok {
			return newError(op, ErrInvalidArgument, p, "uniform at offset %d outside data", u.offset)
		}
		setFloats(d.funcs, u.uniform, v)
	}
	return nil
}

// Delete deletes p and clears the active program if it was p.
func (ps Programs) Delete(p *Program) error {
	d := ps.d
	if err := d.retire("Programs.Delete", p); err != nil {
		return err
	}
	d.funcs.DeleteProgram(gl.Program{V: p.handle})
	d.program.clear(p)
	return nil
}
