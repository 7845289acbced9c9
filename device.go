// SPDX-License-Identifier: Unlicense OR MIT

// Package glsafe is a validating layer over an OpenGL driver. It wraps every
// driver object with its owning context and liveness, tracks each binding
// point explicitly so that redundant driver calls are elided, records which
// objects vertex arrays and framebuffers incorporate, and rejects deleted
// objects, cross-context use and framebuffer feedback loops before they
// reach the driver.
//
// A Device and everything obtained from it are confined to the thread on
// which its native context is current. Devices in one ShareGroup may run on
// different threads and exchange buffers, textures, shaders and programs.
package glsafe

import (
	"log/slog"
	"reflect"

	"golang.org/x/exp/maps"

	"gioui.org/glsafe/format"
	"gioui.org/glsafe/gl"
)

// Limits are the device limits discovered at construction.
type Limits struct {
	MaxVertexAttribs      int
	MaxDrawBuffers        int
	MaxColorAttachments   int
	MaxTextureUnits       int
	MaxTextureSize        int
	MaxCubeMapTextureSize int
}

// Minimum limits a device must report.
const (
	MinVertexAttribs    = 16
	MinDrawBuffers      = 8
	MinColorAttachments = 8
	MinTextureUnits     = 16
	MinTextureSize      = 1024
)

// Device is the per-context facade. It owns one binding point per target
// and is the only path through which driver state is changed.
type Device struct {
	ctx     *Context
	funcs   gl.Functions
	cfg     Config
	formats format.Table
	limits  Limits
	glver   [2]int
	log     *slog.Logger

	refs *refGraph
	// objects holds every live object created through this device, for
	// Release.
	objects map[Object]struct{}

	arrayBuf    bindPoint[*Buffer]
	vertexArray bindPoint[*VertexArray]
	drawFBO     bindPoint[*Framebuffer]
	readFBO     bindPoint[*Framebuffer]
	program     bindPoint[*Program]
	query       bindPoint[*Query]
	texUnits    struct {
		active int
		units  []textureUnit
	}
	state glState
	// lastStatus is the raw result of the last completeness check.
	lastStatus gl.Enum

	defaultVertexArray *VertexArray
	defaultFramebuffer *Framebuffer
}

type textureUnit struct {
	tex2D bindPoint[*Texture]
	cube  bindPoint[*Texture]
}

// NewDevice wraps f, whose native context must be current on the calling
// thread and in its initial state. If group is nil the device starts a new
// share group.
//
// NewDevice fails with ErrNonCompliantDevice if any limit is below its
// minimum.
func NewDevice(f gl.Functions, group *ShareGroup, cfg Config) (*Device, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	lim, err := queryLimits(f)
	if err != nil {
		return nil, err
	}
	lim.MaxVertexAttribs = clamp(lim.MaxVertexAttribs, cfg.MaxVertexAttribs)
	lim.MaxTextureUnits = clamp(lim.MaxTextureUnits, cfg.MaxTextureUnits)
	var glver [2]int
	if ver, gles, err := gl.ParseGLVersion(f.GetString(gl.VERSION)); err == nil {
		glver = ver
		cfg.GLES = cfg.GLES || gles
	}
	if group == nil {
		group = NewShareGroup()
	}
	d := &Device{
		ctx:     group.join(),
		funcs:   f,
		cfg:     cfg,
		formats: cfg.Formats,
		limits:  lim,
		glver:   glver,
		log:     Logger(),
		refs:    newRefGraph(),
		objects: make(map[Object]struct{}),
	}
	d.defaultVertexArray = &VertexArray{
		isDefault: true,
		attribs:   make([]VertexAttrib, lim.MaxVertexAttribs),
	}
	d.defaultVertexArray.init(kindVertexArray, 0, d.ctx)
	d.defaultFramebuffer = &Framebuffer{isDefault: true}
	d.defaultFramebuffer.init(kindFramebuffer, 0, d.ctx)
	d.vertexArray = bindPoint[*VertexArray]{cur: d.defaultVertexArray, def: d.defaultVertexArray}
	d.drawFBO = bindPoint[*Framebuffer]{cur: d.defaultFramebuffer, def: d.defaultFramebuffer}
	d.readFBO = bindPoint[*Framebuffer]{cur: d.defaultFramebuffer, def: d.defaultFramebuffer}
	d.texUnits.units = make([]textureUnit, lim.MaxTextureUnits)
	d.state = initialState()
	d.log.Debug("glsafe: device created",
		slog.String("context", d.ctx.String()),
		slog.String("group", group.String()),
		slog.Int("max_vertex_attribs", lim.MaxVertexAttribs),
		slog.Int("max_draw_buffers", lim.MaxDrawBuffers),
		slog.Int("max_color_attachments", lim.MaxColorAttachments),
		slog.Int("max_texture_units", lim.MaxTextureUnits),
		slog.Int("max_texture_size", lim.MaxTextureSize),
		slog.Bool("gles", cfg.GLES),
	)
	return d, nil
}

func queryLimits(f gl.Functions) (Limits, error) {
	lim := Limits{
		MaxVertexAttribs:      f.GetInteger(gl.MAX_VERTEX_ATTRIBS),
		MaxDrawBuffers:        f.GetInteger(gl.MAX_DRAW_BUFFERS),
		MaxColorAttachments:   f.GetInteger(gl.MAX_COLOR_ATTACHMENTS),
		MaxTextureUnits:       f.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS),
		MaxTextureSize:        f.GetInteger(gl.MAX_TEXTURE_SIZE),
		MaxCubeMapTextureSize: f.GetInteger(gl.MAX_CUBE_MAP_TEXTURE_SIZE),
	}
	checks := []struct {
		name     string
		reported int
		required int
	}{
		{"GL_MAX_VERTEX_ATTRIBS", lim.MaxVertexAttribs, MinVertexAttribs},
		{"GL_MAX_DRAW_BUFFERS", lim.MaxDrawBuffers, MinDrawBuffers},
		{"GL_MAX_COLOR_ATTACHMENTS", lim.MaxColorAttachments, MinColorAttachments},
		{"GL_MAX_COMBINED_TEXTURE_IMAGE_UNITS", lim.MaxTextureUnits, MinTextureUnits},
		{"GL_MAX_TEXTURE_SIZE", lim.MaxTextureSize, MinTextureSize},
	}
	for _, c := range checks {
		if c.reported < c.required {
			return Limits{}, &LimitError{Limit: c.name, Reported: c.reported, Required: c.required}
		}
	}
	if lim.MaxCubeMapTextureSize < MinTextureSize {
		// Not every driver reports it separately.
		lim.MaxCubeMapTextureSize = lim.MaxTextureSize
	}
	return lim, nil
}

func clamp(v, ceiling int) int {
	if v > ceiling {
		return ceiling
	}
	return v
}

// Context returns the device's context identity.
func (d *Device) Context() *Context {
	return d.ctx
}

func (d *Device) Limits() Limits {
	return d.limits
}

func (d *Device) Config() Config {
	return d.cfg
}

// Functions returns the underlying driver functions. Calls made directly
// bypass binding tracking.
func (d *Device) Functions() gl.Functions {
	return d.funcs
}

// use validates o for use from d: it must be non-nil, live and compatible
// with d's context.
func (d *Device) use(op string, o Object) error {
	if isNil(o) {
		return invalidArg(op, "nil object")
	}
	if err := checkNotDeleted(op, o); err != nil {
		return err
	}
	_, err := checkCompatible(d.ctx, op, o)
	return err
}

func isNil(o Object) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// track registers a newly created object.
func (d *Device) track(o Object) {
	d.objects[o] = struct{}{}
	d.log.Debug("glsafe: created", slog.String("object", o.String()), slog.String("context", d.ctx.String()))
}

// retire marks o deleted and forgets it. It fails if o was already deleted
// or belongs to an incompatible context.
func (d *Device) retire(op string, o Object) error {
	if isNil(o) {
		return invalidArg(op, "nil object")
	}
	if _, err := checkCompatible(d.ctx, op, o); err != nil {
		return err
	}
	if !o.base().markDeleted() {
		return newError(op, ErrAlreadyDeleted, o, "")
	}
	delete(d.objects, o)
	d.log.Debug("glsafe: deleted", slog.String("object", o.String()), slog.String("context", d.ctx.String()))
	return nil
}

// ReferencesOf returns the live objects incorporated by a vertex array or
// framebuffer.
func (d *Device) ReferencesOf(o Object) []Object {
	return d.refs.referencesOf(o)
}

// Buffers returns the array buffer tracker.
func (d *Device) Buffers() Buffers { return Buffers{d} }

// IndexBuffers returns the index buffer tracker.
func (d *Device) IndexBuffers() IndexBuffers { return IndexBuffers{d} }

// VertexArrays returns the vertex array tracker.
func (d *Device) VertexArrays() VertexArrays { return VertexArrays{d} }

// Textures returns the texture unit trackers.
func (d *Device) Textures() Textures { return Textures{d} }

// Framebuffers returns the draw and read framebuffer trackers.
func (d *Device) Framebuffers() Framebuffers { return Framebuffers{d} }

// Shaders returns the shader object operations.
func (d *Device) Shaders() Shaders { return Shaders{d} }

// Programs returns the active program tracker.
func (d *Device) Programs() Programs { return Programs{d} }

// Queries returns the timer query tracker.
func (d *Device) Queries() Queries { return Queries{d} }

// Drawing returns the draw call operations.
func (d *Device) Drawing() Drawing { return Drawing{d} }

// Clearing returns the clear operations.
func (d *Device) Clearing() Clearing { return Clearing{d} }

// State returns the fixed-function state operations.
func (d *Device) State() State { return State{d} }

// Release deletes every live object created through d, deleting
// composites before the objects they reference, and removes d's context
// from its share group. d must not be used afterwards.
func (d *Device) Release() {
	objs := maps.Keys(d.objects)
	// Queries, framebuffers and vertex arrays sort after shared kinds;
	// delete in reverse.
	sortObjects(objs)
	for i := len(objs) - 1; i >= 0; i-- {
		o := objs[i]
		if o.Deleted() {
			continue
		}
		var err error
		switch o := o.(type) {
		case *Buffer:
			err = d.Buffers().Delete(o)
		case *Texture:
			err = d.Textures().Delete(o)
		case *Shader:
			err = d.Shaders().Delete(o)
		case *Program:
			err = d.Programs().Delete(o)
		case *VertexArray:
			err = d.VertexArrays().Delete(o)
		case *Framebuffer:
			err = d.Framebuffers().Delete(o)
		case *Query:
			err = d.Queries().Delete(o)
		}
		if err != nil {
			d.log.Warn("glsafe: release", slog.String("object", o.String()), slog.Any("err", err))
		}
	}
	d.ctx.group.leave(d.ctx)
	d.objects = nil
}
