// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"log/slog"

	"gioui.org/glsafe/gl"
)

// VertexArray is a context-local vertex array object. Its attribute slots and
// index buffer are fixed when it is allocated; only the device's default
// vertex array has a mutable index buffer.
type VertexArray struct {
	object
	isDefault  bool
	configured bool
	attribs    []VertexAttrib
	index      *Buffer
}

// Default reports whether v is the device's default vertex array.
func (v *VertexArray) Default() bool {
	return v.isDefault
}

// Configured reports whether allocation completed. A vertex array whose
// configuration was rolled back is live but has no attributes.
func (v *VertexArray) Configured() bool {
	return v.configured
}

// Attrib returns the attribute in slot i, or nil if the slot is empty.
func (v *VertexArray) Attrib(i int) VertexAttrib {
	if i < 0 || i >= len(v.attribs) {
		return nil
	}
	return v.attribs[i]
}

// IndexBuffer returns the index buffer recorded for v, or nil.
func (v *VertexArray) IndexBuffer() *Buffer {
	return v.index
}

// VertexAttrib describes one occupied attribute slot. It is either a
// FloatAttrib or an IntAttrib.
type VertexAttrib interface {
	source() *Buffer
	validate() string
}

// FloatAttrib feeds a floating point shader input, converting integer data
// if Type is an integer type.
type FloatAttrib struct {
	Buffer *Buffer
	// Size is the number of components, 1 to 4.
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
	Divisor    int
}

// IntAttrib feeds an integer shader input.
type IntAttrib struct {
	Buffer  *Buffer
	Size    int
	Type    gl.Enum
	Stride  int
	Offset  int
	Divisor int
}

func (a FloatAttrib) source() *Buffer { return a.Buffer }
func (a IntAttrib) source() *Buffer   { return a.Buffer }

func (a FloatAttrib) validate() string {
	switch a.Type {
	case gl.BYTE, gl.UNSIGNED_BYTE, gl.SHORT, gl.UNSIGNED_SHORT, gl.INT, gl.UNSIGNED_INT,
		gl.HALF_FLOAT, gl.FLOAT, gl.FIXED:
	case gl.INT_2_10_10_10_REV, gl.UNSIGNED_INT_2_10_10_10_REV:
		if a.Size != 4 {
			return "packed 2_10_10_10 types need 4 components"
		}
	default:
		return "unknown float attribute type"
	}
	return validateLayout(a.Buffer, a.Size, a.Stride, a.Offset, a.Divisor)
}

func (a IntAttrib) validate() string {
	switch a.Type {
	case gl.BYTE, gl.UNSIGNED_BYTE, gl.SHORT, gl.UNSIGNED_SHORT, gl.INT, gl.UNSIGNED_INT:
	default:
		return "unknown integer attribute type"
	}
	return validateLayout(a.Buffer, a.Size, a.Stride, a.Offset, a.Divisor)
}

func validateLayout(b *Buffer, size, stride, offset, divisor int) string {
	switch {
	case size < 1 || size > 4:
		return "component count out of range 1..4"
	case stride < 0:
		return "negative stride"
	case offset < 0:
		return "negative offset"
	case divisor < 0:
		return "negative divisor"
	case offset >= b.size:
		return "offset outside source buffer"
	}
	return ""
}

// VertexArrays tracks the vertex array binding point.
type VertexArrays struct {
	d *Device
}

func (d *Device) bindVertexArray(v *VertexArray) {
	d.funcs.BindVertexArray(gl.VertexArray{V: v.handle})
}

// Default returns the device's default vertex array.
func (vs VertexArrays) Default() *VertexArray {
	return vs.d.defaultVertexArray
}

// Bind binds v.
func (vs VertexArrays) Bind(v *VertexArray) error {
	d := vs.d
	return bind(d, "VertexArrays.Bind", &d.vertexArray, v, d.bindVertexArray)
}

// Unbind binds the default vertex array.
func (vs VertexArrays) Unbind() {
	d := vs.d
	d.vertexArray.set(d.defaultVertexArray, d.bindVertexArray)
}

func (vs VertexArrays) IsBound(v *VertexArray) bool {
	return v != nil && vs.d.vertexArray.holds(v)
}

// Bound returns the bound vertex array; the default one if no other is bound.
func (vs VertexArrays) Bound() *VertexArray {
	return vs.d.vertexArray.get()
}

// Builder returns a vertex array builder in the device's default mode.
func (vs VertexArrays) Builder() *VertexArrayBuilder {
	return newVertexArrayBuilder(vs.d, vs.d.cfg.StrictAttributes)
}

// References returns the buffers v incorporates.
func (vs VertexArrays) References(v *VertexArray) ([]*Buffer, error) {
	if err := vs.d.use("VertexArrays.References", v); err != nil {
		return nil, err
	}
	var bufs []*Buffer
	for _, o := range vs.d.refs.referencesOf(v) {
		bufs = append(bufs, o.(*Buffer))
	}
	return bufs, nil
}

// Delete deletes v. If v was bound, the default vertex array becomes bound.
func (vs VertexArrays) Delete(v *VertexArray) error {
	const op = "VertexArrays.Delete"
	d := vs.d
	if v != nil && v.isDefault {
		return newError(op, ErrInvalidArgument, v, "the default vertex array cannot be deleted")
	}
	if err := d.retire(op, v); err != nil {
		return err
	}
	d.funcs.DeleteVertexArray(gl.VertexArray{V: v.handle})
	d.vertexArray.clear(v)
	d.refs.dropOwner(v)
	return nil
}

// validateSources checks that every buffer v reads from is still live. It
// is the draw-time consequence of deleting a referenced buffer.
func (v *VertexArray) validateSources(op string, indexed bool) error {
	for i, a := range v.attribs {
		if a == nil {
			continue
		}
		if b := a.source(); b.Deleted() {
			return newError(op, ErrResourceDeleted, b, "source of attribute %d of %v", i, v)
		}
	}
	if indexed {
		if v.index == nil {
			return newError(op, ErrResourceNotBound, v, "no index buffer")
		}
		if v.index.Deleted() {
			return newError(op, ErrResourceDeleted, v.index, "index buffer of %v", v)
		}
	}
	return nil
}

// IndexBuffers tracks the index buffer binding, which the driver stores in
// the bound vertex array.
type IndexBuffers struct {
	d *Device
}

func (d *Device) bindIndexBuffer(b *Buffer) {
	var h gl.Buffer
	if b != nil {
		h.V = b.handle
	}
	d.funcs.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h)
}

// Bind binds b as the index buffer of the bound vertex array.
//
// With the default vertex array bound, b replaces its index buffer. Any
// other vertex array had its index buffer fixed at allocation: binding the
// same buffer again only repeats the driver call, binding a different one
// fails with ErrIndexBufferAlreadyConfigured.
func (is IndexBuffers) Bind(b *Buffer) error {
	const op = "IndexBuffers.Bind"
	d := is.d
	if err := d.use(op, b); err != nil {
		return err
	}
	v := d.vertexArray.get()
	if !v.isDefault {
		if v.index != b {
			return newError(op, ErrIndexBufferAlreadyConfigured, v, "configured with %v, got %v", describe(v.index), b)
		}
		d.bindIndexBuffer(b)
		return nil
	}
	is.setDefault(b)
	return nil
}

// Unbind clears the index buffer of the default vertex array. It fails with
// ErrIndexBufferAlreadyConfigured if another vertex array with an index
// buffer is bound.
func (is IndexBuffers) Unbind() error {
	const op = "IndexBuffers.Unbind"
	d := is.d
	v := d.vertexArray.get()
	if !v.isDefault {
		if v.index != nil {
			return newError(op, ErrIndexBufferAlreadyConfigured, v, "configured with %v", v.index)
		}
		return nil
	}
	is.setDefault(nil)
	return nil
}

func (is IndexBuffers) setDefault(b *Buffer) {
	d := is.d
	dv := d.defaultVertexArray
	old := dv.index
	if old != nil && old.Deleted() {
		old = nil
	}
	if old == b {
		return
	}
	d.bindIndexBuffer(b)
	if old != nil {
		d.refs.removeReference(dv, old)
	}
	dv.index = b
	if b != nil {
		d.refs.addReference(dv, b)
	}
}

// IsBound reports whether b is the index buffer of the bound vertex array.
func (is IndexBuffers) IsBound(b *Buffer) bool {
	return b != nil && is.Bound() == b
}

// Bound returns the index buffer of the bound vertex array, or nil.
func (is IndexBuffers) Bound() *Buffer {
	b := is.d.vertexArray.get().index
	if b != nil && b.Deleted() {
		return nil
	}
	return b
}

func describe(o Object) string {
	if isNil(o) {
		return "none"
	}
	return o.String()
}

func (d *Device) warnRollback(v *VertexArray, err error) {
	d.log.Warn("glsafe: vertex array configuration rolled back", slog.String("object", v.String()), slog.Any("err", err))
}
