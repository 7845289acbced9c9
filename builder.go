// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"log/slog"

	"gioui.org/glsafe/gl"
)

// VertexArrayBuilder accumulates a vertex array configuration. The builder
// belongs to the context of the device that created it; every buffer it is
// given must be usable from that context.
//
// In strict mode assigning an occupied slot fails with
// ErrAttributeAlreadyAssigned. Otherwise the later assignment replaces the
// earlier one, and the replaced buffer is no longer referenced.
type VertexArrayBuilder struct {
	d       *Device
	strict  bool
	attribs []VertexAttrib
	index   *Buffer
}

func newVertexArrayBuilder(d *Device, strict bool) *VertexArrayBuilder {
	return &VertexArrayBuilder{
		d:       d,
		strict:  strict,
		attribs: make([]VertexAttrib, d.limits.MaxVertexAttribs),
	}
}

// Strict sets whether reassigning a slot is an error.
func (b *VertexArrayBuilder) Strict(strict bool) *VertexArrayBuilder {
	b.strict = strict
	return b
}

// FromExisting seeds the builder with the attributes and index buffer of v.
// Slots whose buffer has since been deleted are left empty.
func (b *VertexArrayBuilder) FromExisting(v *VertexArray) error {
	const op = "VertexArrayBuilder.FromExisting"
	if err := b.d.use(op, v); err != nil {
		return err
	}
	for i, a := range v.attribs {
		if i >= len(b.attribs) {
			break
		}
		if a != nil && !a.source().Deleted() {
			b.attribs[i] = a
		} else {
			b.attribs[i] = nil
		}
	}
	b.index = nil
	if v.index != nil && !v.index.Deleted() {
		b.index = v.index
	}
	return nil
}

// SetAttrib assigns attr, a FloatAttrib or IntAttrib, to slot.
func (b *VertexArrayBuilder) SetAttrib(slot int, attr VertexAttrib) error {
	const op = "VertexArrayBuilder.SetAttrib"
	if slot < 0 || slot >= len(b.attribs) {
		return invalidArg(op, "slot %d outside [0,%d)", slot, len(b.attribs))
	}
	if attr == nil {
		return invalidArg(op, "nil attribute")
	}
	src := attr.source()
	if err := b.d.use(op, src); err != nil {
		return err
	}
	if msg := attr.validate(); msg != "" {
		return newError(op, ErrInvalidArgument, src, "slot %d: %s", slot, msg)
	}
	if b.strict && b.attribs[slot] != nil {
		return newError(op, ErrAttributeAlreadyAssigned, src, "slot %d", slot)
	}
	b.attribs[slot] = attr
	return nil
}

// ClearAttrib empties slot.
func (b *VertexArrayBuilder) ClearAttrib(slot int) error {
	if slot < 0 || slot >= len(b.attribs) {
		return invalidArg("VertexArrayBuilder.ClearAttrib", "slot %d outside [0,%d)", slot, len(b.attribs))
	}
	b.attribs[slot] = nil
	return nil
}

// SetIndexBuffer records idx as the index buffer. A nil idx clears it.
func (b *VertexArrayBuilder) SetIndexBuffer(idx *Buffer) error {
	const op = "VertexArrayBuilder.SetIndexBuffer"
	if idx == nil {
		b.index = nil
		return nil
	}
	if err := b.d.use(op, idx); err != nil {
		return err
	}
	if b.strict && b.index != nil && b.index != idx {
		return newError(op, ErrIndexBufferAlreadyConfigured, idx, "builder already holds %v", b.index)
	}
	b.index = idx
	return nil
}

// References returns the distinct buffers the vertex array would
// incorporate, ordered by handle.
func (b *VertexArrayBuilder) References() []*Buffer {
	seen := make(map[*Buffer]bool)
	var objs []Object
	add := func(buf *Buffer) {
		if buf == nil || seen[buf] {
			return
		}
		seen[buf] = true
		objs = append(objs, buf)
	}
	for _, a := range b.attribs {
		if a != nil {
			add(a.source())
		}
	}
	add(b.index)
	sortObjects(objs)
	bufs := make([]*Buffer, len(objs))
	for i, o := range objs {
		bufs[i] = o.(*Buffer)
	}
	return bufs
}

// Allocate creates the vertex array and configures it through the
// device's tracked bindings. The new vertex array is left bound.
//
// If the driver reports an error during configuration, or a source was
// deleted from a sibling context meanwhile, the default vertex array is bound
// again and Allocate returns the live but unconfigured vertex array together
// with the error.
func (b *VertexArrayBuilder) Allocate() (*VertexArray, error) {
	const op = "VertexArrayBuilder.Allocate"
	d := b.d
	if err := b.checkSources(op); err != nil {
		return nil, err
	}
	glErr(d.funcs)
	v := &VertexArray{attribs: make([]VertexAttrib, len(b.attribs))}
	v.init(kindVertexArray, d.funcs.CreateVertexArray().V, d.ctx)
	d.track(v)
	d.vertexArray.set(v, d.bindVertexArray)
	for i, a := range b.attribs {
		if a == nil {
			continue
		}
		d.arrayBuf.set(a.source(), d.bindArrayBuffer)
		slot := gl.Attrib(i)
		d.funcs.EnableVertexAttribArray(slot)
		var divisor int
		switch a := a.(type) {
		case FloatAttrib:
			d.funcs.VertexAttribPointer(slot, a.Size, a.Type, a.Normalized, a.Stride, a.Offset)
			divisor = a.Divisor
		case IntAttrib:
			d.funcs.VertexAttribIPointer(slot, a.Size, a.Type, a.Stride, a.Offset)
			divisor = a.Divisor
		}
		if divisor != 0 {
			d.funcs.VertexAttribDivisor(slot, divisor)
		}
	}
	if b.index != nil {
		d.bindIndexBuffer(b.index)
	}
	err := glErr(d.funcs)
	if err != nil {
		err = driverErr(op, v, err)
	} else {
		// A sibling context may have deleted a shared source meanwhile.
		err = b.checkSources(op)
	}
	if err != nil {
		d.vertexArray.set(d.defaultVertexArray, d.bindVertexArray)
		d.warnRollback(v, err)
		return v, err
	}
	copy(v.attribs, b.attribs)
	v.index = b.index
	v.configured = true
	for _, buf := range b.References() {
		d.refs.addReference(v, buf)
	}
	d.log.Debug("glsafe: vertex array configured",
		slog.String("object", v.String()),
		slog.Int("references", len(d.refs.referencesOf(v))),
	)
	return v, nil
}

// checkSources fails with ErrResourceDeleted if a source or the index buffer
// is deleted.
func (b *VertexArrayBuilder) checkSources(op string) error {
	for i, a := range b.attribs {
		if a != nil && a.source().Deleted() {
			return newError(op, ErrResourceDeleted, a.source(), "source of slot %d", i)
		}
	}
	if b.index != nil && b.index.Deleted() {
		return newError(op, ErrResourceDeleted, b.index, "index buffer")
	}
	return nil
}
