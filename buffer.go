// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"gioui.org/glsafe/gl"
)

// Buffer is a shared driver buffer object.
type Buffer struct {
	object
	size  int
	usage gl.Enum
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int {
	return b.size
}

// Buffers tracks the array buffer binding point.
type Buffers struct {
	d *Device
}

func validUsage(u gl.Enum) bool {
	switch u {
	case gl.STATIC_DRAW, gl.DYNAMIC_DRAW, gl.STREAM_DRAW:
		return true
	}
	return false
}

// New allocates an uninitialized buffer of size bytes.
func (bs Buffers) New(size int, usage gl.Enum) (*Buffer, error) {
	return bs.create("Buffers.New", size, usage, nil)
}

// NewWithData allocates a buffer holding a copy of data.
func (bs Buffers) NewWithData(data []byte, usage gl.Enum) (*Buffer, error) {
	return bs.create("Buffers.NewWithData", len(data), usage, data)
}

func (bs Buffers) create(op string, size int, usage gl.Enum, data []byte) (*Buffer, error) {
	d := bs.d
	if size < 0 {
		return nil, invalidArg(op, "negative size %d", size)
	}
	if !validUsage(usage) {
		return nil, invalidArg(op, "unknown usage %#x", usage)
	}
	glErr(d.funcs)
	buf := &Buffer{size: size, usage: usage}
	buf.init(kindBuffer, d.funcs.CreateBuffer().V, d.ctx)
	d.track(buf)
	d.arrayBuf.set(buf, d.bindArrayBuffer)
	d.funcs.BufferData(gl.ARRAY_BUFFER, size, usage, data)
	if err := glErr(d.funcs); err != nil {
		bs.Delete(buf)
		return nil, driverErr(op, buf, err)
	}
	return buf, nil
}

// Upload replaces len(data) bytes of b starting at offset.
func (bs Buffers) Upload(b *Buffer, offset int, data []byte) error {
	const op = "Buffers.Upload"
	d := bs.d
	if err := d.use(op, b); err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > b.size {
		return newError(op, ErrInvalidArgument, b, "range [%d,%d) outside buffer of %d bytes", offset, offset+len(data), b.size)
	}
	d.arrayBuf.set(b, d.bindArrayBuffer)
	if offset == 0 && len(data) == b.size {
		// Orphan the old storage to avoid stalling on in-flight draws.
		d.funcs.BufferData(gl.ARRAY_BUFFER, b.size, b.usage, nil)
	}
	d.funcs.BufferSubData(gl.ARRAY_BUFFER, offset, data)
	return nil
}

func (d *Device) bindArrayBuffer(b *Buffer) {
	var h gl.Buffer
	if b != nil {
		h.V = b.handle
	}
	d.funcs.BindBuffer(gl.ARRAY_BUFFER, h)
}

// Bind binds b to the array buffer target.
func (bs Buffers) Bind(b *Buffer) error {
	d := bs.d
	return bind(d, "Buffers.Bind", &d.arrayBuf, b, d.bindArrayBuffer)
}

// Unbind clears the array buffer target.
func (bs Buffers) Unbind() {
	d := bs.d
	d.arrayBuf.set(nil, d.bindArrayBuffer)
}

// IsBound reports whether b is bound to the array buffer target.
func (bs Buffers) IsBound(b *Buffer) bool {
	return b != nil && bs.d.arrayBuf.holds(b)
}

// Bound returns the buffer bound to the array buffer target, or nil.
func (bs Buffers) Bound() *Buffer {
	return bs.d.arrayBuf.get()
}

// Delete deletes b. Binding points holding b are cleared. Vertex arrays that
// incorporate b lose their reference to it; drawing with them fails until
// they are rebuilt.
func (bs Buffers) Delete(b *Buffer) error {
	const op = "Buffers.Delete"
	d := bs.d
	if err := d.retire(op, b); err != nil {
		return err
	}
	d.funcs.DeleteBuffer(gl.Buffer{V: b.handle})
	d.arrayBuf.clear(b)
	if dv := d.defaultVertexArray; dv.index == b {
		dv.index = nil
	}
	d.refs.dropReferent(b)
	return nil
}
