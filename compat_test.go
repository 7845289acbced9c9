// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"testing"

	"gioui.org/glsafe/gl"
	"gioui.org/glsafe/internal/glstub"
)

func TestUnsharedContext(t *testing.T) {
	d1, _ := newTestDevice(t)
	d2, _ := newTestDevice(t)
	b := mustBuffer(t, d1, 16)
	if err := d2.Buffers().Bind(b); !errors.Is(err, ErrWrongContext) {
		t.Errorf("got %v, expected ErrWrongContext", err)
	}
	if d2.Context().Compatible(b) {
		t.Error("buffer reported compatible with an unrelated context")
	}
	if err := d2.Buffers().Delete(b); !errors.Is(err, ErrWrongContext) {
		t.Errorf("got %v, expected ErrWrongContext", err)
	}
	if b.Deleted() {
		t.Error("rejected delete marked the buffer deleted")
	}
}

func TestSharedContext(t *testing.T) {
	d1, f := newTestDevice(t)
	d2 := newSibling(t, d1, f)
	b := mustBuffer(t, d1, 16)
	if err := d2.Buffers().Bind(b); err != nil {
		t.Errorf("binding a shared buffer from a sibling: %v", err)
	}
	tex := mustTexture(t, d1, gl.RGBA8)
	if err := d2.Textures().Bind(0, tex); err != nil {
		t.Errorf("binding a shared texture from a sibling: %v", err)
	}
	v, err := d1.VertexArrays().Builder().Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if err := d2.VertexArrays().Bind(v); !errors.Is(err, ErrWrongContext) {
		t.Errorf("got %v binding a vertex array from a sibling, expected ErrWrongContext", err)
	}
	fb, err := d1.Framebuffers().Allocate(FramebufferDesc{Colors: []ColorAttachment{ColorTexture2D{Texture: tex}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d2.Framebuffers().BindRead(fb); !errors.Is(err, ErrWrongContext) {
		t.Errorf("got %v binding a framebuffer from a sibling, expected ErrWrongContext", err)
	}
	q, err := d1.Queries().NewTimer()
	if err != nil {
		t.Fatal(err)
	}
	if err := d2.Queries().Begin(q); !errors.Is(err, ErrWrongContext) {
		t.Errorf("got %v beginning a query from a sibling, expected ErrWrongContext", err)
	}
}

func TestSiblingDeleteClearsLazily(t *testing.T) {
	d1, f := newTestDevice(t)
	d2 := newSibling(t, d1, f)
	b := mustBuffer(t, d1, 16)
	if err := d2.Buffers().Bind(b); err != nil {
		t.Fatal(err)
	}
	if err := d1.Buffers().Delete(b); err != nil {
		t.Fatal(err)
	}
	if d2.Buffers().Bound() != nil {
		t.Error("buffer deleted in a sibling still reported bound")
	}
	if err := d2.Buffers().Delete(b); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("got %v, expected ErrAlreadyDeleted", err)
	}
}

func TestSiblingDeleteConcurrent(t *testing.T) {
	d1, _ := newTestDevice(t)
	// The sibling gets its own fake driver so the two goroutines share no
	// driver state.
	d2, err := NewDevice(glstub.New(), d1.Context().Group(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer d2.Release()
	b := mustBuffer(t, d1, 16)
	errs := make(chan error, 2)
	go func() { errs <- d1.Buffers().Delete(b) }()
	go func() { errs <- d2.Buffers().Delete(b) }()
	var ok, already int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyDeleted):
			already++
		default:
			t.Errorf("unexpected error %v", err)
		}
	}
	if ok != 1 || already != 1 {
		t.Errorf("got %d successful and %d rejected deletes, expected one each", ok, already)
	}
}

// interruptingDriver runs fn once, just before the named driver call.
type interruptingDriver struct {
	*glstub.Functions
	during string
	fn     func()
}

func (d *interruptingDriver) interrupt(name string) {
	if d.during == name && d.fn != nil {
		fn := d.fn
		d.fn = nil
		fn()
	}
}

func (d *interruptingDriver) DrawBuffers(bufs []gl.Enum) {
	d.interrupt("DrawBuffers")
	d.Functions.DrawBuffers(bufs)
}

func (d *interruptingDriver) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	d.interrupt("VertexAttribPointer")
	d.Functions.VertexAttribPointer(dst, size, ty, normalized, stride, offset)
}

func newInterruptedDevice(t *testing.T, during string) (*Device, *Device, *interruptingDriver) {
	t.Helper()
	f := glstub.New()
	drv := &interruptingDriver{Functions: f, during: during}
	d, err := NewDevice(drv, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Release)
	return d, newSibling(t, d, f), drv
}

func TestSiblingDeleteDuringVertexArrayAllocate(t *testing.T) {
	d1, d2, drv := newInterruptedDevice(t, "VertexAttribPointer")
	b := mustBuffer(t, d1, 64)
	drv.fn = func() {
		if err := d2.Buffers().Delete(b); err != nil {
			t.Error(err)
		}
	}
	vb := d1.VertexArrays().Builder()
	if err := vb.SetAttrib(0, FloatAttrib{Buffer: b, Size: 2, Type: gl.FLOAT}); err != nil {
		t.Fatal(err)
	}
	v, err := vb.Allocate()
	if !errors.Is(err, ErrResourceDeleted) {
		t.Fatalf("got %v, expected ErrResourceDeleted", err)
	}
	if v == nil || v.Configured() {
		t.Errorf("expected an unconfigured vertex array, got %v", v)
	}
	if bound := d1.VertexArrays().Bound(); !bound.Default() {
		t.Errorf("got %v bound after rollback, expected the default vertex array", bound)
	}
	if refs := d1.ReferencesOf(v); len(refs) != 0 {
		t.Errorf("got references %v, expected none", refs)
	}
}

func TestSiblingDeleteDuringFramebufferAllocate(t *testing.T) {
	d1, d2, drv := newInterruptedDevice(t, "DrawBuffers")
	tex := mustTexture(t, d1, gl.RGBA8)
	drv.fn = func() {
		if err := d2.Textures().Delete(tex); err != nil {
			t.Error(err)
		}
	}
	fb, err := d1.Framebuffers().Allocate(FramebufferDesc{Colors: []ColorAttachment{ColorTexture2D{Texture: tex}}})
	var fbErr *FramebufferError
	if !errors.As(err, &fbErr) || fbErr.Status != StatusIncompleteAttachment {
		t.Fatalf("got %v, expected an incomplete attachment error", err)
	}
	if fb == nil || fb.Status() != StatusIncompleteAttachment {
		t.Errorf("expected the incomplete framebuffer to be returned, got %v", fb)
	}
	if refs := d1.ReferencesOf(fb); len(refs) != 0 {
		t.Errorf("got references %v, expected none", refs)
	}
}
