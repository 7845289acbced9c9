// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"testing"

	"gioui.org/glsafe/gl"
	"gioui.org/glsafe/internal/glstub"
)

func newTestDevice(t *testing.T) (*Device, *glstub.Functions) {
	t.Helper()
	f := glstub.New()
	d, err := NewDevice(f, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Release)
	f.Reset()
	return d, f
}

// newSibling creates a second device in the share group of d, driving the
// same fake driver.
func newSibling(t *testing.T, d *Device, f *glstub.Functions) *Device {
	t.Helper()
	s, err := NewDevice(f, d.Context().Group(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Release)
	f.Reset()
	return s
}

func mustBuffer(t *testing.T, d *Device, size int) *Buffer {
	t.Helper()
	b, err := d.Buffers().New(size, gl.STATIC_DRAW)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func mustTexture(t *testing.T, d *Device, format gl.Enum) *Texture {
	t.Helper()
	tex, err := d.Textures().New2D(format, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func TestNewDevice(t *testing.T) {
	d, _ := newTestDevice(t)
	lim := d.Limits()
	if lim.MaxVertexAttribs != 16 {
		t.Errorf("got %d vertex attribs, expected 16", lim.MaxVertexAttribs)
	}
	if lim.MaxTextureUnits != 32 {
		t.Errorf("got %d texture units, expected 32", lim.MaxTextureUnits)
	}
	if d.glver != [2]int{3, 3} {
		t.Errorf("got version %v, expected 3.3", d.glver)
	}
	if !d.Context().Group().Contains(d.Context()) {
		t.Error("device context is not a member of its group")
	}
	if v := d.VertexArrays().Bound(); v == nil || !v.Default() {
		t.Errorf("expected the default vertex array to be bound, got %v", v)
	}
	if fb := d.Framebuffers().BoundDraw(); fb == nil || !fb.Default() {
		t.Errorf("expected the default framebuffer to be bound, got %v", fb)
	}
}

func TestDeviceLimitFloor(t *testing.T) {
	f := glstub.New()
	f.Limits[gl.MAX_VERTEX_ATTRIBS] = 8
	_, err := NewDevice(f, nil, Config{})
	if !errors.Is(err, ErrNonCompliantDevice) {
		t.Fatalf("got %v, expected ErrNonCompliantDevice", err)
	}
	var lerr *LimitError
	if !errors.As(err, &lerr) {
		t.Fatalf("got %T, expected *LimitError", err)
	}
	if lerr.Limit != "GL_MAX_VERTEX_ATTRIBS" || lerr.Reported != 8 || lerr.Required != 16 {
		t.Errorf("unexpected limit error %+v", lerr)
	}
}

func TestDeviceLimitClamp(t *testing.T) {
	f := glstub.New()
	f.Limits[gl.MAX_VERTEX_ATTRIBS] = 64
	d, err := NewDevice(f, nil, Config{MaxVertexAttribs: 24})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if got := d.Limits().MaxVertexAttribs; got != 24 {
		t.Errorf("got %d vertex attribs, expected clamp to 24", got)
	}
	if _, err := NewDevice(f, nil, Config{MaxTextureUnits: 4}); err == nil {
		t.Error("expected ceiling below the minimum to be rejected")
	}
}

func TestDeviceGLES(t *testing.T) {
	f := glstub.New()
	f.Version = "OpenGL ES 3.0 glstub"
	d, err := NewDevice(f, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if !d.Config().GLES {
		t.Error("expected GLES to be detected from the version string")
	}
}

func TestRelease(t *testing.T) {
	f := glstub.New()
	d, err := NewDevice(f, nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	b := mustBuffer(t, d, 64)
	tex := mustTexture(t, d, gl.RGBA8)
	fb, err := d.Framebuffers().Allocate(FramebufferDesc{Colors: []ColorAttachment{ColorTexture2D{Texture: tex}}})
	if err != nil {
		t.Fatal(err)
	}
	vb := d.VertexArrays().Builder()
	if err := vb.SetAttrib(0, FloatAttrib{Buffer: b, Size: 2, Type: gl.FLOAT}); err != nil {
		t.Fatal(err)
	}
	v, err := vb.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	group := d.Context().Group()
	d.Release()
	for _, o := range []Object{b, tex, fb, v} {
		if !o.Deleted() {
			t.Errorf("%v survived Release", o)
		}
	}
	if group.Len() != 0 {
		t.Errorf("share group still has %d members", group.Len())
	}
	if f.Live(tex.Handle()) || f.Live(fb.Handle()) {
		t.Error("driver objects survived Release")
	}
}
