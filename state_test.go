// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"image"
	"testing"

	"gioui.org/glsafe/gl"
)

func TestStateElision(t *testing.T) {
	d, f := newTestDevice(t)
	s := d.State()

	// Initial values issue nothing.
	s.SetDepthTest(false)
	s.SetDepthMask(true)
	s.SetBlend(false)
	s.SetColorMask(true, true, true, true)
	if err := s.SetDepthFunc(gl.LESS); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBlendFunc(gl.ONE, gl.ZERO, gl.ONE, gl.ZERO); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFrontFace(gl.CCW); err != nil {
		t.Fatal(err)
	}
	if n := len(f.Order()); n != 0 {
		t.Errorf("got driver calls %v for initial state", f.Order())
	}

	for i := 0; i < 2; i++ {
		s.SetDepthTest(true)
		s.SetBlend(true)
		if err := s.SetBlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA); err != nil {
			t.Fatal(err)
		}
		if err := s.SetStencilFunc(gl.EQUAL, 1, 0xff); err != nil {
			t.Fatal(err)
		}
		if err := s.SetStencilOp(gl.KEEP, gl.KEEP, gl.REPLACE); err != nil {
			t.Fatal(err)
		}
		if err := s.SetCullFace(gl.FRONT); err != nil {
			t.Fatal(err)
		}
		s.SetPolygonOffset(true, 1, 2)
		if err := s.SetViewport(image.Rect(0, 0, 640, 480)); err != nil {
			t.Fatal(err)
		}
		if err := s.SetScissor(image.Rect(10, 10, 20, 20)); err != nil {
			t.Fatal(err)
		}
	}
	for name, exp := range map[string]int{
		"Enable":            3,
		"BlendFuncSeparate": 1,
		"StencilFunc":       1,
		"StencilOp":         1,
		"CullFace":          1,
		"PolygonOffset":     1,
		"Viewport":          1,
		"Scissor":           1,
	} {
		if got := f.Calls(name); got != exp {
			t.Errorf("got %d %s calls, expected %d", got, name, exp)
		}
	}
}

func TestStateValidation(t *testing.T) {
	d, _ := newTestDevice(t)
	s := d.State()
	checks := []error{
		s.SetDepthFunc(gl.TRIANGLES),
		s.SetStencilFunc(gl.KEEP, 0, 0),
		s.SetStencilOp(gl.KEEP, gl.LESS, gl.KEEP),
		s.SetBlendFunc(gl.ONE, gl.ONE, gl.ONE, gl.LESS),
		s.SetBlendEquation(gl.FUNC_ADD, gl.ONE),
		s.SetCullFace(gl.CCW),
		s.SetFrontFace(gl.BACK),
		s.SetViewport(image.Rectangle{}),
	}
	for i, err := range checks {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%d: got %v, expected ErrInvalidArgument", i, err)
		}
	}
}

func TestClearing(t *testing.T) {
	d, f := newTestDevice(t)
	c := d.Clearing()
	c.SetColor(0, 0, 0, 0)
	c.SetDepth(1)
	c.SetStencil(0)
	if n := len(f.Order()); n != 0 {
		t.Errorf("got driver calls %v for initial clear values", f.Order())
	}
	if err := c.ClearColor(1, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.ClearColor(1, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if f.Calls("ClearColor") != 1 || f.Calls("Clear") != 2 {
		t.Errorf("got %d ClearColor and %d Clear calls, expected 1 and 2", f.Calls("ClearColor"), f.Calls("Clear"))
	}
	if err := c.Clear(gl.TRIANGLES); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, expected ErrInvalidArgument", err)
	}

	tex := mustTexture(t, d, gl.RGBA8)
	fb := mustFramebuffer(t, d, colorDesc(tex))
	if err := d.Framebuffers().BindDraw(fb); err != nil {
		t.Fatal(err)
	}
	if err := d.Textures().Delete(tex); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(gl.COLOR_BUFFER_BIT); !errors.Is(err, ErrResourceDeleted) {
		t.Errorf("got %v clearing a framebuffer with a deleted attachment, expected ErrResourceDeleted", err)
	}
}
