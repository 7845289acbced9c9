// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"testing"

	"gioui.org/glsafe/gl"
)

func TestDrawValidation(t *testing.T) {
	d, f := newTestDevice(t)
	dr := d.Drawing()
	if err := dr.DrawArrays(gl.TRIANGLES, 0, 3); !errors.Is(err, ErrResourceNotBound) {
		t.Errorf("got %v drawing without a program, expected ErrResourceNotBound", err)
	}
	mustProgram(t, d)
	b := mustBuffer(t, d, 64)
	vb := d.VertexArrays().Builder()
	if err := vb.SetAttrib(0, FloatAttrib{Buffer: b, Size: 2, Type: gl.FLOAT}); err != nil {
		t.Fatal(err)
	}
	if _, err := vb.Allocate(); err != nil {
		t.Fatal(err)
	}
	if err := dr.DrawArrays(gl.TRIANGLES, 0, 3); err != nil {
		t.Fatal(err)
	}
	if err := dr.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, 10); err != nil {
		t.Fatal(err)
	}
	if err := dr.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, 0); !errors.Is(err, ErrResourceNotBound) {
		t.Errorf("got %v drawing indexed without an index buffer, expected ErrResourceNotBound", err)
	}
	if err := dr.DrawArrays(gl.FLOAT, 0, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an unknown mode, expected ErrInvalidArgument", err)
	}
	if err := dr.DrawArrays(gl.TRIANGLES, -1, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for a negative first, expected ErrInvalidArgument", err)
	}
	if f.Calls("DrawArrays") != 1 || f.Calls("DrawArraysInstanced") != 1 || f.Calls("DrawElements") != 0 {
		t.Error("unexpected draw calls reached the driver")
	}
}

func TestDrawElements(t *testing.T) {
	d, f := newTestDevice(t)
	mustProgram(t, d)
	idx := mustBuffer(t, d, 12)
	if err := d.IndexBuffers().Bind(idx); err != nil {
		t.Fatal(err)
	}
	dr := d.Drawing()
	if err := dr.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, 0); err != nil {
		t.Fatal(err)
	}
	if err := dr.DrawElementsInstanced(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, 0, 2); err != nil {
		t.Fatal(err)
	}
	if err := dr.DrawElements(gl.TRIANGLES, 6, gl.FLOAT, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for a float index type, expected ErrInvalidArgument", err)
	}
	if err := d.Buffers().Delete(idx); err != nil {
		t.Fatal(err)
	}
	if err := dr.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, 0); !errors.Is(err, ErrResourceNotBound) {
		t.Errorf("got %v after deleting the index buffer, expected ErrResourceNotBound", err)
	}
	if f.Calls("DrawElements") != 1 || f.Calls("DrawElementsInstanced") != 1 {
		t.Error("unexpected indexed draw calls")
	}
}

func TestDrawFeedback(t *testing.T) {
	d, _ := newTestDevice(t)
	mustProgram(t, d)
	tex := mustTexture(t, d, gl.RGBA8)
	fb := mustFramebuffer(t, d, colorDesc(tex))
	if err := d.Framebuffers().BindDraw(fb); err != nil {
		t.Fatal(err)
	}
	if err := d.Drawing().DrawArrays(gl.POINTS, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := d.Textures().Delete(tex); err != nil {
		t.Fatal(err)
	}
	if err := d.Drawing().DrawArrays(gl.POINTS, 0, 1); !errors.Is(err, ErrResourceDeleted) {
		t.Errorf("got %v drawing to a deleted attachment, expected ErrResourceDeleted", err)
	}
}
