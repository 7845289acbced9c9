// SPDX-License-Identifier: Unlicense OR MIT

package format

import (
	"testing"

	"gioui.org/glsafe/gl"
)

func TestDefaultRenderability(t *testing.T) {
	tests := []struct {
		f                     gl.Enum
		color, depth, stencil bool
	}{
		{gl.RGBA8, true, false, false},
		{gl.SRGB8_ALPHA8, true, false, false},
		{gl.RGBA32F, false, false, false},
		{gl.DEPTH_COMPONENT24, false, true, false},
		{gl.DEPTH24_STENCIL8, false, true, true},
		{gl.LUMINANCE, false, false, false},
	}
	for _, test := range tests {
		if got := Default.ColorRenderable(test.f); got != test.color {
			t.Errorf("%#x: color renderable %v, expected %v", test.f, got, test.color)
		}
		if got := Default.DepthRenderable(test.f); got != test.depth {
			t.Errorf("%#x: depth renderable %v, expected %v", test.f, got, test.depth)
		}
		if got := Default.StencilRenderable(test.f); got != test.stencil {
			t.Errorf("%#x: stencil renderable %v, expected %v", test.f, got, test.stencil)
		}
	}
}

func TestTransfer(t *testing.T) {
	f, typ, ok := Default.Transfer(gl.RGBA8)
	if !ok || f != gl.RGBA || typ != gl.UNSIGNED_BYTE {
		t.Errorf("RGBA8 transfer: got (%#x, %#x, %v)", f, typ, ok)
	}
	if _, _, ok := Default.Transfer(gl.LUMINANCE); ok {
		t.Error("unsized LUMINANCE should not be in the default table")
	}
	if got := Default.BytesPerPixel(gl.RGBA16F); got != 8 {
		t.Errorf("RGBA16F bytes per pixel: got %d, expected 8", got)
	}
}
