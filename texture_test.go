// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gioui.org/glsafe/gl"
)

func TestTextureBind(t *testing.T) {
	d, f := newTestDevice(t)
	t1 := mustTexture(t, d, gl.RGBA8)
	t2 := mustTexture(t, d, gl.RGBA8)
	texs := d.Textures()
	f.Reset()
	if err := texs.Bind(0, t1); err != nil {
		t.Fatal(err)
	}
	if err := texs.Bind(0, t1); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BindTexture"); n != 1 {
		t.Errorf("got %d BindTexture calls, expected 1", n)
	}
	if n := f.Calls("ActiveTexture"); n != 0 {
		t.Errorf("got %d ActiveTexture calls for the active unit, expected 0", n)
	}
	if err := texs.Bind(5, t2); err != nil {
		t.Fatal(err)
	}
	if err := texs.Bind(5, t1); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("ActiveTexture"); n != 1 {
		t.Errorf("got %d ActiveTexture calls, expected 1", n)
	}
	if texs.Bound(5, Texture2D) != t1 || texs.Bound(0, Texture2D) != t1 {
		t.Error("unexpected texture bindings")
	}
	if texs.IsBound(t2) {
		t.Error("replaced texture still reported bound")
	}
	if err := texs.Bind(32, t1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an out of range unit, expected ErrInvalidArgument", err)
	}
}

func TestTextureTargets(t *testing.T) {
	d, _ := newTestDevice(t)
	tex := mustTexture(t, d, gl.RGBA8)
	cube, err := d.Textures().NewCube(gl.RGBA8, 16)
	if err != nil {
		t.Fatal(err)
	}
	texs := d.Textures()
	if err := texs.Bind(1, tex); err != nil {
		t.Fatal(err)
	}
	if err := texs.Bind(1, cube); err != nil {
		t.Fatal(err)
	}
	if texs.Bound(1, Texture2D) != tex || texs.Bound(1, TextureCube) != cube {
		t.Error("2D and cube bindings of one unit interfere")
	}
}

func TestTextureUnbindOnDelete(t *testing.T) {
	d, _ := newTestDevice(t)
	tex := mustTexture(t, d, gl.RGBA8)
	texs := d.Textures()
	for _, unit := range []int{0, 4, 9} {
		if err := texs.Bind(unit, tex); err != nil {
			t.Fatal(err)
		}
	}
	if err := texs.Delete(tex); err != nil {
		t.Fatal(err)
	}
	for _, unit := range []int{0, 4, 9} {
		if texs.Bound(unit, Texture2D) != nil {
			t.Errorf("unit %d still holds the deleted texture", unit)
		}
	}
	if err := texs.Bind(0, tex); !errors.Is(err, ErrResourceDeleted) {
		t.Errorf("got %v, expected ErrResourceDeleted", err)
	}
}

func TestTextureUnbindAfterSiblingDelete(t *testing.T) {
	d1, f := newTestDevice(t)
	d2 := newSibling(t, d1, f)
	tex := mustTexture(t, d1, gl.RGBA8)
	if err := d2.Textures().Bind(2, tex); err != nil {
		t.Fatal(err)
	}
	if err := d1.Textures().Delete(tex); err != nil {
		t.Fatal(err)
	}
	if d2.Textures().Bound(2, Texture2D) != nil {
		t.Fatal("texture deleted in a sibling still reported bound")
	}
	f.Reset()
	if err := d2.Textures().Unbind(2, Texture2D); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BindTexture"); n != 1 {
		t.Errorf("got %d BindTexture calls, expected the stale name to be unbound", n)
	}
	if err := d2.Textures().Unbind(2, Texture2D); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BindTexture"); n != 1 {
		t.Errorf("got %d BindTexture calls, expected the second unbind to be elided", n)
	}
}

func TestTextureNew(t *testing.T) {
	d, _ := newTestDevice(t)
	if _, err := d.Textures().New2D(gl.RGBA8, 0, 16); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an empty texture, expected ErrInvalidArgument", err)
	}
	if _, err := d.Textures().New2D(gl.RGBA8, 8192, 16); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an oversized texture, expected ErrInvalidArgument", err)
	}
	if _, err := d.Textures().New2D(gl.TRIANGLES, 16, 16); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an unknown format, expected ErrInvalidArgument", err)
	}
	tex := mustTexture(t, d, gl.RGBA16F)
	if tex.Size() != image.Pt(64, 64) || tex.Format() != gl.RGBA16F || tex.Target() != Texture2D {
		t.Errorf("unexpected texture %v %v %v", tex.Size(), tex.Format(), tex.Target())
	}
}

func TestTextureUploadRestoresBinding(t *testing.T) {
	d, f := newTestDevice(t)
	t1 := mustTexture(t, d, gl.RGBA8)
	t2 := mustTexture(t, d, gl.RGBA8)
	texs := d.Textures()
	if err := texs.Bind(0, t1); err != nil {
		t.Fatal(err)
	}
	f.Reset()
	if err := texs.Upload(t2, image.Rect(0, 0, 2, 2), make([]byte, 2*2*4)); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BindTexture"); n != 2 {
		t.Errorf("got %d BindTexture calls, expected 2", n)
	}
	if texs.Bound(0, Texture2D) != t1 {
		t.Error("upload changed the tracked binding")
	}
	f.Reset()
	if err := texs.Upload(t1, image.Rect(0, 0, 1, 1), make([]byte, 4)); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BindTexture"); n != 0 {
		t.Errorf("got %d BindTexture calls uploading to the bound texture, expected 0", n)
	}
	if err := texs.Upload(t1, image.Rect(60, 60, 70, 70), make([]byte, 400)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, expected ErrInvalidArgument", err)
	}
	if err := texs.Upload(t1, image.Rect(0, 0, 2, 2), make([]byte, 4)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for short data, expected ErrInvalidArgument", err)
	}
}

func TestTextureUploadCubeFace(t *testing.T) {
	d, f := newTestDevice(t)
	cube, err := d.Textures().NewCube(gl.R8, 4)
	if err != nil {
		t.Fatal(err)
	}
	f.Reset()
	if err := d.Textures().UploadCubeFace(cube, CubePositiveZ, image.Rect(0, 0, 3, 1), make([]byte, 3)); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("PixelStorei"); n != 2 {
		t.Errorf("got %d PixelStorei calls for an unaligned row, expected 2", n)
	}
	if err := d.Textures().Upload(cube, image.Rect(0, 0, 1, 1), make([]byte, 1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v uploading a cube map as 2D, expected ErrInvalidArgument", err)
	}
}

func TestTextureUploadImage(t *testing.T) {
	d, f := newTestDevice(t)
	tex, err := d.Textures().New2D(gl.RGBA8, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 128})
	f.Reset()
	if err := d.Textures().UploadImage(tex, img); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("TexSubImage2D"); n != 1 {
		t.Errorf("got %d TexSubImage2D calls, expected 1", n)
	}
	if err := d.Textures().UploadImage(tex, image.NewGray(image.Rect(0, 0, 8, 8))); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an oversized image, expected ErrInvalidArgument", err)
	}
	float := mustTexture(t, d, gl.R32F)
	if err := d.Textures().UploadImage(float, img); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for a float texture, expected ErrInvalidArgument", err)
	}
	if err := d.Textures().UploadFloats(float, image.Rect(0, 0, 2, 1), []float32{.5, 1}); err != nil {
		t.Error(err)
	}
}
