// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"gioui.org/glsafe/gl"
	"gioui.org/glsafe/internal/byteslice"
)

// TextureTarget is the binding target a texture was created for.
type TextureTarget uint8

const (
	Texture2D TextureTarget = iota
	TextureCube
)

func (t TextureTarget) gl() gl.Enum {
	if t == TextureCube {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

func (t TextureTarget) String() string {
	if t == TextureCube {
		return "cube map"
	}
	return "2D"
}

// CubeFace selects one face of a cube map texture.
type CubeFace uint8

const (
	CubePositiveX CubeFace = iota
	CubeNegativeX
	CubePositiveY
	CubeNegativeY
	CubePositiveZ
	CubeNegativeZ
)

func (f CubeFace) gl() gl.Enum {
	return gl.TEXTURE_CUBE_MAP_POSITIVE_X + gl.Enum(f)
}

// Texture is a shared driver texture object with immutable dimensions and
// internal format.
type Texture struct {
	object
	target   TextureTarget
	internal gl.Enum
	width    int
	height   int
}

func (t *Texture) Target() TextureTarget {
	return t.target
}

// Format returns the sized internal format.
func (t *Texture) Format() gl.Enum {
	return t.internal
}

func (t *Texture) Size() image.Point {
	return image.Pt(t.width, t.height)
}

// Filter is a texture sampling filter.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) gl() int {
	if f == FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

// Textures tracks the 2D and cube map bindings of every texture unit.
type Textures struct {
	d *Device
}

// New2D allocates a 2D texture with undefined contents.
func (ts Textures) New2D(internal gl.Enum, width, height int) (*Texture, error) {
	const op = "Textures.New2D"
	if max := ts.d.limits.MaxTextureSize; width <= 0 || height <= 0 || width > max || height > max {
		return nil, invalidArg(op, "size %dx%d outside (0,%d]", width, height, max)
	}
	return ts.create(op, Texture2D, internal, width, height)
}

// NewCube allocates a cube map texture with square faces of the given size.
func (ts Textures) NewCube(internal gl.Enum, size int) (*Texture, error) {
	const op = "Textures.NewCube"
	if max := ts.d.limits.MaxCubeMapTextureSize; size <= 0 || size > max {
		return nil, invalidArg(op, "size %d outside (0,%d]", size, max)
	}
	return ts.create(op, TextureCube, internal, size, size)
}

func (ts Textures) create(op string, target TextureTarget, internal gl.Enum, width, height int) (*Texture, error) {
	d := ts.d
	format, typ, ok := d.formats.Transfer(internal)
	if !ok {
		return nil, invalidArg(op, "unknown internal format %#x", internal)
	}
	glErr(d.funcs)
	t := &Texture{target: target, internal: internal, width: width, height: height}
	t.init(kindTexture, d.funcs.CreateTexture().V, d.ctx)
	d.track(t)
	ts.withBound(t, func() {
		tt := target.gl()
		d.funcs.TexParameteri(tt, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		d.funcs.TexParameteri(tt, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		d.funcs.TexParameteri(tt, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		d.funcs.TexParameteri(tt, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		if target == TextureCube {
			for f := CubePositiveX; f <= CubeNegativeZ; f++ {
				d.funcs.TexImage2D(f.gl(), 0, internal, width, height, format, typ, nil)
			}
		} else {
			d.funcs.TexImage2D(tt, 0, internal, width, height, format, typ, nil)
		}
	})
	if err := glErr(d.funcs); err != nil {
		ts.Delete(t)
		return nil, driverErr(op, t, err)
	}
	return t, nil
}

func (ts Textures) unit(op string, unit int) (*textureUnit, error) {
	units := ts.d.texUnits.units
	if unit < 0 || unit >= len(units) {
		return nil, invalidArg(op, "texture unit %d outside [0,%d)", unit, len(units))
	}
	return &units[unit], nil
}

func (u *textureUnit) point(target TextureTarget) *bindPoint[*Texture] {
	if target == TextureCube {
		return &u.cube
	}
	return &u.tex2D
}

func (d *Device) activeTexture(unit int) {
	if d.texUnits.active == unit {
		return
	}
	d.funcs.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
	d.texUnits.active = unit
}

func (d *Device) bindTexture(target TextureTarget) func(*Texture) {
	return func(t *Texture) {
		var h gl.Texture
		if t != nil {
			h.V = t.handle
		}
		d.funcs.BindTexture(target.gl(), h)
	}
}

// Bind binds t to the target it was created for on unit. Binding a texture
// attached to the bound draw framebuffer fails with ErrFeedbackLoop.
func (ts Textures) Bind(unit int, t *Texture) error {
	const op = "Textures.Bind"
	d := ts.d
	u, err := ts.unit(op, unit)
	if err != nil {
		return err
	}
	if err := d.use(op, t); err != nil {
		return err
	}
	p := u.point(t.target)
	if p.holds(t) {
		return nil
	}
	if fb := d.drawFBO.get(); fb.attaches(t) {
		return newError(op, ErrFeedbackLoop, t, "attached to bound draw %v", fb)
	}
	d.activeTexture(unit)
	p.set(t, d.bindTexture(t.target))
	return nil
}

// Unbind clears target on unit.
func (ts Textures) Unbind(unit int, target TextureTarget) error {
	d := ts.d
	u, err := ts.unit("Textures.Unbind", unit)
	if err != nil {
		return err
	}
	p := u.point(target)
	if p.cur == nil {
		return nil
	}
	d.activeTexture(unit)
	p.set(nil, d.bindTexture(target))
	return nil
}

// Bound returns the texture bound to target on unit, or nil.
func (ts Textures) Bound(unit int, target TextureTarget) *Texture {
	u, err := ts.unit("Textures.Bound", unit)
	if err != nil {
		return nil
	}
	return u.point(target).get()
}

// IsBound reports whether t is bound on any unit.
func (ts Textures) IsBound(t *Texture) bool {
	return t != nil && len(ts.d.unitsHolding(t)) > 0
}

// unitsHolding returns the units t is bound on.
func (d *Device) unitsHolding(t *Texture) []int {
	var units []int
	for i := range d.texUnits.units {
		if d.texUnits.units[i].point(t.target).holds(t) {
			units = append(units, i)
		}
	}
	return units
}

// withBound runs fn with t bound on the active unit and restores the
// previous binding afterwards. The tracked state is left untouched, so the
// feedback check does not apply.
func (ts Textures) withBound(t *Texture, fn func()) {
	d := ts.d
	p := d.texUnits.units[d.texUnits.active].point(t.target)
	prev := p.get()
	native := d.bindTexture(t.target)
	if prev != t {
		native(t)
	}
	fn()
	if prev != t {
		native(prev)
	}
}

// Upload replaces a rectangle of level 0 of the 2D texture t. The data
// must be tightly packed in the transfer format of t.
func (ts Textures) Upload(t *Texture, r image.Rectangle, data []byte) error {
	const op = "Textures.Upload"
	if err := ts.d.use(op, t); err != nil {
		return err
	}
	if t.target != Texture2D {
		return newError(op, ErrInvalidArgument, t, "not a 2D texture")
	}
	return ts.upload(op, t, gl.TEXTURE_2D, r, data)
}

// UploadCubeFace replaces a rectangle of level 0 of one face of the cube
// map t.
func (ts Textures) UploadCubeFace(t *Texture, face CubeFace, r image.Rectangle, data []byte) error {
	const op = "Textures.UploadCubeFace"
	if err := ts.d.use(op, t); err != nil {
		return err
	}
	if t.target != TextureCube {
		return newError(op, ErrInvalidArgument, t, "not a cube map")
	}
	if face > CubeNegativeZ {
		return newError(op, ErrInvalidArgument, t, "unknown face %d", face)
	}
	return ts.upload(op, t, face.gl(), r, data)
}

func (ts Textures) upload(op string, t *Texture, target gl.Enum, r image.Rectangle, data []byte) error {
	d := ts.d
	if r.Empty() || !r.In(image.Rect(0, 0, t.width, t.height)) {
		return newError(op, ErrInvalidArgument, t, "rectangle %v outside %dx%d", r, t.width, t.height)
	}
	format, typ, _ := d.formats.Transfer(t.internal)
	bpp := d.formats.BytesPerPixel(t.internal)
	if n := r.Dx() * r.Dy() * bpp; len(data) != n {
		return newError(op, ErrInvalidArgument, t, "got %d bytes, want %d", len(data), n)
	}
	ts.withBound(t, func() {
		if r.Dx()*bpp%4 != 0 {
			d.funcs.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
			defer d.funcs.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
		}
		d.funcs.TexSubImage2D(target, 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), format, typ, data)
	})
	return nil
}

// UploadImage converts img to RGBA and uploads it to the top left corner
// of the RGBA8 or SRGB8_ALPHA8 2D texture t.
func (ts Textures) UploadImage(t *Texture, img image.Image) error {
	const op = "Textures.UploadImage"
	if err := ts.d.use(op, t); err != nil {
		return err
	}
	if t.internal != gl.RGBA8 && t.internal != gl.SRGB8_ALPHA8 {
		return newError(op, ErrInvalidArgument, t, "format %#x is not 8-bit RGBA", t.internal)
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rectangle{Max: b.Size()})
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return ts.Upload(t, image.Rectangle{Max: b.Size()}, rgba.Pix[:b.Dx()*b.Dy()*4])
}

// UploadFloats uploads float32 texels to a float format texture.
func (ts Textures) UploadFloats(t *Texture, r image.Rectangle, data []float32) error {
	return ts.Upload(t, r, byteslice.Slice(data))
}

// SetFilter sets the minification and magnification filters of t.
func (ts Textures) SetFilter(t *Texture, min, mag Filter) error {
	if err := ts.d.use("Textures.SetFilter", t); err != nil {
		return err
	}
	ts.withBound(t, func() {
		tt := t.target.gl()
		ts.d.funcs.TexParameteri(tt, gl.TEXTURE_MIN_FILTER, min.gl())
		ts.d.funcs.TexParameteri(tt, gl.TEXTURE_MAG_FILTER, mag.gl())
	})
	return nil
}

// Delete deletes t and clears every unit it is bound on. Framebuffers that
// attach t lose their reference to it and can no longer be bound for
// drawing.
func (ts Textures) Delete(t *Texture) error {
	const op = "Textures.Delete"
	d := ts.d
	if err := d.retire(op, t); err != nil {
		return err
	}
	d.funcs.DeleteTexture(gl.Texture{V: t.handle})
	for i := range d.texUnits.units {
		u := &d.texUnits.units[i]
		u.tex2D.clear(t)
		u.cube.clear(t)
	}
	if owners := d.refs.dropReferent(t); len(owners) > 0 {
		d.log.Debug("glsafe: deleted texture was attached", slog.String("texture", t.String()), slog.Int("framebuffers", len(owners)))
	}
	return nil
}
