// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"image"
	"log/slog"

	"gioui.org/glsafe/gl"
)

// Framebuffer is a context-local framebuffer object. Its attachments are
// fixed at allocation. The device's default framebuffer has handle 0 and
// no attachments.
type Framebuffer struct {
	object
	isDefault bool
	desc      FramebufferDesc
	status    FramebufferStatus
}

func (fb *Framebuffer) Default() bool {
	return fb.isDefault
}

// Status returns the completeness status recorded at allocation or by the
// last Validate.
func (fb *Framebuffer) Status() FramebufferStatus {
	return fb.status
}

// Desc returns the attachment description fb was allocated from.
func (fb *Framebuffer) Desc() FramebufferDesc {
	return fb.desc
}

// textures returns the attached textures in attachment order, including
// deleted ones.
func (fb *Framebuffer) textures() []*Texture {
	var texs []*Texture
	for _, c := range fb.desc.Colors {
		texs = append(texs, c.colorAttachment().tex)
	}
	for _, a := range []DepthAttachment{fb.desc.Depth, fb.desc.DepthStencil} {
		if a != nil {
			texs = append(texs, a.depthAttachment().tex)
		}
	}
	return texs
}

// attaches reports whether t is attached to fb.
func (fb *Framebuffer) attaches(t *Texture) bool {
	if fb == nil || fb.isDefault {
		return false
	}
	for _, a := range fb.textures() {
		if a == t {
			return true
		}
	}
	return false
}

// FramebufferDesc describes the attachments of a framebuffer.
type FramebufferDesc struct {
	// Colors are attached to COLOR_ATTACHMENT0 onwards.
	Colors []ColorAttachment
	// DrawBuffers maps each fragment output to an index into Colors, or -1
	// to discard it. A nil DrawBuffers maps output i to Colors[i].
	DrawBuffers []int
	// Depth and DepthStencil are mutually exclusive.
	Depth        DepthAttachment
	DepthStencil DepthAttachment
}

type attachment struct {
	tex    *Texture
	target gl.Enum
	level  int
	kind   TextureTarget
}

// ColorAttachment is a ColorTexture2D or a ColorCubeFace.
type ColorAttachment interface {
	colorAttachment() attachment
}

// DepthAttachment is a DepthTexture2D.
type DepthAttachment interface {
	depthAttachment() attachment
}

// ColorTexture2D attaches a level of a 2D texture.
type ColorTexture2D struct {
	Texture *Texture
	Level   int
}

// ColorCubeFace attaches a level of one face of a cube map.
type ColorCubeFace struct {
	Texture *Texture
	Face    CubeFace
	Level   int
}

// DepthTexture2D attaches a level of a 2D depth or depth-stencil texture.
type DepthTexture2D struct {
	Texture *Texture
	Level   int
}

func (a ColorTexture2D) colorAttachment() attachment {
	return attachment{tex: a.Texture, target: gl.TEXTURE_2D, level: a.Level, kind: Texture2D}
}

func (a ColorCubeFace) colorAttachment() attachment {
	return attachment{tex: a.Texture, target: a.Face.gl(), level: a.Level, kind: TextureCube}
}

func (a DepthTexture2D) depthAttachment() attachment {
	return attachment{tex: a.Texture, target: gl.TEXTURE_2D, level: a.Level, kind: Texture2D}
}

// Framebuffers tracks the draw and read framebuffer binding points.
type Framebuffers struct {
	d *Device
}

// Default returns the device's default framebuffer.
func (fs Framebuffers) Default() *Framebuffer {
	return fs.d.defaultFramebuffer
}

func (d *Device) bindFramebuffer(target gl.Enum) func(*Framebuffer) {
	return func(fb *Framebuffer) {
		d.funcs.BindFramebuffer(target, gl.Framebuffer{V: fb.handle})
	}
}

// Allocate validates desc, creates the framebuffer and checks its
// completeness. The draw framebuffer binding is restored afterwards.
//
// An incomplete framebuffer is returned together with a
// *FramebufferError; the caller may inspect or delete it.
func (fs Framebuffers) Allocate(desc FramebufferDesc) (*Framebuffer, error) {
	const op = "Framebuffers.Allocate"
	d := fs.d
	drawBufs, err := fs.validateDesc(op, desc)
	if err != nil {
		return nil, err
	}
	desc.Colors = append([]ColorAttachment(nil), desc.Colors...)
	desc.DrawBuffers = append([]int(nil), desc.DrawBuffers...)
	glErr(d.funcs)
	fb := &Framebuffer{desc: desc}
	fb.init(kindFramebuffer, d.funcs.CreateFramebuffer().V, d.ctx)
	d.track(fb)
	fs.withDraw(fb, func() {
		for i, c := range desc.Colors {
			a := c.colorAttachment()
			d.funcs.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0+gl.Enum(i), a.target, gl.Texture{V: a.tex.handle}, a.level)
		}
		if desc.Depth != nil {
			a := desc.Depth.depthAttachment()
			d.funcs.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.DEPTH_ATTACHMENT, a.target, gl.Texture{V: a.tex.handle}, a.level)
		}
		if desc.DepthStencil != nil {
			a := desc.DepthStencil.depthAttachment()
			d.funcs.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, a.target, gl.Texture{V: a.tex.handle}, a.level)
		}
		d.funcs.DrawBuffers(drawBufs)
		fb.status, err = fs.check(op, fb)
	})
	if err != nil {
		return fb, err
	}
	code := d.lastStatus
	for _, t := range fb.textures() {
		if !d.refs.addReference(fb, t) {
			// Deleted from a sibling context after validation.
			fb.status = StatusIncompleteAttachment
			code = gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
	}
	if fb.status != StatusComplete {
		d.log.Warn("glsafe: framebuffer incomplete", slog.String("object", fb.String()), slog.String("status", fb.status.String()))
		return fb, &FramebufferError{Framebuffer: fb, Status: fb.status, Code: code}
	}
	return fb, nil
}

// validateDesc checks desc against the device limits and format table and
// returns the draw buffer list to submit.
func (fs Framebuffers) validateDesc(op string, desc FramebufferDesc) ([]gl.Enum, error) {
	d := fs.d
	if n := len(desc.Colors); n > d.limits.MaxColorAttachments {
		return nil, newError(op, ErrAttachmentMisconfigured, nil, "%d color attachments, device supports %d", n, d.limits.MaxColorAttachments)
	}
	if desc.Depth != nil && desc.DepthStencil != nil {
		return nil, newError(op, ErrAttachmentMisconfigured, nil, "depth and depth-stencil attachments are mutually exclusive")
	}
	check := func(what string, c attachment, renderable func(gl.Enum) bool) error {
		if err := d.use(op, c.tex); err != nil {
			return err
		}
		if c.tex.target != c.kind {
			return newError(op, ErrAttachmentMisconfigured, c.tex, "%s: %s texture attached as %s", what, c.tex.target, c.kind)
		}
		if c.level < 0 {
			return newError(op, ErrAttachmentMisconfigured, c.tex, "%s: negative level", what)
		}
		if !renderable(c.tex.internal) {
			return newError(op, ErrAttachmentMisconfigured, c.tex, "%s: format %#x not renderable", what, c.tex.internal)
		}
		return nil
	}
	for i, c := range desc.Colors {
		if c == nil {
			return nil, newError(op, ErrAttachmentMisconfigured, nil, "color attachment %d is nil", i)
		}
		if err := check("color attachment", c.colorAttachment(), d.formats.ColorRenderable); err != nil {
			return nil, err
		}
	}
	if desc.Depth != nil {
		if err := check("depth attachment", desc.Depth.depthAttachment(), d.formats.DepthRenderable); err != nil {
			return nil, err
		}
	}
	if desc.DepthStencil != nil {
		depthStencil := func(f gl.Enum) bool {
			return d.formats.DepthRenderable(f) && d.formats.StencilRenderable(f)
		}
		if err := check("depth-stencil attachment", desc.DepthStencil.depthAttachment(), depthStencil); err != nil {
			return nil, err
		}
	}
	mapping := desc.DrawBuffers
	if mapping == nil {
		mapping = make([]int, len(desc.Colors))
		for i := range mapping {
			mapping[i] = i
		}
	}
	if n := len(mapping); n > d.limits.MaxDrawBuffers {
		return nil, newError(op, ErrAttachmentMisconfigured, nil, "%d draw buffers, device supports %d", n, d.limits.MaxDrawBuffers)
	}
	bufs := make([]gl.Enum, len(mapping))
	used := make(map[int]bool)
	for i, c := range mapping {
		switch {
		case c == -1:
			bufs[i] = gl.NONE
		case c < 0 || c >= len(desc.Colors):
			return nil, newError(op, ErrAttachmentMisconfigured, nil, "draw buffer %d maps to missing color attachment %d", i, c)
		case used[c]:
			return nil, newError(op, ErrAttachmentMisconfigured, nil, "color attachment %d used by two draw buffers", c)
		default:
			used[c] = true
			bufs[i] = gl.COLOR_ATTACHMENT0 + gl.Enum(c)
		}
	}
	if len(bufs) == 0 {
		bufs = []gl.Enum{gl.NONE}
	}
	return bufs, nil
}

// withDraw runs fn with fb bound to the draw target, bypassing the
// feedback check, and restores the previous draw binding.
func (fs Framebuffers) withDraw(fb *Framebuffer, fn func()) {
	d := fs.d
	prev := d.drawFBO.get()
	native := d.bindFramebuffer(gl.DRAW_FRAMEBUFFER)
	d.drawFBO.set(fb, native)
	fn()
	d.drawFBO.set(prev, native)
}

// check queries the completeness of the framebuffer bound to the draw
// target.
func (fs Framebuffers) check(op string, fb *Framebuffer) (FramebufferStatus, error) {
	d := fs.d
	if err := glErr(d.funcs); err != nil {
		return StatusUnknown, driverErr(op, fb, err)
	}
	code := d.funcs.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER)
	d.lastStatus = code
	return statusFromGL(code), nil
}

// Validate repeats the completeness check of fb and records the result.
func (fs Framebuffers) Validate(fb *Framebuffer) (FramebufferStatus, error) {
	const op = "Framebuffers.Validate"
	d := fs.d
	if err := d.use(op, fb); err != nil {
		return StatusUnknown, err
	}
	if fb.isDefault {
		return StatusComplete, nil
	}
	for _, t := range fb.textures() {
		if t.Deleted() {
			fb.status = StatusIncompleteAttachment
			return fb.status, &FramebufferError{Framebuffer: fb, Status: fb.status}
		}
	}
	var err error
	fs.withDraw(fb, func() {
		fb.status, err = fs.check(op, fb)
	})
	if err != nil {
		return StatusUnknown, err
	}
	if fb.status != StatusComplete {
		return fb.status, &FramebufferError{Framebuffer: fb, Status: fb.status, Code: d.lastStatus}
	}
	return fb.status, nil
}

// checkDrawable verifies that fb can become the draw framebuffer: its
// attachments are live and none of them is sampled.
func (fs Framebuffers) checkDrawable(op string, fb *Framebuffer) error {
	for _, t := range fb.textures() {
		if t.Deleted() {
			return newError(op, ErrResourceDeleted, t, "attached to %v", fb)
		}
		if err := fs.feedback(op, fb, t); err != nil {
			return err
		}
	}
	return nil
}

func (fs Framebuffers) feedback(op string, fb *Framebuffer, t *Texture) error {
	d := fs.d
	if units := d.unitsHolding(t); len(units) > 0 {
		d.log.Debug("glsafe: feedback loop rejected", slog.String("framebuffer", fb.String()), slog.String("texture", t.String()), slog.Any("units", units))
		return newError(op, ErrFeedbackLoop, fb, "%v is sampled on texture unit %d", t, units[0])
	}
	return nil
}

// CheckNoFeedback fails with ErrFeedbackLoop if t is attached to fb and
// bound for sampling on any texture unit.
func (fs Framebuffers) CheckNoFeedback(fb *Framebuffer, t *Texture) error {
	const op = "Framebuffers.CheckNoFeedback"
	d := fs.d
	if err := d.use(op, fb); err != nil {
		return err
	}
	if err := d.use(op, t); err != nil {
		return err
	}
	if !fb.attaches(t) {
		return nil
	}
	return fs.feedback(op, fb, t)
}

// Bind binds fb to both the draw and read targets.
func (fs Framebuffers) Bind(fb *Framebuffer) error {
	const op = "Framebuffers.Bind"
	d := fs.d
	if err := d.use(op, fb); err != nil {
		return err
	}
	if d.drawFBO.holds(fb) && d.readFBO.holds(fb) {
		return nil
	}
	if err := fs.checkDrawable(op, fb); err != nil {
		return err
	}
	d.bindFramebuffer(gl.FRAMEBUFFER)(fb)
	d.drawFBO.cur = fb
	d.readFBO.cur = fb
	return nil
}

// BindDraw binds fb to the draw target. It fails with ErrFeedbackLoop if
// any texture attached to fb is bound for sampling.
func (fs Framebuffers) BindDraw(fb *Framebuffer) error {
	const op = "Framebuffers.BindDraw"
	d := fs.d
	if err := d.use(op, fb); err != nil {
		return err
	}
	if d.drawFBO.holds(fb) {
		return nil
	}
	if err := fs.checkDrawable(op, fb); err != nil {
		return err
	}
	d.drawFBO.set(fb, d.bindFramebuffer(gl.DRAW_FRAMEBUFFER))
	return nil
}

// BindRead binds fb to the read target.
func (fs Framebuffers) BindRead(fb *Framebuffer) error {
	d := fs.d
	return bind(d, "Framebuffers.BindRead", &d.readFBO, fb, d.bindFramebuffer(gl.READ_FRAMEBUFFER))
}

// UnbindDraw binds the default framebuffer to the draw target.
func (fs Framebuffers) UnbindDraw() {
	d := fs.d
	d.drawFBO.set(d.defaultFramebuffer, d.bindFramebuffer(gl.DRAW_FRAMEBUFFER))
}

// UnbindRead binds the default framebuffer to the read target.
func (fs Framebuffers) UnbindRead() {
	d := fs.d
	d.readFBO.set(d.defaultFramebuffer, d.bindFramebuffer(gl.READ_FRAMEBUFFER))
}

// BoundDraw returns the draw framebuffer; the default one if no other is
// bound.
func (fs Framebuffers) BoundDraw() *Framebuffer {
	return fs.d.drawFBO.get()
}

func (fs Framebuffers) BoundRead() *Framebuffer {
	return fs.d.readFBO.get()
}

func (fs Framebuffers) IsBoundDraw(fb *Framebuffer) bool {
	return fb != nil && fs.d.drawFBO.holds(fb)
}

func (fs Framebuffers) IsBoundRead(fb *Framebuffer) bool {
	return fb != nil && fs.d.readFBO.holds(fb)
}

// References returns the live textures attached to fb.
func (fs Framebuffers) References(fb *Framebuffer) ([]*Texture, error) {
	if err := fs.d.use("Framebuffers.References", fb); err != nil {
		return nil, err
	}
	var texs []*Texture
	for _, o := range fs.d.refs.referencesOf(fb) {
		texs = append(texs, o.(*Texture))
	}
	return texs, nil
}

// Blit copies src rectangle sr of the read framebuffer src to rectangle dr
// of dst. Transferring depth or stencil requires FilterNearest.
func (fs Framebuffers) Blit(src, dst *Framebuffer, sr, dr image.Rectangle, mask gl.Enum, filter Filter) error {
	const op = "Framebuffers.Blit"
	d := fs.d
	if mask&^(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT) != 0 || mask == 0 {
		return invalidArg(op, "invalid mask %#x", mask)
	}
	if mask&(gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT) != 0 && filter != FilterNearest {
		return newError(op, ErrAttachmentMisconfigured, src, "depth or stencil blit with a linear filter")
	}
	if err := fs.BindRead(src); err != nil {
		return err
	}
	if err := fs.BindDraw(dst); err != nil {
		return err
	}
	d.funcs.BlitFramebuffer(sr.Min.X, sr.Min.Y, sr.Max.X, sr.Max.Y, dr.Min.X, dr.Min.Y, dr.Max.X, dr.Max.Y, mask, gl.Enum(filter.gl()))
	return nil
}

// ReadPixels binds fb for reading and returns rectangle r of its first
// color attachment with the origin at the top left.
func (fs Framebuffers) ReadPixels(fb *Framebuffer, r image.Rectangle) (*image.RGBA, error) {
	const op = "Framebuffers.ReadPixels"
	d := fs.d
	if r.Empty() {
		return nil, invalidArg(op, "empty rectangle %v", r)
	}
	if err := fs.BindRead(fb); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rectangle{Max: r.Size()})
	d.funcs.ReadPixels(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	if err := glErr(d.funcs); err != nil {
		return nil, driverErr(op, fb, err)
	}
	flipImageY(img.Stride, r.Dy(), img.Pix)
	return img, nil
}

func flipImageY(stride, height int, pixels []byte) {
	// Flip image in y-direction. OpenGL's origin is in the lower
	// left corner.
	row := make([]uint8, stride)
	for y := 0; y < height/2; y++ {
		y1 := height - y - 1
		dest := y1 * stride
		src := y * stride
		copy(row, pixels[dest:])
		copy(pixels[dest:], pixels[src:src+len(row)])
		copy(pixels[src:], row)
	}
}

// Delete deletes fb. The draw and read targets revert to the default
// framebuffer if they held fb.
func (fs Framebuffers) Delete(fb *Framebuffer) error {
	const op = "Framebuffers.Delete"
	d := fs.d
	if fb != nil && fb.isDefault {
		return newError(op, ErrInvalidArgument, fb, "the default framebuffer cannot be deleted")
	}
	if err := d.retire(op, fb); err != nil {
		return err
	}
	d.funcs.DeleteFramebuffer(gl.Framebuffer{V: fb.handle})
	d.drawFBO.clear(fb)
	d.readFBO.clear(fb)
	d.refs.dropOwner(fb)
	return nil
}
