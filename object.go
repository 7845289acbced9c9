// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"sync/atomic"
)

// Object is a driver object wrapped with its owning context and liveness.
//
// Handle, Context and Deleted remain valid after deletion; every other
// operation on a deleted object fails with ErrResourceDeleted.
type Object interface {
	Handle() uint
	Context() *Context
	Deleted() bool
	String() string
	base() *object
}

type objectKind uint8

const (
	kindBuffer objectKind = iota
	kindTexture
	kindShader
	kindProgram
	kindVertexArray
	kindFramebuffer
	kindQuery
)

func (k objectKind) String() string {
	switch k {
	case kindBuffer:
		return "buffer"
	case kindTexture:
		return "texture"
	case kindShader:
		return "shader"
	case kindProgram:
		return "program"
	case kindVertexArray:
		return "vertex array"
	case kindFramebuffer:
		return "framebuffer"
	case kindQuery:
		return "query"
	default:
		panic("unknown object kind")
	}
}

// shared reports whether objects of kind k are usable across a share group.
func (k objectKind) shared() bool {
	return k <= kindProgram
}

type object struct {
	kind   objectKind
	handle uint
	ctx    *Context
	// deleted is the only state of shared objects visible across threads.
	deleted atomic.Bool
}

func (o *object) init(kind objectKind, handle uint, ctx *Context) {
	o.kind = kind
	o.handle = handle
	o.ctx = ctx
}

func (o *object) Handle() uint {
	return o.handle
}

func (o *object) Context() *Context {
	return o.ctx
}

func (o *object) Deleted() bool {
	return o.deleted.Load()
}

func (o *object) String() string {
	return fmt.Sprintf("%s %d", o.kind, o.handle)
}

func (o *object) base() *object {
	return o
}

// markDeleted flips o to the deleted state. It reports false if o was
// already deleted, including concurrently from a sibling context.
func (o *object) markDeleted() bool {
	return o.deleted.CompareAndSwap(false, true)
}

// IsLive reports whether o is non-nil and not deleted.
func IsLive(o Object) bool {
	return o != nil && !o.Deleted()
}

func checkNotDeleted(op string, o Object) error {
	if o.Deleted() {
		return newError(op, ErrResourceDeleted, o, "")
	}
	return nil
}
