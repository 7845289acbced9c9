// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

// bindable is an object type that can occupy a binding point.
type bindable interface {
	comparable
	Object
}

// bindPoint holds a weak reference to the object bound to one target. It
// does not keep the object alive: deletion clears it, and a shared object
// deleted from a sibling context reads as unbound.
type bindPoint[T bindable] struct {
	cur T
	// def is the object the target reverts to when unbound: the zero value
	// for simple targets, the default object for vertex arrays and
	// framebuffers.
	def T
}

// set issues native and records o unless o is already bound. It reports
// whether the driver was called.
func (p *bindPoint[T]) set(o T, native func(T)) bool {
	if p.cur == o {
		return false
	}
	native(o)
	p.cur = o
	return true
}

// get returns the bound object, or def if nothing live is bound. cur keeps
// an object deleted from a sibling context until the next native call
// replaces it, because the driver still has its name bound here.
func (p *bindPoint[T]) get() T {
	var zero T
	if p.cur != zero && p.cur.Deleted() {
		return p.def
	}
	return p.cur
}

func (p *bindPoint[T]) holds(o T) bool {
	return p.get() == o
}

// clear reverts the binding point to def if it holds o. The driver already
// did the same when it deleted o.
func (p *bindPoint[T]) clear(o T) bool {
	if p.cur != o {
		return false
	}
	p.cur = p.def
	return true
}

// bind is the single code path for changing a binding: it validates o for
// use from d, then binds it unless it is already bound.
func bind[T bindable](d *Device, op string, p *bindPoint[T], o T, native func(T)) error {
	if err := d.use(op, o); err != nil {
		return err
	}
	p.set(o, native)
	return nil
}
