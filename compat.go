// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

// checkCompatible returns o unchanged if it may be used from cur. Shared
// objects are usable from every context in the owner's share group;
// context-local objects only from the context that created them.
func checkCompatible[T Object](cur *Context, op string, o T) (T, error) {
	b := o.base()
	if b.kind.shared() {
		if !cur.SharesWith(b.ctx) {
			return o, newError(op, ErrWrongContext, o, "owned by %v in %v, used from %v in %v", b.ctx, b.ctx.group, cur, cur.group)
		}
		return o, nil
	}
	if b.ctx != cur {
		return o, newError(op, ErrWrongContext, o, "owned by %v, used from %v", b.ctx, cur)
	}
	return o, nil
}

// Compatible reports whether o may be used from c.
func (c *Context) Compatible(o Object) bool {
	_, err := checkCompatible(c, "", o)
	return err == nil
}
