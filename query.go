// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"time"

	"gioui.org/glsafe/gl"
)

// Query is a context-local timer query.
type Query struct {
	object
	// ended is set by End and cleared by Begin.
	ended bool
}

// Queries tracks the active timer query. At most one query is active per
// context.
type Queries struct {
	d *Device
}

// NewTimer creates a timer query.
func (qs Queries) NewTimer() (*Query, error) {
	d := qs.d
	glErr(d.funcs)
	q := new(Query)
	q.init(kindQuery, d.funcs.CreateQuery().V, d.ctx)
	if err := glErr(d.funcs); err != nil {
		d.funcs.DeleteQuery(gl.Query{V: q.handle})
		return nil, driverErr("Queries.NewTimer", q, err)
	}
	d.track(q)
	return q, nil
}

// Begin starts timing GPU work with q. It fails with ErrQueryActive if a
// query is already active.
func (qs Queries) Begin(q *Query) error {
	const op = "Queries.Begin"
	d := qs.d
	if err := d.use(op, q); err != nil {
		return err
	}
	if a := d.query.get(); a != nil {
		return newError(op, ErrQueryActive, a, "")
	}
	q.ended = false
	d.query.set(q, func(q *Query) {
		d.funcs.BeginQuery(gl.TIME_ELAPSED, gl.Query{V: q.handle})
	})
	return nil
}

// End stops q. It fails with ErrResourceNotBound unless q is active.
func (qs Queries) End(q *Query) error {
	const op = "Queries.End"
	d := qs.d
	if err := d.use(op, q); err != nil {
		return err
	}
	if !d.query.holds(q) {
		return newError(op, ErrResourceNotBound, q, "query is not active")
	}
	d.query.set(nil, func(*Query) {
		d.funcs.EndQuery(gl.TIME_ELAPSED)
	})
	q.ended = true
	return nil
}

// Active returns the active query, or nil.
func (qs Queries) Active() *Query {
	return qs.d.query.get()
}

// Result returns the elapsed time measured by q. It reports false while the
// result is not yet available.
func (qs Queries) Result(q *Query) (time.Duration, bool, error) {
	const op = "Queries.Result"
	d := qs.d
	if err := d.use(op, q); err != nil {
		return 0, false, err
	}
	if !q.ended {
		return 0, false, newError(op, ErrResourceNotBound, q, "query has not ended")
	}
	h := gl.Query{V: q.handle}
	if d.funcs.GetQueryObjectuiv(h, gl.QUERY_RESULT_AVAILABLE) != gl.TRUE {
		return 0, false, nil
	}
	nanos := d.funcs.GetQueryObjectui64v(h, gl.QUERY_RESULT)
	return time.Duration(nanos), true, nil
}

// Delete deletes q. Deleting the active query ends it first.
func (qs Queries) Delete(q *Query) error {
	const op = "Queries.Delete"
	d := qs.d
	if err := d.retire(op, q); err != nil {
		return err
	}
	if d.query.cur == q {
		d.funcs.EndQuery(gl.TIME_ELAPSED)
		d.query.clear(q)
	}
	d.funcs.DeleteQuery(gl.Query{V: q.handle})
	return nil
}
