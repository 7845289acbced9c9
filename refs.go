// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// refGraph records which simple objects each composite object (vertex
// array, framebuffer) incorporates. Only composites own edges and composites
// never reference composites, so the graph is acyclic by construction.
//
// A refGraph belongs to one context. Referents are shared objects that may
// be deleted from a sibling context; such edges are pruned the next time the
// owner is inspected.
type refGraph struct {
	out map[Object]mapset.Set[Object]
	in  map[Object]mapset.Set[Object]
}

func newRefGraph() *refGraph {
	return &refGraph{
		out: make(map[Object]mapset.Set[Object]),
		in:  make(map[Object]mapset.Set[Object]),
	}
}

// addReference records that owner incorporates referent. It reports false
// and records nothing if either end is already deleted, which happens when a
// sibling context deletes a shared referent during allocation.
func (g *refGraph) addReference(owner, referent Object) bool {
	if owner.Deleted() || referent.Deleted() {
		return false
	}
	out, ok := g.out[owner]
	if !ok {
		out = mapset.NewThreadUnsafeSet[Object]()
		g.out[owner] = out
	}
	out.Add(referent)
	in, ok := g.in[referent]
	if !ok {
		in = mapset.NewThreadUnsafeSet[Object]()
		g.in[referent] = in
	}
	in.Add(owner)
	return true
}

func (g *refGraph) removeReference(owner, referent Object) {
	if out, ok := g.out[owner]; ok {
		out.Remove(referent)
		if out.Cardinality() == 0 {
			delete(g.out, owner)
		}
	}
	if in, ok := g.in[referent]; ok {
		in.Remove(owner)
		if in.Cardinality() == 0 {
			delete(g.in, referent)
		}
	}
}

// referencesOf returns the live referents of owner ordered by kind and
// handle.
func (g *refGraph) referencesOf(owner Object) []Object {
	out, ok := g.out[owner]
	if !ok {
		return nil
	}
	var refs []Object
	for _, r := range out.ToSlice() {
		if r.Deleted() {
			g.removeReference(owner, r)
			continue
		}
		refs = append(refs, r)
	}
	sortObjects(refs)
	return refs
}

// ownersOf returns the composites referencing referent.
func (g *refGraph) ownersOf(referent Object) []Object {
	in, ok := g.in[referent]
	if !ok {
		return nil
	}
	owners := in.ToSlice()
	sortObjects(owners)
	return owners
}

// dropOwner removes every outgoing edge of a deleted composite.
func (g *refGraph) dropOwner(owner Object) {
	out, ok := g.out[owner]
	if !ok {
		return
	}
	for _, r := range out.ToSlice() {
		g.removeReference(owner, r)
	}
}

// dropReferent removes every edge pointing at a deleted object and returns
// the owners that referenced it.
func (g *refGraph) dropReferent(referent Object) []Object {
	owners := g.ownersOf(referent)
	for _, o := range owners {
		g.removeReference(o, referent)
	}
	return owners
}

func (g *refGraph) edges() int {
	n := 0
	for _, out := range g.out {
		n += out.Cardinality()
	}
	return n
}

func sortObjects(objs []Object) {
	slices.SortFunc(objs, func(a, b Object) int {
		ka, kb := a.base().kind, b.base().kind
		if ka != kb {
			return int(ka) - int(kb)
		}
		ha, hb := a.Handle(), b.Handle()
		switch {
		case ha < hb:
			return -1
		case ha > hb:
			return 1
		}
		return 0
	})
}
