// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"testing"
)

func testObjects(ctx *Context) (*VertexArray, *Buffer, *Buffer, *Texture) {
	v := new(VertexArray)
	v.init(kindVertexArray, 1, ctx)
	b1 := new(Buffer)
	b1.init(kindBuffer, 5, ctx)
	b2 := new(Buffer)
	b2.init(kindBuffer, 2, ctx)
	tex := new(Texture)
	tex.init(kindTexture, 3, ctx)
	return v, b1, b2, tex
}

func TestRefGraph(t *testing.T) {
	ctx := NewShareGroup().join()
	v, b1, b2, tex := testObjects(ctx)
	g := newRefGraph()
	g.addReference(v, b1)
	g.addReference(v, b2)
	g.addReference(v, b1)
	refs := g.referencesOf(v)
	if len(refs) != 2 || refs[0] != Object(b2) || refs[1] != Object(b1) {
		t.Errorf("got %v, expected [%v %v] ordered by handle", refs, b2, b1)
	}
	fb := new(Framebuffer)
	fb.init(kindFramebuffer, 4, ctx)
	g.addReference(fb, tex)
	g.addReference(fb, b1)
	if owners := g.ownersOf(b1); len(owners) != 2 || owners[0] != Object(v) {
		t.Errorf("got owners %v", owners)
	}
	g.removeReference(v, b2)
	if n := g.edges(); n != 3 {
		t.Errorf("got %d edges, expected 3", n)
	}
	if owners := g.dropReferent(b1); len(owners) != 2 {
		t.Errorf("dropReferent returned %v", owners)
	}
	g.dropOwner(fb)
	if n := g.edges(); n != 0 {
		t.Errorf("got %d edges, expected 0", n)
	}
}

func TestRefGraphPrunesDeleted(t *testing.T) {
	ctx := NewShareGroup().join()
	v, b1, b2, _ := testObjects(ctx)
	g := newRefGraph()
	g.addReference(v, b1)
	g.addReference(v, b2)
	// A sibling context deleted b1 without touching this graph.
	b1.markDeleted()
	if refs := g.referencesOf(v); len(refs) != 1 || refs[0] != Object(b2) {
		t.Errorf("got %v, expected [%v]", refs, b2)
	}
	if n := g.edges(); n != 1 {
		t.Errorf("got %d edges after pruning, expected 1", n)
	}
}

func TestRefGraphSkipsDeleted(t *testing.T) {
	ctx := NewShareGroup().join()
	v, b1, b2, _ := testObjects(ctx)
	b1.markDeleted()
	g := newRefGraph()
	if g.addReference(v, b1) {
		t.Error("added an edge to a deleted referent")
	}
	if !g.addReference(v, b2) {
		t.Error("rejected an edge to a live referent")
	}
	v.markDeleted()
	if g.addReference(v, b2) {
		t.Error("added an edge from a deleted owner")
	}
	if n := g.edges(); n != 1 {
		t.Errorf("got %d edges, expected 1", n)
	}
}
