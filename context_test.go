// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import "testing"

func TestShareGroupMembership(t *testing.T) {
	g := NewShareGroup()
	a, b := g.join(), g.join()
	if g.Len() != 2 {
		t.Fatalf("got %d members, expected 2", g.Len())
	}
	if !a.SharesWith(b) || a.Group() != g {
		t.Error("members of one group must share")
	}
	if a.ID() == b.ID() {
		t.Error("context IDs must be distinct")
	}
	other := NewShareGroup().join()
	if a.SharesWith(other) {
		t.Error("contexts of different groups must not share")
	}
	g.leave(a)
	if g.Contains(a) || !g.Contains(b) {
		t.Error("leave removed the wrong member")
	}
	if g.Len() != 1 {
		t.Errorf("got %d members after leave, expected 1", g.Len())
	}
}
