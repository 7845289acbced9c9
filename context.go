// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

// ShareGroup is a set of contexts whose shared objects (buffers, textures,
// shaders and programs) are usable from every member. Vertex arrays,
// framebuffers and queries are never shared, even within a group.
//
// A ShareGroup is safe for concurrent use; members typically run on
// different threads.
type ShareGroup struct {
	id      uint64
	members mapset.Set[*Context]
}

// Context identifies one native driver context.
type Context struct {
	id    uint64
	group *ShareGroup
}

var (
	groupIDs   atomic.Uint64
	contextIDs atomic.Uint64
)

// NewShareGroup returns an empty share group.
func NewShareGroup() *ShareGroup {
	return &ShareGroup{
		id:      groupIDs.Add(1),
		members: mapset.NewSet[*Context](),
	}
}

func (g *ShareGroup) join() *Context {
	c := &Context{id: contextIDs.Add(1), group: g}
	g.members.Add(c)
	return c
}

func (g *ShareGroup) leave(c *Context) {
	g.members.Remove(c)
}

// Contains reports whether c is a live member of g.
func (g *ShareGroup) Contains(c *Context) bool {
	return g.members.Contains(c)
}

// Len returns the number of live member contexts.
func (g *ShareGroup) Len() int {
	return g.members.Cardinality()
}

func (g *ShareGroup) String() string {
	return fmt.Sprintf("share group %d", g.id)
}

func (c *Context) ID() uint64 {
	return c.id
}

func (c *Context) Group() *ShareGroup {
	return c.group
}

// SharesWith reports whether shared objects created in o are usable in c.
func (c *Context) SharesWith(o *Context) bool {
	return c.group == o.group
}

func (c *Context) String() string {
	return fmt.Sprintf("context %d", c.id)
}
