package surface

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layout"
	"github.com/npillmayer/flowbox/engine/frame/layouts"
)

// Node is a component of a layout tree, rendered as an Element.
// It implements layout.Component.
//
// A node's width and height are configured if its sizing says so. Other
// dimensions are natural for leaf nodes with text and shrink-wrapped for
// everything else.
type Node struct {
	id        string
	owner     *Node
	kids      []*Node
	el        *Element
	sizing    frame.Sizing
	cl, ctl   layout.Layout
	destroyed bool
	last      frame.Box
	hasLast   bool
	passes    int
}

// NewNode creates a node for element el, with an Auto component layout.
func NewNode(id string, el *Element) *Node {
	n := &Node{id: id, el: el}
	n.cl = layouts.NewAuto(n)
	return n
}

// Add appends layout items to n.
func (n *Node) Add(kids ...*Node) *Node {
	for _, k := range kids {
		k.owner = n
		n.kids = append(n.kids, k)
	}
	return n
}

// Children returns the direct children of n, including destroyed ones.
func (n *Node) Children() []*Node {
	return n.kids
}

// Find returns the node with the given ID within the subtree of n.
func (n *Node) Find(id string) *Node {
	if n.id == id {
		return n
	}
	for _, k := range n.kids {
		if found := k.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls f for every node of the subtree of n, top-down.
func (n *Node) Walk(f func(*Node)) {
	f(n)
	for _, k := range n.kids {
		k.Walk(f)
	}
}

// SetSizing configures sizes, flex and constraints of n.
func (n *Node) SetSizing(s frame.Sizing) *Node {
	n.sizing = s
	return n
}

// SetContainerLayout sets the layout for the items of n.
func (n *Node) SetContainerLayout(l layout.Layout) *Node {
	n.ctl = l
	return n
}

// SetComponentLayout replaces the Auto layout of n.
func (n *Node) SetComponentLayout(l layout.Layout) *Node {
	n.cl = l
	return n
}

// Destroy marks n as destroyed. Running layouts of n will be cancelled.
func (n *Node) Destroy() {
	n.destroyed = true
}

// Passes returns the number of layout runs n took part in.
func (n *Node) Passes() int {
	return n.passes
}

// Surface element of n, typed.
func (n *Node) El() *Element {
	return n.el
}

// --- layout.Component ------------------------------------------------------

// ID is part of interface layout.Component.
func (n *Node) ID() string { return n.id }

// OwnerCt is part of interface layout.Component.
func (n *Node) OwnerCt() layout.Component {
	if n.owner == nil {
		return nil
	}
	return n.owner
}

// LayoutItems is part of interface layout.Component.
func (n *Node) LayoutItems() []layout.Component {
	items := make([]layout.Component, 0, len(n.kids))
	for _, k := range n.kids {
		items = append(items, k)
	}
	return items
}

// SizeModel is part of interface layout.Component.
func (n *Node) SizeModel(ownerHint frame.SizeModels) frame.SizeModels {
	return frame.SizeModels{
		Width:  n.model(n.sizing.Width),
		Height: n.model(n.sizing.Height),
	}
}

func (n *Node) model(configured dimen.DimenT) frame.SizeModel {
	if configured.IsSome() {
		return frame.Configured
	}
	if n.ctl == nil && n.el != nil && n.el.Text != "" {
		return frame.Natural
	}
	return frame.ShrinkWrap
}

// Sizing is part of interface layout.Component.
func (n *Node) Sizing() frame.Sizing { return n.sizing }

// Element is part of interface layout.Component.
func (n *Node) Element() layout.Element {
	if n.el == nil {
		return nil
	}
	return n.el
}

// ComponentLayout is part of interface layout.Component.
func (n *Node) ComponentLayout() layout.Layout { return n.cl }

// ContainerLayout is part of interface layout.Component.
func (n *Node) ContainerLayout() layout.Layout { return n.ctl }

// IsDestroyed is part of interface layout.Component.
func (n *Node) IsDestroyed() bool { return n.destroyed }

// BeforeLayout is part of interface layout.Component.
func (n *Node) BeforeLayout() {
	n.passes++
}

// LastBox is part of interface layout.Component.
func (n *Node) LastBox() (frame.Box, bool) { return n.last, n.hasLast }

// SetLastBox is part of interface layout.Component.
func (n *Node) SetLastBox(box frame.Box) {
	n.last, n.hasLast = box, true
}

var _ layout.Component = &Node{}
