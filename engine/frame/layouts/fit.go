package layouts

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layout"
)

// Fit is a container layout sizing every layout item to the content box of
// the container, minus the item's margins. Items overlap.
//
// In dimensions where the container is sized by its content, items size
// themselves and the container wraps the largest of them.
type Fit struct {
	owner layout.Component
}

// NewFit creates a fit layout for the items of c.
func NewFit(c layout.Component) *Fit {
	return &Fit{owner: c}
}

// ID is part of interface layout.Layout.
func (f *Fit) ID() string {
	return f.owner.ID() + ".fit"
}

// Owner is part of interface layout.Layout.
func (f *Fit) Owner() layout.Component {
	return f.owner
}

// BeginLayout is part of interface layout.Layout.
func (f *Fit) BeginLayout(item *layout.Item) {}

// BeginLayoutCycle is part of interface layout.Layout.
func (f *Fit) BeginLayoutCycle(item *layout.Item, first bool) {}

// ItemSizePolicy is part of interface layout.ItemSizePolicer.
func (f *Fit) ItemSizePolicy(child layout.Component, ownerModels frame.SizeModels) frame.SizePolicy {
	p := frame.SizePolicy{
		SetsWidth:  !ownerModels.Width.IsAuto(),
		SetsHeight: !ownerModels.Height.IsAuto(),
	}
	p.ReadsWidth, p.ReadsHeight = !p.SetsWidth, !p.SetsHeight
	return p
}

// Calculate is part of interface layout.Layout.
func (f *Fit) Calculate(item *layout.Item) bool {
	done := true
	for _, d := range dimensions {
		avail, ok := available(item, d)
		if !ok {
			return false
		}
		var extent dimen.Dimen
		for _, kid := range item.Children() {
			m := kid.MarginInfo()
			if d.model(kid.SizeModels()) == frame.Calculated && avail.IsSome() {
				d.set(kid, avail.Sub(d.edges(m)).Max(dimen.Some(0)))
			}
			v := kid.GetProp(d.size)
			if v.IsNone() {
				done = false
				continue
			}
			kid.SetProp(d.pos, dimen.Some(m[d.before]), true)
			extent = dimen.Max(extent, v.Unwrap()+d.edges(m))
		}
		if done {
			item.SetProp(d.content, dimen.Some(extent), false)
		}
	}
	return done
}

var _ layout.Layout = &Fit{}
var _ layout.ItemSizePolicer = &Fit{}
