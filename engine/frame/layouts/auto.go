package layouts

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layout"
)

// Auto is the component layout for ordinary components. It sizes a
// component according to its size models:
//
//   Configured          the configured width or height
//   Natural             the measured size of the rendered element
//   ShrinkWrap          the content size plus border and padding; leaf
//                       components are measured
//   ConstrainedMin/Max  the configured minimum/maximum
//   Calculated          nothing, the container layout of the owner does it
//
// Top-level components are positioned at their configured coordinates.
type Auto struct {
	owner layout.Component
}

// NewAuto creates a component layout for c.
func NewAuto(c layout.Component) *Auto {
	return &Auto{owner: c}
}

// ID is part of interface layout.Layout.
func (a *Auto) ID() string {
	return a.owner.ID() + ".auto"
}

// Owner is part of interface layout.Layout.
func (a *Auto) Owner() layout.Component {
	return a.owner
}

// BeginLayout is part of interface layout.Layout.
func (a *Auto) BeginLayout(item *layout.Item) {
	tracer().Debugf("%s begins with size models %v", a.ID(), item.SizeModels())
}

// BeginLayoutCycle is part of interface layout.Layout.
func (a *Auto) BeginLayoutCycle(item *layout.Item, first bool) {}

// Calculate is part of interface layout.Layout.
func (a *Auto) Calculate(item *layout.Item) bool {
	if c := item.Component(); c != nil && c.OwnerCt() == nil {
		sz := item.Sizing()
		item.SetProp(layout.PropX, dimen.Some(sz.X.UnwrapOr(0)), true)
		item.SetProp(layout.PropY, dimen.Some(sz.Y.UnwrapOr(0)), true)
	}
	wdone := a.size(item, horizontal)
	hdone := a.size(item, vertical)
	return wdone && hdone
}

func (a *Auto) size(item *layout.Item, d dimension) bool {
	sz := item.Sizing()
	var v dimen.DimenT
	switch model := d.model(item.SizeModels()); model {
	case frame.Calculated:
		return true
	case frame.Configured:
		if v = d.configured(sz); v.IsNone() {
			tracer().Errorf("%s: %s is configured, but has no value", a.ID(), d)
			v = dimen.Some(0)
		}
	case frame.ConstrainedMin:
		v = dimen.Some(d.min(sz))
	case frame.ConstrainedMax:
		v = dimen.Some(d.max(sz))
	case frame.Natural:
		v = a.measure(item, d)
	case frame.ShrinkWrap:
		if item.Component() == nil || item.Component().ContainerLayout() == nil {
			v = a.measure(item, d)
		} else {
			v = item.GetProp(d.content).Add(d.edges(item.FrameInfo()))
		}
	default:
		tracer().Errorf("%s: unknown size model %v", a.ID(), model)
		return true
	}
	if v.IsNone() {
		return false
	}
	d.set(item, v)
	return true
}

// measure asks the rendered element for its natural size. Heights are
// measured for the width the element has on the surface, unless the width
// is natural as well.
func (a *Auto) measure(item *layout.Item, d dimension) dimen.DimenT {
	el := item.Element()
	fr := item.FrameInfo()
	if el == nil {
		return dimen.Some(d.edges(fr))
	}
	wrap := dimen.None()
	if !d.horizontal && item.SizeModels().Width != frame.Natural {
		w := item.GetDomProp(layout.PropWidth)
		if w.IsNone() {
			return w
		}
		wrap = w.Sub(fr.Width())
	}
	w, h := el.Measure(wrap)
	if d.horizontal {
		return dimen.Some(w + fr.Width())
	}
	return dimen.Some(h + fr.Height())
}

var _ layout.Layout = &Auto{}
