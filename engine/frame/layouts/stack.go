package layouts

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layout"
)

// Stack is a container layout arranging the layout items of a component
// in a row (hbox) or in a column (vbox).
//
// Along the main axis, items with a percentage size get their share of the
// content extent of the container first. The space left is distributed
// among items with a flex weight, respecting their min/max constraints.
// Items are then packed according to Pack.
// Along the cross axis, items are aligned according to Align.
//
// Flex, percentages and stretching need a container which is not sized by
// its content in the respective dimension. Otherwise items size themselves.
type Stack struct {
	owner layout.Component
	Axis  Axis
	Pack  Pack
	Align Align
}

// NewStack creates a stack layout for the items of c.
func NewStack(c layout.Component, axis Axis) *Stack {
	return &Stack{owner: c, Axis: axis}
}

// NewHBox creates a horizontal stack layout for the items of c.
func NewHBox(c layout.Component) *Stack {
	return NewStack(c, Horizontal)
}

// NewVBox creates a vertical stack layout for the items of c.
func NewVBox(c layout.Component) *Stack {
	return NewStack(c, Vertical)
}

// ID is part of interface layout.Layout.
func (s *Stack) ID() string {
	return s.owner.ID() + "." + s.Axis.String()
}

// Owner is part of interface layout.Layout.
func (s *Stack) Owner() layout.Component {
	return s.owner
}

// BeginLayout is part of interface layout.Layout.
func (s *Stack) BeginLayout(item *layout.Item) {
	tracer().Debugf("%s begins with %d items, pack=%v, align=%v", s.ID(),
		len(item.Children()), s.Pack, s.Align)
}

// BeginLayoutCycle is part of interface layout.Layout.
func (s *Stack) BeginLayoutCycle(item *layout.Item, first bool) {}

// ItemSizePolicy is part of interface layout.ItemSizePolicer.
func (s *Stack) ItemSizePolicy(child layout.Component, ownerModels frame.SizeModels) frame.SizePolicy {
	var p frame.SizePolicy
	sz := child.Sizing()
	main, cross := s.Axis.main(), s.Axis.cross()
	if !main.model(ownerModels).IsAuto() && (sz.Flex > 0 || main.percent(sz) != nil) {
		main.claim(&p)
	}
	if !cross.model(ownerModels).IsAuto() && (s.Align == AlignStretch || cross.percent(sz) != nil) {
		cross.claim(&p)
	}
	p.ReadsWidth, p.ReadsHeight = !p.SetsWidth, !p.SetsHeight
	return p
}

// Calculate is part of interface layout.Layout.
func (s *Stack) Calculate(item *layout.Item) bool {
	main, cross := s.Axis.main(), s.Axis.cross()
	availMain, ok := available(item, main)
	if !ok {
		return false
	}
	availCross, ok := available(item, cross)
	if !ok {
		return false
	}
	kids := item.Children()
	s.sizeCross(kids, cross, availCross)
	if !s.sizeMain(kids, main, availMain) {
		return false
	}
	return s.arrange(item, kids, availMain, availCross)
}

// sizeCross sets the cross extent of stretched and percentage-sized items.
func (s *Stack) sizeCross(kids []*layout.Item, cross dimension, avail dimen.DimenT) {
	if avail.IsNone() {
		return
	}
	for _, kid := range kids {
		if cross.model(kid.SizeModels()) != frame.Calculated {
			continue
		}
		if p := cross.percent(kid.Sizing()); p != nil {
			cross.set(kid, dimen.Some(p.Of(avail.Unwrap())))
		} else {
			cross.set(kid, avail.Sub(cross.edges(kid.MarginInfo())).Max(dimen.Some(0)))
		}
	}
}

// sizeMain sets the main extent of percentage-sized and flexed items.
// Flex shares are published only after every other item has its extent.
func (s *Stack) sizeMain(kids []*layout.Item, main dimension, avail dimen.DimenT) bool {
	var used dimen.Dimen
	var flexed []*layout.Item
	ready := true
	for _, kid := range kids {
		used += main.edges(kid.MarginInfo())
		if main.model(kid.SizeModels()) != frame.Calculated || avail.IsNone() {
			if v := kid.GetProp(main.size); v.IsSome() {
				used += v.Unwrap()
			} else {
				ready = false
			}
			continue
		}
		if p := main.percent(kid.Sizing()); p != nil {
			used += main.set(kid, dimen.Some(p.Of(avail.Unwrap()))).Unwrap()
			continue
		}
		flexed = append(flexed, kid)
	}
	if !ready {
		return false
	}
	if len(flexed) == 0 {
		return true
	}
	weights := make([]float64, len(flexed))
	for i, kid := range flexed {
		weights[i] = kid.Sizing().Flex
	}
	shares := flexShares(avail.Unwrap()-used, weights, func(i int, d dimen.Dimen) dimen.Dimen {
		return main.clamp(flexed[i].Sizing(), d)
	})
	for i, kid := range flexed {
		main.set(kid, dimen.Some(shares[i]))
	}
	return true
}

// arrange positions the items, once all of them have a known extent, and
// records the content extent of the container.
func (s *Stack) arrange(item *layout.Item, kids []*layout.Item, availMain, availCross dimen.DimenT) bool {
	main, cross := s.Axis.main(), s.Axis.cross()
	sizes := make([][2]dimen.Dimen, len(kids))
	var used, crossMax dimen.Dimen
	for i, kid := range kids {
		ms, cs := kid.GetProp(main.size), kid.GetProp(cross.size)
		if ms.IsNone() || cs.IsNone() {
			return false
		}
		m := kid.MarginInfo()
		sizes[i] = [2]dimen.Dimen{ms.Unwrap(), cs.Unwrap()}
		used += ms.Unwrap() + main.edges(m)
		crossMax = dimen.Max(crossMax, cs.Unwrap()+cross.edges(m))
	}
	item.SetProp(main.content, dimen.Some(used), false)
	item.SetProp(cross.content, dimen.Some(crossMax), false)
	var offset dimen.Dimen
	if free := availMain.UnwrapOr(used) - used; free > 0 {
		switch s.Pack {
		case PackCenter:
			offset = free / 2
		case PackEnd:
			offset = free
		}
	}
	line := availCross.UnwrapOr(crossMax)
	for i, kid := range kids {
		m := kid.MarginInfo()
		pos := offset + m[main.before]
		kid.SetProp(main.pos, dimen.Some(pos), true)
		offset = pos + sizes[i][0] + m[main.after]
		cpos := m[cross.before]
		switch s.Align {
		case AlignCenter:
			cpos += (line - sizes[i][1] - cross.edges(m)) / 2
		case AlignEnd:
			cpos += line - sizes[i][1] - cross.edges(m)
		}
		kid.SetProp(cross.pos, dimen.Some(cpos), true)
	}
	tracer().Debugf("%s arranged %d items, content %v × %v", s.ID(), len(kids), used, crossMax)
	return true
}

var _ layout.Layout = &Stack{}
var _ layout.ItemSizePolicer = &Stack{}
