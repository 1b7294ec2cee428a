package layout

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
)

// --- Elements --------------------------------------------------------------

type testEl struct {
	id      string
	styles  map[string]string
	natW    dimen.Dimen
	natH    dimen.Dimen
	body    *testEl
	patches []frame.Patch
}

func (el *testEl) ID() string { return el.id }

func (el *testEl) Style(name string) string { return el.styles[name] }

func (el *testEl) Measure(w dimen.DimenT) (dimen.Dimen, dimen.Dimen) {
	return el.natW, el.natH
}

func (el *testEl) FrameBody() Element {
	if el.body == nil {
		return nil
	}
	return el.body
}

func (el *testEl) Apply(p frame.Patch) { el.patches = append(el.patches, p) }

func (el *testEl) lastWidth() dimen.DimenT {
	for i := len(el.patches) - 1; i >= 0; i-- {
		if el.patches[i].Width.IsSome() {
			return el.patches[i].Width
		}
	}
	return dimen.None()
}

// --- Components ------------------------------------------------------------

type testCmp struct {
	id        string
	owner     *testCmp
	kids      []*testCmp
	sizing    frame.Sizing
	models    frame.SizeModels
	el        *testEl
	cl, ctl   Layout
	destroyed bool
	last      frame.Box
	hasLast   bool
	before    int
}

func newCmp(id string) *testCmp {
	return &testCmp{
		id: id,
		el: &testEl{id: id + "#el", styles: make(map[string]string)},
	}
}

func (c *testCmp) add(kids ...*testCmp) *testCmp {
	for _, k := range kids {
		k.owner = c
		c.kids = append(c.kids, k)
	}
	return c
}

func (c *testCmp) ID() string { return c.id }

func (c *testCmp) OwnerCt() Component {
	if c.owner == nil {
		return nil
	}
	return c.owner
}

func (c *testCmp) LayoutItems() []Component {
	items := make([]Component, len(c.kids))
	for i, k := range c.kids {
		items[i] = k
	}
	return items
}

func (c *testCmp) SizeModel(frame.SizeModels) frame.SizeModels { return c.models }
func (c *testCmp) Sizing() frame.Sizing                        { return c.sizing }
func (c *testCmp) Element() Element                            { return c.el }
func (c *testCmp) ComponentLayout() Layout                     { return c.cl }
func (c *testCmp) ContainerLayout() Layout                     { return c.ctl }
func (c *testCmp) IsDestroyed() bool                           { return c.destroyed }
func (c *testCmp) BeforeLayout()                               { c.before++ }
func (c *testCmp) LastBox() (frame.Box, bool)                  { return c.last, c.hasLast }

func (c *testCmp) SetLastBox(box frame.Box) {
	c.last, c.hasLast = box, true
}

// --- Scripted layouts ------------------------------------------------------

type script struct {
	id          string
	owner       Component
	calc        func(item *Item) bool
	begins      int
	cycles      int
	firstCycles int
	calcs       int
}

func (s *script) ID() string                { return s.id }
func (s *script) Owner() Component          { return s.owner }
func (s *script) BeginLayout(item *Item)    { s.begins++ }
func (s *script) BeginLayoutCycle(item *Item, first bool) {
	s.cycles++
	if first {
		s.firstCycles++
	}
}

func (s *script) Calculate(item *Item) bool {
	s.calcs++
	if s.calc == nil {
		return true
	}
	return s.calc(item)
}

// scripted attaches a component layout to c.
func scripted(c *testCmp, calc func(item *Item) bool) *script {
	s := &script{id: c.id + ".cl", owner: c, calc: calc}
	c.cl = s
	return s
}

// scriptedContainer attaches a container layout to c.
func scriptedContainer(c *testCmp, calc func(item *Item) bool) *script {
	s := &script{id: c.id + ".ctl", owner: c, calc: calc}
	c.ctl = s
	return s
}

// fixed returns a calculation setting a fixed size.
func fixed(w, h int) func(*Item) bool {
	return func(item *Item) bool {
		item.SetProp(PropWidth, dimen.Some(dimen.Px(w)), true)
		item.SetProp(PropHeight, dimen.Some(dimen.Px(h)), true)
		return true
	}
}

// stackChildren is a container calculation stacking children vertically.
func stackChildren(item *Item) bool {
	var y dimen.Dimen
	done := true
	for _, kid := range item.Children() {
		h := kid.GetProp(PropHeight)
		if h.IsNone() {
			done = false
			continue
		}
		kid.SetProp(PropX, dimen.Some(0), true)
		kid.SetProp(PropY, dimen.Some(y), true)
		y += h.Unwrap()
	}
	if !done {
		return false
	}
	item.SetProp(PropContentHeight, dimen.Some(y), false)
	return true
}

// --- Completing layouts ----------------------------------------------------

type completing struct {
	script
	log      []string
	sawWidth dimen.DimenT
}

func (c *completing) CompleteLayout(item *Item) bool {
	c.log = append(c.log, "complete")
	c.sawWidth = item.GetDomProp(PropWidth)
	return true
}

func (c *completing) FinalizeLayout(item *Item) bool {
	c.log = append(c.log, "finalize")
	return true
}

func (c *completing) FinishedLayout(item *Item) {
	c.log = append(c.log, "finished")
}

func (c *completing) NotifyOwner(item *Item) {
	c.log = append(c.log, "notify")
}

// --- Animation -------------------------------------------------------------

type recordingAnimator struct {
	deltas []frame.Delta
}

func (a *recordingAnimator) Animate(deltas []frame.Delta) {
	a.deltas = append(a.deltas, deltas...)
}
