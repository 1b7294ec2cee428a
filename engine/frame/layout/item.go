package layout

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
)

// Item holds the computed state of one node during a layout run.
// Items are created by a Context and do not outlive it.
//
// Layouts read properties with GetProp/GetDomProp and write them with
// SetProp/SetWidth/SetHeight. Reading registers the reading layout as a
// trigger for the property: it will be re-queued as soon as the property
// changes (GetProp) or as soon as the change has been flushed to the
// rendered surface (GetDomProp).
type Item struct {
	ctx     *Context
	id      string
	cmp     Component // nil for items of plain elements
	el      Element
	ownerCt *Item
	body    *Item // item of the frame body element, if any

	props       map[string]dimen.Dimen
	dirty       map[string]bool
	triggers    map[string]*linkedhashset.Set
	domTriggers map[string]*linkedhashset.Set
	blocks      map[string]*linkedhashset.Set
	domBlocks   map[string]*linkedhashset.Set
	addCls      *linkedhashset.Set // pending class changes; a name is in
	removeCls   *linkedhashset.Set // at most one of the two sets

	models    frame.SizeModels
	overrideW *frame.SizeModel
	overrideH *frame.SizeModel
	children  []*Item
	runs      []*layoutRun
	writers   map[string]Layout
	cache     valueCache
	inited    bool

	// State is scratch space for the layouts of this item. It is cleared
	// on invalidation.
	State map[string]interface{}
}

func newItem(ctx *Context, id string, c Component, el Element) *Item {
	item := &Item{
		ctx:         ctx,
		id:          id,
		cmp:         c,
		el:          el,
		props:       make(map[string]dimen.Dimen),
		dirty:       make(map[string]bool),
		triggers:    make(map[string]*linkedhashset.Set),
		domTriggers: make(map[string]*linkedhashset.Set),
		blocks:      make(map[string]*linkedhashset.Set),
		domBlocks:   make(map[string]*linkedhashset.Set),
		addCls:      linkedhashset.New(),
		removeCls:   linkedhashset.New(),
		writers:     make(map[string]Layout),
		State:       make(map[string]interface{}),
	}
	item.cache.init()
	return item
}

// ID returns the identifier of the component or element of this item.
func (item *Item) ID() string {
	return item.id
}

// Component returns the component of this item, or nil for element items.
func (item *Item) Component() Component {
	return item.cmp
}

// Element returns the rendered element of this item.
func (item *Item) Element() Element {
	return item.el
}

// OwnerCt returns the item of the containing component.
func (item *Item) OwnerCt() *Item {
	return item.ownerCt
}

// Children returns the items of the layout children, in order.
func (item *Item) Children() []*Item {
	return item.children
}

// SizeModels returns the size models resolved for this item in the current run.
func (item *Item) SizeModels() frame.SizeModels {
	return item.models
}

// Sizing returns the configured sizing of the item's component.
func (item *Item) Sizing() frame.Sizing {
	if item.cmp == nil {
		return frame.Sizing{}
	}
	return item.cmp.Sizing()
}

func (item *Item) String() string {
	return fmt.Sprintf("item[%s]", item.id)
}

// --- Reading ---------------------------------------------------------------

// GetProp returns the current value of a property, or None if it is not
// known yet. The running layout will be re-queued as soon as the property
// changes.
func (item *Item) GetProp(name string) dimen.DimenT {
	item.ctx.addTrigger(item, name, false)
	return item.value(name)
}

// GetDomProp returns the value of a property if it is already reflected by
// the rendered surface, otherwise None. The running layout will be
// re-queued as soon as a change of the property has been flushed.
func (item *Item) GetDomProp(name string) dimen.DimenT {
	item.ctx.addTrigger(item, name, true)
	if item.dirty[name] {
		return dimen.None()
	}
	return item.value(name)
}

// HasProp is a convenience wrapper of GetProp.
func (item *Item) HasProp(name string) bool {
	return item.GetProp(name).IsSome()
}

// HasDomProp is a convenience wrapper of GetDomProp.
func (item *Item) HasDomProp(name string) bool {
	return item.GetDomProp(name).IsSome()
}

// Flag reads a boolean milestone flag.
func (item *Item) Flag(name string) bool {
	return item.GetProp(name).Equals(1)
}

func (item *Item) value(name string) dimen.DimenT {
	if v, ok := item.props[name]; ok {
		return dimen.Some(v)
	}
	return dimen.None()
}

// --- Writing ---------------------------------------------------------------

// SetProp sets a property to v. Unset values are silently ignored.
// Returns true if the value changed.
//
// If dirty is true and the property is part of the geometry written to the
// surface, the item is queued for the next flush and hard triggers fire
// at flush time. Otherwise the caller asserts that the surface already
// reflects the value, and hard triggers fire immediately.
func (item *Item) SetProp(name string, v dimen.DimenT, dirty bool) bool {
	if v.IsNone() {
		return false
	}
	if old, ok := item.props[name]; ok && old == v.Unwrap() {
		return false
	}
	item.ctx.checkWrite(item, name)
	item.props[name] = v.Unwrap()
	item.ctx.progress()
	if dirty && isSurfaceProp(name) && item.el != nil {
		item.dirty[name] = true
		item.ctx.flushQueue.add(item)
	} else {
		delete(item.dirty, name)
		item.fire(name, true)
		item.unblock(name, true)
	}
	item.fire(name, false)
	item.unblock(name, false)
	return true
}

// SetFlag sets a boolean milestone flag.
func (item *Item) SetFlag(name string, on bool) bool {
	v := dimen.Dimen(0)
	if on {
		v = 1
	}
	return item.SetProp(name, dimen.Some(v), false)
}

// UnsetProp takes back a property, including a pending write to the surface.
func (item *Item) UnsetProp(name string) {
	delete(item.props, name)
	delete(item.dirty, name)
}

// SetWidth sets the width of the item, clamped to the min/max constraints
// of its component. Returns the width actually applied.
//
// If the width is shrink-wrapped and hits a constraint, the item is
// invalidated with a constrained size model. If the element of the item has
// a frame body, the body receives the width minus the frame of the item.
func (item *Item) SetWidth(w dimen.DimenT, dirty bool) dimen.DimenT {
	if w.IsNone() {
		return w
	}
	applied := item.Sizing().ClampW(w.Unwrap())
	if applied != w.Unwrap() && item.models.Width == frame.ShrinkWrap {
		m := frame.ConstrainedMax
		if applied > w.Unwrap() {
			m = frame.ConstrainedMin
		}
		tracer().Debugf("width of %s constrained: %v → %v", item, w, applied)
		item.Invalidate(&InvalidateOptions{WidthModel: &m})
	}
	item.SetProp(PropWidth, dimen.Some(applied), dirty)
	if body := item.frameBody(); body != nil {
		inner := applied - item.FrameInfo().Width()
		body.SetProp(PropWidth, dimen.Some(inner), dirty)
	}
	return dimen.Some(applied)
}

// SetHeight sets the height of the item. See SetWidth.
func (item *Item) SetHeight(h dimen.DimenT, dirty bool) dimen.DimenT {
	if h.IsNone() {
		return h
	}
	applied := item.Sizing().ClampH(h.Unwrap())
	if applied != h.Unwrap() && item.models.Height == frame.ShrinkWrap {
		m := frame.ConstrainedMax
		if applied > h.Unwrap() {
			m = frame.ConstrainedMin
		}
		tracer().Debugf("height of %s constrained: %v → %v", item, h, applied)
		item.Invalidate(&InvalidateOptions{HeightModel: &m})
	}
	item.SetProp(PropHeight, dimen.Some(applied), dirty)
	if body := item.frameBody(); body != nil {
		inner := applied - item.FrameInfo().Height()
		body.SetProp(PropHeight, dimen.Some(inner), dirty)
	}
	return dimen.Some(applied)
}

func (item *Item) frameBody() *Item {
	if item.body != nil || item.el == nil {
		return item.body
	}
	if el := item.el.FrameBody(); el != nil {
		item.body = item.ctx.getEl(el)
	}
	return item.body
}

// AddCls buffers class names to be added to the element at the next flush.
// The latest call for a class name wins over earlier RemoveCls calls.
func (item *Item) AddCls(names ...string) {
	bufferCls(item.addCls, item.removeCls, names)
	item.ctx.flushQueue.add(item)
}

// RemoveCls buffers class names to be removed from the element at the
// next flush. The latest call for a class name wins over earlier AddCls
// calls.
func (item *Item) RemoveCls(names ...string) {
	bufferCls(item.removeCls, item.addCls, names)
	item.ctx.flushQueue.add(item)
}

func bufferCls(to, from *linkedhashset.Set, names []string) {
	for _, name := range names {
		from.Remove(name)
		to.Add(name)
	}
}

// takeCls empties a class buffer, returning its names in order.
func takeCls(set *linkedhashset.Set) []string {
	if set.Empty() {
		return nil
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	set.Clear()
	return names
}

// Invalidate requests a restart of this item's layouts (and those of its
// subtree) within the current run.
func (item *Item) Invalidate(opts *InvalidateOptions) {
	if item.cmp == nil {
		if item.ownerCt != nil {
			item.ownerCt.Invalidate(opts)
		}
		return
	}
	item.ctx.Invalidate(item.cmp, opts)
}

// --- Blocks and triggers ---------------------------------------------------

// Block declares that the running layout cannot proceed without property
// name. The layout will not be calculated again before the property is
// set. Blocking on a property which is already known is a no-op.
func (item *Item) Block(name string) {
	item.block(name, false)
}

// DomBlock declares that the running layout cannot proceed before
// property name has been flushed to the surface.
func (item *Item) DomBlock(name string) {
	item.block(name, true)
}

func (item *Item) block(name string, dom bool) {
	r := item.ctx.current
	if r == nil {
		tracer().Errorf("block on %s.%s outside of a layout calculation", item, name)
		return
	}
	if _, ok := item.props[name]; ok && (!dom || !item.dirty[name]) {
		return
	}
	set := ledgerSet(item.blockMap(dom), name)
	if set.Contains(r) {
		return
	}
	set.Add(r)
	r.blockCount++
	r.blockRegs = append(r.blockRegs, registration{item: item, name: name, dom: dom})
	item.ctx.blockCount++
	tracer().Debugf("%s blocked on %s.%s", r, item, name)
}

// unblock releases all layouts blocked on a property.
func (item *Item) unblock(name string, dom bool) {
	m := item.blockMap(dom)
	set, ok := m[name]
	if !ok {
		return
	}
	delete(m, name)
	for _, v := range set.Values() {
		r := v.(*layoutRun)
		r.dropBlockReg(item, name, dom)
		r.blockCount--
		item.ctx.blockCount--
		if r.blockCount == 0 {
			item.ctx.queueLayout(r)
		}
	}
}

// fire re-queues all layouts with a trigger on a property.
func (item *Item) fire(name string, dom bool) {
	m := item.triggers
	if dom {
		m = item.domTriggers
	}
	set, ok := m[name]
	if !ok {
		return
	}
	for _, v := range set.Values() {
		r := v.(*layoutRun)
		r.firedTriggers++
		item.ctx.queueLayout(r)
	}
}

func (item *Item) blockMap(dom bool) map[string]*linkedhashset.Set {
	if dom {
		return item.domBlocks
	}
	return item.blocks
}

func ledgerSet(m map[string]*linkedhashset.Set, name string) *linkedhashset.Set {
	set, ok := m[name]
	if !ok {
		set = linkedhashset.New()
		m[name] = set
	}
	return set
}

// --- Lifecycle -------------------------------------------------------------

// init resets an item at the start of an invalidation. Properties set by
// an owner not taking part in the invalidation survive for the top item of
// an invalidated subtree.
func (item *Item) init(models frame.SizeModels, top bool, opts *InvalidateOptions) {
	keep := make(map[string]bool)
	if top && item.inited {
		if models == item.models {
			keep[PropX], keep[PropY] = true, true
		}
		if models.Width == frame.Calculated && item.models.Width == frame.Calculated {
			keep[PropWidth] = true
		}
		if models.Height == frame.Calculated && item.models.Height == frame.Calculated {
			keep[PropHeight] = true
		}
	}
	props := make(map[string]dimen.Dimen, len(keep))
	dirty := make(map[string]bool)
	for name := range keep {
		if v, ok := item.props[name]; ok {
			props[name] = v
			if item.dirty[name] {
				dirty[name] = true
			}
		}
	}
	item.cache.restore(props)
	item.props, item.dirty = props, dirty
	item.models = models
	item.writers = make(map[string]Layout)
	item.State = make(map[string]interface{})
	if opts != nil {
		for k, v := range opts.State {
			item.State[k] = v
		}
	}
	item.inited = true
}

// flush writes dirty geometry and buffered class changes to the element.
// Returns true if anything has been written.
func (item *Item) flush() bool {
	if item.el == nil || (item.cmp != nil && item.cmp.IsDestroyed()) {
		item.dirty = make(map[string]bool)
		item.addCls.Clear()
		item.removeCls.Clear()
		return false
	}
	var patch frame.Patch
	var flushed []string
	for _, name := range []string{PropX, PropY, PropWidth, PropHeight} {
		if !item.dirty[name] {
			continue
		}
		v := item.value(name)
		switch name {
		case PropX:
			patch.X = v
		case PropY:
			patch.Y = v
		case PropWidth:
			patch.Width = v
		case PropHeight:
			patch.Height = v
		}
		flushed = append(flushed, name)
	}
	patch.AddCls, patch.RemoveCls = takeCls(item.addCls), takeCls(item.removeCls)
	item.dirty = make(map[string]bool)
	if patch.IsEmpty() {
		return false
	}
	tracer().Debugf("flush %s: %v", item, flushed)
	item.el.Apply(patch)
	for _, name := range flushed {
		item.fire(name, true)
		item.unblock(name, true)
	}
	return true
}

// Box returns the geometry currently known for the item. Unknown values are
// reported as zero.
func (item *Item) Box() frame.Box {
	box := frame.Box{
		X: item.value(PropX).UnwrapOr(0),
		Y: item.value(PropY).UnwrapOr(0),
		W: item.value(PropWidth).UnwrapOr(0),
		H: item.value(PropHeight).UnwrapOr(0),
	}
	fr := item.FrameInfo()
	box.ContentW = item.value(PropContentWidth).UnwrapOr(box.W - fr.Width())
	box.ContentH = item.value(PropContentHeight).UnwrapOr(box.H - fr.Height())
	return box
}

// Done is true if every layout of the item is done.
func (item *Item) Done() bool {
	for _, r := range item.runs {
		if r.running && !r.done {
			return false
		}
	}
	return true
}
