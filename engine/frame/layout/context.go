package layout

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/schuko"
)

// DefaultMaxCycles is the default watchdog limit for the number of cycles
// of a single run.
const DefaultMaxCycles = 100

type runState uint8

const (
	stateReady runState = iota
	stateRunning
	stateSucceeded
	stateFailed
)

// Context drives one layout run. It owns every Item and every per-run
// record of a layout. A context is not reusable: create one per run and
// discard it afterwards. Layout results are committed to the components
// (see Component.SetLastBox) and may be queried with Box.
//
// A context is not safe for concurrent use; runs are strictly synchronous.
type Context struct {
	conf      schuko.Configuration
	maxCycles int
	debug     bool
	animate   bool
	animator  Animator

	items    *linkedhashmap.Map // id → *Item, in order of creation
	runs     map[Layout]*layoutRun
	runOrder []*layoutRun
	boxes    map[string]frame.Box // committed geometry

	layoutQueue     runQueue
	pending         map[*layoutRun]bool // queued for the current cycle, not yet calculated
	flushQueue      itemQueue
	completionQueue runQueue
	finalizeQueue   runQueue
	finishQueue     runQueue
	notifyQueue     runQueue
	invalidQueue    []invalidation
	toBegin         []*layoutRun
	beforeCalled    map[string]bool

	current          *layoutRun // layout executing right now
	state            runState
	blockCount       int
	remainingLayouts int
	cycleCount       int
	progressCount    int // per cycle
	totalProgress    int
	flushCount       int
	calcCount        int
	configErrs       []error
	unresolved       []string
}

// Option configures a context.
type Option func(*Context)

// WithConfiguration lets a context read its settings from conf.
func WithConfiguration(conf schuko.Configuration) Option {
	return func(ctx *Context) {
		ctx.conf = conf
		if conf == nil {
			return
		}
		if conf.IsSet("layout.maxcycles") {
			if n := conf.GetInt("layout.maxcycles"); n > 0 {
				ctx.maxCycles = n
			}
		}
		if conf.IsSet("layout.debug") {
			ctx.debug = conf.GetBool("layout.debug")
		}
		if conf.IsSet("layout.animate") {
			ctx.animate = conf.GetBool("layout.animate")
		}
	}
}

// WithAnimator hands geometry changes of a successful run to a.
func WithAnimator(a Animator) Option {
	return func(ctx *Context) {
		ctx.animator = a
		ctx.animate = a != nil
	}
}

// WithDebug switches checks of dimension ownership on or off.
func WithDebug(debug bool) Option {
	return func(ctx *Context) {
		ctx.debug = debug
	}
}

// NewContext creates a context for a single layout run.
// Options are applied in order.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		maxCycles:       DefaultMaxCycles,
		items:           linkedhashmap.New(),
		runs:            make(map[Layout]*layoutRun),
		boxes:           make(map[string]frame.Box),
		layoutQueue:     newRunQueue(),
		pending:         make(map[*layoutRun]bool),
		flushQueue:      newItemQueue(),
		completionQueue: newRunQueue(),
		finalizeQueue:   newRunQueue(),
		finishQueue:     newRunQueue(),
		notifyQueue:     newRunQueue(),
		beforeCalled:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Run performs a layout run for every component invalidated so far.
// See package documentation for details.
func Run(root Component, opts ...Option) (*Context, error) {
	ctx := NewContext(opts...)
	ctx.Invalidate(root, nil)
	err := ctx.Run()
	return ctx, err
}

// --- Items -----------------------------------------------------------------

// Item returns the item for an ID, if it is part of this run.
func (ctx *Context) Item(id string) (*Item, bool) {
	v, ok := ctx.items.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Item), true
}

// Items returns all items of this run, in order of creation.
func (ctx *Context) Items() []*Item {
	values := ctx.items.Values()
	items := make([]*Item, len(values))
	for i, v := range values {
		items[i] = v.(*Item)
	}
	return items
}

// getCmp returns the item for a component, creating it if necessary.
func (ctx *Context) getCmp(c Component) *Item {
	if item, ok := ctx.Item(c.ID()); ok {
		return item
	}
	item := newItem(ctx, c.ID(), c, c.Element())
	ctx.items.Put(c.ID(), item)
	return item
}

// getEl returns the item for a plain element, creating it if necessary.
func (ctx *Context) getEl(el Element) *Item {
	if item, ok := ctx.Item(el.ID()); ok {
		return item
	}
	item := newItem(ctx, el.ID(), nil, el)
	item.inited = true
	ctx.items.Put(el.ID(), item)
	return item
}

// Box returns the geometry committed for a component by a successful run.
func (ctx *Context) Box(c Component) (frame.Box, bool) {
	box, ok := ctx.boxes[c.ID()]
	return box, ok
}

// --- Diagnostics -----------------------------------------------------------

// Stats holds counters of a layout run.
//
// Flushes usually does not exceed Cycles. Writes done by Finisher and
// OwnerNotifier layouts, and the start keyframes written for an Animator,
// are flushed after the last cycle and may add up to two flushes.
type Stats struct {
	Cycles       int // calculation cycles
	Flushes      int // non-empty bulk writes to the surface
	Calculations int // calls to Calculate
	Progress     int // property changes
	Layouts      int // layouts taking part
	Remaining    int // layouts not done
}

// Stats returns the counters of this context's run.
func (ctx *Context) Stats() Stats {
	return Stats{
		Cycles:       ctx.cycleCount,
		Flushes:      ctx.flushCount,
		Calculations: ctx.calcCount,
		Progress:     ctx.totalProgress,
		Layouts:      len(ctx.runOrder),
		Remaining:    ctx.remainingLayouts,
	}
}

// Unresolved returns the IDs of items which still had pending layouts when
// the run failed.
func (ctx *Context) Unresolved() []string {
	return ctx.unresolved
}

// LayoutState describes the state of one layout of a run, for diagnostics.
type LayoutState struct {
	ID        string
	ItemID    string
	Container bool
	Done      bool
	Running   bool
	Blocks    int
	Triggers  int
	Calcs     int
}

// LayoutStates returns the state of every layout of this run.
func (ctx *Context) LayoutStates() []LayoutState {
	states := make([]LayoutState, 0, len(ctx.runOrder))
	for _, r := range ctx.runOrder {
		st := LayoutState{
			ID:        r.layout.ID(),
			Container: r.container,
			Done:      r.done,
			Running:   r.running,
			Blocks:    r.blockCount,
			Triggers:  r.triggerCount,
			Calcs:     r.calcCount,
			ItemID:    r.itemID,
		}
		states = append(states, st)
	}
	return states
}

// --- Bookkeeping -----------------------------------------------------------

func (ctx *Context) progress() {
	ctx.progressCount++
	ctx.totalProgress++
}

// addTrigger registers the running layout as interested in a property.
func (ctx *Context) addTrigger(item *Item, name string, dom bool) {
	r := ctx.current
	if r == nil {
		return
	}
	m := item.triggers
	if dom {
		m = item.domTriggers
	}
	set := ledgerSet(m, name)
	if set.Contains(r) {
		return
	}
	set.Add(r)
	r.triggerCount++
	r.triggerRegs = append(r.triggerRegs, registration{item: item, name: name, dom: dom})
}

// checkWrite records the writer of a property and, in debug mode, checks
// that the writer owns the dimension under the item's size model.
func (ctx *Context) checkWrite(item *Item, name string) {
	r := ctx.current
	if r == nil || item.cmp == nil {
		return
	}
	if prev, ok := item.writers[name]; ok && prev != r.layout {
		tracer().P("item", item.id).Infof("%s written by %s and %s", name, prev.ID(), r.layout.ID())
	}
	item.writers[name] = r.layout
	if !ctx.debug || (name != PropWidth && name != PropHeight) {
		return
	}
	model := item.models.Width
	if name == PropHeight {
		model = item.models.Height
	}
	var owner Layout
	switch frame.DimensionOwner(model) {
	case frame.ComponentAuthority:
		owner = item.cmp.ComponentLayout()
	case frame.ContainerAuthority:
		if item.ownerCt != nil && item.ownerCt.cmp != nil {
			owner = item.ownerCt.cmp.ContainerLayout()
		}
	}
	if owner != nil && owner != r.layout {
		err := ownershipError(item, name, r.layout)
		tracer().Errorf(err.Error())
		ctx.configErrs = append(ctx.configErrs, err)
	}
}

func (ctx *Context) configError() error {
	if len(ctx.configErrs) == 0 {
		return nil
	}
	if len(ctx.configErrs) > 1 {
		tracer().Errorf("%d configuration errors during layout run", len(ctx.configErrs))
	}
	return ctx.configErrs[0]
}

func (ctx *Context) alive(r *layoutRun) bool {
	if !r.running || r.item == nil {
		return false
	}
	if c := r.item.cmp; c != nil && c.IsDestroyed() {
		ctx.cancel(r)
		return false
	}
	return true
}

// cancel removes a layout of a destroyed component from the run.
func (ctx *Context) cancel(r *layoutRun) {
	tracer().Debugf("cancel %s", r)
	ctx.release(r)
	if r.running && !r.done {
		ctx.remainingLayouts--
	}
	r.running = false
	ctx.layoutQueue.remove(r)
	ctx.completionQueue.remove(r)
	ctx.finalizeQueue.remove(r)
	delete(ctx.pending, r)
}
