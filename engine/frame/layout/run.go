package layout

import (
	"fmt"

	"github.com/npillmayer/flowbox/core"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
)

// layoutRun is the per-run record of a layout. It never outlives its
// context.
type layoutRun struct {
	layout    Layout
	item      *Item
	itemID    string
	container bool

	done    bool
	running bool
	primed  bool // BeginLayoutCycle for the next cycle already called

	blockCount    int
	triggerCount  int
	firedTriggers int
	triggerRegs   []registration
	blockRegs     []registration
	calcCount     int
}

// registration is an entry of the dependency ledger of an item.
type registration struct {
	item *Item
	name string
	dom  bool
}

func (r *layoutRun) String() string {
	return fmt.Sprintf("layout(%s@%s)", r.layout.ID(), r.itemID)
}

func (r *layoutRun) dropBlockReg(item *Item, name string, dom bool) {
	regs := r.blockRegs[:0]
	for _, reg := range r.blockRegs {
		if reg.item != item || reg.name != name || reg.dom != dom {
			regs = append(regs, reg)
		}
	}
	r.blockRegs = regs
}

// clearTriggers removes every trigger registered by a layout.
func (ctx *Context) clearTriggers(r *layoutRun) {
	for _, reg := range r.triggerRegs {
		m := reg.item.triggers
		if reg.dom {
			m = reg.item.domTriggers
		}
		if set, ok := m[reg.name]; ok {
			set.Remove(r)
			if set.Empty() {
				delete(m, reg.name)
			}
		}
	}
	r.triggerRegs = nil
	r.triggerCount, r.firedTriggers = 0, 0
}

// release removes every trigger and block registered by a layout.
func (ctx *Context) release(r *layoutRun) {
	ctx.clearTriggers(r)
	for _, reg := range r.blockRegs {
		m := reg.item.blockMap(reg.dom)
		if set, ok := m[reg.name]; ok {
			set.Remove(r)
			if set.Empty() {
				delete(m, reg.name)
			}
		}
	}
	ctx.blockCount -= r.blockCount
	r.blockRegs = nil
	r.blockCount = 0
}

// queueLayout queues a layout for the next cycle. A layout executing right
// now, or waiting for its turn in the current cycle, is not queued again.
// A done layout becomes pending again.
func (ctx *Context) queueLayout(r *layoutRun) {
	if !r.running || r == ctx.current || ctx.pending[r] || r.blockCount > 0 {
		return
	}
	if r.done {
		r.done = false
		ctx.remainingLayouts++
		ctx.completionQueue.remove(r)
		ctx.finalizeQueue.remove(r)
	}
	if ctx.layoutQueue.add(r) {
		tracer().Debugf("queued %s", r)
	}
}

// --- The run ---------------------------------------------------------------

// Run executes the layout run. It returns a *ConvergenceError if the run
// stalls or hits the cycle watchdog, an error with code core.ECONFIG for
// configuration errors, and an error with code core.EINTERNAL if a layout
// algorithm panics. Run never panics itself.
func (ctx *Context) Run() (err error) {
	if ctx.state != stateReady {
		return core.Error(core.EINVALID, "layout context has already been run")
	}
	ctx.state = stateRunning
	defer func() {
		if x := recover(); x != nil {
			tracer().Errorf("layout run aborted: %v", x)
			ctx.stopAll()
			ctx.state = stateFailed
			err = core.WrapError(fmt.Errorf("%v", x), core.EINTERNAL,
				"layout algorithm panicked in cycle %d", ctx.cycleCount)
		}
	}()
	if err = ctx.flushInvalidates(); err != nil {
		ctx.stopAll()
		ctx.state = stateFailed
		return err
	}
	ctx.flush()
	if err = ctx.loop(); err != nil {
		ctx.state = stateFailed
		return err
	}
	ctx.finish()
	ctx.state = stateSucceeded
	tracer().Infof("layout run done: %d cycles, %d flushes, %d calculations",
		ctx.cycleCount, ctx.flushCount, ctx.calcCount)
	return ctx.configError()
}

func (ctx *Context) loop() error {
	for {
		if ctx.cycleCount >= ctx.maxCycles {
			return ctx.fail(true)
		}
		progressed := false
		if !ctx.layoutQueue.empty() {
			ctx.runCycle()
			progressed = ctx.progressCount > 0
		}
		if len(ctx.invalidQueue) > 0 {
			if err := ctx.flushInvalidates(); err != nil {
				ctx.stopAll()
				return err
			}
			continue
		}
		if progressed && !ctx.layoutQueue.empty() {
			continue
		}
		wrote := ctx.flush()
		completed := ctx.runCompletions()
		if len(ctx.invalidQueue) > 0 {
			continue
		}
		moved := progressed || wrote || completed
		if !ctx.layoutQueue.empty() {
			if moved {
				continue
			}
			return ctx.fail(false)
		}
		ctx.sweep()
		if ctx.remainingLayouts > 0 {
			return ctx.fail(false)
		}
		if ctx.runFinalizers() {
			continue
		}
		return nil
	}
}

// runCycle calls Calculate on every layout queued at the start of the cycle.
func (ctx *Context) runCycle() {
	ctx.cycleCount++
	ctx.progressCount = 0
	batch := ctx.layoutQueue.drain()
	for _, r := range batch {
		ctx.pending[r] = true
	}
	tracer().Debugf("cycle #%d with %d layouts", ctx.cycleCount, len(batch))
	for _, r := range batch {
		if !r.primed && ctx.alive(r) {
			ctx.current = r
			r.layout.BeginLayoutCycle(r.item, false)
			ctx.current = nil
		}
		r.primed = false
	}
	for _, r := range batch {
		delete(ctx.pending, r)
		if !ctx.alive(r) || r.done || r.blockCount > 0 {
			continue
		}
		ctx.runLayout(r)
	}
}

func (ctx *Context) runLayout(r *layoutRun) {
	ctx.clearTriggers(r)
	ctx.current = r
	done := r.layout.Calculate(r.item)
	ctx.current = nil
	r.calcCount++
	ctx.calcCount++
	if done && r.blockCount > 0 {
		tracer().Errorf("%s reports done while blocked", r)
		done = false
	}
	if done {
		ctx.layoutDone(r)
		return
	}
	if r.blockCount+r.triggerCount-r.firedTriggers == 0 {
		// nothing will wake this layout up, so it has to retry
		ctx.queueLayout(r)
	}
}

func (ctx *Context) layoutDone(r *layoutRun) {
	r.done = true
	ctx.remainingLayouts--
	flag := FlagDone
	if r.container {
		flag = FlagContainerLayoutDone
	}
	r.item.SetFlag(flag, true)
	if _, ok := r.layout.(Completer); ok {
		ctx.completionQueue.add(r)
	}
	if _, ok := r.layout.(Finalizer); ok {
		ctx.finalizeQueue.add(r)
	}
}

// flush writes all dirty items to the surface in one pass. Returns true if
// anything has been written.
func (ctx *Context) flush() bool {
	if ctx.flushQueue.empty() {
		return false
	}
	wrote := false
	for _, item := range ctx.flushQueue.drain() {
		if item.flush() {
			wrote = true
		}
	}
	if wrote {
		ctx.flushCount++
		tracer().Debugf("flush #%d", ctx.flushCount)
	}
	return wrote
}

// runCompletions calls CompleteLayout for layouts done since the last
// flush. Returns true if any progress has been made.
func (ctx *Context) runCompletions() bool {
	return ctx.runCallbacks(ctx.completionQueue, func(r *layoutRun) bool {
		return r.layout.(Completer).CompleteLayout(r.item)
	})
}

// runFinalizers calls FinalizeLayout once the whole tree is done. Returns
// true if a finalizer put work back into the run.
func (ctx *Context) runFinalizers() bool {
	if ctx.finalizeQueue.empty() {
		return false
	}
	ctx.runCallbacks(ctx.finalizeQueue, func(r *layoutRun) bool {
		return r.layout.(Finalizer).FinalizeLayout(r.item)
	})
	return !ctx.layoutQueue.empty() || !ctx.flushQueue.empty() || len(ctx.invalidQueue) > 0
}

func (ctx *Context) runCallbacks(q runQueue, callback func(*layoutRun) bool) bool {
	before := ctx.totalProgress
	for _, r := range q.drain() {
		if !ctx.alive(r) || !r.done {
			continue
		}
		ctx.current = r
		done := callback(r)
		ctx.current = nil
		if !done {
			r.done = false
			ctx.remainingLayouts++
			ctx.layoutQueue.add(r)
		}
	}
	return ctx.totalProgress > before
}

// sweep cancels layouts of components destroyed during the run.
func (ctx *Context) sweep() {
	for _, r := range ctx.runOrder {
		if r.running && r.item != nil && r.item.cmp != nil && r.item.cmp.IsDestroyed() {
			ctx.cancel(r)
		}
	}
}

// --- Ending a run ----------------------------------------------------------

// finish runs the one-shot callbacks, commits geometry and hands changes to
// an animator.
func (ctx *Context) finish() {
	ctx.flush()
	for _, r := range ctx.runOrder {
		if !ctx.alive(r) {
			continue
		}
		if _, ok := r.layout.(Finisher); ok {
			ctx.finishQueue.add(r)
		}
		if _, ok := r.layout.(OwnerNotifier); ok {
			ctx.notifyQueue.add(r)
		}
	}
	for _, r := range ctx.finishQueue.drain() {
		r.layout.(Finisher).FinishedLayout(r.item)
	}
	for _, r := range ctx.notifyQueue.drain() {
		r.layout.(OwnerNotifier).NotifyOwner(r.item)
	}
	deltas := ctx.commit()
	ctx.flush()
	if len(deltas) > 0 {
		tracer().Debugf("handing %d geometry changes to animator", len(deltas))
		ctx.animator.Animate(deltas)
	}
	for _, r := range ctx.runOrder {
		r.running = false
	}
}

// commit stores the final geometry on the components and collects deltas
// to previously committed geometry.
func (ctx *Context) commit() []frame.Delta {
	var deltas []frame.Delta
	for _, item := range ctx.Items() {
		c := item.cmp
		if c == nil || c.IsDestroyed() {
			continue
		}
		box := item.Box()
		ctx.boxes[item.id] = box
		last, had := c.LastBox()
		c.SetLastBox(box)
		if !ctx.animate || ctx.animator == nil || !had || last.SameGeometry(box) {
			continue
		}
		deltas = append(deltas, frame.Delta{ID: item.id, From: last, To: box})
		item.writeStart(last)
	}
	return deltas
}

// writeStart queues the starting keyframe of an animation for the flush.
func (item *Item) writeStart(box frame.Box) {
	start := map[string]dimen.Dimen{
		PropX: box.X, PropY: box.Y, PropWidth: box.W, PropHeight: box.H,
	}
	for name, v := range start {
		item.props[name] = v
		item.dirty[name] = true
	}
	item.ctx.flushQueue.add(item)
}

// fail stops the run and reports the items with unfinished layouts.
func (ctx *Context) fail(watchdog bool) error {
	seen := make(map[string]bool)
	for _, r := range ctx.runOrder {
		if r.running && !r.done && !seen[r.itemID] {
			seen[r.itemID] = true
			ctx.unresolved = append(ctx.unresolved, r.itemID)
		}
	}
	ctx.stopAll()
	err := &ConvergenceError{
		Unresolved: ctx.unresolved,
		Cycles:     ctx.cycleCount,
		Watchdog:   watchdog,
	}
	tracer().Errorf(err.Error())
	return err
}

// stopAll stops every layout and drops its references into the run.
func (ctx *Context) stopAll() {
	for _, r := range ctx.runOrder {
		if r.item != nil {
			ctx.release(r)
		}
		r.running = false
		r.item = nil
	}
	ctx.current = nil
	ctx.layoutQueue.drain()
	ctx.completionQueue.drain()
	ctx.finalizeQueue.drain()
	ctx.pending = make(map[*layoutRun]bool)
	ctx.invalidQueue = nil
}
