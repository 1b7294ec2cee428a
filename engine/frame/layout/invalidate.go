package layout

import (
	"sort"

	"github.com/npillmayer/flowbox/engine/frame"
)

// InvalidateOptions parametrize the invalidation of a component.
type InvalidateOptions struct {
	State       map[string]interface{} // merged into the fresh Item.State
	WidthModel  *frame.SizeModel       // override of the resolved width model
	HeightModel *frame.SizeModel       // override of the resolved height model
	Before      func(item *Item)       // called before the item is reset
	After       func(item *Item)       // called after the subtree has been reset
}

type invalidation struct {
	c     Component
	opts  *InvalidateOptions
	depth int
}

// Invalidate queues a component for a reset and re-computation of its
// subtree. Before a run, this is how root components are added. During a
// run, invalidations are processed between cycles.
func (ctx *Context) Invalidate(c Component, opts *InvalidateOptions) {
	if c == nil {
		return
	}
	if ctx.state == stateSucceeded || ctx.state == stateFailed {
		tracer().Errorf("invalidation of [%s] after run has ended is ignored", c.ID())
		return
	}
	tracer().Debugf("queue invalidation of [%s]", c.ID())
	ctx.invalidQueue = append(ctx.invalidQueue, invalidation{c: c, opts: opts, depth: depth(c)})
}

func depth(c Component) int {
	d := 0
	for p := c.OwnerCt(); p != nil; p = p.OwnerCt() {
		d++
	}
	return d
}

// dedupInvalidations drops every invalidation which is covered by an
// invalidation of an ancestor (or by an earlier one of the same component)
// and sorts the rest top-down.
func dedupInvalidations(batch []invalidation) []invalidation {
	queued := make(map[string]bool, len(batch))
	for _, inv := range batch {
		queued[inv.c.ID()] = true
	}
	seen := make(map[string]bool, len(batch))
	result := batch[:0]
	for _, inv := range batch {
		id := inv.c.ID()
		if seen[id] {
			continue
		}
		covered := false
		for p := inv.c.OwnerCt(); p != nil; p = p.OwnerCt() {
			if queued[p.ID()] {
				covered = true
				break
			}
		}
		if covered {
			tracer().Debugf("invalidation of [%s] covered by an ancestor", id)
			continue
		}
		seen[id] = true
		result = append(result, inv)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].depth < result[j].depth
	})
	return result
}

// flushInvalidates processes all queued invalidations. Items are reset
// top-down, so the size models of an owner are known before the models of
// its children are resolved.
func (ctx *Context) flushInvalidates() error {
	if len(ctx.invalidQueue) == 0 {
		return nil
	}
	batch := dedupInvalidations(ctx.invalidQueue)
	ctx.invalidQueue = nil
	for _, inv := range batch {
		if inv.c.IsDestroyed() {
			continue
		}
		if _, err := ctx.invalidateTree(inv.c, inv.opts, true); err != nil {
			return err
		}
	}
	ctx.beginRuns()
	return nil
}

func (ctx *Context) invalidateTree(c Component, opts *InvalidateOptions, top bool) (*Item, error) {
	item := ctx.getCmp(c)
	var parent *Item
	if p := c.OwnerCt(); p != nil {
		if pitem, ok := ctx.Item(p.ID()); ok {
			parent = pitem
		}
	}
	item.ownerCt = parent
	if top && opts != nil {
		if opts.WidthModel != nil {
			item.overrideW = opts.WidthModel
		}
		if opts.HeightModel != nil {
			item.overrideH = opts.HeightModel
		}
	}
	models := ctx.resolveSizeModels(c, parent)
	if top && opts != nil && opts.Before != nil {
		ctx.hook(opts.Before, item)
	}
	tracer().Debugf("reset %s, size models %v", item, models)
	item.init(models, top, opts)
	if top && parent == nil && c.OwnerCt() != nil {
		ctx.seedDetached(item)
	}
	cl := c.ComponentLayout()
	if cl == nil {
		return item, missingLayoutError(c, "component layout")
	}
	ctx.resetRun(cl, item, false)
	kids := c.LayoutItems()
	if ctl := c.ContainerLayout(); ctl != nil {
		ctx.resetRun(ctl, item, true)
	} else if len(kids) > 0 {
		return item, missingLayoutError(c, "container layout")
	}
	item.children = item.children[:0]
	for _, k := range kids {
		if k.IsDestroyed() {
			continue
		}
		kitem, err := ctx.invalidateTree(k, nil, false)
		if err != nil {
			return item, err
		}
		item.children = append(item.children, kitem)
	}
	if top && opts != nil && opts.After != nil {
		ctx.hook(opts.After, item)
	}
	return item, nil
}

// resolveSizeModels asks a component for its size models, given the models
// of its owner, and lets the owner's container layout claim dimensions it
// calculates. Owners not taking part in the run are resolved from the top of
// their tree.
func (ctx *Context) resolveSizeModels(c Component, parent *Item) frame.SizeModels {
	var models frame.SizeModels
	if parent != nil {
		models = sizeModelsWithin(c, parent.cmp, parent.models)
	} else if owner := c.OwnerCt(); owner != nil {
		models = sizeModelsWithin(c, owner, detachedModels(owner))
	} else {
		models = c.SizeModel(frame.SizeModels{})
	}
	item, _ := ctx.Item(c.ID())
	if item != nil {
		if item.overrideW != nil && models.Width != frame.Calculated {
			models.Width = *item.overrideW
		}
		if item.overrideH != nil && models.Height != frame.Calculated {
			models.Height = *item.overrideH
		}
	}
	return models
}

func sizeModelsWithin(c Component, owner Component, ownerModels frame.SizeModels) frame.SizeModels {
	models := c.SizeModel(ownerModels)
	if owner == nil {
		return models
	}
	if p, ok := owner.ContainerLayout().(ItemSizePolicer); ok {
		policy := p.ItemSizePolicy(c, ownerModels)
		if policy.SetsWidth {
			models.Width = frame.Calculated
		}
		if policy.SetsHeight {
			models.Height = frame.Calculated
		}
	}
	return models
}

// detachedModels resolves the size models of a component which is not part
// of the run. Size models are a pure function of configuration, so this
// yields the models the component had in the run which laid it out last.
func detachedModels(c Component) frame.SizeModels {
	owner := c.OwnerCt()
	if owner == nil {
		return c.SizeModel(frame.SizeModels{})
	}
	return sizeModelsWithin(c, owner, detachedModels(owner))
}

// seedDetached recovers geometry owned by the container of a component whose
// owner does not take part in the run.
func (ctx *Context) seedDetached(item *Item) {
	last, ok := item.cmp.LastBox()
	if !ok {
		tracer().Infof("%s laid out without its owner and without previous geometry", item)
		return
	}
	item.props[PropX], item.props[PropY] = last.X, last.Y
	if item.models.Width == frame.Calculated {
		item.props[PropWidth] = last.W
	}
	if item.models.Height == frame.Calculated {
		item.props[PropHeight] = last.H
	}
}

// hook calls an invalidation callback outside of any layout calculation.
func (ctx *Context) hook(f func(*Item), item *Item) {
	saved := ctx.current
	ctx.current = nil
	defer func() { ctx.current = saved }()
	f(item)
}

// resetRun puts a layout (back) into the READY state and queues it.
func (ctx *Context) resetRun(l Layout, item *Item, container bool) {
	r, ok := ctx.runs[l]
	if !ok {
		r = &layoutRun{layout: l, container: container}
		ctx.runs[l] = r
		ctx.runOrder = append(ctx.runOrder, r)
		item.runs = append(item.runs, r)
	}
	r.item, r.itemID = item, item.id
	ctx.release(r)
	ctx.completionQueue.remove(r)
	ctx.finalizeQueue.remove(r)
	if !r.running || r.done {
		ctx.remainingLayouts++
	}
	r.running, r.done, r.primed = true, false, false
	ctx.layoutQueue.add(r)
	ctx.toBegin = append(ctx.toBegin, r)
}

// beginRuns calls BeginLayout and the first BeginLayoutCycle for every
// layout which has been reset.
func (ctx *Context) beginRuns() {
	runs := ctx.toBegin
	ctx.toBegin = nil
	for _, r := range runs {
		if !ctx.alive(r) || r.primed {
			continue
		}
		if c := r.item.cmp; c != nil && !ctx.beforeCalled[c.ID()] {
			ctx.beforeCalled[c.ID()] = true
			c.BeforeLayout()
		}
		ctx.current = r
		r.layout.BeginLayout(r.item)
		r.layout.BeginLayoutCycle(r.item, true)
		ctx.current = nil
		r.primed = true
	}
}
