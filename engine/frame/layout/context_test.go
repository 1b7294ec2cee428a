package layout

import (
	"errors"
	"testing"

	"github.com/npillmayer/flowbox/core"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	cl := scripted(root, fixed(100, 50))
	ctx, err := Run(root)
	require.NoError(t, err)
	box, ok := ctx.Box(root)
	require.True(t, ok)
	assert.Equal(t, dimen.Px(100), box.W)
	assert.Equal(t, dimen.Px(50), box.H)
	assert.Equal(t, 1, cl.begins)
	assert.Equal(t, 1, cl.firstCycles)
	assert.Equal(t, 1, root.before)
	assert.True(t, root.hasLast, "geometry should have been committed to the component")
	require.Len(t, root.el.patches, 1)
	assert.Equal(t, dimen.Some(dimen.Px(100)), root.el.patches[0].Width)
	stats := ctx.Stats()
	assert.Equal(t, 1, stats.Cycles)
	assert.LessOrEqual(t, stats.Flushes, stats.Cycles)
	assert.Equal(t, 0, stats.Remaining)
}

func TestTriggerRequeuesReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, a, b := newCmp("p"), newCmp("a"), newCmp("b")
	p.add(a, b)
	scripted(p, nil)
	scriptedContainer(p, nil)
	reader := scripted(a, func(item *Item) bool {
		bw := item.OwnerCt().Children()[1].GetProp(PropWidth)
		if bw.IsNone() {
			return false
		}
		item.SetProp(PropWidth, bw.Add(dimen.Px(10)), true)
		return true
	})
	scripted(b, fixed(30, 30))
	ctx, err := Run(p)
	require.NoError(t, err)
	assert.Equal(t, 2, reader.calcs, "reader should run once more after b has been set")
	assert.Equal(t, 2, ctx.Stats().Cycles)
	box, _ := ctx.Box(a)
	assert.Equal(t, dimen.Px(40), box.W)
}

func TestBlockRequeuesOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, k := newCmp("p"), newCmp("k")
	p.add(k)
	scripted(p, nil)
	blocked := scriptedContainer(p, func(item *Item) bool {
		kid := item.Children()[0]
		h := kid.GetProp(PropHeight)
		if h.IsNone() {
			kid.Block(PropHeight)
			return false
		}
		item.SetProp(PropContentHeight, h, false)
		return true
	})
	var setTwice bool
	scripted(k, func(item *Item) bool {
		item.SetProp(PropHeight, dimen.Some(dimen.Px(40)), true)
		setTwice = item.SetProp(PropHeight, dimen.Some(dimen.Px(40)), true)
		item.Block(PropHeight) // already known: no-op
		return true
	})
	ctx, err := Run(p)
	require.NoError(t, err)
	assert.False(t, setTwice, "setting an equal value must not count as a change")
	assert.Equal(t, 2, blocked.calcs)
	assert.Equal(t, 0, ctx.blockCount)
	pitem, _ := ctx.Item("p")
	assert.Equal(t, dimen.Some(dimen.Px(40)), pitem.value(PropContentHeight))
}

func TestDomPropBecomesVisibleAfterFlush(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, a, b := newCmp("p"), newCmp("a"), newCmp("b")
	p.add(a, b)
	scripted(p, nil)
	scriptedContainer(p, nil)
	scripted(a, fixed(80, 10))
	var seen []dimen.DimenT
	scripted(b, func(item *Item) bool {
		w := item.OwnerCt().Children()[0].GetDomProp(PropWidth)
		seen = append(seen, w)
		if w.IsNone() {
			return false
		}
		item.SetProp(PropWidth, w, true)
		return true
	})
	ctx, err := Run(p)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsNone(), "dirty width must not be visible before flush")
	assert.Equal(t, dimen.Some(dimen.Px(80)), seen[1])
	stats := ctx.Stats()
	assert.Equal(t, 2, stats.Cycles)
	assert.Equal(t, 2, stats.Flushes)
}

func TestMutualShrinkWrapFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, a, b := newCmp("p"), newCmp("a"), newCmp("b")
	p.add(a, b)
	scripted(p, nil)
	scriptedContainer(p, nil)
	wrapTo := func(other int) func(*Item) bool {
		return func(item *Item) bool {
			w := item.OwnerCt().Children()[other].GetProp(PropWidth)
			if w.IsNone() {
				return false
			}
			item.SetWidth(w, true)
			return true
		}
	}
	la := scripted(a, wrapTo(1))
	lb := scripted(b, wrapTo(0))
	ctx := NewContext()
	ctx.Invalidate(p, nil)
	var err error
	assert.NotPanics(t, func() { err = ctx.Run() })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoConvergence))
	assert.Equal(t, core.ECONVERGENCE, core.Code(err))
	var cerr *ConvergenceError
	require.True(t, errors.As(err, &cerr))
	assert.False(t, cerr.Watchdog)
	assert.ElementsMatch(t, []string{"a", "b"}, ctx.Unresolved())
	assert.Less(t, ctx.Stats().Cycles, DefaultMaxCycles)
	for _, st := range ctx.LayoutStates() {
		assert.False(t, st.Running, "layout %s should have been stopped", st.ID)
	}
	assert.Nil(t, ctx.runs[la].item)
	assert.Nil(t, ctx.runs[lb].item)
	assert.False(t, a.hasLast, "a failed run must not commit geometry")
}

func TestWatchdog(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	n := 0
	scripted(root, func(item *Item) bool {
		n++
		item.SetProp(PropWidth, dimen.Some(dimen.Px(n)), true)
		return false
	})
	conf := testconfig.Conf{"layout.maxcycles": 10}
	ctx := NewContext(WithConfiguration(conf))
	ctx.Invalidate(root, nil)
	err := ctx.Run()
	var cerr *ConvergenceError
	require.True(t, errors.As(err, &cerr))
	assert.True(t, cerr.Watchdog)
	assert.Equal(t, 10, cerr.Cycles)
	assert.Equal(t, []string{"root"}, cerr.Unresolved)
}

func TestInvalidatePreservesSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, x, y := newCmp("p"), newCmp("x"), newCmp("y")
	p.add(x, y)
	scripted(p, nil)
	container := scriptedContainer(p, stackChildren)
	var hooks []string
	xl := scripted(x, func(item *Item) bool {
		fixed(10, 20)(item)
		if item.State["again"] == nil {
			item.Invalidate(&InvalidateOptions{
				State:  map[string]interface{}{"again": true},
				Before: func(*Item) { hooks = append(hooks, "before") },
				After:  func(*Item) { hooks = append(hooks, "after") },
			})
		}
		return true
	})
	yl := scripted(y, fixed(10, 30))
	ctx, err := Run(p)
	require.NoError(t, err)
	assert.Equal(t, 2, xl.calcs)
	assert.Equal(t, 2, xl.begins, "invalidation puts layouts back to READY")
	assert.Equal(t, 1, yl.calcs, "sibling must not be recalculated")
	assert.Equal(t, 1, yl.begins)
	assert.Equal(t, []string{"before", "after"}, hooks)
	assert.GreaterOrEqual(t, container.calcs, 2)
	ybox, _ := ctx.Box(y)
	assert.Equal(t, dimen.Px(20), ybox.Y)
}

func TestInvalidationDedup(t *testing.T) {
	a, b, c, d := newCmp("a"), newCmp("b"), newCmp("c"), newCmp("d")
	a.add(b)
	b.add(c)
	batch := []invalidation{
		{c: c, depth: depth(c)},
		{c: a, depth: depth(a)},
		{c: d, depth: depth(d)},
		{c: b, depth: depth(b)},
		{c: a, depth: depth(a)},
	}
	result := dedupInvalidations(batch)
	require.Len(t, result, 2)
	assert.Equal(t, "a", result[0].c.ID())
	assert.Equal(t, "d", result[1].c.ID())
	assert.Equal(t, 2, depth(c))
}

func TestOwnershipCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	build := func() *testCmp {
		p, k := newCmp("p"), newCmp("k")
		p.add(k)
		p.models = frame.SizeModels{Width: frame.Configured, Height: frame.Configured}
		k.models = frame.SizeModels{Width: frame.Configured, Height: frame.Configured}
		scripted(p, fixed(100, 100))
		scriptedContainer(p, func(item *Item) bool {
			item.Children()[0].SetProp(PropWidth, dimen.Some(dimen.Px(50)), true)
			return true
		})
		scripted(k, nil)
		return p
	}
	_, err := Run(build())
	assert.NoError(t, err, "ownership is checked in debug mode only")
	_, err = Run(build(), WithConfiguration(testconfig.Conf{"layout.debug": true}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOwnership))
	assert.Equal(t, core.ECONFIG, core.Code(err))
}

func TestMissingContainerLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, k := newCmp("p"), newCmp("k")
	p.add(k)
	scripted(p, nil)
	scripted(k, nil)
	_, err := Run(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingLayout))
	assert.Equal(t, core.ECONFIG, core.Code(err))
}

func TestPanicIsRecovered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	scripted(root, func(*Item) bool {
		panic("broken algorithm")
	})
	var err error
	assert.NotPanics(t, func() { _, err = Run(root) })
	require.Error(t, err)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
}

func TestCallbackProtocol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	l := &completing{script: script{id: "root.cl", owner: root, calc: fixed(100, 20)}}
	root.cl = l
	_, err := Run(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"complete", "finalize", "finished", "notify"}, l.log)
	assert.Equal(t, dimen.Some(dimen.Px(100)), l.sawWidth, "completion runs after the flush")
}

func TestDestroyedComponentIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	p, a, b := newCmp("p"), newCmp("a"), newCmp("b")
	p.add(a, b)
	scripted(p, nil)
	scriptedContainer(p, nil)
	scripted(a, func(item *Item) bool {
		b.destroyed = true
		return fixed(10, 10)(item)
	})
	bl := scripted(b, fixed(10, 10))
	ctx, err := Run(p)
	require.NoError(t, err)
	assert.Equal(t, 0, bl.calcs)
	_, ok := ctx.Box(b)
	assert.False(t, ok)
}

func TestAnimationHandOff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	w := 100
	scripted(root, func(item *Item) bool {
		return fixed(w, 10)(item)
	})
	animator := &recordingAnimator{}
	_, err := Run(root, WithAnimator(animator))
	require.NoError(t, err)
	assert.Empty(t, animator.deltas, "nothing to animate without previous geometry")
	w = 150
	ctx, err := Run(root, WithAnimator(animator))
	require.NoError(t, err)
	require.Len(t, animator.deltas, 1)
	assert.Equal(t, dimen.Px(100), animator.deltas[0].From.W)
	assert.Equal(t, dimen.Px(150), animator.deltas[0].To.W)
	box, _ := ctx.Box(root)
	assert.Equal(t, dimen.Px(150), box.W)
	assert.Equal(t, dimen.Some(dimen.Px(100)), root.el.lastWidth(), "start keyframe written last")
	stats := ctx.Stats()
	assert.Equal(t, 1, stats.Cycles)
	assert.Equal(t, 2, stats.Flushes, "start keyframe needs a flush of its own")
}

func TestFrameBodyReceivesInnerSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	root.el.body = &testEl{id: "root#body"}
	root.el.styles["padding-left"] = "5px"
	root.el.styles["padding-right"] = "5"
	root.el.styles["border-left-width"] = "1px"
	root.el.styles["border-right-width"] = "1px"
	scripted(root, func(item *Item) bool {
		item.SetWidth(dimen.Some(dimen.Px(100)), true)
		return true
	})
	_, err := Run(root)
	require.NoError(t, err)
	assert.Equal(t, dimen.Some(dimen.Px(88)), root.el.body.lastWidth())
}

func TestShrinkWrapHitsMaximum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.layout")
	defer teardown()
	//
	root := newCmp("root")
	root.sizing.MaxW = dimen.Px(50)
	var models []frame.SizeModel
	scripted(root, func(item *Item) bool {
		models = append(models, item.SizeModels().Width)
		if item.SizeModels().Width == frame.ShrinkWrap {
			item.SetWidth(dimen.Some(dimen.Px(300)), true)
		} else {
			item.SetWidth(dimen.Some(item.Sizing().MaxW), true)
		}
		return true
	})
	ctx, err := Run(root)
	require.NoError(t, err)
	assert.Equal(t, []frame.SizeModel{frame.ShrinkWrap, frame.ConstrainedMax}, models)
	box, _ := ctx.Box(root)
	assert.Equal(t, dimen.Px(50), box.W)
}

func TestContextRunsOnce(t *testing.T) {
	root := newCmp("root")
	scripted(root, nil)
	ctx := NewContext()
	ctx.Invalidate(root, nil)
	require.NoError(t, ctx.Run())
	err := ctx.Run()
	assert.Equal(t, core.EINVALID, core.Code(err))
}
