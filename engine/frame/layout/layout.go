package layout

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
)

// Layout is a pluggable layout algorithm, bound to one owner component.
// A component usually has two of them: a component layout, responsible for
// the size of the component itself, and a container layout, responsible for
// placing and sizing the component's children.
//
// The context drives a layout through a strict sequence of calls:
// BeginLayout once per run (or after invalidation), BeginLayoutCycle at the
// top of every cycle the layout takes part in, and Calculate until it
// reports done. Calculate must compute from currently known inputs only,
// as it may be called any number of times. If a required input is not yet
// known, Calculate returns false and must not publish guessed values.
type Layout interface {
	ID() string
	Owner() Component
	BeginLayout(item *Item)
	BeginLayoutCycle(item *Item, firstCycle bool)
	Calculate(item *Item) (done bool)
}

// Completer is an optional interface for layouts. CompleteLayout is called
// after the layout is done and after the next flush, i.e. when the
// surface reflects all values written so far. Returning false puts the
// layout back into calculation.
type Completer interface {
	CompleteLayout(item *Item) (done bool)
}

// Finalizer is an optional interface for layouts. FinalizeLayout is called
// after the entire tree is done. Returning false puts the layout back into
// calculation.
type Finalizer interface {
	FinalizeLayout(item *Item) (done bool)
}

// Finisher is an optional interface for layouts. FinishedLayout is called
// exactly once after a run concluded successfully.
type Finisher interface {
	FinishedLayout(item *Item)
}

// OwnerNotifier is an optional interface for layouts. NotifyOwner is called
// exactly once after a run concluded successfully, after all
// FinishedLayout calls.
type OwnerNotifier interface {
	NotifyOwner(item *Item)
}

// ItemSizePolicer is implemented by container layouts. It declares which
// dimensions of a child the container will set, given the size models of
// the owner component.
type ItemSizePolicer interface {
	ItemSizePolicy(child Component, ownerModels frame.SizeModels) frame.SizePolicy
}

// --- Collaborators ---------------------------------------------------------

// Component is a node of the component tree, as seen by the layout engine.
// ComponentLayout and ContainerLayout have to return the same layout
// instances for the lifetime of a component. Layouts are compared by
// identity, so implementations should be pointer types.
type Component interface {
	ID() string
	OwnerCt() Component          // the containing component, or nil for a root
	LayoutItems() []Component    // children managed by the container layout
	SizeModel(ownerHint frame.SizeModels) frame.SizeModels
	Sizing() frame.Sizing        // configured sizes and min/max constraints
	Element() Element            // the rendered element of the component
	ComponentLayout() Layout     // required
	ContainerLayout() Layout     // required for components with layout items
	IsDestroyed() bool
	BeforeLayout()               // called once per run, before the first calculation
	LastBox() (frame.Box, bool)  // geometry committed by the last successful run
	SetLastBox(box frame.Box)
}

// Element is a node of the rendered surface.
//
// Style reads presentation attributes (e.g., "margin-left" or
// "line-height"). Measure returns the natural size of the element's
// content, given an optional width to wrap the content to.
// Apply writes geometry to the surface.
type Element interface {
	ID() string
	Style(name string) string
	Measure(width dimen.DimenT) (w, h dimen.Dimen)
	FrameBody() Element
	Apply(patch frame.Patch)
}

// Animator takes over geometry changes at the end of a successful run.
// Before Animate is called, the engine writes the starting geometry (the
// From box of each delta) to the surface.
type Animator interface {
	Animate(deltas []frame.Delta)
}
