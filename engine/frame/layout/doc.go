/*
Package layout implements an incremental constraint-resolution engine for
box layout.

Overview

Sizes of boxes in a tree depend on each other: a container shrink-wrapping
its content needs the widths of its children, a child sized in percent needs
the width of its container, and the height of a wrapping text depends on the
width it has been given. Package layout resolves these dependencies by
iterating towards a fixed point.

A layout run is driven by a Context. For every node taking part in a run,
the context holds an Item, which records the computed geometry of the node
(x, y, width, height, content size, box edges and a couple of milestone
flags). Layout algorithms, implementing interface Layout, are bound to a
component and read and write properties of items. Reading a property which is
not yet known is not an error: the reading layout reports that it is not done
and gets re-queued as soon as the property is set (a trigger). A layout may
also explicitly block on a property.

A run is partitioned into cycles. Every cycle calls Calculate on each
queued layout; layouts queued during a cycle run in the next one. Whenever
a cycle makes no progress, computed geometry is written to the rendered
surface in a single bulk flush. Properties which must be reflected by the
surface before they may be read (GetDomProp) become visible only after that
flush. A run which stops making progress while layouts are still pending
fails with a ConvergenceError.

Usage

	ctx := layout.NewContext(layout.WithConfiguration(conf))
	ctx.Invalidate(root, nil)
	if err := ctx.Run(); err != nil {
		…
	}
	box, ok := ctx.Box(root)

Applications with a longer lifetime of their component tree will prefer a
Manager, which batches layout requests and keeps the committed geometry of
components between runs.

Configuration

A context reads the following keys from a schuko.Configuration:

	layout.maxcycles   int   watchdog for the number of cycles per run (default 100)
	layout.debug       bool  check ownership of dimensions for every write
	layout.animate     bool  hand geometry changes to an Animator

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowbox.layout'.
func tracer() tracing.Trace {
	return tracing.Select("flowbox.layout")
}
