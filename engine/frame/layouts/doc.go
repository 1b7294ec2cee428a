/*
Package layouts provides concrete layout algorithms for the layout engine.

Components usually carry two layouts. The component layout sizes the
component itself; Auto is the one to use for nearly every component. The
container layout sizes and positions the layout items of a component;
this package offers Stack (horizontal and vertical boxes, with flex and
percentage sizing) and Fit (items fill their container).

Container layouts declare by an ItemSizePolicy which dimensions of their
items they calculate. For these dimensions, the items' own component
layouts stand back, as the items' size models resolve to
frame.Calculated.

Mixing flexed and percentage-sized items in one stack is allowed:
percentages are taken from the full content size of the container and
subtracted before the remaining space is distributed among flexed items
by weight.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layouts

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowbox.layouts'.
func tracer() tracing.Trace {
	return tracing.Select("flowbox.layouts")
}
