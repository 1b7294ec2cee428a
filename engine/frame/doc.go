/*
Package frame holds the value objects of box layout.

Layout may be understood as the process of placing boxes within larger
boxes. Every box has three sets of edges: margins, borders and padding
surround a content box, and the border box is what gets positioned within
the content box of its container.

Which party decides the size of a box along an axis is expressed by a
SizeModel. A dimension may be derived from the content (shrink-wrap), be
a natural property of the rendered element, be configured, or be
calculated top-down by the container's layout algorithm. The ownership
table DimensionOwner tells, for every size model, which of the two layout
algorithms of a node may write the dimension.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowbox.frame'.
func tracer() tracing.Trace {
	return tracing.Select("flowbox.frame")
}
