/*
Package surface implements an in-memory rendered surface and a component
tree on top of it.

The layout engine writes geometry to a rendered surface in bulk (flush) and
reads presentation attributes and natural sizes from it. Surface is a
headless stand-in for a real rendering backend: elements keep their
attributes in memory, measure text on a monospace grid (wide East Asian
characters take two cells) and record every write in a log, which makes
layout runs easy to inspect and to test.

Node is a component for the layout engine, owning an Element. Trees of
nodes may be described in YAML and loaded with Load or LoadFile:

    id: root
    width: 300
    layout: hbox
    children:
      - id: a
        width: 100
      - id: b
        flex: 1

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package surface

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowbox.surface'.
func tracer() tracing.Trace {
	return tracing.Select("flowbox.surface")
}
