package layout

import (
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
)

// valueCache memoizes reads from the rendered surface for the lifetime of
// an item.
type valueCache struct {
	styles  map[string]string
	margin  *frame.Edges
	border  *frame.Edges
	padding *frame.Edges
}

func (vc *valueCache) init() {
	vc.styles = make(map[string]string)
	vc.margin, vc.border, vc.padding = nil, nil, nil
}

// Style reads a presentation attribute of the item's element. The surface
// is read once; subsequent calls return the memoized value.
func (item *Item) Style(name string) string {
	if s, ok := item.cache.styles[name]; ok {
		return s
	}
	s := ""
	if item.el != nil {
		s = item.el.Style(name)
	}
	item.cache.styles[name] = s
	return s
}

// Styles reads a couple of presentation attributes at once.
func (item *Item) Styles(names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		m[name] = item.Style(name)
	}
	return m
}

// StyleDimen reads a presentation attribute and interprets it as a
// dimension. Percentages, keywords and malformed values are None.
func (item *Item) StyleDimen(name string) dimen.DimenT {
	s := item.Style(name)
	if s == "" {
		return dimen.None()
	}
	d, pcnt, err := dimen.ParseDimen(s)
	if err != nil || pcnt {
		return dimen.None()
	}
	return dimen.Some(d)
}

// MarginInfo returns the margins of the item's element.
func (item *Item) MarginInfo() frame.Edges {
	if item.cache.margin == nil {
		e := item.readEdges(marginStyles)
		item.cache.margin = &e
	}
	return *item.cache.margin
}

// BorderInfo returns the border widths of the item's element.
func (item *Item) BorderInfo() frame.Edges {
	if item.cache.border == nil {
		e := item.readEdges(borderStyles)
		item.cache.border = &e
	}
	return *item.cache.border
}

// PaddingInfo returns the padding of the item's element.
func (item *Item) PaddingInfo() frame.Edges {
	if item.cache.padding == nil {
		e := item.readEdges(paddingStyles)
		item.cache.padding = &e
	}
	return *item.cache.padding
}

// FrameInfo returns border plus padding, i.e. the space between the border
// box and the content box.
func (item *Item) FrameInfo() frame.Edges {
	return item.BorderInfo().Plus(item.PaddingInfo())
}

// ClearBoxInfoCache forces margin, border, padding and styles to be read
// from the surface again.
func (item *Item) ClearBoxInfoCache() {
	item.cache.init()
}

// readEdges reads four sides from the surface and records them as
// (non-dirty) properties of the item.
func (item *Item) readEdges(names [4]string) frame.Edges {
	var e frame.Edges
	for dir, name := range names {
		e[dir] = item.StyleDimen(name).UnwrapOr(0)
		item.props[name] = e[dir]
	}
	return e
}

// restore records cached edges as properties again, after an item has been
// reset.
func (vc *valueCache) restore(props map[string]dimen.Dimen) {
	for i, e := range []*frame.Edges{vc.margin, vc.border, vc.padding} {
		if e == nil {
			continue
		}
		names := [...][4]string{marginStyles, borderStyles, paddingStyles}[i]
		for dir, name := range names {
			props[name] = e[dir]
		}
	}
}
