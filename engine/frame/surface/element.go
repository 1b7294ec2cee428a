package surface

import (
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layout"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
)

// Surface is an in-memory rendered surface. It holds elements and a log of
// all writes to them.
type Surface struct {
	elements   map[string]*Element
	writes     []Write
	Advance    dimen.Dimen // width of a character cell
	LineHeight dimen.Dimen // default height of a line of text
	graphemes  *segment.Segmenter
}

// Write is an entry of the write log of a surface.
type Write struct {
	ID    string
	Patch frame.Patch
}

// New creates an empty surface with a character advance of 8px and a line
// height of 16px.
func New() *Surface {
	return &Surface{
		elements:   make(map[string]*Element),
		Advance:    dimen.Px(8),
		LineHeight: dimen.Px(16),
	}
}

// NewElement creates an element on the surface. If an element with the
// same ID exists, it is returned instead.
func (s *Surface) NewElement(id string) *Element {
	if el, ok := s.elements[id]; ok {
		tracer().Debugf("element %q already exists", id)
		return el
	}
	el := &Element{
		id:      id,
		surface: s,
		styles:  make(map[string]string),
		classes: treeset.NewWithStringComparator(),
	}
	s.elements[id] = el
	return el
}

// Element returns the element for an ID.
func (s *Surface) Element(id string) (*Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

// Writes returns the write log.
func (s *Surface) Writes() []Write {
	return s.writes
}

// ClearLog empties the write log.
func (s *Surface) ClearLog() {
	s.writes = nil
}

// --- Elements --------------------------------------------------------------

// Element is a node of an in-memory surface. It implements layout.Element.
type Element struct {
	id       string
	surface  *Surface
	styles   map[string]string
	classes  *treeset.Set
	body     *Element
	geometry [4]dimen.DimenT // x, y, width, height as last written
	Text     string          // content, measured for the natural size
}

// ID is part of interface layout.Element.
func (el *Element) ID() string {
	return el.id
}

// Style is part of interface layout.Element.
func (el *Element) Style(name string) string {
	return el.styles[name]
}

// SetStyle sets a presentation attribute, e.g. SetStyle("padding-left", "4px").
func (el *Element) SetStyle(name, value string) *Element {
	el.styles[name] = value
	return el
}

// AddBody creates a frame body element, i.e. an inner element which
// receives the size of el minus border and padding.
func (el *Element) AddBody() *Element {
	if el.body == nil {
		el.body = el.surface.NewElement(el.id + "-body")
	}
	return el.body
}

// FrameBody is part of interface layout.Element.
func (el *Element) FrameBody() layout.Element {
	if el.body == nil {
		return nil
	}
	return el.body
}

// Body returns the frame body element, or nil.
func (el *Element) Body() *Element {
	return el.body
}

// Measure is part of interface layout.Element. The text of an element is
// broken into lines at spaces, if width is set, and at newlines. Each
// grapheme takes one or two cells of the surface's advance.
func (el *Element) Measure(width dimen.DimenT) (w, h dimen.Dimen) {
	if el.Text == "" {
		return 0, 0
	}
	lh := el.surface.LineHeight
	if s := el.Style("line-height"); s != "" {
		if d, pcnt, err := dimen.ParseDimen(s); err == nil && !pcnt {
			lh = d
		}
	}
	lines := breakLines(el.Text, el.surface.cellWidth, width)
	for _, l := range lines {
		w = dimen.Max(w, l)
	}
	return w, dimen.Dimen(len(lines)) * lh
}

// breakLines returns the widths of the lines of text, broken at newlines
// and, if width is set, greedily at spaces. A word wider than width gets
// a line of its own.
func breakLines(text string, wordWidth func(string) dimen.Dimen, width dimen.DimenT) []dimen.Dimen {
	advance := wordWidth(" ")
	var lines []dimen.Dimen
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, 0)
			continue
		}
		var line dimen.Dimen
		for i, word := range words {
			ww := wordWidth(word)
			if i == 0 {
				line = ww
				continue
			}
			if width.IsSome() && line+advance+ww > width.Unwrap() {
				lines = append(lines, line)
				line = ww
				continue
			}
			line += advance + ww
		}
		lines = append(lines, line)
	}
	return lines
}

var setupGraphemes sync.Once

// cellWidth measures a word in the monospace grid of the surface.
// East Asian wide characters take two cells, combining sequences one.
func (s *Surface) cellWidth(word string) dimen.Dimen {
	if s.graphemes == nil {
		setupGraphemes.Do(grapheme.SetupGraphemeClasses)
		s.graphemes = segment.NewSegmenter(grapheme.NewBreaker(1))
	}
	s.graphemes.Init(strings.NewReader(word))
	cells := 0
	for s.graphemes.Next() {
		cells += int(uax11.Width(s.graphemes.Bytes(), uax11.LatinContext))
	}
	return dimen.Dimen(cells) * s.Advance
}

// Apply is part of interface layout.Element. Every call is recorded in the
// write log of the surface.
func (el *Element) Apply(patch frame.Patch) {
	for i, v := range []dimen.DimenT{patch.X, patch.Y, patch.Width, patch.Height} {
		if v.IsSome() {
			el.geometry[i] = v
		}
	}
	for _, cls := range patch.AddCls {
		el.classes.Add(cls)
	}
	for _, cls := range patch.RemoveCls {
		el.classes.Remove(cls)
	}
	el.surface.writes = append(el.surface.writes, Write{ID: el.id, Patch: patch})
}

// Geometry returns position and size as written to the element so far.
// Unwritten values are None.
func (el *Element) Geometry() (x, y, w, h dimen.DimenT) {
	return el.geometry[0], el.geometry[1], el.geometry[2], el.geometry[3]
}

// Classes returns the class names of the element, sorted.
func (el *Element) Classes() []string {
	values := el.classes.Values()
	cls := make([]string, len(values))
	for i, v := range values {
		cls[i] = v.(string)
	}
	return cls
}

// HasClass is true if el carries class name cls.
func (el *Element) HasClass(cls string) bool {
	return el.classes.Contains(cls)
}

var _ layout.Element = &Element{}
