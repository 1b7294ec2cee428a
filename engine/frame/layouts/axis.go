package layouts

import (
	"fmt"
	"strings"

	"github.com/npillmayer/flowbox/core"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/core/percent"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layout"
)

// Axis is the direction in which a stack arranges its items.
type Axis uint8

// Horizontal stacks are hboxes, vertical stacks are vboxes.
const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vbox"
	}
	return "hbox"
}

func (a Axis) main() dimension {
	return dimensions[a&1]
}

func (a Axis) cross() dimension {
	return dimensions[1-a&1]
}

// Pack positions the items of a stack along the main axis, if they do not
// use up all the space available.
type Pack uint8

// Packing of items along the main axis.
const (
	PackStart Pack = iota
	PackCenter
	PackEnd
)

var packNames = []string{"start", "center", "end"}

func (p Pack) String() string {
	if int(p) < len(packNames) {
		return packNames[p]
	}
	return fmt.Sprintf("Pack(%d)", p)
}

// ParsePack interprets a string as a packing, e.g. "center".
func ParsePack(s string) (Pack, error) {
	for i, name := range packNames {
		if strings.EqualFold(s, name) {
			return Pack(i), nil
		}
	}
	return PackStart, core.Error(core.EINVALID, "unknown pack value %q", s)
}

// Align positions the items of a stack along the cross axis.
type Align uint8

// Alignment of items along the cross axis. AlignStretch sizes the items to
// the cross extent of the container.
const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

var alignNames = []string{"start", "center", "end", "stretch"}

func (a Align) String() string {
	if int(a) < len(alignNames) {
		return alignNames[a]
	}
	return fmt.Sprintf("Align(%d)", a)
}

// ParseAlign interprets a string as an alignment, e.g. "stretch".
func ParseAlign(s string) (Align, error) {
	for i, name := range alignNames {
		if strings.EqualFold(s, name) {
			return Align(i), nil
		}
	}
	return AlignStart, core.Error(core.EINVALID, "unknown align value %q", s)
}

// --- Dimensions ------------------------------------------------------------

// dimension bundles everything a layout needs to treat width and height
// alike.
type dimension struct {
	horizontal bool
	size       string // property name of the extent
	pos        string // property name of the position
	content    string // property name of the content extent
	before     int    // margin side before an item
	after      int    // margin side after an item
}

var dimensions = [2]dimension{
	{true, layout.PropWidth, layout.PropX, layout.PropContentWidth, frame.Left, frame.Right},
	{false, layout.PropHeight, layout.PropY, layout.PropContentHeight, frame.Top, frame.Bottom},
}

var horizontal, vertical = dimensions[0], dimensions[1]

func (d dimension) String() string {
	return d.size
}

func (d dimension) model(m frame.SizeModels) frame.SizeModel {
	if d.horizontal {
		return m.Width
	}
	return m.Height
}

func (d dimension) edges(e frame.Edges) dimen.Dimen {
	if d.horizontal {
		return e.Width()
	}
	return e.Height()
}

func (d dimension) configured(s frame.Sizing) dimen.DimenT {
	if d.horizontal {
		return s.Width
	}
	return s.Height
}

func (d dimension) percent(s frame.Sizing) *percent.Percent {
	if d.horizontal {
		return s.PercentW
	}
	return s.PercentH
}

func (d dimension) min(s frame.Sizing) dimen.Dimen {
	if d.horizontal {
		return s.MinW
	}
	return s.MinH
}

func (d dimension) max(s frame.Sizing) dimen.Dimen {
	if d.horizontal {
		return s.MaxW
	}
	return s.MaxH
}

func (d dimension) clamp(s frame.Sizing, v dimen.Dimen) dimen.Dimen {
	if d.horizontal {
		return s.ClampW(v)
	}
	return s.ClampH(v)
}

// set writes the extent of an item, returning the value actually applied.
func (d dimension) set(item *layout.Item, v dimen.DimenT) dimen.DimenT {
	if d.horizontal {
		return item.SetWidth(v, true)
	}
	return item.SetHeight(v, true)
}

func (d dimension) claim(p *frame.SizePolicy) {
	if d.horizontal {
		p.SetsWidth = true
	} else {
		p.SetsHeight = true
	}
}

// available returns the content extent of a container item in dimension d.
// If the container is sized by its content, the extent is None and ok is
// true. If the extent is not known yet, ok is false.
func available(item *layout.Item, d dimension) (avail dimen.DimenT, ok bool) {
	if d.model(item.SizeModels()).IsAuto() {
		return dimen.None(), true
	}
	v := item.GetProp(d.size)
	if v.IsNone() {
		return v, false
	}
	inner := v.Unwrap() - d.edges(item.FrameInfo())
	return dimen.Some(dimen.Max(inner, 0)), true
}
