package frame

import (
	"fmt"

	"github.com/npillmayer/flowbox/core/dimen"
)

// SizeModel describes who controls a dimension of a box, and how its
// value has been derived.
type SizeModel uint8

// Size models for width and height.
const (
	ShrinkWrap     SizeModel = iota // derived bottom-up from the content
	Natural                         // the rendered element's own, measured size
	Configured                      // fixed by configuration of the component
	Calculated                      // dictated top-down by the container's layout
	ConstrainedMin                  // shrink-wrap, clamped to the configured minimum
	ConstrainedMax                  // shrink-wrap, clamped to the configured maximum
)

func (m SizeModel) String() string {
	switch m {
	case ShrinkWrap:
		return "shrinkWrap"
	case Natural:
		return "natural"
	case Configured:
		return "configured"
	case Calculated:
		return "calculated"
	case ConstrainedMin:
		return "constrainedMin"
	case ConstrainedMax:
		return "constrainedMax"
	}
	return fmt.Sprintf("SizeModel(%d)", uint8(m))
}

// IsAuto is true for size models which derive a dimension from the content
// of a box, i.e. shrink-wrap and natural.
func (m SizeModel) IsAuto() bool {
	return m == ShrinkWrap || m == Natural
}

// IsConstrained is true if a shrink-wrapped dimension hit a min/max constraint.
func (m SizeModel) IsConstrained() bool {
	return m == ConstrainedMin || m == ConstrainedMax
}

// IsFixed is true for size models where the dimension is known before
// the content of a box has been laid out.
func (m SizeModel) IsFixed() bool {
	return m == Configured || m == Calculated || m.IsConstrained()
}

// SizeModels pairs the size models for both axis.
type SizeModels struct {
	Width, Height SizeModel
}

func (sm SizeModels) String() string {
	return fmt.Sprintf("(%s,%s)", sm.Width, sm.Height)
}

// SizePolicy is declared by a container layout for every item it manages.
// It tells which dimensions the container will set, and whether it has to
// read the respective other dimension of the item before it can proceed.
type SizePolicy struct {
	SetsWidth, SetsHeight   bool
	ReadsWidth, ReadsHeight bool
}

// --- Ownership -------------------------------------------------------------

// Authority denotes which of the two layout algorithms of a node
// is allowed to write a dimension.
type Authority uint8

const (
	// ComponentAuthority: the node's own component layout writes the dimension.
	ComponentAuthority Authority = iota
	// ContainerAuthority: the container layout of the node's owner writes it.
	ContainerAuthority
)

func (a Authority) String() string {
	if a == ContainerAuthority {
		return "owner's container layout"
	}
	return "component layout"
}

var dimensionOwners = [...]Authority{
	ShrinkWrap:     ComponentAuthority,
	Natural:        ComponentAuthority,
	Configured:     ComponentAuthority,
	Calculated:     ContainerAuthority,
	ConstrainedMin: ComponentAuthority,
	ConstrainedMax: ComponentAuthority,
}

// DimensionOwner returns the authority for writing a dimension, given its
// size model.
func DimensionOwner(m SizeModel) Authority {
	if int(m) >= len(dimensionOwners) {
		tracer().Errorf("unknown size model %d", m)
		return ComponentAuthority
	}
	return dimensionOwners[m]
}

// --- Writing to a surface --------------------------------------------------

// Patch is a bulk write of geometry to a rendered element. Unset fields
// are left untouched.
type Patch struct {
	X, Y          dimen.DimenT
	Width, Height dimen.DimenT
	AddCls        []string
	RemoveCls     []string
}

// IsEmpty is true if a patch would not change anything.
func (p Patch) IsEmpty() bool {
	return p.X.IsNone() && p.Y.IsNone() && p.Width.IsNone() && p.Height.IsNone() &&
		len(p.AddCls) == 0 && len(p.RemoveCls) == 0
}
