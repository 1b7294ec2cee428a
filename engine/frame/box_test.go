package frame

import (
	"testing"

	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestEdges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.frame")
	defer teardown()
	//
	margins := Edges{dimen.Px(1), dimen.Px(2), dimen.Px(3), dimen.Px(4)}
	assert.Equal(t, dimen.Px(6), margins.Width())
	assert.Equal(t, dimen.Px(4), margins.Height())
	frame := margins.Plus(Uniform(dimen.Px(10)))
	assert.Equal(t, dimen.Px(26), frame.Width())
	assert.Equal(t, dimen.Px(11), frame[Top])
	t.Logf("frame = %v", frame)
}

func TestConstraints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.frame")
	defer teardown()
	//
	c := Constraints{}
	assert.Equal(t, dimen.Px(5000), c.ClampW(dimen.Px(5000)), "zero max means unconstrained")
	c = Constraints{MinW: dimen.Px(10), MaxW: dimen.Px(100), MaxH: dimen.Px(20)}
	assert.Equal(t, dimen.Px(10), c.ClampW(dimen.Px(2)))
	assert.Equal(t, dimen.Px(100), c.ClampW(dimen.Px(200)))
	assert.Equal(t, dimen.Px(20), c.ClampH(dimen.Px(200)))
	assert.Equal(t, dimen.Infinity, Unconstrained().ClampH(dimen.Infinity))
}

func TestBoxGeometry(t *testing.T) {
	box := Box{X: dimen.Px(1), W: dimen.Px(10), H: dimen.Px(10)}
	other := box
	other.ContentW = dimen.Px(8)
	assert.True(t, box.SameGeometry(other), "content size is not part of the geometry")
	other.Y = dimen.Px(3)
	assert.False(t, box.SameGeometry(other))
	t.Logf(other.DebugString())
}

func TestDimensionOwner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.frame")
	defer teardown()
	//
	assert.Equal(t, ContainerAuthority, DimensionOwner(Calculated))
	for _, m := range []SizeModel{ShrinkWrap, Natural, Configured, ConstrainedMin, ConstrainedMax} {
		assert.Equal(t, ComponentAuthority, DimensionOwner(m), m.String())
	}
	assert.Equal(t, ComponentAuthority, DimensionOwner(SizeModel(99)))
}

func TestSizeModelPredicates(t *testing.T) {
	assert.True(t, ShrinkWrap.IsAuto())
	assert.True(t, Natural.IsAuto())
	assert.False(t, Calculated.IsAuto())
	assert.True(t, ConstrainedMax.IsFixed())
	assert.True(t, ConstrainedMin.IsConstrained())
	assert.False(t, ShrinkWrap.IsFixed())
	assert.Equal(t, "(shrinkWrap,calculated)", SizeModels{ShrinkWrap, Calculated}.String())
}

func TestPatch(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{Width: dimen.Some(0)}.IsEmpty())
	assert.False(t, Patch{AddCls: []string{"x"}}.IsEmpty())
}
