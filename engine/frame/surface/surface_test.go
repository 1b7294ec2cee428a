package surface

import (
	"strings"
	"testing"

	"github.com/npillmayer/flowbox/core"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layouts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	s := New()
	el := s.NewElement("p")
	w, h := el.Measure(dimen.None())
	assert.Equal(t, dimen.Zero, w)
	assert.Equal(t, dimen.Zero, h)
	el.Text = "aaaa bb cccccc"
	w, h = el.Measure(dimen.None())
	assert.Equal(t, dimen.Px(14*8), w, "one line of 14 characters")
	assert.Equal(t, dimen.Px(16), h)
	w, h = el.Measure(dimen.Some(dimen.Px(60)))
	assert.Equal(t, dimen.Px(56), w, "'aaaa bb' fits into 60px")
	assert.Equal(t, dimen.Px(32), h)
	w, h = el.Measure(dimen.Some(dimen.Px(10)))
	assert.Equal(t, dimen.Px(48), w, "long words overflow")
	assert.Equal(t, dimen.Px(48), h)
	el.SetStyle("line-height", "20px")
	_, h = el.Measure(dimen.None())
	assert.Equal(t, dimen.Px(20), h)
	el.Text = "日本 go"
	w, _ = el.Measure(dimen.None())
	assert.Equal(t, dimen.Px(7*8), w, "wide characters take two cells")
	el.Text = "ab\n\nabc"
	w, h = el.Measure(dimen.None())
	assert.Equal(t, dimen.Px(24), w)
	assert.Equal(t, dimen.Px(60), h)
}

func TestApply(t *testing.T) {
	s := New()
	el := s.NewElement("e")
	assert.Same(t, el, s.NewElement("e"))
	el.Apply(frame.Patch{Width: dimen.Some(dimen.Px(10)), AddCls: []string{"b", "a"}})
	el.Apply(frame.Patch{X: dimen.Some(dimen.Px(3)), RemoveCls: []string{"b"}})
	x, y, w, h := el.Geometry()
	assert.Equal(t, dimen.Some(dimen.Px(3)), x)
	assert.True(t, y.IsNone())
	assert.Equal(t, dimen.Some(dimen.Px(10)), w)
	assert.True(t, h.IsNone())
	assert.Equal(t, []string{"a"}, el.Classes())
	assert.True(t, el.HasClass("a"))
	require.Len(t, s.Writes(), 2)
	assert.Equal(t, "e", s.Writes()[0].ID)
	s.ClearLog()
	assert.Empty(t, s.Writes())
	assert.Nil(t, el.FrameBody())
	body := el.AddBody()
	assert.Equal(t, "e-body", body.ID())
	assert.Same(t, body, el.Body())
}

func TestNodeSizeModels(t *testing.T) {
	s := New()
	leaf := NewNode("leaf", s.NewElement("leaf"))
	assert.Equal(t, frame.SizeModels{Width: frame.ShrinkWrap, Height: frame.ShrinkWrap},
		leaf.SizeModel(frame.SizeModels{}))
	leaf.El().Text = "hello"
	assert.Equal(t, frame.Natural, leaf.SizeModel(frame.SizeModels{}).Width)
	leaf.SetSizing(frame.Sizing{Width: dimen.Some(dimen.Px(40))})
	m := leaf.SizeModel(frame.SizeModels{})
	assert.Equal(t, frame.Configured, m.Width)
	assert.Equal(t, frame.Natural, m.Height)
	box := NewNode("box", s.NewElement("box")).Add(leaf)
	box.SetContainerLayout(layouts.NewVBox(box))
	assert.Equal(t, frame.ShrinkWrap, box.SizeModel(frame.SizeModels{}).Height)
	assert.Equal(t, box, leaf.OwnerCt())
	assert.Nil(t, box.OwnerCt())
	assert.Len(t, box.LayoutItems(), 1)
}

const tree = `
id: root
width: 300
height: 100px
x: 5
layout: hbox
pack: center
align: stretch
style:
  padding-left: 4px
children:
  - id: a
    width: 100
    classes: [fixed, first]
  - id: b
    flex: 1
    maxWidth: 150
    body: true
  - id: c
    width: 10%
    text: hello world
`

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.surface")
	defer teardown()
	//
	root, s, err := Load(strings.NewReader(tree))
	require.NoError(t, err)
	assert.Equal(t, "root", root.ID())
	require.Len(t, root.Children(), 3)
	sz := root.Sizing()
	assert.Equal(t, dimen.Some(dimen.Px(300)), sz.Width)
	assert.Equal(t, dimen.Some(dimen.Px(100)), sz.Height)
	assert.Equal(t, dimen.Some(dimen.Px(5)), sz.X)
	assert.True(t, sz.Y.IsNone())
	stack, ok := root.ContainerLayout().(*layouts.Stack)
	require.True(t, ok)
	assert.Equal(t, layouts.Horizontal, stack.Axis)
	assert.Equal(t, layouts.PackCenter, stack.Pack)
	assert.Equal(t, layouts.AlignStretch, stack.Align)
	assert.Equal(t, "4px", root.El().Style("padding-left"))
	a := root.Find("a")
	require.NotNil(t, a)
	assert.Equal(t, []string{"first", "fixed"}, a.El().Classes())
	b := root.Find("b")
	assert.Equal(t, 1.0, b.Sizing().Flex)
	assert.Equal(t, dimen.Px(150), b.Sizing().MaxW)
	assert.NotNil(t, b.El().Body())
	_, ok = s.Element("b-body")
	assert.True(t, ok)
	c := root.Find("c")
	require.NotNil(t, c.Sizing().PercentW)
	assert.Equal(t, "10%", c.Sizing().PercentW.String())
	assert.Equal(t, "hello world", c.El().Text)
	assert.Nil(t, c.ContainerLayout())
	assert.NotNil(t, c.ComponentLayout())
	var ids []string
	root.Walk(func(n *Node) { ids = append(ids, n.ID()) })
	assert.Equal(t, []string{"root", "a", "b", "c"}, ids)
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.surface")
	defer teardown()
	//
	for _, src := range []string{
		"id: x\nwidth: wide\n",
		"id: x\nlayout: grid\nchildren:\n  - id: y\n",
		"id: x\nchildren:\n  - id: x\n",
		"width: 10\n",
		"id: x\nx: 10%\n",
		"id: x\nlayout: hbox\nalign: diagonal\n",
		": : :",
	} {
		_, _, err := Load(strings.NewReader(src))
		assert.Error(t, err, src)
		assert.Equal(t, core.EINVALID, core.Code(err), src)
	}
	_, _, err := LoadFile("does/not/exist.yaml")
	assert.Equal(t, core.EMISSING, core.Code(err))
}
