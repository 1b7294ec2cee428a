package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/flowbox/engine/frame/layout"
	"github.com/npillmayer/flowbox/engine/frame/surface"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stuck is a layout which never finishes.
type stuck struct {
	owner layout.Component
}

func (l stuck) ID() string                                     { return l.owner.ID() + ".stuck" }
func (l stuck) Owner() layout.Component                        { return l.owner }
func (l stuck) BeginLayout(item *layout.Item)                  {}
func (l stuck) BeginLayoutCycle(item *layout.Item, first bool) {}
func (l stuck) Calculate(item *layout.Item) bool               { return false }

const tree = `
id: root
width: 200
height: 40
layout: hbox
children:
  - { id: a, width: 100, height: 40 }
  - { id: b, flex: 1, height: 40 }
`

func loadTree(t *testing.T) *Intp {
	root, s, err := surface.Load(strings.NewReader(tree))
	require.NoError(t, err)
	return &Intp{root: root, surface: s, manager: layout.NewManager()}
}

func TestUnresolvedAfterFailedRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.cli")
	defer teardown()
	//
	intp := loadTree(t)
	intp.root.SetComponentLayout(stuck{owner: intp.root})
	err := intp.run("")
	require.Error(t, err)
	ids := unresolvedItems(intp.manager, err)
	assert.Contains(t, ids, "root")
	assert.NotContains(t, ids, "a")
	assert.Equal(t, ids, unresolvedItems(intp.manager, errors.New("other failure")),
		"falls back to the latest run")
	for _, st := range intp.manager.LastContext().LayoutStates() {
		assert.False(t, st.Running, "layouts are stopped after a failure")
	}
}

func TestUnresolvedWithoutRun(t *testing.T) {
	m := layout.NewManager()
	assert.Empty(t, unresolvedItems(m, errors.New("no run")))
}

func TestSetRelayoutsOwner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flowbox.cli")
	defer teardown()
	//
	intp := loadTree(t)
	require.NoError(t, intp.run(""))
	box, ok := intp.manager.Geometry("b")
	require.True(t, ok)
	assert.Equal(t, "100px", box.W.String())
	require.NoError(t, intp.set("a", "WIDTH", "150px"))
	box, _ = intp.manager.Geometry("b")
	assert.Equal(t, "50px", box.W.String())
	assert.Error(t, intp.set("a", "color", "red"))
	assert.Error(t, intp.set("zz", "width", "10"))
}

func TestParseCommand(t *testing.T) {
	cmd, err := parseCommand("SET b width 120")
	require.NoError(t, err)
	assert.Equal(t, SET, cmd.code)
	assert.Equal(t, "120", cmd.arg(2))
	assert.Equal(t, "", cmd.arg(3))
	_, err = parseCommand("frobnicate")
	assert.Error(t, err)
}
