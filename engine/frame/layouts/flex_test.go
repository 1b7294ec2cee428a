package layouts

import (
	"testing"

	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/stretchr/testify/assert"
)

func unclamped(i int, d dimen.Dimen) dimen.Dimen {
	return d
}

func TestFlexSharesRounding(t *testing.T) {
	shares := flexShares(10, []float64{1, 1, 1}, unclamped)
	assert.Equal(t, []dimen.Dimen{3, 4, 3}, shares)
	shares = flexShares(dimen.Px(300), []float64{1, 2}, unclamped)
	assert.Equal(t, []dimen.Dimen{dimen.Px(100), dimen.Px(200)}, shares)
	shares = flexShares(dimen.Px(-20), []float64{1}, unclamped)
	assert.Equal(t, []dimen.Dimen{0}, shares, "negative space is no space")
}

func TestFlexSharesFreezing(t *testing.T) {
	limits := []frame.Sizing{
		{Constraints: frame.Constraints{MaxW: dimen.Px(50)}},
		{},
		{Constraints: frame.Constraints{MinW: dimen.Px(120)}},
	}
	clamp := func(i int, d dimen.Dimen) dimen.Dimen {
		return horizontal.clamp(limits[i], d)
	}
	shares := flexShares(dimen.Px(300), []float64{1, 1, 1}, clamp)
	// first round: 100 each; #0 frozen at 50, #2 frozen at 120
	assert.Equal(t, []dimen.Dimen{dimen.Px(50), dimen.Px(130), dimen.Px(120)}, shares)
}

func TestFlexSharesWithoutWeights(t *testing.T) {
	shares := flexShares(dimen.Px(100), []float64{0, 0}, unclamped)
	assert.Equal(t, []dimen.Dimen{0, 0}, shares)
}

func TestParseOptions(t *testing.T) {
	p, err := ParsePack("Center")
	assert.NoError(t, err)
	assert.Equal(t, PackCenter, p)
	_, err = ParsePack("middle")
	assert.Error(t, err)
	a, err := ParseAlign("stretch")
	assert.NoError(t, err)
	assert.Equal(t, AlignStretch, a)
	assert.Equal(t, "end", AlignEnd.String())
	assert.Equal(t, "vbox", Vertical.String())
	assert.Equal(t, horizontal, Vertical.cross())
	assert.Equal(t, vertical, Vertical.main())
}
