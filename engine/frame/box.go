package frame

/*
BSD License

Copyright (c) 2017–2021, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"fmt"

	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/core/percent"
)

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Edges holds the four sides of margins, borders, padding or a frame.
type Edges [4]dimen.Dimen

// Width returns the cumulated horizontal extent, i.e. left + right.
func (e Edges) Width() dimen.Dimen {
	return e[Left] + e[Right]
}

// Height returns the cumulated vertical extent, i.e. top + bottom.
func (e Edges) Height() dimen.Dimen {
	return e[Top] + e[Bottom]
}

// Plus adds two sets of edges side by side.
func (e Edges) Plus(other Edges) Edges {
	var r Edges
	for dir := Top; dir <= Left; dir++ {
		r[dir] = e[dir] + other[dir]
	}
	return r
}

func (e Edges) String() string {
	return fmt.Sprintf("{t=%v r=%v b=%v l=%v}", e[Top], e[Right], e[Bottom], e[Left])
}

// SideNames lists CSS-like names for the four sides, in box order.
var SideNames = [4]string{"top", "right", "bottom", "left"}

// Uniform creates edges with the same extent on every side.
func Uniform(d dimen.Dimen) Edges {
	return Edges{d, d, d, d}
}

// --- Committed geometry ----------------------------------------------------

// Box is the geometry of a component after a successful layout run.
// X and Y are relative to the content box of the owning container.
// W and H denote the border box.
type Box struct {
	X, Y     dimen.Dimen
	W, H     dimen.Dimen
	ContentW dimen.Dimen
	ContentH dimen.Dimen
}

// DebugString returns a textual representation of a box's dimensions.
// Intended for debugging.
func (box Box) DebugString() string {
	return fmt.Sprintf("box{x=%v, y=%v, w=%v, h=%v, content=%v×%v}",
		box.X, box.Y, box.W, box.H, box.ContentW, box.ContentH)
}

// SameGeometry is true if position and size of two boxes are equal.
func (box Box) SameGeometry(other Box) bool {
	return box.X == other.X && box.Y == other.Y && box.W == other.W && box.H == other.H
}

// Delta describes the transition between a previously committed box and
// a newly committed one. It is handed to an animator.
type Delta struct {
	ID       string
	From, To Box
}

// --- Component configuration -----------------------------------------------

// Constraints hold minimum and maximum sizes of a component.
type Constraints struct {
	MinW, MinH dimen.Dimen
	MaxW, MaxH dimen.Dimen
}

// Unconstrained returns constraints which do not restrict sizing.
func Unconstrained() Constraints {
	return Constraints{MaxW: dimen.Infinity, MaxH: dimen.Infinity}
}

// ClampW restricts a width to [MinW…MaxW].
func (c Constraints) ClampW(w dimen.Dimen) dimen.Dimen {
	return dimen.Clamp(w, c.MinW, c.maxW())
}

// ClampH restricts a height to [MinH…MaxH].
func (c Constraints) ClampH(h dimen.Dimen) dimen.Dimen {
	return dimen.Clamp(h, c.MinH, c.maxH())
}

// A zero value of MaxW/MaxH means 'no maximum'.
func (c Constraints) maxW() dimen.Dimen {
	if c.MaxW == 0 {
		return dimen.Infinity
	}
	return c.MaxW
}

func (c Constraints) maxH() dimen.Dimen {
	if c.MaxH == 0 {
		return dimen.Infinity
	}
	return c.MaxH
}

// Sizing is the size-related configuration of a component, as seen by the
// layout engine and by container layouts.
type Sizing struct {
	Width, Height dimen.DimenT     // configured dimensions, if any
	X, Y          dimen.DimenT     // configured position, for top-level components
	PercentW      *percent.Percent // width relative to the container's content box
	PercentH      *percent.Percent // height relative to the container's content box
	Flex          float64          // weight for distribution of leftover space
	Constraints
}

// Pcnt is a small helper to configure percentages.
func Pcnt(n int) *percent.Percent {
	p := percent.FromInt(n)
	return &p
}
