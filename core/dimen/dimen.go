// Package dimen implements dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dimen is a dimension type.
// Values are in scaled pixels: one pixel is 65536 scaled points. This gives
// layout arithmetic integer precision while still allowing fractional
// distribution of space (e.g., flex weights).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1     // scaled point = PX / 65536
	PX   Dimen = 65536 // pixel, the unit of the rendered surface
	BP   Dimen = 65536 // big point, treated as a pixel
)

// Infinity is the largest possible dimension. It is used for unbounded
// maximum constraints.
const Infinity Dimen = math.MaxInt32

// Stringer implementation.
func (d Dimen) String() string {
	if d == Infinity {
		return "∞"
	}
	if d%PX == 0 {
		return fmt.Sprintf("%dpx", int32(d/PX))
	}
	return fmt.Sprintf("%.2fpx", d.Pixels())
}

// Pixels returns a dimension in (fractional) pixels.
func (d Dimen) Pixels() float64 {
	return float64(d) / float64(PX)
}

// Px creates a dimension from an integer number of pixels.
func Px(n int) Dimen {
	return Dimen(n) * PX
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)(%|px|sp|bp)?$`)

// ParseDimen parses a string to return a dimension. Syntax is a subset of
// CSS units as produced by a rendered surface: plain numbers are pixels,
// "px", "bp" and "sp" are recognized.
// If a percentage value is given (`80%`), the second return value will be true
// and the dimension carries the plain percentage number.
// Values which do not fit into a Dimen, or collide with Infinity, are an error.
//
func ParseDimen(s string) (Dimen, bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := PX
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "px", "bp", "":
			scale = PX
		case "sp":
			scale = SP
		case "%":
			scale, ispcnt = 1, true
		}
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	v := math.Round(n * float64(scale))
	if v >= math.MaxInt32 || v <= math.MinInt32 {
		return 0, false, fmt.Errorf("dimension out of range: %s", s)
	}
	return Dimen(v), ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts d to [min…max]. If min > max, min wins.
func Clamp(d, min, max Dimen) Dimen {
	if d > max {
		d = max
	}
	if d < min {
		d = min
	}
	return d
}
