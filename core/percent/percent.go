// Package percent implements a simple and straightforward type for percentage values.
//
// Percentages are used for sizing items relative to the space available in
// their container.
package percent

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/flowbox/core/dimen"
)

// Percent is a simple and straightforward type for percentage values.
// It is restricted to 0…100.
type Percent uint8

// FromInt clamps n to a percentage.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat rounds and clamps f to a percentage.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses strings like "50%" or "50".
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return FromInt(n), nil
}

// Of returns p percent of a dimension d.
func (p Percent) Of(d dimen.Dimen) dimen.Dimen {
	return dimen.Dimen(int64(d) * int64(p) / 100)
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
