package layouts

import (
	"github.com/npillmayer/flowbox/core/dimen"
)

// flexShares distributes space among flexed items by weight. Rounding
// errors are carried over from item to item, so the shares add up to space
// exactly.
//
// clamp restricts the share of item i to its constraints. Items with a
// clamped share are frozen at the clamped value, and the space left is
// distributed among the remaining items again.
func flexShares(space dimen.Dimen, weights []float64, clamp func(i int, d dimen.Dimen) dimen.Dimen) []dimen.Dimen {
	shares := make([]dimen.Dimen, len(weights))
	frozen := make([]bool, len(weights))
	for {
		free, total := space, 0.0
		for i, w := range weights {
			if frozen[i] {
				free -= shares[i]
			} else if w > 0 {
				total += w
			}
		}
		if total == 0 {
			return shares
		}
		if free < 0 {
			free = 0
		}
		// fraction is the rounding error from a flex weighting
		var fraction float64
		for i, w := range weights {
			if frozen[i] || w <= 0 {
				continue
			}
			share := float64(free)*w/total + fraction
			shares[i] = dimen.Dimen(share + .5)
			fraction = share - float64(shares[i])
		}
		violated := false
		for i := range weights {
			if frozen[i] || weights[i] <= 0 {
				continue
			}
			if c := clamp(i, shares[i]); c != shares[i] {
				tracer().Debugf("flex share #%d frozen at %v", i, c)
				shares[i], frozen[i] = c, true
				violated = true
			}
		}
		if !violated {
			return shares
		}
	}
}
