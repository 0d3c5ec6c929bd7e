// Package rank computes human-facing ranks of a count within a filtered
// population of counts. Rank 0 is the historical best
package rank

import (
	"math"
	"sort"
)

// WithTies returns the 0-based rank of value within population and the number
// of population members tied with it beyond one match.
//
// The population is sorted descending and padded with conceptual infinities
// at both ends; a binary search finds the rightmost index with every prior
// element strictly greater than value, then a forward scan counts exact ties.
// The rank is well-defined even when value is absent from the population
// (number of members strictly greater); ties is then -1, the historical
// no-match convention callers rely on
func WithTies(value int, population []int) (rank, ties int) {
	sorted := make([]int, len(population))
	copy(sorted, population)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	// padded view: index 0 is +inf, index len+1 is -inf
	at := func(i int) int {
		switch {
		case i == 0:
			return math.MaxInt
		case i == len(sorted)+1:
			return math.MinInt
		default:
			return sorted[i-1]
		}
	}

	left, right := 0, len(sorted)+1
	for left < right-1 {
		mid := (left + right) / 2
		if at(mid) > value {
			left = mid
		} else {
			right = mid
		}
	}
	rank = right - 1

	ties = 0
	for i := right; i <= len(sorted) && at(i) == value; i++ {
		ties++
	}
	return rank, ties - 1
}
