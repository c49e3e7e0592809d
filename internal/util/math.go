package util

import (
	"golang.org/x/exp/constraints"
)

// Coerce returns value, limited to the range [rangeMin, rangeMax]
func Coerce[T constraints.Ordered](value T, rangeMin T, rangeMax T) T {
	if value > rangeMax {
		return rangeMax
	}
	if value < rangeMin {
		return rangeMin
	}
	return value
}
