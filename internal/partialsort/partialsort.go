// Package partialsort implements the nth_element-style partial selection
// the engine needs for medians. The original C library assumed
// this routine would be supplied by its host environment; this package is
// the standalone equivalent, a plain Lomuto-partition quickselect with no
// external dependency, since selection is an algorithm, not an ambient
// library concern.
package partialsort

import "math"

// Select reorders data in place such that data[k] holds the value that
// would occupy index k if data were fully sorted ascending, data[:k] holds
// values <= data[k], and data[k+1:] holds values >= data[k]. NaNs sort to
// the end, so callers that want to skip missing values should trim them
// from the slice before calling Select.
//
// Select panics if k is outside [0, len(data)).
func Select(data []float64, k int) float64 {
	if k < 0 || k >= len(data) {
		panic("partialsort: k out of range")
	}
	lo, hi := 0, len(data)-1
	for lo < hi {
		p := partition(data, lo, hi)
		switch {
		case k < p:
			hi = p - 1
		case k > p:
			lo = p + 1
		default:
			lo, hi = p, p
		}
	}
	return data[k]
}

// less orders NaN as greater than every other float64, including +Inf.
func less(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

func partition(data []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	medianOfThree(data, lo, mid, hi)
	pivot := data[mid]
	data[mid], data[hi-1] = data[hi-1], data[mid]

	store := lo
	for i := lo; i < hi-1; i++ {
		if less(data[i], pivot) {
			data[i], data[store] = data[store], data[i]
			store++
		}
	}
	data[store], data[hi-1] = data[hi-1], data[store]
	return store
}

// medianOfThree orders data[lo], data[mid], data[hi] ascending so the pivot
// chosen by partition isn't the worst case on already-sorted input.
func medianOfThree(data []float64, lo, mid, hi int) {
	if less(data[mid], data[lo]) {
		data[mid], data[lo] = data[lo], data[mid]
	}
	if less(data[hi], data[lo]) {
		data[hi], data[lo] = data[lo], data[hi]
	}
	if less(data[hi], data[mid]) {
		data[hi], data[mid] = data[mid], data[hi]
	}
}
