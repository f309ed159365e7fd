package bufferedmatrix

import (
	"fmt"
	"math"
)

// welford accumulates count, mean and variance with a single pass per
// value, using the recurrence from §4.6: each new value updates s2 before
// mean so that s2's contribution uses the *old* mean, matching the
// textbook online algorithm. Finalized variance is s2/(count-1); it's NaN
// for count < 2, matching R's convention for a variance of fewer than two
// observations.
type welford struct {
	count int
	mean  float64
	s2    float64
}

func (w *welford) add(x float64) {
	w.count++
	delta := x - w.mean
	w.s2 += (float64(w.count-1) / float64(w.count)) * delta * delta
	w.mean += delta / float64(w.count)
}

func (w *welford) variance() float64 {
	if w.count < 2 {
		return math.NaN()
	}
	return w.s2 / float64(w.count-1)
}

// cellSource abstracts "every value in some 1-D slice of the matrix" so
// the whole-matrix and per-axis reductions can share one missing-value
// policy implementation (§4.6) regardless of whether the values come from
// a column, a row, or the whole matrix.
type cellSource func(yield func(float64) bool)

// reduceSumMeanVar folds values from src honoring skipMissing uniformly:
// every reduction that touches the Welford accumulator drops NaNs the
// same way when skipMissing is true, fixing the source bug (§9) where one
// branch ignored the flag.
//
// sawNaN reports whether an actual missing value forced immediate
// propagation (skipMissing is false and a NaN was encountered); in that
// case sum, mean and variance are all NaN. allMissing reports whether no
// value was ever accumulated (every input was skipped, or src was empty);
// mean and variance are NaN in that case too, but sum matches dbm_sum's
// convention of staying at its initial 0.0 rather than becoming NaN.
func reduceSumMeanVar(src cellSource, skipMissing bool) (sum, mean, variance float64, sawNaN, allMissing bool) {
	var w welford
	sum = 0
	src(func(x float64) bool {
		if math.IsNaN(x) {
			if skipMissing {
				return true
			}
			sawNaN = true
			return false
		}
		sum += x
		w.add(x)
		return true
	})
	if sawNaN {
		return math.NaN(), math.NaN(), math.NaN(), true, false
	}
	if w.count == 0 {
		return sum, math.NaN(), math.NaN(), false, true
	}
	return sum, w.mean, w.variance(), false, false
}

// reduceMinMax scans src for the extrema. If skipMissing is false, any
// NaN makes both results NaN. If skipMissing is true and every value is
// NaN, min/max fall back to the identity (+Inf/-Inf) and warn is set so
// the caller can report it through the matrix's Warnf sink (§4.6).
func reduceMinMax(src cellSource, skipMissing bool) (min, max float64, warn bool) {
	min, max = math.Inf(1), math.Inf(-1)
	seenFinite := false
	sawNaN := false

	src(func(x float64) bool {
		if math.IsNaN(x) {
			if skipMissing {
				return true
			}
			sawNaN = true
			return false
		}
		seenFinite = true
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		return true
	})

	if sawNaN {
		return math.NaN(), math.NaN(), false
	}
	if !seenFinite {
		return min, max, true
	}
	return min, max, false
}

// columnSource returns a cellSource iterating column col top to bottom.
func (m *Matrix) columnSource(col int) cellSource {
	return func(yield func(float64) bool) {
		for row := 0; row < m.rows; row++ {
			ptr, err := m.locate(row, col)
			if err != nil {
				return
			}
			if !yield(*ptr) {
				return
			}
		}
	}
}

// rowSource returns a cellSource iterating row r across every column.
func (m *Matrix) rowSource(row int) cellSource {
	return func(yield func(float64) bool) {
		for col := 0; col < m.cols; col++ {
			ptr, err := m.locate(row, col)
			if err != nil {
				return
			}
			if !yield(*ptr) {
				return
			}
		}
	}
}

// wholeSource returns a cellSource iterating every cell in the matrix in
// buffer-aware column order.
func (m *Matrix) wholeSource() cellSource {
	cols := orderedColumns(m.colBuf, m.cols)
	return func(yield func(float64) bool) {
		for _, col := range cols {
			stop := false
			m.columnSource(col)(func(x float64) bool {
				if !yield(x) {
					stop = true
					return false
				}
				return true
			})
			if stop {
				return
			}
		}
	}
}

// Sum returns the sum of every cell in the matrix. If skipMissing is true
// and every cell is NaN, Sum returns 0.0, matching dbm_sum's convention of
// never setting its running total away from its 0.0 initializer when
// every value is skipped.
func (m *Matrix) Sum(skipMissing bool) float64 {
	sum, _, _, sawNaN, _ := reduceSumMeanVar(m.wholeSource(), skipMissing)
	if sawNaN {
		return math.NaN()
	}
	return sum
}

// Mean returns the mean of every cell in the matrix.
func (m *Matrix) Mean(skipMissing bool) float64 {
	_, mean, _, sawNaN, allMissing := reduceSumMeanVar(m.wholeSource(), skipMissing)
	if sawNaN || allMissing {
		return math.NaN()
	}
	return mean
}

// Var returns the sample variance of every cell in the matrix.
func (m *Matrix) Var(skipMissing bool) float64 {
	_, _, v, sawNaN, allMissing := reduceSumMeanVar(m.wholeSource(), skipMissing)
	if sawNaN || allMissing {
		return math.NaN()
	}
	return v
}

// Min returns the smallest value in the matrix. If skipMissing is true and
// every value is NaN, it returns +Inf and reports a warning through Warnf.
func (m *Matrix) Min(skipMissing bool) float64 {
	min, _, warn := reduceMinMax(m.wholeSource(), skipMissing)
	if warn {
		m.warnf("bufferedmatrix: Min: no finite input, skipMissing=true")
	}
	return min
}

// Max returns the largest value in the matrix. If skipMissing is true and
// every value is NaN, it returns -Inf and reports a warning through Warnf.
func (m *Matrix) Max(skipMissing bool) float64 {
	_, max, warn := reduceMinMax(m.wholeSource(), skipMissing)
	if warn {
		m.warnf("bufferedmatrix: Max: no finite input, skipMissing=true")
	}
	return max
}

func (m *Matrix) checkOutLen(out []float64, want int) error {
	if len(out) != want {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, want, len(out))
	}
	return nil
}
