package bufferedmatrix

import "math"

// ColSums writes each column's sum into out, which must have length Cols.
// Columns already resident in the column buffer are reduced first (§4.6).
// If skipMissing is true and a column is entirely NaN, its sum is 0.0,
// matching dbm_sum's convention (§9).
func (m *Matrix) ColSums(skipMissing bool, out []float64) error {
	return m.colReduce(out, func(col int) float64 {
		sum, _, _, sawNaN, _ := reduceSumMeanVar(m.columnSource(col), skipMissing)
		if sawNaN {
			return math.NaN()
		}
		return sum
	})
}

// ColMeans writes each column's mean into out.
func (m *Matrix) ColMeans(skipMissing bool, out []float64) error {
	return m.colReduce(out, func(col int) float64 {
		_, mean, _, sawNaN, allMissing := reduceSumMeanVar(m.columnSource(col), skipMissing)
		if sawNaN || allMissing {
			return math.NaN()
		}
		return mean
	})
}

// ColVars writes each column's sample variance into out.
func (m *Matrix) ColVars(skipMissing bool, out []float64) error {
	return m.colReduce(out, func(col int) float64 {
		_, _, v, sawNaN, allMissing := reduceSumMeanVar(m.columnSource(col), skipMissing)
		if sawNaN || allMissing {
			return math.NaN()
		}
		return v
	})
}

// ColMin writes each column's minimum into out.
func (m *Matrix) ColMin(skipMissing bool, out []float64) error {
	return m.colReduce(out, func(col int) float64 {
		min, _, warn := reduceMinMax(m.columnSource(col), skipMissing)
		if warn {
			m.warnf("bufferedmatrix: ColMin: col %d has no finite input, skipMissing=true", col)
		}
		return min
	})
}

// ColMax writes each column's maximum into out.
func (m *Matrix) ColMax(skipMissing bool, out []float64) error {
	return m.colReduce(out, func(col int) float64 {
		_, max, warn := reduceMinMax(m.columnSource(col), skipMissing)
		if warn {
			m.warnf("bufferedmatrix: ColMax: col %d has no finite input, skipMissing=true", col)
		}
		return max
	})
}

// ColMedians writes each column's median into out, using a partial
// selection over a length-Rows scratch buffer per column (§4.6 "Median
// details").
func (m *Matrix) ColMedians(skipMissing bool, out []float64) error {
	scratch := make([]float64, 0, m.rows)
	return m.colReduce(out, func(col int) float64 {
		scratch = scratch[:0]
		m.columnSource(col)(func(x float64) bool {
			scratch = append(scratch, x)
			return true
		})
		return median(scratch, skipMissing, m.selector)
	})
}

// ColRanges writes each column's (max - min) into out, using the
// pairwise-comparison scan from §4.6 "Range details": each adjacent pair
// of rows costs three comparisons instead of four, and the seed for the
// odd-length fast path is the first non-NaN candidate rather than row 0
// unconditionally (§9 resolved source bug).
func (m *Matrix) ColRanges(skipMissing bool, out []float64) error {
	scratch := make([]float64, 0, m.rows)
	return m.colReduce(out, func(col int) float64 {
		scratch = scratch[:0]
		m.columnSource(col)(func(x float64) bool {
			scratch = append(scratch, x)
			return true
		})
		lo, hi, warn := pairwiseRange(scratch, skipMissing)
		if warn {
			m.warnf("bufferedmatrix: ColRanges: col %d has no finite input, skipMissing=true", col)
			return math.NaN()
		}
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return math.NaN()
		}
		return hi - lo
	})
}

func (m *Matrix) colReduce(out []float64, f func(col int) float64) error {
	if err := m.checkOutLen(out, m.cols); err != nil {
		return err
	}
	for _, col := range orderedColumns(m.colBuf, m.cols) {
		out[col] = f(col)
	}
	return nil
}

// RowSums writes each row's sum into out, which must have length Rows.
// Per §4.6, row reductions iterate columns outer / rows inner, maintaining
// a length-Rows accumulator rather than re-deriving each row from
// scratch, so every cell is still visited in the buffer-aware column
// order used elsewhere.
func (m *Matrix) RowSums(skipMissing bool, out []float64) error {
	if err := m.checkOutLen(out, m.rows); err != nil {
		return err
	}
	acc := newRowAccumulator(m.rows)
	m.rowAccumulate(skipMissing, acc)
	for r := 0; r < m.rows; r++ {
		out[r] = acc[r].sum(skipMissing)
	}
	return nil
}

// RowMeans writes each row's mean into out.
func (m *Matrix) RowMeans(skipMissing bool, out []float64) error {
	if err := m.checkOutLen(out, m.rows); err != nil {
		return err
	}
	acc := newRowAccumulator(m.rows)
	m.rowAccumulate(skipMissing, acc)
	for r := 0; r < m.rows; r++ {
		out[r] = acc[r].meanResult(skipMissing)
	}
	return nil
}

// RowVars writes each row's sample variance into out.
func (m *Matrix) RowVars(skipMissing bool, out []float64) error {
	if err := m.checkOutLen(out, m.rows); err != nil {
		return err
	}
	acc := newRowAccumulator(m.rows)
	m.rowAccumulate(skipMissing, acc)
	for r := 0; r < m.rows; r++ {
		out[r] = acc[r].varResult(skipMissing)
	}
	return nil
}

// RowMax writes each row's maximum into out.
func (m *Matrix) RowMax(skipMissing bool, out []float64) error {
	return m.rowMinMax(skipMissing, out, false)
}

// RowMin writes each row's minimum into out.
func (m *Matrix) RowMin(skipMissing bool, out []float64) error {
	return m.rowMinMax(skipMissing, out, true)
}

func (m *Matrix) rowMinMax(skipMissing bool, out []float64, wantMin bool) error {
	if err := m.checkOutLen(out, m.rows); err != nil {
		return err
	}
	acc := newRowAccumulator(m.rows)
	m.rowAccumulate(skipMissing, acc)

	warned := false
	for r := 0; r < m.rows; r++ {
		var v float64
		var warn bool
		if wantMin {
			v, warn = acc[r].minResult(skipMissing)
		} else {
			v, warn = acc[r].maxResult(skipMissing)
		}
		if warn {
			warned = true
		}
		out[r] = v
	}
	if warned {
		which := "RowMax"
		if wantMin {
			which = "RowMin"
		}
		m.warnf("bufferedmatrix: %s: at least one row has no finite input, skipMissing=true", which)
	}
	return nil
}

// RowMedians writes each row's median into out. It requires row mode
// because a row-median computation needs the whole row at once, and only
// the row buffer makes that access pattern cheap (§4.6).
func (m *Matrix) RowMedians(skipMissing bool, out []float64) error {
	if !m.rowModeActive {
		return ErrRowModeRequired
	}
	if err := m.checkOutLen(out, m.rows); err != nil {
		return err
	}
	scratch := make([]float64, m.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			ptr, err := m.locate(r, c)
			if err != nil {
				return err
			}
			scratch[c] = *ptr
		}
		out[r] = median(scratch, skipMissing, m.selector)
	}
	return nil
}

// rowAccumulator holds one running aggregate per row, filled by iterating
// columns in buffer-aware order and rows inner, per §4.6.
type rowAccumulator []rowAgg

type rowAgg struct {
	w        welford
	total    float64
	min, max float64
	seenAny  bool
	sawNaN   bool
}

func newRowAccumulator(rows int) rowAccumulator {
	acc := make(rowAccumulator, rows)
	for i := range acc {
		acc[i].min = math.Inf(1)
		acc[i].max = math.Inf(-1)
	}
	return acc
}

func (a *rowAgg) add(x float64, skipMissing bool) {
	if math.IsNaN(x) {
		if !skipMissing {
			a.sawNaN = true
		}
		return
	}
	a.seenAny = true
	a.total += x
	a.w.add(x)
	if x < a.min {
		a.min = x
	}
	if x > a.max {
		a.max = x
	}
}

// sum follows dbm_sum's convention (§9): a row with no accumulated value
// (every cell skipped, or skipMissing is irrelevant because the row is
// empty) returns its 0.0 initializer rather than NaN. Only an actual
// encountered NaN under skipMissing=false propagates to NaN.
func (a *rowAgg) sum(skipMissing bool) float64 {
	if a.sawNaN {
		return math.NaN()
	}
	return a.total
}

func (a *rowAgg) meanResult(skipMissing bool) float64 {
	if a.sawNaN || !a.seenAny {
		return math.NaN()
	}
	return a.w.mean
}

func (a *rowAgg) varResult(skipMissing bool) float64 {
	if a.sawNaN || !a.seenAny {
		return math.NaN()
	}
	return a.w.variance()
}

func (a *rowAgg) minResult(skipMissing bool) (float64, bool) {
	if a.sawNaN {
		return math.NaN(), false
	}
	if !a.seenAny {
		return math.Inf(1), true
	}
	return a.min, false
}

func (a *rowAgg) maxResult(skipMissing bool) (float64, bool) {
	if a.sawNaN {
		return math.NaN(), false
	}
	if !a.seenAny {
		return math.Inf(-1), true
	}
	return a.max, false
}

// rowAccumulate fills acc by iterating every column (buffer-aware order)
// outer, every row inner, folding each cell into that row's aggregate.
func (m *Matrix) rowAccumulate(skipMissing bool, acc rowAccumulator) {
	for _, col := range orderedColumns(m.colBuf, m.cols) {
		for row := 0; row < m.rows; row++ {
			ptr, err := m.locate(row, col)
			if err != nil {
				continue
			}
			acc[row].add(*ptr, skipMissing)
		}
	}
}

// median implements §4.6 "Median details": the exact middle via partial
// select for an odd count, the average of the two central elements
// (independent partial-selects) for an even count. NaNs are dropped first
// when skipMissing is true; if every value is missing the result is NaN
// for both branches, matching the mean/var "all missing" policy.
func median(data []float64, skipMissing bool, sel selector) float64 {
	values := data
	if skipMissing {
		values = make([]float64, 0, len(data))
		for _, x := range data {
			if !math.IsNaN(x) {
				values = append(values, x)
			}
		}
	} else {
		for _, x := range data {
			if math.IsNaN(x) {
				return math.NaN()
			}
		}
	}
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sel(values, (n-1)/2)
	}
	hi := sel(values, n/2)
	lo := sel(values, n/2-1)
	return (hi + lo) / 2
}

// pairwiseRange implements §4.6 "Range details": scan pairs of adjacent
// elements, comparing the smaller to the running min and the larger to
// the running max, for three comparisons per pair instead of four. The
// seed is the first non-NaN candidate (§9 resolved source bug: the
// original's odd-length fast path seeded from row 0 unconditionally,
// which could leave +/-Inf in the output when row 0 was NaN under
// skipMissing).
func pairwiseRange(data []float64, skipMissing bool) (min, max float64, warn bool) {
	values := data
	if !skipMissing {
		for _, x := range data {
			if math.IsNaN(x) {
				return math.NaN(), math.NaN(), false
			}
		}
	} else {
		values = make([]float64, 0, len(data))
		for _, x := range data {
			if !math.IsNaN(x) {
				values = append(values, x)
			}
		}
	}

	n := len(values)
	if n == 0 {
		return math.Inf(1), math.Inf(-1), true
	}

	min, max = values[0], values[0]
	startInd := 1
	if n%2 == 0 {
		// Even count: seed from the first pair directly.
		if values[0] < values[1] {
			min, max = values[0], values[1]
		} else {
			min, max = values[1], values[0]
		}
		startInd = 2
	}

	for i := startInd; i+1 < n; i += 2 {
		a, b := values[i], values[i+1]
		var lo, hi float64
		if a < b {
			lo, hi = a, b
		} else {
			lo, hi = b, a
		}
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max, false
}
