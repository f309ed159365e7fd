package bufferedmatrix

import "math"

// Value returns the value at (row, col). An out-of-range index yields NaN
// rather than an error, matching the original's "missing sentinel" policy
// for reads (§7).
func (m *Matrix) Value(row, col int) float64 {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return math.NaN()
	}
	ptr, err := m.locate(row, col)
	if err != nil {
		return math.NaN()
	}
	return *ptr
}

// SetValue writes value at (row, col). It returns ErrOutOfRange for an
// invalid index and ErrReadOnly if the matrix is in read-only mode; both
// are reported without touching any buffer state.
func (m *Matrix) SetValue(row, col int, value float64) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return ErrOutOfRange
	}
	if m.readOnly {
		return ErrReadOnly
	}
	ptr, err := m.locate(row, col)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}
