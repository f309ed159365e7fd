package bufferedmatrix

import "fmt"

func (m *Matrix) checkCols(cols []int) error {
	for _, c := range cols {
		if c < 0 || c >= m.cols {
			return fmt.Errorf("%w: col=%d", ErrOutOfRange, c)
		}
	}
	return nil
}

func (m *Matrix) checkRows(rows []int) error {
	for _, r := range rows {
		if r < 0 || r >= m.rows {
			return fmt.Errorf("%w: row=%d", ErrOutOfRange, r)
		}
	}
	return nil
}

// ColumnValues reads the columns listed in cols into buf, column-major:
// buf[j*Rows+i] holds (i, cols[j]). buf must have length len(cols)*Rows.
//
// In column mode this uses the fast path from §4.6: a buffered column is
// copied in one block, an unbuffered one triggers flush-oldest (unless
// read-only) then a rotate-and-read. In row mode it defers to the generic
// per-cell access core, since row mode isn't optimized for column
// streaming.
func (m *Matrix) ColumnValues(cols []int, buf []float64) error {
	if err := m.checkCols(cols); err != nil {
		return err
	}
	if len(buf) != len(cols)*m.rows {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, len(cols)*m.rows, len(buf))
	}

	if !m.rowModeActive {
		for j, col := range cols {
			dst := buf[j*m.rows : (j+1)*m.rows]
			if slot := m.colBuf.find(col); slot >= 0 {
				copy(dst, m.colBuf.entries[slot].data)
				continue
			}
			slot, err := m.colBuf.evictAndLoad(col, m.readOnly, true)
			if err != nil {
				return err
			}
			copy(dst, m.colBuf.entries[slot].data)
		}
		return nil
	}

	for j, col := range cols {
		for i := 0; i < m.rows; i++ {
			ptr, err := m.locate(i, col)
			if err != nil {
				return err
			}
			buf[j*m.rows+i] = *ptr
		}
	}
	return nil
}

// SetColumnValues writes buf into the columns listed in cols, using the
// same layout and buffer-aware fast path as ColumnValues. Because the
// whole column is about to be overwritten, an unbuffered column uses the
// no-fill rotation (no wasted read) in column mode.
func (m *Matrix) SetColumnValues(cols []int, buf []float64) error {
	if m.readOnly {
		return ErrReadOnly
	}
	if err := m.checkCols(cols); err != nil {
		return err
	}
	if len(buf) != len(cols)*m.rows {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, len(cols)*m.rows, len(buf))
	}

	if !m.rowModeActive {
		for j, col := range cols {
			src := buf[j*m.rows : (j+1)*m.rows]
			if slot := m.colBuf.find(col); slot >= 0 {
				copy(m.colBuf.entries[slot].data, src)
				continue
			}
			slot, err := m.colBuf.evictAndLoad(col, m.readOnly, false)
			if err != nil {
				return err
			}
			copy(m.colBuf.entries[slot].data, src)
		}
		return nil
	}

	for j, col := range cols {
		for i := 0; i < m.rows; i++ {
			ptr, err := m.locate(i, col)
			if err != nil {
				return err
			}
			*ptr = buf[j*m.rows+i]
		}
	}
	return nil
}

// RowValues reads the rows listed in rows, across every column, into buf
// row-major within the selection: buf[j*len(rows)+i] holds (rows[i], j)
// for j in [0, Cols). buf must have length len(rows)*Cols.
//
// In column mode, columns already resident in the column buffer are
// processed first so this call doesn't evict data it hasn't used yet
// (§4.6, orderedColumns). In row mode it iterates rows outer / columns
// inner through the access core, so each requested row is read across
// the row buffer's band before the band moves.
func (m *Matrix) RowValues(rows []int, buf []float64) error {
	if err := m.checkRows(rows); err != nil {
		return err
	}
	if len(buf) != len(rows)*m.cols {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, len(rows)*m.cols, len(buf))
	}

	if m.rowModeActive {
		for i, row := range rows {
			for col := 0; col < m.cols; col++ {
				ptr, err := m.locate(row, col)
				if err != nil {
					return err
				}
				buf[col*len(rows)+i] = *ptr
			}
		}
		return nil
	}

	cols := orderedColumns(m.colBuf, m.cols)
	for _, col := range cols {
		for i, row := range rows {
			ptr, err := m.locate(row, col)
			if err != nil {
				return err
			}
			buf[col*len(rows)+i] = *ptr
		}
	}
	return nil
}

// SetRowValues writes buf into the rows listed in rows, across every
// column, using the same layout and ordering as RowValues.
func (m *Matrix) SetRowValues(rows []int, buf []float64) error {
	if m.readOnly {
		return ErrReadOnly
	}
	if err := m.checkRows(rows); err != nil {
		return err
	}
	if len(buf) != len(rows)*m.cols {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, len(rows)*m.cols, len(buf))
	}

	if m.rowModeActive {
		for i, row := range rows {
			for col := 0; col < m.cols; col++ {
				ptr, err := m.locate(row, col)
				if err != nil {
					return err
				}
				*ptr = buf[col*len(rows)+i]
			}
		}
		return nil
	}

	cols := orderedColumns(m.colBuf, m.cols)
	for _, col := range cols {
		for i, row := range rows {
			ptr, err := m.locate(row, col)
			if err != nil {
				return err
			}
			*ptr = buf[col*len(rows)+i]
		}
	}
	return nil
}

// SubmatrixValues reads the rectangle selected by rows x cols into buf:
// buf[j*len(rows)+i] holds (rows[i], cols[j]). No special buffer ordering
// is applied; every cell goes through the access core (§4.6).
func (m *Matrix) SubmatrixValues(rows, cols []int, buf []float64) error {
	if err := m.checkRows(rows); err != nil {
		return err
	}
	if err := m.checkCols(cols); err != nil {
		return err
	}
	if len(buf) != len(rows)*len(cols) {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, len(rows)*len(cols), len(buf))
	}

	for j, col := range cols {
		for i, row := range rows {
			ptr, err := m.locate(row, col)
			if err != nil {
				return err
			}
			buf[j*len(rows)+i] = *ptr
		}
	}
	return nil
}

// SetSubmatrixValues writes buf into the rectangle selected by rows x
// cols, using the same layout as SubmatrixValues.
func (m *Matrix) SetSubmatrixValues(rows, cols []int, buf []float64) error {
	if m.readOnly {
		return ErrReadOnly
	}
	if err := m.checkRows(rows); err != nil {
		return err
	}
	if err := m.checkCols(cols); err != nil {
		return err
	}
	if len(buf) != len(rows)*len(cols) {
		return fmt.Errorf("%w: want %d got %d", ErrLengthMismatch, len(rows)*len(cols), len(buf))
	}

	for j, col := range cols {
		for i, row := range rows {
			ptr, err := m.locate(row, col)
			if err != nil {
				return err
			}
			*ptr = buf[j*len(rows)+i]
		}
	}
	return nil
}

// CopyValues copies every cell of src into dst, which must have identical
// dimensions. src and dst must not be the same instance.
func CopyValues(dst, src *Matrix) error {
	if dst == src {
		return ErrSameInstance
	}
	if dst.rows != src.rows || dst.cols != src.cols {
		return fmt.Errorf("%w: dst=%dx%d src=%dx%d", ErrShapeMismatch, dst.rows, dst.cols, src.rows, src.cols)
	}
	if dst.readOnly {
		return ErrReadOnly
	}

	cols := orderedColumns(src.colBuf, src.cols)
	for _, col := range cols {
		for row := 0; row < src.rows; row++ {
			srcPtr, err := src.locate(row, col)
			if err != nil {
				return err
			}
			v := *srcPtr
			dstPtr, err := dst.locate(row, col)
			if err != nil {
				return err
			}
			*dstPtr = v
		}
	}
	return nil
}

// EwApply applies fn to every cell in place, using the same buffer-aware
// column ordering RowValues uses in column mode (§4.6): already-resident columns first,
// then the rest. fn must not call back into m (no re-entrancy through the
// access core).
func (m *Matrix) EwApply(fn func(float64) float64) error {
	if m.readOnly {
		return ErrReadOnly
	}
	cols := orderedColumns(m.colBuf, m.cols)
	for _, col := range cols {
		for row := 0; row < m.rows; row++ {
			ptr, err := m.locate(row, col)
			if err != nil {
				return err
			}
			*ptr = fn(*ptr)
		}
	}
	return nil
}
