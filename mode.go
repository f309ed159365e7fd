package bufferedmatrix

// SetRowMode switches the matrix into row mode: it allocates the row
// buffer, loads it with rows [0, maxRows) for every column, and overlays
// any column also present in the column buffer so the authoritative value
// survives (§4.3, §4.6 "State machine for mode").
//
// A no-op if already in row mode.
func (m *Matrix) SetRowMode() error {
	if m.rowModeActive {
		return nil
	}
	if err := m.rowBuf.activate(m.cols, m.colBuf); err != nil {
		return err
	}
	m.rowModeActive = true
	return nil
}

// SetColMode switches the matrix out of row mode: it reconciles any
// pending clash, flushes the row buffer to disk (unless read-only), and
// frees the row buffer's storage.
//
// A no-op if already in column mode.
func (m *Matrix) SetColMode() error {
	if !m.rowModeActive {
		return nil
	}
	m.reconcileClash()
	if !m.readOnly {
		if err := m.rowBuf.flush(); err != nil {
			return err
		}
	}
	m.rowBuf.deactivate()
	m.rowModeActive = false
	return nil
}

// SetReadOnly toggles read-only mode. Entering read-only mode reconciles
// any clash and flushes both buffers to disk first, so that every file is
// guaranteed to hold its column's authoritative values for the remainder
// of the read-only period (§3 invariants, §4 "State machine for
// read-only"). Leaving read-only mode requires no action.
func (m *Matrix) SetReadOnly(readOnly bool) error {
	if readOnly == m.readOnly {
		return nil
	}
	if readOnly {
		m.reconcileClash()
		if m.rowModeActive {
			if err := m.rowBuf.flush(); err != nil {
				return err
			}
		}
		if err := m.colBuf.flushAll(); err != nil {
			return err
		}
	}
	m.readOnly = readOnly
	return nil
}

// ResizeBuffer adjusts the capacity of both buffers. Column-buffer
// shrinkage flushes and drops the oldest entries; growth loads whichever
// columns aren't already buffered, in ascending column order, never
// loading more than Cols columns total. Row-buffer resizing is a no-op in
// column mode beyond recording the new capacity (clamped to [1, Rows]); in
// row mode it reconciles, flushes (unless read-only), reallocates every
// band, then slides to a valid position and reloads.
func (m *Matrix) ResizeBuffer(newMaxRows, newMaxCols int) error {
	if newMaxRows < 1 || newMaxCols < 1 {
		return ErrBufferTooSmall
	}

	m.reconcileClash()

	if err := m.resizeColumnBuffer(newMaxCols); err != nil {
		return err
	}
	return m.resizeRowBuffer(newMaxRows)
}

func (m *Matrix) resizeColumnBuffer(newMaxCols int) error {
	cb := m.colBuf
	switch {
	case newMaxCols < len(cb.entries):
		if err := cb.shrinkTo(newMaxCols, m.readOnly); err != nil {
			return err
		}
	case newMaxCols > cb.maxCols:
		want := newMaxCols
		if want > m.cols {
			want = m.cols
		}
		buffered := make(map[int]bool, len(cb.entries))
		for _, e := range cb.entries {
			buffered[e.col] = true
		}
		for col := 0; col < m.cols && len(cb.entries) < want; col++ {
			if buffered[col] {
				continue
			}
			if err := cb.appendSlot(col); err != nil {
				return err
			}
		}
	}
	cb.maxCols = newMaxCols
	return nil
}

func (m *Matrix) resizeRowBuffer(newMaxRows int) error {
	if newMaxRows > m.rows {
		newMaxRows = m.rows
	}
	if newMaxRows < 1 {
		newMaxRows = 1
	}

	if !m.rowModeActive {
		m.rowBuf.maxRows = newMaxRows
		return nil
	}

	if !m.readOnly {
		if err := m.rowBuf.flush(); err != nil {
			return err
		}
	}
	m.rowBuf.resize(newMaxRows)
	return m.rowBuf.slideTo(m.rowBuf.firstRow, m.colBuf)
}
