package bufferedmatrix

// locate is the Access Core (§4.5): the single entry point used by every
// read, write, apply, and reduction to find the canonical storage for cell
// (r, c), triggering whatever flush/load/slide is necessary. The returned
// pointer is only valid until the next call into locate (or into
// evictAndLoad or slideTo, which move buffered data) on the same Matrix —
// callers must read or write through it immediately.
//
// Callers are expected to have already validated 0 <= r < rows and
// 0 <= c < cols; locate panics on an out-of-range index since the public
// API never calls it with one.
func (m *Matrix) locate(r, c int) (*float64, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic("bufferedmatrix: locate called with out-of-range index")
	}

	if m.rowModeActive {
		return m.locateRowMode(r, c)
	}
	return m.locateColMode(r, c)
}

func (m *Matrix) locateRowMode(r, c int) (*float64, error) {
	m.reconcileClash()

	if m.rowBuf.contains(r) {
		if slot := m.colBuf.find(c); slot >= 0 {
			m.clash.setClash(r, c)
		}
		band := m.rowBuf.bandFor(c)
		return &band.data[r-m.rowBuf.firstRow], nil
	}

	if slot := m.colBuf.find(c); slot >= 0 {
		return &m.colBuf.entries[slot].data[r], nil
	}

	if !m.readOnly {
		// Flush the row buffer now; evictAndLoad below flushes the
		// oldest column buffer slot itself before reusing it.
		if err := m.rowBuf.flush(); err != nil {
			return nil, err
		}
	}
	if err := m.rowBuf.slideTo(r, m.colBuf); err != nil {
		return nil, err
	}
	if _, err := m.colBuf.evictAndLoad(c, m.readOnly, true); err != nil {
		return nil, err
	}
	m.clash.setClash(r, c)
	band := m.rowBuf.bandFor(c)
	return &band.data[r-m.rowBuf.firstRow], nil
}

func (m *Matrix) locateColMode(r, c int) (*float64, error) {
	if slot := m.colBuf.find(c); slot >= 0 {
		return &m.colBuf.entries[slot].data[r], nil
	}
	// evictAndLoad flushes the oldest slot itself (unless read-only)
	// before rotating the new column into the last slot.
	slot, err := m.colBuf.evictAndLoad(c, m.readOnly, true)
	if err != nil {
		return nil, err
	}
	return &m.colBuf.entries[slot].data[r], nil
}
