package bufferedmatrix

// clashRecord is the Coherence Tracker (§4.4): a single-slot record noting
// that one cell may differ between the row buffer (authoritative) and the
// column buffer (stale), plus the reconciliation that copies the
// authoritative value across before either buffer is otherwise consulted.
type clashRecord struct {
	set bool
	row int
	col int
}

func (c *clashRecord) setClash(row, col int) {
	c.set = true
	c.row = row
	c.col = col
}

func (c *clashRecord) clear() {
	c.set = false
}

// reconcile copies the authoritative row-buffer value into the
// column-buffer slot holding the clashed column, then clears the clash. A
// no-op if no clash is pending or the clashed column is no longer
// column-buffered (it may have been evicted since the clash was recorded).
//
// readOnly reconciliation clears the flag without writing: no divergence
// is possible when writes are forbidden (§4.4).
func (m *Matrix) reconcileClash() {
	if !m.clash.set {
		return
	}
	defer m.clash.clear()

	if m.readOnly {
		return
	}
	slot := m.colBuf.find(m.clash.col)
	if slot < 0 {
		return
	}
	band := m.rowBuf.bandFor(m.clash.col)
	if band == nil {
		return
	}
	m.colBuf.entries[slot].data[m.clash.row] = band.data[m.clash.row-m.rowBuf.firstRow]
}
