package bufferedmatrix

// colEntry is one slot of the column buffer: a buffered column's index and
// its rows-long backing slice.
type colEntry struct {
	col  int
	data []float64
}

// columnBuffer is the Column Buffer component (§4.2): an ordered list of up
// to maxCols in-memory columns, oldest first (index 0), newest last.
type columnBuffer struct {
	entries []colEntry
	maxCols int
	rows    int
	st      *store
	paths   func(col int) string
}

func newColumnBuffer(rows, maxCols int, st *store, paths func(int) string) *columnBuffer {
	return &columnBuffer{maxCols: maxCols, rows: rows, st: st, paths: paths}
}

// find returns the slot index holding col, scanning newest-to-oldest so a
// recently used column wins ties, or -1 if col isn't buffered.
func (b *columnBuffer) find(col int) int {
	for i := len(b.entries) - 1; i >= 0; i-- {
		if b.entries[i].col == col {
			return i
		}
	}
	return -1
}

// full reports whether the buffer is at capacity.
func (b *columnBuffer) full() bool { return len(b.entries) >= b.maxCols }

// flushSlot writes the entry at index i back to its column file.
func (b *columnBuffer) flushSlot(i int) error {
	e := &b.entries[i]
	return b.st.writeColumn(b.paths(e.col), e.data)
}

// flushAll writes every buffered column back to its file.
func (b *columnBuffer) flushAll() error {
	for i := range b.entries {
		if err := b.flushSlot(i); err != nil {
			return err
		}
	}
	return nil
}

// evictAndLoad performs the rotate-and-refill dance from §4.2: if
// readOnly is false the oldest entry is flushed first, then every entry
// shifts left by one and the vacated last slot is repurposed for col,
// reusing its allocation. When fill is true the slot's storage is read
// back from col's file; when fill is false (the "no-fill" variant) the
// caller is about to overwrite the whole column and the read is skipped.
// Returns the index of the slot now holding col (always the last one).
func (b *columnBuffer) evictAndLoad(col int, readOnly, fill bool) (int, error) {
	if len(b.entries) == 0 {
		panic("bufferedmatrix: evictAndLoad called on empty column buffer")
	}
	if !readOnly {
		if err := b.flushSlot(0); err != nil {
			return -1, err
		}
	}
	data := b.entries[0].data
	copy(b.entries, b.entries[1:])
	last := len(b.entries) - 1
	b.entries[last] = colEntry{col: col, data: data}

	if fill {
		if err := b.st.readColumn(b.paths(col), data); err != nil {
			return -1, err
		}
	}
	return last, nil
}

// appendSlot adds col as a brand-new last slot, growing the buffer, and
// fills the new slot from col's file. It does not check maxCols: the
// caller decides how many slots to add (resizeColumnBuffer raises maxCols
// after appending).
func (b *columnBuffer) appendSlot(col int) error {
	data := make([]float64, b.rows)
	if err := b.st.readColumn(b.paths(col), data); err != nil {
		return err
	}
	b.entries = append(b.entries, colEntry{col: col, data: data})
	return nil
}

// appendSlotZero adds col as a brand-new last slot filled with zeros,
// without touching disk. Used when a column is appended to the matrix: its
// file was just created zero-filled, so there's nothing to read.
func (b *columnBuffer) appendSlotZero(col int) {
	b.entries = append(b.entries, colEntry{col: col, data: make([]float64, b.rows)})
}

// shrinkTo reduces the buffer to n slots, flushing (unless readOnly) and
// dropping the oldest entries first.
func (b *columnBuffer) shrinkTo(n int, readOnly bool) error {
	for len(b.entries) > n {
		if !readOnly {
			if err := b.flushSlot(0); err != nil {
				return err
			}
		}
		b.entries = b.entries[1:]
	}
	return nil
}
