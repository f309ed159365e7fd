// Package bufferedmatrix implements an out-of-core dense numeric matrix: a
// two-dimensional array of float64 values backed by one file per column on
// disk, with a column buffer and an optional row buffer giving locality to
// column-wise or row-wise traversal respectively.
//
// The matrix is single-threaded: a *Matrix must not be used from more than
// one goroutine at a time, and no method suspends partway through — every
// call runs to completion before returning.
package bufferedmatrix

import (
	"fmt"
	"os"

	"github.com/bmbolstad/BufferedMatrix/internal/tempname"
)

// Matrix is an out-of-core dense float64 matrix. The zero value is not
// usable; construct one with New.
type Matrix struct {
	rows int
	cols int

	prefix    string
	directory string
	namer     tempname.Generator
	selector  selector
	warnf     func(string, ...any)

	files []string // files[col] is the backing path for column col

	st     *store
	colBuf *columnBuffer
	rowBuf *rowBuffer
	clash  clashRecord

	rowModeActive bool
	readOnly      bool

	rowsSet bool
}

// New constructs a Matrix with zero rows and zero columns. Call SetRows
// exactly once before AddColumn or any accessor.
func New(opts ...Option) (*Matrix, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Matrix{
		prefix:    cfg.prefix,
		directory: cfg.directory,
		namer:     cfg.namer,
		selector:  cfg.selector,
		warnf:     cfg.warnf,
		st:        &store{},
	}
	m.colBuf = newColumnBuffer(0, cfg.maxCols, m.st, m.pathFor)
	m.rowBuf = newRowBuffer(cfg.maxRows, 0, m.st, m.pathFor)
	return m, nil
}

func (m *Matrix) pathFor(col int) string { return m.files[col] }

// Rows returns the matrix's row count (0 until SetRows is called).
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the matrix's current column count.
func (m *Matrix) Cols() int { return m.cols }

// BufferRows returns the row buffer's capacity in rows.
func (m *Matrix) BufferRows() int { return m.rowBuf.maxRows }

// BufferCols returns the column buffer's capacity in columns.
func (m *Matrix) BufferCols() int { return m.colBuf.maxCols }

// RowMode reports whether the row buffer is currently active.
func (m *Matrix) RowMode() bool { return m.rowModeActive }

// ReadOnly reports whether the matrix is in read-only mode.
func (m *Matrix) ReadOnly() bool { return m.readOnly }

// Prefix returns the filename prefix used for columns appended from now on.
func (m *Matrix) Prefix() string { return m.prefix }

// Directory returns the directory used for columns appended from now on.
func (m *Matrix) Directory() string { return m.directory }

// FileName returns the backing file path for column col, or an error if
// col is out of range.
func (m *Matrix) FileName(col int) (string, error) {
	if col < 0 || col >= m.cols {
		return "", fmt.Errorf("%w: col=%d", ErrOutOfRange, col)
	}
	return m.files[col], nil
}

// SetRows fixes the matrix's row count. It may only be called once; a
// second call returns ErrRowsAlreadySet and leaves the matrix untouched.
func (m *Matrix) SetRows(rows int) error {
	if m.rowsSet {
		return ErrRowsAlreadySet
	}
	if rows < 0 {
		return fmt.Errorf("%w: rows=%d", ErrOutOfRange, rows)
	}
	m.rows = rows
	m.rowsSet = true
	m.st.rows = rows
	m.colBuf.rows = rows
	m.rowBuf.rows = rows
	if m.rowBuf.maxRows > rows {
		m.rowBuf.maxRows = rows
		if m.rowBuf.maxRows < 1 {
			m.rowBuf.maxRows = 1
		}
	}
	return nil
}

// AddColumn appends one zero-filled column, creating its backing file and
// growing both buffers (§4.6 "Column appended").
func (m *Matrix) AddColumn() error {
	if !m.rowsSet {
		return ErrRowsNotSet
	}

	path, err := m.namer.Name(m.prefix, m.directory)
	if err != nil {
		return err
	}
	if err := m.st.createColumnFile(path); err != nil {
		return err
	}
	m.files = append(m.files, path)
	col := m.cols
	m.cols++

	switch {
	case len(m.colBuf.entries) < m.colBuf.maxCols:
		m.colBuf.appendSlotZero(col)
	default:
		// Buffer is already at capacity: evict-and-flush the oldest
		// column to make room, then repurpose the freed slot for the
		// new, all-zero column (no read needed, its file is zeros).
		last, err := m.colBuf.evictAndLoad(col, m.readOnly, false)
		if err != nil {
			return err
		}
		data := m.colBuf.entries[last].data
		for i := range data {
			data[i] = 0
		}
	}
	m.rowBuf.addColumn()
	return nil
}

// Close flushes nothing (read-only transitions already guarantee
// durability) and removes every column's backing file. It is best-effort:
// every file is attempted regardless of earlier failures, and the first
// error encountered (if any) is returned after cleanup completes.
func (m *Matrix) Close() error {
	var firstErr error
	for _, path := range m.files {
		if err := os.Remove(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.files = nil
	m.colBuf.entries = nil
	m.rowBuf.deactivate()
	return firstErr
}

// SetPrefix changes the filename prefix used for columns appended after
// this call. Existing files keep their names.
func (m *Matrix) SetPrefix(prefix string) { m.prefix = prefix }

// SetDirectory moves every existing column file into dir and changes the
// directory used for columns appended after this call, matching
// dbm_setNewDirectory: each file is given a freshly generated name inside
// dir, renamed there, and m.files is rebound to the new path. If a rename
// fails partway through, already-moved files stay at their new location
// and this returns the error; m.directory is only updated once every file
// has moved.
func (m *Matrix) SetDirectory(dir string) error {
	for i, old := range m.files {
		path, err := m.namer.Name(m.prefix, dir)
		if err != nil {
			return err
		}
		if err := os.Rename(old, path); err != nil {
			return fmt.Errorf("bufferedmatrix: move column %d to %s: %w", i, dir, err)
		}
		m.files[i] = path
	}
	m.directory = dir
	return nil
}

// MemoryInUse returns an approximate count of bytes held in the two
// in-memory buffers.
func (m *Matrix) MemoryInUse() int64 {
	var n int64
	n += int64(len(m.colBuf.entries)) * int64(m.rows) * float64Size
	if m.rowModeActive {
		n += int64(len(m.rowBuf.bands)) * int64(m.rowBuf.maxRows) * float64Size
	}
	return n
}

// FileSpaceInUse returns an approximate count of bytes held in backing
// files (rows*8 per column).
func (m *Matrix) FileSpaceInUse() int64 {
	return int64(m.cols) * int64(m.rows) * float64Size
}
