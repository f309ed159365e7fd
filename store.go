package bufferedmatrix

import "os"

// store is the Backing Store component (§4.1): one file per column,
// rows*8 bytes of native-endian doubles, accessed through positional I/O
// with no descriptor held between calls.
type store struct {
	rows int
}

const float64Size = 8

// createColumnFile creates a new, zero-filled column file of the current
// row count.
func (s *store) createColumnFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		return newStorageError("create", path, err)
	}
	defer f.Close()

	zeros := make([]float64, s.rows)
	if err := pwriteFloats(f, zeros, 0); err != nil {
		return newStorageError("write", path, err)
	}
	return nil
}

// readColumn reads the full column (s.rows doubles) from path into dst,
// which must have length s.rows.
func (s *store) readColumn(path string, dst []float64) error {
	return s.readRange(path, dst, 0)
}

// writeColumn writes the full column from src (length s.rows) to path at
// offset 0.
func (s *store) writeColumn(path string, src []float64) error {
	return s.writeRange(path, src, 0)
}

// readRange reads len(dst) doubles from path starting at row firstRow.
func (s *store) readRange(path string, dst []float64, firstRow int) error {
	f, err := os.Open(path)
	if err != nil {
		return newStorageError("open", path, err)
	}
	defer f.Close()

	if err := preadFloats(f, dst, int64(firstRow)*float64Size); err != nil {
		return newStorageError("read", path, err)
	}
	return nil
}

// writeRange writes src to path starting at row firstRow.
func (s *store) writeRange(path string, src []float64, firstRow int) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0o600)
	if err != nil {
		return newStorageError("open", path, err)
	}
	defer f.Close()

	if err := pwriteFloats(f, src, int64(firstRow)*float64Size); err != nil {
		return newStorageError("write", path, err)
	}
	return nil
}

// fileSize reports the on-disk size of a column's file.
func fileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, newStorageError("stat", path, err)
	}
	return fi.Size(), nil
}
