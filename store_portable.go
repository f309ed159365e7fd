//go:build !linux

package bufferedmatrix

import (
	"encoding/binary"
	"io"
	"math"
	"os"
)

// preadFloats and pwriteFloats are the portable fallback for platforms
// without the unix.Pread/Pwrite fast path: os.File's ReadAt/WriteAt are
// themselves backed by pread/pwrite (or the platform equivalent) on every
// Go-supported OS, so this path pays no extra seek syscall either; it's
// just expressed through the standard library instead of golang.org/x/sys.

func preadFloats(f *os.File, dst []float64, offset int64) error {
	buf := make([]byte, len(dst)*float64Size)
	if _, err := io.ReadFull(newSectionReader(f, offset), buf); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float64frombits(binary.NativeEndian.Uint64(buf[i*float64Size:]))
	}
	return nil
}

func pwriteFloats(f *os.File, src []float64, offset int64) error {
	buf := make([]byte, len(src)*float64Size)
	for i, v := range src {
		binary.NativeEndian.PutUint64(buf[i*float64Size:], math.Float64bits(v))
	}
	n, err := f.WriteAt(buf, offset)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

func newSectionReader(f *os.File, offset int64) io.Reader {
	return &offsetReader{f: f, off: offset}
}

type offsetReader struct {
	f   *os.File
	off int64
}

func (r *offsetReader) Read(p []byte) (int, error) {
	n, err := r.f.ReadAt(p, r.off)
	r.off += int64(n)
	return n, err
}
