//go:build linux

package bufferedmatrix

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// preadFloats and pwriteFloats are the Linux fast path: they issue
// pread(2)/pwrite(2) directly against the file descriptor via
// golang.org/x/sys/unix, avoiding the extra Seek syscall that a portable
// ReadAt/WriteAt-on-a-non-pread-backed-stream would otherwise need. Every
// transfer is checked against the requested byte count; a short transfer
// is reported as a storage failure per §4.1.

func preadFloats(f *os.File, dst []float64, offset int64) error {
	buf := make([]byte, len(dst)*float64Size)
	want := len(buf)
	got := 0
	for got < want {
		n, err := unix.Pread(int(f.Fd()), buf[got:], offset+int64(got))
		if n > 0 {
			got += n
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrUnexpectedEOF
		}
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
	want := len(buf)
	put := 0
	for put < want {
		n, err := unix.Pwrite(int(f.Fd()), buf[put:], offset+int64(put))
		if n > 0 {
			put += n
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}
