// Package tempname generates the per-column file names used by the backing
// store. It stands in for the host-provided temporary-name routine that the
// original C library assumed would be supplied by its embedding R session.
package tempname

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Generator produces a new, previously unused file path for a column given
// the matrix's current prefix and directory. Implementations must return a
// distinct name on every call.
type Generator interface {
	Name(prefix, dir string) (string, error)
}

// UUIDGenerator names files "<prefix><uuid>.bmat" inside dir. It is the
// default Generator used by New when no WithNamer option is supplied.
type UUIDGenerator struct{}

// Name implements Generator.
func (UUIDGenerator) Name(prefix, dir string) (string, error) {
	return filepath.Join(dir, prefix+uuid.NewString()+".bmat"), nil
}

// Default is the package-level Generator used when callers don't need to
// swap in their own naming scheme.
var Default Generator = UUIDGenerator{}
