package bufferedmatrix

import (
	"fmt"

	"github.com/bmbolstad/BufferedMatrix/internal/partialsort"
	"github.com/bmbolstad/BufferedMatrix/internal/tempname"
)

const (
	// DefaultMaxRows is the row-buffer capacity used when WithMaxRows
	// isn't supplied.
	DefaultMaxRows = 1000

	// DefaultMaxCols is the column-buffer capacity used when
	// WithMaxCols isn't supplied.
	DefaultMaxCols = 10

	// DefaultPrefix is the column-filename prefix used when WithPrefix
	// isn't supplied.
	DefaultPrefix = "bmat_"
)

// selector is the internal shape of the partial-selection collaborator, so
// WithSelector can be substituted in tests without depending on the
// concrete partialsort package type.
type selector func(data []float64, k int) float64

// config carries the construction-time configuration of a Matrix.
//
// config is built by applying a sequence of Option values over
// DefaultConfig, mirroring the teacher library's FileConfig/ReaderConfig
// pattern: a struct of defaults, a set of With... constructors, and a
// validate step invoked once by New.
type config struct {
	maxRows   int
	maxCols   int
	prefix    string
	directory string
	warnf     func(string, ...any)
	namer     tempname.Generator
	selector  selector
}

// DefaultConfig returns the configuration applied when New is called with
// no options.
func DefaultConfig() config {
	return config{
		maxRows:   DefaultMaxRows,
		maxCols:   DefaultMaxCols,
		prefix:    DefaultPrefix,
		directory: ".",
		warnf:     func(string, ...any) {},
		namer:     tempname.Default,
		selector:  partialsort.Select,
	}
}

// Option configures a Matrix at construction time.
type Option func(*config)

// WithMaxRows sets the row-buffer capacity. It is clamped to the matrix's
// row count once SetRows is called.
func WithMaxRows(n int) Option {
	return func(c *config) { c.maxRows = n }
}

// WithMaxCols sets the column-buffer capacity.
func WithMaxCols(n int) Option {
	return func(c *config) { c.maxCols = n }
}

// WithPrefix sets the filename prefix used for columns appended after this
// option takes effect.
func WithPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

// WithDirectory sets the directory columns are stored in.
func WithDirectory(dir string) Option {
	return func(c *config) { c.directory = dir }
}

// WithWarnSink installs a callback used for non-fatal warnings, such as the
// "no finite input" case in Min/Max under skipMissing. The default sink
// discards warnings.
func WithWarnSink(fn func(string, ...any)) Option {
	return func(c *config) {
		if fn != nil {
			c.warnf = fn
		}
	}
}

// WithNamer overrides the temporary-filename collaborator used when
// appending columns. Embedders with their own naming scheme can supply
// their own tempname.Generator here.
func WithNamer(g tempname.Generator) Option {
	return func(c *config) {
		if g != nil {
			c.namer = g
		}
	}
}

// WithSelector overrides the nth_element-style partial-selection routine
// used by ColMedians and RowMedians.
func WithSelector(fn func(data []float64, k int) float64) Option {
	return func(c *config) {
		if fn != nil {
			c.selector = fn
		}
	}
}

// validate returns a non-nil error if the configuration is unusable.
func (c config) validate() error {
	if c.maxRows < 1 {
		return fmt.Errorf("%w: maxRows=%d", ErrBufferTooSmall, c.maxRows)
	}
	if c.maxCols < 1 {
		return fmt.Errorf("%w: maxCols=%d", ErrBufferTooSmall, c.maxCols)
	}
	return nil
}

// Stats is a point-in-time, JSON-serializable snapshot of engine state for
// host-side observability (logging, dashboards, tests).
type Stats struct {
	Rows          int   `json:"rows"`
	Cols          int   `json:"cols"`
	BufferedCols  int   `json:"buffered_cols"`
	RowBufferCols int   `json:"row_buffer_cols"`
	RowModeActive bool  `json:"row_mode_active"`
	ReadOnly      bool  `json:"read_only"`
	MemoryBytes   int64 `json:"memory_bytes"`
	FileBytes     int64 `json:"file_bytes"`
}
