package bufferedmatrix

import (
	"github.com/segmentio/encoding/json"
)

// Stats returns a snapshot of the matrix's current dimensions, buffer
// occupancy, and approximate resource usage.
func (m *Matrix) Stats() Stats {
	return Stats{
		Rows:          m.rows,
		Cols:          m.cols,
		BufferedCols:  len(m.colBuf.entries),
		RowBufferCols: m.rowBuf.numCols(),
		RowModeActive: m.rowModeActive,
		ReadOnly:      m.readOnly,
		MemoryBytes:   m.MemoryInUse(),
		FileBytes:     m.FileSpaceInUse(),
	}
}

// MarshalJSON serializes a Stats value using the same encoder the teacher
// library depends on, so a host application gets one consistent JSON
// implementation across the binary rather than mixing encoding/json and a
// faster third-party encoder.
func (s Stats) MarshalJSON() ([]byte, error) {
	type alias Stats
	return json.Marshal(alias(s))
}
