package bufferedmatrix_test

import (
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	bufferedmatrix "github.com/bmbolstad/BufferedMatrix"
)

func TestStatsJSON(t *testing.T) {
	m := newTestMatrix(t, bufferedmatrix.WithMaxRows(10), bufferedmatrix.WithMaxCols(4))
	fillMatrix(t, m, 3, 2, func(i, j int) float64 { return 0 })

	got, err := m.Stats().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	want := `{"rows":3,"cols":2,"buffered_cols":2,"row_buffer_cols":0,"row_mode_active":false,"read_only":false,"memory_bytes":48,"file_bytes":48}`

	if string(got) != want {
		edits := myers.ComputeEdits(span.URIFromPath("want.json"), want, string(got))
		diff := fmt.Sprint(gotextdiff.ToUnified("want.json", "got.json", want, edits))
		t.Errorf("Stats JSON mismatch:\n%s", diff)
	}
}

func TestStatsAfterRowMode(t *testing.T) {
	m := newTestMatrix(t, bufferedmatrix.WithMaxRows(2), bufferedmatrix.WithMaxCols(4))
	fillMatrix(t, m, 5, 3, func(i, j int) float64 { return 0 })

	if err := m.SetRowMode(); err != nil {
		t.Fatalf("SetRowMode: %v", err)
	}

	got, err := m.Stats().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	want := `{"rows":5,"cols":3,"buffered_cols":3,"row_buffer_cols":3,"row_mode_active":true,"read_only":false,"memory_bytes":168,"file_bytes":120}`

	if string(got) != want {
		edits := myers.ComputeEdits(span.URIFromPath("want.json"), want, string(got))
		diff := fmt.Sprint(gotextdiff.ToUnified("want.json", "got.json", want, edits))
		t.Errorf("Stats JSON mismatch:\n%s", diff)
	}
}
