package bufferedmatrix

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, rows int) (*store, []string) {
	t.Helper()
	dir := t.TempDir()
	st := &store{rows: rows}
	var paths []string
	for i := 0; i < 4; i++ {
		p := filepath.Join(dir, "col")
		p = p + string(rune('a'+i))
		if err := st.createColumnFile(p); err != nil {
			t.Fatalf("createColumnFile: %v", err)
		}
		paths = append(paths, p)
	}
	return st, paths
}

func TestColumnBufferEvictFlushesOldest(t *testing.T) {
	st, paths := newTestStore(t, 3)
	cb := newColumnBuffer(3, 2, st, func(c int) string { return paths[c] })

	cb.appendSlotZero(0)
	cb.appendSlotZero(1)
	cb.entries[0].data[0] = 11 // mark column 0 dirty in the buffer

	if !cb.full() {
		t.Fatal("buffer should be full at capacity")
	}

	slot, err := cb.evictAndLoad(2, false, true)
	if err != nil {
		t.Fatalf("evictAndLoad: %v", err)
	}
	if cb.entries[slot].col != 2 {
		t.Fatalf("evictAndLoad put col %d in last slot, want 2", cb.entries[slot].col)
	}
	if cb.find(0) != -1 {
		t.Fatal("column 0 should have been evicted")
	}
	if cb.find(1) < 0 {
		t.Fatal("column 1 should still be buffered")
	}

	got := make([]float64, 3)
	if err := st.readColumn(paths[0], got); err != nil {
		t.Fatalf("readColumn: %v", err)
	}
	if got[0] != 11 {
		t.Errorf("evicted column 0 was not flushed: got[0] = %v, want 11", got[0])
	}
}

func TestColumnBufferEvictReadOnlySkipsFlush(t *testing.T) {
	st, paths := newTestStore(t, 3)
	cb := newColumnBuffer(3, 1, st, func(c int) string { return paths[c] })

	cb.appendSlotZero(0)
	cb.entries[0].data[0] = 99

	if _, err := cb.evictAndLoad(1, true, true); err != nil {
		t.Fatalf("evictAndLoad: %v", err)
	}

	got := make([]float64, 3)
	if err := st.readColumn(paths[0], got); err != nil {
		t.Fatalf("readColumn: %v", err)
	}
	if got[0] != 0 {
		t.Errorf("read-only eviction flushed dirty data: got[0] = %v, want 0 (on-disk zero)", got[0])
	}
}

func TestColumnBufferShrinkFlushes(t *testing.T) {
	st, paths := newTestStore(t, 2)
	cb := newColumnBuffer(2, 3, st, func(c int) string { return paths[c] })
	cb.appendSlotZero(0)
	cb.appendSlotZero(1)
	cb.appendSlotZero(2)
	cb.entries[0].data[0] = 7

	if err := cb.shrinkTo(2, false); err != nil {
		t.Fatalf("shrinkTo: %v", err)
	}
	if len(cb.entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(cb.entries))
	}

	got := make([]float64, 2)
	if err := st.readColumn(paths[0], got); err != nil {
		t.Fatalf("readColumn: %v", err)
	}
	if got[0] != 7 {
		t.Errorf("shrinkTo did not flush dropped column: got[0] = %v, want 7", got[0])
	}
}

func TestOrderedColumnsBufferedFirst(t *testing.T) {
	st, paths := newTestStore(t, 1)
	cb := newColumnBuffer(1, 4, st, func(c int) string { return paths[c] })
	cb.appendSlotZero(2)
	cb.appendSlotZero(0)

	got := orderedColumns(cb, 4)
	want := []int{2, 0, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("orderedColumns length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("orderedColumns[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestClashReconcileCopiesAuthoritativeValue(t *testing.T) {
	st, paths := newTestStore(t, 4)
	cb := newColumnBuffer(4, 2, st, func(c int) string { return paths[c] })
	cb.appendSlotZero(0)

	rb := newRowBuffer(2, 4, st, func(c int) string { return paths[c] })
	if err := rb.activate(1, cb); err != nil {
		t.Fatalf("activate: %v", err)
	}
	rb.bands[0].data[0] = 55 // row 0, col 0, authoritative in the row buffer

	m := &Matrix{rows: 4, cols: 1, colBuf: cb, rowBuf: rb, rowModeActive: true}
	m.clash.setClash(0, 0)
	m.reconcileClash()

	if m.clash.set {
		t.Error("reconcileClash left the clash flag set")
	}
	if cb.entries[0].data[0] != 55 {
		t.Errorf("column buffer value = %v, want 55", cb.entries[0].data[0])
	}
}

func TestClashReconcileReadOnlyJustClears(t *testing.T) {
	st, paths := newTestStore(t, 4)
	cb := newColumnBuffer(4, 2, st, func(c int) string { return paths[c] })
	cb.appendSlotZero(0)

	rb := newRowBuffer(2, 4, st, func(c int) string { return paths[c] })
	if err := rb.activate(1, cb); err != nil {
		t.Fatalf("activate: %v", err)
	}
	rb.bands[0].data[0] = 55

	m := &Matrix{rows: 4, cols: 1, colBuf: cb, rowBuf: rb, rowModeActive: true, readOnly: true}
	m.clash.setClash(0, 0)
	m.reconcileClash()

	if m.clash.set {
		t.Error("reconcileClash left the clash flag set")
	}
	if cb.entries[0].data[0] != 0 {
		t.Errorf("read-only reconcile should not write: got %v, want 0", cb.entries[0].data[0])
	}
}

func TestWelfordMatchesTwoPassVariance(t *testing.T) {
	values := []float64{4, 8, 15, 16, 23, 42}

	var w welford
	for _, v := range values {
		w.add(v)
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	wantVar := ss / float64(len(values)-1)

	if math.Abs(w.mean-mean) > 1e-9 {
		t.Errorf("welford mean = %v, want %v", w.mean, mean)
	}
	if math.Abs(w.variance()-wantVar) > 1e-9 {
		t.Errorf("welford variance = %v, want %v", w.variance(), wantVar)
	}
}

func TestWelfordSingleValueIsNaN(t *testing.T) {
	var w welford
	w.add(5)
	if !math.IsNaN(w.variance()) {
		t.Errorf("variance of a single sample = %v, want NaN", w.variance())
	}
}

func TestConfigValidateRejectsTooSmallBuffers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.maxRows = 0
	if err := cfg.validate(); err == nil {
		t.Error("validate with maxRows=0: want error, got nil")
	}

	cfg = DefaultConfig()
	cfg.maxCols = 0
	if err := cfg.validate(); err == nil {
		t.Error("validate with maxCols=0: want error, got nil")
	}
}

func TestMedianEvenOddAndSkipMissing(t *testing.T) {
	sel := DefaultConfig().selector

	odd := []float64{5, 1, 3}
	if got := median(odd, false, sel); got != 3 {
		t.Errorf("median(odd) = %v, want 3", got)
	}

	even := []float64{1, 2, 3, 4}
	if got := median(even, false, sel); got != 2.5 {
		t.Errorf("median(even) = %v, want 2.5", got)
	}

	withNaN := []float64{1, math.NaN(), 3}
	if got := median(withNaN, false, sel); !math.IsNaN(got) {
		t.Errorf("median with NaN, skipMissing=false = %v, want NaN", got)
	}
	if got := median(withNaN, true, sel); got != 2 {
		t.Errorf("median with NaN, skipMissing=true = %v, want 2", got)
	}
}

func TestPairwiseRangeMatchesMinMax(t *testing.T) {
	data := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	lo, hi, warn := pairwiseRange(data, false)
	if warn {
		t.Fatal("pairwiseRange warned on fully-populated input")
	}
	if lo != 1 || hi != 9 {
		t.Errorf("pairwiseRange = (%v, %v), want (1, 9)", lo, hi)
	}
}

func TestPairwiseRangeAllMissingWarns(t *testing.T) {
	data := []float64{math.NaN(), math.NaN()}
	_, _, warn := pairwiseRange(data, true)
	if !warn {
		t.Error("pairwiseRange with all-NaN input and skipMissing=true: want warn=true")
	}
}

func TestStoreRangeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "col0")
	st := &store{rows: 10}
	if err := st.createColumnFile(path); err != nil {
		t.Fatalf("createColumnFile: %v", err)
	}

	band := []float64{1, 2, 3}
	if err := st.writeRange(path, band, 4); err != nil {
		t.Fatalf("writeRange: %v", err)
	}

	got := make([]float64, 3)
	if err := st.readRange(path, got, 4); err != nil {
		t.Fatalf("readRange: %v", err)
	}
	for i := range band {
		if got[i] != band[i] {
			t.Errorf("readRange[%d] = %v, want %v", i, got[i], band[i])
		}
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if fi.Size() != 10*float64Size {
		t.Errorf("file size = %d, want %d", fi.Size(), 10*float64Size)
	}
}
