package partialsort_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/bmbolstad/BufferedMatrix/internal/partialsort"
)

func TestSelectMatchesSortedOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(30) + 1
		data := make([]float64, n)
		for i := range data {
			data[i] = rng.Float64()*200 - 100
		}
		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)

		k := rng.Intn(n)
		scratch := append([]float64(nil), data...)
		got := partialsort.Select(scratch, k)
		if got != sorted[k] {
			t.Fatalf("trial %d: Select(data, %d) = %v, want %v", trial, k, got, sorted[k])
		}
		for i := 0; i <= k; i++ {
			if scratch[i] > got {
				t.Fatalf("trial %d: scratch[%d]=%v > pivot %v", trial, i, scratch[i], got)
			}
		}
		for i := k; i < n; i++ {
			if scratch[i] < got {
				t.Fatalf("trial %d: scratch[%d]=%v < pivot %v", trial, i, scratch[i], got)
			}
		}
	}
}

func TestSelectSingleElement(t *testing.T) {
	data := []float64{42}
	if got := partialsort.Select(data, 0); got != 42 {
		t.Errorf("Select single element = %v, want 42", got)
	}
}

func TestSelectOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Select with k out of range: want panic, got none")
		}
	}()
	partialsort.Select([]float64{1, 2, 3}, 5)
}

func TestSelectNaNSortsToEnd(t *testing.T) {
	data := []float64{3, math.NaN(), 1, 2}
	got := partialsort.Select(data, 3)
	if !math.IsNaN(got) {
		t.Errorf("Select at last index = %v, want NaN", got)
	}
}
