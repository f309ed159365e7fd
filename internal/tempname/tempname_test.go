package tempname_test

import (
	"strings"
	"testing"

	"github.com/bmbolstad/BufferedMatrix/internal/tempname"
)

func TestUUIDGeneratorProducesDistinctNames(t *testing.T) {
	var gen tempname.UUIDGenerator
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		name, err := gen.Name("bmat_", "/tmp/data")
		if err != nil {
			t.Fatalf("Name: %v", err)
		}
		if seen[name] {
			t.Fatalf("duplicate name generated: %s", name)
		}
		seen[name] = true

		if !strings.HasPrefix(name, "/tmp/data/bmat_") {
			t.Errorf("name %q does not have expected prefix", name)
		}
		if !strings.HasSuffix(name, ".bmat") {
			t.Errorf("name %q does not have expected suffix", name)
		}
	}
}

func TestDefaultGeneratorIsUUIDGenerator(t *testing.T) {
	if _, ok := tempname.Default.(tempname.UUIDGenerator); !ok {
		t.Errorf("tempname.Default = %T, want UUIDGenerator", tempname.Default)
	}
}
