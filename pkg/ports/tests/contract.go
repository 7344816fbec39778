package tests

import (
	"testing"

	"github.com/aretw0/nbtest/pkg/ports"
)

// NotebookLoaderContractTest is a reusable test suite that verifies if an
// adapter complies with ports.NotebookLoader.
func NotebookLoaderContractTest(t *testing.T, loader ports.NotebookLoader, wantCells int, wantTags map[string]int) {
	t.Helper()

	// 1. Load returns a document with the expected shape
	t.Run("Load", func(t *testing.T) {
		nb, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error loading notebook: %v", err)
		}
		if nb.Len() != wantCells {
			t.Errorf("expected %d cells, got %d", wantCells, nb.Len())
		}
	})

	// 2. Tagged cells resolve to the expected indexes
	t.Run("TagIndex", func(t *testing.T) {
		nb, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error loading notebook: %v", err)
		}
		for tag, wantIdx := range wantTags {
			idx, err := nb.TagIndex(tag)
			if err != nil {
				t.Fatalf("unexpected error resolving tag %q: %v", tag, err)
			}
			if idx != wantIdx {
				t.Errorf("tag %q: expected index %d, got %d", tag, wantIdx, idx)
			}
		}
	})

	// 3. Load returns fresh copies (mutation isolation)
	t.Run("Load_Isolation", func(t *testing.T) {
		first, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Len() == 0 {
			t.Skip("empty notebook, nothing to mutate")
		}
		first.Cells[0].Source = "mutated"

		second, err := loader.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Cells[0].Source == "mutated" {
			t.Error("Load returned a shared document; expected a fresh copy")
		}
	})
}
