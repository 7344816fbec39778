package dto_test

import (
	"testing"

	"github.com/aretw0/nbtest/internal/dto"
)

func TestDecode(t *testing.T) {
	meta := map[string]any{
		"name":      "setup-cell",
		"tags":      []any{"setup", "ci"},
		"collapsed": true,
		"jupyter":   map[string]any{"source_hidden": true},
		"unknown":   "ignored",
	}

	out, err := dto.Decode(meta)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if out.Name != "setup-cell" {
		t.Errorf("unexpected name: %q", out.Name)
	}
	if len(out.Tags) != 2 || out.Tags[0] != "setup" {
		t.Errorf("unexpected tags: %v", out.Tags)
	}
	if !out.Collapsed {
		t.Error("expected collapsed to decode")
	}
	if out.Jupyter == nil || !out.Jupyter.SourceHidden {
		t.Error("expected jupyter namespace to decode")
	}
}

func TestDecode_Empty(t *testing.T) {
	out, err := dto.Decode(nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.Tags != nil {
		t.Errorf("expected no tags, got %v", out.Tags)
	}
}
