package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/nbtest/pkg/adapters/file"
	contract "github.com/aretw0/nbtest/pkg/ports/tests"
)

const fixture = `{
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": "# Demo"},
    {"cell_type": "code", "metadata": {"tags": ["setup"]}, "source": "x = 1", "outputs": []},
    {"cell_type": "code", "metadata": {"tags": ["report"]}, "source": "print(x)", "outputs": []}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.ipynb")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoader_Contract(t *testing.T) {
	loader := file.NewLoader(writeFixture(t))
	contract.NotebookLoaderContractTest(t, loader, 3, map[string]int{
		"setup":  1,
		"report": 2,
	})
}

func TestLoader_Missing(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "absent.ipynb"))
	if _, err := loader.Load(); err == nil {
		t.Error("expected error for missing notebook")
	}
}

func TestLoader_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ipynb")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := file.NewLoader(path).Load(); err == nil {
		t.Error("expected error for malformed notebook")
	}
}

func TestLoader_Watch(t *testing.T) {
	path := writeFixture(t)
	loader := file.NewLoader(path, file.WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := loader.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	select {
	case <-changes:
		// Signaled as expected.
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
