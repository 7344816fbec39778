package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/pkg/domain"
)

func TestParseRef(t *testing.T) {
	assert.Equal(t, nbtest.Index(2), ParseRef("2"))
	assert.Equal(t, nbtest.Index(-1), ParseRef("-1"))
	assert.Equal(t, nbtest.Tag("setup"), ParseRef("setup"))
	assert.Equal(t, nbtest.Tag("2fast"), ParseRef("2fast"))
}

func TestResolveRef(t *testing.T) {
	tagged := domain.NewCodeCell("x = 1")
	tagged.Metadata["tags"] = []any{"setup"}
	nb := domain.NewNotebook(domain.NewMarkdownCell("# Demo"), tagged)

	t.Run("Index", func(t *testing.T) {
		idx, err := ResolveRef(nb, "1")
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
	})

	t.Run("Tag", func(t *testing.T) {
		idx, err := ResolveRef(nb, "setup")
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
	})

	t.Run("Index Out Of Range", func(t *testing.T) {
		_, err := ResolveRef(nb, "9")
		assert.ErrorIs(t, err, domain.ErrCellIndex)
	})

	t.Run("Unknown Tag", func(t *testing.T) {
		_, err := ResolveRef(nb, "missing")
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})
}

const runFixture = `{
  "cells": [
    {"cell_type": "markdown", "source": "# Demo", "metadata": {}},
    {
      "cell_type": "code",
      "source": "echo hello",
      "metadata": {"tags": ["greet"]},
      "outputs": []
    }
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5
}`

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "demo.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(runFixture), 0o644))

	t.Run("All Code Cells", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), RunOptions{
			NotebookPath: path,
			KernelName:   "sh",
		}, &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "hello")
	})

	t.Run("By Tag", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), RunOptions{
			NotebookPath: path,
			KernelName:   "sh",
			Refs:         []string{"greet"},
		}, &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "hello")
	})

	t.Run("Unknown Tag", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), RunOptions{
			NotebookPath: path,
			KernelName:   "sh",
			Refs:         []string{"missing"},
		}, &out)
		require.Error(t, err)
	})

	t.Run("Explicit Kernels Config Missing", func(t *testing.T) {
		err := Run(context.Background(), RunOptions{
			NotebookPath:  path,
			KernelName:    "sh",
			KernelsConfig: filepath.Join(dir, "no-such-kernels.yaml"),
		}, new(bytes.Buffer))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kernels config")
	})

	t.Run("Unknown Kernel", func(t *testing.T) {
		err := Run(context.Background(), RunOptions{
			NotebookPath: path,
			KernelName:   "fortran",
		}, new(bytes.Buffer))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kernel")
	})
}
