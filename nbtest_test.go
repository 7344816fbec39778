package nbtest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/pkg/adapters/memory"
	"github.com/aretw0/nbtest/pkg/domain"
)

func sampleNotebook() *domain.Notebook {
	setup := domain.NewCodeCell("x = 40 + 2")
	setup.Metadata["tags"] = []any{"setup"}

	report := domain.NewCodeCell("print(x)")
	report.Metadata["tags"] = []any{"report", "slow"}

	return domain.NewNotebook(
		domain.NewMarkdownCell("# Answer notebook"),
		setup,
		report,
	)
}

func TestClient_CellIndex(t *testing.T) {
	client, err := nbtest.New(sampleNotebook(), memory.NewExecutor())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("Found", func(t *testing.T) {
		idx, err := client.CellIndex("setup")
		if err != nil {
			t.Fatalf("CellIndex failed: %v", err)
		}
		if idx != 1 {
			t.Errorf("expected index 1, got %d", idx)
		}
	})

	t.Run("Second Tag On Same Cell", func(t *testing.T) {
		idx, err := client.CellIndex("slow")
		if err != nil {
			t.Fatalf("CellIndex failed: %v", err)
		}
		if idx != 2 {
			t.Errorf("expected index 2, got %d", idx)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := client.CellIndex("missing")
		if !errors.Is(err, domain.ErrTagNotFound) {
			t.Errorf("expected ErrTagNotFound, got %v", err)
		}
	})
}

func TestClient_Execute(t *testing.T) {
	exec := memory.NewExecutor(
		memory.WithRule("print(x)", domain.NewStreamOutput("stdout", "42\n")),
	)
	client, err := nbtest.New(sampleNotebook(), exec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("By Tag", func(t *testing.T) {
		cell, err := client.ExecuteCell(context.Background(), nbtest.Tag("report"))
		if err != nil {
			t.Fatalf("ExecuteCell failed: %v", err)
		}
		if cell.OutputText() != "42" {
			t.Errorf("unexpected output text: %q", cell.OutputText())
		}
		if cell.ExecutionCount == nil {
			t.Error("expected execution count to be set")
		}
	})

	t.Run("By Index", func(t *testing.T) {
		cells, err := client.Execute(context.Background(), nbtest.Index(1), nbtest.Index(2))
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if len(cells) != 2 {
			t.Fatalf("expected 2 cells, got %d", len(cells))
		}
	})

	t.Run("Index Out Of Range", func(t *testing.T) {
		_, err := client.Execute(context.Background(), nbtest.Index(99))
		if !errors.Is(err, domain.ErrCellIndex) {
			t.Errorf("expected ErrCellIndex, got %v", err)
		}
	})

	t.Run("Unknown Tag Fails Before Executing", func(t *testing.T) {
		before := len(client.Notebook().Cells)
		_, err := client.Execute(context.Background(), nbtest.Tag("missing"))
		if !errors.Is(err, domain.ErrTagNotFound) {
			t.Errorf("expected ErrTagNotFound, got %v", err)
		}
		if len(client.Notebook().Cells) != before {
			t.Error("failed execute must not mutate the document")
		}
	})
}

func TestClient_OutputText(t *testing.T) {
	nb := sampleNotebook()
	nb.Cells[2].Outputs = []domain.Output{
		domain.NewStreamOutput("stdout", "hello "),
		domain.NewStreamOutput("stdout", "world\n"),
	}

	client, err := nbtest.New(nb, memory.NewExecutor())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	text, err := client.OutputText(nbtest.Tag("report"))
	if err != nil {
		t.Fatalf("OutputText failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("expected concatenated trimmed text, got %q", text)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := nbtest.New(nil, memory.NewExecutor()); err == nil {
		t.Error("expected error for nil notebook")
	}
	if _, err := nbtest.New(domain.NewNotebook(), nil); err == nil {
		t.Error("expected error for nil executor")
	}
}
