package nbtest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/pkg/adapters/memory"
	"github.com/aretw0/nbtest/pkg/domain"
)

func TestClient_Inject(t *testing.T) {
	exec := memory.NewExecutor(
		memory.WithRule("import json", domain.NewStreamOutput("stdout", "loaded\n")),
	)
	client, err := nbtest.New(sampleNotebook(), exec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("Appends And Executes", func(t *testing.T) {
		before := client.Notebook().Len()
		cell, err := client.Inject(context.Background(), "import json")
		if err != nil {
			t.Fatalf("Inject failed: %v", err)
		}
		if client.Notebook().Len() != before+1 {
			t.Errorf("expected document to grow by one cell")
		}
		if cell.OutputText() != "loaded" {
			t.Errorf("unexpected output: %q", cell.OutputText())
		}
	})

	t.Run("Dedents Raw Literals", func(t *testing.T) {
		cell, err := client.Inject(context.Background(), `
			import json
			print(json.dumps({}))
		`)
		if err != nil {
			t.Fatalf("Inject failed: %v", err)
		}
		if strings.Contains(string(cell.Source), "\t") {
			t.Errorf("expected dedented source, got %q", cell.Source)
		}
	})

	t.Run("Prerun", func(t *testing.T) {
		setup, err := client.Notebook().Cell(1)
		if err != nil {
			t.Fatalf("Cell failed: %v", err)
		}
		setup.ExecutionCount = nil

		_, err = client.Inject(context.Background(), "x + 1", nbtest.WithPrerun(nbtest.Tag("setup")))
		if err != nil {
			t.Fatalf("Inject failed: %v", err)
		}
		if setup.ExecutionCount == nil {
			t.Error("expected prerun to execute the setup cell")
		}
	})
}

func TestClient_InjectFunc(t *testing.T) {
	exec := memory.NewExecutor()
	client, err := nbtest.New(domain.NewNotebook(), exec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	fn := nbtest.Def{
		Name: "greet",
		Source: `
			def greet(name, times):
			    return name * times
		`,
	}

	cell, err := client.InjectFunc(context.Background(), fn, "hi", 3)
	if err != nil {
		t.Fatalf("InjectFunc failed: %v", err)
	}

	source := string(cell.Source)
	if !strings.Contains(source, "def greet(name, times):") {
		t.Errorf("expected dedented definition, got %q", source)
	}
	if !strings.Contains(source, `greet("hi", 3)`) {
		t.Errorf("expected JSON-encoded call line, got %q", source)
	}

	t.Run("Requires Name And Source", func(t *testing.T) {
		if _, err := client.InjectFunc(context.Background(), nbtest.Def{Name: "f"}); err == nil {
			t.Error("expected error for missing source")
		}
	})
}

func TestClient_Value(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		exec := memory.NewExecutor(
			memory.WithRule("IPython.display", domain.NewDisplayData(domain.MIMEBundle{
				"application/json": map[string]any{"value": []any{float64(1), float64(2)}},
			})),
			memory.WithRule("result", domain.NewExecuteResult(domain.MIMEBundle{
				"text/plain": "[1, 2]",
			})),
		)
		client, err := nbtest.New(domain.NewNotebook(), exec)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		value, err := client.Value(context.Background(), "result")
		if err != nil {
			t.Fatalf("Value failed: %v", err)
		}

		list, ok := value.([]any)
		if !ok || len(list) != 2 {
			t.Fatalf("unexpected value: %#v", value)
		}
	})

	t.Run("No Execute Result", func(t *testing.T) {
		// A statement like an assignment produces no execute_result.
		exec := memory.NewExecutor()
		client, err := nbtest.New(domain.NewNotebook(), exec)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		_, err = client.Value(context.Background(), "x = 1")
		if !errors.Is(err, domain.ErrNoExecuteResult) {
			t.Errorf("expected ErrNoExecuteResult, got %v", err)
		}
	})
}
