package nbtest_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/pkg/adapters/memory"
	"github.com/aretw0/nbtest/pkg/domain"
)

// ExampleNew demonstrates driving a notebook with a scripted executor.
// This is the pattern for unit tests: no interpreter, no kernel, just
// canned responses for the sources you expect to run.
func ExampleNew() {
	// 1. Build (or load) a notebook document with a tagged cell.
	setup := domain.NewCodeCell("answer = 40 + 2")
	setup.Metadata["tags"] = []any{"setup"}
	nb := domain.NewNotebook(setup)

	// 2. Script the executor.
	exec := memory.NewExecutor(
		memory.WithRule("print(answer)", domain.NewStreamOutput("stdout", "42\n")),
	)

	client, err := nbtest.New(nb, exec)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Run the setup cell, then inject a probe.
	ctx := context.Background()
	if _, err := client.ExecuteCell(ctx, nbtest.Tag("setup")); err != nil {
		log.Fatal(err)
	}

	cell, err := client.Inject(ctx, "print(answer)")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(cell.OutputText())
	// Output: 42
}
