/*
Package nbtest is a thin client for driving and inspecting a computational
notebook during automated tests.

It wraps an externally supplied notebook document (pkg/domain) and an
externally supplied cell executor (pkg/ports): selecting cells by index or
tag, executing them, injecting ad-hoc code into the running session, and
extracting resulting values or text output. The client adds no execution
engine, protocol, or storage format of its own; every operation delegates to
its collaborators.

# Usage

Load a notebook, pick an executor adapter, and drive it:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/nbtest"
		"github.com/aretw0/nbtest/pkg/adapters/file"
		"github.com/aretw0/nbtest/pkg/adapters/process"
	)

	func main() {
		nb, err := file.NewLoader("analysis.ipynb").Load()
		if err != nil {
			log.Fatal(err)
		}

		client, err := nbtest.New(nb, process.NewRunner(process.Kernel{Command: "python3"}))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()

		// Execute the cell tagged "setup", then read its output.
		if _, err := client.ExecuteCell(ctx, nbtest.Tag("setup")); err != nil {
			log.Fatal(err)
		}
		text, err := client.OutputText(nbtest.Tag("setup"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(text)
	}

Executors are pluggable. pkg/adapters/process pipes cell source to a local
interpreter; pkg/adapters/memory scripts responses for tests. Anything that
speaks to a real kernel belongs behind ports.CellExecutor.
*/
package nbtest
