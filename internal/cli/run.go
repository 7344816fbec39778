package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/nbtest"
	"github.com/aretw0/nbtest/pkg/domain"
)

// Run loads the notebook, executes the selected cells, and prints their
// outputs to out. With no refs, every code cell runs in document order.
func Run(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger := createLogger(opts.Debug)

	client, _, err := createClient(opts, logger)
	if err != nil {
		return err
	}

	refs := make([]nbtest.Ref, 0, len(opts.Refs))
	for _, raw := range opts.Refs {
		refs = append(refs, ParseRef(raw))
	}
	if len(refs) == 0 {
		for i, cell := range client.Notebook().Cells {
			if cell.Type == domain.CellTypeCode {
				refs = append(refs, nbtest.Index(i))
			}
		}
	}

	p := termenv.ColorProfile()
	for _, ref := range refs {
		cell, err := client.ExecuteCell(ctx, ref)
		if err != nil {
			printCell(out, p, cell)
			return err
		}
		printCell(out, p, cell)
	}
	return nil
}

func printCell(out io.Writer, p termenv.Profile, cell *domain.Cell) {
	if cell == nil {
		return
	}

	header := firstLine(string(cell.Source))
	marker := "[ ]"
	if cell.ExecutionCount != nil {
		marker = fmt.Sprintf("[%d]", *cell.ExecutionCount)
	}
	fmt.Fprintln(out, termenv.String(marker+" "+header).Foreground(p.Color("#818cf8")))

	if text := cell.OutputText(); text != "" {
		fmt.Fprintln(out, text)
	}
	for _, o := range cell.Outputs {
		if o.Type == domain.OutputTypeError {
			fmt.Fprintln(out, termenv.String(o.Ename+": "+o.Evalue).Foreground(p.Color("#fb7185")))
		}
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
