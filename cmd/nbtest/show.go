package main

import (
	"fmt"
	"os"

	"github.com/aretw0/nbtest/internal/cli"
	"github.com/aretw0/nbtest/internal/presentation/tui"
	"github.com/aretw0/nbtest/pkg/adapters/file"
	"github.com/aretw0/nbtest/pkg/domain"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <notebook.ipynb> <cell>",
	Short: "Render a single cell's source and recorded output",
	Long:  `Prints a cell's source (markdown cells are rendered for the terminal) followed by any recorded outputs. The cell is referenced by index or tag.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		nb, err := file.NewLoader(args[0]).Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		idx, err := cli.ResolveRef(nb, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cell, err := nb.Cell(idx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		source := string(cell.Source)
		if cell.Type == domain.CellTypeMarkdown {
			render := tui.NewRenderer()
			if rendered, err := render(source); err == nil {
				source = rendered
			}
		}
		fmt.Println(source)

		if text := cell.OutputText(); text != "" {
			fmt.Println("--- output ---")
			fmt.Println(text)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
