package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/nbtest/internal/dto"
	"github.com/aretw0/nbtest/pkg/adapters/file"
	"github.com/spf13/cobra"
)

// cellsCmd represents the cells command
var cellsCmd = &cobra.Command{
	Use:   "cells <notebook.ipynb>",
	Short: "List the notebook's cells with their indexes and tags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		nb, err := file.NewLoader(args[0]).Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		for i, cell := range nb.Cells {
			meta, _ := dto.Decode(cell.Metadata)

			label := ""
			if len(meta.Tags) > 0 {
				label = " [" + strings.Join(meta.Tags, ", ") + "]"
			}
			src := strings.TrimSpace(string(cell.Source))
			if idx := strings.IndexByte(src, '\n'); idx >= 0 {
				src = src[:idx] + " ..."
			}
			fmt.Printf("%3d  %-8s%s  %s\n", i, cell.Type, label, src)
		}
	},
}

func init() {
	rootCmd.AddCommand(cellsCmd)
}
