package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/nbtest"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nbtest",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nbtest version %s\n", strings.TrimSpace(nbtest.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
