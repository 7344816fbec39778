package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nbtest",
	Short: "nbtest drives and inspects computational notebooks",
	Long:  `nbtest executes notebook cells through pluggable interpreters, inspects their outputs, and exposes a running notebook over HTTP or MCP for test harnesses and agents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("kernel", "python3", "Named interpreter from the kernel registry")
	rootCmd.PersistentFlags().String("kernels", "", "Path to a kernels.yaml config (default: next to the notebook)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
