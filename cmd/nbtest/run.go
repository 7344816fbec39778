package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/nbtest/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <notebook.ipynb>",
	Short: "Execute notebook cells and print their outputs",
	Long:  `Executes the notebook's code cells through the configured interpreter, in document order or restricted to the cells named with --cell.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd, args[0])
		opts.Refs, _ = cmd.Flags().GetStringArray("cell")
		watchMode, _ := cmd.Flags().GetBool("watch")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var err error
		if watchMode {
			err = cli.RunWatch(ctx, opts, os.Stdout)
		} else {
			err = cli.Run(ctx, opts, os.Stdout)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func optionsFromFlags(cmd *cobra.Command, notebook string) cli.RunOptions {
	kernel, _ := cmd.Flags().GetString("kernel")
	kernelsCfg, _ := cmd.Flags().GetString("kernels")
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.RunOptions{
		NotebookPath:  notebook,
		KernelName:    kernel,
		KernelsConfig: kernelsCfg,
		Debug:         debug,
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArray("cell", nil, "Cell to execute, by index or tag (repeatable; default: all code cells)")
	runCmd.Flags().BoolP("watch", "w", false, "Re-run when the notebook file changes")
}
