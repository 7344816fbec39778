package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/nbtest/internal/adapters/http"
	"github.com/aretw0/nbtest/internal/cli"
	"github.com/aretw0/nbtest/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/nbtest/pkg/adapters/redis"
	"github.com/aretw0/nbtest/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <notebook.ipynb>",
	Short: "Expose a notebook session over HTTP",
	Long:  `Starts a JSON API bound to one notebook session: execute cells, inject code, read outputs, and snapshot sessions. Metrics are served on /metrics.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		client, err := cli.NewClient(optionsFromFlags(cmd, args[0]))
		if err != nil {
			fmt.Printf("Error initializing nbtest: %v\n", err)
			os.Exit(1)
		}

		var store ports.SessionStore = memory.NewStore()
		if redisAddr != "" {
			store = redisAdapter.New(redisAddr, "", 0)
		}

		handler := httpAdapter.NewHandler(client, httpAdapter.WithSessionStore(store))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting nbtest server on %s\n", srv.Addr)
			fmt.Printf("Serving notebook: %s\n", args[0])
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown failed: %v\n", err)
				_ = srv.Close()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session persistence (default: in-memory)")
}
