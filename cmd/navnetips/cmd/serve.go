package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and JSON API",
	Long: "Serves the name browser, suggestion wizard and favorites over HTTP until\n" +
		"interrupted. Favorites changed by other processes are picked up live when\n" +
		"the storage backend supports it (file, redis).",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default NAVNETIPS_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}

	if err := a.Start(serveAddr); err != nil {
		a.Stop()
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "⚡ navnetips serving at %s (storage: %s)\n", a.WebServer.URL(), a.Config.Storage)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Fprintln(cmd.OutOrStdout(), "\n⚡ shutting down...")
	return a.Stop()
}
