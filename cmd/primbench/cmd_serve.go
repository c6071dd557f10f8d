package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/primbench/internal/primitive"
	"github.com/user/primbench/internal/server"
)

var bindAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the in-memory primitive backend",
	Long:  "Serves counters, maps, and sets from process memory over HTTP. Intended for local benchmark runs; nothing is persisted.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&bindAddr, "bind", ":8080", "HTTP bind address")
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := server.New(primitive.NewStore(), bindAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
