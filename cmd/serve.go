package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/costmo/validpoint/internal/api"
	"github.com/costmo/validpoint/internal/runner"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run validpoint as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")

		zl, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer zl.Sync()

		server := api.NewServer(api.Config{
			Runner:      runner.New(zl.Sugar()),
			ConfigDir:   configDir,
			Concurrency: concurrency,
			RateLimit:   rateLimit,
			Logger:      zl,
		})

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  120 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("API server listening on %s\n", addr)
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			zl.Info("shutdown started", zap.String("signal", sig.String()))

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				httpServer.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "time to wait for in-flight requests on shutdown")
}
