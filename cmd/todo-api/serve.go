package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todo-api/internal/config"
	"todo-api/internal/httpapi"
	"todo-api/internal/observability/jsonlog"
	"todo-api/internal/todo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlags, os.Getenv)
	if err != nil {
		return err
	}

	logger, err := jsonlog.NewWithOptions(os.Stderr, jsonlog.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}

	// Root context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := todo.NewService(repo, cfg.Location())
	api := httpapi.NewServer(svc, httpapi.Options{
		Logger:         logger,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ErrorLog:          logger.StdLogger(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", map[string]any{
			"addr":     srv.Addr,
			"store":    cfg.Store.Driver,
			"timezone": cfg.Location().String(),
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received", nil)

	// Stop accepting new requests; wait for in-flight ones.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", map[string]any{"error": err.Error()})
	}
	logger.Info("bye", nil)
	return nil
}
