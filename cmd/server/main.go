package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cadence-backend/infrastructure/di"
)

func main() {
	app, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.Logger.Sync()

	if app.Watcher != nil {
		app.Watcher.Start()
		defer app.Watcher.Stop()
	}

	server := &http.Server{
		Addr:              app.Config.ServerAddress,
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		app.Logger.Info("server listening",
			zap.String("address", app.Config.ServerAddress),
			zap.String("environment", app.Config.Environment),
		)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		app.Logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	app.Logger.Info("server stopped")
}
