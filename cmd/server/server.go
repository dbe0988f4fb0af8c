package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

// startHTTPServer serves the router until SIGINT/SIGTERM or a listener
// failure, then shuts the server down within the configured timeout and
// closes the task store. Returns the process exit code.
func (app *application) startHTTPServer(ctx context.Context) int {
	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.config.Server.Port)),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	timeout := app.config.Server.ShutdownTimeout()
	shutdownServer := func(ctx context.Context) error {
		app.logger.Info("shutting down server")
		return server.Shutdown(ctx)
	}

	signalCtx, stopSignals := context.WithCancel(ctx)
	defer stopSignals()
	wait := gfshutdown.GracefulShutdown(signalCtx, timeout, map[string]gfshutdown.Operation{
		"http-server": shutdownServer,
	})

	var exitCode int
	select {
	case exitCode = <-wait:
	case err := <-serverErr:
		app.logger.Error("server stopped unexpectedly", "error", err)
		exitCode = 1

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := shutdownServer(shutdownCtx); err != nil {
			app.logger.Error("server shutdown failed", "error", err)
		}
		cancel()
	}

	// The store is closed only after the server has stopped taking requests
	cleanupCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	app.cleanup(cleanupCtx)

	app.logger.Info("server shutdown completed", "exit_code", exitCode)
	return exitCode
}
