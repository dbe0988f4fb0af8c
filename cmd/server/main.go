// Package main implements the entry point for the task API server, a REST
// service for creating, listing, updating and deleting to-do tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/spf13/pflag"
)

// main is the entry point for the task-api server.
// It parses flags, loads configuration, sets up logging, opens the
// configured task store and serves HTTP until a shutdown signal arrives.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run wires the application together and returns the process exit code.
// Startup failures are reported on stderr before the logger exists and
// through the logger afterwards.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := pflag.NewFlagSet("task-api", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(config.WithConfigFile(configPath), config.WithFlags(fs))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to set up logger: %v\n", err)
		return 1
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"env", cfg.Server.Env,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"base_path", cfg.Server.BasePath)

	taskStore, closeStore, err := openTaskStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open task store",
			"driver", cfg.Database.Driver,
			"error", redact.Error(err))
		return 1
	}

	app, err := newApplication(cfg, log, taskStore, closeStore)
	if err != nil {
		log.Error("failed to initialize application", "error", redact.Error(err))
		_ = closeStore(context.Background())
		return 1
	}

	return app.startHTTPServer(ctx)
}
