package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/todos/internal/adapter"
	"github.com/mmcdole/todos/internal/server"
	"github.com/mmcdole/todos/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "todos-server",
		Usage:   "Development server for the todos API",
		Version: Version,
		Commands: []*cli.Command{
			newServeCommand(),
		},
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the todos API backed by a local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on (default from config)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the database file (default from config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Artificial latency added to every /todos request",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	logger := adapter.NewConsoleLogger(os.Stderr, cmd.String("log-level"))
	slog.SetDefault(logger)

	cfg, err := adapter.LoadConfig()
	if err != nil {
		logger.Warn("config not loaded, using defaults", "error", err)
		cfg = adapter.DefaultConfig()
	}

	// CLI flags override config
	if cmd.IsSet("addr") {
		cfg.Server.Addr = cmd.String("addr")
	}
	if cmd.IsSet("db") {
		cfg.Server.DBPath = cmd.String("db")
	}

	dbPath, err := adapter.ExpandPath(cfg.Server.DBPath)
	if err != nil {
		return err
	}

	todos, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer todos.Close()

	srv := server.NewServer(todos, cfg.Server.Addr, logger, server.Options{
		Delay: cmd.Duration("delay"),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
