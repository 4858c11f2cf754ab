package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/plantkeeper/internal/logging"
	"github.com/dmitrijs2005/plantkeeper/internal/server"
	"github.com/dmitrijs2005/plantkeeper/internal/server/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.NewZapLogger(logging.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "plantkeeper-server",
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		return err
	}
	defer func() { _ = app.Close() }()

	return app.Run(ctx)
}
