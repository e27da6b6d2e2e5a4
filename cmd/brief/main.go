package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samachar-desk/daily-brief/internal/app"
	"github.com/samachar-desk/daily-brief/internal/config"
	"github.com/samachar-desk/daily-brief/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "brief run failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog := logger.Init(cfg.LogLevel)
	defer closeLog()

	log.InfoObj("brief starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	aggregator, err := app.NewAggregator(ctx, cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize aggregator", "error", err)
		return err
	}

	if err := aggregator.Run(ctx); err != nil {
		return fmt.Errorf("aggregation run: %w", err)
	}

	return nil
}
