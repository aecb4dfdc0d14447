package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/semmidev/chbackup/internal/app"
	"github.com/semmidev/chbackup/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error during backup: %v\n", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional path to a YAML config file; environment variables take precedence")
	dryRun := flag.Bool("dry-run", false, "plan backups without executing them")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg, app.Options{DryRun: *dryRun})
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	return application.Run(ctx)
}
