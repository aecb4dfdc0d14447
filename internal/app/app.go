package app

import (
	"context"
	"fmt"

	"github.com/semmidev/chbackup/internal/adapter/database"
	"github.com/semmidev/chbackup/internal/adapter/notifier"
	"github.com/semmidev/chbackup/internal/adapter/storage"
	"github.com/semmidev/chbackup/internal/config"
	"github.com/semmidev/chbackup/internal/domain"
	"github.com/semmidev/chbackup/internal/infrastructure/logger"
	"github.com/semmidev/chbackup/internal/infrastructure/scheduler"
	"github.com/semmidev/chbackup/internal/usecase"
)

type Options struct {
	DryRun bool
}

type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *database.ClickHouseDatabase
	backupUC *usecase.Backup
}

func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	// Initialize logger
	log, err := logger.New(&cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Infof("Starting %s", cfg.App.Name)

	db, err := database.NewClickHouse(&cfg.ClickHouse)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize clickhouse: %w", err)
	}

	store, err := storage.New(ctx, &cfg.S3, cfg.StorageAPIEndpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Infof("✓ Storage driver %s at %s (bucket: %s)", cfg.S3.Driver, cfg.StorageAPIEndpoint(), cfg.S3.Bucket)

	var notify domain.Notifier
	if cfg.Notify.Telegram.BotToken != "" {
		tg, err := notifier.NewTelegram(&cfg.Notify.Telegram)
		if err != nil {
			log.Errorf("Failed to initialize Telegram: %v", err)
		} else {
			notify = tg
			log.Infof("✓ Telegram notifications enabled")
		}
	}

	mode := domain.ModeFull
	if cfg.IncrementalEnabled() {
		mode = domain.ModeIncremental
	}
	log.Infof("Backup mode: %s", mode)

	backupUC := usecase.NewBackup(db, store, notify, log, usecase.Options{
		Bucket:          cfg.S3.Bucket,
		PublicEndpoint:  cfg.PublicEndpoint(),
		DefaultDatabase: cfg.ClickHouse.Database,
		Tables:          cfg.Backup.Tables,
		Mode:            mode,
		Credentials: domain.Credentials{
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		},
		DryRun: opts.DryRun,
	})

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		backupUC: backupUC,
	}, nil
}

// Run backs up once, or on every schedule tick until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.config.Backup.Schedule == "" {
		return a.runOnce(ctx)
	}

	sched := scheduler.New(ctx, func(err error) {
		a.logger.Errorf("Scheduled backup failed: %v", err)
	})
	if err := sched.AddJob(a.config.Backup.Schedule, func(ctx context.Context) error {
		a.logger.Infof("=== Triggered scheduled backup ===")
		return a.backupUC.Execute(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}

	sched.Start()
	a.logger.Infof("Scheduler started: %s", a.config.Backup.Schedule)

	<-ctx.Done()
	sched.Stop()
	return nil
}

func (a *App) runOnce(ctx context.Context) error {
	report, err := a.backupUC.Run(ctx)
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return fmt.Errorf("%d table(s) failed: %w", len(report.Failed()), err)
	}
	a.logger.Infof("Backup completed successfully.")
	return nil
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down application...")
	if err := a.db.Close(); err != nil {
		a.logger.Warnf("Failed to close clickhouse connection: %v", err)
	}
	a.logger.Close()
}
