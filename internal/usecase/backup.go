package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/semmidev/chbackup/internal/domain"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

type Options struct {
	Bucket string
	// PublicEndpoint is the storage URL as seen by the engine; it is embedded
	// in backup targets even when this process talks to a different endpoint.
	PublicEndpoint  string
	DefaultDatabase string
	Tables          string
	Mode            domain.Mode
	Credentials     domain.Credentials
	DryRun          bool
}

type Backup struct {
	engine   domain.Engine
	store    domain.ObjectStore
	notifier domain.Notifier
	logger   Logger
	opts     Options
	now      func() time.Time
}

func NewBackup(
	engine domain.Engine,
	store domain.ObjectStore,
	notifier domain.Notifier,
	logger Logger,
	opts Options,
) *Backup {
	if opts.Mode == "" {
		opts.Mode = domain.ModeFull
	}
	return &Backup{
		engine:   engine,
		store:    store,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// Execute runs once and folds the outcome into a single error, for the scheduler.
func (uc *Backup) Execute(ctx context.Context) error {
	report, err := uc.Run(ctx)
	if err != nil {
		uc.logger.Errorf("Backup run aborted: %v", err)
		return err
	}
	return report.Err()
}

// Run backs up every configured table in order. Setup problems abort the run
// with a *domain.SetupError; per-table failures are recorded in the report.
func (uc *Backup) Run(ctx context.Context) (*RunReport, error) {
	start := uc.now()
	timestamp := FormatTimestamp(start)

	tables, err := uc.setup(ctx)
	if err != nil {
		return nil, err
	}

	report := &RunReport{Timestamp: timestamp, Mode: uc.opts.Mode, DryRun: uc.opts.DryRun}
	for _, table := range tables {
		result := uc.backupTable(ctx, table, timestamp)
		report.Results = append(report.Results, result)
	}
	report.Duration = uc.now().Sub(start)

	if failed := report.Failed(); len(failed) > 0 {
		uc.logger.Errorf("Backup run %s finished with %d of %d table(s) failed",
			timestamp, len(failed), len(report.Results))
	} else {
		uc.logger.Infof("Backup run %s completed successfully (%d table(s))", timestamp, len(report.Results))
	}

	uc.notify(ctx, report)
	return report, nil
}

func (uc *Backup) setup(ctx context.Context) ([]domain.TableRef, error) {
	tables, err := domain.ParseTables(uc.opts.Tables, uc.opts.DefaultDatabase)
	if err != nil {
		return nil, &domain.SetupError{Stage: "tables", Err: err}
	}

	if err := uc.engine.Ping(ctx); err != nil {
		return nil, &domain.SetupError{Stage: "engine", Err: err}
	}
	uc.logger.Infof("✓ Connected to %s", uc.engine.GetName())

	exists, err := uc.store.BucketExists(ctx, uc.opts.Bucket)
	if err != nil {
		return nil, &domain.SetupError{Stage: "storage", Err: err}
	}
	if !exists {
		return nil, &domain.SetupError{
			Stage: "storage",
			Err:   fmt.Errorf("%w: %s, please create it first", domain.ErrBucketNotFound, uc.opts.Bucket),
		}
	}

	return tables, nil
}

func (uc *Backup) backupTable(ctx context.Context, table domain.TableRef, timestamp string) domain.BackupRunResult {
	uc.logger.Infof("[%s] Starting backup...", table)

	prefix := prefixOf(table)
	tableURL := objectURL(uc.opts.PublicEndpoint, uc.opts.Bucket, prefix)
	result := domain.BackupRunResult{Table: table, DryRun: uc.opts.DryRun}

	var prior *domain.BackupObject
	if uc.opts.Mode == domain.ModeIncremental {
		uc.logger.Infof("[%s] Checking for existing backup at %s/", table, tableURL)
		var err error
		prior, err = FindLatest(ctx, uc.store, uc.opts.Bucket, prefix)
		if err != nil {
			result.Err = &domain.LocatorError{Table: table, Prefix: prefix, Err: err}
			uc.logger.Errorf("[%s] %v", table, result.Err)
			return result
		}
	}

	plan := Plan(uc.opts.Mode, prior, tableURL, timestamp)
	result.Plan = plan

	switch {
	case plan.Incremental():
		uc.logger.Infof("[%s] Creating incremental backup at %s based on %s", table, plan.Target, plan.Base)
	case uc.opts.Mode == domain.ModeIncremental:
		uc.logger.Infof("[%s] No existing backup found, creating full backup at %s", table, plan.Target)
	default:
		uc.logger.Infof("[%s] Creating full backup at %s", table, plan.Target)
	}

	if uc.opts.DryRun {
		uc.logger.Infof("[%s] Dry run, skipping backup statement", table)
		return result
	}

	res, err := uc.engine.Backup(ctx, table, plan, uc.opts.Credentials)
	if err != nil {
		result.Err = &domain.BackupEngineError{Table: table, Target: plan.Target, Err: err}
		uc.logger.Errorf("[%s] %v", table, result.Err)
		return result
	}
	result.Result = res

	uc.logger.Infof("[%s] Backup completed: id=%s status=%s", table, res.ID, res.Status)
	return result
}

func (uc *Backup) notify(ctx context.Context, report *RunReport) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, report.Summary()); err != nil {
		uc.logger.Warnf("Failed to send run notification: %v", err)
	}
}
