package domain

import "time"

// Mode selects between standalone full backups and chained incremental backups.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeIncremental Mode = "incremental"
)

// BackupObject is one backup discovered under a table's prefix.
type BackupObject struct {
	// Prefix is the object key including the trailing separator,
	// e.g. "default/t2/2024-01-01T00.00.00.000Z/".
	Prefix    string
	CreatedAt time.Time
	Full      bool
}

// BackupPlan is computed for a single table and consumed by the Executor.
type BackupPlan struct {
	Target string
	Base   string
}

func (p BackupPlan) Incremental() bool {
	return p.Base != ""
}

// BackupResult is what the engine reports for a finished backup.
type BackupResult struct {
	ID     string
	Status string
}

type BackupRunResult struct {
	Table  TableRef
	Plan   BackupPlan
	Result BackupResult
	DryRun bool
	Err    error
}

func (r BackupRunResult) Failed() bool {
	return r.Err != nil
}
