package usecase

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/semmidev/chbackup/internal/domain"
)

// RunReport collects the per-table results of one run.
type RunReport struct {
	Timestamp string
	Mode      domain.Mode
	DryRun    bool
	Duration  time.Duration
	Results   []domain.BackupRunResult
}

func (r *RunReport) Failed() []domain.BackupRunResult {
	var failed []domain.BackupRunResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err combines every table failure, nil when all tables succeeded.
func (r *RunReport) Err() error {
	var err error
	for _, res := range r.Results {
		err = multierr.Append(err, res.Err)
	}
	return err
}

func (r *RunReport) Summary() string {
	failed := r.Failed()

	var b strings.Builder
	if len(failed) == 0 {
		fmt.Fprintf(&b, "✅ Backup run %s completed\n\n", r.Timestamp)
	} else {
		fmt.Fprintf(&b, "❌ Backup run %s failed\n\n", r.Timestamp)
	}
	fmt.Fprintf(&b, "Mode: %s", r.Mode)
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	fmt.Fprintf(&b, "\nTables: %d ok, %d failed\n", len(r.Results)-len(failed), len(failed))
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration.Round(time.Second))

	for _, res := range failed {
		fmt.Fprintf(&b, "\n• %s: %v", res.Table, res.Err)
	}
	return b.String()
}
