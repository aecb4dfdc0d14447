package usecase

import (
	"path"
	"strings"

	"github.com/semmidev/chbackup/internal/domain"
)

// Plan computes where a table's new backup goes and what it chains from.
// tableURL is the URL of the table's backup directory without a trailing '/'.
func Plan(mode domain.Mode, prior *domain.BackupObject, tableURL, runTimestamp string) domain.BackupPlan {
	target := tableURL + "/" + runTimestamp

	if mode != domain.ModeIncremental {
		return domain.BackupPlan{Target: target}
	}
	if prior == nil {
		return domain.BackupPlan{Target: target + fullSuffix}
	}
	return domain.BackupPlan{
		Target: target,
		Base:   tableURL + "/" + suffixOf(prior.Prefix),
	}
}

// suffixOf returns the last key segment with the trailing separator removed.
func suffixOf(key string) string {
	return path.Base(strings.TrimSuffix(key, "/"))
}
