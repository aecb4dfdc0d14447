package usecase

import (
	"context"

	"github.com/semmidev/chbackup/internal/domain"
)

// FindLatest returns the lexicographically greatest backup directly under
// prefix, or nil if the table has none.
func FindLatest(ctx context.Context, store domain.ObjectStore, bucket, prefix string) (*domain.BackupObject, error) {
	keys, err := store.ListPrefixes(ctx, bucket, prefix+"/")
	if err != nil {
		return nil, err
	}

	var latest string
	for _, key := range keys {
		// >= so that on equal keys the last listed wins
		if latest == "" || key >= latest {
			latest = key
		}
	}
	if latest == "" {
		return nil, nil
	}

	obj := &domain.BackupObject{Prefix: latest}
	if ts, full, ok := ParseTimestamp(suffixOf(latest)); ok {
		obj.CreatedAt = ts
		obj.Full = full
	}
	return obj, nil
}
