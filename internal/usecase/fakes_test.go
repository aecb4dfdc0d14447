package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/semmidev/chbackup/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

type backupCall struct {
	Table domain.TableRef
	Plan  domain.BackupPlan
	Creds domain.Credentials
}

type fakeEngine struct {
	pingErr error
	failFor map[string]error
	pings   int
	backups []backupCall
}

func (f *fakeEngine) Ping(ctx context.Context) error {
	f.pings++
	return f.pingErr
}

func (f *fakeEngine) Backup(ctx context.Context, table domain.TableRef, plan domain.BackupPlan, creds domain.Credentials) (domain.BackupResult, error) {
	f.backups = append(f.backups, backupCall{Table: table, Plan: plan, Creds: creds})
	if err := f.failFor[table.String()]; err != nil {
		return domain.BackupResult{}, err
	}
	return domain.BackupResult{ID: "id-" + table.Table, Status: "BACKUP_CREATED"}, nil
}

func (f *fakeEngine) GetName() string {
	return "fake"
}

// fakeStore keeps a flat key set and answers delimiter listings like S3 does.
type fakeStore struct {
	buckets   map[string]bool
	bucketErr error
	listErr   error
	keys      []string
	lists     []string
}

func (f *fakeStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if f.bucketErr != nil {
		return false, f.bucketErr
	}
	return f.buckets[bucket], nil
}

func (f *fakeStore) ListPrefixes(ctx context.Context, bucket, prefix string) ([]string, error) {
	f.lists = append(f.lists, prefix)
	if f.listErr != nil {
		return nil, f.listErr
	}

	seen := map[string]bool{}
	var out []string
	for _, key := range f.keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		i := strings.Index(rest, "/")
		if i < 0 {
			continue
		}
		child := prefix + rest[:i+1]
		if !seen[child] {
			seen[child] = true
			out = append(out, child)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeNotifier struct {
	err      error
	messages []string
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}
