package domain

import "context"

// Credentials are handed to the engine so it can reach object storage itself.
type Credentials struct {
	AccessKey string
	SecretKey string
}

type Engine interface {
	Ping(ctx context.Context) error
	Backup(ctx context.Context, table TableRef, plan BackupPlan, creds Credentials) (BackupResult, error)
	GetName() string
}
